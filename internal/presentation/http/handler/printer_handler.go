package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/ddms-api/internal/application/service"
	"github.com/sangkips/ddms-api/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.printerService.GetStatus(c.Request.Context()))
}

// TestPrint sends a test page to the printer.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	ticket, err := h.printerService.TestPrint(c.Request.Context())
	if err != nil {
		// The ticket is still useful when the printer is disabled
		response.OK(c, "Test print completed (printer may be disabled)", gin.H{
			"receipt": ticket,
			"warning": err.Error(),
		})
		return
	}

	response.OK(c, "Test page sent to printer", gin.H{"receipt": ticket})
}

// PrintReceipt prints a donation receipt.
func (h *PrinterHandler) PrintReceipt(c *gin.Context) {
	id, ok := pathID(c, "id", "receipt")
	if !ok {
		return
	}

	ticket, err := h.printerService.PrintReceipt(c.Request.Context(), id)
	if err != nil {
		if ticket != nil {
			response.OK(c, "Receipt generated but printing failed", gin.H{
				"receipt": ticket,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed successfully", gin.H{"receipt": ticket})
}
