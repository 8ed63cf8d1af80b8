package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/ddms-api/internal/application/service"
	"github.com/sangkips/ddms-api/internal/presentation/http/dto/request"
	"github.com/sangkips/ddms-api/internal/presentation/http/dto/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler handles receipt reports
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Summary returns totals by state, top donors and daily collections
// @Summary Receipt summary
// @Tags reports
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /reports/receipts/summary [get]
func (h *ReportHandler) Summary(c *gin.Context) {
	var q request.ReceiptFilterRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	filter, ok := receiptFilter(c, &q)
	if !ok {
		return
	}

	summary, err := h.reportService.Summary(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Summary retrieved successfully", summary)
}

// Export streams matching receipts as an xlsx workbook
// @Summary Export receipts
// @Tags reports
// @Security BearerAuth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Router /reports/receipts/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	var q request.ReceiptFilterRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	filter, ok := receiptFilter(c, &q)
	if !ok {
		return
	}

	data, err := h.reportService.ExportXLSX(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := "receipts-" + time.Now().Format("20060102-150405") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
