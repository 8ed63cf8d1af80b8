package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/ddms-api/internal/domain/entity"
	"github.com/sangkips/ddms-api/internal/domain/repository"
	"github.com/sangkips/ddms-api/pkg/apperror"
	"github.com/sangkips/ddms-api/pkg/printer"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PrinterService formats receipts and sends them to the thermal printer.
type PrinterService struct {
	printer     printer.Printer
	receiptRepo repository.ReceiptRepository
	storeRepo   repository.StoreRepository
	printerType printer.Type
	width       int
	logger      *zap.SugaredLogger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	receiptRepo repository.ReceiptRepository,
	storeRepo repository.StoreRepository,
	cfg printer.Config,
	logger *zap.SugaredLogger,
) *PrinterService {
	return &PrinterService{
		printer:     p,
		receiptRepo: receiptRepo,
		storeRepo:   storeRepo,
		printerType: cfg.Type,
		width:       cfg.Width,
		logger:      logger,
	}
}

// PrinterStatus describes the configured printer.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != printer.TypeNone && s.printerType != "",
		Connected:  s.printer.IsConnected(ctx),
		Type:       string(s.printerType),
	}
}

// TestPrint sends a sample ticket. The ticket is returned even when
// printing fails so callers can show it.
func (s *PrinterService) TestPrint(ctx context.Context) (*entity.ReceiptTicket, error) {
	ticket := &entity.ReceiptTicket{
		Header:        entity.TicketHeader{StoreName: "PRINTER TEST", Address: "Test Address"},
		ReceiptNumber: "TEST-001",
		Date:          "Test Date",
		Customer:      "Test Donor",
		State:         "Paid",
		Lines: []entity.TicketLine{
			{Particular: "Test Particular 1", Amount: "10.00"},
			{Particular: "Test Particular 2", Amount: "10.00"},
		},
		Total: "20.00",
		Paid:  "20.00",
		Due:   "0.00",
	}

	if err := s.printer.Print(ctx, FormatTicket(ticket, s.width)); err != nil {
		return ticket, fmt.Errorf("test print failed: %w", err)
	}
	return ticket, nil
}

// PrintReceipt prints a receipt of the current store.
func (s *PrinterService) PrintReceipt(ctx context.Context, receiptID uuid.UUID) (*entity.ReceiptTicket, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}

	store, err := s.storeRepo.GetByID(ctx, receipt.StoreID)
	if err != nil {
		return nil, err
	}

	ticket := BuildTicket(receipt, store)
	if err := s.printer.Print(ctx, FormatTicket(ticket, s.width)); err != nil {
		s.logger.Errorw("printer error", "receipt_id", receiptID, "error", err)
		return ticket, fmt.Errorf("failed to print receipt: %w", err)
	}

	return ticket, nil
}

// BuildTicket composes the printable view of a receipt. store may be nil.
func BuildTicket(r *entity.Receipt, store *entity.Store) *entity.ReceiptTicket {
	t := &entity.ReceiptTicket{
		ReceiptNumber:  r.ReceiptNumber,
		Date:           r.Date.Format("2006-01-02"),
		State:          r.ReceiptState.Label(),
		PaymentMode:    r.PaymentMode.String(),
		PaymentDetails: r.PaymentDetails,
		Total:          money(r.TotalAmount),
		Paid:           money(r.PaidAmount),
		Due:            money(r.Outstanding()),
		Lines:          make([]entity.TicketLine, 0, len(r.Items)),
	}
	if store != nil {
		t.Header = entity.TicketHeader{
			StoreName: store.Name,
			Address:   joinNonEmpty(store.Address, store.City, store.State),
			Phone:     store.Contact,
		}
	}
	if r.Customer != nil {
		t.Customer = r.Customer.Name
		t.AccountNumber = r.Customer.AccountNumber
	} else {
		t.Customer = r.CustomerName
	}

	for _, it := range r.Items {
		name := it.ParticularName
		if name == "" {
			name = "Donation"
		}
		t.Lines = append(t.Lines, entity.TicketLine{Particular: name, Amount: money(it.Amount)})
	}
	return t
}

// FormatTicket converts a ticket into ESC/POS bytes.
func FormatTicket(t *entity.ReceiptTicket, width int) []byte {
	doc := printer.NewDocument(width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(t.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)
	if t.Header.Address != "" {
		doc.Text(t.Header.Address)
	}
	if t.Header.Phone != "" {
		doc.Text(t.Header.Phone)
	}
	doc.SetBold(true).Text("DONATION RECEIPT").SetBold(false)

	doc.SetAlign(printer.AlignLeft).
		Separator('-').
		KeyValue("Receipt:", t.ReceiptNumber).
		KeyValue("Date:", t.Date)
	if t.Customer != "" {
		doc.KeyValue("Donor:", t.Customer)
	}
	if t.AccountNumber != "" {
		doc.KeyValue("Account:", t.AccountNumber)
	}
	if t.PaymentMode != "" {
		doc.KeyValue("Mode:", t.PaymentMode)
	}
	if t.PaymentDetails != "" {
		doc.Text(t.PaymentDetails)
	}

	doc.Separator('-')
	for _, l := range t.Lines {
		doc.AmountLine(l.Particular, l.Amount)
	}
	doc.Separator('-')

	doc.SetBold(true).
		KeyValue("TOTAL:", t.Total).
		SetBold(false).
		KeyValue("Paid:", t.Paid)
	if t.Due != "" && t.Due != "0.00" {
		doc.KeyValue("Due:", t.Due)
	}
	doc.KeyValue("Status:", t.State)

	doc.Separator('-').
		SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Thank you for your contribution").
		LineFeed().
		SetAlign(printer.AlignLeft).
		FeedLines(3).
		PartialCut()

	return doc.Bytes()
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func joinNonEmpty(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += p
	}
	return out
}
