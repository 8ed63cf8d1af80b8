package service

import (
	"context"
	"fmt"

	"github.com/sangkips/ddms-api/internal/domain/entity"
	"github.com/sangkips/ddms-api/internal/domain/enum"
	"github.com/sangkips/ddms-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const topCustomerLimit = 10

// ReportService builds receipt reports for the current store
type ReportService struct {
	reportRepo repository.ReportRepository
}

// NewReportService creates a new report service
func NewReportService(reportRepo repository.ReportRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

// StateSummary aggregates the receipts in one state
type StateSummary struct {
	State        enum.ReceiptState `json:"state"`
	Label        string            `json:"label"`
	ReceiptCount int64             `json:"receiptCount"`
	TotalAmount  decimal.Decimal   `json:"totalAmount"`
	PaidAmount   decimal.Decimal   `json:"paidAmount"`
}

// CustomerSummary is a top donor line
type CustomerSummary struct {
	CustomerID   string          `json:"customerId"`
	CustomerName string          `json:"customerName"`
	PaidAmount   decimal.Decimal `json:"paidAmount"`
	ReceiptCount int64           `json:"receiptCount"`
}

// DailySummary is what was collected on one day
type DailySummary struct {
	Date       string          `json:"date"`
	PaidAmount decimal.Decimal `json:"paidAmount"`
}

// ReceiptSummary is the receipts report. Cancelled receipts are listed
// by state but excluded from the totals.
type ReceiptSummary struct {
	ReceiptCount int64             `json:"receiptCount"`
	TotalAmount  decimal.Decimal   `json:"totalAmount"`
	PaidAmount   decimal.Decimal   `json:"paidAmount"`
	Outstanding  decimal.Decimal   `json:"outstanding"`
	ByState      []StateSummary    `json:"byState"`
	TopCustomers []CustomerSummary `json:"topCustomers"`
	Daily        []DailySummary    `json:"daily"`
}

// Summary returns the receipts report for the filter
func (s *ReportService) Summary(ctx context.Context, filter repository.ReceiptFilter) (*ReceiptSummary, error) {
	states, err := s.reportRepo.TotalsByState(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("totals by state: %w", err)
	}
	customers, err := s.reportRepo.TopCustomers(ctx, filter, topCustomerLimit)
	if err != nil {
		return nil, fmt.Errorf("top customers: %w", err)
	}
	daily, err := s.reportRepo.DailyCollections(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("daily collections: %w", err)
	}

	summary := &ReceiptSummary{
		ByState:      make([]StateSummary, 0, len(states)),
		TopCustomers: make([]CustomerSummary, 0, len(customers)),
		Daily:        make([]DailySummary, 0, len(daily)),
	}

	for _, st := range states {
		summary.ByState = append(summary.ByState, StateSummary{
			State:        st.State,
			Label:        st.State.Label(),
			ReceiptCount: st.ReceiptCount,
			TotalAmount:  st.TotalAmount,
			PaidAmount:   st.PaidAmount,
		})
		if st.State == enum.ReceiptStateCancelled {
			continue
		}
		summary.ReceiptCount += st.ReceiptCount
		summary.TotalAmount = summary.TotalAmount.Add(st.TotalAmount)
		summary.PaidAmount = summary.PaidAmount.Add(st.PaidAmount)
	}
	summary.Outstanding = summary.TotalAmount.Sub(summary.PaidAmount)

	for _, c := range customers {
		summary.TopCustomers = append(summary.TopCustomers, CustomerSummary{
			CustomerID:   c.CustomerID.String(),
			CustomerName: c.CustomerName,
			PaidAmount:   c.PaidAmount,
			ReceiptCount: c.ReceiptCount,
		})
	}

	for _, d := range daily {
		day := d.Day
		if len(day) > 10 {
			day = day[:10]
		}
		summary.Daily = append(summary.Daily, DailySummary{Date: day, PaidAmount: d.PaidAmount})
	}

	return summary, nil
}

// ExportXLSX renders every receipt matching the filter as a spreadsheet
func (s *ReportService) ExportXLSX(ctx context.Context, filter repository.ReceiptFilter) ([]byte, error) {
	receipts, err := s.reportRepo.Export(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("export receipts: %w", err)
	}
	return receiptsWorkbook(receipts)
}

var exportHeader = []string{
	"Receipt No", "Date", "Customer", "Account No", "Particulars",
	"State", "Payment Mode", "Total", "Paid", "Outstanding",
}

func receiptsWorkbook(receipts []entity.Receipt) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Receipts"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for c, v := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(sheet, cell, v)
	}

	for r, rc := range receipts {
		row := r + 2
		var customer, account string
		if rc.Customer != nil {
			customer = rc.Customer.Name
			account = rc.Customer.AccountNumber
		}
		values := []any{
			rc.ReceiptNumber,
			rc.Date.Format("2006-01-02"),
			customer,
			account,
			particularNames(rc.Items),
			rc.ReceiptState.Label(),
			rc.PaymentMode.String(),
			rc.TotalAmount.InexactFloat64(),
			rc.PaidAmount.InexactFloat64(),
			rc.Outstanding().InexactFloat64(),
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 24)
	_ = f.SetColWidth(sheet, "B", "B", 12)
	_ = f.SetColWidth(sheet, "C", "C", 28)
	_ = f.SetColWidth(sheet, "D", "D", 14)
	_ = f.SetColWidth(sheet, "E", "E", 32)
	_ = f.SetColWidth(sheet, "F", "G", 16)
	_ = f.SetColWidth(sheet, "H", "J", 14)

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E5E7EB"}, Pattern: 1},
	})
	_ = f.SetCellStyle(sheet, "A1", "J1", style)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func particularNames(items []entity.ReceiptItem) string {
	out := ""
	for i, it := range items {
		if i > 0 {
			out += ", "
		}
		out += it.ParticularName
	}
	return out
}
