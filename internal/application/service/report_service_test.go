package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sangkips/ddms-api/internal/domain/entity"
	"github.com/sangkips/ddms-api/internal/domain/enum"
	"github.com/sangkips/ddms-api/internal/domain/repository"
	"github.com/sangkips/ddms-api/internal/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSummaryExcludesCancelledFromTotals(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockReportRepository(ctrl)
	svc := NewReportService(repo)
	filter := repository.ReceiptFilter{}
	customerID := uuid.New()

	repo.EXPECT().TotalsByState(gomock.Any(), filter).Return([]repository.StateTotal{
		{State: enum.ReceiptStateCancelled, ReceiptCount: 2, TotalAmount: dec("300"), PaidAmount: dec("0")},
		{State: enum.ReceiptStatePaid, ReceiptCount: 3, TotalAmount: dec("1500"), PaidAmount: dec("1500")},
		{State: enum.ReceiptStatePartial, ReceiptCount: 1, TotalAmount: dec("1000"), PaidAmount: dec("400")},
	}, nil)
	repo.EXPECT().TopCustomers(gomock.Any(), filter, topCustomerLimit).Return([]repository.CustomerTotal{
		{CustomerID: customerID, CustomerName: "Ravi", PaidAmount: dec("1900"), ReceiptCount: 4},
	}, nil)
	repo.EXPECT().DailyCollections(gomock.Any(), filter).Return([]repository.DailyTotal{
		{Day: "2026-03-14T00:00:00Z", PaidAmount: dec("1900")},
		{Day: "2026-03-15", PaidAmount: dec("0")},
	}, nil)

	s, err := svc.Summary(context.Background(), filter)
	require.NoError(t, err)

	assert.Equal(t, int64(4), s.ReceiptCount)
	assert.Equal(t, "2500", s.TotalAmount.String())
	assert.Equal(t, "1900", s.PaidAmount.String())
	assert.Equal(t, "600", s.Outstanding.String())
	require.Len(t, s.ByState, 3)
	assert.Equal(t, "Cancelled", s.ByState[0].Label)
	assert.Equal(t, customerID.String(), s.TopCustomers[0].CustomerID)
	assert.Equal(t, "2026-03-14", s.Daily[0].Date)
	assert.Equal(t, "2026-03-15", s.Daily[1].Date)
}

func TestExportXLSX(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockReportRepository(ctrl)
	svc := NewReportService(repo)

	repo.EXPECT().Export(gomock.Any(), gomock.Any()).Return([]entity.Receipt{
		{
			ReceiptNumber: "RCT-20260314-ABCDEF01",
			Date:          time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
			Customer:      &entity.Customer{Name: "Ravi", AccountNumber: "ACC-7"},
			Items: []entity.ReceiptItem{
				{ParticularName: "Annadanam"},
				{ParticularName: "Pooja"},
			},
			ReceiptState: enum.ReceiptStatePartial,
			PaymentMode:  enum.PaymentModeCash,
			TotalAmount:  dec("1000"),
			PaidAmount:   dec("400"),
		},
	}, nil)

	data, err := svc.ExportXLSX(context.Background(), repository.ReceiptFilter{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Receipts"}, f.GetSheetList())
	rows, err := f.GetRows("Receipts")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, exportHeader, rows[0])
	assert.Equal(t, "RCT-20260314-ABCDEF01", rows[1][0])
	assert.Equal(t, "Annadanam, Pooja", rows[1][4])
	assert.Equal(t, "Partial", rows[1][5])
	assert.Equal(t, "600", rows[1][9])
}
