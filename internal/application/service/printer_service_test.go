package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sangkips/ddms-api/internal/domain/entity"
	"github.com/sangkips/ddms-api/internal/domain/enum"
	"github.com/sangkips/ddms-api/internal/mocks"
	"github.com/sangkips/ddms-api/pkg/printer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func sampleReceipt(storeID uuid.UUID) *entity.Receipt {
	return &entity.Receipt{
		ID:            uuid.New(),
		StoreID:       storeID,
		ReceiptNumber: "RCT-20260314-ABCDEF01",
		Date:          time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
		Customer:      &entity.Customer{Name: "Ravi", AccountNumber: "ACC-7"},
		Items: []entity.ReceiptItem{
			{ParticularName: "Annadanam", Amount: dec("600")},
			{Amount: dec("400")},
		},
		ReceiptState: enum.ReceiptStatePartial,
		PaymentMode:  enum.PaymentModeCheque,
		TotalAmount:  dec("1000"),
		PaidAmount:   dec("400"),
	}
}

func TestBuildTicket(t *testing.T) {
	storeID := uuid.New()
	store := &entity.Store{ID: storeID, Name: "Main Temple", City: "Madurai", State: "TN", Contact: "0452"}

	ticket := BuildTicket(sampleReceipt(storeID), store)

	assert.Equal(t, "Main Temple", ticket.Header.StoreName)
	assert.Equal(t, "Madurai, TN", ticket.Header.Address)
	assert.Equal(t, "2026-03-14", ticket.Date)
	assert.Equal(t, "Partial", ticket.State)
	assert.Equal(t, "ACC-7", ticket.AccountNumber)
	assert.Equal(t, "1000.00", ticket.Total)
	assert.Equal(t, "600.00", ticket.Due)
	require.Len(t, ticket.Lines, 2)
	assert.Equal(t, "Donation", ticket.Lines[1].Particular)
}

func TestPrintReceipt(t *testing.T) {
	ctrl := gomock.NewController(t)
	receipts := mocks.NewMockReceiptRepository(ctrl)
	stores := mocks.NewMockStoreRepository(ctrl)
	mem := &printer.Memory{}
	svc := NewPrinterService(mem, receipts, stores, printer.Config{Type: printer.TypeUSB, Width: printer.Width58mm},
		zaptest.NewLogger(t).Sugar())

	storeID := uuid.New()
	r := sampleReceipt(storeID)
	receipts.EXPECT().GetByID(gomock.Any(), r.ID).Return(r, nil)
	stores.EXPECT().GetByID(gomock.Any(), storeID).Return(&entity.Store{Name: "Main Temple"}, nil)

	ticket, err := svc.PrintReceipt(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ReceiptNumber, ticket.ReceiptNumber)

	jobs := mem.Jobs()
	require.Len(t, jobs, 1)
	assert.True(t, bytes.Contains(jobs[0], []byte("Main Temple")))
	assert.True(t, bytes.Contains(jobs[0], []byte("Due:")))
}

func TestPrintReceiptPrinterFailureStillReturnsTicket(t *testing.T) {
	ctrl := gomock.NewController(t)
	receipts := mocks.NewMockReceiptRepository(ctrl)
	stores := mocks.NewMockStoreRepository(ctrl)
	mem := &printer.Memory{Err: errors.New("paper out")}
	svc := NewPrinterService(mem, receipts, stores, printer.Config{Type: printer.TypeNetwork}, zaptest.NewLogger(t).Sugar())

	r := sampleReceipt(uuid.New())
	receipts.EXPECT().GetByID(gomock.Any(), r.ID).Return(r, nil)
	stores.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(nil, nil)

	ticket, err := svc.PrintReceipt(context.Background(), r.ID)
	require.Error(t, err)
	require.NotNil(t, ticket)
	assert.False(t, svc.GetStatus(context.Background()).Connected)
}

func TestPrinterStatusUnconfigured(t *testing.T) {
	svc := NewPrinterService(printer.Null(), nil, nil, printer.Config{Type: printer.TypeNone}, zaptest.NewLogger(t).Sugar())
	status := svc.GetStatus(context.Background())
	assert.False(t, status.Configured)
	assert.Equal(t, "none", status.Type)
}
