package repository

//go:generate mockgen -source=receipt_repository.go -destination=../../mocks/receipt_repository.go -package=mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ddms-api/internal/domain/entity"
	"github.com/sangkips/ddms-api/internal/domain/enum"
	"github.com/sangkips/ddms-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ReceiptFilter narrows receipt listings and reports
type ReceiptFilter struct {
	State      enum.ReceiptState
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	Search     string
}

// ReceiptRepository defines the interface for receipt data operations.
// Every method is scoped to the store carried by ctx.
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.Receipt) error
	// GetByID returns the receipt with its items and customer loaded
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	// Update saves the editable header fields and replaces the items in
	// one transaction. It never writes state, payment or approval columns
	// and fails with ErrStaleState unless the stored state still equals
	// receipt.ReceiptState and is DRAFT or UNPAID.
	Update(ctx context.Context, receipt *entity.Receipt) error
	List(ctx context.Context, filter ReceiptFilter, params *pagination.PaginationParams) ([]entity.Receipt, int64, error)
	// ApplyTransition persists the receipt's new state and the history
	// row together. It fails with ErrStaleState when the stored state is
	// no longer transition.FromState.
	ApplyTransition(ctx context.Context, receipt *entity.Receipt, transition *entity.ReceiptTransition) error
	ListTransitions(ctx context.Context, receiptID uuid.UUID) ([]entity.ReceiptTransition, error)
}

// StateTotal aggregates receipts in one state
type StateTotal struct {
	State        enum.ReceiptState
	ReceiptCount int64
	TotalAmount  decimal.Decimal
	PaidAmount   decimal.Decimal
}

// CustomerTotal aggregates what a customer has donated
type CustomerTotal struct {
	CustomerID   uuid.UUID
	CustomerName string
	PaidAmount   decimal.Decimal
	ReceiptCount int64
}

// DailyTotal is what was collected on one day. Day is the receipt
// date as the database renders it; the first ten characters are
// YYYY-MM-DD on every supported driver.
type DailyTotal struct {
	Day        string
	PaidAmount decimal.Decimal
}

// ReportRepository defines aggregation queries over receipts
type ReportRepository interface {
	// TotalsByState returns counts and amounts grouped by receipt state
	TotalsByState(ctx context.Context, filter ReceiptFilter) ([]StateTotal, error)

	// TopCustomers returns customers by amount paid
	TopCustomers(ctx context.Context, filter ReceiptFilter, limit int) ([]CustomerTotal, error)

	// DailyCollections returns paid amounts per receipt date
	DailyCollections(ctx context.Context, filter ReceiptFilter) ([]DailyTotal, error)

	// Export returns every matching receipt with customer and items loaded
	Export(ctx context.Context, filter ReceiptFilter) ([]entity.Receipt, error)
}
