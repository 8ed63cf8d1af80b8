package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ddms-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Receipt is a donation receipt moving through the DDMS lifecycle
type Receipt struct {
	ID              uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	StoreID         uuid.UUID         `gorm:"type:uuid;not null;index" json:"storeId"`
	ReceiptNumber   string            `gorm:"size:50;not null;index" json:"receiptNumber"`
	Date            time.Time         `gorm:"not null;index" json:"date"`
	ReferenceNumber string            `gorm:"size:100" json:"referenceNumber,omitempty"`
	CustomerID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"customerId"`
	TotalAmount     decimal.Decimal   `gorm:"type:decimal(14,2);not null;default:0" json:"totalAmount"`
	PaidAmount      decimal.Decimal   `gorm:"type:decimal(14,2);not null;default:0" json:"paidAmount"`
	ReceiptState    enum.ReceiptState `gorm:"size:30;not null;default:'DRAFT';index" json:"receiptState"`
	PaymentMode     enum.PaymentMode  `gorm:"size:20" json:"paymentMode,omitempty"`
	PaymentDetails  string            `gorm:"type:text" json:"paymentDetails,omitempty"`
	ApprovedBy      *uuid.UUID        `gorm:"type:uuid" json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time        `json:"approvedAt,omitempty"`
	CreatedBy       uuid.UUID         `gorm:"type:uuid;not null" json:"createdBy"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	Customer *Customer     `gorm:"foreignKey:CustomerID" json:"-"`
	Items    []ReceiptItem `gorm:"foreignKey:ReceiptID" json:"items,omitempty"`

	// Computed field for JSON response
	CustomerName string `gorm:"-" json:"customerName,omitempty"`
}

// BeforeCreate generates a UUID before creating a new receipt
func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// AfterFind fills the computed fields from loaded relationships
func (r *Receipt) AfterFind(tx *gorm.DB) error {
	if r.Customer != nil {
		r.CustomerName = r.Customer.Name
	}
	for i := range r.Items {
		if r.Items[i].Particular != nil {
			r.Items[i].ParticularName = r.Items[i].Particular.Name
		}
	}
	return nil
}

// TableName returns the table name for the Receipt model
func (Receipt) TableName() string {
	return "receipts"
}

// Outstanding returns what is still to be paid.
func (r *Receipt) Outstanding() decimal.Decimal {
	due := r.TotalAmount.Sub(r.PaidAmount)
	if due.IsNegative() {
		return decimal.Zero
	}
	return due
}

// Recalculate sets TotalAmount to the sum of the item amounts.
func (r *Receipt) Recalculate() {
	total := decimal.Zero
	for _, item := range r.Items {
		total = total.Add(item.Amount)
	}
	r.TotalAmount = total
}

// IsEditable reports whether items and header fields may still change.
func (r *Receipt) IsEditable() bool {
	return r.ReceiptState == enum.ReceiptStateDraft || r.ReceiptState == enum.ReceiptStateUnpaid
}

// ReceiptItem is one particular line on a receipt
type ReceiptItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	ParticularID uuid.UUID       `gorm:"type:uuid;not null" json:"particularId"`
	Amount       decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	CreatedAt    time.Time       `json:"-"`

	Particular *Particular `gorm:"foreignKey:ParticularID" json:"-"`

	ParticularName string `gorm:"-" json:"particularName,omitempty"`
}

// BeforeCreate generates a UUID before creating a new item
func (i *ReceiptItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ReceiptItem model
func (ReceiptItem) TableName() string {
	return "receipt_items"
}

// ReceiptTransition records one accepted lifecycle edge
type ReceiptTransition struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptID uuid.UUID         `gorm:"type:uuid;not null;index" json:"receiptId"`
	FromState enum.ReceiptState `gorm:"size:30;not null" json:"fromState"`
	ToState   enum.ReceiptState `gorm:"size:30;not null" json:"toState"`
	ActorID   uuid.UUID         `gorm:"type:uuid;not null" json:"-"`
	Notes     string            `gorm:"type:text" json:"approvalNotes,omitempty"`
	Amount    decimal.Decimal   `gorm:"type:decimal(14,2);default:0" json:"amount"`
	CreatedAt time.Time         `gorm:"index" json:"approvedAt"`

	Actor *User `gorm:"foreignKey:ActorID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new transition
func (t *ReceiptTransition) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ReceiptTransition model
func (ReceiptTransition) TableName() string {
	return "receipt_transitions"
}
