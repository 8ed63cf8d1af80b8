package request

import "github.com/shopspring/decimal"

// ReceiptItemRequest is one particular line
type ReceiptItemRequest struct {
	ParticularID string          `json:"particularId" binding:"required,uuid"`
	Amount       decimal.Decimal `json:"amount"`
}

// CreateReceiptRequest represents a receipt creation request. Date is
// YYYY-MM-DD or RFC 3339.
type CreateReceiptRequest struct {
	Date            string               `json:"date"`
	ReferenceNumber string               `json:"referenceNumber" binding:"max=100"`
	CustomerID      string               `json:"customerId" binding:"required,uuid"`
	Items           []ReceiptItemRequest `json:"items" binding:"required,min=1,dive"`
	PaymentMode     string               `json:"paymentMode"`
	PaymentDetails  string               `json:"paymentDetails"`
}

// UpdateReceiptRequest represents a receipt update request. A non-nil
// Items replaces every line.
type UpdateReceiptRequest struct {
	Date            *string              `json:"date"`
	ReferenceNumber *string              `json:"referenceNumber" binding:"omitempty,max=100"`
	CustomerID      *string              `json:"customerId" binding:"omitempty,uuid"`
	Items           []ReceiptItemRequest `json:"items" binding:"omitempty,min=1,dive"`
	PaymentMode     *string              `json:"paymentMode"`
	PaymentDetails  *string              `json:"paymentDetails"`
}

// ChangeStateRequest moves a receipt along a plain lifecycle edge
type ChangeStateRequest struct {
	NewState string `json:"newState" binding:"required"`
	Notes    string `json:"notes"`
}

// ApproveRequest approves a receipt pending approval
type ApproveRequest struct {
	Notes string `json:"notes"`
}

// PayRequest records a payment against a receipt
type PayRequest struct {
	PaidAmount     decimal.Decimal `json:"paidAmount"`
	PaymentMode    string          `json:"paymentMode"`
	PaymentDetails string          `json:"paymentDetails"`
}

// ReceiptFilterRequest represents receipt list query parameters
type ReceiptFilterRequest struct {
	State      string `form:"state"`
	CustomerID string `form:"customerId"`
	Search     string `form:"search"`
	StartDate  string `form:"startDate"`
	EndDate    string `form:"endDate"`
	Page       string `form:"page"`
	PerPage    string `form:"per_page"`
}
