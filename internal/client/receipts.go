package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ddms-api/internal/domain/enum"
	"github.com/sangkips/ddms-api/pkg/ddms"
	"github.com/shopspring/decimal"
)

// Receipt is the client's projection of a donation receipt. The server
// copy is authoritative; a projection is only replaced by a fresh read.
type Receipt struct {
	ID              string            `json:"id"`
	ReceiptNumber   string            `json:"receiptNumber"`
	Date            string            `json:"date"`
	ReferenceNumber string            `json:"referenceNumber,omitempty"`
	CustomerID      string            `json:"customerId"`
	CustomerName    string            `json:"customerName"`
	Items           []ReceiptItem     `json:"items,omitempty"`
	TotalAmount     decimal.Decimal   `json:"totalAmount"`
	PaidAmount      decimal.Decimal   `json:"paidAmount"`
	ReceiptState    enum.ReceiptState `json:"receiptState"`
	PaymentMode     enum.PaymentMode  `json:"paymentMode,omitempty"`
	PaymentDetails  string            `json:"paymentDetails,omitempty"`
	ApprovedBy      string            `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time        `json:"approvedAt,omitempty"`
	StoreID         string            `json:"storeId"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// Outstanding returns what is still to be paid.
func (r *Receipt) Outstanding() decimal.Decimal {
	due := r.TotalAmount.Sub(r.PaidAmount)
	if due.IsNegative() {
		return decimal.Zero
	}
	return due
}

// ReceiptItem is one particular line on a receipt.
type ReceiptItem struct {
	ID             string          `json:"id,omitempty"`
	ParticularID   string          `json:"particularId"`
	ParticularName string          `json:"particularName,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
}

// Approval is one entry of a receipt's transition history.
type Approval struct {
	ID         string            `json:"id"`
	FromState  enum.ReceiptState `json:"fromState"`
	ToState    enum.ReceiptState `json:"toState"`
	ApprovedBy struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"approvedBy"`
	ApprovedAt    time.Time `json:"approvedAt"`
	ApprovalNotes string    `json:"approvalNotes,omitempty"`
}

// ListReceiptsParams filters ListReceipts.
type ListReceiptsParams struct {
	State      enum.ReceiptState
	CustomerID string
	Page       int
	PerPage    int
}

// Pagination describes a page of results.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
}

// ReceiptList is a page of receipts.
type ReceiptList struct {
	Receipts   []Receipt   `json:"receipts"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// CreateReceiptInput is the body of POST /receipts.
type CreateReceiptInput struct {
	Date            string           `json:"date"`
	ReferenceNumber string           `json:"referenceNumber,omitempty"`
	CustomerID      string           `json:"customerId"`
	Items           []ReceiptItem    `json:"items"`
	PaymentMode     enum.PaymentMode `json:"paymentMode,omitempty"`
	PaymentDetails  string           `json:"paymentDetails,omitempty"`
}

func receiptPath(id string, suffix ...string) string {
	p := "/receipts/" + url.PathEscape(id)
	if len(suffix) > 0 {
		p += "/" + strings.Join(suffix, "/")
	}
	return p
}

// ListReceipts returns receipts of the current store.
func (c *Client) ListReceipts(ctx context.Context, params ListReceiptsParams) (*ReceiptList, error) {
	q := url.Values{}
	if params.State != "" {
		q.Set("state", strings.ToLower(string(params.State)))
	}
	if params.CustomerID != "" {
		q.Set("customerId", params.CustomerID)
	}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(params.PerPage))
	}

	r, err := c.newRequest(http.MethodGet, "/receipts", q, nil)
	if err != nil {
		return nil, err
	}
	var out ReceiptList
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetReceipt reads one receipt.
func (c *Client) GetReceipt(ctx context.Context, id string) (*Receipt, error) {
	r, err := c.newRequest(http.MethodGet, receiptPath(id), nil, nil)
	if err != nil {
		return nil, err
	}
	var out Receipt
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateReceipt creates a DRAFT receipt. The request carries an
// idempotency key so a retried call does not create a duplicate.
func (c *Client) CreateReceipt(ctx context.Context, in CreateReceiptInput) (*Receipt, error) {
	r, err := c.newRequest(http.MethodPost, "/receipts", nil, in)
	if err != nil {
		return nil, err
	}
	r.headers = map[string]string{ddms.HeaderIdempotencyKey: uuid.NewString()}

	var out Receipt
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangeReceiptState asks the server to move a receipt to newState.
func (c *Client) ChangeReceiptState(ctx context.Context, id string, newState enum.ReceiptState, notes string) (*Receipt, error) {
	body := struct {
		NewState string `json:"newState"`
		Notes    string `json:"notes,omitempty"`
	}{NewState: strings.ToUpper(string(newState)), Notes: notes}

	r, err := c.newRequest(http.MethodPost, receiptPath(id, "state-change"), nil, body)
	if err != nil {
		return nil, err
	}
	var out Receipt
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ApproveReceipt approves a receipt pending approval.
func (c *Client) ApproveReceipt(ctx context.Context, id, notes string) (*Receipt, error) {
	body := struct {
		Notes string `json:"notes,omitempty"`
	}{Notes: notes}

	r, err := c.newRequest(http.MethodPost, receiptPath(id, "approve"), nil, body)
	if err != nil {
		return nil, err
	}
	var out Receipt
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PayReceipt records a payment against a receipt.
func (c *Client) PayReceipt(ctx context.Context, id string, amount decimal.Decimal, details string) (*Receipt, error) {
	body := struct {
		PaidAmount     decimal.Decimal `json:"paidAmount"`
		PaymentDetails string          `json:"paymentDetails"`
	}{PaidAmount: amount, PaymentDetails: details}

	r, err := c.newRequest(http.MethodPost, receiptPath(id, "pay"), nil, body)
	if err != nil {
		return nil, err
	}
	var out Receipt
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReceiptApprovals returns the transition history of a receipt.
func (c *Client) ReceiptApprovals(ctx context.Context, id string) ([]Approval, error) {
	r, err := c.newRequest(http.MethodGet, receiptPath(id, "approvals"), nil, nil)
	if err != nil {
		return nil, err
	}
	var out []Approval
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return out, nil
}
