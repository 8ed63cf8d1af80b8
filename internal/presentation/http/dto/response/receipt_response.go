package response

import (
	"time"

	"github.com/sangkips/ddms-api/internal/domain/entity"
	"github.com/sangkips/ddms-api/internal/domain/enum"
	"github.com/sangkips/ddms-api/internal/domain/workflow"
	"github.com/sangkips/ddms-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// DateLayout is how receipt dates travel on the wire.
const DateLayout = "2006-01-02"

type ReceiptItemResponse struct {
	ID             string          `json:"id"`
	ParticularID   string          `json:"particularId"`
	ParticularName string          `json:"particularName,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
}

type ReceiptResponse struct {
	ID              string                `json:"id"`
	ReceiptNumber   string                `json:"receiptNumber"`
	Date            string                `json:"date"`
	ReferenceNumber string                `json:"referenceNumber,omitempty"`
	CustomerID      string                `json:"customerId"`
	CustomerName    string                `json:"customerName"`
	Items           []ReceiptItemResponse `json:"items"`
	TotalAmount     decimal.Decimal       `json:"totalAmount"`
	PaidAmount      decimal.Decimal       `json:"paidAmount"`
	Outstanding     decimal.Decimal       `json:"outstanding"`
	ReceiptState    enum.ReceiptState     `json:"receiptState"`
	StateLabel      string                `json:"stateLabel"`
	ColorClass      string                `json:"colorClass"`
	PaymentMode     enum.PaymentMode      `json:"paymentMode,omitempty"`
	PaymentDetails  string                `json:"paymentDetails,omitempty"`
	ApprovedBy      string                `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time            `json:"approvedAt,omitempty"`
	StoreID         string                `json:"storeId"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}

// NewReceiptResponse maps a receipt for the wire.
func NewReceiptResponse(r *entity.Receipt) *ReceiptResponse {
	out := &ReceiptResponse{
		ID:              r.ID.String(),
		ReceiptNumber:   r.ReceiptNumber,
		Date:            r.Date.Format(DateLayout),
		ReferenceNumber: r.ReferenceNumber,
		CustomerID:      r.CustomerID.String(),
		CustomerName:    r.CustomerName,
		Items:           make([]ReceiptItemResponse, 0, len(r.Items)),
		TotalAmount:     r.TotalAmount,
		PaidAmount:      r.PaidAmount,
		Outstanding:     r.Outstanding(),
		ReceiptState:    r.ReceiptState,
		StateLabel:      r.ReceiptState.Label(),
		ColorClass:      workflow.ColorClassFor(r.ReceiptState),
		PaymentMode:     r.PaymentMode,
		PaymentDetails:  r.PaymentDetails,
		ApprovedAt:      r.ApprovedAt,
		StoreID:         r.StoreID.String(),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	if r.ApprovedBy != nil {
		out.ApprovedBy = r.ApprovedBy.String()
	}
	for _, item := range r.Items {
		out.Items = append(out.Items, ReceiptItemResponse{
			ID:             item.ID.String(),
			ParticularID:   item.ParticularID.String(),
			ParticularName: item.ParticularName,
			Amount:         item.Amount,
		})
	}
	return out
}

// ReceiptListResponse is one page of receipts
type ReceiptListResponse struct {
	Receipts   []*ReceiptResponse     `json:"receipts"`
	Pagination *pagination.Pagination `json:"pagination"`
}

func NewReceiptListResponse(result *pagination.PaginatedResult[entity.Receipt]) *ReceiptListResponse {
	out := &ReceiptListResponse{
		Receipts:   make([]*ReceiptResponse, 0, len(result.Items)),
		Pagination: result.Pagination,
	}
	for i := range result.Items {
		out.Receipts = append(out.Receipts, NewReceiptResponse(&result.Items[i]))
	}
	return out
}

type ApprovalActor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ApprovalResponse is one entry in a receipt's lifecycle history
type ApprovalResponse struct {
	ID            string            `json:"id"`
	FromState     enum.ReceiptState `json:"fromState"`
	ToState       enum.ReceiptState `json:"toState"`
	ApprovedBy    ApprovalActor     `json:"approvedBy"`
	ApprovedAt    time.Time         `json:"approvedAt"`
	ApprovalNotes string            `json:"approvalNotes,omitempty"`
	Amount        decimal.Decimal   `json:"amount"`
}

func NewApprovalResponses(transitions []entity.ReceiptTransition) []ApprovalResponse {
	out := make([]ApprovalResponse, 0, len(transitions))
	for _, t := range transitions {
		a := ApprovalResponse{
			ID:            t.ID.String(),
			FromState:     t.FromState,
			ToState:       t.ToState,
			ApprovedBy:    ApprovalActor{ID: t.ActorID.String()},
			ApprovedAt:    t.CreatedAt,
			ApprovalNotes: t.Notes,
			Amount:        t.Amount,
		}
		if t.Actor != nil {
			a.ApprovedBy.Name = t.Actor.Name
		}
		out = append(out, a)
	}
	return out
}

// ActionResponse is one operator action available on a receipt
type ActionResponse struct {
	Kind       workflow.ActionKind `json:"kind"`
	Label      string              `json:"label"`
	Target     enum.ReceiptState   `json:"target"`
	Permission string              `json:"permission"`
	Payment    bool                `json:"payment"`
}

func NewActionResponses(actions []workflow.Action) []ActionResponse {
	out := make([]ActionResponse, 0, len(actions))
	for _, a := range actions {
		out = append(out, ActionResponse{
			Kind:       a.Kind,
			Label:      a.Label,
			Target:     a.Target,
			Permission: a.Permission,
			Payment:    a.IsPayment(),
		})
	}
	return out
}
