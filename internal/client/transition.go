package client

import (
	"context"
	"errors"

	"github.com/sangkips/ddms-api/internal/domain/access"
	"github.com/sangkips/ddms-api/internal/domain/enum"
	"github.com/sangkips/ddms-api/internal/domain/workflow"
	"github.com/sangkips/ddms-api/internal/notify"
	"github.com/shopspring/decimal"
)

// ReceiptBackend is the part of the API a Requester needs.
type ReceiptBackend interface {
	GetReceipt(ctx context.Context, id string) (*Receipt, error)
	ChangeReceiptState(ctx context.Context, id string, newState enum.ReceiptState, notes string) (*Receipt, error)
	ApproveReceipt(ctx context.Context, id, notes string) (*Receipt, error)
	PayReceipt(ctx context.Context, id string, amount decimal.Decimal, details string) (*Receipt, error)
}

// Requester turns operator intent into receipt transitions. It checks
// the lifecycle and the operator's permissions locally, so an illegal
// request never reaches the network, and it replaces the caller's
// projection only with a fresh server read after success.
type Requester struct {
	backend  ReceiptBackend
	auth     access.Authorizer
	notifier notify.Notifier
}

// NewRequester returns a Requester. auth is consulted on every call.
func NewRequester(backend ReceiptBackend, auth access.Authorizer, notifier notify.Notifier) *Requester {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &Requester{backend: backend, auth: auth, notifier: notifier}
}

// ActionInput carries the operator-supplied values of an action.
type ActionInput struct {
	Notes   string
	Amount  decimal.Decimal
	Details string
}

// Perform runs one of the actions offered for the receipt's state.
func (q *Requester) Perform(ctx context.Context, r *Receipt, kind workflow.ActionKind, in ActionInput) error {
	switch kind {
	case workflow.ActionApprove:
		return q.Approve(ctx, r, in.Notes)
	case workflow.ActionMarkPaid, workflow.ActionCompletePayment:
		amount := in.Amount
		if amount.IsZero() && kind == workflow.ActionCompletePayment {
			amount = r.Outstanding()
		}
		return q.Pay(ctx, r, amount, in.Details)
	case workflow.ActionSubmit:
		return q.RequestTransition(ctx, r, enum.ReceiptStateUnpaid, in.Notes)
	case workflow.ActionSendForApproval:
		return q.RequestTransition(ctx, r, enum.ReceiptStatePendingApproval, in.Notes)
	case workflow.ActionReject:
		return q.RequestTransition(ctx, r, enum.ReceiptStateUnpaid, in.Notes)
	case workflow.ActionCancel:
		return q.RequestTransition(ctx, r, enum.ReceiptStateCancelled, in.Notes)
	}
	return errors.New("unknown action " + string(kind))
}

// RequestTransition asks the server to move r to the target state.
func (q *Requester) RequestTransition(ctx context.Context, r *Receipt, to enum.ReceiptState, notes string) error {
	if err := q.guard(r.ReceiptState, to, access.ActionUpdate); err != nil {
		return err
	}
	updated, err := q.backend.ChangeReceiptState(ctx, r.ID, to, notes)
	if err != nil {
		q.notifier.Error(messageFor(err, "State change failed"))
		return err
	}
	q.reload(ctx, r, updated)
	q.notifier.Success("Receipt state updated successfully")
	return nil
}

// Approve approves a receipt pending approval.
func (q *Requester) Approve(ctx context.Context, r *Receipt, notes string) error {
	if err := q.guard(r.ReceiptState, enum.ReceiptStateApproved, access.ActionApprove); err != nil {
		return err
	}
	updated, err := q.backend.ApproveReceipt(ctx, r.ID, notes)
	if err != nil {
		q.notifier.Error(messageFor(err, "Approval failed"))
		return err
	}
	q.reload(ctx, r, updated)
	q.notifier.Success("Receipt approved successfully")
	return nil
}

// Pay records a payment. Whether it lands on PAID or PARTIAL depends on
// the amount against what is outstanding.
func (q *Requester) Pay(ctx context.Context, r *Receipt, amount decimal.Decimal, details string) error {
	target := workflow.PaymentTarget(r.TotalAmount, r.PaidAmount, amount)
	if err := q.guard(r.ReceiptState, target, access.ActionUpdate); err != nil {
		return err
	}
	updated, err := q.backend.PayReceipt(ctx, r.ID, amount, details)
	if err != nil {
		q.notifier.Error(messageFor(err, "Payment failed"))
		return err
	}
	q.reload(ctx, r, updated)
	q.notifier.Success("Payment recorded successfully")
	return nil
}

func (q *Requester) guard(from, to enum.ReceiptState, action string) error {
	if res := workflow.CheckTransition(from, to); !res.Allowed {
		q.notifier.Error(res.Reason)
		return res.Error()
	}
	if q.auth == nil || !q.auth.HasPermission(access.ResourceReceipts, action) {
		q.notifier.Error(ErrForbidden.Error())
		return ErrForbidden
	}
	return nil
}

// reload replaces the projection with a fresh server read, falling back
// to the mutation's own response when the read fails.
func (q *Requester) reload(ctx context.Context, r *Receipt, updated *Receipt) {
	fresh, err := q.backend.GetReceipt(ctx, r.ID)
	if err != nil || fresh == nil {
		fresh = updated
	}
	if fresh != nil {
		*r = *fresh
	}
}
