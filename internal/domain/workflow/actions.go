package workflow

import (
	"github.com/sangkips/ddms-api/internal/domain/access"
	"github.com/sangkips/ddms-api/internal/domain/enum"
)

// ActionKind identifies an operator action on a receipt.
type ActionKind string

const (
	ActionSubmit          ActionKind = "submit"
	ActionSendForApproval ActionKind = "send-for-approval"
	ActionApprove         ActionKind = "approve"
	ActionReject          ActionKind = "reject"
	ActionMarkPaid        ActionKind = "mark-paid"
	ActionCompletePayment ActionKind = "complete-payment"
	ActionCancel          ActionKind = "cancel"
)

// Action is one entry of the per-state action surface.
type Action struct {
	Kind  ActionKind
	Label string
	// Target is the state the action requests. Payment actions name PAID;
	// the amount decides between PAID and PARTIAL.
	Target enum.ReceiptState
	// Permission is the receipts action the subject must hold.
	Permission string
}

// IsPayment reports whether the action records a payment.
func (a Action) IsPayment() bool {
	return a.Kind == ActionMarkPaid || a.Kind == ActionCompletePayment
}

func stateActions(s enum.ReceiptState) []Action {
	switch s {
	case enum.ReceiptStateDraft:
		return []Action{
			{Kind: ActionSubmit, Label: "Submit Receipt", Target: enum.ReceiptStateUnpaid},
		}
	case enum.ReceiptStateUnpaid:
		return []Action{
			{Kind: ActionSendForApproval, Label: "Send for Approval", Target: enum.ReceiptStatePendingApproval},
			{Kind: ActionMarkPaid, Label: "Mark as Paid", Target: enum.ReceiptStatePaid},
		}
	case enum.ReceiptStatePendingApproval:
		return []Action{
			{Kind: ActionApprove, Label: "Approve", Target: enum.ReceiptStateApproved, Permission: access.ActionApprove},
			{Kind: ActionReject, Label: "Reject", Target: enum.ReceiptStateUnpaid},
		}
	case enum.ReceiptStateApproved:
		return []Action{
			{Kind: ActionMarkPaid, Label: "Mark as Paid", Target: enum.ReceiptStatePaid},
		}
	case enum.ReceiptStatePartial:
		return []Action{
			{Kind: ActionCompletePayment, Label: "Complete Payment", Target: enum.ReceiptStatePaid},
		}
	}
	return nil
}

// Actions returns the actions offered for a receipt in state s to the
// given subject. Every action except approve needs receipts:update;
// approve needs receipts:approve. Actions the subject may not perform
// are left out.
func Actions(s enum.ReceiptState, auth access.Authorizer) []Action {
	candidates := stateActions(s)
	if s != enum.ReceiptStatePaid && CanTransition(s, enum.ReceiptStateCancelled) {
		candidates = append(candidates, Action{
			Kind:   ActionCancel,
			Label:  "Cancel",
			Target: enum.ReceiptStateCancelled,
		})
	}

	var out []Action
	for _, a := range candidates {
		if a.Permission == "" {
			a.Permission = access.ActionUpdate
		}
		if auth == nil || !auth.HasPermission(access.ResourceReceipts, a.Permission) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// FindAction returns the action of the given kind offered in state s.
func FindAction(s enum.ReceiptState, auth access.Authorizer, kind ActionKind) (Action, bool) {
	for _, a := range Actions(s, auth) {
		if a.Kind == kind {
			return a, true
		}
	}
	return Action{}, false
}
