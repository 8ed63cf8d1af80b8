// Package workflow holds the receipt lifecycle rules. The functions here
// are pure: they evaluate a proposed change without side effects and are
// shared by the API server and the console client.
package workflow

import (
	"fmt"

	"github.com/sangkips/ddms-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

var transitions = map[enum.ReceiptState][]enum.ReceiptState{
	enum.ReceiptStateDraft: {
		enum.ReceiptStateUnpaid,
		enum.ReceiptStateCancelled,
	},
	enum.ReceiptStateUnpaid: {
		enum.ReceiptStatePendingApproval,
		enum.ReceiptStatePaid,
		enum.ReceiptStatePartial,
		enum.ReceiptStateCancelled,
	},
	enum.ReceiptStatePendingApproval: {
		enum.ReceiptStateApproved,
		enum.ReceiptStateUnpaid,
		enum.ReceiptStateCancelled,
	},
	enum.ReceiptStateApproved: {
		enum.ReceiptStatePaid,
		enum.ReceiptStatePartial,
		enum.ReceiptStateCancelled,
	},
	enum.ReceiptStatePaid: {
		enum.ReceiptStateCancelled,
	},
	enum.ReceiptStatePartial: {
		enum.ReceiptStatePaid,
		enum.ReceiptStateCancelled,
	},
	enum.ReceiptStateCancelled: {},
}

// ValidTransitionsFrom returns the states reachable from s in one step.
// Unknown states have no successors.
func ValidTransitionsFrom(s enum.ReceiptState) []enum.ReceiptState {
	next := transitions[s]
	out := make([]enum.ReceiptState, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether from -> to is an edge of the lifecycle.
func CanTransition(from, to enum.ReceiptState) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func IsTerminal(s enum.ReceiptState) bool {
	return len(transitions[s]) == 0
}

// TransitionError is returned when a requested edge is not in the graph.
type TransitionError struct {
	From enum.ReceiptState
	To   enum.ReceiptState
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("Cannot transition from %s to %s", e.From, e.To)
}

// GuardResult is the outcome of evaluating a transition.
type GuardResult struct {
	Allowed bool
	Reason  string
	From    enum.ReceiptState
	To      enum.ReceiptState
}

// Error converts a rejected result into a *TransitionError.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return &TransitionError{From: r.From, To: r.To}
}

// CheckTransition evaluates from -> to.
func CheckTransition(from, to enum.ReceiptState) GuardResult {
	if !CanTransition(from, to) {
		return GuardResult{
			From:   from,
			To:     to,
			Reason: fmt.Sprintf("Cannot transition from %s to %s", from, to),
		}
	}
	return GuardResult{Allowed: true, From: from, To: to}
}

// ColorClassFor returns the display color hint for a state.
func ColorClassFor(s enum.ReceiptState) string {
	switch s {
	case enum.ReceiptStateDraft:
		return "gray"
	case enum.ReceiptStateUnpaid:
		return "red"
	case enum.ReceiptStatePendingApproval:
		return "yellow"
	case enum.ReceiptStateApproved:
		return "blue"
	case enum.ReceiptStatePaid:
		return "green"
	case enum.ReceiptStatePartial:
		return "orange"
	case enum.ReceiptStateCancelled:
		return "red"
	default:
		return "gray"
	}
}

// PaymentTarget returns the state a payment of amount moves a receipt
// to, given its total and what has already been paid.
func PaymentTarget(total, alreadyPaid, amount decimal.Decimal) enum.ReceiptState {
	if alreadyPaid.Add(amount).GreaterThanOrEqual(total) {
		return enum.ReceiptStatePaid
	}
	return enum.ReceiptStatePartial
}
