package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// ReceiptState is the lifecycle state of a donation receipt
type ReceiptState string

const (
	ReceiptStateDraft           ReceiptState = "DRAFT"
	ReceiptStateUnpaid          ReceiptState = "UNPAID"
	ReceiptStatePendingApproval ReceiptState = "PENDING_APPROVAL"
	ReceiptStateApproved        ReceiptState = "APPROVED"
	ReceiptStatePaid            ReceiptState = "PAID"
	ReceiptStatePartial         ReceiptState = "PARTIAL"
	ReceiptStateCancelled       ReceiptState = "CANCELLED"
)

// ReceiptStates lists every known state in lifecycle order.
var ReceiptStates = []ReceiptState{
	ReceiptStateDraft,
	ReceiptStateUnpaid,
	ReceiptStatePendingApproval,
	ReceiptStateApproved,
	ReceiptStatePaid,
	ReceiptStatePartial,
	ReceiptStateCancelled,
}

func (s ReceiptState) String() string {
	return string(s)
}

// IsKnown reports whether s is one of the seven lifecycle states.
func (s ReceiptState) IsKnown() bool {
	for _, known := range ReceiptStates {
		if s == known {
			return true
		}
	}
	return false
}

// Label returns a human readable form, e.g. "Pending Approval".
func (s ReceiptState) Label() string {
	parts := strings.Split(strings.ToLower(string(s)), "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

// ParseReceiptState parses a state name case-insensitively. Unknown
// names are returned as-is together with an error.
func ParseReceiptState(str string) (ReceiptState, error) {
	s := ReceiptState(strings.ToUpper(strings.TrimSpace(str)))
	if !s.IsKnown() {
		return s, fmt.Errorf("unknown receipt state %q", str)
	}
	return s, nil
}

func (s ReceiptState) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *ReceiptState) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	// Unknown values are kept so callers can treat them as terminal.
	*s = ReceiptState(strings.ToUpper(str))
	return nil
}

func (s ReceiptState) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *ReceiptState) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*s = ReceiptStateDraft
	case string:
		*s = ReceiptState(v)
	case []byte:
		*s = ReceiptState(v)
	default:
		return fmt.Errorf("cannot scan %T into ReceiptState", value)
	}
	return nil
}
