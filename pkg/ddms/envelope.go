// Package ddms defines the wire envelope and headers shared by the API
// server and its clients.
package ddms

const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusWarning = "warning"

	LoginAuthenticated   = "authenticated"
	LoginUnauthenticated = "unauthenticated"
	LoginExpired         = "expired"
)

// Headers carried on every authenticated request.
const (
	HeaderAuthorization  = "Authorization"
	HeaderStoreID        = "X-Store-ID"
	HeaderRequestID      = "X-Request-ID"
	HeaderIdempotencyKey = "Idempotency-Key"
)

// Error codes returned in DDMS_error_code.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeConflict           = "CONFLICT"
	CodeInternal           = "INTERNAL_ERROR"
	CodeRateLimited        = "RATE_LIMITED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeStoreRequired      = "STORE_CONTEXT_REQUIRED"
	CodeInvalidTransition  = "INVALID_STATE_TRANSITION"
	CodeInsufficientAmount = "INSUFFICIENT_AMOUNT"
	CodeOverpayment        = "OVERPAYMENT"
	CodeApprovalRequired   = "APPROVAL_REQUIRED"
	CodePaymentRequired    = "PAYMENT_REQUIRED"
	CodeReceiptLocked      = "RECEIPT_LOCKED"
)

// Envelope wraps every response body.
type Envelope[T any] struct {
	Status      string `json:"DDMS_status"`
	LoginStatus string `json:"DDMS_login_status"`
	ErrorCode   string `json:"DDMS_error_code,omitempty"`
	Message     string `json:"DDMS_message,omitempty"`
	Data        T      `json:"DDMS_data"`
}

// IsLoggedOut reports whether the login status says the caller is no
// longer authenticated.
func IsLoggedOut(loginStatus string) bool {
	return loginStatus == LoginUnauthenticated || loginStatus == LoginExpired
}
