package entity

// TicketHeader holds the store header printed at the top of a receipt.
type TicketHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// TicketLine is one particular line on a printed receipt.
type TicketLine struct {
	Particular string `json:"particular"`
	Amount     string `json:"amount"`
}

// ReceiptTicket is a value object representing a printable receipt.
// It is NOT a database entity; it is composed from a receipt at print time.
type ReceiptTicket struct {
	Header         TicketHeader `json:"header"`
	ReceiptNumber  string       `json:"receipt_no"`
	Date           string       `json:"date"`
	Customer       string       `json:"customer,omitempty"`
	AccountNumber  string       `json:"account_number,omitempty"`
	State          string       `json:"state"`
	PaymentMode    string       `json:"payment_mode,omitempty"`
	PaymentDetails string       `json:"payment_details,omitempty"`
	Lines          []TicketLine `json:"lines"`
	Total          string       `json:"total"`
	Paid           string       `json:"paid"`
	Due            string       `json:"due"`
}
