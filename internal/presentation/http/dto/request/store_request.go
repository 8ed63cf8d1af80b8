package request

// CreateStoreRequest represents a store creation request
type CreateStoreRequest struct {
	Name           string `json:"name" binding:"required,min=2,max=255"`
	Address        string `json:"address"`
	City           string `json:"city" binding:"max=100"`
	State          string `json:"state" binding:"max=100"`
	Contact        string `json:"contact" binding:"max=50"`
	ReceiptPrefix  string `json:"receiptPrefix" binding:"omitempty,alphanum,max=20"`
	PaymentOptions string `json:"paymentOptions"`
}

// UpdateStoreRequest represents a store update request
type UpdateStoreRequest struct {
	Name           *string `json:"name" binding:"omitempty,min=2,max=255"`
	Address        *string `json:"address"`
	City           *string `json:"city" binding:"omitempty,max=100"`
	State          *string `json:"state" binding:"omitempty,max=100"`
	Contact        *string `json:"contact" binding:"omitempty,max=50"`
	ReceiptPrefix  *string `json:"receiptPrefix" binding:"omitempty,alphanum,max=20"`
	PaymentOptions *string `json:"paymentOptions"`
}

// AddMemberRequest adds an existing user to a store
type AddMemberRequest struct {
	UserID    string `json:"userId" binding:"required,uuid"`
	IsDefault bool   `json:"isDefault"`
}
