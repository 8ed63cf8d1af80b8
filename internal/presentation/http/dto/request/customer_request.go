package request

// CreateCustomerRequest represents a donor creation request
type CreateCustomerRequest struct {
	AccountNumber string  `json:"accountNumber" binding:"max=100"`
	Name          string  `json:"name" binding:"required,min=2,max=255"`
	Mobile        string  `json:"mobile" binding:"max=20"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Address       string  `json:"address"`
}

// UpdateCustomerRequest represents a donor update request
type UpdateCustomerRequest struct {
	AccountNumber *string `json:"accountNumber" binding:"omitempty,max=100"`
	Name          *string `json:"name" binding:"omitempty,min=2,max=255"`
	Mobile        *string `json:"mobile" binding:"omitempty,max=20"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Address       *string `json:"address"`
	Active        *bool   `json:"active"`
}

// CreateParticularRequest represents a particular creation request
type CreateParticularRequest struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
	Type string `json:"type" binding:"omitempty,oneof=RECEIPT CHALLAN"`
}

// UpdateParticularRequest represents a particular update request
type UpdateParticularRequest struct {
	Name   *string `json:"name" binding:"omitempty,min=2,max=255"`
	Type   *string `json:"type" binding:"omitempty,oneof=RECEIPT CHALLAN"`
	Active *bool   `json:"active"`
}
