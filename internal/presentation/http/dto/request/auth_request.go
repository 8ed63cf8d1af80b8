package request

// LoginRequest represents a login request
type LoginRequest struct {
	Mobile   string `json:"mobile" binding:"required,min=6,max=20"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// SwitchStoreRequest moves the session to another store
type SwitchStoreRequest struct {
	StoreID string `json:"storeId" binding:"required,uuid"`
}
