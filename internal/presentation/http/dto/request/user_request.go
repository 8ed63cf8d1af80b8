package request

// CreateUserRequest adds an operator to the current store
type CreateUserRequest struct {
	Name     string  `json:"name" binding:"required,min=2,max=255"`
	Mobile   string  `json:"mobile" binding:"required,min=10,max=20,numeric"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password string  `json:"password" binding:"required,min=8,max=72"`
	RoleIDs  []uint  `json:"roleIds" binding:"required,min=1"`
}

// UpdateUserRolesRequest replaces a member's roles in the current store
type UpdateUserRolesRequest struct {
	RoleIDs []uint `json:"roleIds" binding:"required"`
}
