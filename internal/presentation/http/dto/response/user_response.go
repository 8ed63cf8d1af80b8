package response

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ddms-api/internal/domain/access"
	"github.com/sangkips/ddms-api/internal/domain/entity"
)

// UserResponse is the signed-in user as clients see it. Roles and the
// flat permission list are those in force in CurrentStoreID.
type UserResponse struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Mobile         string             `json:"mobile"`
	Email          string             `json:"email,omitempty"`
	Roles          []access.RoleGrant `json:"roles"`
	Permissions    []access.Grant     `json:"permissions"`
	CurrentStoreID string             `json:"currentStoreId,omitempty"`
	Stores         []entity.Store     `json:"stores"`
}

// NewUserResponse builds a UserResponse scoped to storeID.
func NewUserResponse(user *entity.User, stores []entity.Store, storeID uuid.UUID) *UserResponse {
	storeNames := make(map[uuid.UUID]string, len(stores))
	for _, s := range stores {
		storeNames[s.ID] = s.Name
	}
	if stores == nil {
		stores = []entity.Store{}
	}

	out := &UserResponse{
		ID:          user.ID.String(),
		Name:        user.Name,
		Mobile:      user.Mobile,
		Roles:       []access.RoleGrant{},
		Permissions: []access.Grant{},
		Stores:      stores,
	}
	if user.Email != nil {
		out.Email = *user.Email
	}
	if storeID != uuid.Nil {
		out.CurrentStoreID = storeID.String()
	}

	for i := range user.Roles {
		role := &user.Roles[i]
		if !role.AppliesTo(storeID) {
			continue
		}
		grant := access.RoleGrant{
			RoleID:      strconv.FormatUint(uint64(role.ID), 10),
			RoleName:    role.Name,
			Permissions: make([]access.Grant, 0, len(role.Permissions)),
		}
		// System roles are reported against the current store.
		scope := storeID
		if role.StoreID != nil {
			scope = *role.StoreID
		}
		if scope != uuid.Nil {
			grant.StoreID = scope.String()
			grant.StoreName = storeNames[scope]
		}
		for _, p := range role.Permissions {
			grant.Permissions = append(grant.Permissions, access.Grant{
				ID:       strconv.FormatUint(uint64(p.ID), 10),
				Name:     p.Name,
				Resource: p.Resource,
				Action:   p.Action,
			})
		}
		out.Roles = append(out.Roles, grant)
	}

	for _, name := range user.GetPermissions(storeID) {
		if g, ok := access.ParseGrant(name); ok {
			out.Permissions = append(out.Permissions, g)
		}
	}
	return out
}

// LoginResponse is returned by login and refresh
type LoginResponse struct {
	User         *UserResponse `json:"user"`
	Token        string        `json:"token"`
	RefreshToken string        `json:"refreshToken"`
	TokenType    string        `json:"tokenType"`
}

// SwitchStoreResponse is returned when the session changes store
type SwitchStoreResponse struct {
	Token        string        `json:"token"`
	RefreshToken string        `json:"refreshToken"`
	Store        *entity.Store `json:"store"`
	User         *UserResponse `json:"user"`
}

// StaffResponse is a store member as listed by the users API
type StaffResponse struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Mobile    string             `json:"mobile"`
	Email     string             `json:"email,omitempty"`
	Active    bool               `json:"active"`
	Roles     []access.RoleGrant `json:"roles"`
	CreatedAt time.Time          `json:"createdAt"`
}

// NewStaffResponse builds a StaffResponse with the roles in force in storeID.
func NewStaffResponse(user *entity.User, storeID uuid.UUID) *StaffResponse {
	full := NewUserResponse(user, nil, storeID)
	return &StaffResponse{
		ID:        full.ID,
		Name:      full.Name,
		Mobile:    full.Mobile,
		Email:     full.Email,
		Active:    user.Active,
		Roles:     full.Roles,
		CreatedAt: user.CreatedAt,
	}
}

// NewStaffResponses maps a page of users.
func NewStaffResponses(users []entity.User, storeID uuid.UUID) []*StaffResponse {
	out := make([]*StaffResponse, 0, len(users))
	for i := range users {
		out = append(out, NewStaffResponse(&users[i], storeID))
	}
	return out
}
