package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ddms-api/internal/domain/access"
	"gorm.io/gorm"
)

// User is an operator who signs in with a mobile number
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Mobile    string         `gorm:"size:20;unique;not null" json:"mobile"`
	Email     *string        `gorm:"size:255" json:"email,omitempty"`
	Password  string         `gorm:"size:255" json:"-"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Roles       []Role            `gorm:"many2many:user_roles;foreignKey:ID;joinForeignKey:user_id;References:ID;joinReferences:role_id" json:"roles,omitempty"`
	Memberships []StoreMembership `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// Role groups permissions. A nil StoreID marks a system role that
// applies in every store.
type Role struct {
	ID          uint         `gorm:"primary_key" json:"id"`
	Name        string       `gorm:"size:255;not null" json:"name"`
	Description string       `gorm:"size:255" json:"description,omitempty"`
	StoreID     *uuid.UUID   `gorm:"type:uuid;index" json:"storeId,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	Permissions []Permission `gorm:"many2many:role_permissions;foreignKey:ID;joinForeignKey:role_id;References:ID;joinReferences:permission_id" json:"permissions,omitempty"`
}

// TableName returns the table name for the Role model
func (Role) TableName() string {
	return "roles"
}

// AppliesTo reports whether the role is in force in the given store.
func (r *Role) AppliesTo(storeID uuid.UUID) bool {
	return r.StoreID == nil || *r.StoreID == storeID
}

// Permission is a resource:action grant
type Permission struct {
	ID        uint      `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"size:255;unique;not null" json:"name"`
	Resource  string    `gorm:"size:100;not null" json:"resource"`
	Action    string    `gorm:"size:50;not null" json:"action"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the table name for the Permission model
func (Permission) TableName() string {
	return "permissions"
}

// NewPermission builds a permission named resource:action.
func NewPermission(resource, action string) Permission {
	return Permission{
		Name:     access.Grant{Resource: resource, Action: action}.String(),
		Resource: resource,
		Action:   action,
	}
}

// HasRole checks if the user has a specific role
func (u *User) HasRole(roleName string) bool {
	for _, role := range u.Roles {
		if role.Name == roleName {
			return true
		}
	}
	return false
}

// RoleNames returns the names of the roles in force in storeID.
func (u *User) RoleNames(storeID uuid.UUID) []string {
	names := make([]string, 0, len(u.Roles))
	for i := range u.Roles {
		if u.Roles[i].AppliesTo(storeID) {
			names = append(names, u.Roles[i].Name)
		}
	}
	return names
}

// GetPermissions returns the resource:action names granted in storeID.
func (u *User) GetPermissions(storeID uuid.UUID) []string {
	seen := make(map[string]bool)
	result := make([]string, 0)
	for i := range u.Roles {
		if !u.Roles[i].AppliesTo(storeID) {
			continue
		}
		for _, p := range u.Roles[i].Permissions {
			if !seen[p.Name] {
				seen[p.Name] = true
				result = append(result, p.Name)
			}
		}
	}
	return result
}

// IsSuperAdmin reports whether the user holds the unrestricted role.
func (u *User) IsSuperAdmin() bool {
	return u.HasRole(access.SuperAdminRole)
}
