// Package access decides what an authenticated subject may do.
//
// A subject is described by the roles and permissions the backend hands
// out. Two payload shapes exist in the wild: the login response carries
// a flat top-level permission list plus roles keyed by "roleName", while
// the users API nests permissions under roles keyed by "name". Both are
// honoured.
package access

import (
	"strings"
)

// SuperAdminRole is the distinguished role that bypasses every check.
const SuperAdminRole = "SUPER_ADMIN"

// Actions understood by the permission model.
const (
	ActionRead    = "read"
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionApprove = "approve"
)

// Resources guarded by the API.
const (
	ResourceReceipts    = "receipts"
	ResourceCustomers   = "customers"
	ResourceParticulars = "particulars"
	ResourceReports     = "reports"
	ResourceStores      = "stores"
	ResourceUsers       = "users"
)

// Authorizer answers resource/action questions.
type Authorizer interface {
	HasPermission(resource, action string) bool
}

// Grant is a single resource/action permission.
type Grant struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

// ParseGrant parses the "resource:action" form used in access tokens.
func ParseGrant(s string) (Grant, bool) {
	resource, action, ok := strings.Cut(s, ":")
	if !ok || resource == "" || action == "" {
		return Grant{}, false
	}
	return Grant{Name: s, Resource: resource, Action: action}, true
}

func (g Grant) String() string {
	return g.Resource + ":" + g.Action
}

func (g Grant) matches(resource, action string) bool {
	return g.Resource == resource && g.Action == action
}

// RoleGrant is a role assignment as delivered by the backend.
type RoleGrant struct {
	RoleID      string  `json:"roleId,omitempty"`
	ID          string  `json:"id,omitempty"`
	RoleName    string  `json:"roleName,omitempty"`
	Name        string  `json:"name,omitempty"`
	StoreID     string  `json:"storeId,omitempty"`
	StoreName   string  `json:"storeName,omitempty"`
	Permissions []Grant `json:"permissions,omitempty"`
}

// DisplayName returns whichever name field the payload populated.
func (r RoleGrant) DisplayName() string {
	if r.RoleName != "" {
		return r.RoleName
	}
	return r.Name
}

func (r RoleGrant) isSuperAdmin() bool {
	return r.RoleName == SuperAdminRole || r.Name == SuperAdminRole
}

// Subject is the permission-bearing part of an authenticated user. A nil
// *Subject is valid and denies everything.
type Subject struct {
	Roles       []RoleGrant `json:"roles"`
	Permissions []Grant     `json:"permissions,omitempty"`
}

// SubjectFromClaims builds a Subject from role names and flat
// "resource:action" strings, as carried in an access token.
func SubjectFromClaims(roles, permissions []string) *Subject {
	s := &Subject{}
	for _, name := range roles {
		s.Roles = append(s.Roles, RoleGrant{RoleName: name})
	}
	for _, p := range permissions {
		if g, ok := ParseGrant(p); ok {
			s.Permissions = append(s.Permissions, g)
		}
	}
	return s
}

// IsSuperAdmin reports whether any role is SUPER_ADMIN.
func (s *Subject) IsSuperAdmin() bool {
	if s == nil {
		return false
	}
	for _, r := range s.Roles {
		if r.isSuperAdmin() {
			return true
		}
	}
	return false
}

// HasPermission reports whether the subject may perform action on
// resource. SUPER_ADMIN is checked first, then role-nested grants, then
// the flat list.
func (s *Subject) HasPermission(resource, action string) bool {
	if s == nil {
		return false
	}
	if s.IsSuperAdmin() {
		return true
	}
	for _, r := range s.Roles {
		for _, g := range r.Permissions {
			if g.matches(resource, action) {
				return true
			}
		}
	}
	for _, g := range s.Permissions {
		if g.matches(resource, action) {
			return true
		}
	}
	return false
}

func (s *Subject) CanView(resource string) bool    { return s.HasPermission(resource, ActionRead) }
func (s *Subject) CanCreate(resource string) bool  { return s.HasPermission(resource, ActionCreate) }
func (s *Subject) CanUpdate(resource string) bool  { return s.HasPermission(resource, ActionUpdate) }
func (s *Subject) CanDelete(resource string) bool  { return s.HasPermission(resource, ActionDelete) }
func (s *Subject) CanApprove(resource string) bool { return s.HasPermission(resource, ActionApprove) }

// RoleNames returns the display names of all roles.
func (s *Subject) RoleNames() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.Roles))
	for _, r := range s.Roles {
		names = append(names, r.DisplayName())
	}
	return names
}
