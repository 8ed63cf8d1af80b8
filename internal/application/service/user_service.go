package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/ddms-api/internal/domain/access"
	"github.com/sangkips/ddms-api/internal/domain/entity"
	"github.com/sangkips/ddms-api/internal/domain/repository"
	infraRepo "github.com/sangkips/ddms-api/internal/infrastructure/repository"
	"github.com/sangkips/ddms-api/pkg/apperror"
	"github.com/sangkips/ddms-api/pkg/pagination"
	"github.com/sangkips/ddms-api/pkg/utils"
)

// UserService manages the staff of the current store
type UserService struct {
	userRepo       repository.UserRepository
	roleRepo       repository.RoleRepository
	permissionRepo repository.PermissionRepository
	storeRepo      repository.StoreRepository
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	permissionRepo repository.PermissionRepository,
	storeRepo repository.StoreRepository,
) *UserService {
	return &UserService{
		userRepo:       userRepo,
		roleRepo:       roleRepo,
		permissionRepo: permissionRepo,
		storeRepo:      storeRepo,
	}
}

// ListUsers returns the members of the current store with their roles
func (s *UserService) ListUsers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.User], error) {
	users, total, err := s.userRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(users, pag), nil
}

// GetUser returns a member of the current store with roles and permissions
func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	storeID, ok := infraRepo.GetStoreID(ctx)
	if !ok {
		return nil, apperror.ErrStoreRequired
	}
	member, err := s.storeRepo.IsMember(ctx, storeID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, apperror.NewNotFoundError("User")
	}

	user, err := s.userRepo.GetWithRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// CreateUserInput represents the input for adding staff to a store
type CreateUserInput struct {
	Name     string
	Mobile   string
	Email    *string
	Password string
	RoleIDs  []uint
}

// CreateUser creates an operator who belongs to the current store
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	storeID, ok := infraRepo.GetStoreID(ctx)
	if !ok {
		return nil, apperror.ErrStoreRequired
	}

	mobile := strings.TrimSpace(input.Mobile)
	existing, err := s.userRepo.GetByMobile(ctx, mobile)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Mobile number is already registered")
	}

	roles, err := s.resolveRoles(ctx, storeID, input.RoleIDs)
	if err != nil {
		return nil, err
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Name:     strings.TrimSpace(input.Name),
		Mobile:   mobile,
		Email:    input.Email,
		Password: hashed,
		Active:   true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := s.storeRepo.AddMember(ctx, &entity.StoreMembership{
		StoreID:   storeID,
		UserID:    user.ID,
		IsDefault: true,
	}); err != nil {
		return nil, err
	}
	for _, role := range roles {
		if err := s.userRepo.AssignRole(ctx, user.ID, role.ID); err != nil {
			return nil, err
		}
	}

	return s.userRepo.GetWithRoles(ctx, user.ID)
}

// UpdateUserRolesInput represents the input for updating user roles
type UpdateUserRolesInput struct {
	UserID  uuid.UUID
	RoleIDs []uint
}

// UpdateUserRoles replaces the roles a member holds in the current store.
// Roles scoped to other stores are left alone.
func (s *UserService) UpdateUserRoles(ctx context.Context, input *UpdateUserRolesInput) (*entity.User, error) {
	user, err := s.GetUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	storeID, _ := infraRepo.GetStoreID(ctx)

	roles, err := s.resolveRoles(ctx, storeID, input.RoleIDs)
	if err != nil {
		return nil, err
	}

	desired := make(map[uint]bool, len(roles))
	for _, role := range roles {
		desired[role.ID] = true
	}
	current := make(map[uint]bool, len(user.Roles))
	for i := range user.Roles {
		role := &user.Roles[i]
		if !role.AppliesTo(storeID) {
			continue
		}
		current[role.ID] = true
		if role.Name == access.SuperAdminRole {
			return nil, apperror.NewForbiddenError("Super admin roles cannot be changed here")
		}
		if !desired[role.ID] {
			if err := s.userRepo.RemoveRole(ctx, user.ID, role.ID); err != nil {
				return nil, err
			}
		}
	}

	for _, role := range roles {
		if current[role.ID] {
			continue
		}
		if err := s.userRepo.AssignRole(ctx, user.ID, role.ID); err != nil {
			return nil, err
		}
	}

	return s.userRepo.GetWithRoles(ctx, user.ID)
}

// DeactivateUser stops a member from signing in. Nothing is deleted so
// the receipts they touched keep their actor.
func (s *UserService) DeactivateUser(ctx context.Context, actorID, userID uuid.UUID) error {
	if actorID == userID {
		return apperror.NewBadRequestError("Cannot deactivate your own account")
	}
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsSuperAdmin() {
		return apperror.NewForbiddenError("Super admins cannot be deactivated")
	}

	user.Active = false
	user.Roles = nil
	return s.userRepo.Update(ctx, user)
}

// ListRoles returns the roles that can be granted in the current store
func (s *UserService) ListRoles(ctx context.Context) ([]entity.Role, error) {
	storeID, ok := infraRepo.GetStoreID(ctx)
	if !ok {
		return nil, apperror.ErrStoreRequired
	}
	roles, err := s.roleRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]entity.Role, 0, len(roles))
	for _, role := range roles {
		if role.AppliesTo(storeID) && role.Name != access.SuperAdminRole {
			out = append(out, role)
		}
	}
	return out, nil
}

// ListPermissions returns all available permissions
func (s *UserService) ListPermissions(ctx context.Context) ([]entity.Permission, error) {
	return s.permissionRepo.List(ctx)
}

// resolveRoles loads the roles by ID. Every role must exist and be in
// force in storeID, and SUPER_ADMIN is never granted through the API.
func (s *UserService) resolveRoles(ctx context.Context, storeID uuid.UUID, ids []uint) ([]*entity.Role, error) {
	seen := make(map[uint]bool, len(ids))
	roles := make([]*entity.Role, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		role, err := s.roleRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if role == nil || !role.AppliesTo(storeID) {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "roleIds", Message: "unknown role"},
			})
		}
		if role.Name == access.SuperAdminRole {
			return nil, apperror.NewForbiddenError("The super admin role cannot be granted")
		}
		roles = append(roles, role)
	}
	return roles, nil
}
