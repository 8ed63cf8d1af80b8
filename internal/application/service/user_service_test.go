package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sangkips/ddms-api/internal/domain/access"
	"github.com/sangkips/ddms-api/internal/domain/entity"
	infraRepo "github.com/sangkips/ddms-api/internal/infrastructure/repository"
	"github.com/sangkips/ddms-api/internal/mocks"
	"github.com/sangkips/ddms-api/pkg/apperror"
	"github.com/sangkips/ddms-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userFixture struct {
	users  *mocks.MockUserRepository
	roles  *mocks.MockRoleRepository
	stores *mocks.MockStoreRepository
	svc    *UserService
	store  uuid.UUID
	ctx    context.Context
}

func newUserFixture(t *testing.T) *userFixture {
	ctrl := gomock.NewController(t)
	f := &userFixture{
		users:  mocks.NewMockUserRepository(ctrl),
		roles:  mocks.NewMockRoleRepository(ctrl),
		stores: mocks.NewMockStoreRepository(ctrl),
		store:  uuid.New(),
	}
	f.svc = NewUserService(f.users, f.roles, nil, f.stores)
	f.ctx = infraRepo.WithStore(context.Background(), f.store)
	return f
}

func TestCreateUser(t *testing.T) {
	f := newUserFixture(t)
	cashier := &entity.Role{ID: 3, Name: "CASHIER"}

	f.users.EXPECT().GetByMobile(gomock.Any(), "9800000001").Return(nil, nil)
	f.roles.EXPECT().GetByID(gomock.Any(), uint(3)).Return(cashier, nil)

	var created *entity.User
	f.users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *entity.User) error {
		u.ID = uuid.New()
		created = u
		return nil
	})
	f.stores.EXPECT().AddMember(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, m *entity.StoreMembership) error {
		assert.Equal(t, f.store, m.StoreID)
		assert.Equal(t, created.ID, m.UserID)
		assert.True(t, m.IsDefault)
		return nil
	})
	f.users.EXPECT().AssignRole(gomock.Any(), gomock.Any(), uint(3)).Return(nil)
	f.users.EXPECT().GetWithRoles(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, id uuid.UUID) (*entity.User, error) {
		u := *created
		u.Roles = []entity.Role{*cashier}
		return &u, nil
	})

	user, err := f.svc.CreateUser(f.ctx, &CreateUserInput{
		Name:     " Asha ",
		Mobile:   "9800000001",
		Password: "counter-pass",
		RoleIDs:  []uint{3, 3},
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha", user.Name)
	assert.True(t, user.Active)
	assert.True(t, utils.CheckPasswordHash("counter-pass", user.Password))
	assert.True(t, user.HasRole("CASHIER"))
}

func TestCreateUserRejectsSuperAdminRole(t *testing.T) {
	f := newUserFixture(t)
	f.users.EXPECT().GetByMobile(gomock.Any(), gomock.Any()).Return(nil, nil)
	f.roles.EXPECT().GetByID(gomock.Any(), uint(1)).Return(&entity.Role{ID: 1, Name: access.SuperAdminRole}, nil)

	_, err := f.svc.CreateUser(f.ctx, &CreateUserInput{Name: "Eve", Mobile: "9800000002", Password: "x", RoleIDs: []uint{1}})
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperror.GetAppError(err).Code)
}

func TestCreateUserRejectsOtherStoresRole(t *testing.T) {
	f := newUserFixture(t)
	other := uuid.New()
	f.users.EXPECT().GetByMobile(gomock.Any(), gomock.Any()).Return(nil, nil)
	f.roles.EXPECT().GetByID(gomock.Any(), uint(9)).Return(&entity.Role{ID: 9, Name: "TRUSTEE", StoreID: &other}, nil)

	_, err := f.svc.CreateUser(f.ctx, &CreateUserInput{Name: "Eve", Mobile: "9800000002", Password: "x", RoleIDs: []uint{9}})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
	require.Len(t, appErr.Errors, 1)
	assert.Equal(t, "roleIds", appErr.Errors[0].Field)
}

func TestUpdateUserRolesOnlyTouchesCurrentStore(t *testing.T) {
	f := newUserFixture(t)
	other := uuid.New()
	userID := uuid.New()
	cashier := entity.Role{ID: 3, Name: "CASHIER"}
	admin := entity.Role{ID: 2, Name: "ADMIN"}
	elsewhere := entity.Role{ID: 7, Name: "TRUSTEE", StoreID: &other}

	f.stores.EXPECT().IsMember(gomock.Any(), f.store, userID).Return(true, nil)
	f.users.EXPECT().GetWithRoles(gomock.Any(), userID).
		Return(&entity.User{ID: userID, Roles: []entity.Role{cashier, elsewhere}}, nil)
	f.roles.EXPECT().GetByID(gomock.Any(), uint(2)).Return(&admin, nil)
	f.users.EXPECT().RemoveRole(gomock.Any(), userID, uint(3)).Return(nil)
	f.users.EXPECT().AssignRole(gomock.Any(), userID, uint(2)).Return(nil)
	f.users.EXPECT().GetWithRoles(gomock.Any(), userID).
		Return(&entity.User{ID: userID, Roles: []entity.Role{admin, elsewhere}}, nil)

	user, err := f.svc.UpdateUserRoles(f.ctx, &UpdateUserRolesInput{UserID: userID, RoleIDs: []uint{2}})
	require.NoError(t, err)
	assert.Equal(t, []string{"ADMIN"}, user.RoleNames(f.store))
}

func TestGetUserOutsideStoreIsNotFound(t *testing.T) {
	f := newUserFixture(t)
	userID := uuid.New()
	f.stores.EXPECT().IsMember(gomock.Any(), f.store, userID).Return(false, nil)

	_, err := f.svc.GetUser(f.ctx, userID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestDeactivateUser(t *testing.T) {
	f := newUserFixture(t)
	actor := uuid.New()
	userID := uuid.New()

	err := f.svc.DeactivateUser(f.ctx, actor, actor)
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)

	f.stores.EXPECT().IsMember(gomock.Any(), f.store, userID).Return(true, nil)
	f.users.EXPECT().GetWithRoles(gomock.Any(), userID).
		Return(&entity.User{ID: userID, Active: true, Roles: []entity.Role{{ID: 3, Name: "CASHIER"}}}, nil)
	f.users.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *entity.User) error {
		assert.False(t, u.Active)
		assert.Nil(t, u.Roles)
		return nil
	})
	require.NoError(t, f.svc.DeactivateUser(f.ctx, actor, userID))
}

func TestListRolesHidesSuperAdminAndForeignRoles(t *testing.T) {
	f := newUserFixture(t)
	other := uuid.New()
	local := f.store
	f.roles.EXPECT().List(gomock.Any()).Return([]entity.Role{
		{ID: 1, Name: access.SuperAdminRole},
		{ID: 2, Name: "ADMIN"},
		{ID: 8, Name: "LOCAL", StoreID: &local},
		{ID: 9, Name: "FOREIGN", StoreID: &other},
	}, nil)

	roles, err := f.svc.ListRoles(f.ctx)
	require.NoError(t, err)
	var names []string
	for _, r := range roles {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"ADMIN", "LOCAL"}, names)
}
