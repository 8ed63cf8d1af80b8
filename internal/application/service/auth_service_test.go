package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sangkips/ddms-api/internal/domain/access"
	"github.com/sangkips/ddms-api/internal/domain/entity"
	"github.com/sangkips/ddms-api/internal/mocks"
	"github.com/sangkips/ddms-api/pkg/apperror"
	"github.com/sangkips/ddms-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type authFixture struct {
	users  *mocks.MockUserRepository
	stores *mocks.MockStoreRepository
	jwt    *utils.JWTManager
	svc    *AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	ctrl := gomock.NewController(t)
	f := &authFixture{
		users:  mocks.NewMockUserRepository(ctrl),
		stores: mocks.NewMockStoreRepository(ctrl),
		jwt:    utils.NewJWTManager("test-secret", 15*time.Minute, time.Hour),
	}
	f.svc = NewAuthService(f.users, f.stores, f.jwt, zaptest.NewLogger(t).Sugar())
	return f
}

func cashier(t *testing.T, storeID uuid.UUID) *entity.User {
	t.Helper()
	hash, err := utils.HashPassword("s3cret!")
	require.NoError(t, err)

	other := uuid.New()
	return &entity.User{
		ID:       uuid.New(),
		Name:     "Lakshmi",
		Mobile:   "9876543210",
		Password: hash,
		Active:   true,
		Roles: []entity.Role{
			{
				ID: 2, Name: "CASHIER", StoreID: &storeID,
				Permissions: []entity.Permission{
					entity.NewPermission(access.ResourceReceipts, access.ActionRead),
					entity.NewPermission(access.ResourceReceipts, access.ActionUpdate),
				},
			},
			{
				ID: 3, Name: "AUDITOR", StoreID: &other,
				Permissions: []entity.Permission{
					entity.NewPermission(access.ResourceReports, access.ActionRead),
				},
			},
		},
	}
}

func TestLoginScopesTokenToDefaultStore(t *testing.T) {
	f := newAuthFixture(t)
	storeID := uuid.New()
	user := cashier(t, storeID)

	f.users.EXPECT().GetByMobile(gomock.Any(), user.Mobile).Return(user, nil)
	f.users.EXPECT().GetWithRoles(gomock.Any(), user.ID).Return(user, nil)
	f.stores.EXPECT().GetUserStores(gomock.Any(), user.ID).
		Return([]entity.Store{{ID: storeID, Name: "Main Temple"}}, nil)
	f.stores.EXPECT().GetDefaultStoreID(gomock.Any(), user.ID).Return(storeID, nil)

	out, err := f.svc.Login(context.Background(), &LoginInput{Mobile: user.Mobile, Password: "s3cret!"})
	require.NoError(t, err)
	assert.Equal(t, storeID, out.StoreID)
	assert.Len(t, out.Stores, 1)

	claims, err := f.jwt.ValidateAccessToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, storeID, claims.StoreID)
	assert.Equal(t, []string{"CASHIER"}, claims.Roles)
	assert.ElementsMatch(t, []string{"receipts:read", "receipts:update"}, claims.Permissions)

	userID, refreshStore, err := f.jwt.ValidateRefreshToken(out.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, storeID, refreshStore)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newAuthFixture(t)
	user := cashier(t, uuid.New())

	f.users.EXPECT().GetByMobile(gomock.Any(), user.Mobile).Return(user, nil)
	f.users.EXPECT().GetByMobile(gomock.Any(), "0000").Return(nil, nil)

	_, err := f.svc.Login(context.Background(), &LoginInput{Mobile: user.Mobile, Password: "wrong"})
	assert.Equal(t, apperror.ErrInvalidCredentials, err)

	_, err = f.svc.Login(context.Background(), &LoginInput{Mobile: "0000", Password: "s3cret!"})
	assert.Equal(t, apperror.ErrInvalidCredentials, err)
}

func TestLoginWithoutStore(t *testing.T) {
	f := newAuthFixture(t)
	user := cashier(t, uuid.New())

	f.users.EXPECT().GetByMobile(gomock.Any(), user.Mobile).Return(user, nil)
	f.users.EXPECT().GetWithRoles(gomock.Any(), user.ID).Return(user, nil)
	f.stores.EXPECT().GetUserStores(gomock.Any(), user.ID).Return(nil, nil)
	f.stores.EXPECT().GetDefaultStoreID(gomock.Any(), user.ID).Return(uuid.Nil, nil)

	_, err := f.svc.Login(context.Background(), &LoginInput{Mobile: user.Mobile, Password: "s3cret!"})
	require.Error(t, err)
	assert.Equal(t, 403, apperror.GetAppError(err).Code)
}

func TestRefreshKeepsStore(t *testing.T) {
	f := newAuthFixture(t)
	storeID := uuid.New()
	user := cashier(t, storeID)
	refresh, err := f.jwt.GenerateRefreshToken(user.ID, storeID)
	require.NoError(t, err)

	f.users.EXPECT().GetWithRoles(gomock.Any(), user.ID).Return(user, nil)
	f.stores.EXPECT().IsMember(gomock.Any(), storeID, user.ID).Return(true, nil)

	out, err := f.svc.RefreshToken(context.Background(), refresh)
	require.NoError(t, err)

	claims, err := f.jwt.ValidateAccessToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, storeID, claims.StoreID)
}

func TestRefreshRejectsGarbageAndRevokedMembership(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.svc.RefreshToken(context.Background(), "not-a-token")
	assert.Equal(t, apperror.ErrInvalidToken, err)

	storeID := uuid.New()
	user := cashier(t, storeID)
	refresh, err := f.jwt.GenerateRefreshToken(user.ID, storeID)
	require.NoError(t, err)

	f.users.EXPECT().GetWithRoles(gomock.Any(), user.ID).Return(user, nil)
	f.stores.EXPECT().IsMember(gomock.Any(), storeID, user.ID).Return(false, nil)

	_, err = f.svc.RefreshToken(context.Background(), refresh)
	assert.Equal(t, apperror.ErrInvalidToken, err)
}

func TestSwitchStore(t *testing.T) {
	f := newAuthFixture(t)
	home := uuid.New()
	annex := uuid.New()
	user := cashier(t, home)

	f.users.EXPECT().GetWithRoles(gomock.Any(), user.ID).Return(user, nil).Times(2)
	f.stores.EXPECT().GetByID(gomock.Any(), annex).Return(&entity.Store{ID: annex, Name: "Annex"}, nil).Times(2)
	f.stores.EXPECT().IsMember(gomock.Any(), annex, user.ID).Return(true, nil)
	f.stores.EXPECT().IsMember(gomock.Any(), annex, user.ID).Return(false, nil)

	out, err := f.svc.SwitchStore(context.Background(), user.ID, annex)
	require.NoError(t, err)
	assert.Equal(t, "Annex", out.Store.Name)
	assert.Same(t, user, out.User)

	claims, err := f.jwt.ValidateAccessToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, annex, claims.StoreID)
	// CASHIER is bound to the home store, so nothing applies here.
	assert.Empty(t, claims.Roles)

	_, err = f.svc.SwitchStore(context.Background(), user.ID, annex)
	require.Error(t, err)
	assert.Equal(t, 403, apperror.GetAppError(err).Code)
}

func TestSwitchStoreSuperAdminSkipsMembership(t *testing.T) {
	f := newAuthFixture(t)
	storeID := uuid.New()
	admin := &entity.User{ID: uuid.New(), Active: true, Roles: []entity.Role{{Name: access.SuperAdminRole}}}

	f.users.EXPECT().GetWithRoles(gomock.Any(), admin.ID).Return(admin, nil)
	f.stores.EXPECT().GetByID(gomock.Any(), storeID).Return(&entity.Store{ID: storeID}, nil)

	out, err := f.svc.SwitchStore(context.Background(), admin.ID, storeID)
	require.NoError(t, err)

	claims, err := f.jwt.ValidateAccessToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, []string{access.SuperAdminRole}, claims.Roles)
}
