package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/ddms-api/internal/domain/entity"
	"github.com/sangkips/ddms-api/internal/domain/repository"
	"github.com/sangkips/ddms-api/pkg/apperror"
	"github.com/sangkips/ddms-api/pkg/utils"
	"go.uber.org/zap"
)

// AuthService handles authentication-related operations
type AuthService struct {
	userRepo   repository.UserRepository
	storeRepo  repository.StoreRepository
	jwtManager *utils.JWTManager
	logger     *zap.SugaredLogger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	storeRepo repository.StoreRepository,
	jwtManager *utils.JWTManager,
	logger *zap.SugaredLogger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		storeRepo:  storeRepo,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Mobile   string
	Password string
}

// LoginOutput represents the login output. StoreID is the store the
// issued tokens are scoped to.
type LoginOutput struct {
	User         *entity.User
	Stores       []entity.Store
	StoreID      uuid.UUID
	AccessToken  string
	RefreshToken string
}

// Login authenticates a user by mobile number and returns tokens scoped
// to the user's default store.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByMobile(ctx, input.Mobile)
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}
	if !user.Active {
		return nil, apperror.NewForbiddenError("Account is disabled")
	}

	user, err = s.userRepo.GetWithRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	stores, err := s.storesFor(ctx, user)
	if err != nil {
		return nil, err
	}

	storeID, err := s.storeRepo.GetDefaultStoreID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if storeID == uuid.Nil && len(stores) > 0 {
		storeID = stores[0].ID
	}
	if storeID == uuid.Nil && !user.IsSuperAdmin() {
		return nil, apperror.NewForbiddenError("No store is assigned to this account")
	}

	out, err := s.issue(user, storeID)
	if err != nil {
		return nil, err
	}
	out.Stores = stores

	s.logger.Infow("user logged in", "user_id", user.ID, "store_id", storeID)
	return out, nil
}

// RefreshToken generates new tokens from a refresh token. The new pair
// stays scoped to the store of the old one.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	userID, storeID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, utils.ErrTokenExpired) {
			return nil, apperror.ErrTokenExpired
		}
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.userRepo.GetWithRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, apperror.ErrInvalidToken
	}

	if storeID != uuid.Nil && !user.IsSuperAdmin() {
		member, err := s.storeRepo.IsMember(ctx, storeID, user.ID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, apperror.ErrInvalidToken
		}
	}

	return s.issue(user, storeID)
}

// Profile is the authenticated user together with the stores they can
// switch between.
type Profile struct {
	User           *entity.User
	Stores         []entity.Store
	CurrentStoreID uuid.UUID
}

// GetProfile returns the current user as seen from storeID
func (s *AuthService) GetProfile(ctx context.Context, userID, storeID uuid.UUID) (*Profile, error) {
	user, err := s.userRepo.GetWithRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	stores, err := s.storesFor(ctx, user)
	if err != nil {
		return nil, err
	}

	return &Profile{User: user, Stores: stores, CurrentStoreID: storeID}, nil
}

// SwitchStoreOutput is the result of a store context switch
type SwitchStoreOutput struct {
	User         *entity.User
	Store        *entity.Store
	AccessToken  string
	RefreshToken string
}

// SwitchStore issues tokens scoped to another store the user belongs to.
func (s *AuthService) SwitchStore(ctx context.Context, userID, storeID uuid.UUID) (*SwitchStoreOutput, error) {
	user, err := s.userRepo.GetWithRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperror.NewNotFoundError("Store")
	}

	if !user.IsSuperAdmin() {
		member, err := s.storeRepo.IsMember(ctx, storeID, userID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, apperror.NewForbiddenError("You are not a member of this store")
		}
	}

	out, err := s.issue(user, storeID)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("store switched", "user_id", userID, "store_id", storeID)
	return &SwitchStoreOutput{
		User:         user,
		Store:        store,
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
	}, nil
}

// Logout records the logout. Tokens are stateless and simply expire.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) {
	s.logger.Infow("user logged out", "user_id", userID)
}

func (s *AuthService) storesFor(ctx context.Context, user *entity.User) ([]entity.Store, error) {
	if user.IsSuperAdmin() {
		return s.storeRepo.ListAll(ctx)
	}
	return s.storeRepo.GetUserStores(ctx, user.ID)
}

func (s *AuthService) issue(user *entity.User, storeID uuid.UUID) (*LoginOutput, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(utils.AccessTokenInput{
		UserID:      user.ID,
		Mobile:      user.Mobile,
		StoreID:     storeID,
		Roles:       user.RoleNames(storeID),
		Permissions: user.GetPermissions(storeID),
	})
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID, storeID)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		User:         user,
		StoreID:      storeID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
