package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/ddms-api/internal/domain/entity"
	"github.com/sangkips/ddms-api/internal/domain/repository"
	"github.com/sangkips/ddms-api/pkg/apperror"
)

// StoreService handles store-related operations
type StoreService struct {
	storeRepo repository.StoreRepository
}

// NewStoreService creates a new store service
func NewStoreService(storeRepo repository.StoreRepository) *StoreService {
	return &StoreService{storeRepo: storeRepo}
}

// CreateStoreInput represents input for creating a store
type CreateStoreInput struct {
	OwnerID        uuid.UUID
	Name           string
	Address        string
	City           string
	State          string
	Contact        string
	ReceiptPrefix  string
	PaymentOptions string
}

// CreateStore creates a new store and makes the owner its first member
func (s *StoreService) CreateStore(ctx context.Context, input *CreateStoreInput) (*entity.Store, error) {
	store := &entity.Store{
		Name:           input.Name,
		Address:        input.Address,
		City:           input.City,
		State:          input.State,
		Contact:        input.Contact,
		ReceiptPrefix:  input.ReceiptPrefix,
		PaymentOptions: input.PaymentOptions,
	}

	if err := s.storeRepo.Create(ctx, store); err != nil {
		return nil, err
	}

	if input.OwnerID != uuid.Nil {
		if err := s.storeRepo.AddMember(ctx, &entity.StoreMembership{
			StoreID: store.ID,
			UserID:  input.OwnerID,
		}); err != nil {
			return nil, err
		}
	}

	return store, nil
}

// GetStore retrieves a store by ID
func (s *StoreService) GetStore(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	store, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperror.NewNotFoundError("Store")
	}
	return store, nil
}

// ListStores returns the stores the user can work in. Super admins see
// every store.
func (s *StoreService) ListStores(ctx context.Context, userID uuid.UUID, isSuperAdmin bool) ([]entity.Store, error) {
	if isSuperAdmin {
		return s.storeRepo.ListAll(ctx)
	}
	return s.storeRepo.GetUserStores(ctx, userID)
}

// UpdateStoreInput represents input for updating a store
type UpdateStoreInput struct {
	ID             uuid.UUID
	Name           *string
	Address        *string
	City           *string
	State          *string
	Contact        *string
	ReceiptPrefix  *string
	PaymentOptions *string
}

// UpdateStore updates a store
func (s *StoreService) UpdateStore(ctx context.Context, input *UpdateStoreInput) (*entity.Store, error) {
	store, err := s.GetStore(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		store.Name = *input.Name
	}
	if input.Address != nil {
		store.Address = *input.Address
	}
	if input.City != nil {
		store.City = *input.City
	}
	if input.State != nil {
		store.State = *input.State
	}
	if input.Contact != nil {
		store.Contact = *input.Contact
	}
	if input.ReceiptPrefix != nil {
		store.ReceiptPrefix = *input.ReceiptPrefix
	}
	if input.PaymentOptions != nil {
		store.PaymentOptions = *input.PaymentOptions
	}

	if err := s.storeRepo.Update(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

// AddMember adds a user to a store
func (s *StoreService) AddMember(ctx context.Context, storeID, userID uuid.UUID, isDefault bool) error {
	if _, err := s.GetStore(ctx, storeID); err != nil {
		return err
	}

	member, err := s.storeRepo.IsMember(ctx, storeID, userID)
	if err != nil {
		return err
	}
	if member {
		return apperror.NewConflictError("User is already a member of this store")
	}

	return s.storeRepo.AddMember(ctx, &entity.StoreMembership{
		StoreID:   storeID,
		UserID:    userID,
		IsDefault: isDefault,
	})
}
