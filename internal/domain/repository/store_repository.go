package repository

//go:generate mockgen -source=store_repository.go -destination=../../mocks/store_repository.go -package=mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/ddms-api/internal/domain/entity"
)

// StoreRepository defines the interface for store data operations
type StoreRepository interface {
	// Create creates a new store
	Create(ctx context.Context, store *entity.Store) error

	// GetByID retrieves a store by ID
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Store, error)

	// Update updates an existing store
	Update(ctx context.Context, store *entity.Store) error

	// ListAll retrieves every store (for super admin use)
	ListAll(ctx context.Context) ([]entity.Store, error)

	// GetUserStores retrieves the stores a user belongs to
	GetUserStores(ctx context.Context, userID uuid.UUID) ([]entity.Store, error)

	// AddMember adds a user as a member of a store
	AddMember(ctx context.Context, membership *entity.StoreMembership) error

	// IsMember checks if a user is a member of a store
	IsMember(ctx context.Context, storeID, userID uuid.UUID) (bool, error)

	// GetDefaultStoreID returns the store a user lands in after login
	GetDefaultStoreID(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
}
