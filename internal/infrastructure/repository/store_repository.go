package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/ddms-api/internal/domain/entity"
	domainRepo "github.com/sangkips/ddms-api/internal/domain/repository"
	"gorm.io/gorm"
)

type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository creates a new store repository
func NewStoreRepository(db *gorm.DB) domainRepo.StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) Create(ctx context.Context, store *entity.Store) error {
	return r.db.WithContext(ctx).Create(store).Error
}

func (r *storeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	var store entity.Store
	err := r.db.WithContext(ctx).First(&store, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &store, err
}

func (r *storeRepository) Update(ctx context.Context, store *entity.Store) error {
	return r.db.WithContext(ctx).Save(store).Error
}

func (r *storeRepository) ListAll(ctx context.Context) ([]entity.Store, error) {
	var stores []entity.Store
	err := r.db.WithContext(ctx).Order("name ASC").Find(&stores).Error
	return stores, err
}

func (r *storeRepository) GetUserStores(ctx context.Context, userID uuid.UUID) ([]entity.Store, error) {
	var stores []entity.Store
	err := r.db.WithContext(ctx).
		Select("stores.*").
		Joins("JOIN store_memberships sm ON sm.store_id = stores.id").
		Where("sm.user_id = ?", userID).
		Order("sm.is_default DESC, stores.name ASC").
		Find(&stores).Error
	return stores, err
}

func (r *storeRepository) AddMember(ctx context.Context, membership *entity.StoreMembership) error {
	return r.db.WithContext(ctx).Create(membership).Error
}

func (r *storeRepository) IsMember(ctx context.Context, storeID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.StoreMembership{}).
		Where("store_id = ? AND user_id = ?", storeID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *storeRepository) GetDefaultStoreID(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	var membership entity.StoreMembership
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at ASC").
		First(&membership).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, nil
	}
	return membership.StoreID, err
}
