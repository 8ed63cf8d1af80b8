package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/ddms-api/internal/domain/entity"
	domainRepo "github.com/sangkips/ddms-api/internal/domain/repository"
	"github.com/sangkips/ddms-api/pkg/pagination"
	"gorm.io/gorm"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).Scopes(StoreScope(ctx)).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) GetByAccountNumber(ctx context.Context, accountNumber string) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).Scopes(StoreScope(ctx)).First(&customer, "account_number = ?", accountNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(StoreScope(ctx)).Delete(&entity.Customer{}, "id = ?", id).Error
}

func (r *customerRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	var customers []entity.Customer
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Customer{}).Scopes(StoreScope(ctx))

	if search != "" {
		pattern := likePattern(search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(account_number) LIKE ? OR mobile LIKE ?",
			pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&customers).Error

	return customers, total, err
}

type particularRepository struct {
	db *gorm.DB
}

// NewParticularRepository creates a new particular repository
func NewParticularRepository(db *gorm.DB) domainRepo.ParticularRepository {
	return &particularRepository{db: db}
}

func (r *particularRepository) Create(ctx context.Context, particular *entity.Particular) error {
	return r.db.WithContext(ctx).Create(particular).Error
}

func (r *particularRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Particular, error) {
	var particular entity.Particular
	err := r.db.WithContext(ctx).Scopes(StoreScope(ctx)).First(&particular, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &particular, err
}

func (r *particularRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Particular, error) {
	var particulars []entity.Particular
	if len(ids) == 0 {
		return particulars, nil
	}
	err := r.db.WithContext(ctx).Scopes(StoreScope(ctx)).Where("id IN ?", ids).Find(&particulars).Error
	return particulars, err
}

func (r *particularRepository) Update(ctx context.Context, particular *entity.Particular) error {
	return r.db.WithContext(ctx).Save(particular).Error
}

func (r *particularRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(StoreScope(ctx)).Delete(&entity.Particular{}, "id = ?", id).Error
}

func (r *particularRepository) List(ctx context.Context, filter domainRepo.ParticularFilter) ([]entity.Particular, error) {
	var particulars []entity.Particular

	query := r.db.WithContext(ctx).Model(&entity.Particular{}).Scopes(StoreScope(ctx))
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.ActiveOnly {
		query = query.Where("active = ?", true)
	}

	err := query.Order("name ASC").Find(&particulars).Error
	return particulars, err
}
