package repository

//go:generate mockgen -source=customer_repository.go -destination=../../mocks/customer_repository.go -package=mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/ddms-api/internal/domain/entity"
	"github.com/sangkips/ddms-api/pkg/pagination"
)

// CustomerRepository defines the interface for customer data operations.
// Every method is scoped to the store carried by ctx.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	GetByAccountNumber(ctx context.Context, accountNumber string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error)
}

// ParticularRepository defines the interface for particular data operations.
// Every method is scoped to the store carried by ctx.
type ParticularRepository interface {
	Create(ctx context.Context, particular *entity.Particular) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Particular, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Particular, error)
	Update(ctx context.Context, particular *entity.Particular) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ParticularFilter) ([]entity.Particular, error)
}

// ParticularFilter narrows ParticularRepository.List
type ParticularFilter struct {
	Type       string
	ActiveOnly bool
}
