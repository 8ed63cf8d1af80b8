package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/ddms-api/internal/domain/entity"
	"github.com/sangkips/ddms-api/internal/domain/enum"
	"github.com/sangkips/ddms-api/internal/domain/repository"
	infraRepo "github.com/sangkips/ddms-api/internal/infrastructure/repository"
	"github.com/sangkips/ddms-api/pkg/apperror"
	"github.com/sangkips/ddms-api/pkg/pagination"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	AccountNumber string
	Name          string
	Mobile        string
	Email         *string
	Address       string
}

// CreateCustomer creates a new customer in the store carried by ctx
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	storeID, ok := infraRepo.GetStoreID(ctx)
	if !ok {
		return nil, apperror.ErrStoreRequired
	}

	accountNumber := strings.TrimSpace(input.AccountNumber)
	if accountNumber != "" {
		if err := s.ensureUniqueAccount(ctx, accountNumber, uuid.Nil); err != nil {
			return nil, err
		}
	}

	customer := &entity.Customer{
		StoreID:       storeID,
		AccountNumber: accountNumber,
		Name:          strings.TrimSpace(input.Name),
		Mobile:        input.Mobile,
		Email:         input.Email,
		Address:       input.Address,
		Active:        true,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers of the current store
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	ID            uuid.UUID
	AccountNumber *string
	Name          *string
	Mobile        *string
	Email         *string
	Address       *string
	Active        *bool
}

// UpdateCustomer updates a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.GetCustomer(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.AccountNumber != nil {
		accountNumber := strings.TrimSpace(*input.AccountNumber)
		if accountNumber != "" && accountNumber != customer.AccountNumber {
			if err := s.ensureUniqueAccount(ctx, accountNumber, customer.ID); err != nil {
				return nil, err
			}
		}
		customer.AccountNumber = accountNumber
	}
	if input.Name != nil {
		customer.Name = strings.TrimSpace(*input.Name)
	}
	if input.Mobile != nil {
		customer.Mobile = *input.Mobile
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}
	if input.Active != nil {
		customer.Active = *input.Active
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// DeleteCustomer deletes a customer
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCustomer(ctx, id); err != nil {
		return err
	}
	return s.customerRepo.Delete(ctx, id)
}

func (s *CustomerService) ensureUniqueAccount(ctx context.Context, accountNumber string, self uuid.UUID) error {
	existing, err := s.customerRepo.GetByAccountNumber(ctx, accountNumber)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != self {
		return apperror.NewConflictError("Account number already in use")
	}
	return nil
}

// ParticularService handles particular-related operations
type ParticularService struct {
	particularRepo repository.ParticularRepository
}

// NewParticularService creates a new particular service
func NewParticularService(particularRepo repository.ParticularRepository) *ParticularService {
	return &ParticularService{particularRepo: particularRepo}
}

// CreateParticularInput represents the create particular input
type CreateParticularInput struct {
	Name string
	Type enum.ParticularType
}

// CreateParticular creates a new particular in the store carried by ctx
func (s *ParticularService) CreateParticular(ctx context.Context, input *CreateParticularInput) (*entity.Particular, error) {
	storeID, ok := infraRepo.GetStoreID(ctx)
	if !ok {
		return nil, apperror.ErrStoreRequired
	}

	kind := input.Type
	if kind == "" {
		kind = enum.ParticularTypeReceipt
	}
	if !kind.IsValid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "type", Message: "type must be RECEIPT or CHALLAN"},
		})
	}

	particular := &entity.Particular{
		StoreID: storeID,
		Name:    strings.TrimSpace(input.Name),
		Type:    kind,
		Active:  true,
	}

	if err := s.particularRepo.Create(ctx, particular); err != nil {
		return nil, err
	}
	return particular, nil
}

// GetParticular retrieves a particular by ID
func (s *ParticularService) GetParticular(ctx context.Context, id uuid.UUID) (*entity.Particular, error) {
	particular, err := s.particularRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if particular == nil {
		return nil, apperror.NewNotFoundError("Particular")
	}
	return particular, nil
}

// ListParticulars lists particulars of the current store
func (s *ParticularService) ListParticulars(ctx context.Context, filter repository.ParticularFilter) ([]entity.Particular, error) {
	particulars, err := s.particularRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if particulars == nil {
		particulars = []entity.Particular{}
	}
	return particulars, nil
}

// UpdateParticularInput represents the update particular input
type UpdateParticularInput struct {
	ID     uuid.UUID
	Name   *string
	Type   *enum.ParticularType
	Active *bool
}

// UpdateParticular updates a particular
func (s *ParticularService) UpdateParticular(ctx context.Context, input *UpdateParticularInput) (*entity.Particular, error) {
	particular, err := s.GetParticular(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		particular.Name = strings.TrimSpace(*input.Name)
	}
	if input.Type != nil {
		if !input.Type.IsValid() {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "type", Message: "type must be RECEIPT or CHALLAN"},
			})
		}
		particular.Type = *input.Type
	}
	if input.Active != nil {
		particular.Active = *input.Active
	}

	if err := s.particularRepo.Update(ctx, particular); err != nil {
		return nil, err
	}
	return particular, nil
}

// DeleteParticular deletes a particular
func (s *ParticularService) DeleteParticular(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetParticular(ctx, id); err != nil {
		return err
	}
	return s.particularRepo.Delete(ctx, id)
}
