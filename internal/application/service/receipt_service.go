package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ddms-api/internal/domain/entity"
	"github.com/sangkips/ddms-api/internal/domain/enum"
	"github.com/sangkips/ddms-api/internal/domain/repository"
	"github.com/sangkips/ddms-api/internal/domain/workflow"
	infraRepo "github.com/sangkips/ddms-api/internal/infrastructure/repository"
	"github.com/sangkips/ddms-api/pkg/apperror"
	"github.com/sangkips/ddms-api/pkg/clock"
	"github.com/sangkips/ddms-api/pkg/pagination"
	"github.com/sangkips/ddms-api/pkg/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TransitionObserver is told about every lifecycle decision
type TransitionObserver interface {
	ObserveTransition(from, to enum.ReceiptState)
	ObserveRejected(from, to enum.ReceiptState)
}

type noopObserver struct{}

func (noopObserver) ObserveTransition(from, to enum.ReceiptState) {}
func (noopObserver) ObserveRejected(from, to enum.ReceiptState)   {}

// ReceiptService owns the receipt lifecycle. It is the authority on
// which transitions are accepted; clients only pre-check.
type ReceiptService struct {
	receiptRepo    repository.ReceiptRepository
	customerRepo   repository.CustomerRepository
	particularRepo repository.ParticularRepository
	storeRepo      repository.StoreRepository
	observer       TransitionObserver
	clock          clock.Clock
	logger         *zap.SugaredLogger
}

// NewReceiptService creates a new receipt service. A nil observer or
// clock falls back to a no-op observer and the wall clock.
func NewReceiptService(
	receiptRepo repository.ReceiptRepository,
	customerRepo repository.CustomerRepository,
	particularRepo repository.ParticularRepository,
	storeRepo repository.StoreRepository,
	observer TransitionObserver,
	clk clock.Clock,
	logger *zap.SugaredLogger,
) *ReceiptService {
	if observer == nil {
		observer = noopObserver{}
	}
	if clk == nil {
		clk = clock.Real()
	}
	return &ReceiptService{
		receiptRepo:    receiptRepo,
		customerRepo:   customerRepo,
		particularRepo: particularRepo,
		storeRepo:      storeRepo,
		observer:       observer,
		clock:          clk,
		logger:         logger,
	}
}

// ReceiptItemInput is one particular line of a receipt
type ReceiptItemInput struct {
	ParticularID uuid.UUID
	Amount       decimal.Decimal
}

// CreateReceiptInput represents the create receipt input
type CreateReceiptInput struct {
	ActorID         uuid.UUID
	CustomerID      uuid.UUID
	Date            time.Time
	ReferenceNumber string
	PaymentMode     enum.PaymentMode
	PaymentDetails  string
	Items           []ReceiptItemInput
}

// CreateReceipt creates a DRAFT receipt. The total is the sum of the
// item amounts.
func (s *ReceiptService) CreateReceipt(ctx context.Context, input *CreateReceiptInput) (*entity.Receipt, error) {
	storeID, ok := infraRepo.GetStoreID(ctx)
	if !ok {
		return nil, apperror.ErrStoreRequired
	}

	if err := s.ensureCustomer(ctx, input.CustomerID); err != nil {
		return nil, err
	}

	items, err := s.buildItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperror.NewNotFoundError("Store")
	}

	date := input.Date
	if date.IsZero() {
		date = s.clock.Now()
	}

	receipt := &entity.Receipt{
		StoreID:         storeID,
		ReceiptNumber:   utils.GenerateReceiptNo(store.ReceiptPrefix, date),
		Date:            date,
		ReferenceNumber: input.ReferenceNumber,
		CustomerID:      input.CustomerID,
		ReceiptState:    enum.ReceiptStateDraft,
		PaymentMode:     input.PaymentMode,
		PaymentDetails:  input.PaymentDetails,
		CreatedBy:       input.ActorID,
		Items:           items,
	}
	receipt.Recalculate()

	if err := s.receiptRepo.Create(ctx, receipt); err != nil {
		return nil, err
	}

	s.logger.Infow("receipt created",
		"receipt_id", receipt.ID,
		"receipt_number", receipt.ReceiptNumber,
		"total", receipt.TotalAmount.StringFixed(2),
	)
	return s.GetReceipt(ctx, receipt.ID)
}

// GetReceipt retrieves a receipt with its items and customer
func (s *ReceiptService) GetReceipt(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return receipt, nil
}

// ListReceipts lists receipts of the current store
func (s *ReceiptService) ListReceipts(ctx context.Context, filter repository.ReceiptFilter, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Receipt], error) {
	receipts, total, err := s.receiptRepo.List(ctx, filter, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(receipts, pag), nil
}

// UpdateReceiptInput represents the update receipt input. A nil Items
// leaves the lines unchanged.
type UpdateReceiptInput struct {
	ID              uuid.UUID
	CustomerID      *uuid.UUID
	Date            *time.Time
	ReferenceNumber *string
	PaymentMode     *enum.PaymentMode
	PaymentDetails  *string
	Items           []ReceiptItemInput
}

// UpdateReceipt edits a receipt that is still DRAFT or UNPAID
func (s *ReceiptService) UpdateReceipt(ctx context.Context, input *UpdateReceiptInput) (*entity.Receipt, error) {
	receipt, err := s.GetReceipt(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if !receipt.IsEditable() {
		return nil, apperror.ErrReceiptLocked
	}

	if input.CustomerID != nil && *input.CustomerID != receipt.CustomerID {
		if err := s.ensureCustomer(ctx, *input.CustomerID); err != nil {
			return nil, err
		}
		receipt.CustomerID = *input.CustomerID
		receipt.Customer = nil
	}
	if input.Date != nil {
		receipt.Date = *input.Date
	}
	if input.ReferenceNumber != nil {
		receipt.ReferenceNumber = *input.ReferenceNumber
	}
	if input.PaymentMode != nil {
		receipt.PaymentMode = *input.PaymentMode
	}
	if input.PaymentDetails != nil {
		receipt.PaymentDetails = *input.PaymentDetails
	}
	if input.Items != nil {
		items, err := s.buildItems(ctx, input.Items)
		if err != nil {
			return nil, err
		}
		for i := range items {
			items[i].ReceiptID = receipt.ID
		}
		receipt.Items = items
		receipt.Recalculate()
	}

	if err := s.receiptRepo.Update(ctx, receipt); err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			return nil, apperror.NewConflictError("Receipt was changed by someone else, reload and try again")
		}
		return nil, fmt.Errorf("update receipt: %w", err)
	}
	return s.GetReceipt(ctx, receipt.ID)
}

// ChangeStateInput requests a plain lifecycle move
type ChangeStateInput struct {
	ID       uuid.UUID
	ActorID  uuid.UUID
	NewState enum.ReceiptState
	Notes    string
}

// ChangeState moves a receipt along an edge that needs no extra data.
// Approval and payment have their own operations.
func (s *ReceiptService) ChangeState(ctx context.Context, input *ChangeStateInput) (*entity.Receipt, error) {
	switch input.NewState {
	case enum.ReceiptStatePaid, enum.ReceiptStatePartial:
		return nil, apperror.ErrPaymentRequired
	case enum.ReceiptStateApproved:
		return nil, apperror.ErrApprovalRequired
	}
	if !input.NewState.IsKnown() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "newState", Message: fmt.Sprintf("unknown receipt state %q", input.NewState)},
		})
	}

	receipt, err := s.GetReceipt(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	from := receipt.ReceiptState
	if err := s.guard(from, input.NewState); err != nil {
		return nil, err
	}

	receipt.ReceiptState = input.NewState
	return s.apply(ctx, receipt, from, input.ActorID, input.Notes, decimal.Zero)
}

// ApproveInput requests approval of a pending receipt
type ApproveInput struct {
	ID      uuid.UUID
	ActorID uuid.UUID
	Notes   string
}

// Approve moves a PENDING_APPROVAL receipt to APPROVED and records the
// approver.
func (s *ReceiptService) Approve(ctx context.Context, input *ApproveInput) (*entity.Receipt, error) {
	receipt, err := s.GetReceipt(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	from := receipt.ReceiptState
	if err := s.guard(from, enum.ReceiptStateApproved); err != nil {
		return nil, err
	}
	if !receipt.TotalAmount.IsPositive() {
		return nil, apperror.ErrInsufficientAmount
	}

	now := s.clock.Now()
	approver := input.ActorID
	receipt.ReceiptState = enum.ReceiptStateApproved
	receipt.ApprovedBy = &approver
	receipt.ApprovedAt = &now

	return s.apply(ctx, receipt, from, input.ActorID, input.Notes, decimal.Zero)
}

// PayInput records a payment against a receipt
type PayInput struct {
	ID             uuid.UUID
	ActorID        uuid.UUID
	Amount         decimal.Decimal
	PaymentMode    enum.PaymentMode
	PaymentDetails string
}

// Pay adds a payment. A payment that covers the outstanding balance
// settles the receipt as PAID; a smaller one leaves it PARTIAL.
func (s *ReceiptService) Pay(ctx context.Context, input *PayInput) (*entity.Receipt, error) {
	if !input.Amount.IsPositive() {
		return nil, apperror.ErrInsufficientAmount
	}

	receipt, err := s.GetReceipt(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if input.Amount.GreaterThan(receipt.Outstanding()) {
		return nil, apperror.ErrOverpayment
	}

	from := receipt.ReceiptState
	to := workflow.PaymentTarget(receipt.TotalAmount, receipt.PaidAmount, input.Amount)
	if err := s.guard(from, to); err != nil {
		return nil, err
	}

	receipt.ReceiptState = to
	receipt.PaidAmount = receipt.PaidAmount.Add(input.Amount)
	if input.PaymentMode != "" {
		receipt.PaymentMode = input.PaymentMode
	}
	if input.PaymentDetails != "" {
		receipt.PaymentDetails = input.PaymentDetails
	}

	return s.apply(ctx, receipt, from, input.ActorID, input.PaymentDetails, input.Amount)
}

// ListApprovals returns the lifecycle history of a receipt, oldest first
func (s *ReceiptService) ListApprovals(ctx context.Context, id uuid.UUID) ([]entity.ReceiptTransition, error) {
	if _, err := s.GetReceipt(ctx, id); err != nil {
		return nil, err
	}
	transitions, err := s.receiptRepo.ListTransitions(ctx, id)
	if err != nil {
		return nil, err
	}
	if transitions == nil {
		transitions = []entity.ReceiptTransition{}
	}
	return transitions, nil
}

func (s *ReceiptService) guard(from, to enum.ReceiptState) error {
	if res := workflow.CheckTransition(from, to); !res.Allowed {
		s.observer.ObserveRejected(from, to)
		return apperror.NewTransitionError(from, to)
	}
	return nil
}

func (s *ReceiptService) apply(ctx context.Context, receipt *entity.Receipt, from enum.ReceiptState, actorID uuid.UUID, notes string, amount decimal.Decimal) (*entity.Receipt, error) {
	transition := &entity.ReceiptTransition{
		ReceiptID: receipt.ID,
		FromState: from,
		ToState:   receipt.ReceiptState,
		ActorID:   actorID,
		Notes:     notes,
		Amount:    amount,
	}

	if err := s.receiptRepo.ApplyTransition(ctx, receipt, transition); err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			return nil, apperror.NewConflictError("Receipt was changed by someone else, reload and try again")
		}
		return nil, fmt.Errorf("apply transition: %w", err)
	}

	s.observer.ObserveTransition(from, receipt.ReceiptState)
	s.logger.Infow("receipt transition",
		"receipt_id", receipt.ID,
		"from", from,
		"to", receipt.ReceiptState,
		"actor_id", actorID,
	)
	return s.GetReceipt(ctx, receipt.ID)
}

func (s *ReceiptService) ensureCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}
	if !customer.Active {
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "customerId", Message: "customer is inactive"},
		})
	}
	return nil
}

// buildItems validates the lines against the store's particulars
func (s *ReceiptService) buildItems(ctx context.Context, inputs []ReceiptItemInput) ([]entity.ReceiptItem, error) {
	if len(inputs) == 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "items", Message: "at least one item is required"},
		})
	}

	ids := make([]uuid.UUID, 0, len(inputs))
	var fieldErrors []apperror.FieldError
	for i, in := range inputs {
		ids = append(ids, in.ParticularID)
		if !in.Amount.IsPositive() {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d].amount", i),
				Message: "amount must be greater than zero",
			})
		}
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	particulars, err := s.particularRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*entity.Particular, len(particulars))
	for i := range particulars {
		byID[particulars[i].ID] = &particulars[i]
	}

	items := make([]entity.ReceiptItem, 0, len(inputs))
	for i, in := range inputs {
		p, ok := byID[in.ParticularID]
		switch {
		case !ok:
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d].particularId", i),
				Message: "particular not found",
			})
			continue
		case !p.Active || p.Type != enum.ParticularTypeReceipt:
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d].particularId", i),
				Message: "particular cannot be used on receipts",
			})
			continue
		}
		items = append(items, entity.ReceiptItem{
			ParticularID:   p.ID,
			Amount:         in.Amount.Round(2),
			ParticularName: p.Name,
		})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}
	return items, nil
}
