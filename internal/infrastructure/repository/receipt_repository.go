package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ddms-api/internal/domain/entity"
	"github.com/sangkips/ddms-api/internal/domain/enum"
	domainRepo "github.com/sangkips/ddms-api/internal/domain/repository"
	"github.com/sangkips/ddms-api/pkg/pagination"
	"gorm.io/gorm"
)

type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) domainRepo.ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

func (r *receiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).
		Scopes(StoreScope(ctx)).
		Preload("Customer").
		Preload("Items.Particular").
		First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) Update(ctx context.Context, receipt *entity.Receipt) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Receipt{}).
			Where("id = ? AND store_id = ? AND receipt_state = ?", receipt.ID, receipt.StoreID, receipt.ReceiptState).
			Where("receipt_state IN ?", []enum.ReceiptState{enum.ReceiptStateDraft, enum.ReceiptStateUnpaid}).
			Updates(map[string]interface{}{
				"customer_id":      receipt.CustomerID,
				"date":             receipt.Date,
				"reference_number": receipt.ReferenceNumber,
				"total_amount":     receipt.TotalAmount,
				"payment_mode":     receipt.PaymentMode,
				"payment_details":  receipt.PaymentDetails,
				"updated_at":       time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domainRepo.ErrStaleState
		}
		if err := tx.Where("receipt_id = ?", receipt.ID).Delete(&entity.ReceiptItem{}).Error; err != nil {
			return err
		}
		for i := range receipt.Items {
			receipt.Items[i].ID = uuid.Nil
			receipt.Items[i].ReceiptID = receipt.ID
		}
		if len(receipt.Items) == 0 {
			return nil
		}
		return tx.Omit("Particular").Create(&receipt.Items).Error
	})
}

func (r *receiptRepository) List(ctx context.Context, filter domainRepo.ReceiptFilter, params *pagination.PaginationParams) ([]entity.Receipt, int64, error) {
	var receipts []entity.Receipt
	var total int64

	query := r.db.WithContext(ctx).
		Model(&entity.Receipt{}).
		Scopes(StoreScopeOn(ctx, "receipts"), receiptFilter(filter))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Select("receipts.*").Preload("Customer").
		Offset(params.Offset()).Limit(params.PerPage).
		Order("receipts.date DESC, receipts.created_at DESC").
		Find(&receipts).Error

	return receipts, total, err
}

func (r *receiptRepository) ApplyTransition(ctx context.Context, receipt *entity.Receipt, transition *entity.ReceiptTransition) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Receipt{}).
			Where("id = ? AND store_id = ? AND receipt_state = ?", receipt.ID, receipt.StoreID, transition.FromState).
			Updates(map[string]interface{}{
				"receipt_state":   receipt.ReceiptState,
				"paid_amount":     receipt.PaidAmount,
				"payment_mode":    receipt.PaymentMode,
				"payment_details": receipt.PaymentDetails,
				"approved_by":     receipt.ApprovedBy,
				"approved_at":     receipt.ApprovedAt,
				"updated_at":      time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domainRepo.ErrStaleState
		}
		return tx.Omit("Actor").Create(transition).Error
	})
}

func (r *receiptRepository) ListTransitions(ctx context.Context, receiptID uuid.UUID) ([]entity.ReceiptTransition, error) {
	var transitions []entity.ReceiptTransition
	err := r.db.WithContext(ctx).
		Preload("Actor").
		Where("receipt_id = ?", receiptID).
		Order("created_at ASC").
		Find(&transitions).Error
	return transitions, err
}

// receiptFilter applies a ReceiptFilter to a query over receipts.
func receiptFilter(filter domainRepo.ReceiptFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.State != "" {
			db = db.Where("receipts.receipt_state = ?", filter.State)
		}
		if filter.CustomerID != nil {
			db = db.Where("receipts.customer_id = ?", *filter.CustomerID)
		}
		if filter.StartDate != nil {
			db = db.Where("receipts.date >= ?", *filter.StartDate)
		}
		if filter.EndDate != nil {
			db = db.Where("receipts.date < ?", *filter.EndDate)
		}
		if filter.Search != "" {
			pattern := likePattern(filter.Search)
			db = db.Joins("LEFT JOIN customers ON customers.id = receipts.customer_id").
				Where("LOWER(receipts.receipt_number) LIKE ? OR LOWER(customers.name) LIKE ? OR LOWER(customers.account_number) LIKE ?",
					pattern, pattern, pattern)
		}
		return db
	}
}
