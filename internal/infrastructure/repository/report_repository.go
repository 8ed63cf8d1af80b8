package repository

import (
	"context"

	"github.com/sangkips/ddms-api/internal/domain/entity"
	"github.com/sangkips/ddms-api/internal/domain/enum"
	domainRepo "github.com/sangkips/ddms-api/internal/domain/repository"
	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) receipts(ctx context.Context, filter domainRepo.ReceiptFilter) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&entity.Receipt{}).
		Scopes(StoreScopeOn(ctx, "receipts"), receiptFilter(filter))
}

func (r *reportRepository) TotalsByState(ctx context.Context, filter domainRepo.ReceiptFilter) ([]domainRepo.StateTotal, error) {
	var results []domainRepo.StateTotal

	err := r.receipts(ctx, filter).
		Select(`receipts.receipt_state AS state,
			COUNT(receipts.id) AS receipt_count,
			COALESCE(SUM(receipts.total_amount), 0) AS total_amount,
			COALESCE(SUM(receipts.paid_amount), 0) AS paid_amount`).
		Group("receipts.receipt_state").
		Order("receipts.receipt_state").
		Scan(&results).Error

	return results, err
}

func (r *reportRepository) TopCustomers(ctx context.Context, filter domainRepo.ReceiptFilter, limit int) ([]domainRepo.CustomerTotal, error) {
	var results []domainRepo.CustomerTotal

	query := r.receipts(ctx, filter)
	if filter.Search == "" {
		query = query.Joins("JOIN customers ON customers.id = receipts.customer_id")
	}
	err := query.
		Select(`customers.id AS customer_id,
			customers.name AS customer_name,
			COALESCE(SUM(receipts.paid_amount), 0) AS paid_amount,
			COUNT(receipts.id) AS receipt_count`).
		Where("receipts.receipt_state <> ?", enum.ReceiptStateCancelled).
		Group("customers.id, customers.name").
		Order("paid_amount DESC").
		Limit(limit).
		Scan(&results).Error

	return results, err
}

func (r *reportRepository) DailyCollections(ctx context.Context, filter domainRepo.ReceiptFilter) ([]domainRepo.DailyTotal, error) {
	var results []domainRepo.DailyTotal

	err := r.receipts(ctx, filter).
		Select("date(receipts.date) AS day, COALESCE(SUM(receipts.paid_amount), 0) AS paid_amount").
		Where("receipts.receipt_state <> ?", enum.ReceiptStateCancelled).
		Group("date(receipts.date)").
		Order("day ASC").
		Scan(&results).Error

	return results, err
}

func (r *reportRepository) Export(ctx context.Context, filter domainRepo.ReceiptFilter) ([]entity.Receipt, error) {
	var receipts []entity.Receipt
	err := r.receipts(ctx, filter).
		Preload("Customer").
		Preload("Items.Particular").
		Order("receipts.date ASC, receipts.receipt_number ASC").
		Find(&receipts).Error
	return receipts, err
}
