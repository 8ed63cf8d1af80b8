package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ddms-api/internal/domain/entity"
	"github.com/sangkips/ddms-api/internal/domain/enum"
	domainRepo "github.com/sangkips/ddms-api/internal/domain/repository"
	"github.com/sangkips/ddms-api/internal/infrastructure/database"
	"github.com/sangkips/ddms-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewSQLiteDB(":memory:", logger.Discard)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

type seeded struct {
	store      entity.Store
	other      entity.Store
	user       entity.User
	customer   entity.Customer
	particular entity.Particular
}

func seed(t *testing.T, db *gorm.DB) *seeded {
	t.Helper()
	s := &seeded{
		store: entity.Store{Name: "Sri Venkateswara Temple", ReceiptPrefix: "SVT"},
		other: entity.Store{Name: "Annadanam Trust", ReceiptPrefix: "ANT"},
		user:  entity.User{Name: "Lakshmi", Mobile: "9000000001", Active: true},
	}
	require.NoError(t, db.Create(&s.store).Error)
	require.NoError(t, db.Create(&s.other).Error)
	require.NoError(t, db.Create(&s.user).Error)

	s.customer = entity.Customer{StoreID: s.store.ID, AccountNumber: "AC-1", Name: "Ravi Kumar", Active: true}
	require.NoError(t, db.Create(&s.customer).Error)
	s.particular = entity.Particular{StoreID: s.store.ID, Name: "Annadanam", Type: enum.ParticularTypeReceipt, Active: true}
	require.NoError(t, db.Create(&s.particular).Error)
	return s
}

func newReceipt(s *seeded, number string, amount string, state enum.ReceiptState) *entity.Receipt {
	r := &entity.Receipt{
		StoreID:       s.store.ID,
		ReceiptNumber: number,
		Date:          time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		CustomerID:    s.customer.ID,
		ReceiptState:  state,
		CreatedBy:     s.user.ID,
		Items: []entity.ReceiptItem{
			{ParticularID: s.particular.ID, Amount: decimal.RequireFromString(amount)},
		},
	}
	r.Recalculate()
	return r
}

func TestCustomerRepositoryIsStoreScoped(t *testing.T) {
	db := setupTestDB(t)
	s := seed(t, db)
	repo := NewCustomerRepository(db)

	inStore := WithStore(context.Background(), s.store.ID)
	inOther := WithStore(context.Background(), s.other.ID)

	got, err := repo.GetByID(inStore, s.customer.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ravi Kumar", got.Name)

	got, err = repo.GetByID(inOther, s.customer.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	customers, total, err := repo.List(context.Background(), pagination.DefaultPagination(), "")
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, customers)

	customers, total, err = repo.List(inStore, pagination.DefaultPagination(), "ravi")
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, customers, 1)
}

func TestReceiptRepositoryCreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	s := seed(t, db)
	repo := NewReceiptRepository(db)
	ctx := WithStore(context.Background(), s.store.ID)

	r := newReceipt(s, "SVT-1", "1500.50", enum.ReceiptStateDraft)
	require.NoError(t, repo.Create(ctx, r))

	got, err := repo.GetByID(ctx, r.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ravi Kumar", got.CustomerName)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Annadanam", got.Items[0].ParticularName)
	assert.True(t, got.TotalAmount.Equal(decimal.RequireFromString("1500.50")))

	missing, err := repo.GetByID(WithStore(context.Background(), s.other.ID), r.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestReceiptRepositoryUpdateReplacesItems(t *testing.T) {
	db := setupTestDB(t)
	s := seed(t, db)
	repo := NewReceiptRepository(db)
	ctx := WithStore(context.Background(), s.store.ID)

	r := newReceipt(s, "SVT-1", "100", enum.ReceiptStateDraft)
	require.NoError(t, repo.Create(ctx, r))

	r.Items = []entity.ReceiptItem{
		{ParticularID: s.particular.ID, Amount: decimal.NewFromInt(40)},
		{ParticularID: s.particular.ID, Amount: decimal.NewFromInt(60)},
	}
	r.Recalculate()
	require.NoError(t, repo.Update(ctx, r))

	got, err := repo.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 2)

	var count int64
	require.NoError(t, db.Model(&entity.ReceiptItem{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestReceiptRepositoryStaleUpdateKeepsTransition(t *testing.T) {
	db := setupTestDB(t)
	s := seed(t, db)
	repo := NewReceiptRepository(db)
	ctx := WithStore(context.Background(), s.store.ID)

	r := newReceipt(s, "SVT-1", "100", enum.ReceiptStateUnpaid)
	require.NoError(t, repo.Create(ctx, r))

	stale, err := repo.GetByID(ctx, r.ID)
	require.NoError(t, err)

	cancelled := *stale
	cancelled.ReceiptState = enum.ReceiptStateCancelled
	require.NoError(t, repo.ApplyTransition(ctx, &cancelled, &entity.ReceiptTransition{
		ReceiptID: r.ID,
		FromState: enum.ReceiptStateUnpaid,
		ToState:   enum.ReceiptStateCancelled,
		ActorID:   s.user.ID,
	}))

	stale.ReferenceNumber = "CHQ-42"
	err = repo.Update(ctx, stale)
	assert.ErrorIs(t, err, domainRepo.ErrStaleState)

	got, err := repo.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.ReceiptStateCancelled, got.ReceiptState)
	assert.Empty(t, got.ReferenceNumber)
	assert.Len(t, got.Items, 1)
}

func TestReceiptRepositoryUpdateNeverWritesState(t *testing.T) {
	db := setupTestDB(t)
	s := seed(t, db)
	repo := NewReceiptRepository(db)
	ctx := WithStore(context.Background(), s.store.ID)

	r := newReceipt(s, "SVT-1", "100", enum.ReceiptStateUnpaid)
	require.NoError(t, repo.Create(ctx, r))

	r.ReferenceNumber = "CHQ-7"
	r.PaidAmount = decimal.NewFromInt(100)
	require.NoError(t, repo.Update(ctx, r))

	got, err := repo.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "CHQ-7", got.ReferenceNumber)
	assert.Equal(t, enum.ReceiptStateUnpaid, got.ReceiptState)
	assert.True(t, got.PaidAmount.IsZero())

	// Locked states are refused even when the caller read them correctly.
	approved := newReceipt(s, "SVT-2", "50", enum.ReceiptStateApproved)
	require.NoError(t, repo.Create(ctx, approved))
	approved.ReferenceNumber = "late edit"
	assert.ErrorIs(t, repo.Update(ctx, approved), domainRepo.ErrStaleState)
}

func TestReceiptRepositoryApplyTransition(t *testing.T) {
	db := setupTestDB(t)
	s := seed(t, db)
	repo := NewReceiptRepository(db)
	ctx := WithStore(context.Background(), s.store.ID)

	r := newReceipt(s, "SVT-1", "100", enum.ReceiptStateUnpaid)
	require.NoError(t, repo.Create(ctx, r))

	r.ReceiptState = enum.ReceiptStatePaid
	r.PaidAmount = decimal.NewFromInt(100)
	require.NoError(t, repo.ApplyTransition(ctx, r, &entity.ReceiptTransition{
		ReceiptID: r.ID,
		FromState: enum.ReceiptStateUnpaid,
		ToState:   enum.ReceiptStatePaid,
		ActorID:   s.user.ID,
		Amount:    decimal.NewFromInt(100),
	}))

	got, err := repo.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.ReceiptStatePaid, got.ReceiptState)
	assert.True(t, got.PaidAmount.Equal(decimal.NewFromInt(100)))

	// A second writer that still believes the receipt is UNPAID loses.
	r.ReceiptState = enum.ReceiptStateCancelled
	err = repo.ApplyTransition(ctx, r, &entity.ReceiptTransition{
		ReceiptID: r.ID,
		FromState: enum.ReceiptStateUnpaid,
		ToState:   enum.ReceiptStateCancelled,
		ActorID:   s.user.ID,
	})
	assert.ErrorIs(t, err, domainRepo.ErrStaleState)

	history, err := repo.ListTransitions(ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, enum.ReceiptStatePaid, history[0].ToState)
	require.NotNil(t, history[0].Actor)
	assert.Equal(t, "Lakshmi", history[0].Actor.Name)
}

func TestReceiptRepositoryListFilters(t *testing.T) {
	db := setupTestDB(t)
	s := seed(t, db)
	repo := NewReceiptRepository(db)
	ctx := WithStore(context.Background(), s.store.ID)

	require.NoError(t, repo.Create(ctx, newReceipt(s, "SVT-1", "100", enum.ReceiptStateDraft)))
	require.NoError(t, repo.Create(ctx, newReceipt(s, "SVT-2", "200", enum.ReceiptStateUnpaid)))
	require.NoError(t, repo.Create(ctx, newReceipt(s, "SVT-3", "300", enum.ReceiptStateUnpaid)))

	params := &pagination.PaginationParams{Page: 1, PerPage: 1}
	receipts, total, err := repo.List(ctx, domainRepo.ReceiptFilter{State: enum.ReceiptStateUnpaid}, params)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, receipts, 1)

	receipts, total, err = repo.List(ctx, domainRepo.ReceiptFilter{Search: "svt-3"}, pagination.DefaultPagination())
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, receipts, 1)
	assert.Equal(t, "Ravi Kumar", receipts[0].CustomerName)

	start := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	_, total, err = repo.List(ctx, domainRepo.ReceiptFilter{StartDate: &start}, pagination.DefaultPagination())
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestReportRepositoryTotalsByState(t *testing.T) {
	db := setupTestDB(t)
	s := seed(t, db)
	receipts := NewReceiptRepository(db)
	reports := NewReportRepository(db)
	ctx := WithStore(context.Background(), s.store.ID)

	require.NoError(t, receipts.Create(ctx, newReceipt(s, "SVT-1", "100", enum.ReceiptStateUnpaid)))
	require.NoError(t, receipts.Create(ctx, newReceipt(s, "SVT-2", "250", enum.ReceiptStateUnpaid)))
	require.NoError(t, receipts.Create(ctx, newReceipt(s, "SVT-3", "50", enum.ReceiptStateDraft)))

	totals, err := reports.TotalsByState(ctx, domainRepo.ReceiptFilter{})
	require.NoError(t, err)
	require.Len(t, totals, 2)

	byState := map[enum.ReceiptState]domainRepo.StateTotal{}
	for _, row := range totals {
		byState[row.State] = row
	}
	assert.EqualValues(t, 2, byState[enum.ReceiptStateUnpaid].ReceiptCount)
	assert.True(t, byState[enum.ReceiptStateUnpaid].TotalAmount.Equal(decimal.NewFromInt(350)))

	rows, err := reports.Export(ctx, domainRepo.ReceiptFilter{})
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestStoreRepositoryMembership(t *testing.T) {
	db := setupTestDB(t)
	s := seed(t, db)
	repo := NewStoreRepository(db)
	ctx := context.Background()

	id, err := repo.GetDefaultStoreID(ctx, s.user.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, id)

	require.NoError(t, repo.AddMember(ctx, &entity.StoreMembership{StoreID: s.other.ID, UserID: s.user.ID}))
	require.NoError(t, repo.AddMember(ctx, &entity.StoreMembership{StoreID: s.store.ID, UserID: s.user.ID, IsDefault: true}))

	id, err = repo.GetDefaultStoreID(ctx, s.user.ID)
	require.NoError(t, err)
	assert.Equal(t, s.store.ID, id)

	member, err := repo.IsMember(ctx, s.other.ID, s.user.ID)
	require.NoError(t, err)
	assert.True(t, member)

	stores, err := repo.GetUserStores(ctx, s.user.ID)
	require.NoError(t, err)
	require.Len(t, stores, 2)
	assert.Equal(t, s.store.ID, stores[0].ID)
}

func TestIdempotencyRepositoryReplacesExpiredKey(t *testing.T) {
	db := setupTestDB(t)
	s := seed(t, db)
	repo := NewIdempotencyRepository(db)
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key: "k1", UserID: s.user.ID, Endpoint: "POST /api/v1/receipts",
		ResponseCode: 201, ResponseBody: `{"old":true}`, ExpiresAt: now.Add(-time.Minute),
	}))
	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key: "k1", UserID: s.user.ID, Endpoint: "POST /api/v1/receipts",
		ResponseCode: 201, ResponseBody: `{"new":true}`, ExpiresAt: now.Add(time.Hour),
	}))

	got, err := repo.GetByKey(ctx, "k1", s.user.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, `{"new":true}`, got.ResponseBody)
	assert.False(t, got.IsExpired(now))

	removed, err := repo.DeleteExpired(ctx, now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)
}
