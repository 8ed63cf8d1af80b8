package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

// StoreIDKey is the context key for the active store
const StoreIDKey ctxKey = "store_id"

// StoreScope returns a GORM scope that filters by the store in ctx.
// It should be applied to all queries for store-scoped entities.
func StoreScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return storeScope(ctx, "store_id")
}

// StoreScopeOn is StoreScope for queries that join several store-scoped
// tables; table names the one the filter applies to.
func StoreScopeOn(ctx context.Context, table string) func(db *gorm.DB) *gorm.DB {
	return storeScope(ctx, table+".store_id")
}

func storeScope(ctx context.Context, column string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		storeID, ok := GetStoreID(ctx)
		if !ok {
			// No store, no rows.
			return db.Where("1 = 0")
		}
		return db.Where(column+" = ?", storeID)
	}
}

// WithStore adds the store ID to ctx
func WithStore(ctx context.Context, storeID uuid.UUID) context.Context {
	return context.WithValue(ctx, StoreIDKey, storeID)
}

// GetStoreID extracts the store ID from ctx
func GetStoreID(ctx context.Context) (uuid.UUID, bool) {
	storeID, ok := ctx.Value(StoreIDKey).(uuid.UUID)
	if !ok || storeID == uuid.Nil {
		return uuid.Nil, false
	}
	return storeID, true
}

// likePattern builds a case-insensitive LIKE operand that works on both
// postgres and sqlite.
func likePattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}
