package database

import (
	"fmt"

	"github.com/sangkips/ddms-api/internal/domain/entity"
	"gorm.io/gorm"
)

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		// Identity
		&entity.Store{},
		&entity.User{},
		&entity.Role{},
		&entity.Permission{},
		&entity.StoreMembership{},

		// Donors and particulars
		&entity.Customer{},
		&entity.Particular{},

		// Receipts
		&entity.Receipt{},
		&entity.ReceiptItem{},
		&entity.ReceiptTransition{},

		// System
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
