package database

import (
	"testing"

	"github.com/sangkips/ddms-api/internal/config"
	"github.com/sangkips/ddms-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewSQLiteDB(":memory:", logger.Discard)
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestNewDBRejectsUnknownDriver(t *testing.T) {
	_, err := NewDB(&config.DatabaseConfig{Driver: "oracle"}, false, zaptest.NewLogger(t).Sugar())
	assert.Error(t, err)
}

func TestNewDBOpensSQLite(t *testing.T) {
	db, err := NewDB(&config.DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:"}, true, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()
	assert.NoError(t, sqlDB.Ping())
}

func TestSeedDefaultDataIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	log := zaptest.NewLogger(t).Sugar()
	admin := config.AdminConfig{
		Mobile:    "9999999999",
		Password:  "s3cret",
		Name:      "Administrator",
		StoreName: "Main Temple",
	}

	require.NoError(t, SeedDefaultData(db, admin, log))
	require.NoError(t, SeedDefaultData(db, admin, log))

	var permissions int64
	require.NoError(t, db.Model(&entity.Permission{}).Count(&permissions).Error)
	assert.EqualValues(t, len(DefaultPermissions()), permissions)

	var roles int64
	require.NoError(t, db.Model(&entity.Role{}).Count(&roles).Error)
	assert.EqualValues(t, 3, roles)

	var users []entity.User
	require.NoError(t, db.Preload("Roles").Find(&users).Error)
	require.Len(t, users, 1)
	assert.True(t, users[0].IsSuperAdmin())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users[0].Password), []byte("s3cret")))

	var stores []entity.Store
	require.NoError(t, db.Find(&stores).Error)
	require.Len(t, stores, 1)
	assert.Equal(t, "Main Temple", stores[0].Name)

	var membership entity.StoreMembership
	require.NoError(t, db.First(&membership, "user_id = ?", users[0].ID).Error)
	assert.Equal(t, stores[0].ID, membership.StoreID)
	assert.True(t, membership.IsDefault)
}

func TestSeedDefaultDataWithoutAdmin(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, SeedDefaultData(db, config.AdminConfig{}, zaptest.NewLogger(t).Sugar()))

	var users int64
	require.NoError(t, db.Model(&entity.User{}).Count(&users).Error)
	assert.Zero(t, users)

	var cashier entity.Role
	require.NoError(t, db.Preload("Permissions").First(&cashier, "name = ?", RoleCashier).Error)
	assert.Len(t, cashier.Permissions, len(cashierGrants))
}
