package database

import (
	"errors"
	"fmt"

	"github.com/sangkips/ddms-api/internal/config"
	"github.com/sangkips/ddms-api/internal/domain/access"
	"github.com/sangkips/ddms-api/internal/domain/entity"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// System role names
const (
	RoleSuperAdmin = access.SuperAdminRole
	RoleAdmin      = "ADMIN"
	RoleCashier    = "CASHIER"
)

var crud = []string{access.ActionRead, access.ActionCreate, access.ActionUpdate, access.ActionDelete}

// DefaultPermissions lists every resource:action grant the API checks.
func DefaultPermissions() []entity.Permission {
	var perms []entity.Permission
	for _, resource := range []string{
		access.ResourceReceipts,
		access.ResourceCustomers,
		access.ResourceParticulars,
		access.ResourceStores,
		access.ResourceUsers,
	} {
		for _, action := range crud {
			perms = append(perms, entity.NewPermission(resource, action))
		}
	}
	return append(perms,
		entity.NewPermission(access.ResourceReceipts, access.ActionApprove),
		entity.NewPermission(access.ResourceReports, access.ActionRead),
	)
}

// cashierGrants is what counter staff may do: record donations, not
// approve or cancel them.
var cashierGrants = []string{
	"receipts:read", "receipts:create", "receipts:update",
	"customers:read", "customers:create", "customers:update",
	"particulars:read",
}

// SeedDefaultData creates the permissions and system roles and, when
// admin credentials are configured, the first super admin with a store.
// It is safe to run on every start.
func SeedDefaultData(db *gorm.DB, admin config.AdminConfig, log *zap.SugaredLogger) error {
	all := DefaultPermissions()
	for i := range all {
		if err := db.Where(entity.Permission{Name: all[i].Name}).
			Attrs(entity.Permission{Resource: all[i].Resource, Action: all[i].Action}).
			FirstOrCreate(&all[i]).Error; err != nil {
			return fmt.Errorf("seed permission %s: %w", all[i].Name, err)
		}
	}

	byName := make(map[string]entity.Permission, len(all))
	for _, p := range all {
		byName[p.Name] = p
	}
	var cashier []entity.Permission
	for _, name := range cashierGrants {
		cashier = append(cashier, byName[name])
	}

	roles := map[string][]entity.Permission{
		RoleSuperAdmin: all,
		RoleAdmin:      all,
		RoleCashier:    cashier,
	}
	for name, perms := range roles {
		if err := seedRole(db, name, perms); err != nil {
			return err
		}
	}

	if admin.Mobile == "" || admin.Password == "" {
		log.Infow("admin credentials not configured, skipping admin seed")
		return nil
	}
	return seedAdmin(db, admin, log)
}

func seedRole(db *gorm.DB, name string, perms []entity.Permission) error {
	var role entity.Role
	err := db.Where("name = ? AND store_id IS NULL", name).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		role = entity.Role{Name: name, Description: "System role"}
		if err := db.Create(&role).Error; err != nil {
			return fmt.Errorf("seed role %s: %w", name, err)
		}
	} else if err != nil {
		return fmt.Errorf("seed role %s: %w", name, err)
	}

	if err := db.Model(&role).Association("Permissions").Replace(perms); err != nil {
		return fmt.Errorf("seed role %s permissions: %w", name, err)
	}
	return nil
}

func seedAdmin(db *gorm.DB, admin config.AdminConfig, log *zap.SugaredLogger) error {
	var existing entity.User
	err := db.Where("mobile = ?", admin.Mobile).First(&existing).Error
	if err == nil {
		log.Infow("super admin already exists", "mobile", admin.Mobile)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	var role entity.Role
	if err := db.Where("name = ? AND store_id IS NULL", RoleSuperAdmin).First(&role).Error; err != nil {
		return fmt.Errorf("load %s role: %w", RoleSuperAdmin, err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var store entity.Store
		if err := tx.Order("created_at").First(&store).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			store = entity.Store{Name: admin.StoreName, ReceiptPrefix: "RCT"}
			if err := tx.Create(&store).Error; err != nil {
				return fmt.Errorf("create default store: %w", err)
			}
		} else if err != nil {
			return err
		}

		user := entity.User{
			Name:     admin.Name,
			Mobile:   admin.Mobile,
			Password: string(hashed),
			Active:   true,
			Roles:    []entity.Role{role},
		}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("create super admin: %w", err)
		}
		if err := tx.Create(&entity.StoreMembership{StoreID: store.ID, UserID: user.ID, IsDefault: true}).Error; err != nil {
			return fmt.Errorf("add super admin to store: %w", err)
		}

		log.Infow("super admin created", "mobile", admin.Mobile, "store", store.Name)
		return nil
	})
}
