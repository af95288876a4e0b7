package postgres

import (
	"mfgorders/internal/adapters/out/postgres/auditrepo"
	"mfgorders/internal/adapters/out/postgres/configrepo"
	"mfgorders/internal/adapters/out/postgres/notificationrepo"
	"mfgorders/internal/adapters/out/postgres/orderrepo"

	"gorm.io/gorm"
)

// Models lists the tables this service owns, parents before children.
func Models() []any {
	return []any{
		&orderrepo.OrderDTO{},
		&orderrepo.ProductDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.MediaDTO{},
		&auditrepo.EntryDTO{},
		&notificationrepo.NotificationDTO{},
		&configrepo.SettingDTO{},
	}
}

// Migrate creates or alters the owned tables. workflow_logs and
// manufacturer_notifications belong to other services and are left alone.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
