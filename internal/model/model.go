package model

import (
	"gorm.io/gorm"
)

// AutoMigrate 迁移所有业务表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		Note{},
		PushSubscription{},
	)
}
