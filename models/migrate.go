package models

import "gorm.io/gorm"

// Migrate 自动迁移所有模型
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &Message{})
}
