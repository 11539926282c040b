package models

import "time"

// User 用户模型
type User struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string     `json:"username" gorm:"unique;not null"`
	Password  string     `json:"-" gorm:"not null"`
	Email     string     `json:"email"`
	LastLogin *time.Time `json:"last_login" gorm:"default:NULL"` // 允许 NULL
	CreatedAt time.Time  `json:"created_at"`
}
