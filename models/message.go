package models

import "time"

// Message 站内信模型：一条由发送者写给接收者的消息
type Message struct {
	ID         uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	SenderID   uint      `json:"sender" gorm:"index;not null"` // 发送者ID，创建后不可修改
	ReceiverID uint      `json:"receiver" gorm:"index;not null"`
	Subject    string    `json:"subject" gorm:"type:varchar(100);not null"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	IsRead     bool      `json:"is_read" gorm:"default:false"` // 是否已读，仅由读取路径翻转
}
