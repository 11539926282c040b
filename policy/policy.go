// Package policy 消息访问控制的纯判定函数。
// 处理层把这些判定和 store.FindVisible 组合使用：对无关用户而言，
// 看不到的消息和不存在的消息表现完全一致。
package policy

import "messaging-system/models"

// Visible 用户是否可见该消息：只有发送者和接收者可以列出、读取、删除
func Visible(message models.Message, userID uint) bool {
	return message.SenderID == userID || message.ReceiverID == userID
}

// CanUpdate 是否可编辑：只有发送者可以
func CanUpdate(message models.Message, userID uint) bool {
	return message.SenderID == userID
}

// CanDelete 是否可删除：发送者和接收者都可以
func CanDelete(message models.Message, userID uint) bool {
	return Visible(message, userID)
}

// IsReceiver 用户是否为接收者，接收者读取会触发未读到已读的转换
func IsReceiver(message models.Message, userID uint) bool {
	return message.ReceiverID == userID
}
