package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"messaging-system/models"
)

// 允许的排序字段，前缀 "-" 表示倒序
var orderColumns = map[string]string{
	"id":         "id",
	"created_at": "created_at",
	"is_read":    "is_read",
}

// ListFilter 消息列表的可选过滤条件
type ListFilter struct {
	// IsRead 只保留当前用户作为接收者、且已读标记匹配的消息。
	// 发出的消息不受该过滤影响：已读状态只对接收者有意义。
	IsRead *bool
	// Ordering 取值 id / created_at / is_read，可带 "-" 前缀倒序，空串按插入顺序
	Ordering string
}

type MessageStore struct {
	db *gorm.DB
}

func NewMessageStore(db *gorm.DB) *MessageStore {
	return &MessageStore{db: db}
}

// Create 创建一条消息，已读标记固定从 false 开始
func (s *MessageStore) Create(senderID, receiverID uint, subject, content string) (models.Message, error) {
	fields := map[string]string{}
	if subject == "" {
		fields["subject"] = "subject must not be empty"
	}
	if content == "" {
		fields["content"] = "content must not be empty"
	}
	if len(fields) > 0 {
		return models.Message{}, &ValidationError{Fields: fields}
	}

	message := models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Subject:    subject,
		Content:    content,
	}
	if err := s.db.Create(&message).Error; err != nil {
		return models.Message{}, err
	}
	return message, nil
}

// FindVisible 按 ID 查找消息，范围限定在用户的可见集合内。
// 存在但属于其他两个用户的消息与不存在的 ID 一样返回 ErrNotFound，
// 避免向无关用户泄露消息是否存在。
func (s *MessageStore) FindVisible(id, userID uint) (models.Message, error) {
	var message models.Message
	err := s.db.Where("id = ?", id).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		First(&message).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Message{}, ErrNotFound
	}
	return message, err
}

// ListForUser 返回用户发出或收到的全部消息，按 filter 过滤
func (s *MessageStore) ListForUser(userID uint, filter ListFilter) ([]models.Message, error) {
	query := s.db.Where("sender_id = ? OR receiver_id = ?", userID, userID)

	if filter.IsRead != nil {
		query = s.db.Where("receiver_id = ? AND is_read = ?", userID, *filter.IsRead)
	}

	if filter.Ordering != "" {
		key := strings.TrimPrefix(filter.Ordering, "-")
		column, ok := orderColumns[key]
		if !ok {
			return nil, ErrBadOrdering
		}
		if strings.HasPrefix(filter.Ordering, "-") {
			column += " DESC"
		}
		query = query.Order(column)
	}

	var messages []models.Message
	if err := query.Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// ListUnread 返回用户收到且未读的消息
func (s *MessageStore) ListUnread(userID uint) ([]models.Message, error) {
	isRead := false
	return s.ListForUser(userID, ListFilter{IsRead: &isRead})
}

// MarkRead 把消息置为已读并立即落库，已读的消息不再写
func (s *MessageStore) MarkRead(message *models.Message) error {
	if message.IsRead {
		return nil
	}
	message.IsRead = true
	return s.db.Model(message).Update("is_read", true).Error
}

// Update 持久化发送者可编辑的字段，is_read 和 sender_id 永远不在这里写
func (s *MessageStore) Update(message *models.Message) error {
	fields := map[string]string{}
	if message.Subject == "" {
		fields["subject"] = "subject must not be empty"
	}
	if message.Content == "" {
		fields["content"] = "content must not be empty"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	return s.db.Model(message).Updates(map[string]interface{}{
		"receiver_id": message.ReceiverID,
		"subject":     message.Subject,
		"content":     message.Content,
	}).Error
}

// Delete 删除消息，没有级联副作用
func (s *MessageStore) Delete(message models.Message) error {
	return s.db.Delete(&models.Message{}, message.ID).Error
}
