package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"messaging-system/policy"
	"messaging-system/store"
	"messaging-system/utils"
)

type MessageController struct {
	messages *store.MessageStore
	users    *store.UserStore
	log      *zap.SugaredLogger
}

func NewMessageController(messages *store.MessageStore, users *store.UserStore, log *zap.SugaredLogger) *MessageController {
	return &MessageController{messages: messages, users: users, log: log}
}

// ListMessages 列出当前用户发出或收到的全部消息。
// is_read 过滤只作用于收到的消息：发出的消息对发送者没有已读状态可言。
func (mc *MessageController) ListMessages(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required."})
		return
	}

	var filter store.ListFilter

	if raw, exists := c.GetQuery("is_read"); exists {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "is_read must be true or false"})
			return
		}
		filter.IsRead = &value
	}
	filter.Ordering = c.Query("ordering")

	messages, err := mc.messages.ListForUser(user.ID, filter)
	if err != nil {
		if errors.Is(err, store.ErrBadOrdering) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ordering must be one of id, created_at, is_read"})
			return
		}
		mc.log.Errorw("failed to list messages", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	utils.RespondSuccess(c, messages, nil)
}

// ListUnreadMessages 列出当前用户收到且未读的消息
func (mc *MessageController) ListUnreadMessages(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required."})
		return
	}

	messages, err := mc.messages.ListUnread(user.ID)
	if err != nil {
		mc.log.Errorw("failed to list unread messages", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	utils.RespondSuccess(c, messages, nil)
}

// CreateMessage 写一条新消息。发送者永远是当前用户，
// 请求体里带的 sender 字段直接忽略。
func (mc *MessageController) CreateMessage(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required."})
		return
	}

	var input struct {
		Receiver uint   `json:"receiver" binding:"required"`
		Subject  string `json:"subject" binding:"required"`
		Content  string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}

	exists, err := mc.users.Exists(input.Receiver)
	if err != nil {
		mc.log.Errorw("failed to look up receiver", "receiver", input.Receiver, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"receiver": "no such user"}})
		return
	}

	message, err := mc.messages.Create(user.ID, input.Receiver, input.Subject, input.Content)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	mc.log.Infow("message created", "message_id", message.ID, "sender", message.SenderID, "receiver", message.ReceiverID)
	utils.RespondCreated(c, message, nil)
}

// GetMessage 按ID读取一条消息。接收者读取会先把消息置为已读再返回，
// 该转换是单向且幂等的；发送者读取不改变任何状态。
func (mc *MessageController) GetMessage(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required."})
		return
	}

	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found."})
		return
	}

	message, err := mc.messages.FindVisible(id, user.ID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if policy.IsReceiver(message, user.ID) {
		if err := mc.messages.MarkRead(&message); err != nil {
			mc.log.Errorw("failed to mark message read", "message_id", message.ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update message"})
			return
		}
	}

	utils.RespondSuccess(c, message, nil)
}

// UpdateMessage 编辑 subject / content / receiver。PUT 要求三个字段齐全，
// PATCH 只改给出的字段。只有发送者可以编辑：接收者拿到 403 而不是 404，
// 因为能走到这里说明消息对他本来就可见，存在性早已暴露。
func (mc *MessageController) UpdateMessage(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required."})
		return
	}

	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found."})
		return
	}

	message, err := mc.messages.FindVisible(id, user.ID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if !policy.CanUpdate(message, user.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the sender may edit a message."})
		return
	}

	var input struct {
		Receiver *uint   `json:"receiver"`
		Subject  *string `json:"subject"`
		Content  *string `json:"content"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if c.Request.Method != http.MethodPatch {
		fields := map[string]string{}
		if input.Receiver == nil {
			fields["receiver"] = "this field is required"
		}
		if input.Subject == nil {
			fields["subject"] = "this field is required"
		}
		if input.Content == nil {
			fields["content"] = "this field is required"
		}
		if len(fields) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"errors": fields})
			return
		}
	}

	if input.Receiver != nil {
		exists, err := mc.users.Exists(*input.Receiver)
		if err != nil {
			mc.log.Errorw("failed to look up receiver", "receiver", *input.Receiver, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if !exists {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"receiver": "no such user"}})
			return
		}
		message.ReceiverID = *input.Receiver
	}
	if input.Subject != nil {
		message.Subject = *input.Subject
	}
	if input.Content != nil {
		message.Content = *input.Content
	}

	if err := mc.messages.Update(&message); err != nil {
		respondStoreError(c, err)
		return
	}

	utils.RespondSuccess(c, message, nil)
}

// DeleteMessage 删除消息，发送者和接收者都可以。
// 无关用户看到的是 404，与不存在的消息无法区分。
func (mc *MessageController) DeleteMessage(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required."})
		return
	}

	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found."})
		return
	}

	message, err := mc.messages.FindVisible(id, user.ID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if err := mc.messages.Delete(message); err != nil {
		mc.log.Errorw("failed to delete message", "message_id", message.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
		return
	}

	mc.log.Infow("message deleted", "message_id", message.ID, "user_id", user.ID)
	c.Status(http.StatusNoContent)
}
