package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"messaging-system/models"
	"messaging-system/store"
)

// currentUser 取出 TokenAuthMiddleware 放进上下文的当前用户
func currentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get("user")
	if !exists {
		return nil, false
	}

	user, ok := value.(*models.User)
	return user, ok
}

// parseID 解析路径里的消息ID，非数字的ID和不存在的ID同样按 404 处理
func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return uint(id), err
}

// respondBindingError 把绑定失败转成按字段的 400 响应
func respondBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			name := strings.ToLower(fe.Field())
			if fe.Tag() == "required" {
				fields[name] = "this field is required"
			} else {
				fields[name] = "this field is invalid"
			}
		}
		c.JSON(http.StatusBadRequest, gin.H{"errors": fields})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// respondStoreError 把存储层错误映射到 HTTP 状态码
func respondStoreError(c *gin.Context, err error) {
	var verr *store.ValidationError
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found."})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Fields})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
