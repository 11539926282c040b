package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Index 无需认证的接口列表，方便调用方发现可用端点
func Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the Messaging System!",
		"endpoints": gin.H{
			"register":          "/api/v1/accounts/register",
			"obtain_token_pair": "/api/v1/token",
			"refresh_token":     "/api/v1/token/refresh",
			"userinfo":          "/api/v1/userinfo",
			"messages":          "/api/v1/messages",
			"unread_messages":   "/api/v1/messages/unread",
			"message_detail":    "/api/v1/messages/:id",
		},
	})
}
