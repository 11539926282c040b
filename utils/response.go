package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RespondSuccess 统一的成功响应格式，meta 可选
func RespondSuccess(c *gin.Context, data interface{}, meta interface{}) {
	respond(c, http.StatusOK, data, meta)
}

// RespondCreated 创建成功，返回 201
func RespondCreated(c *gin.Context, data interface{}, meta interface{}) {
	respond(c, http.StatusCreated, data, meta)
}

func respond(c *gin.Context, status int, data, meta interface{}) {
	body := gin.H{"code": status, "message": "success", "data": data}
	if meta != nil {
		body["meta"] = meta
	}
	c.JSON(status, body)
}
