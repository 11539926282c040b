package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"messaging-system/controllers"
	"messaging-system/middlewares"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(uc *controllers.UserController, mc *controllers.MessageController, auth gin.HandlerFunc, log *zap.SugaredLogger) *gin.Engine {

	r := gin.New()
	r.Use(middlewares.RequestLogger(log))
	r.Use(gin.Recovery())

	// 配置跨域中间件
	corsConfig := cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	r.Use(cors.New(corsConfig))

	api := r.Group("/api/v1")

	// 开放接口
	api.GET("/", controllers.Index)
	api.POST("/accounts/register", uc.Register)
	api.POST("/token", uc.Login)
	api.POST("/token/refresh", uc.RefreshToken)

	protected := api.Group("")
	protected.Use(auth)
	{
		protected.GET("/userinfo", uc.GetUserInfo)
		protected.GET("/messages", mc.ListMessages)
		protected.POST("/messages", mc.CreateMessage)
		protected.GET("/messages/unread", mc.ListUnreadMessages)
		protected.GET("/messages/:id", mc.GetMessage)
		protected.PUT("/messages/:id", mc.UpdateMessage)
		protected.PATCH("/messages/:id", mc.UpdateMessage)
		protected.DELETE("/messages/:id", mc.DeleteMessage)
	}

	return r
}
