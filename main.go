package main

import (
	"log"

	"messaging-system/config"
	"messaging-system/controllers"
	"messaging-system/middlewares"
	"messaging-system/models"
	"messaging-system/routes"
	"messaging-system/services"
	"messaging-system/store"
)

func main() {
	cfg := config.Load()

	logger, err := config.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Fatalw("failed to connect to database", "error", err)
	}
	// 自动迁移
	if err := models.Migrate(db); err != nil {
		logger.Fatalw("failed to run migrations", "error", err)
	}

	users := store.NewUserStore(db)
	messages := store.NewMessageStore(db)
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)

	uc := controllers.NewUserController(users, tokens, logger)
	mc := controllers.NewMessageController(messages, users, logger)
	auth := middlewares.TokenAuthMiddleware(tokens, users)

	// 注册路由
	r := routes.RegisterRoutes(uc, mc, auth, logger)

	// 启动服务
	logger.Infow("running", "port", cfg.Port, "environment", cfg.Env)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatalw("server failed to start", "error", err)
	}
}
