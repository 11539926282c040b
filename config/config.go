package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var requiredEnvs = []string{"DB_DSN", "JWT_SECRET"}

// Config 服务启动所需的全部配置
type Config struct {
	Port       string
	Env        string
	DBDSN      string
	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Load 先加载 .env（如果有），再读环境变量，缺必填项直接退出
func Load() Config {
	godotenv.Load()

	for _, env := range requiredEnvs {
		if os.Getenv(env) == "" {
			log.Fatalln("environment variable", env, "is not specified but is required")
		}
	}

	return Config{
		Port:       getEnv("PORT", "8082"),
		Env:        getEnv("ENV", "development"),
		DBDSN:      os.Getenv("DB_DSN"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		AccessTTL:  getDuration("ACCESS_TOKEN_TTL", 30*time.Minute),
		RefreshTTL: getDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("environment variable %s is not a valid duration: %v", key, err)
	}
	return d
}

// InitDB 初始化数据库连接
func InitDB(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// NewLogger 构建进程级日志器，production 环境输出 JSON
func NewLogger(env string) (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error
	if env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
