package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"messaging-system/controllers"
	"messaging-system/middlewares"
	"messaging-system/models"
	"messaging-system/routes"
	"messaging-system/services"
	"messaging-system/store"
)

// testServer 组装一套完整的路由栈，数据库用内存 sqlite
type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	tokens *services.TokenService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	users := store.NewUserStore(db)
	messages := store.NewMessageStore(db)
	tokens := services.NewTokenService("test-secret", time.Minute, time.Hour)
	log := zap.NewNop().Sugar()

	uc := controllers.NewUserController(users, tokens, log)
	mc := controllers.NewMessageController(messages, users, log)
	auth := middlewares.TokenAuthMiddleware(tokens, users)

	return &testServer{
		router: routes.RegisterRoutes(uc, mc, auth, log),
		db:     db,
		tokens: tokens,
	}
}

// createUser 直接落库建用户并签发 access 令牌
func (ts *testServer) createUser(t *testing.T, username string) (models.User, string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := models.User{Username: username, Password: string(hashed)}
	if err := ts.db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}

	pair, err := ts.tokens.GeneratePair(user)
	if err != nil {
		t.Fatalf("failed to generate tokens for %s: %v", username, err)
	}
	return user, pair.Access
}

// do 发一个 JSON 请求，token 为空表示不带认证头
func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Code int             `json:"code"`
	Data json.RawMessage `json:"data"`
}

// decodeData 解开成功响应的 data 字段
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode envelope from %q: %v", w.Body.String(), err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("failed to decode data from %q: %v", string(env.Data), err)
	}
}

func wantStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()

	if w.Code != want {
		t.Fatalf("got status %d, want %d (body: %s)", w.Code, want, w.Body.String())
	}
}

func messagePath(id uint) string {
	return fmt.Sprintf("/api/v1/messages/%d", id)
}
