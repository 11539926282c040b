package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"messaging-system/models"
	"messaging-system/services"
	"messaging-system/store"
	"messaging-system/utils"
)

type UserController struct {
	users  *store.UserStore
	tokens *services.TokenService
	log    *zap.SugaredLogger
}

func NewUserController(users *store.UserStore, tokens *services.TokenService, log *zap.SugaredLogger) *UserController {
	return &UserController{users: users, tokens: tokens, log: log}
}

type UserInfoResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Register 用户注册
func (uc *UserController) Register(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
		Email    string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}

	// 检查用户名是否已存在
	if _, err := uc.users.FindByUsername(input.Username); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
		return
	}

	// 加密密码
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	newUser := models.User{
		Username:  input.Username,
		Password:  string(hashedPassword),
		Email:     input.Email,
		LastLogin: nil, // 默认 NULL
	}
	if err := uc.users.Create(&newUser); err != nil {
		uc.log.Errorw("failed to create user", "username", input.Username, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	uc.log.Infow("user registered", "user_id", newUser.ID)
	utils.RespondSuccess(c, gin.H{"message": "User registration successful.", "user_id": newUser.ID}, nil)
}

// Login 用户登录，签发 access/refresh 令牌对
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}

	user, err := uc.users.FindByUsername(input.Username)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	// 更新最后登录时间，失败只记日志不拦截登录
	now := time.Now()
	user.LastLogin = &now
	if err := uc.users.Save(&user); err != nil {
		uc.log.Errorw("failed to update last login", "user_id", user.ID, "error", err)
	}

	pair, err := uc.tokens.GeneratePair(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	utils.RespondSuccess(c, pair, nil)
}

// RefreshToken 用 refresh 令牌换新的 access 令牌
func (uc *UserController) RefreshToken(c *gin.Context) {
	var input struct {
		Refresh string `json:"refresh" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}

	access, err := uc.tokens.Refresh(input.Refresh)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is invalid or expired"})
		return
	}

	utils.RespondSuccess(c, gin.H{"access": access}, nil)
}

// GetUserInfo 返回当前登录用户的信息
func (uc *UserController) GetUserInfo(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required."})
		return
	}

	data := UserInfoResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
	utils.RespondSuccess(c, data, nil)
}
