package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"

	"messaging-system/models"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrInvalidToken = errors.New("token is invalid")
)

// TokenPair 一对令牌：短效 access + 长效 refresh
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// GeneratePair 为用户签发一对令牌
func (s *TokenService) GeneratePair(user models.User) (TokenPair, error) {
	access, err := s.sign(user.ID, "access", s.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}

	refresh, err := s.sign(user.ID, "refresh", s.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh 用有效的 refresh 令牌换一个新的 access 令牌
func (s *TokenService) Refresh(refreshToken string) (string, error) {
	userID, err := s.parse(refreshToken, "refresh")
	if err != nil {
		return "", err
	}
	return s.sign(userID, "access", s.accessTTL)
}

// ParseAccess 校验 access 令牌并返回其中的用户ID
func (s *TokenService) ParseAccess(token string) (uint, error) {
	return s.parse(token, "access")
}

func (s *TokenService) sign(userID uint, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":    userID,
		"token_type": tokenType,
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *TokenService) parse(raw, wantType string) (uint, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if strings.Contains(err.Error(), "expired") {
			return 0, ErrTokenExpired
		}
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}
	if claims["token_type"] != wantType {
		return 0, ErrInvalidToken
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, ErrInvalidToken
	}
	return uint(userID), nil
}
