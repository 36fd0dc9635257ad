package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// LoginRequest запрос на вход администратора
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse выданный токен доступа
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"` // RFC3339
}

// Service сервис аутентификации администратора.
// Проверка выполняется на сервере: bcrypt-хэш пароля задается конфигурацией,
// при успехе выдается HS256 JWT.
type Service struct {
	adminUsername     string
	adminPasswordHash string
	jwtSecret         []byte
	tokenTTL          time.Duration
	logger            Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(adminUsername, adminPasswordHash, jwtSecret string, tokenTTL time.Duration, logger Logger) *Service {
	return &Service{
		adminUsername:     adminUsername,
		adminPasswordHash: adminPasswordHash,
		jwtSecret:         []byte(jwtSecret),
		tokenTTL:          tokenTTL,
		logger:            logger,
	}
}

// Login проверяет учетные данные администратора и выдает JWT
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	if req.Username != s.adminUsername {
		s.logger.Warn("Login: unknown username %q", req.Username)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for %q", req.Username)
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  req.Username,
		"role": "admin",
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		s.logger.Error("Login: failed to sign token: %v", err)
		return nil, fmt.Errorf("%w: failed to sign token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: admin %q authenticated", req.Username)
	return &TokenResponse{
		Token:     signed,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	}, nil
}
