package service

import (
	"context"
	"errors"
	"strings"

	"github.com/notaryweb/internal/db"
	"github.com/notaryweb/internal/resource"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService 校验后台管理员凭据。
type AuthService struct {
	db *gorm.DB
}

// NewAuthService creates an AuthService.
func NewAuthService(gdb *gorm.DB) *AuthService {
	return &AuthService{db: gdb}
}

// Authenticate 返回凭据匹配的用户；用户名不存在与密码错误一律返回 ErrUnauthorized。
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*db.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, resource.ErrUnauthorized
	}

	var user db.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, resource.ErrUnauthorized
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, resource.ErrUnauthorized
	}
	return &user, nil
}

// FindByID loads the account behind a session.
func (s *AuthService) FindByID(ctx context.Context, id uint) (*db.User, error) {
	var user db.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, resource.ErrUnauthorized
		}
		return nil, err
	}
	return &user, nil
}
