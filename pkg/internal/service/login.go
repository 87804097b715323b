package service

import (
	"context"
	"crypto/subtle"
	"errors"

	"gorm.io/gorm"

	"github.com/yeisme/docvault/pkg/apperr"
	"github.com/yeisme/docvault/pkg/internal/model"
	"github.com/yeisme/docvault/pkg/internal/types"
)

// Login 用户名密码登录，成功后返回该用户的静态 API Key.
// 用户名不存在与密码错误返回同一个认证错误，避免枚举用户名.
func (s *DocumentService) Login(ctx context.Context, req *types.LoginRequest) (*types.LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, apperr.Validation("username and password are required")
	}

	var user model.User
	if err := s.dbClient.WithContext(ctx).
		Where("username = ?", req.Username).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Authentication("invalid credentials")
		}

		return nil, apperr.Storage("lookup user", err)
	}

	if user.Password == nil ||
		subtle.ConstantTimeCompare([]byte(*user.Password), []byte(req.Password)) != 1 {
		return nil, apperr.Authentication("invalid credentials")
	}

	return &types.LoginResponse{
		APIKey:   user.APIKey,
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	}, nil
}
