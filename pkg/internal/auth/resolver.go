// Package auth 负责 API Key 到主体的解析以及角色到操作的授权判定.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yeisme/docvault/pkg/apperr"
	"github.com/yeisme/docvault/pkg/cache"
	"github.com/yeisme/docvault/pkg/internal/model"
)

// Principal 已通过认证的请求主体.
type Principal struct {
	UserID   string     `json:"user_id"`
	Username string     `json:"username"`
	Role     model.Role `json:"role"`
}

// Resolver 将 API Key 解析为主体.
type Resolver interface {
	// Resolve 查找 API Key 对应的主体；未知 key 返回认证错误.
	Resolve(ctx context.Context, apiKey string) (*Principal, error)
}

// DBResolver 直接查询用户表的解析器.
type DBResolver struct {
	db *gorm.DB
}

// NewDBResolver 创建数据库解析器.
func NewDBResolver(db *gorm.DB) *DBResolver {
	return &DBResolver{db: db}
}

// Resolve 按 api_key 查找用户.
func (r *DBResolver) Resolve(ctx context.Context, apiKey string) (*Principal, error) {
	if apiKey == "" {
		return nil, apperr.Authentication("missing API key")
	}

	var user model.User
	if err := r.db.WithContext(ctx).Where("api_key = ?", apiKey).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Authentication("invalid API key")
		}

		return nil, apperr.Storage("resolve principal", err)
	}

	return &Principal{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}

// CachedResolver 在内层解析器前加一层 TTL 缓存，降低每请求一次的用户表查询压力.
// 只缓存成功解析的结果，认证失败不会被缓存.
type CachedResolver struct {
	inner Resolver
	cache *cache.Cache
	ttl   time.Duration
}

// NewCachedResolver 创建带缓存的解析器.
func NewCachedResolver(inner Resolver, c *cache.Cache, ttl time.Duration) *CachedResolver {
	return &CachedResolver{
		inner: inner,
		cache: c,
		ttl:   ttl,
	}
}

func principalCacheKey(apiKey string) string {
	return fmt.Sprintf("principal:%s", apiKey)
}

// Resolve 先查缓存，未命中时回源并回填.
func (r *CachedResolver) Resolve(ctx context.Context, apiKey string) (*Principal, error) {
	if apiKey == "" {
		return nil, apperr.Authentication("missing API key")
	}

	key := principalCacheKey(apiKey)
	if p, err := cache.Get[Principal](ctx, r.cache, key); err == nil {
		return &p, nil
	}

	p, err := r.inner.Resolve(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	// 缓存写入失败不影响本次请求
	_ = cache.Set(ctx, r.cache, key, *p, r.ttl)

	return p, nil
}

// Invalidate 主动失效某个 API Key 的缓存条目，用于用户角色变更或吊销.
func (r *CachedResolver) Invalidate(ctx context.Context, apiKey string) error {
	return r.cache.Delete(ctx, principalCacheKey(apiKey))
}
