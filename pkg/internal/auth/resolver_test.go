package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeisme/docvault/pkg/apperr"
	"github.com/yeisme/docvault/pkg/cache"
	"github.com/yeisme/docvault/pkg/internal/auth"
	"github.com/yeisme/docvault/pkg/internal/model"
	"github.com/yeisme/docvault/pkg/internal/storage/kv"
)

func newResolverDB(t *testing.T) *gorm.DB {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		t.Fatalf("migrate users: %v", err)
	}

	return gormDB
}

// TestDBResolver 数据库解析器：已知 key 返回主体，未知 key 返回认证错误.
func TestDBResolver(t *testing.T) {
	ctx := context.Background()
	gormDB := newResolverDB(t)

	user := model.User{Username: "bob", APIKey: "key-bob", Role: model.RoleEditor}
	if err := gormDB.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	r := auth.NewDBResolver(gormDB)

	p, err := r.Resolve(ctx, "key-bob")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if p.Username != "bob" || p.Role != model.RoleEditor {
		t.Fatalf("wrong principal: %+v", p)
	}

	if _, err := r.Resolve(ctx, "unknown"); !apperr.IsKind(err, apperr.KindAuthentication) {
		t.Fatalf("unknown key: expected authentication error, got %v", err)
	}

	if _, err := r.Resolve(ctx, ""); !apperr.IsKind(err, apperr.KindAuthentication) {
		t.Fatalf("empty key: expected authentication error, got %v", err)
	}
}

// TestCachedResolver 命中缓存期间不回源，Invalidate 后读到新状态.
func TestCachedResolver(t *testing.T) {
	ctx := context.Background()
	gormDB := newResolverDB(t)

	user := model.User{Username: "carol", APIKey: "key-carol", Role: model.RoleViewer}
	if err := gormDB.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	store, err := kv.NewKVStore(ctx, kv.KVTypeMemory, nil)
	if err != nil {
		t.Fatalf("memory kv: %v", err)
	}

	cached := auth.NewCachedResolver(auth.NewDBResolver(gormDB), cache.NewCache(store), time.Minute)

	p, err := cached.Resolve(ctx, "key-carol")
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}

	if p.Role != model.RoleViewer {
		t.Fatalf("wrong role: %+v", p)
	}

	// 角色变更在 TTL 内对缓存命中不可见
	if err := gormDB.Model(&model.User{}).Where("api_key = ?", "key-carol").
		Update("role", model.RoleAdmin).Error; err != nil {
		t.Fatalf("update role: %v", err)
	}

	p2, err := cached.Resolve(ctx, "key-carol")
	if err != nil {
		t.Fatalf("cached resolve: %v", err)
	}

	if p2.Role != model.RoleViewer {
		t.Fatalf("expected cached viewer role, got %s", p2.Role)
	}

	// 失效后回源读到新角色
	if err := cached.Invalidate(ctx, "key-carol"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}

	p3, err := cached.Resolve(ctx, "key-carol")
	if err != nil {
		t.Fatalf("fresh resolve: %v", err)
	}

	if p3.Role != model.RoleAdmin {
		t.Fatalf("expected fresh admin role, got %s", p3.Role)
	}
}

// TestCachedResolverDoesNotCacheFailures 失败的解析不进缓存.
func TestCachedResolverDoesNotCacheFailures(t *testing.T) {
	ctx := context.Background()
	gormDB := newResolverDB(t)

	store, err := kv.NewKVStore(ctx, kv.KVTypeMemory, nil)
	if err != nil {
		t.Fatalf("memory kv: %v", err)
	}

	cached := auth.NewCachedResolver(auth.NewDBResolver(gormDB), cache.NewCache(store), time.Minute)

	if _, err := cached.Resolve(ctx, "key-dave"); !apperr.IsKind(err, apperr.KindAuthentication) {
		t.Fatalf("expected authentication error, got %v", err)
	}

	// 之后创建用户，同一个 key 立即可用
	user := model.User{Username: "dave", APIKey: "key-dave", Role: model.RoleEditor}
	if err := gormDB.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	p, err := cached.Resolve(ctx, "key-dave")
	if err != nil {
		t.Fatalf("resolve after create: %v", err)
	}

	if p.Username != "dave" {
		t.Fatalf("wrong principal: %+v", p)
	}
}
