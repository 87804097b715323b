package cache_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/yeisme/docvault/pkg/cache"
	"github.com/yeisme/docvault/pkg/internal/storage/kv"
)

// testPrincipal 测试用的缓存值.
type testPrincipal struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

func newTestCache(t *testing.T) *cache.Cache {
	t.Helper()

	store, err := kv.NewKVStore(context.Background(), kv.KVTypeMemory, nil)
	if err != nil {
		t.Fatalf("create memory kv: %v", err)
	}

	return cache.NewCache(store)
}

// TestCacheSetGet 序列化往返.
func TestCacheSetGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	p := testPrincipal{UserID: "u1", Role: "editor"}

	if err := cache.Set(ctx, c, "apikey:abc", p, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := cache.Get[testPrincipal](ctx, c, "apikey:abc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got != p {
		t.Fatalf("roundtrip mismatch: %+v != %+v", got, p)
	}

	// 未命中返回错误
	if _, err := cache.Get[testPrincipal](ctx, c, "apikey:missing"); err == nil {
		t.Fatal("expected error for missing key")
	}
}

// TestCacheDelete 删除后不可读.
func TestCacheDelete(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, c, "k", testPrincipal{UserID: "u"}, 0); err != nil {
		t.Fatalf("set: %v", err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := cache.Get[testPrincipal](ctx, c, "k"); err == nil {
		t.Fatal("expected error after delete")
	}
}

// TestCacheGetOrSet 未命中时调用 getter 并回填.
func TestCacheGetOrSet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	calls := 0
	getter := func() (testPrincipal, error) {
		calls++
		return testPrincipal{UserID: "u2", Role: "viewer"}, nil
	}

	first, err := cache.GetOrSet(ctx, c, "k", getter, time.Minute)
	if err != nil {
		t.Fatalf("first GetOrSet: %v", err)
	}

	second, err := cache.GetOrSet(ctx, c, "k", getter, time.Minute)
	if err != nil {
		t.Fatalf("second GetOrSet: %v", err)
	}

	if first != second {
		t.Fatalf("values differ: %+v %+v", first, second)
	}

	if calls != 1 {
		t.Fatalf("getter should run once, ran %d times", calls)
	}

	// getter 失败时错误透传
	_, err = cache.GetOrSet(ctx, c, "fail", func() (testPrincipal, error) {
		return testPrincipal{}, fmt.Errorf("boom")
	}, 0)
	if err == nil {
		t.Fatal("expected getter error to propagate")
	}
}
