// Package cache 在 KV 存储之上提供类型化的 TTL 缓存.
//
// 值经 sonic 序列化后落入底层 KV；未命中以底层存储的错误形式返回，
// 不单独区分。线程安全取决于所选 KV 后端.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"github.com/yeisme/docvault/pkg/internal/storage/kv"
)

// Cache 包装一个 KVStore.
type Cache struct {
	store kv.KVStore
}

func NewCache(store kv.KVStore) *Cache {
	return &Cache{store: store}
}

// Get 读取并反序列化缓存值.
func Get[T any](ctx context.Context, c *Cache, key string) (T, error) {
	var value T

	data, err := c.store.Get(ctx, key)
	if err != nil {
		return value, err
	}

	if err := sonic.Unmarshal(data, &value); err != nil {
		return value, fmt.Errorf("decode cache value %q: %w", key, err)
	}

	return value, nil
}

// Set 序列化并写入缓存值；ttl<=0 表示不过期.
func Set[T any](ctx context.Context, c *Cache, key string, value T, ttl time.Duration) error {
	data, err := sonic.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache value %q: %w", key, err)
	}

	return c.store.Set(ctx, key, data, ttl)
}

// Delete 移除缓存键.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.store.Delete(ctx, key)
}

// GetOrSet 命中即返回；未命中时调用 getter 并回填.
// 回填失败不影响返回值，缓存只是加速层.
func GetOrSet[T any](ctx context.Context, c *Cache, key string, getter func() (T, error), ttl time.Duration) (T, error) {
	if value, err := Get[T](ctx, c, key); err == nil {
		return value, nil
	}

	value, err := getter()
	if err != nil {
		return value, err
	}

	_ = Set(ctx, c, key, value, ttl)

	return value, nil
}
