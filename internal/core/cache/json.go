package cache

import (
	"context"
	"encoding/json"
	"time"
)

// GetOrLoadJSON 以 JSON 缓存 load 的结果。
// 缓存内容无法解码（结构变更后的旧数据）时删除该键并直接回源。
func GetOrLoadJSON[T any](c *Cache, ctx context.Context, key string, ttl time.Duration,
	load func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var fresh *T
	b, err := c.GetOrLoad(ctx, key, ttl, func(ctx context.Context) ([]byte, error) {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		fresh = &v
		return json.Marshal(v)
	})
	if err != nil {
		return zero, err
	}
	if fresh != nil {
		return *fresh, nil
	}

	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		_ = c.Invalidate(ctx, key)
		return load(ctx)
	}
	return out, nil
}
