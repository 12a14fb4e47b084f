package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"wtwr-api/internal/core/cache"
	"wtwr-api/internal/domain"
)

const itemsListKey = "wtwr:items:all"

// CachedItemService 列表读缓存，任何写操作成功后失效
type CachedItemService struct {
	inner domain.ItemService
	cache *cache.Cache
	ttl   time.Duration
	log   *zap.Logger
}

var _ domain.ItemService = (*CachedItemService)(nil)

func NewCachedItemService(inner domain.ItemService, c *cache.Cache, ttl time.Duration, log *zap.Logger) *CachedItemService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CachedItemService{inner: inner, cache: c, ttl: ttl, log: log}
}

func (s *CachedItemService) List(ctx context.Context) ([]domain.ClothingItem, error) {
	items, err := cache.GetOrLoadJSON(s.cache, ctx, itemsListKey, s.ttl, s.inner.List)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.ClothingItem{}
	}
	return items, nil
}

func (s *CachedItemService) Create(ctx context.Context, caller string, in domain.CreateItemInput) (*domain.ClothingItem, error) {
	it, err := s.inner.Create(ctx, caller, in)
	if err == nil {
		s.Invalidate(ctx)
	}
	return it, err
}

func (s *CachedItemService) Delete(ctx context.Context, caller, id string) error {
	err := s.inner.Delete(ctx, caller, id)
	if err == nil {
		s.Invalidate(ctx)
	}
	return err
}

func (s *CachedItemService) Like(ctx context.Context, caller, id string) (*domain.ClothingItem, error) {
	it, err := s.inner.Like(ctx, caller, id)
	if err == nil {
		s.Invalidate(ctx)
	}
	return it, err
}

func (s *CachedItemService) Unlike(ctx context.Context, caller, id string) (*domain.ClothingItem, error) {
	it, err := s.inner.Unlike(ctx, caller, id)
	if err == nil {
		s.Invalidate(ctx)
	}
	return it, err
}

// Invalidate 丢弃列表缓存；物品被其它路径改动（如级联删除用户）时调用
func (s *CachedItemService) Invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, itemsListKey); err != nil {
		s.log.Error("invalidate items cache failed", zap.Error(err))
	}
}
