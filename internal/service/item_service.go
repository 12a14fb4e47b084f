package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"wtwr-api/internal/domain"
	"wtwr-api/internal/validate"
	"wtwr-api/pkg/utils"
)

type ItemOptions struct {
	OwnerOnlyDelete bool
}

type ItemService struct {
	repo   domain.ItemRepository
	events domain.EventPublisher
	log    *zap.Logger
	opts   ItemOptions
	now    func() time.Time
}

var _ domain.ItemService = (*ItemService)(nil)

func NewItemService(repo domain.ItemRepository, events domain.EventPublisher, log *zap.Logger, opts ItemOptions) *ItemService {
	if events == nil {
		events = domain.NopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ItemService{repo: repo, events: events, log: log, opts: opts, now: time.Now}
}

func (s *ItemService) List(ctx context.Context) ([]domain.ClothingItem, error) {
	return s.repo.List(ctx)
}

func (s *ItemService) Create(ctx context.Context, caller string, in domain.CreateItemInput) (*domain.ClothingItem, error) {
	img, err := ResolveImageSource(in)
	if err != nil {
		return nil, err
	}
	it := &domain.ClothingItem{
		ID:        utils.NewID(),
		Name:      in.Name,
		Weather:   domain.Weather(in.Weather),
		ImageURL:  img,
		Owner:     caller,
		Likes:     []string{},
		CreatedAt: s.now().UTC(),
	}
	if err := validate.Item(it); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	s.emit(ctx, domain.EventItemCreated, it.ID, caller)
	return it, nil
}

func (s *ItemService) Delete(ctx context.Context, caller, id string) error {
	owner := ""
	if s.opts.OwnerOnlyDelete {
		owner = caller
	}
	if err := s.repo.Delete(ctx, id, owner); err != nil {
		return err
	}
	s.emit(ctx, domain.EventItemDeleted, id, caller)
	return nil
}

func (s *ItemService) Like(ctx context.Context, caller, id string) (*domain.ClothingItem, error) {
	it, err := s.repo.AddLike(ctx, id, caller)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, domain.EventItemLiked, id, caller)
	return it, nil
}

func (s *ItemService) Unlike(ctx context.Context, caller, id string) (*domain.ClothingItem, error) {
	it, err := s.repo.RemoveLike(ctx, id, caller)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, domain.EventItemUnliked, id, caller)
	return it, nil
}

// emit 事件发送失败只记日志
func (s *ItemService) emit(ctx context.Context, t domain.EventType, itemID, userID string) {
	itemMutations.WithLabelValues(string(t)).Inc()
	ev := domain.ItemEvent{Type: t, ItemID: itemID, UserID: userID, At: s.now().UTC()}
	if err := s.events.Publish(ctx, ev); err != nil {
		s.log.Warn("publish item event failed",
			zap.String("type", string(t)),
			zap.String("item_id", itemID),
			zap.Error(err),
		)
	}
}
