package service

import (
	"context"
	"time"

	"wtwr-api/internal/domain"
	"wtwr-api/internal/validate"
	"wtwr-api/pkg/utils"
)

type UserService struct {
	repo    domain.UserRepository
	cascade bool
	changed func(context.Context)
}

var _ domain.UserService = (*UserService)(nil)

// NewUserService cascade 为 true 时删除用户会一并删除其物品与点赞
func NewUserService(repo domain.UserRepository, cascade bool) *UserService {
	return &UserService{repo: repo, cascade: cascade}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) { return s.repo.List(ctx) }

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) Create(ctx context.Context, in domain.CreateUserInput) (*domain.User, error) {
	u := &domain.User{ID: utils.NewID(), Name: in.Name, Avatar: in.Avatar, CreatedAt: time.Now().UTC()}
	if err := validate.User(u); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// OnItemsChanged 级联删除成功后回调（用于失效物品缓存）
func (s *UserService) OnItemsChanged(fn func(context.Context)) { s.changed = fn }

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id, s.cascade); err != nil {
		return err
	}
	if s.cascade && s.changed != nil {
		s.changed(ctx)
	}
	return nil
}
