package domain

import (
	"context"
	"time"
)

type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"   validate:"required,min=2,max=30"`
	Avatar    string    `json:"avatar" validate:"required,http_url"`
	CreatedAt time.Time `json:"-"`
}

type CreateUserInput struct {
	Name   string
	Avatar string
}

type UserRepository interface {
	List(ctx context.Context) ([]User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, u *User) error
	// Delete cascade 为 true 时同时删除其物品并撤回其点赞
	Delete(ctx context.Context, id string, cascade bool) error
}

type UserService interface {
	List(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, in CreateUserInput) (*User, error)
	Delete(ctx context.Context, id string) error
}
