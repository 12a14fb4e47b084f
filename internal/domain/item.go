package domain

import (
	"context"
	"time"
)

type Weather string

const (
	WeatherHot  Weather = "hot"
	WeatherWarm Weather = "warm"
	WeatherCold Weather = "cold"
)

// UploadPathPrefix 上传文件解析后的引用前缀
const UploadPathPrefix = "/uploads/"

type ClothingItem struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"      validate:"required,min=2,max=30"`
	Weather   Weather   `json:"weather"   validate:"required,oneof=hot warm cold"`
	ImageURL  string    `json:"imageUrl"  validate:"required,imageref"`
	Owner     string    `json:"owner"     validate:"required"`
	Likes     []string  `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateItemInput 创建入参；UploadName 为已落盘的文件名
type CreateItemInput struct {
	Name           string
	Weather        string
	ImageURL       string
	UploadName     string
	UploadRejected bool
}

type ItemRepository interface {
	List(ctx context.Context) ([]ClothingItem, error)
	Create(ctx context.Context, it *ClothingItem) error
	FindByID(ctx context.Context, id string) (*ClothingItem, error)
	// Delete owner 非空时仅允许 owner 删除
	Delete(ctx context.Context, id, owner string) error
	AddLike(ctx context.Context, itemID, userID string) (*ClothingItem, error)
	RemoveLike(ctx context.Context, itemID, userID string) (*ClothingItem, error)
}

type ItemService interface {
	List(ctx context.Context) ([]ClothingItem, error)
	Create(ctx context.Context, caller string, in CreateItemInput) (*ClothingItem, error)
	Delete(ctx context.Context, caller, id string) error
	Like(ctx context.Context, caller, id string) (*ClothingItem, error)
	Unlike(ctx context.Context, caller, id string) (*ClothingItem, error)
}
