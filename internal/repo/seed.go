package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"wtwr-api/internal/domain"
	"wtwr-api/internal/feature/item"
	"wtwr-api/internal/feature/user"
	"wtwr-api/pkg/utils"
)

const assetBase = "https://practicum-content.s3.us-west-1.amazonaws.com/software-engineer/wtwr-project/"

// SeedUser 固定测试用户，与 auth.fixedUserId 默认值一致
var SeedUser = domain.User{
	ID:     "6863bbc8eb627a884f678c38",
	Name:   "Elise Bouer",
	Avatar: assetBase + "Elise.png",
}

type seedItem struct {
	name    string
	weather domain.Weather
	file    string
}

var seedItems = []seedItem{
	{"Cap", domain.WeatherHot, "Cap.png"},
	{"Hoodie", domain.WeatherWarm, "Hoodie.png"},
	{"Jacket", domain.WeatherCold, "Jacket.png"},
	{"Sneakers", domain.WeatherWarm, "Sneakers.png"},
	{"T-Shirt", domain.WeatherHot, "T-Shirt.png"},
	{"Coat", domain.WeatherCold, "Coat.png"},
	{"Boots", domain.WeatherCold, "Boots.png"},
	{"Dress", domain.WeatherHot, "Dress.png"},
	{"Scarf", domain.WeatherCold, "Scarf.png"},
}

// Reset 清空点赞、物品、用户
func Reset(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, m := range []any{&item.LikeModel{}, &item.ItemModel{}, &user.UserModel{}} {
			if err := all.Delete(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Seed 重置后写入测试用户与示例物品；物品创建时间逐个递增以保持列表顺序
func Seed(ctx context.Context, db *gorm.DB, now time.Time) ([]domain.ClothingItem, error) {
	if err := Reset(ctx, db); err != nil {
		return nil, err
	}
	u := SeedUser
	u.CreatedAt = now
	if err := NewUserRepo(db).Create(ctx, &u); err != nil {
		return nil, err
	}

	items := NewItemRepo(db)
	out := make([]domain.ClothingItem, 0, len(seedItems))
	for i, s := range seedItems {
		it := domain.ClothingItem{
			ID:        utils.NewID(),
			Name:      s.name,
			Weather:   s.weather,
			ImageURL:  assetBase + s.file,
			Owner:     u.ID,
			Likes:     []string{},
			CreatedAt: now.Add(time.Duration(i) * time.Second),
		}
		if err := items.Create(ctx, &it); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, nil
}
