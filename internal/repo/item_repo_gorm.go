package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wtwr-api/internal/domain"
	"wtwr-api/internal/feature/item"
	"wtwr-api/pkg/utils"
)

type ItemRepo struct{ db *gorm.DB }

func NewItemRepo(db *gorm.DB) *ItemRepo { return &ItemRepo{db: db} }

var _ domain.ItemRepository = (*ItemRepo)(nil)

// likes 按点赞先后返回
func orderedLikes(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, user_id ASC") }

func (r *ItemRepo) List(ctx context.Context) ([]domain.ClothingItem, error) {
	var ms []item.ItemModel
	err := r.db.WithContext(ctx).
		Preload("Likes", orderedLikes).
		Order("created_at ASC, id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.ClothingItem, 0, len(ms))
	for i := range ms {
		out = append(out, toItem(&ms[i]))
	}
	return out, nil
}

func (r *ItemRepo) Create(ctx context.Context, it *domain.ClothingItem) error {
	m := item.ItemModel{
		ID:        it.ID,
		Name:      it.Name,
		Weather:   string(it.Weather),
		ImageURL:  it.ImageURL,
		Owner:     it.Owner,
		CreatedAt: it.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		if isDupKey(err) {
			return domain.DuplicateError(domain.ResourceItem, err)
		}
		return err
	}
	it.CreatedAt = m.CreatedAt
	if it.Likes == nil {
		it.Likes = []string{}
	}
	return nil
}

func (r *ItemRepo) FindByID(ctx context.Context, id string) (*domain.ClothingItem, error) {
	if !utils.IsValidID(id) {
		return nil, domain.MalformedIDError(domain.ResourceItem, id)
	}
	return loadItem(r.db.WithContext(ctx), id)
}

func (r *ItemRepo) Delete(ctx context.Context, id, owner string) error {
	if !utils.IsValidID(id) {
		return domain.MalformedIDError(domain.ResourceItem, id)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if owner != "" {
			var m item.ItemModel
			err := tx.Select("id", "owner").Take(&m, "id = ?", id).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NotFoundError(domain.ResourceItem)
			}
			if err != nil {
				return err
			}
			if m.Owner != owner {
				return domain.ForbiddenError(domain.ResourceItem)
			}
		}
		if err := tx.Where("item_id = ?", id).Delete(&item.LikeModel{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&item.ItemModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.NotFoundError(domain.ResourceItem)
		}
		return nil
	})
}

// AddLike 集合加入：主键冲突即已点赞，忽略
func (r *ItemRepo) AddLike(ctx context.Context, itemID, userID string) (*domain.ClothingItem, error) {
	return r.mutateLikes(ctx, itemID, func(tx *gorm.DB) error {
		like := item.LikeModel{ItemID: itemID, UserID: userID}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error
	})
}

// RemoveLike 集合移除：不存在时不做任何事
func (r *ItemRepo) RemoveLike(ctx context.Context, itemID, userID string) (*domain.ClothingItem, error) {
	return r.mutateLikes(ctx, itemID, func(tx *gorm.DB) error {
		return tx.Where("item_id = ? AND user_id = ?", itemID, userID).Delete(&item.LikeModel{}).Error
	})
}

func (r *ItemRepo) mutateLikes(ctx context.Context, itemID string, op func(tx *gorm.DB) error) (*domain.ClothingItem, error) {
	if !utils.IsValidID(itemID) {
		return nil, domain.MalformedIDError(domain.ResourceItem, itemID)
	}
	var out *domain.ClothingItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&item.ItemModel{}).Where("id = ?", itemID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return domain.NotFoundError(domain.ResourceItem)
		}
		if err := op(tx); err != nil {
			return err
		}
		it, err := loadItem(tx, itemID)
		if err != nil {
			return err
		}
		out = it
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func loadItem(db *gorm.DB, id string) (*domain.ClothingItem, error) {
	var m item.ItemModel
	err := db.Preload("Likes", orderedLikes).Take(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFoundError(domain.ResourceItem)
	}
	if err != nil {
		return nil, err
	}
	it := toItem(&m)
	return &it, nil
}

func toItem(m *item.ItemModel) domain.ClothingItem {
	likes := make([]string, 0, len(m.Likes))
	for _, l := range m.Likes {
		likes = append(likes, l.UserID)
	}
	return domain.ClothingItem{
		ID:        m.ID,
		Name:      m.Name,
		Weather:   domain.Weather(m.Weather),
		ImageURL:  m.ImageURL,
		Owner:     m.Owner,
		Likes:     likes,
		CreatedAt: m.CreatedAt,
	}
}
