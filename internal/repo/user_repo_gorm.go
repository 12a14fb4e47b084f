package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"wtwr-api/internal/domain"
	"wtwr-api/internal/feature/item"
	"wtwr-api/internal/feature/user"
	"wtwr-api/pkg/utils"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

var _ domain.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	var ms []user.UserModel
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(ms))
	for i := range ms {
		out = append(out, toUser(&ms[i]))
	}
	return out, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if !utils.IsValidID(id) {
		return nil, domain.MalformedIDError(domain.ResourceUser, id)
	}
	var m user.UserModel
	err := r.db.WithContext(ctx).Take(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFoundError(domain.ResourceUser)
	}
	if err != nil {
		return nil, err
	}
	u := toUser(&m)
	return &u, nil
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	m := user.UserModel{ID: u.ID, Name: u.Name, Avatar: u.Avatar, CreatedAt: u.CreatedAt}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isDupKey(err) {
			return domain.DuplicateError(domain.ResourceUser, err)
		}
		return err
	}
	u.CreatedAt = m.CreatedAt
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id string, cascade bool) error {
	if !utils.IsValidID(id) {
		return domain.MalformedIDError(domain.ResourceUser, id)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&user.UserModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.NotFoundError(domain.ResourceUser)
		}
		if !cascade {
			return nil
		}
		owned := tx.Model(&item.ItemModel{}).Select("id").Where("owner = ?", id)
		if err := tx.Where("item_id IN (?)", owned).Delete(&item.LikeModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("owner = ?", id).Delete(&item.ItemModel{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", id).Delete(&item.LikeModel{}).Error
	})
}

func toUser(m *user.UserModel) domain.User {
	return domain.User{ID: m.ID, Name: m.Name, Avatar: m.Avatar, CreatedAt: m.CreatedAt}
}
