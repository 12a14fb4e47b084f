package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"wtwr-api/internal/feature/item"
	"wtwr-api/internal/feature/user"
)

// Models 需要迁移的表
func Models() []any {
	return []any{&user.UserModel{}, &item.ItemModel{}, &item.LikeModel{}}
}

func AutoMigrate(db *gorm.DB) error { return db.AutoMigrate(Models()...) }

// 驱动未翻译时认的唯一键冲突标志：postgres 23505、mysql 1062、sqlite UNIQUE
var dupKeyMarkers = []string{"SQLSTATE 23505", "Error 1062", "UNIQUE constraint failed"}

func isDupKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	for _, m := range dupKeyMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
