package item

import "time"

type ItemModel struct {
	ID        string      `gorm:"primaryKey;type:varchar(24)"`
	Name      string      `gorm:"size:30;not null"`
	Weather   string      `gorm:"size:8;not null"`
	ImageURL  string      `gorm:"size:2048;not null"`
	Owner     string      `gorm:"size:64;not null;index"`
	Likes     []LikeModel `gorm:"foreignKey:ItemID;references:ID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time   `gorm:"not null;index"`
}

func (ItemModel) TableName() string { return "clothing_items" }

// LikeModel (item_id, user_id) 联合主键即集合语义：同一用户对同一物品至多一行
type LikeModel struct {
	ItemID    string    `gorm:"primaryKey;type:varchar(24)"`
	UserID    string    `gorm:"primaryKey;size:64;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (LikeModel) TableName() string { return "item_likes" }
