package user

import "time"

type UserModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(24)"`
	Name      string    `gorm:"size:30;not null"`
	Avatar    string    `gorm:"size:2048;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (UserModel) TableName() string { return "users" }
