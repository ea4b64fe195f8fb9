package models

import "time"

type UserModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Email     string `gorm:"uniqueIndex;not null"`
	Role      string `gorm:"type:varchar(16);not null"`
	CreatedAt time.Time
}

func (UserModel) TableName() string {
	return "users"
}
