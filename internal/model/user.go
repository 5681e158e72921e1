package model

import (
	"time"
)

type User struct {
	ID        uint64 `gorm:"primaryKey"`
	Email     string `gorm:"type:varchar(100);not null;uniqueIndex:idx_email"`
	Nickname  string `gorm:"type:varchar(50);not null;uniqueIndex:idx_nickname"`
	Password  string `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return "users"
}
