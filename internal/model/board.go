package model

import (
	"time"
)

type Board struct {
	ID        uint64    `gorm:"primaryKey" json:"postId"`
	UserID    uint64    `gorm:"not null;index:idx_user_id" json:"userId"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Contents  string    `gorm:"type:text;not null" json:"contents"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// 关联关系
	Author User `gorm:"foreignKey:UserID;references:ID"`
}

func (Board) TableName() string {
	return "boards"
}
