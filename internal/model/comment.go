package model

import (
	"time"
)

type Comment struct {
	ID        uint64    `gorm:"primaryKey" json:"commentId"`
	PostID    uint64    `gorm:"not null;index:idx_post_id" json:"postId"`
	UserID    uint64    `gorm:"not null" json:"userId"`
	Contents  string    `gorm:"type:varchar(1000);not null" json:"contents"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// 关联关系
	Author User `gorm:"foreignKey:UserID;references:ID"`
}

func (Comment) TableName() string {
	return "comments"
}
