package model

import (
	"time"
)

// BoardLike 点赞账本，复合主键 (user_id, post_id)
// 取消点赞只翻转 deleted，不物理删除，再次点赞翻回来
type BoardLike struct {
	UserID    uint64    `gorm:"primaryKey" json:"userId"`
	PostID    uint64    `gorm:"primaryKey;index:idx_post_id" json:"postId"`
	Deleted   bool      `gorm:"type:tinyint(1);not null;default:0" json:"deleted"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (BoardLike) TableName() string {
	return "board_likes"
}
