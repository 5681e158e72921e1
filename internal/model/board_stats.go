package model

// BoardStats 帖子聚合计数，一帖一行
// 所有增减都必须走存储侧原子语句，禁止读出来加一再写回
type BoardStats struct {
	PostID       uint64 `gorm:"primaryKey;column:post_id" json:"postId"`
	ViewCount    int64  `gorm:"not null;default:0;index:idx_view_count" json:"viewCount"`
	LikeCount    int64  `gorm:"not null;default:0;index:idx_like_count" json:"likeCount"`
	CommentCount int64  `gorm:"not null;default:0" json:"commentCount"`
}

func (BoardStats) TableName() string {
	return "board_stats"
}
