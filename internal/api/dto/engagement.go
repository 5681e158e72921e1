package dto

// LikeToggleDTO 点赞翻转结果
type LikeToggleDTO struct {
	PostID    uint64 `json:"postId"`
	LikeCount int64  `json:"likeCount"`
	Liked     bool   `json:"liked"`
}

// EngagementDTO 帖子互动快照，likedByViewer 匿名时恒为 false
type EngagementDTO struct {
	PostID        uint64 `json:"postId"`
	ViewCount     int64  `json:"viewCount"`
	LikeCount     int64  `json:"likeCount"`
	CommentCount  int64  `json:"commentCount"`
	LikedByViewer bool   `json:"likedByViewer"`
}
