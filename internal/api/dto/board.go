package dto

type PostCreateReq struct {
	Title    string `json:"title" binding:"required,max=255"`
	Contents string `json:"contents" binding:"required"`
}

type PostUpdateReq struct {
	Title    string `json:"title" binding:"required,max=255"`
	Contents string `json:"contents" binding:"required"`
}

type PostDTO struct {
	PostID       uint64 `json:"postId"`
	Title        string `json:"title"`
	Contents     string `json:"contents"`
	UserID       uint64 `json:"userId"`
	Author       string `json:"author"`
	ViewCount    int64  `json:"viewCount"`
	LikeCount    int64  `json:"likeCount"`
	CommentCount int64  `json:"commentCount"`
	Liked        bool   `json:"liked"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`

	Comments []*CommentDTO `json:"comments,omitempty"`
}

type BoardListItemDTO struct {
	PostID       uint64 `json:"postId"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	ViewCount    int64  `json:"viewCount"`
	LikeCount    int64  `json:"likeCount"`
	CommentCount int64  `json:"commentCount"`
	CreatedAt    string `json:"createdAt"`
}

type BoardListDTO struct {
	List  []*BoardListItemDTO `json:"list"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
}

type PostDeleteDTO struct {
	PostID uint64 `json:"postId"`
	UserID uint64 `json:"userId"`
}
