package dto

type CommentCreateReq struct {
	Contents string `json:"contents" binding:"required,max=1000"`
}

type CommentUpdateReq struct {
	Contents string `json:"contents" binding:"required,max=1000"`
}

type CommentDTO struct {
	CommentID uint64 `json:"commentId"`
	PostID    uint64 `json:"postId"`
	UserID    uint64 `json:"userId"`
	Author    string `json:"author"`
	Contents  string `json:"contents"`
	CreatedAt string `json:"createdAt"`
}

type CommentDeleteDTO struct {
	CommentID uint64 `json:"commentId"`
	PostID    uint64 `json:"postId"`
	UserID    uint64 `json:"userId"`
}
