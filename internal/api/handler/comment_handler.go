package handler

import (
	"Agora/internal/api/dto"
	"Agora/internal/pkg/response"
	"Agora/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentSvc service.CommentService
}

func NewCommentHandler(commentSvc service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentSvc: commentSvc,
	}
}

// CreateComment 发评论
func (s *CommentHandler) CreateComment(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil || postID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	var req dto.CommentCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	res, err := s.commentSvc.Create(c.Request.Context(), userID, postID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// UpdateComment 改评论
func (s *CommentHandler) UpdateComment(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, commentID, ok := parseCommentPath(c)
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	var req dto.CommentUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	res, err := s.commentSvc.Update(c.Request.Context(), userID, postID, commentID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// DeleteComment 删评论
func (s *CommentHandler) DeleteComment(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, commentID, ok := parseCommentPath(c)
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := s.commentSvc.Delete(c.Request.Context(), userID, postID, commentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// GetComments 帖子评论列表
func (s *CommentHandler) GetComments(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil || postID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := s.commentSvc.GetByPost(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func parseCommentPath(c *gin.Context) (postID, commentID uint64, ok bool) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil || postID == 0 {
		return 0, 0, false
	}
	commentID, err = strconv.ParseUint(c.Param("comment_id"), 10, 64)
	if err != nil || commentID == 0 {
		return 0, 0, false
	}
	return postID, commentID, true
}
