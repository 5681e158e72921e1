package handler

import (
	"Agora/internal/api/dto"
	"Agora/internal/pkg/consts"
	"Agora/internal/pkg/redis"
	"Agora/internal/pkg/response"
	"Agora/internal/service"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// 同一浏览者对同一帖子的浏览计数间隔
const viewGuardTTL = 30 * time.Second

type BoardHandler struct {
	boardSvc service.BoardService
}

func NewBoardHandler(boardSvc service.BoardService) *BoardHandler {
	return &BoardHandler{
		boardSvc: boardSvc,
	}
}

// CreateBoard 发帖
func (s *BoardHandler) CreateBoard(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var req dto.PostCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	res, err := s.boardSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// UpdateBoard 改帖
func (s *BoardHandler) UpdateBoard(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil || postID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	var req dto.PostUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	res, err := s.boardSvc.Update(c.Request.Context(), userID, postID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// DeleteBoard 删帖
func (s *BoardHandler) DeleteBoard(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil || postID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := s.boardSvc.Delete(c.Request.Context(), userID, postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// GetBoardList 帖子列表
func (s *BoardHandler) GetBoardList(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	res, err := s.boardSvc.GetList(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// GetBoardDetail 帖子详情，当次浏览计入返回的浏览数
func (s *BoardHandler) GetBoardDetail(c *gin.Context) {
	viewerID := c.GetUint64("user_id")
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil || postID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	countView := s.shouldCountView(c, viewerID, postID)
	res, err := s.boardSvc.GetDetail(c.Request.Context(), postID, viewerID, countView)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// shouldCountView 登录用户 30 秒内重复刷详情只计一次，匿名访问每次都计
func (s *BoardHandler) shouldCountView(c *gin.Context, viewerID, postID uint64) bool {
	if viewerID == 0 {
		return true
	}

	key := consts.BoardViewGuardKey +
		strconv.FormatUint(viewerID, 10) + ":" + strconv.FormatUint(postID, 10)
	ok, err := redis.SetNX(c.Request.Context(), key, "1", viewGuardTTL)
	if err != nil {
		// 去重失败时照常计数
		return true
	}
	return ok
}
