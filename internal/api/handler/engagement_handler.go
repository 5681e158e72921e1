package handler

import (
	"Agora/internal/pkg/response"
	"Agora/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type EngagementHandler struct {
	engagementSvc service.EngagementService
}

func NewEngagementHandler(engagementSvc service.EngagementService) *EngagementHandler {
	return &EngagementHandler{
		engagementSvc: engagementSvc,
	}
}

// ToggleLike 点赞翻转，已赞则取消，未赞则点上
func (s *EngagementHandler) ToggleLike(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil || postID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := s.engagementSvc.ToggleLike(c.Request.Context(), userID, postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// GetEngagement 互动快照，纯读不计浏览
func (s *EngagementHandler) GetEngagement(c *gin.Context) {
	viewerID := c.GetUint64("user_id")
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil || postID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := s.engagementSvc.Snapshot(c.Request.Context(), postID, viewerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
