package handler

import (
	"Agora/internal/api/dto"
	"Agora/internal/pkg/response"
	"Agora/internal/service"
	"strings"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authSvc service.AuthService
}

func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{
		authSvc: authSvc,
	}
}

// Register 注册
func (s *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	res, err := s.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// Login 登录
func (s *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	res, err := s.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// Logout 登出，当前 Token 拉黑
func (s *AuthHandler) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")

	if err := s.authSvc.Logout(c.Request.Context(), token); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// CheckNickname 昵称可用性检查
func (s *AuthHandler) CheckNickname(c *gin.Context) {
	var req dto.NicknameCheckReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	available, err := s.authSvc.CheckNickname(c.Request.Context(), req.Nickname)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.AvailabilityDTO{Available: available})
}

// CheckEmail 邮箱可用性检查
func (s *AuthHandler) CheckEmail(c *gin.Context) {
	var req dto.EmailCheckReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	available, err := s.authSvc.CheckEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.AvailabilityDTO{Available: available})
}
