package service

import (
	"Agora/internal/api/dto"
	"Agora/internal/model"
	"Agora/internal/pkg/redis"
	"Agora/internal/pkg/security"
	"Agora/internal/repository"
	"context"
)

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterReq) (*dto.LoginDTO, error)
	Login(ctx context.Context, req *dto.LoginReq) (*dto.LoginDTO, error)
	Logout(ctx context.Context, token string) error
	CheckNickname(ctx context.Context, nickname string) (bool, error)
	CheckEmail(ctx context.Context, email string) (bool, error)
}

type authServiceImpl struct {
	userRepo repository.UserRepo
}

func NewAuthService(userRepo repository.UserRepo) AuthService {
	return &authServiceImpl{userRepo: userRepo}
}

// Register 注册成功直接发 Token，省一次登录请求
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterReq) (*dto.LoginDTO, error) {
	existing, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserEmailExist
	}

	existing, err = s.userRepo.GetUserByNickname(ctx, req.Nickname)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserNicknameExist
	}

	hashed, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:    req.Email,
		Nickname: req.Nickname,
		Password: hashed,
	}
	if err = s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginReq) (*dto.LoginDTO, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err = security.CheckPasswordHash(req.Password, user.Password); err != nil {
		return nil, ErrPasswordIncorrect
	}

	return s.issueToken(user)
}

// Logout 把 Token 签名拉黑到过期为止，鉴权中间件同点位校验
func (s *authServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return ErrParamInvalid
	}
	return redis.SetWithExpiration(ctx, signature, "revoked", security.JWTExpirationTime)
}

func (s *authServiceImpl) CheckNickname(ctx context.Context, nickname string) (bool, error) {
	existing, err := s.userRepo.GetUserByNickname(ctx, nickname)
	if err != nil {
		return false, err
	}
	return existing == nil, nil
}

func (s *authServiceImpl) CheckEmail(ctx context.Context, email string) (bool, error) {
	existing, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return existing == nil, nil
}

func (s *authServiceImpl) issueToken(user *model.User) (*dto.LoginDTO, error) {
	token, err := security.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.LoginDTO{
		UserID:   user.ID,
		Nickname: user.Nickname,
		Token:    token,
	}, nil
}
