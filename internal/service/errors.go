package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid      = errors.New("参数错误")
	ErrUserNotFound      = errors.New("用户不存在")
	ErrUserEmailExist    = errors.New("邮箱已注册")
	ErrUserNicknameExist = errors.New("昵称已被使用")
	ErrPasswordIncorrect = errors.New("密码错误")
	ErrPostNotFound      = errors.New("帖子不存在")
	ErrCommentNotFound   = errors.New("评论不存在")
	ErrCommentMismatch   = errors.New("评论不属于该帖子")
	UnauthorizedError    = errors.New("权限不足")
	UnExpectedError      = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:      BadRequest,
	ErrUserNotFound:      NotFound,
	ErrUserEmailExist:    BadRequest,
	ErrUserNicknameExist: BadRequest,
	ErrPasswordIncorrect: Unauthorized,
	ErrPostNotFound:      NotFound,
	ErrCommentNotFound:   NotFound,
	ErrCommentMismatch:   BadRequest,
	UnauthorizedError:    Unauthorized,
	UnExpectedError:      InternalServerError,
}
