package api

import (
	"Agora/internal/api/handler"
)

type HandlersGroup struct {
	AuthHandler       *handler.AuthHandler
	BoardHandler      *handler.BoardHandler
	CommentHandler    *handler.CommentHandler
	EngagementHandler *handler.EngagementHandler
}
