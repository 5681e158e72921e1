package api

import (
	"Agora/internal/api/middleware"
	"Agora/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/register", group.AuthHandler.Register)
			authGroup.POST("/login", group.AuthHandler.Login)
			authGroup.POST("/nickname/check", group.AuthHandler.CheckNickname)
			authGroup.POST("/email/check", group.AuthHandler.CheckEmail)

			loginGroup := authGroup.Group("")
			loginGroup.Use(middleware.AuthMiddleware())
			{
				loginGroup.POST("/logout", group.AuthHandler.Logout)
			}
		}

		boardGroup := apiGroup.Group("/boards")
		{
			authOptGroup := boardGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("", group.BoardHandler.GetBoardList)
				authOptGroup.GET("/:post_id", group.BoardHandler.GetBoardDetail)
				authOptGroup.GET("/:post_id/engagement", group.EngagementHandler.GetEngagement)
				authOptGroup.GET("/:post_id/comments", group.CommentHandler.GetComments)
			}

			authGroup := boardGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.BoardHandler.CreateBoard)
				authGroup.PUT("/:post_id", group.BoardHandler.UpdateBoard)
				authGroup.DELETE("/:post_id", group.BoardHandler.DeleteBoard)

				authGroup.POST("/:post_id/likes", group.EngagementHandler.ToggleLike)

				authGroup.POST("/:post_id/comments", group.CommentHandler.CreateComment)
				authGroup.PUT("/:post_id/comments/:comment_id", group.CommentHandler.UpdateComment)
				authGroup.DELETE("/:post_id/comments/:comment_id", group.CommentHandler.DeleteComment)
			}
		}
	}

	return r
}
