package wire

import (
	"Agora/internal/api"
	"Agora/internal/api/handler"
	"Agora/internal/job"
	"Agora/internal/pkg/cron"
	"Agora/internal/repository"
	"Agora/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB) (*ApplicationContainer, error) {
	txRunner := repository.NewTxRunner(db)
	userRepo := repository.NewUserRepo(db)
	boardRepo := repository.NewBoardRepo(db)
	commentRepo := repository.NewCommentRepo(db)
	statsRepo := repository.NewBoardStatsRepo(db)
	likeRepo := repository.NewBoardLikeRepo(db)

	engagementSvc := service.NewEngagementService(txRunner, statsRepo, likeRepo, boardRepo, userRepo)
	authSvc := service.NewAuthService(userRepo)
	boardSvc := service.NewBoardService(txRunner, boardRepo, commentRepo, likeRepo, statsRepo, userRepo, engagementSvc)
	commentSvc := service.NewCommentService(txRunner, commentRepo, boardRepo, userRepo, engagementSvc)

	handlers := &api.HandlersGroup{
		AuthHandler:       handler.NewAuthHandler(authSvc),
		BoardHandler:      handler.NewBoardHandler(boardSvc),
		CommentHandler:    handler.NewCommentHandler(commentSvc),
		EngagementHandler: handler.NewEngagementHandler(engagementSvc),
	}

	router := api.SetupRouter(handlers)

	statsAuditJob := job.NewStatsAuditJob(statsRepo, likeRepo)
	cronMgr := cron.NewCronManager(statsAuditJob)

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
