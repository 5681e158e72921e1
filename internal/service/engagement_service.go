package service

import (
	"Agora/internal/api/dto"
	"Agora/internal/model"
	"Agora/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// EngagementService 互动计数的唯一入口
// 点赞账本和计数行只允许从这里一起变更，保证每个互动事件恰好产生一次计数增减
type EngagementService interface {
	ToggleLike(ctx context.Context, userID, postID uint64) (*dto.LikeToggleDTO, error)
	RecordView(ctx context.Context, postID uint64) error
	RecordCommentAdded(ctx context.Context, tx *gorm.DB, postID uint64) error
	RecordCommentRemoved(ctx context.Context, tx *gorm.DB, postID uint64) error
	Snapshot(ctx context.Context, postID, viewerID uint64) (*dto.EngagementDTO, error)
}

type engagementServiceImpl struct {
	txRunner  repository.TxRunner
	statsRepo repository.BoardStatsRepo
	likeRepo  repository.BoardLikeRepo
	boardRepo repository.BoardRepo
	userRepo  repository.UserRepo
}

func NewEngagementService(
	txRunner repository.TxRunner,
	statsRepo repository.BoardStatsRepo,
	likeRepo repository.BoardLikeRepo,
	boardRepo repository.BoardRepo,
	userRepo repository.UserRepo,
) EngagementService {
	return &engagementServiceImpl{
		txRunner:  txRunner,
		statsRepo: statsRepo,
		likeRepo:  likeRepo,
		boardRepo: boardRepo,
		userRepo:  userRepo,
	}
}

// ToggleLike 点赞翻转
// 翻转和配套的计数增减放在同一个事务里，账本行加行锁，
// 同一 (user, post) 的并发翻转串行执行，连点两次恢复原状
func (s *engagementServiceImpl) ToggleLike(ctx context.Context, userID, postID uint64) (*dto.LikeToggleDTO, error) {
	userExists, err := s.userRepo.ExistsById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !userExists {
		return nil, ErrUserNotFound
	}

	postExists, err := s.boardRepo.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !postExists {
		return nil, ErrPostNotFound
	}

	if err = s.statsRepo.EnsureExists(ctx, postID); err != nil {
		return nil, err
	}

	var liked bool
	err = s.txRunner.RunInTx(ctx, func(tx *gorm.DB) error {
		likeRepo := s.likeRepo.WithTx(tx)
		statsRepo := s.statsRepo.WithTx(tx)

		existing, err := likeRepo.FindForUpdate(ctx, userID, postID)
		if err != nil {
			return err
		}

		if existing == nil {
			// 首次点赞，直接建账本行
			// 并发首赞撞唯一键时降级为翻转路径
			createErr := likeRepo.Create(ctx, &model.BoardLike{
				UserID:    userID,
				PostID:    postID,
				Deleted:   false,
				UpdatedAt: time.Now(),
			})
			if createErr == nil {
				liked = true
				return statsRepo.IncrementLike(ctx, postID)
			}
			if !isDuplicateError(createErr) {
				return createErr
			}
			existing, err = likeRepo.FindForUpdate(ctx, userID, postID)
			if err != nil {
				return err
			}
			if existing == nil {
				return UnExpectedError
			}
		}

		newDeleted := !existing.Deleted
		rows, err := likeRepo.UpdateDeleted(ctx, userID, postID, newDeleted)
		if err != nil {
			return err
		}
		if rows == 0 {
			return UnExpectedError
		}

		liked = !newDeleted
		if liked {
			return statsRepo.IncrementLike(ctx, postID)
		}
		return statsRepo.DecrementLike(ctx, postID)
	})
	if err != nil {
		return nil, err
	}

	stats, err := s.statsRepo.Get(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &dto.LikeToggleDTO{
		PostID:    postID,
		LikeCount: stats.LikeCount,
		Liked:     liked,
	}, nil
}

// RecordView 浏览计数，详情页每次访问加一，是否去重由调用方决定
func (s *engagementServiceImpl) RecordView(ctx context.Context, postID uint64) error {
	if err := s.statsRepo.EnsureExists(ctx, postID); err != nil {
		return err
	}
	return s.statsRepo.IncrementView(ctx, postID)
}

// RecordCommentAdded 在评论自身的事务里调用，评论行和计数不会分叉
func (s *engagementServiceImpl) RecordCommentAdded(ctx context.Context, tx *gorm.DB, postID uint64) error {
	statsRepo := s.statsRepo.WithTx(tx)
	if err := statsRepo.EnsureExists(ctx, postID); err != nil {
		return err
	}
	return statsRepo.IncrementComment(ctx, postID)
}

func (s *engagementServiceImpl) RecordCommentRemoved(ctx context.Context, tx *gorm.DB, postID uint64) error {
	return s.statsRepo.WithTx(tx).DecrementComment(ctx, postID)
}

// Snapshot 只读快照，不触发浏览计数
func (s *engagementServiceImpl) Snapshot(ctx context.Context, postID, viewerID uint64) (*dto.EngagementDTO, error) {
	snapshot := &dto.EngagementDTO{PostID: postID}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := s.statsRepo.Get(gCtx, postID)
		if err != nil {
			return err
		}
		snapshot.ViewCount = stats.ViewCount
		snapshot.LikeCount = stats.LikeCount
		snapshot.CommentCount = stats.CommentCount
		return nil
	})
	g.Go(func() error {
		if viewerID == 0 {
			return nil
		}
		liked, err := s.likeRepo.IsActive(gCtx, viewerID, postID)
		if err != nil {
			return err
		}
		snapshot.LikedByViewer = liked
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return false
}
