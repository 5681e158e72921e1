package repository

import (
	"Agora/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BoardStatsRepo 帖子计数行的持久化操作
// 增减一律下推到数据库原子语句执行，避免并发丢更新
type BoardStatsRepo interface {
	WithTx(tx *gorm.DB) BoardStatsRepo

	EnsureExists(ctx context.Context, postID uint64) error
	IncrementView(ctx context.Context, postID uint64) error
	IncrementLike(ctx context.Context, postID uint64) error
	DecrementLike(ctx context.Context, postID uint64) error
	IncrementComment(ctx context.Context, postID uint64) error
	DecrementComment(ctx context.Context, postID uint64) error
	Get(ctx context.Context, postID uint64) (*model.BoardStats, error)
	GetByPostIDs(ctx context.Context, postIDs []uint64) ([]*model.BoardStats, error)
	GetTopLiked(ctx context.Context, limit int) ([]*model.BoardStats, error)
	DeleteByPostID(ctx context.Context, postID uint64) error
}

type BoardStatsRepoImpl struct {
	db *gorm.DB
}

func NewBoardStatsRepo(db *gorm.DB) BoardStatsRepo {
	return &BoardStatsRepoImpl{db: db}
}

func (s *BoardStatsRepoImpl) WithTx(tx *gorm.DB) BoardStatsRepo {
	if tx == nil {
		return s
	}
	return &BoardStatsRepoImpl{db: tx}
}

// EnsureExists 计数行不存在则插入全零行，幂等，可并发重复调用
func (s *BoardStatsRepoImpl) EnsureExists(ctx context.Context, postID uint64) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.BoardStats{PostID: postID}).Error
}

func (s *BoardStatsRepoImpl) IncrementView(ctx context.Context, postID uint64) error {
	return s.addDelta(ctx, postID, "view_count", "view_count + 1")
}

func (s *BoardStatsRepoImpl) IncrementLike(ctx context.Context, postID uint64) error {
	return s.addDelta(ctx, postID, "like_count", "like_count + 1")
}

// DecrementLike 减一并在存储侧钳位到 0，永不出现负数
func (s *BoardStatsRepoImpl) DecrementLike(ctx context.Context, postID uint64) error {
	return s.addDelta(ctx, postID, "like_count", "GREATEST(like_count - 1, 0)")
}

func (s *BoardStatsRepoImpl) IncrementComment(ctx context.Context, postID uint64) error {
	return s.addDelta(ctx, postID, "comment_count", "comment_count + 1")
}

func (s *BoardStatsRepoImpl) DecrementComment(ctx context.Context, postID uint64) error {
	return s.addDelta(ctx, postID, "comment_count", "GREATEST(comment_count - 1, 0)")
}

// addDelta 单条原子 UPDATE，行不存在时影响 0 行，视为 no-op
func (s *BoardStatsRepoImpl) addDelta(ctx context.Context, postID uint64, column, expr string) error {
	return s.db.WithContext(ctx).Model(&model.BoardStats{}).
		Where("post_id = ?", postID).
		Update(column, gorm.Expr(expr)).Error
}

// Get 读取计数，行不存在时返回全零，不报错
func (s *BoardStatsRepoImpl) Get(ctx context.Context, postID uint64) (*model.BoardStats, error) {
	stats := &model.BoardStats{}
	result := s.db.WithContext(ctx).
		Where("post_id = ?", postID).
		First(stats)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return &model.BoardStats{PostID: postID}, nil
		}
		return nil, result.Error
	}
	return stats, nil
}

func (s *BoardStatsRepoImpl) GetByPostIDs(ctx context.Context, postIDs []uint64) ([]*model.BoardStats, error) {
	statsList := make([]*model.BoardStats, 0, len(postIDs))
	result := s.db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Find(&statsList)
	if result.Error != nil {
		return nil, result.Error
	}
	return statsList, nil
}

// GetTopLiked 按点赞数倒序取前 N 行，给对账任务用
func (s *BoardStatsRepoImpl) GetTopLiked(ctx context.Context, limit int) ([]*model.BoardStats, error) {
	statsList := make([]*model.BoardStats, 0, limit)
	result := s.db.WithContext(ctx).
		Order("like_count DESC").
		Limit(limit).
		Find(&statsList)
	if result.Error != nil {
		return nil, result.Error
	}
	return statsList, nil
}

func (s *BoardStatsRepoImpl) DeleteByPostID(ctx context.Context, postID uint64) error {
	return s.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&model.BoardStats{}).Error
}
