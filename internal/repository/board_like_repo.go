package repository

import (
	"Agora/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BoardLikeRepo 点赞账本，软删除翻转，永不物理删除单条记录
type BoardLikeRepo interface {
	WithTx(tx *gorm.DB) BoardLikeRepo

	Find(ctx context.Context, userID, postID uint64) (*model.BoardLike, error)
	FindForUpdate(ctx context.Context, userID, postID uint64) (*model.BoardLike, error)
	Create(ctx context.Context, like *model.BoardLike) error
	UpdateDeleted(ctx context.Context, userID, postID uint64, deleted bool) (int64, error)
	IsActive(ctx context.Context, userID, postID uint64) (bool, error)
	CountActiveByPostID(ctx context.Context, postID uint64) (int64, error)
	DeleteByPostID(ctx context.Context, postID uint64) error
}

type BoardLikeRepoImpl struct {
	db *gorm.DB
}

func NewBoardLikeRepo(db *gorm.DB) BoardLikeRepo {
	return &BoardLikeRepoImpl{db: db}
}

func (s *BoardLikeRepoImpl) WithTx(tx *gorm.DB) BoardLikeRepo {
	if tx == nil {
		return s
	}
	return &BoardLikeRepoImpl{db: tx}
}

func (s *BoardLikeRepoImpl) Find(ctx context.Context, userID, postID uint64) (*model.BoardLike, error) {
	return s.find(ctx, s.db, userID, postID)
}

// FindForUpdate 行锁读取，同一 (user, post) 的并发翻转在这里串行化
func (s *BoardLikeRepoImpl) FindForUpdate(ctx context.Context, userID, postID uint64) (*model.BoardLike, error) {
	return s.find(ctx, s.db.Clauses(clause.Locking{Strength: "UPDATE"}), userID, postID)
}

func (s *BoardLikeRepoImpl) find(ctx context.Context, db *gorm.DB, userID, postID uint64) (*model.BoardLike, error) {
	like := &model.BoardLike{}
	result := db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(like)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return like, nil
}

func (s *BoardLikeRepoImpl) Create(ctx context.Context, like *model.BoardLike) error {
	return s.db.WithContext(ctx).Create(like).Error
}

// UpdateDeleted 条件翻转，返回影响行数供调用方确认状态机走到了预期分支
func (s *BoardLikeRepoImpl) UpdateDeleted(ctx context.Context, userID, postID uint64, deleted bool) (int64, error) {
	result := s.db.WithContext(ctx).Model(&model.BoardLike{}).
		Where("user_id = ? AND post_id = ? AND deleted = ?", userID, postID, !deleted).
		Updates(map[string]interface{}{
			"deleted":    deleted,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (s *BoardLikeRepoImpl) IsActive(ctx context.Context, userID, postID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.BoardLike{}).
		Where("user_id = ? AND post_id = ? AND deleted = ?", userID, postID, false).
		Count(&count).Error
	return count > 0, err
}

func (s *BoardLikeRepoImpl) CountActiveByPostID(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.BoardLike{}).
		Where("post_id = ? AND deleted = ?", postID, false).
		Count(&count).Error
	return count, err
}

// DeleteByPostID 帖子删除时的级联清理，账本随帖子一起消失
func (s *BoardLikeRepoImpl) DeleteByPostID(ctx context.Context, postID uint64) error {
	return s.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&model.BoardLike{}).Error
}
