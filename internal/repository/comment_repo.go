package repository

import (
	"Agora/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type CommentRepo interface {
	WithTx(tx *gorm.DB) CommentRepo

	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, commentID uint64) (*model.Comment, error)
	GetByPostID(ctx context.Context, postID uint64) ([]*model.Comment, error)
	Update(ctx context.Context, comment *model.Comment) error
	Delete(ctx context.Context, commentID uint64) error
	DeleteByPostID(ctx context.Context, postID uint64) error
}

type CommentRepoImpl struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &CommentRepoImpl{db: db}
}

func (s *CommentRepoImpl) WithTx(tx *gorm.DB) CommentRepo {
	if tx == nil {
		return s
	}
	return &CommentRepoImpl{db: tx}
}

func (s *CommentRepoImpl) Create(ctx context.Context, comment *model.Comment) error {
	return s.db.WithContext(ctx).Create(comment).Error
}

func (s *CommentRepoImpl) GetByID(ctx context.Context, commentID uint64) (*model.Comment, error) {
	comment := &model.Comment{}
	result := s.db.WithContext(ctx).First(comment, commentID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return comment, nil
}

// GetByPostID 帖子下的评论按时间正序
func (s *CommentRepoImpl) GetByPostID(ctx context.Context, postID uint64) ([]*model.Comment, error) {
	comments := make([]*model.Comment, 0)
	result := s.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments)
	if result.Error != nil {
		return nil, result.Error
	}
	return comments, nil
}

func (s *CommentRepoImpl) Update(ctx context.Context, comment *model.Comment) error {
	return s.db.WithContext(ctx).Model(comment).
		Select("contents").
		Updates(comment).Error
}

func (s *CommentRepoImpl) Delete(ctx context.Context, commentID uint64) error {
	return s.db.WithContext(ctx).Delete(&model.Comment{}, commentID).Error
}

func (s *CommentRepoImpl) DeleteByPostID(ctx context.Context, postID uint64) error {
	return s.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&model.Comment{}).Error
}
