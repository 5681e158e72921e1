package repository

import (
	"Agora/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type BoardRepo interface {
	WithTx(tx *gorm.DB) BoardRepo

	Create(ctx context.Context, board *model.Board) error
	GetByID(ctx context.Context, postID uint64) (*model.Board, error)
	GetPage(ctx context.Context, limit, offset int) ([]*model.Board, int64, error)
	Update(ctx context.Context, board *model.Board) error
	Delete(ctx context.Context, postID uint64) error
	Exists(ctx context.Context, postID uint64) (bool, error)
}

type BoardRepoImpl struct {
	db *gorm.DB
}

func NewBoardRepo(db *gorm.DB) BoardRepo {
	return &BoardRepoImpl{db: db}
}

func (s *BoardRepoImpl) WithTx(tx *gorm.DB) BoardRepo {
	if tx == nil {
		return s
	}
	return &BoardRepoImpl{db: tx}
}

func (s *BoardRepoImpl) Create(ctx context.Context, board *model.Board) error {
	return s.db.WithContext(ctx).Create(board).Error
}

func (s *BoardRepoImpl) GetByID(ctx context.Context, postID uint64) (*model.Board, error) {
	board := &model.Board{}
	result := s.db.WithContext(ctx).
		Preload("Author").
		First(board, postID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return board, nil
}

// GetPage 按创建时间倒序分页
func (s *BoardRepoImpl) GetPage(ctx context.Context, limit, offset int) ([]*model.Board, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&model.Board{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	boards := make([]*model.Board, 0, limit)
	result := s.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&boards)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return boards, total, nil
}

func (s *BoardRepoImpl) Update(ctx context.Context, board *model.Board) error {
	return s.db.WithContext(ctx).Model(board).
		Select("title", "contents").
		Updates(board).Error
}

func (s *BoardRepoImpl) Delete(ctx context.Context, postID uint64) error {
	return s.db.WithContext(ctx).Delete(&model.Board{}, postID).Error
}

func (s *BoardRepoImpl) Exists(ctx context.Context, postID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Board{}).
		Where("id = ?", postID).
		Count(&count).Error
	return count > 0, err
}
