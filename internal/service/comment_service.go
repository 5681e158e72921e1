package service

import (
	"Agora/internal/api/dto"
	"Agora/internal/model"
	"Agora/internal/repository"
	"context"

	"gorm.io/gorm"
)

type CommentService interface {
	Create(ctx context.Context, userID, postID uint64, req *dto.CommentCreateReq) (*dto.CommentDTO, error)
	Update(ctx context.Context, userID, postID, commentID uint64, req *dto.CommentUpdateReq) (*dto.CommentDTO, error)
	Delete(ctx context.Context, userID, postID, commentID uint64) (*dto.CommentDeleteDTO, error)
	GetByPost(ctx context.Context, postID uint64) ([]*dto.CommentDTO, error)
}

type commentServiceImpl struct {
	txRunner      repository.TxRunner
	commentRepo   repository.CommentRepo
	boardRepo     repository.BoardRepo
	userRepo      repository.UserRepo
	engagementSvc EngagementService
}

func NewCommentService(
	txRunner repository.TxRunner,
	commentRepo repository.CommentRepo,
	boardRepo repository.BoardRepo,
	userRepo repository.UserRepo,
	engagementSvc EngagementService,
) CommentService {
	return &commentServiceImpl{
		txRunner:      txRunner,
		commentRepo:   commentRepo,
		boardRepo:     boardRepo,
		userRepo:      userRepo,
		engagementSvc: engagementSvc,
	}
}

// Create 评论写入和评论数加一放在同一个事务
func (s *commentServiceImpl) Create(ctx context.Context, userID, postID uint64, req *dto.CommentCreateReq) (*dto.CommentDTO, error) {
	author, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrUserNotFound
	}

	exists, err := s.boardRepo.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	comment := &model.Comment{
		PostID:   postID,
		UserID:   userID,
		Contents: req.Contents,
	}
	err = s.txRunner.RunInTx(ctx, func(tx *gorm.DB) error {
		if err := s.commentRepo.WithTx(tx).Create(ctx, comment); err != nil {
			return err
		}
		return s.engagementSvc.RecordCommentAdded(ctx, tx, postID)
	})
	if err != nil {
		return nil, err
	}

	comment.Author = *author
	return convertToCommentDTO(comment), nil
}

func (s *commentServiceImpl) Update(ctx context.Context, userID, postID, commentID uint64, req *dto.CommentUpdateReq) (*dto.CommentDTO, error) {
	comment, err := s.getOwnedComment(ctx, userID, postID, commentID)
	if err != nil {
		return nil, err
	}

	comment.Contents = req.Contents
	if err = s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return convertToCommentDTO(comment), nil
}

// Delete 评论删除和评论数减一放在同一个事务
func (s *commentServiceImpl) Delete(ctx context.Context, userID, postID, commentID uint64) (*dto.CommentDeleteDTO, error) {
	comment, err := s.getOwnedComment(ctx, userID, postID, commentID)
	if err != nil {
		return nil, err
	}

	err = s.txRunner.RunInTx(ctx, func(tx *gorm.DB) error {
		if err := s.commentRepo.WithTx(tx).Delete(ctx, comment.ID); err != nil {
			return err
		}
		return s.engagementSvc.RecordCommentRemoved(ctx, tx, postID)
	})
	if err != nil {
		return nil, err
	}

	return &dto.CommentDeleteDTO{CommentID: commentID, PostID: postID, UserID: userID}, nil
}

func (s *commentServiceImpl) GetByPost(ctx context.Context, postID uint64) ([]*dto.CommentDTO, error) {
	exists, err := s.boardRepo.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	comments, err := s.commentRepo.GetByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.CommentDTO, 0, len(comments))
	for _, comment := range comments {
		res = append(res, convertToCommentDTO(comment))
	}
	return res, nil
}

func (s *commentServiceImpl) getOwnedComment(ctx context.Context, userID, postID, commentID uint64) (*model.Comment, error) {
	exists, err := s.boardRepo.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	if comment.PostID != postID {
		return nil, ErrCommentMismatch
	}
	if comment.UserID != userID {
		return nil, UnauthorizedError
	}
	return comment, nil
}

func convertToCommentDTO(comment *model.Comment) *dto.CommentDTO {
	return &dto.CommentDTO{
		CommentID: comment.ID,
		PostID:    comment.PostID,
		UserID:    comment.UserID,
		Author:    comment.Author.Nickname,
		Contents:  comment.Contents,
		CreatedAt: comment.CreatedAt.Format(timeLayout),
	}
}
