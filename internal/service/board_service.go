package service

import (
	"Agora/internal/api/dto"
	"Agora/internal/model"
	"Agora/internal/repository"
	"context"
	log "log/slog"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

const timeLayout = "2006-01-02 15:04:05"

type BoardService interface {
	Create(ctx context.Context, userID uint64, req *dto.PostCreateReq) (*dto.PostDTO, error)
	Update(ctx context.Context, userID, postID uint64, req *dto.PostUpdateReq) (*dto.PostDTO, error)
	Delete(ctx context.Context, userID, postID uint64) (*dto.PostDeleteDTO, error)
	GetList(ctx context.Context, page, pageSize int) (*dto.BoardListDTO, error)
	GetDetail(ctx context.Context, postID, viewerID uint64, countView bool) (*dto.PostDTO, error)
}

type boardServiceImpl struct {
	txRunner      repository.TxRunner
	boardRepo     repository.BoardRepo
	commentRepo   repository.CommentRepo
	likeRepo      repository.BoardLikeRepo
	statsRepo     repository.BoardStatsRepo
	userRepo      repository.UserRepo
	engagementSvc EngagementService
}

func NewBoardService(
	txRunner repository.TxRunner,
	boardRepo repository.BoardRepo,
	commentRepo repository.CommentRepo,
	likeRepo repository.BoardLikeRepo,
	statsRepo repository.BoardStatsRepo,
	userRepo repository.UserRepo,
	engagementSvc EngagementService,
) BoardService {
	return &boardServiceImpl{
		txRunner:      txRunner,
		boardRepo:     boardRepo,
		commentRepo:   commentRepo,
		likeRepo:      likeRepo,
		statsRepo:     statsRepo,
		userRepo:      userRepo,
		engagementSvc: engagementSvc,
	}
}

// Create 发帖并预建计数行
func (s *boardServiceImpl) Create(ctx context.Context, userID uint64, req *dto.PostCreateReq) (*dto.PostDTO, error) {
	author, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrUserNotFound
	}

	board := &model.Board{
		UserID:   userID,
		Title:    req.Title,
		Contents: req.Contents,
	}
	if err = s.boardRepo.Create(ctx, board); err != nil {
		return nil, err
	}

	if err = s.statsRepo.EnsureExists(ctx, board.ID); err != nil {
		return nil, err
	}

	board.Author = *author
	return s.convertToPostDTO(board, &model.BoardStats{PostID: board.ID}, false, nil), nil
}

func (s *boardServiceImpl) Update(ctx context.Context, userID, postID uint64, req *dto.PostUpdateReq) (*dto.PostDTO, error) {
	board, err := s.boardRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, ErrPostNotFound
	}
	if board.UserID != userID {
		return nil, UnauthorizedError
	}

	board.Title = req.Title
	board.Contents = req.Contents
	if err = s.boardRepo.Update(ctx, board); err != nil {
		return nil, err
	}

	stats, err := s.statsRepo.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	liked, err := s.likeRepo.IsActive(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	return s.convertToPostDTO(board, stats, liked, nil), nil
}

// Delete 删帖级联：评论、点赞账本、计数行、帖子本体放一个事务
func (s *boardServiceImpl) Delete(ctx context.Context, userID, postID uint64) (*dto.PostDeleteDTO, error) {
	board, err := s.boardRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, ErrPostNotFound
	}
	if board.UserID != userID {
		return nil, UnauthorizedError
	}

	err = s.txRunner.RunInTx(ctx, func(tx *gorm.DB) error {
		if err := s.commentRepo.WithTx(tx).DeleteByPostID(ctx, postID); err != nil {
			return err
		}
		if err := s.likeRepo.WithTx(tx).DeleteByPostID(ctx, postID); err != nil {
			return err
		}
		if err := s.statsRepo.WithTx(tx).DeleteByPostID(ctx, postID); err != nil {
			return err
		}
		return s.boardRepo.WithTx(tx).Delete(ctx, postID)
	})
	if err != nil {
		return nil, err
	}

	return &dto.PostDeleteDTO{PostID: postID, UserID: userID}, nil
}

// GetList 分页列表，计数批量读出后按 post_id 回填
func (s *boardServiceImpl) GetList(ctx context.Context, page, pageSize int) (*dto.BoardListDTO, error) {
	boards, total, err := s.boardRepo.GetPage(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	postIDs := make([]uint64, 0, len(boards))
	for _, b := range boards {
		postIDs = append(postIDs, b.ID)
	}

	statsMap := make(map[uint64]*model.BoardStats, len(postIDs))
	if len(postIDs) > 0 {
		statsList, err := s.statsRepo.GetByPostIDs(ctx, postIDs)
		if err != nil {
			return nil, err
		}
		for _, stats := range statsList {
			statsMap[stats.PostID] = stats
		}
	}

	list := make([]*dto.BoardListItemDTO, 0, len(boards))
	for _, b := range boards {
		item := &dto.BoardListItemDTO{
			PostID:    b.ID,
			Title:     b.Title,
			Author:    b.Author.Nickname,
			CreatedAt: b.CreatedAt.Format(timeLayout),
		}
		if stats, ok := statsMap[b.ID]; ok {
			item.ViewCount = stats.ViewCount
			item.LikeCount = stats.LikeCount
			item.CommentCount = stats.CommentCount
		}
		list = append(list, item)
	}

	return &dto.BoardListDTO{List: list, Total: total, Page: page}, nil
}

// GetDetail 详情组装，是否计浏览由调用方决定
// 先计浏览再取快照，当次浏览会反映在返回的计数里
func (s *boardServiceImpl) GetDetail(ctx context.Context, postID, viewerID uint64, countView bool) (*dto.PostDTO, error) {
	board, err := s.boardRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, ErrPostNotFound
	}

	if countView {
		// 浏览计数失败不影响详情返回
		if err = s.engagementSvc.RecordView(ctx, postID); err != nil {
			log.WarnContext(ctx, "record view failed", "postID", postID, "err", err)
		}
	}

	snapshot, err := s.engagementSvc.Snapshot(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.GetByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	commentDTOs := make([]*dto.CommentDTO, 0, len(comments))
	for _, comment := range comments {
		commentDTOs = append(commentDTOs, convertToCommentDTO(comment))
	}

	stats := &model.BoardStats{
		PostID:       postID,
		ViewCount:    snapshot.ViewCount,
		LikeCount:    snapshot.LikeCount,
		CommentCount: snapshot.CommentCount,
	}
	return s.convertToPostDTO(board, stats, snapshot.LikedByViewer, commentDTOs), nil
}

func (s *boardServiceImpl) convertToPostDTO(board *model.Board, stats *model.BoardStats, liked bool, comments []*dto.CommentDTO) *dto.PostDTO {
	item := &dto.PostDTO{}
	_ = copier.Copy(item, board)

	item.PostID = board.ID
	item.Author = board.Author.Nickname
	item.ViewCount = stats.ViewCount
	item.LikeCount = stats.LikeCount
	item.CommentCount = stats.CommentCount
	item.Liked = liked
	item.Comments = comments
	item.CreatedAt = board.CreatedAt.Format(timeLayout)
	item.UpdatedAt = board.UpdatedAt.Format(timeLayout)
	return item
}
