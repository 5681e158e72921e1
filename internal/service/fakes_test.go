package service

import (
	"Agora/internal/model"
	"Agora/internal/repository"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// 内存版 repo 实现，语义对齐真实存储：
// 计数增减原子执行且减到 0 为止，点赞行唯一键冲突返回 MySQL 1062

type memTxRunner struct {
	mu sync.Mutex
}

func (r *memTxRunner) RunInTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(nil)
}

type memStatsRepo struct {
	mu   sync.Mutex
	rows map[uint64]*model.BoardStats
}

func newMemStatsRepo() *memStatsRepo {
	return &memStatsRepo{rows: make(map[uint64]*model.BoardStats)}
}

func (s *memStatsRepo) WithTx(_ *gorm.DB) repository.BoardStatsRepo { return s }

func (s *memStatsRepo) EnsureExists(_ context.Context, postID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[postID]; !ok {
		s.rows[postID] = &model.BoardStats{PostID: postID}
	}
	return nil
}

func (s *memStatsRepo) IncrementView(_ context.Context, postID uint64) error {
	return s.apply(postID, func(r *model.BoardStats) { r.ViewCount++ })
}

func (s *memStatsRepo) IncrementLike(_ context.Context, postID uint64) error {
	return s.apply(postID, func(r *model.BoardStats) { r.LikeCount++ })
}

func (s *memStatsRepo) DecrementLike(_ context.Context, postID uint64) error {
	return s.apply(postID, func(r *model.BoardStats) {
		if r.LikeCount > 0 {
			r.LikeCount--
		}
	})
}

func (s *memStatsRepo) IncrementComment(_ context.Context, postID uint64) error {
	return s.apply(postID, func(r *model.BoardStats) { r.CommentCount++ })
}

func (s *memStatsRepo) DecrementComment(_ context.Context, postID uint64) error {
	return s.apply(postID, func(r *model.BoardStats) {
		if r.CommentCount > 0 {
			r.CommentCount--
		}
	})
}

// apply 行不存在时 no-op，和 0 行受影响的 UPDATE 一致
func (s *memStatsRepo) apply(postID uint64, mutate func(*model.BoardStats)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row, ok := s.rows[postID]; ok {
		mutate(row)
	}
	return nil
}

func (s *memStatsRepo) Get(_ context.Context, postID uint64) (*model.BoardStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row, ok := s.rows[postID]; ok {
		copied := *row
		return &copied, nil
	}
	return &model.BoardStats{PostID: postID}, nil
}

func (s *memStatsRepo) GetByPostIDs(_ context.Context, postIDs []uint64) ([]*model.BoardStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]*model.BoardStats, 0, len(postIDs))
	for _, id := range postIDs {
		if row, ok := s.rows[id]; ok {
			copied := *row
			res = append(res, &copied)
		}
	}
	return res, nil
}

func (s *memStatsRepo) GetTopLiked(_ context.Context, limit int) ([]*model.BoardStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]*model.BoardStats, 0, len(s.rows))
	for _, row := range s.rows {
		copied := *row
		res = append(res, &copied)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].LikeCount > res[j].LikeCount })
	if len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

func (s *memStatsRepo) DeleteByPostID(_ context.Context, postID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, postID)
	return nil
}

type likeKey struct {
	userID uint64
	postID uint64
}

type memLikeRepo struct {
	mu   sync.Mutex
	rows map[likeKey]*model.BoardLike
}

func newMemLikeRepo() *memLikeRepo {
	return &memLikeRepo{rows: make(map[likeKey]*model.BoardLike)}
}

func (s *memLikeRepo) WithTx(_ *gorm.DB) repository.BoardLikeRepo { return s }

func (s *memLikeRepo) Find(_ context.Context, userID, postID uint64) (*model.BoardLike, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row, ok := s.rows[likeKey{userID, postID}]; ok {
		copied := *row
		return &copied, nil
	}
	return nil, nil
}

func (s *memLikeRepo) FindForUpdate(ctx context.Context, userID, postID uint64) (*model.BoardLike, error) {
	return s.Find(ctx, userID, postID)
}

func (s *memLikeRepo) Create(_ context.Context, like *model.BoardLike) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := likeKey{like.UserID, like.PostID}
	if _, ok := s.rows[key]; ok {
		return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	}
	copied := *like
	s.rows[key] = &copied
	return nil
}

func (s *memLikeRepo) UpdateDeleted(_ context.Context, userID, postID uint64, deleted bool) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[likeKey{userID, postID}]
	if !ok || row.Deleted == deleted {
		return 0, nil
	}
	row.Deleted = deleted
	row.UpdatedAt = time.Now()
	return 1, nil
}

func (s *memLikeRepo) IsActive(_ context.Context, userID, postID uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[likeKey{userID, postID}]
	return ok && !row.Deleted, nil
}

func (s *memLikeRepo) CountActiveByPostID(_ context.Context, postID uint64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for key, row := range s.rows {
		if key.postID == postID && !row.Deleted {
			count++
		}
	}
	return count, nil
}

func (s *memLikeRepo) DeleteByPostID(_ context.Context, postID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.rows {
		if key.postID == postID {
			delete(s.rows, key)
		}
	}
	return nil
}

type memBoardRepo struct {
	mu     sync.Mutex
	nextID uint64
	rows   map[uint64]*model.Board
}

func newMemBoardRepo() *memBoardRepo {
	return &memBoardRepo{rows: make(map[uint64]*model.Board)}
}

func (s *memBoardRepo) WithTx(_ *gorm.DB) repository.BoardRepo { return s }

func (s *memBoardRepo) Create(_ context.Context, board *model.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	board.ID = s.nextID
	board.CreatedAt = time.Now()
	board.UpdatedAt = board.CreatedAt
	copied := *board
	s.rows[board.ID] = &copied
	return nil
}

func (s *memBoardRepo) GetByID(_ context.Context, postID uint64) (*model.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row, ok := s.rows[postID]; ok {
		copied := *row
		return &copied, nil
	}
	return nil, nil
}

func (s *memBoardRepo) GetPage(_ context.Context, limit, offset int) ([]*model.Board, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]*model.Board, 0, len(s.rows))
	for _, row := range s.rows {
		copied := *row
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (s *memBoardRepo) Update(_ context.Context, board *model.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row, ok := s.rows[board.ID]; ok {
		row.Title = board.Title
		row.Contents = board.Contents
		row.UpdatedAt = time.Now()
	}
	return nil
}

func (s *memBoardRepo) Delete(_ context.Context, postID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, postID)
	return nil
}

func (s *memBoardRepo) Exists(_ context.Context, postID uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.rows[postID]
	return ok, nil
}

type memCommentRepo struct {
	mu     sync.Mutex
	nextID uint64
	rows   map[uint64]*model.Comment
}

func newMemCommentRepo() *memCommentRepo {
	return &memCommentRepo{rows: make(map[uint64]*model.Comment)}
}

func (s *memCommentRepo) WithTx(_ *gorm.DB) repository.CommentRepo { return s }

func (s *memCommentRepo) Create(_ context.Context, comment *model.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	comment.ID = s.nextID
	comment.CreatedAt = time.Now()
	copied := *comment
	s.rows[comment.ID] = &copied
	return nil
}

func (s *memCommentRepo) GetByID(_ context.Context, commentID uint64) (*model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row, ok := s.rows[commentID]; ok {
		copied := *row
		return &copied, nil
	}
	return nil, nil
}

func (s *memCommentRepo) GetByPostID(_ context.Context, postID uint64) ([]*model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]*model.Comment, 0)
	for _, row := range s.rows {
		if row.PostID == postID {
			copied := *row
			res = append(res, &copied)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (s *memCommentRepo) Update(_ context.Context, comment *model.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row, ok := s.rows[comment.ID]; ok {
		row.Contents = comment.Contents
	}
	return nil
}

func (s *memCommentRepo) Delete(_ context.Context, commentID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, commentID)
	return nil
}

func (s *memCommentRepo) DeleteByPostID(_ context.Context, postID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, row := range s.rows {
		if row.PostID == postID {
			delete(s.rows, id)
		}
	}
	return nil
}

type memUserRepo struct {
	mu     sync.Mutex
	nextID uint64
	rows   map[uint64]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{rows: make(map[uint64]*model.User)}
}

func (s *memUserRepo) GetUserById(_ context.Context, id uint64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row, ok := s.rows[id]; ok {
		copied := *row
		return &copied, nil
	}
	return nil, nil
}

func (s *memUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows {
		if row.Email == email {
			copied := *row
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *memUserRepo) GetUserByNickname(_ context.Context, nickname string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows {
		if row.Nickname == nickname {
			copied := *row
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *memUserRepo) CreateUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	user.ID = s.nextID
	copied := *user
	s.rows[user.ID] = &copied
	return nil
}

func (s *memUserRepo) ExistsById(_ context.Context, id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.rows[id]
	return ok, nil
}
