package service

import (
	"Agora/internal/api/dto"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type boardFixture struct {
	*engagementFixture
	comments *memCommentRepo
	svc      BoardService
}

func newBoardFixture() *boardFixture {
	base := newEngagementFixture()
	f := &boardFixture{
		engagementFixture: base,
		comments:          newMemCommentRepo(),
	}
	f.svc = NewBoardService(&memTxRunner{}, f.boards, f.comments, f.likes, f.stats, f.users, base.svc)
	return f
}

func TestBoardCreatePreparesStatsRow(t *testing.T) {
	f := newBoardFixture()
	ctx := context.Background()
	userID := f.seedUser(t, "alice")

	res, err := f.svc.Create(ctx, userID, &dto.PostCreateReq{Title: "제목", Contents: "내용"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.ViewCount)
	assert.Equal(t, int64(0), res.LikeCount)
	assert.Equal(t, int64(0), res.CommentCount)

	// 计数行随发帖预建，首个互动不用再补
	f.stats.mu.Lock()
	_, ok := f.stats.rows[res.PostID]
	f.stats.mu.Unlock()
	assert.True(t, ok)
}

func TestBoardDeleteCascades(t *testing.T) {
	f := newBoardFixture()
	ctx := context.Background()
	aliceID := f.seedUser(t, "alice")
	bobID := f.seedUser(t, "bob")
	postID := f.seedBoard(t, aliceID)

	_, err := f.engagementFixture.svc.ToggleLike(ctx, bobID, postID)
	require.NoError(t, err)
	commentSvc := NewCommentService(&memTxRunner{}, f.comments, f.boards, f.users, f.engagementFixture.svc)
	_, err = commentSvc.Create(ctx, bobID, postID, &dto.CommentCreateReq{Contents: "댓글"})
	require.NoError(t, err)

	_, err = f.svc.Delete(ctx, aliceID, postID)
	require.NoError(t, err)

	exists, err := f.boards.Exists(ctx, postID)
	require.NoError(t, err)
	assert.False(t, exists)

	comments, err := f.comments.GetByPostID(ctx, postID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	ledgerCount, err := f.likes.CountActiveByPostID(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), ledgerCount)

	record, err := f.likes.Find(ctx, bobID, postID)
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestBoardDeleteNotOwner(t *testing.T) {
	f := newBoardFixture()
	ctx := context.Background()
	aliceID := f.seedUser(t, "alice")
	bobID := f.seedUser(t, "bob")
	postID := f.seedBoard(t, aliceID)

	_, err := f.svc.Delete(ctx, bobID, postID)
	assert.ErrorIs(t, err, UnauthorizedError)

	exists, err := f.boards.Exists(ctx, postID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestBoardUpdateNotOwner(t *testing.T) {
	f := newBoardFixture()
	ctx := context.Background()
	aliceID := f.seedUser(t, "alice")
	bobID := f.seedUser(t, "bob")
	postID := f.seedBoard(t, aliceID)

	_, err := f.svc.Update(ctx, bobID, postID, &dto.PostUpdateReq{Title: "바뀐 제목", Contents: "바뀐 내용"})
	assert.ErrorIs(t, err, UnauthorizedError)
}

func TestBoardGetListBackfillsStats(t *testing.T) {
	f := newBoardFixture()
	ctx := context.Background()
	userID := f.seedUser(t, "alice")
	firstID := f.seedBoard(t, userID)
	secondID := f.seedBoard(t, userID)

	_, err := f.engagementFixture.svc.ToggleLike(ctx, userID, secondID)
	require.NoError(t, err)
	require.NoError(t, f.engagementFixture.svc.RecordView(ctx, secondID))
	require.NoError(t, f.engagementFixture.svc.RecordView(ctx, secondID))

	res, err := f.svc.GetList(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, res.List, 2)
	assert.Equal(t, int64(2), res.Total)

	// 最新的帖子排在前面
	assert.Equal(t, secondID, res.List[0].PostID)
	assert.Equal(t, int64(2), res.List[0].ViewCount)
	assert.Equal(t, int64(1), res.List[0].LikeCount)

	// 没有计数行的帖子按全零展示
	assert.Equal(t, firstID, res.List[1].PostID)
	assert.Equal(t, int64(0), res.List[1].ViewCount)
	assert.Equal(t, int64(0), res.List[1].LikeCount)
}

func TestBoardGetDetailWithoutCountingView(t *testing.T) {
	f := newBoardFixture()
	ctx := context.Background()
	userID := f.seedUser(t, "alice")
	postID := f.seedBoard(t, userID)

	_, err := f.engagementFixture.svc.ToggleLike(ctx, userID, postID)
	require.NoError(t, err)

	res, err := f.svc.GetDetail(ctx, postID, userID, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.LikeCount)
	assert.True(t, res.Liked)
	assert.Equal(t, int64(0), res.ViewCount)

	// 不计浏览的读取是纯读，连续读不涨浏览数
	res, err = f.svc.GetDetail(ctx, postID, userID, false)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.ViewCount)
}

func TestBoardGetDetailIncludesCurrentView(t *testing.T) {
	f := newBoardFixture()
	ctx := context.Background()
	userID := f.seedUser(t, "alice")
	postID := f.seedBoard(t, userID)

	// 浏览先计入再取快照，返回值里带上当次浏览
	res, err := f.svc.GetDetail(ctx, postID, 0, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.ViewCount)

	res, err = f.svc.GetDetail(ctx, postID, 0, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.ViewCount)

	stats, err := f.stats.Get(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.ViewCount)
}

func TestBoardGetDetailUnknownPost(t *testing.T) {
	f := newBoardFixture()
	ctx := context.Background()

	_, err := f.svc.GetDetail(ctx, 999, 0, true)
	assert.ErrorIs(t, err, ErrPostNotFound)

	// 不存在的帖子不会因为这次访问多出计数行
	f.stats.mu.Lock()
	_, ok := f.stats.rows[999]
	f.stats.mu.Unlock()
	assert.False(t, ok)
}
