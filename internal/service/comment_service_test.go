package service

import (
	"Agora/internal/api/dto"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commentFixture struct {
	*engagementFixture
	comments *memCommentRepo
	svc      CommentService
}

func newCommentFixture() *commentFixture {
	base := newEngagementFixture()
	f := &commentFixture{
		engagementFixture: base,
		comments:          newMemCommentRepo(),
	}
	f.svc = NewCommentService(&memTxRunner{}, f.comments, f.boards, f.users, base.svc)
	return f
}

func TestCommentCreateIncrementsCount(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()
	userID := f.seedUser(t, "alice")
	postID := f.seedBoard(t, userID)

	res, err := f.svc.Create(ctx, userID, postID, &dto.CommentCreateReq{Contents: "첫 댓글"})
	require.NoError(t, err)
	assert.Equal(t, postID, res.PostID)
	assert.Equal(t, "alice", res.Author)
	assert.Equal(t, "첫 댓글", res.Contents)

	stats, err := f.stats.Get(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.CommentCount)
}

func TestCommentDeleteDecrementsCount(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()
	userID := f.seedUser(t, "alice")
	postID := f.seedBoard(t, userID)

	created, err := f.svc.Create(ctx, userID, postID, &dto.CommentCreateReq{Contents: "삭제될 댓글"})
	require.NoError(t, err)

	res, err := f.svc.Delete(ctx, userID, postID, created.CommentID)
	require.NoError(t, err)
	assert.Equal(t, created.CommentID, res.CommentID)

	stats, err := f.stats.Get(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.CommentCount)

	remaining, err := f.svc.GetByPost(ctx, postID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestCommentDeleteNotOwner(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()
	aliceID := f.seedUser(t, "alice")
	bobID := f.seedUser(t, "bob")
	postID := f.seedBoard(t, aliceID)

	created, err := f.svc.Create(ctx, aliceID, postID, &dto.CommentCreateReq{Contents: "내 댓글"})
	require.NoError(t, err)

	_, err = f.svc.Delete(ctx, bobID, postID, created.CommentID)
	assert.ErrorIs(t, err, UnauthorizedError)

	// 计数不受失败请求影响
	stats, err := f.stats.Get(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.CommentCount)
}

func TestCommentPostMismatch(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()
	userID := f.seedUser(t, "alice")
	postID := f.seedBoard(t, userID)
	otherPostID := f.seedBoard(t, userID)

	created, err := f.svc.Create(ctx, userID, postID, &dto.CommentCreateReq{Contents: "댓글"})
	require.NoError(t, err)

	_, err = f.svc.Delete(ctx, userID, otherPostID, created.CommentID)
	assert.ErrorIs(t, err, ErrCommentMismatch)
}

func TestCommentUpdate(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()
	userID := f.seedUser(t, "alice")
	postID := f.seedBoard(t, userID)

	created, err := f.svc.Create(ctx, userID, postID, &dto.CommentCreateReq{Contents: "수정 전"})
	require.NoError(t, err)

	res, err := f.svc.Update(ctx, userID, postID, created.CommentID, &dto.CommentUpdateReq{Contents: "수정 후"})
	require.NoError(t, err)
	assert.Equal(t, "수정 후", res.Contents)

	// 改内容不动计数
	stats, err := f.stats.Get(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.CommentCount)
}

func TestCommentCreateUnknownPost(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()
	userID := f.seedUser(t, "alice")

	_, err := f.svc.Create(ctx, userID, 999, &dto.CommentCreateReq{Contents: "댓글"})
	assert.ErrorIs(t, err, ErrPostNotFound)
}
