package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanbaselab/fanbase/internal/repository"
	"github.com/fanbaselab/fanbase/pkg/apperror"
	"github.com/fanbaselab/fanbase/pkg/localstore"
)

func newFeedFixture(t *testing.T) (FeedService, repository.UserRepository) {
	t.Helper()
	store := localstore.NewMemoryStore()
	users := repository.NewUserRepository(store)
	posts := repository.NewPostRepository(store)
	// nil redis client disables rate limiting, nil meilisearch disables search.
	return NewFeedService(posts, users, NewSearchService(nil), nil, 10*time.Second), users
}

func TestCreatePostRunsActivityPipeline(t *testing.T) {
	svc, users := newFeedFixture(t)
	seedUser(t, users, "u1", "kim")
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, "u1", CreatePostInput{Content: "오늘 직관 간다"})
	require.NoError(t, err)
	assert.Equal(t, "kim", post.Author)
	assert.Equal(t, "오늘 직관 간다", post.Content)

	author, err := users.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, author.FeedCount)
	assert.Equal(t, 20, author.XP)
}

func TestCreatePostSanitizesContent(t *testing.T) {
	svc, users := newFeedFixture(t)
	seedUser(t, users, "u1", "kim")

	post, err := svc.CreatePost(context.Background(), "u1", CreatePostInput{
		Content: `<script>alert(1)</script><b>잠실</b> 직관`,
	})
	require.NoError(t, err)
	assert.NotContains(t, post.Content, "<script>")
	assert.Contains(t, post.Content, "<b>잠실</b>", "formatting markup survives")
}

func TestCreatePostNewestFirst(t *testing.T) {
	svc, users := newFeedFixture(t)
	seedUser(t, users, "u1", "kim")
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, "u1", CreatePostInput{Content: "first"})
	require.NoError(t, err)
	second, err := svc.CreatePost(ctx, "u1", CreatePostInput{Content: "second"})
	require.NoError(t, err)

	posts, err := svc.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID)
}

func TestDeletePost(t *testing.T) {
	svc, users := newFeedFixture(t)
	seedUser(t, users, "u1", "kim")
	seedUser(t, users, "u2", "park")
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, "u1", CreatePostInput{Content: "지울 글"})
	require.NoError(t, err)

	err = svc.DeletePost(ctx, "u2", post.ID)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	require.NoError(t, svc.DeletePost(ctx, "u1", post.ID))
	_, err = svc.GetPost(ctx, post.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	author, err := users.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, author.FeedCount, "counter walks back")
	assert.Equal(t, 20, author.XP, "xp never rolls back")
}

func TestDeletePostFloorsCounterAtZero(t *testing.T) {
	svc, users := newFeedFixture(t)
	seedUser(t, users, "u1", "kim")
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, "u1", CreatePostInput{Content: "x"})
	require.NoError(t, err)

	// An older record may undercount; deletion must not go negative.
	author, err := users.FindByID(ctx, "u1")
	require.NoError(t, err)
	author.FeedCount = 0
	require.NoError(t, users.Update(ctx, author))

	require.NoError(t, svc.DeletePost(ctx, "u1", post.ID))
	author, err = users.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, author.FeedCount)
}

func TestToggleLike(t *testing.T) {
	svc, users := newFeedFixture(t)
	seedUser(t, users, "u1", "kim")
	seedUser(t, users, "u2", "park")
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, "u1", CreatePostInput{Content: "홈런!"})
	require.NoError(t, err)

	liked, err := svc.ToggleLike(ctx, "u2", post.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"u2"}, liked.Likes)

	unliked, err := svc.ToggleLike(ctx, "u2", post.ID)
	require.NoError(t, err)
	assert.Empty(t, unliked.Likes)

	liker, err := users.FindByID(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, 0, liker.XP, "likes award no xp")
}
