package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanbaselab/fanbase/internal/model"
	"github.com/fanbaselab/fanbase/internal/repository"
	"github.com/fanbaselab/fanbase/pkg/localstore"
)

func TestLeaderboard(t *testing.T) {
	store := localstore.NewMemoryStore()
	users := repository.NewUserRepository(store)
	svc := NewStatService(users, repository.NewPostRepository(store), repository.NewPollRepository(store))
	ctx := context.Background()

	for _, u := range []struct {
		id, name string
		xp       int
	}{
		{"u1", "kim", 150},
		{"u2", "park", 300},
		{"u3", "lee", 150},
		{"u4", "choi", 0},
	} {
		require.NoError(t, users.Create(ctx, &model.User{
			ID: u.id, Username: u.name, TeamID: "doosan", XP: u.xp,
			Level: 1, JoinedAt: time.Now().UTC(),
		}))
	}

	entries, err := svc.Leaderboard(ctx, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "park", entries[0].Username)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 4, entries[0].Level, "level derived from xp on read")
	// Equal XP breaks ties alphabetically.
	assert.Equal(t, "kim", entries[1].Username)
	assert.Equal(t, "lee", entries[2].Username)
}

func TestLeaderboardLimitFallback(t *testing.T) {
	store := localstore.NewMemoryStore()
	users := repository.NewUserRepository(store)
	svc := NewStatService(users, repository.NewPostRepository(store), repository.NewPollRepository(store))

	entries, err := svc.Leaderboard(context.Background(), -5)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTotals(t *testing.T) {
	store := localstore.NewMemoryStore()
	users := repository.NewUserRepository(store)
	posts := repository.NewPostRepository(store)
	polls := repository.NewPollRepository(store)
	svc := NewStatService(users, posts, polls)
	ctx := context.Background()

	seedUser(t, users, "u1", "kim")
	require.NoError(t, posts.Insert(ctx, model.Post{ID: "p1", AuthorID: "u1", Timestamp: time.Now().UTC()}))

	totals, err := svc.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, &SiteTotals{Users: 1, Posts: 1, Polls: 0}, totals)
}
