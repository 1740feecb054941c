package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanbaselab/fanbase/internal/model"
	"github.com/fanbaselab/fanbase/pkg/apperror"
	"github.com/fanbaselab/fanbase/pkg/localstore"
)

func newUser(id, username string) *model.User {
	return &model.User{
		ID:       id,
		Username: username,
		TeamID:   "doosan",
		Level:    1,
		Badges:   []string{},
		JoinedAt: time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC),
	}
}

func TestUserRepositoryEmptyStore(t *testing.T) {
	repo := NewUserRepository(localstore.NewMemoryStore())
	ctx := context.Background()

	users, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = repo.FindByID(ctx, "nope")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUserRepositoryCreateAndFind(t *testing.T) {
	repo := NewUserRepository(localstore.NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("u1", "kim")))
	require.NoError(t, repo.Create(ctx, newUser("u2", "park")))

	got, err := repo.FindByID(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, "park", got.Username)

	// Username lookup is case insensitive.
	got, err = repo.FindByUsername(ctx, "KIM")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestUserRepositoryCreateDuplicateUsername(t *testing.T) {
	repo := NewUserRepository(localstore.NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("u1", "kim")))

	err := repo.Create(ctx, newUser("u2", "Kim"))
	assert.ErrorIs(t, err, apperror.ErrUsernameTaken)

	n, _ := repo.Count(ctx)
	assert.Equal(t, 1, n)
}

func TestUserRepositoryUpdate(t *testing.T) {
	repo := NewUserRepository(localstore.NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("u1", "kim")))

	u, err := repo.FindByID(ctx, "u1")
	require.NoError(t, err)
	u.XP = 120
	u.Bio = "doosan fan"
	require.NoError(t, repo.Update(ctx, u))

	got, err := repo.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 120, got.XP)
	assert.Equal(t, 2, got.Level, "level rederived on read")
	assert.Equal(t, "doosan fan", got.Bio)

	err = repo.Update(ctx, newUser("ghost", "lee"))
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUserRepositoryNormalizesOnRead(t *testing.T) {
	store := localstore.NewMemoryStore()
	ctx := context.Background()

	// A blob written by an old client: string-encoded badges, a duplicate,
	// an unknown ID, a stale level, and one record that is not an object.
	blob := `[
		{"id":"u1","username":"kim","xp":210,"level":1,
		 "badges":"[\"join_1\",\"level_1\",\"level_1\",\"ghost_9\"]"},
		"corrupted entry",
		{"username":"park","commentCount":-4}
	]`
	require.NoError(t, store.Set(ctx, "users", []byte(blob)))

	repo := NewUserRepository(store)
	users, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2, "unreadable record skipped, repairable ones kept")

	kim := users[0]
	assert.Equal(t, []string{"join_1", "level_1"}, kim.Badges)
	assert.Equal(t, 3, kim.Level)
	require.NotNil(t, kim.EquippedBadges.Main)
	assert.Equal(t, "join_1", *kim.EquippedBadges.Main)

	park := users[1]
	assert.NotEmpty(t, park.ID, "missing id generated")
	assert.Equal(t, 0, park.CommentCount, "negative counter clamped")
}
