package gamification

import (
	"reflect"
	"testing"

	"github.com/fanbaselab/fanbase/internal/model"
)

func TestComputeEarnedBadgesTiers(t *testing.T) {
	cases := []struct {
		name string
		user model.User
		want []string
	}{
		{
			name: "fresh user earns nothing",
			user: model.User{Level: 1},
			want: []string{"level_1"},
		},
		{
			name: "twelve comments reach tier two only",
			user: model.User{Level: 1, CommentCount: 12},
			want: []string{"level_1", "comment_1", "comment_2"},
		},
		{
			name: "nine votes reach tier three",
			user: model.User{Level: 1, VoteCount: 9},
			want: []string{"level_1", "vote_1", "vote_2", "vote_3"},
		},
		{
			name: "single login day below tier one",
			user: model.User{Level: 1, LoginDays: 1},
			want: []string{"level_1"},
		},
		{
			name: "two login days reach tier one",
			user: model.User{Level: 1, LoginDays: 2},
			want: []string{"level_1", "login_1"},
		},
		{
			name: "three feed posts reach tier one",
			user: model.User{Level: 1, FeedCount: 3},
			want: []string{"level_1", "feed_1"},
		},
		{
			name: "level badges cap at tier five",
			user: model.User{Level: 9},
			want: []string{"level_1", "level_2", "level_3", "level_4", "level_5"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeEarnedBadges(&tc.user)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestComputeEarnedBadgesAdditive(t *testing.T) {
	// Badges already owned survive even when the counter falls back
	// under the threshold.
	u := &model.User{
		Level:        1,
		CommentCount: 2,
		Badges:       []string{"comment_1", "comment_2"},
	}

	got := ComputeEarnedBadges(u)

	for _, id := range []string{"comment_1", "comment_2"} {
		if !contains(got, id) {
			t.Errorf("owned badge %s was dropped: %v", id, got)
		}
	}
}

func TestComputeEarnedBadgesNeverGrantsJoin(t *testing.T) {
	u := &model.User{Level: 5, CommentCount: 50, VoteCount: 50, FeedCount: 50, LoginDays: 50}

	got := ComputeEarnedBadges(u)

	if contains(got, "join_1") {
		t.Errorf("join_1 must only be granted at signup, got %v", got)
	}
}

func TestComputeEarnedBadgesKeepsJoinWhenOwned(t *testing.T) {
	u := &model.User{Level: 1, Badges: []string{"join_1", "level_1"}}

	got := ComputeEarnedBadges(u)

	if !contains(got, "join_1") {
		t.Errorf("owned join_1 was dropped: %v", got)
	}
}

func TestComputeEarnedBadgesDedupsInput(t *testing.T) {
	u := &model.User{Level: 1, Badges: []string{"level_1", "level_1", "level_1"}}

	got := ComputeEarnedBadges(u)

	seen := map[string]int{}
	for _, id := range got {
		seen[id]++
	}
	if seen["level_1"] != 1 {
		t.Errorf("level_1 appears %d times: %v", seen["level_1"], got)
	}
}

func TestComputeEarnedBadgesMonotonic(t *testing.T) {
	u := &model.User{Level: 1}
	prev := ComputeEarnedBadges(u)
	for comments := 1; comments <= 30; comments++ {
		u.CommentCount = comments
		u.Badges = prev
		next := ComputeEarnedBadges(u)
		if len(next) < len(prev) {
			t.Fatalf("earned set shrank at commentCount=%d: %v -> %v", comments, prev, next)
		}
		for _, id := range prev {
			if !contains(next, id) {
				t.Fatalf("badge %s lost at commentCount=%d", id, comments)
			}
		}
		prev = next
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
