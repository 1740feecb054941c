package service

import (
	"context"
	"sort"

	"github.com/fanbaselab/fanbase/internal/repository"
)

type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	TeamID   string `json:"teamId"`
	Level    int    `json:"level"`
	XP       int    `json:"xp"`
	Badges   int    `json:"badges"`
}

type SiteTotals struct {
	Users int `json:"users"`
	Posts int `json:"posts"`
	Polls int `json:"polls"`
}

type StatService interface {
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)
	Totals(ctx context.Context) (*SiteTotals, error)
}

type statService struct {
	users repository.UserRepository
	posts repository.PostRepository
	polls repository.PollRepository
}

func NewStatService(users repository.UserRepository, posts repository.PostRepository, polls repository.PollRepository) StatService {
	return &statService{users: users, posts: posts, polls: polls}
}

// Leaderboard ranks users by XP, username as the tie-break so the order is
// stable across refreshes.
func (s *statService) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	users, err := s.users.All(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(users, func(i, j int) bool {
		if users[i].XP != users[j].XP {
			return users[i].XP > users[j].XP
		}
		return users[i].Username < users[j].Username
	})

	if len(users) > limit {
		users = users[:limit]
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, LeaderboardEntry{
			Rank:     i + 1,
			UserID:   u.ID,
			Username: u.Username,
			TeamID:   u.TeamID,
			Level:    u.Level,
			XP:       u.XP,
			Badges:   len(u.Badges),
		})
	}
	return entries, nil
}

func (s *statService) Totals(ctx context.Context) (*SiteTotals, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	posts, err := s.posts.All(ctx)
	if err != nil {
		return nil, err
	}
	polls, err := s.polls.All(ctx)
	if err != nil {
		return nil, err
	}
	return &SiteTotals{Users: users, Posts: len(posts), Polls: len(polls)}, nil
}
