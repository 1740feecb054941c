package gamification

import (
	"github.com/fanbaselab/fanbase/internal/model"
)

// Per-category counter thresholds: earning tier t requires t*threshold of
// the underlying counter.
const (
	commentsPerTier  = 5
	votesPerTier     = 3
	feedPostsPerTier = 3
	loginDaysPerTier = 2
)

// tierFor maps a counter to the highest qualified tier, capped at 5.
func tierFor(count, perTier int) int {
	if count < 0 {
		return 0
	}
	t := count / perTier
	if t > model.MaxBadgeTier {
		t = model.MaxBadgeTier
	}
	return t
}

// ComputeEarnedBadges returns the user's full earned badge set: everything
// already owned plus every tier the current counters qualify for. The result
// is strictly additive: a badge is never dropped here, even when the
// counter that earned it has since decreased (deleting a comment does not
// revoke a comment badge).
//
// join_1 is deliberately never granted by this function. It is handed out
// exactly once at signup; legacy accounts that never received it stay
// without it, which is how the equip selector tells them apart.
//
// Owned badges keep their position; newly qualified ones are appended in
// catalog order, so repeated calls yield identical slices.
func ComputeEarnedBadges(u *model.User) []string {
	earned := make([]string, 0, len(u.Badges))
	seen := make(map[string]bool, len(u.Badges))
	for _, id := range u.Badges {
		if seen[id] {
			continue
		}
		seen[id] = true
		earned = append(earned, id)
	}

	qualified := map[model.BadgeCategory]int{
		model.BadgeLevel:   minTier(u.Level, model.MaxBadgeTier),
		model.BadgeComment: tierFor(u.CommentCount, commentsPerTier),
		model.BadgeVote:    tierFor(u.VoteCount, votesPerTier),
		model.BadgeFeed:    tierFor(u.FeedCount, feedPostsPerTier),
		model.BadgeLogin:   tierFor(u.LoginDays, loginDaysPerTier),
	}

	for _, b := range model.Badges {
		if b.Category == model.BadgeJoin {
			continue
		}
		if b.Tier <= qualified[b.Category] && !seen[b.ID] {
			seen[b.ID] = true
			earned = append(earned, b.ID)
		}
	}

	return earned
}

func minTier(a, b int) int {
	if a < 0 {
		return 0
	}
	if a < b {
		return a
	}
	return b
}
