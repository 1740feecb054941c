package service

import (
	"github.com/fanbaselab/fanbase/internal/gamification"
	"github.com/fanbaselab/fanbase/internal/model"
)

// applyActivity runs the mandatory pipeline for a counter-changing action:
// XP award first, then badge eligibility, then the equip layout. The caller
// increments the relevant counter before calling and persists afterwards.
func applyActivity(u *model.User, ev gamification.EventType) {
	gamification.ApplyXP(u, ev)
	refreshBadges(u)
}

// refreshBadges recomputes the earned set and, only when it actually grew,
// rederives the equipped layout. Leaving the layout alone on no-change runs
// keeps manual reorderings intact until the next real badge award.
func refreshBadges(u *model.User) bool {
	earned := gamification.ComputeEarnedBadges(u)
	if len(earned) == len(u.Badges) {
		return false
	}
	u.Badges = earned
	u.EquippedBadges = gamification.DeriveTop5(earned)
	return true
}
