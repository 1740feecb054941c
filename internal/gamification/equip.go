package gamification

import (
	"github.com/fanbaselab/fanbase/internal/model"
)

// The four secondary slots always show these categories in this order.
var slotCategories = [model.EquipSlotCount]model.BadgeCategory{
	model.BadgeLevel,
	model.BadgeFeed,
	model.BadgeVote,
	model.BadgeComment,
}

// highestOwned returns the highest-tier badge ID the user owns in a
// category, or "" when none is owned.
func highestOwned(category model.BadgeCategory, owned map[string]bool) string {
	best := ""
	bestTier := 0
	for _, b := range model.BadgesByCategory[category] {
		if owned[b.ID] && b.Tier > bestTier {
			best = b.ID
			bestTier = b.Tier
		}
	}
	return best
}

// DeriveTop5 builds the automatic 5-slot display layout from an earned badge
// set.
//
// Main slot: join_1 when owned. Users without it predate the signup grant;
// they get their highest owned login badge, or login_1 as a display
// placeholder when they own none.
//
// Secondary slots: level, feed, vote, comment in that fixed order, each
// holding the highest owned tier of its category and falling back to the
// category's tier-1 ID as a placeholder. Callers that
// need to distinguish earned badges from placeholders must cross-check the
// layout against the earned set.
func DeriveTop5(badges []string) model.EquippedBadges {
	owned := make(map[string]bool, len(badges))
	for _, id := range badges {
		owned[id] = true
	}

	joinID := model.BadgeID(model.BadgeJoin, 1)
	main := joinID
	if !owned[joinID] {
		main = highestOwned(model.BadgeLogin, owned)
		if main == "" {
			main = model.BadgeID(model.BadgeLogin, 1)
		}
	}

	var eq model.EquippedBadges
	eq.Main = &main
	for i, category := range slotCategories {
		id := highestOwned(category, owned)
		if id == "" {
			id = model.BadgeID(category, 1)
		}
		eq.Slots[i] = &id
	}
	return eq
}

// ApplyManualLayout turns a user-supplied ordering into an equipped layout.
// The first position becomes the main badge, the rest fill the four slots in
// order. Ownership is not re-checked; the UI only offers owned badges and
// placeholders as draggable. Oversized input is truncated and short input is
// padded with empty positions, so the result always holds exactly 5 entries.
func ApplyManualLayout(positions []*string) model.EquippedBadges {
	var eq model.EquippedBadges
	if len(positions) > 0 {
		eq.Main = positions[0]
	}
	for i := 0; i < model.EquipSlotCount; i++ {
		if i+1 < len(positions) {
			eq.Slots[i] = positions[i+1]
		}
	}
	return eq
}
