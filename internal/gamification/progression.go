// Package gamification holds the pure rules of the progression system: XP
// awards, level derivation, badge eligibility, the 5-slot equip layout and
// the normalizer that repairs persisted user records. Nothing in this
// package performs I/O; services run the rules and persist the result.
package gamification

import (
	"github.com/fanbaselab/fanbase/internal/model"
)

// EventType names a counter-changing user action that awards XP.
type EventType string

const (
	EventLogin          EventType = "login"
	EventPostCreated    EventType = "postCreated"
	EventCommentCreated EventType = "commentCreated"
	EventPollVoted      EventType = "pollVoted"
)

// XPPerLevel is the fixed width of every level band.
const XPPerLevel = 100

// The canonical XP table. The browser client shipped several conflicting
// tables over its history; this one is the single rule set the server
// enforces. Unknown events award nothing rather than failing, since
// producers are trusted internal callers.
var xpTable = map[EventType]int{
	EventLogin:          10,
	EventPostCreated:    20,
	EventCommentCreated: 10,
	EventPollVoted:      15,
}

// XPForEvent returns the XP award for an event, zero for unknown events.
func XPForEvent(ev EventType) int {
	return xpTable[ev]
}

// LevelForXP derives the level for a given XP total. Level 1 starts at 0 XP
// and there is no upper bound.
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// ProgressWithinLevel returns how far into the current level band the XP
// total sits, in [0, XPPerLevel).
func ProgressWithinLevel(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp % XPPerLevel
}

// ApplyXP awards the event's XP and rederives the level in the same step, so
// the two fields never drift apart. It performs no event deduplication:
// calling it twice awards twice. First-vote-only semantics are the caller's
// responsibility.
func ApplyXP(u *model.User, ev EventType) {
	u.XP += XPForEvent(ev)
	u.Level = LevelForXP(u.XP)
}
