package model

import (
	"time"
)

// EquipSlotCount is the number of secondary display positions next to the
// main badge. The equipped layout is always exactly 1 + EquipSlotCount entries.
const EquipSlotCount = 4

// EquippedBadges is the bounded 5-slot display layout: one main badge and
// four secondary slots. A nil entry means the position is empty; a non-nil
// entry may be a tier-1 placeholder the user has not actually earned.
type EquippedBadges struct {
	Main  *string                 `json:"main"`
	Slots [EquipSlotCount]*string `json:"slots"`
}

// IsEmpty reports whether no position holds a badge ID.
func (e EquippedBadges) IsEmpty() bool {
	if e.Main != nil {
		return false
	}
	for _, s := range e.Slots {
		if s != nil {
			return false
		}
	}
	return true
}

// User is the canonical persisted user record. Every record loaded from the
// store passes through gamification.NormalizeUser before it is used, so code
// holding a *User may rely on the invariants: level derived from xp, badges
// deduplicated and catalog-valid, counters non-negative.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	// Password holds a bcrypt hash for records created by this server.
	// Legacy records imported from the browser client may still hold
	// plaintext; AuthService upgrades those on their next login.
	Password string `json:"password"`

	TeamID    string `json:"teamId"`
	AvatarURL string `json:"avatar,omitempty"`
	Bio       string `json:"bio,omitempty"`

	XP    int `json:"xp"`
	Level int `json:"level"`

	FeedCount    int `json:"feedCount"`
	CommentCount int `json:"commentCount"`
	VoteCount    int `json:"voteCount"`
	LoginCount   int `json:"loginCount"`
	LoginDays    int `json:"loginDays"`

	// LastLoginDay is the local calendar day (YYYY-MM-DD) of the most recent
	// login. LoginDays only advances when a login lands on a new day.
	LastLoginDay string `json:"lastLoginDay,omitempty"`

	Badges         []string       `json:"badges"`
	EquippedBadges EquippedBadges `json:"equippedBadges"`

	JoinedAt time.Time `json:"joinedAt"`
}

// HasBadge reports whether the user owns the given badge ID.
func (u *User) HasBadge(id string) bool {
	for _, b := range u.Badges {
		if b == id {
			return true
		}
	}
	return false
}

// PublicUser is the user shape returned to clients, without credentials.
type PublicUser struct {
	ID             string         `json:"id"`
	Username       string         `json:"username"`
	TeamID         string         `json:"teamId"`
	AvatarURL      string         `json:"avatar,omitempty"`
	Bio            string         `json:"bio,omitempty"`
	XP             int            `json:"xp"`
	Level          int            `json:"level"`
	FeedCount      int            `json:"feedCount"`
	CommentCount   int            `json:"commentCount"`
	VoteCount      int            `json:"voteCount"`
	LoginCount     int            `json:"loginCount"`
	LoginDays      int            `json:"loginDays"`
	Badges         []string       `json:"badges"`
	EquippedBadges EquippedBadges `json:"equippedBadges"`
	JoinedAt       time.Time      `json:"joinedAt"`
}

// Public strips credentials from a user record for API responses.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:             u.ID,
		Username:       u.Username,
		TeamID:         u.TeamID,
		AvatarURL:      u.AvatarURL,
		Bio:            u.Bio,
		XP:             u.XP,
		Level:          u.Level,
		FeedCount:      u.FeedCount,
		CommentCount:   u.CommentCount,
		VoteCount:      u.VoteCount,
		LoginCount:     u.LoginCount,
		LoginDays:      u.LoginDays,
		Badges:         u.Badges,
		EquippedBadges: u.EquippedBadges,
		JoinedAt:       u.JoinedAt,
	}
}
