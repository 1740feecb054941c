package gamification

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/fanbaselab/fanbase/internal/model"
	"github.com/google/uuid"
)

// ErrMalformedRecord is returned when a persisted blob is not a JSON object
// at all. Anything less broken than that is repaired, not rejected.
var ErrMalformedRecord = errors.New("gamification: malformed user record")

// rawUser is the tolerant decoding shape. The browser client shipped at
// least four incompatible user shapes over its history; fields that drifted
// are held as raw JSON and repaired field by field.
type rawUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	TeamID   string `json:"teamId"`
	Avatar   string `json:"avatar"`
	Bio      string `json:"bio"`

	XP           int `json:"xp"`
	FeedCount    int `json:"feedCount"`
	CommentCount int `json:"commentCount"`
	VoteCount    int `json:"voteCount"`
	LoginCount   int `json:"loginCount"`
	LoginDays    int `json:"loginDays"`

	LastLoginDay string `json:"lastLoginDay"`

	Badges         json.RawMessage `json:"badges"`
	EquippedBadges json.RawMessage `json:"equippedBadges"`
	JoinedAt       json.RawMessage `json:"joinedAt"`
}

type rawEquipped struct {
	Main  *string   `json:"main"`
	Slots []*string `json:"slots"`
}

// NormalizeUser repairs a persisted user record into the canonical shape.
// It is the single ingestion boundary: no stored record is trusted until it
// has passed through here. Repairs applied:
//
//   - badges stored as a JSON-encoded string, or as one level of nested
//     arrays, are unwrapped; duplicates and IDs missing from the catalog are
//     dropped
//   - missing counters default to zero, negative ones are clamped
//   - level is rederived from xp unconditionally
//   - a missing or fully empty equipped layout is recomputed from the earned
//     set when at least one badge is owned
//   - a missing joinedAt defaults to the normalization time
//
// Normalization is idempotent: feeding the output back in reproduces it.
func NormalizeUser(raw []byte) (*model.User, error) {
	var ru rawUser
	if err := json.Unmarshal(raw, &ru); err != nil {
		return nil, ErrMalformedRecord
	}

	u := &model.User{
		ID:           ru.ID,
		Username:     ru.Username,
		Password:     ru.Password,
		TeamID:       ru.TeamID,
		AvatarURL:    ru.Avatar,
		Bio:          ru.Bio,
		XP:           clampNonNegative(ru.XP),
		FeedCount:    clampNonNegative(ru.FeedCount),
		CommentCount: clampNonNegative(ru.CommentCount),
		VoteCount:    clampNonNegative(ru.VoteCount),
		LoginCount:   clampNonNegative(ru.LoginCount),
		LoginDays:    clampNonNegative(ru.LoginDays),
		LastLoginDay: ru.LastLoginDay,
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Level = LevelForXP(u.XP)
	u.Badges = normalizeBadgeList(ru.Badges)
	u.JoinedAt = normalizeJoinedAt(ru.JoinedAt)

	u.EquippedBadges = normalizeEquipped(ru.EquippedBadges)
	if u.EquippedBadges.IsEmpty() && len(u.Badges) > 0 {
		u.EquippedBadges = DeriveTop5(u.Badges)
	}

	return u, nil
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// normalizeBadgeList accepts every badge encoding the client ever produced:
// a plain array of IDs, an array with nested arrays, or the whole array
// serialized into a JSON string. The result is deduplicated, keeps first
// occurrence order, and holds only catalog IDs.
func normalizeBadgeList(raw json.RawMessage) []string {
	ids := collectBadgeIDs(raw, true)

	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		if _, ok := model.BadgeByID[id]; !ok {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func collectBadgeIDs(raw json.RawMessage, unwrapString bool) []string {
	if len(raw) == 0 {
		return nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err == nil {
		var ids []string
		for _, el := range elems {
			var id string
			if err := json.Unmarshal(el, &id); err == nil {
				ids = append(ids, id)
				continue
			}
			// One level of accidental nesting, e.g. ["level_1", ["level_2"]].
			var nested []string
			if err := json.Unmarshal(el, &nested); err == nil {
				ids = append(ids, nested...)
			}
		}
		return ids
	}

	// The whole list serialized as a string: "[\"level_1\"]".
	if unwrapString {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return collectBadgeIDs(json.RawMessage(s), false)
		}
	}
	return nil
}

func normalizeEquipped(raw json.RawMessage) model.EquippedBadges {
	var eq model.EquippedBadges
	if len(raw) == 0 {
		return eq
	}

	var re rawEquipped
	if err := json.Unmarshal(raw, &re); err != nil {
		return eq
	}

	eq.Main = knownBadge(re.Main)
	for i := 0; i < model.EquipSlotCount && i < len(re.Slots); i++ {
		eq.Slots[i] = knownBadge(re.Slots[i])
	}
	return eq
}

func knownBadge(id *string) *string {
	if id == nil {
		return nil
	}
	if _, ok := model.BadgeByID[*id]; !ok {
		return nil
	}
	return id
}

func normalizeJoinedAt(raw json.RawMessage) time.Time {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
			if t, err := time.Parse(layout, s); err == nil {
				return t
			}
		}
	}
	return time.Now().UTC()
}
