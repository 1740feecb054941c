package model

import "fmt"

type BadgeCategory string

const (
	BadgeJoin    BadgeCategory = "join"
	BadgeLevel   BadgeCategory = "level"
	BadgeComment BadgeCategory = "comment"
	BadgeVote    BadgeCategory = "vote"
	BadgeFeed    BadgeCategory = "feed"
	BadgeLogin   BadgeCategory = "login"
)

const MaxBadgeTier = 5

// Badge is a static catalog entry. The catalog is fixed at build time and is
// never mutated at runtime; user records only ever reference badge IDs.
type Badge struct {
	ID          string        `json:"id"`
	Category    BadgeCategory `json:"category"`
	Tier        int           `json:"tier"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Icon        string        `json:"icon"`
}

// BadgeID builds the canonical catalog ID for a category and tier, e.g. "level_3".
func BadgeID(category BadgeCategory, tier int) string {
	return fmt.Sprintf("%s_%d", category, tier)
}

var (
	// Badges is the full catalog: join has tier 1 only, every other category
	// has tiers 1-5.
	Badges []Badge

	// BadgeByID indexes the catalog for membership checks.
	BadgeByID map[string]Badge

	// BadgesByCategory groups the catalog per category, ascending by tier.
	BadgesByCategory map[BadgeCategory][]Badge
)

type tieredCategory struct {
	category  BadgeCategory
	name      string
	subject   string
	unit      string
	threshold int
}

func init() {
	Badges = []Badge{
		{
			ID:          BadgeID(BadgeJoin, 1),
			Category:    BadgeJoin,
			Tier:        1,
			Name:        "첫 출발!",
			Description: "회원가입 완료",
			Icon:        "/badges/join_1.svg",
		},
	}

	tiered := []tieredCategory{
		{BadgeLevel, "레벨", "레벨", "달성", 1},
		{BadgeComment, "댓글왕", "댓글", "개 작성", 5},
		{BadgeVote, "투표왕", "투표", "회 참여", 3},
		{BadgeFeed, "피드챔프", "피드", "개 작성", 3},
		{BadgeLogin, "출석왕", "로그인", "일", 2},
	}

	for _, tc := range tiered {
		for tier := 1; tier <= MaxBadgeTier; tier++ {
			id := BadgeID(tc.category, tier)
			b := Badge{
				ID:       id,
				Category: tc.category,
				Tier:     tier,
				Icon:     fmt.Sprintf("/badges/%s.svg", id),
			}
			if tc.category == BadgeLevel {
				b.Name = fmt.Sprintf("레벨 %d", tier)
				b.Description = fmt.Sprintf("레벨 %d 달성", tier)
			} else {
				b.Name = fmt.Sprintf("%s %d단계", tc.name, tier)
				b.Description = fmt.Sprintf("%s %d%s", tc.subject, tier*tc.threshold, tc.unit)
			}
			Badges = append(Badges, b)
		}
	}

	BadgeByID = make(map[string]Badge, len(Badges))
	BadgesByCategory = make(map[BadgeCategory][]Badge)
	for _, b := range Badges {
		BadgeByID[b.ID] = b
		BadgesByCategory[b.Category] = append(BadgesByCategory[b.Category], b)
	}
}
