package model

import "testing"

func TestBadgeCatalogShape(t *testing.T) {
	// join_1 plus five tiers for each of the five tiered categories.
	want := 1 + 5*MaxBadgeTier
	if len(Badges) != want {
		t.Fatalf("catalog holds %d badges, want %d", len(Badges), want)
	}
	if len(BadgeByID) != len(Badges) {
		t.Errorf("BadgeByID has %d entries, want %d", len(BadgeByID), len(Badges))
	}

	if got := len(BadgesByCategory[BadgeJoin]); got != 1 {
		t.Errorf("join category has %d badges, want 1", got)
	}
	for _, cat := range []BadgeCategory{BadgeLevel, BadgeComment, BadgeVote, BadgeFeed, BadgeLogin} {
		group := BadgesByCategory[cat]
		if len(group) != MaxBadgeTier {
			t.Errorf("category %s has %d badges, want %d", cat, len(group), MaxBadgeTier)
			continue
		}
		for i, b := range group {
			if b.Tier != i+1 {
				t.Errorf("category %s index %d holds tier %d", cat, i, b.Tier)
			}
		}
	}
}

func TestBadgeID(t *testing.T) {
	if got := BadgeID(BadgeLevel, 3); got != "level_3" {
		t.Errorf("BadgeID = %s, want level_3", got)
	}
	if _, ok := BadgeByID["comment_5"]; !ok {
		t.Error("comment_5 missing from catalog")
	}
	if _, ok := BadgeByID["join_2"]; ok {
		t.Error("join_2 must not exist, join has a single tier")
	}
}

func TestBadgeDescriptions(t *testing.T) {
	cases := map[string]string{
		"join_1":    "회원가입 완료",
		"level_2":   "레벨 2 달성",
		"comment_2": "댓글 10개 작성",
		"vote_3":    "투표 9회 참여",
		"feed_1":    "피드 3개 작성",
		"login_5":   "로그인 10일",
	}
	for id, want := range cases {
		if got := BadgeByID[id].Description; got != want {
			t.Errorf("%s description = %q, want %q", id, got, want)
		}
	}
}
