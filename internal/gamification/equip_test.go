package gamification

import (
	"testing"

	"github.com/fanbaselab/fanbase/internal/model"
)

func deref(p *string) string {
	if p == nil {
		return "<nil>"
	}
	return *p
}

func assertLayout(t *testing.T, eq model.EquippedBadges, main string, slots [model.EquipSlotCount]string) {
	t.Helper()
	if deref(eq.Main) != main {
		t.Errorf("main = %s, want %s", deref(eq.Main), main)
	}
	for i, want := range slots {
		if deref(eq.Slots[i]) != want {
			t.Errorf("slot %d = %s, want %s", i, deref(eq.Slots[i]), want)
		}
	}
}

func TestDeriveTop5NewMember(t *testing.T) {
	eq := DeriveTop5([]string{"join_1", "level_1"})

	assertLayout(t, eq, "join_1", [model.EquipSlotCount]string{"level_1", "feed_1", "vote_1", "comment_1"})
}

func TestDeriveTop5LegacyMainFallsBackToLogin(t *testing.T) {
	// Accounts created before the signup grant never own join_1.
	eq := DeriveTop5([]string{"level_2", "login_1", "login_3"})

	if deref(eq.Main) != "login_3" {
		t.Errorf("main = %s, want login_3", deref(eq.Main))
	}
	if deref(eq.Slots[0]) != "level_2" {
		t.Errorf("level slot = %s, want level_2", deref(eq.Slots[0]))
	}
}

func TestDeriveTop5LegacyNoLoginUsesPlaceholder(t *testing.T) {
	eq := DeriveTop5([]string{"level_1"})

	if deref(eq.Main) != "login_1" {
		t.Errorf("main = %s, want login_1 placeholder", deref(eq.Main))
	}
}

func TestDeriveTop5PicksHighestTierPerSlot(t *testing.T) {
	eq := DeriveTop5([]string{
		"join_1",
		"level_1", "level_2", "level_3",
		"feed_1",
		"vote_1", "vote_2",
		"comment_1", "comment_2", "comment_3", "comment_4",
	})

	assertLayout(t, eq, "join_1", [model.EquipSlotCount]string{"level_3", "feed_1", "vote_2", "comment_4"})
}

func TestDeriveTop5AlwaysFillsFiveSlots(t *testing.T) {
	for _, badges := range [][]string{nil, {}, {"join_1"}, {"comment_5"}} {
		eq := DeriveTop5(badges)
		if eq.Main == nil {
			t.Errorf("badges %v: main is nil", badges)
		}
		for i, s := range eq.Slots {
			if s == nil {
				t.Errorf("badges %v: slot %d is nil", badges, i)
			}
		}
	}
}

func TestApplyManualLayout(t *testing.T) {
	a, b, c := "join_1", "comment_3", "vote_1"

	t.Run("exact five", func(t *testing.T) {
		eq := ApplyManualLayout([]*string{&a, &b, nil, &c, nil})
		if deref(eq.Main) != "join_1" {
			t.Errorf("main = %s", deref(eq.Main))
		}
		if deref(eq.Slots[0]) != "comment_3" || eq.Slots[1] != nil || deref(eq.Slots[2]) != "vote_1" || eq.Slots[3] != nil {
			t.Errorf("slots = %v %v %v %v", eq.Slots[0], eq.Slots[1], eq.Slots[2], eq.Slots[3])
		}
	})

	t.Run("short input is padded", func(t *testing.T) {
		eq := ApplyManualLayout([]*string{&a, &b})
		if deref(eq.Main) != "join_1" || deref(eq.Slots[0]) != "comment_3" {
			t.Errorf("main=%v slot0=%v", eq.Main, eq.Slots[0])
		}
		for i := 1; i < model.EquipSlotCount; i++ {
			if eq.Slots[i] != nil {
				t.Errorf("slot %d = %v, want nil", i, eq.Slots[i])
			}
		}
	})

	t.Run("oversized input is truncated", func(t *testing.T) {
		eq := ApplyManualLayout([]*string{&a, &b, &c, &a, &b, &c, &a})
		if deref(eq.Slots[3]) != "comment_3" {
			t.Errorf("slot 3 = %s", deref(eq.Slots[3]))
		}
	})

	t.Run("empty input", func(t *testing.T) {
		eq := ApplyManualLayout(nil)
		if !eq.IsEmpty() {
			t.Errorf("expected empty layout, got %+v", eq)
		}
	})
}
