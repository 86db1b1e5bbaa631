package ai_test

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/cory-johannsen/crawl/internal/game/ai"
)

func TestWorldState_NearestFoe_EarliestOnTies(t *testing.T) {
	ws := monsterState(
		&ai.FoeState{ID: "a", Distance: 4},
		&ai.FoeState{ID: "b", Distance: 2},
		&ai.FoeState{ID: "c", Distance: 2},
	)
	nearest := ws.NearestFoe()
	if nearest == nil || nearest.ID != "b" {
		t.Fatalf("expected b as nearest, got %v", nearest)
	}
}

func TestWorldState_WeakestFoe_ReturnsLowestHPPercent(t *testing.T) {
	ws := monsterState(
		&ai.FoeState{ID: "a", HP: 10, MaxHP: 40},
		&ai.FoeState{ID: "b", HP: 5, MaxHP: 10},
	)
	weakest := ws.WeakestFoe()
	if weakest == nil || weakest.ID != "a" {
		t.Fatalf("expected a as weakest, got %v", weakest)
	}
}

func TestWorldState_ResolveTarget(t *testing.T) {
	ws := monsterState(
		&ai.FoeState{ID: "near", HP: 20, MaxHP: 20, Distance: 1},
		&ai.FoeState{ID: "weak", HP: 2, MaxHP: 20, Distance: 6},
	)
	if f := ws.ResolveTarget(ai.TargetNearest); f == nil || f.ID != "near" {
		t.Fatalf("nearest_foe resolved to %v", f)
	}
	if f := ws.ResolveTarget(ai.TargetWeakest); f == nil || f.ID != "weak" {
		t.Fatalf("weakest_foe resolved to %v", f)
	}
	if f := ws.ResolveTarget(""); f != nil {
		t.Fatalf("empty token resolved to %v", f)
	}
}

func TestSelfState_HPPercent(t *testing.T) {
	s := &ai.SelfState{HP: 5, MaxHP: 20}
	if got := s.HPPercent(); got != 25 {
		t.Fatalf("expected 25, got %v", got)
	}
	if got := (&ai.SelfState{HP: 5}).HPPercent(); got != 0 {
		t.Fatalf("expected 0 without MaxHP, got %v", got)
	}
}

func TestProperty_WorldState_TargetsNilWhenNoFoes(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ws := &ai.WorldState{Self: &ai.SelfState{
			ID:    "m1",
			HP:    rapid.IntRange(1, 50).Draw(rt, "hp"),
			MaxHP: 50,
		}}
		token := rapid.SampledFrom([]string{ai.TargetNearest, ai.TargetWeakest, ""}).Draw(rt, "token")
		if ws.ResolveTarget(token) != nil {
			rt.Fatal("expected nil target with no foes")
		}
	})
}

func TestProperty_WorldState_NearestIsMinimal(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 6).Draw(rt, "n")
		ws := monsterState()
		for range n {
			ws.Foes = append(ws.Foes, &ai.FoeState{Distance: rapid.IntRange(1, 8).Draw(rt, "dist")})
		}
		nearest := ws.NearestFoe()
		for _, f := range ws.Foes {
			if f.Distance < nearest.Distance {
				rt.Fatalf("foe at %d is nearer than chosen %d", f.Distance, nearest.Distance)
			}
		}
	})
}
