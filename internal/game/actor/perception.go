package actor

import (
	"github.com/cory-johannsen/crawl/internal/game/dice"
	"github.com/cory-johannsen/crawl/internal/game/fov"
	"github.com/cory-johannsen/crawl/internal/game/geom"
	"github.com/cory-johannsen/crawl/internal/game/world"
)

// CanSeeActor reports whether a sees other.
//
// The player sees what the map marks as seen by the player, stealthy
// monsters excepted. A monster needs other within the sight radius, working
// eyes, and a clear ray through los; without los it sees nothing. Monsters
// led by the player never see stealthy monsters.
func (a *Actor) CanSeeActor(w *World, other *Actor, los *geom.Grid) bool {
	if a == other {
		return true
	}
	if !other.IsAlive() {
		return false
	}
	if a.player {
		return w.Map.IsSeenByPlayer(other.Pos) && !other.Stealth
	}

	d := other.Pos.Sub(a.Pos)
	if d.X > fov.StdRadius || -d.X > fov.StdRadius || d.Y > fov.StdRadius || -d.Y > fov.StdRadius {
		return false
	}
	if a.IsLedBy(w, w.Player) && !other.player && other.Stealth {
		return false
	}
	if !a.Conditions.AllowSee() {
		return false
	}
	if los == nil {
		return false
	}
	return fov.Visible(los, w.Map, other.Pos, a.Pos, !a.Species.SeeInDarkness)
}

// SeenFoes returns the hostile actors a can currently see, in roster order.
// For the player these are all visible actors it does not lead. For a
// monster, sides are the player with its followers against everyone else.
func (a *Actor) SeenFoes(w *World) []*Actor {
	var los *geom.Grid
	if !a.player {
		g := w.Map.BlockGrid(world.BlocksLOS, geom.WindowAround(a.Pos, fov.StdRadius))
		los = &g
	}

	var out []*Actor
	for _, other := range w.Actors.All() {
		if other == a || !other.IsAlive() {
			continue
		}
		if a.player {
			if a.CanSeeActor(w, other, nil) && !other.IsLedBy(w, a) {
				out = append(out, other)
			}
			continue
		}
		hostile := !a.IsLedBy(w, w.Player)
		otherHostile := !other.player && !other.IsLedBy(w, w.Player)
		if hostile != otherHostile && a.CanSeeActor(w, other, los) {
			out = append(out, other)
		}
	}
	return out
}

// IsSpottingHiddenActor rolls whether a notices the hidden actor other.
// Distance and darkness help the sneaker, light and the player's searching
// skill hinder it.
func (a *Actor) IsSpottingHiddenActor(w *World, other *Actor) bool {
	searchMod := 0
	if a.player {
		searchMod = a.Species.Abilities.Searching / 3
	}
	dist := geom.KingDist(a.Pos, other.Pos)
	distMod := clamp((dist-1)*10, 0, 60)

	lightMod, darkMod := 0, 0
	lit, dark := w.Map.IsLit(other.Pos), w.Map.IsDark(other.Pos)
	if lit {
		lightMod = -40
	}
	if dark && !lit {
		darkMod = 40
	}
	sneak := clamp(other.Species.Abilities.Stealth+distMod+lightMod+darkMod-searchMod, 0, 99)
	return w.Rng.Ability(sneak) <= dice.SmallFail
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
