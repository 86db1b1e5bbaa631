package actor

import (
	"github.com/cory-johannsen/crawl/internal/game/condition"
	"github.com/cory-johannsen/crawl/internal/game/geom"
	"github.com/cory-johannsen/crawl/internal/game/world"
)

// ConfusedAfterTeleport is how long an involuntary teleport confuses the
// player.
const ConfusedAfterTeleport = 8

// TeleportControl lets the player pick a teleport destination.
type TeleportControl interface {
	// ChooseTarget returns the chosen cell, or ok false when the player
	// cancels. chance reports the success percentage for a candidate cell.
	ChooseTarget(from geom.Pos, chance func(geom.Pos) int) (target geom.Pos, ok bool)
}

// TeleportChance is the percent chance that a controlled teleport from
// from to to succeeds.
//
// Postcondition: 25 <= result <= 95.
func TeleportChance(from, to geom.Pos) int {
	return clamp(100-geom.KingDist(from, to), 25, 95)
}

// Teleport moves the actor to a uniformly random free cell. A player under
// teleport control who is not confused may pick the destination through
// ctrl; ctrl may be nil. An uncontrolled player teleport confuses the
// player. Nothing happens when no free cell exists.
func (a *Actor) Teleport(w *World, ctrl TeleportControl) {
	blocked := w.Map.BlockGrid(world.BlocksMove, geom.MapRange)
	for _, o := range w.Actors.All() {
		if o.IsAlive() {
			blocked.Set(o.Pos, true)
		}
	}
	free := blocked.Cells(false)
	if len(free) == 0 {
		return
	}

	if !a.player && w.PlayerSees(a) {
		w.post(a.NameThe()+" suddenly disappears!", world.ColorDefault, false)
	}

	target := free[w.Rng.Range(0, len(free)-1)]
	controlled := false

	if a.player {
		w.UpdatePlayerFOV()
		w.Render.Redraw()

		if ctrl != nil && a.Conditions.Has(condition.TeleControl) && !a.Conditions.Has(condition.Confused) {
			controlled = true
			w.post("I have the power to control teleportation.", world.ColorNote, true)
			from := a.Pos
			chance := func(p geom.Pos) int { return TeleportChance(from, p) }
			if chosen, ok := ctrl.ChooseTarget(from, chance); ok {
				switch {
				case !geom.InsideMap(chosen) || blocked.At(chosen):
					w.post("Something is blocking me...", world.ColorDefault, true)
				case w.Rng.Percent(chance(chosen)):
					target = chosen
				default:
					w.post("I failed to go there...", world.ColorDefault, true)
				}
			}
		}
	} else {
		a.PlayerAwareOfMe = 0
	}

	a.Pos = target

	if a.player {
		w.UpdatePlayerFOV()
		w.Render.Redraw()
		if !controlled {
			w.post("I suddenly find myself in a different location!", world.ColorDefault, false)
			a.Conditions.TryApply(condition.Confused, ConfusedAfterTeleport)
		}
	}
}
