package combat

import (
	"github.com/cory-johannsen/crawl/internal/game/actor"
	"github.com/cory-johannsen/crawl/internal/game/condition"
	"github.com/cory-johannsen/crawl/internal/game/geom"
	"github.com/cory-johannsen/crawl/internal/game/world"
)

// NailedTurns is how long a spike knocked into a wall pins its victim.
const NailedTurns = 5

// TryKnockBack pushes defender one cell directly away from origin and
// reports whether it moved. Giants stand firm. Nothing moves when the
// destination is off the map, impassable or occupied, except that a spike
// driving the defender into a wall nails it there.
func TryKnockBack(w *actor.World, defender *actor.Actor, origin geom.Pos, isSpike bool) bool {
	if !defender.IsAlive() || defender.Species.Size == actor.SizeGiant {
		return false
	}
	d := defender.Pos.Sub(origin)
	step := geom.Pos{X: geom.Sign(d.X), Y: geom.Sign(d.Y)}
	if step == (geom.Pos{}) {
		return false
	}
	dest := defender.Pos.Add(step)
	if !geom.InsideMap(dest) {
		return false
	}

	seen := w.PlayerSees(defender)
	if f := w.Map.FeatureAt(dest); !f.IsMovePassable() {
		if isSpike && f.Kind == world.Wall && defender.Conditions.TryApply(condition.Nailed, NailedTurns) {
			switch {
			case defender.IsPlayer():
				w.Log.Post("I am nailed to the wall!", world.ColorPlayerHurt, true)
			case seen:
				w.Log.Post(defender.NameThe()+" is nailed to the wall!", world.ColorDefault, false)
			}
		}
		return false
	}
	if w.Actors.AliveAt(dest) != nil {
		return false
	}

	defender.Pos = dest
	switch {
	case defender.IsPlayer():
		w.Log.Post("I am knocked back!", world.ColorPlayerHurt, true)
		w.UpdatePlayerFOV()
	case seen:
		w.Log.Post(defender.NameThe()+" is knocked back!", world.ColorDefault, false)
	}
	w.Render.Redraw()
	return true
}
