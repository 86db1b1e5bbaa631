package actor

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/crawl/internal/game/condition"
	"github.com/cory-johannsen/crawl/internal/game/geom"
	"github.com/cory-johannsen/crawl/internal/game/world"
)

// Die runs the death transition. destroyed selects Destroyed over Corpse;
// allowGore lets a destroyed humanoid leave gore; allowDrop drops carried
// items on the actor's cell.
//
// A monster dying on a visible trap is always destroyed. A corpse that lands
// on a cell that cannot hold it moves to the first neighbouring cell that
// can, scanning geom.Neighbourhood in order.
//
// Precondition: the species can leave a corpse or destroyed is true.
// Postcondition: State is Corpse or Destroyed; no actor has this one as
// leader.
func (a *Actor) Die(w *World, destroyed, allowGore, allowDrop bool) {
	if !a.Species.CanLeaveCorpse && !destroyed {
		panic(fmt.Sprintf("actor: Die: %s cannot leave a corpse", a.Species.ID))
	}

	for _, other := range w.Actors.All() {
		if other != a && !other.player && other.Leader == a.ID {
			other.Leader = uuid.Nil
		}
	}

	onVisibleTrap := w.Map.FeatureAt(a.Pos).IsVisibleTrap()

	if !a.player {
		if w.PlayerTarget == a.ID {
			w.PlayerTarget = uuid.Nil
		}
		if w.PlayerSees(a) {
			if a.Species.DeathMsg != "" {
				w.post(a.Species.DeathMsg, world.ColorDefault, false)
			} else {
				w.post(a.NameThe()+" dies.", world.ColorDefault, false)
			}
		}
	}

	if onVisibleTrap && !a.player {
		destroyed = true
	}
	if destroyed {
		a.State = Destroyed
	} else {
		a.State = Corpse
	}

	if !a.player && a.Species.Humanoid {
		w.Sound.Emit(world.Sound{
			Msg:                   "I hear agonized screaming.",
			Origin:                a.Pos,
			SourceID:              a.ID.String(),
			Volume:                world.VolumeLow,
			IgnoreMsgIfOriginSeen: true,
		})
	}

	if allowDrop {
		for _, it := range a.Inv.DropAll() {
			w.Map.Floor.Drop(a.Pos, it)
		}
	}

	if destroyed {
		a.Glyph = ' '
		if a.Species.Humanoid && allowGore {
			w.Map.MakeGore(a.Pos)
		}
	} else {
		if !a.player && !w.Map.FeatureAt(a.Pos).CanHaveCorpse() {
			a.relocateCorpse(w)
		}
		a.Glyph = CorpseGlyph
	}

	a.Conditions = condition.Set{}

	if !a.player {
		if w.Kills != nil {
			w.Kills.OnKilled(a)
		}
		a.Leader = uuid.Nil
	}

	w.Logger.Debug("actor died",
		zap.String("species", a.Species.ID),
		zap.Stringer("state", a.State))
	w.Render.Redraw()
}

func (a *Actor) relocateCorpse(w *World) {
	for _, d := range geom.Neighbourhood {
		p := a.Pos.Add(d)
		if geom.InsideMap(p) && w.Map.FeatureAt(p).CanHaveCorpse() {
			a.Pos = p
			return
		}
	}
}
