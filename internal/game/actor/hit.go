package actor

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/crawl/internal/game/condition"
	"github.com/cory-johannsen/crawl/internal/game/damage"
	"github.com/cory-johannsen/crawl/internal/game/world"
)

// Hit applies amount damage of type dmgType delivered by method and reports
// whether the actor died from it.
//
// Destroyed actors ignore hits. Light only hurts light sensitive actors. A
// monster corpse may be destroyed but never dies again. Spirit damage drains
// spirit instead of HP. Otherwise resistances, on-hit transforms and worn
// armor are applied in turn, and the remainder (at least 1) comes off HP.
//
// Postcondition: when true is returned the actor is a Corpse or Destroyed.
func (a *Actor) Hit(w *World, amount int, dmgType damage.Type, method damage.Method) bool {
	if a.State == Destroyed {
		return false
	}
	if dmgType == damage.Light && !a.Conditions.Has(condition.LightSensitive) {
		return false
	}
	if a.State == Corpse && !a.player {
		a.hitCorpse(w, amount, method)
		return false
	}
	if dmgType == damage.Spirit {
		return a.HitSpirit(w, amount, true)
	}

	if a.Conditions.TryResist(w.Conditions, dmgType) {
		if a.State == Alive {
			a.postResist(w)
		}
		return false
	}

	amount = a.Conditions.TransformDamage(w.Conditions, w.Hooks, amount, dmgType)
	amount = max(1, amount)

	if a.Species.Humanoid && a.Inv.Body != nil && dmgType == damage.Physical {
		amount = a.absorbWithArmor(w, amount)
	}

	a.Conditions.OnHit()

	if !a.player || !w.BotMode {
		a.HP -= amount
	}
	w.Logger.Debug("actor hit",
		zap.String("species", a.Species.ID),
		zap.Int("damage", amount),
		zap.Stringer("type", dmgType),
		zap.Int("hp", a.HP))

	if a.HP > 0 {
		return false
	}
	bottomless := w.Map.FeatureAt(a.Pos).IsBottomless()
	overkill := amount > a.HPMax*5/4
	destroyed := !a.Species.CanLeaveCorpse || bottomless || overkill
	a.Die(w, destroyed, !bottomless, !bottomless)
	return true
}

func (a *Actor) postResist(w *World) {
	if a.player {
		w.post("I resist harm.", world.ColorNote, false)
		return
	}
	if w.PlayerSees(a) {
		w.post(a.NameThe()+" seems unaffected.", world.ColorDefault, false)
	}
}

func (a *Actor) absorbWithArmor(w *World, amount int) int {
	armor := a.Inv.Body
	reduced, degraded := armor.TakeDurabilityHit(amount)
	switch {
	case armor.IsDestroyed():
		if a.player {
			w.post("My "+armor.Def.Name+" is torn apart!", world.ColorNote, false)
		}
		a.Inv.RemoveBody()
		w.Logger.Debug("armor destroyed", zap.String("armor", armor.Def.ID))
	case degraded && a.player:
		w.post("My "+armor.Def.Name+" is damaged!", world.ColorNote, false)
	}
	return reduced
}

// A corpse is destroyed outright by heavy damage or a heavy blunt blow, and
// otherwise five times in eight.
func (a *Actor) hitCorpse(w *World, amount int, method damage.Method) {
	destroy := amount >= a.HPMax*2/3 ||
		method == damage.BluntHeavy ||
		w.Rng.Fraction(5, 8)

	if !destroy {
		if method == damage.Kick {
			w.Sound.Emit(world.Sound{
				Msg: "*Thud*", Sfx: "hit_medium", Origin: a.Pos,
				IgnoreMsgIfOriginSeen: true, AlertsMonsters: true,
			})
		}
		return
	}

	if method == damage.Kick {
		w.Sound.Emit(world.Sound{
			Msg: "*Crack!*", Sfx: "hit_corpse_break", Origin: a.Pos,
			IgnoreMsgIfOriginSeen: true, AlertsMonsters: true,
		})
	}
	a.State = Destroyed
	a.Glyph = ' '
	if a.Species.Humanoid {
		w.Map.MakeGore(a.Pos)
	}
	if w.Map.IsSeenByPlayer(a.Pos) {
		w.post(a.CorpseNameThe()+" is destroyed.", world.ColorDefault, false)
	}
}

// HitSpirit drains amount spirit and reports whether the actor died from it.
// Only living actors are affected.
//
// Postcondition: Spirit >= 0.
func (a *Actor) HitSpirit(w *World, amount int, allowMsg bool) bool {
	if a.State != Alive {
		return false
	}
	if allowMsg && a.player {
		w.post("My spirit is drained!", world.ColorPlayerHurt, false)
	}

	a.Conditions.OnHit()

	if !a.player || !w.BotMode {
		a.Spirit = max(0, a.Spirit-amount)
	}
	if a.Spirit > 0 {
		return false
	}

	if a.player {
		w.post("All my spirit is depleted, I am devoid of life!", world.ColorPlayerHurt, false)
	} else if w.PlayerSees(a) {
		w.post(a.NameThe()+" has no spirit left!", world.ColorDefault, false)
	}
	bottomless := w.Map.FeatureAt(a.Pos).IsBottomless()
	a.Die(w, !a.Species.CanLeaveCorpse || bottomless, false, true)
	return true
}
