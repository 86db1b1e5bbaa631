package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/crawl/internal/game/actor"
	"github.com/cory-johannsen/crawl/internal/game/condition"
	"github.com/cory-johannsen/crawl/internal/game/dice"
	"github.com/cory-johannsen/crawl/internal/game/inventory"
	"github.com/cory-johannsen/crawl/internal/game/world"
)

// isDefenderAware reports whether defender notices attacker coming.
func isDefenderAware(w *actor.World, attacker, defender *actor.Actor) bool {
	if defender.IsPlayer() {
		return w.Bonus.Vigilant || defender.CanSeeActor(w, attacker, nil)
	}
	return defender.IsAware()
}

func isAttackerAware(w *actor.World, attacker, defender *actor.Actor) bool {
	if attacker.IsPlayer() {
		return attacker.CanSeeActor(w, defender, nil)
	}
	return attacker.IsAware()
}

// NewMeleeData resolves a melee attack of attacker on defender with wpn
// without applying it.
//
// An aware defender first rolls to dodge. Otherwise the attacker rolls its
// melee skill plus the weapon modifier and at most one situational bonus.
// Damage is rolled only for a successful attack.
//
// Precondition: wpn.Def.IsMelee(); attacker and defender are alive.
func NewMeleeData(w *actor.World, attacker *actor.Actor, wpn *inventory.Weapon, defender *actor.Actor) AttackData {
	d := AttackData{
		Attacker:     attacker,
		Defender:     defender,
		Weapon:       wpn,
		DefenderSize: defender.Species.Size,
	}
	feature := w.Map.FeatureAt(defender.Pos)

	defenderAware := isDefenderAware(w, attacker, defender)
	if defenderAware {
		if dodge := defender.Species.Abilities.Dodge + feature.DodgeModifier(); dodge > 0 {
			d.Dodging = w.Rng.Ability(dodge).Success()
		}
	}
	if d.Dodging {
		return d
	}

	attackerAware := isAttackerAware(w, attacker, defender)
	bonus := 0
	if attackerAware {
		switch {
		case !defenderAware || feature.IsHoldingWeb() || defender.Conditions.IsDisabled():
			bonus = BigBonus
		case defender.Conditions.IsImpaired() || !defender.Conditions.AllowSee():
			bonus = SmallBonus
		}
	}
	d.HitChance = attacker.Species.Abilities.Melee + wpn.Def.MeleeHitMod + bonus
	d.Result = w.Rng.Ability(d.HitChance)
	if !d.Result.Success() {
		return d
	}

	bane := hasUndeadBane(w, attacker, wpn, defender)
	d.rollEthereal(w, bane)

	expr := wpn.Def.MeleeExpr()
	d.DmgPlus = expr.Modifier + wpn.MeleePlus
	if bane {
		d.DmgPlus += undeadBaneDmg
	}
	// A weakened attacker always deals minimum damage and never backstabs.
	if attacker.Conditions.Has(condition.Weakened) {
		d.DmgRoll = expr.Count
		d.WeakAttack = true
		d.Dmg = max(0, d.DmgRoll+d.DmgPlus)
		return d
	}
	if d.Result == dice.CriticalSuccess {
		d.DmgRoll = expr.Count * expr.Sides
	} else {
		d.DmgRoll = w.Rng.Dice(expr.Count, expr.Sides)
	}
	d.Dmg = max(0, d.DmgRoll+d.DmgPlus)

	if attackerAware && !defenderAware {
		d.Backstab = true
		pct := backstabPct
		if wpn.Def.HasTrait(inventory.TraitDagger) {
			pct *= 2
		}
		if attacker.IsPlayer() && w.Bonus.Vicious {
			pct += viciousBackstabPct
		}
		d.Dmg = max(0, (d.DmgRoll+d.DmgPlus)*pct/100)
	}
	return d
}

// Melee makes attacker strike defender with wpn, applies the outcome and
// ends the attacker's turn.
//
// Precondition: wpn.Def.IsMelee(); attacker and defender are alive.
// Postcondition: w.Clock has ticked once.
func Melee(w *actor.World, attacker *actor.Actor, wpn *inventory.Weapon, defender *actor.Actor) AttackData {
	d := NewMeleeData(w, attacker, wpn, defender)
	postMeleeMsg(w, &d)

	w.Logger.Debug("melee attack",
		zap.String("attacker", attacker.Species.ID),
		zap.String("defender", defender.Species.ID),
		zap.String("weapon", wpn.Def.ID),
		zap.Stringer("result", d.Result),
		zap.Bool("dodged", d.Dodging),
		zap.Bool("ethereal_miss", d.EtherealMiss),
		zap.Int("damage", d.Dmg))

	if d.hits() {
		def := wpn.Def
		died := defender.Hit(w, d.Dmg, def.DmgType(), def.Method())
		if !died {
			applyOnHit(w, defender, wpn)
		}
		if d.Result >= dice.NormalSuccess && defender.Species.CanBleed {
			w.Map.MakeBlood(defender.Pos)
		}
		if !died && def.Knockback && d.Result > dice.SmallSuccess {
			TryKnockBack(w, defender, attacker.Pos, false)
		}
		if def.Weight.HeavierThan(inventory.WeightLight) && !def.Intrinsic {
			w.Sound.Emit(world.Sound{
				Sfx:                   def.MeleeSfx,
				Origin:                defender.Pos,
				SourceID:              attacker.ID.String(),
				Volume:                world.VolumeLow,
				IgnoreMsgIfOriginSeen: true,
				AlertsMonsters:        true,
			})
		}
	}

	if defender.IsPlayer() {
		if d.Result >= dice.SmallFail {
			attacker.Stealth = false
		}
	} else {
		defender.AwareCounter = defender.Species.TurnsAware
	}
	w.Clock.Tick()
	return d
}
