// Package combat resolves melee, projectile and shotgun attacks between
// actors. Each attack first builds an AttackData record from the attacker,
// weapon and defender, then applies its outcome through the actor damage
// path and the world collaborators.
package combat

import (
	"github.com/cory-johannsen/crawl/internal/game/actor"
	"github.com/cory-johannsen/crawl/internal/game/condition"
	"github.com/cory-johannsen/crawl/internal/game/dice"
	"github.com/cory-johannsen/crawl/internal/game/inventory"
	"github.com/cory-johannsen/crawl/internal/game/world"
)

const (
	// BigBonus is added to melee hit chance against unaware, webbed or
	// disabled defenders.
	BigBonus = 50
	// SmallBonus is added against impaired or blinded defenders.
	SmallBonus = 20

	backstabPct        = 150
	viciousBackstabPct = 50
	undeadBaneDmg      = 2

	etherealMissNum = 2
	etherealMissDen = 3

	MinHitChance      = 5
	MaxHitChance      = 99
	floorSizeHitMod   = -10
	rogueUnawareBonus = 25

	// MachineGunProjectiles is the burst length of a machine gun, with
	// each bullet trailing the previous one by machineGunSpacing cells.
	MachineGunProjectiles = 5
	machineGunSpacing     = 2
	// ProjectileTravelLimit is how far a projectile flies.
	ProjectileTravelLimit = 30
	shotgunTravelLimit    = 9999
)

// speedHitMod is indexed by the defender's speed.
var speedHitMod = [...]int{
	actor.Sluggish: 20,
	actor.Slow:     10,
	actor.Normal:   0,
	actor.Fast:     -10,
	actor.Fastest:  -30,
}

// AttackData is the resolution of one attack attempt, or of one projectile
// step. It is only valid for the duration of the attack.
type AttackData struct {
	Attacker *actor.Actor
	// Defender is nil when a projectile passes an empty cell.
	Defender *actor.Actor
	Weapon   *inventory.Weapon

	Result  dice.Tier
	DmgRoll int
	DmgPlus int
	Dmg     int
	// EtherealMiss is set when an otherwise good hit passes through an
	// ethereal defender.
	EtherealMiss bool

	Dodging    bool
	Backstab   bool
	WeakAttack bool

	HitChance    int
	AimSize      actor.Size
	DefenderSize actor.Size
}

// hits reports whether the attack connects with the defender.
func (d *AttackData) hits() bool {
	return d.Defender != nil && d.Result.Success() && !d.Dodging && !d.EtherealMiss
}

func hasUndeadBane(w *actor.World, attacker *actor.Actor, wpn *inventory.Weapon, defender *actor.Actor) bool {
	if !defender.Species.Undead {
		return false
	}
	return wpn.Def.HasTrait(inventory.TraitUndeadBane) || (attacker.IsPlayer() && w.Bonus.UndeadBane)
}

func (d *AttackData) rollEthereal(w *actor.World, bane bool) {
	if d.Defender.Conditions.Has(condition.Ethereal) && !bane {
		d.EtherealMiss = w.Rng.Fraction(etherealMissNum, etherealMissDen)
	}
}

// applyOnHit rolls each of the weapon's on-hit conditions against a
// surviving defender.
func applyOnHit(w *actor.World, defender *actor.Actor, wpn *inventory.Weapon) {
	for _, e := range wpn.Def.OnHit {
		if !w.Rng.Percent(e.Chance) {
			continue
		}
		id, err := condition.ParseID(e.Condition)
		if err != nil {
			panic("combat: weapon " + wpn.Def.ID + ": " + err.Error())
		}
		if !defender.Conditions.TryApply(id, e.Turns) || !defender.IsPlayer() || w.Conditions == nil {
			continue
		}
		if def, ok := w.Conditions.Get(id); ok && def.MsgStart != "" {
			w.Log.Post(def.MsgStart, world.ColorWarning, false)
		}
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
