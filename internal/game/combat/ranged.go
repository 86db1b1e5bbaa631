package combat

import (
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/crawl/internal/game/actor"
	"github.com/cory-johannsen/crawl/internal/game/condition"
	"github.com/cory-johannsen/crawl/internal/game/damage"
	"github.com/cory-johannsen/crawl/internal/game/geom"
	"github.com/cory-johannsen/crawl/internal/game/inventory"
	"github.com/cory-johannsen/crawl/internal/game/world"
)

// Projectile is the state of one bullet in flight.
type Projectile struct {
	Pos        geom.Pos
	Obstructed bool
	// ObstructedAt is the path index where the projectile stopped, -1 while
	// it is still flying.
	ObstructedAt    int
	VisibleToPlayer bool
	ActorHit        *actor.Actor
	// Data is recomputed at every cell the projectile enters.
	Data  *AttackData
	Glyph rune
}

// NewRangedData resolves a shot from attacker with wpn, aimed at aimPos,
// against whoever stands on curPos. aimSize is the height the shot is
// aimed at. When curPos is empty the record has no defender and no roll.
//
// Postcondition: with a defender, MinHitChance <= HitChance <= MaxHitChance.
func NewRangedData(w *actor.World, attacker *actor.Actor, wpn *inventory.Weapon, aimPos, curPos geom.Pos, aimSize actor.Size) AttackData {
	d := AttackData{Attacker: attacker, Weapon: wpn, AimSize: aimSize}
	defender := w.Actors.AliveAt(curPos)
	if defender == nil {
		return d
	}
	d.Defender = defender
	d.DefenderSize = defender.Species.Size

	dist := geom.KingDist(attacker.Pos, curPos)
	chance := attacker.Species.Abilities.Ranged + wpn.Def.RangedHitMod
	chance += 15 - 5*dist
	chance += speedHitMod[defender.Speed()]
	if defender.Species.Size == actor.SizeFloor {
		chance += floorSizeHitMod
	}
	if attacker.IsPlayer() && w.Bonus.Rogue && !defender.IsPlayer() && defender.AwareCounter <= 0 {
		chance += rogueUnawareBonus
	}
	d.HitChance = clamp(chance, MinHitChance, MaxHitChance)
	d.Result = w.Rng.Ability(d.HitChance)
	if !d.Result.Success() {
		return d
	}

	bane := hasUndeadBane(w, attacker, wpn, defender)
	d.rollEthereal(w, bane)

	expr := wpn.Def.RangedExpr()
	if attacker.IsPlayer() && attacker.Conditions.Has(condition.Aiming) {
		d.DmgRoll = expr.Count * expr.Sides
	} else {
		d.DmgRoll = w.Rng.Dice(expr.Count, expr.Sides)
	}
	d.DmgPlus = expr.Modifier
	if bane {
		d.DmgPlus += undeadBaneDmg
	}
	if r := wpn.Def.EffectiveRange; r != -1 && dist > r {
		d.DmgRoll = max(1, d.DmgRoll/2)
		d.DmgPlus /= 2
	}
	d.Dmg = max(0, d.DmgRoll+d.DmgPlus)
	return d
}

// aimSizeAt is the height a shot at p is aimed at: the size of whoever
// stands there, chest height at a blocking feature, the floor otherwise.
func aimSizeAt(w *actor.World, p geom.Pos) actor.Size {
	if a := w.Actors.AliveAt(p); a != nil {
		return a.Species.Size
	}
	if world.BlocksProjectiles(w.Map.FeatureAt(p)) {
		return actor.SizeHumanoid
	}
	return actor.SizeFloor
}

// Ranged fires wpn from attacker at aimPos, consuming ammunition. It
// reports whether a shot was fired; firing ends the attacker's turn.
//
// A shotgun needs one loaded round, other weapons a round per projectile
// unless their ammunition is infinite. Nothing happens when aimPos is the
// attacker's own cell.
//
// Precondition: wpn.Def.IsRanged().
func Ranged(w *actor.World, attacker *actor.Actor, wpn *inventory.Weapon, aimPos geom.Pos) bool {
	if aimPos == attacker.Pos {
		return false
	}
	def := wpn.Def
	fired := false
	if def.Shotgun {
		if wpn.HasAmmo() {
			fireShotgun(w, attacker, wpn, aimPos)
			wpn.ConsumeAmmo()
			fired = true
		}
	} else {
		n := 1
		if def.MachineGun {
			n = MachineGunProjectiles
		}
		if def.InfiniteAmmo || wpn.Ammo >= n {
			FireProjectiles(w, attacker, wpn, aimPos)
			if !def.InfiniteAmmo {
				wpn.Ammo -= n
			}
			fired = true
			if !w.PlayerAlive() {
				return true
			}
		}
	}

	w.Render.Redraw()
	if fired {
		w.Clock.Tick()
	}
	return fired
}

// FireProjectiles sends the projectiles of one discharge along the line to
// aimPos and returns them in their final state. A machine gun fires a
// burst advanced in lockstep, each bullet trailing the previous one; every
// bullet stops on its own.
//
// Ammunition and the turn clock are left to the caller.
func FireProjectiles(w *actor.World, attacker *actor.Actor, wpn *inventory.Weapon, aimPos geom.Pos) []*Projectile {
	def := wpn.Def
	n := 1
	delay := w.ProjectileDelay
	if def.MachineGun {
		n = MachineGunProjectiles
		delay /= 2
	}
	aimSize := aimSizeAt(w, aimPos)
	origin := attacker.Pos
	path := geom.Line(origin, aimPos, aimSize == actor.SizeFloor, ProjectileTravelLimit, false)
	glyph := directedGlyph(def.ProjectileGlyph(), origin, path)

	projs := make([]*Projectile, n)
	for i := range projs {
		projs[i] = &Projectile{Pos: origin, ObstructedAt: -1, Glyph: glyph}
	}

	postFireMsg(w, attacker, def)

	v := volley{
		w:        w,
		attacker: attacker,
		wpn:      wpn,
		path:     path,
		aimPos:   aimPos,
		aimSize:  aimSize,
		maxDmg:   def.RangedExpr().Max(),
		delay:    delay,
	}
	steps := len(v.path) + (n-1)*machineGunSpacing

	for i := 1; i < steps; i++ {
		for p, proj := range projs {
			elem := i - p*machineGunSpacing
			if elem == 1 {
				emitFireSound(w, attacker, def)
			}
			if elem < 1 || elem >= len(v.path) || proj.Obstructed {
				continue
			}
			v.advance(proj, elem)
		}

		var marks []world.ProjectileMark
		allObstructed := true
		for _, proj := range projs {
			if proj.Obstructed {
				continue
			}
			allObstructed = false
			if proj.VisibleToPlayer && proj.Data != nil {
				marks = append(marks, world.ProjectileMark{Pos: proj.Pos, Glyph: proj.Glyph})
			}
		}
		if len(marks) > 0 {
			w.Render.DrawProjectiles(marks, true)
			w.Render.Delay(delay)
		}
		if allObstructed {
			break
		}
	}
	return projs
}

// volley is what every projectile of one discharge shares.
type volley struct {
	w        *actor.World
	attacker *actor.Actor
	wpn      *inventory.Weapon
	path     []geom.Pos
	aimPos   geom.Pos
	aimSize  actor.Size
	maxDmg   int
	delay    time.Duration
}

// advance moves proj to path[elem] and resolves what it meets there.
func (v *volley) advance(proj *Projectile, elem int) {
	w, attacker, wpn := v.w, v.attacker, v.wpn
	def := wpn.Def
	pos := v.path[elem]
	proj.Pos = pos
	proj.VisibleToPlayer = w.Map.IsSeenByPlayer(pos)
	data := NewRangedData(w, attacker, wpn, v.aimPos, pos, v.aimSize)
	proj.Data = &data

	if defender := data.Defender; defender != nil && !data.EtherealMiss &&
		(defender.Species.Size >= actor.SizeHumanoid || pos == v.aimPos) && data.Result.Success() {
		if proj.VisibleToPlayer {
			w.Render.DrawProjectiles([]world.ProjectileMark{{Pos: pos, Glyph: '*'}}, false)
			w.Render.Delay(v.delay)
			postRangedHit(w, &data, v.maxDmg)
		}
		proj.Obstructed = true
		proj.ObstructedAt = elem
		proj.ActorHit = defender

		w.Logger.Debug("projectile hit",
			zap.String("attacker", attacker.Species.ID),
			zap.String("defender", defender.Species.ID),
			zap.Int("hit_chance", data.HitChance),
			zap.Int("damage", data.Dmg))

		died := defender.Hit(w, data.Dmg, def.DmgType(), damage.Piercing)
		if !died {
			applyOnHit(w, defender, wpn)
			if def.Knockback {
				TryKnockBack(w, defender, attacker.Pos, def.HasTrait(inventory.TraitNails))
			}
		}
		return
	}

	if world.BlocksProjectiles(w.Map.FeatureAt(pos)) {
		proj.Obstructed = true
		proj.ObstructedAt = elem - 1
		proj.Pos = v.path[elem-1]
		if def.Ricochet {
			emitRicochet(w, proj.Pos)
		}
		return
	}

	if v.aimSize == actor.SizeFloor && pos == v.aimPos {
		proj.Obstructed = true
		proj.ObstructedAt = elem
		if def.Ricochet {
			emitRicochet(w, pos)
		}
	}
}

// directedGlyph turns the generic '/' into a line drawn along the
// first two steps of the flight path.
func directedGlyph(g rune, from geom.Pos, path []geom.Pos) rune {
	if g != '/' || len(path) < 2 {
		return g
	}
	to := path[min(2, len(path)-1)]
	dx, dy := geom.Sign(to.X-from.X), geom.Sign(to.Y-from.Y)
	switch {
	case dy == 0:
		return '-'
	case dx == 0:
		return '|'
	case dx == dy:
		return '\\'
	}
	return '/'
}
