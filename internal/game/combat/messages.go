package combat

import (
	"strings"

	"github.com/cory-johannsen/crawl/internal/game/actor"
	"github.com/cory-johannsen/crawl/internal/game/dice"
	"github.com/cory-johannsen/crawl/internal/game/geom"
	"github.com/cory-johannsen/crawl/internal/game/inventory"
	"github.com/cory-johannsen/crawl/internal/game/world"
)

// nameThe is the capitalised name of a as the player would put it, "It"
// when the player cannot see a.
func nameThe(w *actor.World, a *actor.Actor) string {
	if !w.PlayerSees(a) {
		return "It"
	}
	return a.NameThe()
}

func nameTheLower(w *actor.World, a *actor.Actor) string {
	s := nameThe(w, a)
	return strings.ToLower(s[:1]) + s[1:]
}

func weaponNameA(def *inventory.WeaponDef) string {
	if def.NameA != "" {
		return def.NameA
	}
	return "a " + def.Name
}

// hitPunct grades a hit by how close dmg came to maxDmg.
func hitPunct(dmg, maxDmg int) string {
	if maxDmg >= 4 {
		switch {
		case dmg > maxDmg*5/6:
			return "!!!"
		case dmg > maxDmg/2:
			return "!"
		}
	}
	return "."
}

func postMeleeMsg(w *actor.World, d *AttackData) {
	att, def := d.Attacker, d.Defender
	if !att.IsPlayer() && !def.IsPlayer() {
		return
	}
	wpn := d.Weapon.Def

	if d.Dodging {
		if att.IsPlayer() {
			w.Log.Post(nameThe(w, def)+" dodges my attack.", world.ColorDefault, false)
		} else {
			w.Log.Post("I dodge an attack from "+nameTheLower(w, att)+".", world.ColorNote, false)
		}
		return
	}

	if !d.Result.Success() {
		if att.IsPlayer() {
			switch d.Result {
			case dice.SmallFail:
				w.Log.Post("I barely miss!", world.ColorDefault, false)
			case dice.NormalFail:
				w.Log.Post("I miss.", world.ColorDefault, false)
			default:
				w.Log.Post("I miss completely.", world.ColorDefault, false)
			}
			return
		}
		name := nameThe(w, att)
		switch d.Result {
		case dice.SmallFail:
			w.Log.Post(name+" barely misses me!", world.ColorDefault, true)
		case dice.NormalFail:
			w.Log.Post(name+" misses me.", world.ColorDefault, true)
		default:
			w.Log.Post(name+" misses me completely.", world.ColorDefault, true)
		}
		return
	}

	if d.EtherealMiss {
		if att.IsPlayer() {
			w.Log.Post("My attack passes right through "+nameTheLower(w, def)+"!", world.ColorDefault, false)
		} else {
			w.Log.Post("The attack of "+nameTheLower(w, att)+" passes right through me!", world.ColorDefault, true)
		}
		return
	}

	expr := wpn.MeleeExpr()
	punct := hitPunct(d.Dmg, expr.Count*expr.Sides+d.DmgPlus)

	if !att.IsPlayer() {
		w.Log.Post(nameThe(w, att)+" "+wpn.MeleeVerb(false)+" me"+punct, world.ColorPlayerHurt, true)
		return
	}

	var b strings.Builder
	b.WriteString("I " + wpn.MeleeVerb(true) + " " + nameTheLower(w, def))
	switch {
	case wpn.Intrinsic:
		if d.WeakAttack {
			b.WriteString(" feebly")
		}
	default:
		switch {
		case d.WeakAttack:
			b.WriteString(" feebly")
		case d.Backstab:
			b.WriteString(" covertly")
		}
		b.WriteString(" with " + weaponNameA(wpn))
	}
	b.WriteString(punct)
	w.Log.Post(b.String(), world.ColorMonsterHit, false)
}

// postFireMsg announces a discharge the player takes part in or sees.
func postFireMsg(w *actor.World, attacker *actor.Actor, def *inventory.WeaponDef) {
	switch {
	case attacker.IsPlayer():
		w.Log.Post("I "+def.RangedVerb(true)+".", world.ColorDefault, false)
	case w.Map.IsSeenByPlayer(attacker.Pos):
		w.Log.Post(nameThe(w, attacker)+" "+def.RangedVerb(false)+".", world.ColorDefault, true)
	}
}

func postRangedHit(w *actor.World, d *AttackData, maxDmg int) {
	punct := hitPunct(d.Dmg, maxDmg)
	if d.Defender.IsPlayer() {
		w.Log.Post("I am hit"+punct, world.ColorPlayerHurt, true)
		return
	}
	w.Log.Post(nameThe(w, d.Defender)+" is hit"+punct, world.ColorMonsterHit, false)
}

func emitFireSound(w *actor.World, attacker *actor.Actor, def *inventory.WeaponDef) {
	s := world.Sound{
		Msg:                   def.RangedSound,
		Sfx:                   def.ID,
		Origin:                attacker.Pos,
		SourceID:              attacker.ID.String(),
		Volume:                world.VolumeLow,
		IgnoreMsgIfOriginSeen: true,
		AlertsMonsters:        true,
	}
	if attacker.IsPlayer() {
		s.Msg = ""
	}
	if def.SoundLoud {
		s.Volume = world.VolumeHigh
	}
	w.Sound.Emit(s)
}

func emitRicochet(w *actor.World, p geom.Pos) {
	w.Sound.Emit(world.Sound{
		Msg:                   "I hear a ricochet.",
		Sfx:                   "ricochet",
		Origin:                p,
		Volume:                world.VolumeLow,
		IgnoreMsgIfOriginSeen: true,
		AlertsMonsters:        true,
	})
}
