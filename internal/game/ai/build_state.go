package ai

import (
	"github.com/cory-johannsen/crawl/internal/game/actor"
	"github.com/cory-johannsen/crawl/internal/game/combat"
	"github.com/cory-johannsen/crawl/internal/game/condition"
	"github.com/cory-johannsen/crawl/internal/game/geom"
)

// BuildWorldState snapshots what a knows at the start of its action. Foes
// are the hostile actors a sees; an aware monster also knows where the
// player is when it cannot see it.
//
// Precondition: a must be alive.
// Postcondition: ws.Self.ID == a.ID.String().
func BuildWorldState(w *actor.World, a *actor.Actor) *WorldState {
	ws := &WorldState{Self: &SelfState{
		ID:       a.ID.String(),
		Species:  a.Species.ID,
		Player:   a.IsPlayer(),
		HP:       a.HP,
		MaxHP:    a.HPMax,
		Aware:    a.IsPlayer() || a.IsAware(),
		Nailed:   a.Conditions.Has(condition.Nailed),
		HasMelee: a.Inv.MeleeWeapon() != nil,
	}}
	if wpn := a.Inv.Wielded; wpn != nil && wpn.Def.IsRanged() {
		ws.Self.HasRanged = true
		need := 1
		if wpn.Def.MachineGun {
			need = combat.MachineGunProjectiles
		}
		ws.Self.CanFire = wpn.Def.InfiniteAmmo || wpn.Ammo >= need
	}

	seesPlayer := false
	for _, f := range a.SeenFoes(w) {
		seesPlayer = seesPlayer || f.IsPlayer()
		ws.Foes = append(ws.Foes, foeState(a, f, true))
	}
	if !a.IsPlayer() && a.IsAware() && !seesPlayer && w.PlayerAlive() {
		ws.Foes = append(ws.Foes, foeState(a, w.Player, false))
	}
	return ws
}

func foeState(a, f *actor.Actor, seen bool) *FoeState {
	return &FoeState{
		ID:       f.ID.String(),
		Species:  f.Species.ID,
		HP:       f.HP,
		MaxHP:    f.HPMax,
		Distance: geom.KingDist(a.Pos, f.Pos),
		Seen:     seen,
	}
}
