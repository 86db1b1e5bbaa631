package combat_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/cory-johannsen/crawl/internal/game/actor"
	"github.com/cory-johannsen/crawl/internal/game/dice"
	"github.com/cory-johannsen/crawl/internal/game/geom"
	"github.com/cory-johannsen/crawl/internal/game/inventory"
	"github.com/cory-johannsen/crawl/internal/game/world"
)

// fixedSrc always rolls v, clamped into range. With v == 0 every ability
// roll with positive skill is critical and every die shows 1; with v == 99
// every ability roll is a big fail.
type fixedSrc struct{ v int }

func (f fixedSrc) Intn(n int) int {
	if f.v >= n {
		return n - 1
	}
	return f.v
}

const (
	projectileDelay = 20 * time.Millisecond
	shotgunDelay    = 8 * time.Millisecond
)

func newSpecies(id string) *actor.Species {
	return &actor.Species{
		ID:             id,
		Name:           id,
		NameThe:        "The " + id,
		Glyph:          "m",
		HP:             16,
		Spirit:         10,
		Speed:          actor.Normal,
		Size:           actor.SizeHumanoid,
		CanLeaveCorpse: true,
		CanBleed:       true,
		TurnsAware:     5,
		Abilities:      actor.Abilities{Melee: 50, Ranged: 50},
	}
}

func playerSpecies() *actor.Species {
	sp := newSpecies("player")
	sp.Name, sp.NameThe, sp.Glyph = "Player", "The player", "@"
	sp.Humanoid = true
	return sp
}

func newWorld(t *testing.T, v int) (*actor.World, *world.Journal) {
	t.Helper()
	w := actor.NewWorld(world.NewMap(), dice.NewLoggedRoller(fixedSrc{v}, nil), nil)
	j := world.NewJournal()
	w.Sound, w.Log, w.Clock, w.Render = j, j, j, j
	w.ProjectileDelay = projectileDelay
	w.ShotgunDelay = shotgunDelay
	return w, j
}

func pos(x, y int) geom.Pos { return geom.Pos{X: x, Y: y} }

func fmtDice(rolls, sides int) string { return fmt.Sprintf("%dd%d", rolls, sides) }

func club() *inventory.Weapon {
	return inventory.NewWeapon(&inventory.WeaponDef{
		ID:             "club",
		Name:           "Club",
		NameA:          "a club",
		MeleeDice:      "2d6",
		DamageType:     "physical",
		MeleeMethod:    "blunt_medium",
		Weight:         inventory.WeightMedium,
		MeleeSfx:       "hit_medium",
		EffectiveRange: -1,
	})
}

func dagger() *inventory.Weapon {
	return inventory.NewWeapon(&inventory.WeaponDef{
		ID:             "dagger",
		Name:           "Dagger",
		NameA:          "a dagger",
		MeleeDice:      "1d4",
		DamageType:     "physical",
		MeleeMethod:    "piercing",
		Weight:         inventory.WeightLight,
		EffectiveRange: -1,
		Traits:         []string{inventory.TraitDagger},
	})
}

func pistol() *inventory.Weapon {
	return inventory.NewWeapon(&inventory.WeaponDef{
		ID:             "pistol",
		Name:           "Pistol",
		RangedDice:     "1d8",
		DamageType:     "physical",
		Weight:         inventory.WeightLight,
		EffectiveRange: -1,
		AmmoCapacity:   7,
		Ricochet:       true,
		RangedSound:    "I hear a gunshot.",
		Glyph:          "/",
	})
}

func tommyGun() *inventory.Weapon {
	return inventory.NewWeapon(&inventory.WeaponDef{
		ID:             "tommy_gun",
		Name:           "Tommy Gun",
		RangedDice:     "2d2",
		DamageType:     "physical",
		Weight:         inventory.WeightMedium,
		MachineGun:     true,
		EffectiveRange: -1,
		AmmoCapacity:   50,
		Glyph:          "/",
	})
}

func sawnOff() *inventory.Weapon {
	return inventory.NewWeapon(&inventory.WeaponDef{
		ID:             "sawed_off",
		Name:           "Sawed-off Shotgun",
		RangedDice:     "8d3",
		DamageType:     "physical",
		Weight:         inventory.WeightMedium,
		Shotgun:        true,
		EffectiveRange: -1,
		AmmoCapacity:   2,
	})
}
