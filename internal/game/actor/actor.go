package actor

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/cory-johannsen/crawl/internal/game/condition"
	"github.com/cory-johannsen/crawl/internal/game/geom"
	"github.com/cory-johannsen/crawl/internal/game/inventory"
)

// ID is an opaque handle to an actor in a Roster. The zero ID refers to no
// actor.
type ID = uuid.UUID

// State is the life-cycle stage of an actor.
type State int

const (
	Alive State = iota
	Corpse
	Destroyed
)

func (s State) String() string {
	switch s {
	case Alive:
		return "alive"
	case Corpse:
		return "corpse"
	case Destroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// CorpseGlyph is drawn for every corpse.
const CorpseGlyph = '&'

// Actor is one creature, the player included.
//
// Invariant: once alive, 0 <= HP is only violated transiently inside Hit;
// Spirit >= 0; Conditions and Inv are exclusively owned.
type Actor struct {
	ID      ID
	Pos     geom.Pos
	Species *Species
	State   State
	Glyph   rune

	HP        int
	HPMax     int
	Spirit    int
	SpiritMax int

	Conditions condition.Set
	Inv        inventory.Inventory

	// Leader is a weak handle resolved through the roster; a stale or zero
	// handle means no leader.
	Leader ID
	// AwareCounter counts down the turns a monster stays alert; > 0 is aware.
	AwareCounter int
	// Stealth is true while a monster is hidden from the player.
	Stealth bool
	// PlayerAwareOfMe counts down the turns the player remembers a monster.
	PlayerAwareOfMe int

	player bool
}

func newActor(pos geom.Pos, sp *Species) *Actor {
	return &Actor{
		ID:        uuid.New(),
		Pos:       pos,
		Species:   sp,
		State:     Alive,
		Glyph:     sp.GlyphRune(),
		HP:        sp.HP,
		HPMax:     sp.HP,
		Spirit:    sp.Spirit,
		SpiritMax: sp.Spirit,
	}
}

// IsPlayer reports whether the actor is the player.
func (a *Actor) IsPlayer() bool { return a.player }

// IsAlive reports whether the actor is alive.
func (a *Actor) IsAlive() bool { return a.State == Alive }

// IsCorpse reports whether the actor is a corpse.
func (a *Actor) IsCorpse() bool { return a.State == Corpse }

// IsHumanoid reports whether the actor's species is humanoid.
func (a *Actor) IsHumanoid() bool { return a.Species.Humanoid }

// IsAware reports whether a monster is currently alert.
func (a *Actor) IsAware() bool { return a.AwareCounter > 0 }

// NameThe returns the capitalised definite name, e.g. "The ghoul".
func (a *Actor) NameThe() string {
	if a.player {
		return "I"
	}
	return a.Species.NameThe
}

// CorpseNameThe returns the definite name of the actor's corpse.
func (a *Actor) CorpseNameThe() string {
	return "The corpse of " + lowerFirst(a.Species.NameThe)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// Speed returns the species speed shifted one tier by slowness or haste.
//
// Postcondition: Sluggish <= result <= Fastest.
func (a *Actor) Speed() Speed {
	s := a.Species.Speed
	if s < Sluggish || s >= speedCount {
		panic(fmt.Sprintf("actor: speed %d out of range for %s", int(s), a.Species.ID))
	}
	return max(Sluggish, min(s+Speed(a.Conditions.SpeedDelta()), speedCount-1))
}

// LeaderActor resolves the leader handle, returning nil when there is no
// leader or the handle is stale.
func (a *Actor) LeaderActor(w *World) *Actor {
	if a.Leader == uuid.Nil {
		return nil
	}
	return w.Actors.Get(a.Leader)
}

// IsLedBy reports whether other is this actor's current leader.
func (a *Actor) IsLedBy(w *World, other *Actor) bool {
	return other != nil && a.LeaderActor(w) == other
}

// AddLight marks the cells a burning actor lights up.
func (a *Actor) AddLight(light *geom.Grid) {
	if a.State != Alive || !a.Conditions.Has(condition.Burning) {
		return
	}
	for _, d := range geom.Neighbourhood {
		if p := a.Pos.Add(d); geom.InsideMap(p) {
			light.Set(p, true)
		}
	}
}
