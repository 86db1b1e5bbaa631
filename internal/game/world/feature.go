// Package world holds the map grid, its features, and the contracts of the
// collaborators the simulation reports to (sound, messages, rendering and
// the turn clock).
package world

import "fmt"

// FeatureKind is the closed set of terrain variants.
type FeatureKind int

const (
	Floor FeatureKind = iota
	Wall
	Door
	Trap
	Rubble
	Chasm
)

type capabilities struct {
	name          string
	losPassable   bool
	projPassable  bool
	movePassable  bool
	canHaveCorpse bool
	bottomless    bool
	dodgeMod      int
}

// caps is indexed by FeatureKind. Door entries describe a closed door; the
// open state is resolved in the Feature methods.
var caps = [...]capabilities{
	Floor:  {name: "floor", losPassable: true, projPassable: true, movePassable: true, canHaveCorpse: true},
	Wall:   {name: "wall"},
	Door:   {name: "door"},
	Trap:   {name: "trap", losPassable: true, projPassable: true, movePassable: true, canHaveCorpse: true},
	Rubble: {name: "rubble", losPassable: true, projPassable: true, movePassable: true, canHaveCorpse: true, dodgeMod: -10},
	Chasm:  {name: "chasm", losPassable: true, projPassable: true, movePassable: true, bottomless: true},
}

func (k FeatureKind) String() string {
	if k < 0 || int(k) >= len(caps) {
		return fmt.Sprintf("feature(%d)", int(k))
	}
	return caps[k].name
}

// Material of a door.
type Material int

const (
	Wood Material = iota
	Metal
)

// DoorState is the state a door spawns in.
type DoorState int

const (
	DoorOpen DoorState = iota
	DoorClosed
	DoorStuck
	DoorSecret
	DoorSecretAndStuck
	// DoorAny must be resolved by the map generator before a door is built.
	DoorAny
)

// DoorData is the mutable state of one door.
//
// Invariant: a secret door is never open.
type DoorData struct {
	Open     bool
	Stuck    bool
	Secret   bool
	Material Material
	Spikes   int
}

// TrapKind names what a trap does.
type TrapKind int

const (
	TrapWeb TrapKind = iota
	TrapSpike
	TrapBlade
	TrapAlarm
	TrapTeleport
)

// TrapData is the mutable state of one trap.
type TrapData struct {
	Kind   TrapKind
	Hidden bool
	// Holding is true while a web has caught whoever stands on it.
	Holding bool
}

// Feature is the terrain on one cell. Door and Trap carry their state in
// the matching payload; the payload of any other kind is nil.
type Feature struct {
	Kind FeatureKind
	Door *DoorData
	Trap *TrapData
}

// NewFeature returns a plain feature of kind k.
//
// Precondition: k is neither Door nor Trap.
func NewFeature(k FeatureKind) Feature {
	if k == Door || k == Trap {
		panic(fmt.Sprintf("world: NewFeature(%v): use NewDoor or NewTrap", k))
	}
	return Feature{Kind: k}
}

// NewDoor builds a wooden door in the given spawn state.
//
// Precondition: state is not DoorAny.
func NewDoor(state DoorState) Feature {
	d := &DoorData{Material: Wood}
	switch state {
	case DoorOpen:
		d.Open = true
	case DoorClosed:
	case DoorStuck:
		d.Stuck = true
	case DoorSecret:
		d.Secret = true
	case DoorSecretAndStuck:
		d.Secret = true
		d.Stuck = true
	default:
		panic(fmt.Sprintf("world: NewDoor: unresolved door state %d", state))
	}
	return Feature{Kind: Door, Door: d}
}

// NewTrap builds a trap of kind k.
func NewTrap(k TrapKind, hidden bool) Feature {
	return Feature{Kind: Trap, Trap: &TrapData{Kind: k, Hidden: hidden}}
}

func (f Feature) isOpenDoor() bool {
	if f.Kind != Door {
		return false
	}
	if f.Door.Secret && f.Door.Open {
		panic("world: door is both secret and open")
	}
	return f.Door.Open
}

// IsLOSPassable reports whether sight passes through the cell.
func (f Feature) IsLOSPassable() bool {
	return caps[f.Kind].losPassable || f.isOpenDoor()
}

// IsProjectilePassable reports whether projectiles fly through the cell.
func (f Feature) IsProjectilePassable() bool {
	return caps[f.Kind].projPassable || f.isOpenDoor()
}

// IsMovePassable reports whether a walking actor can enter the cell.
func (f Feature) IsMovePassable() bool {
	return caps[f.Kind].movePassable || f.isOpenDoor()
}

// CanHaveCorpse reports whether a corpse may rest on the cell.
func (f Feature) CanHaveCorpse() bool {
	return caps[f.Kind].canHaveCorpse || f.isOpenDoor()
}

// IsBottomless reports whether anything dying here is lost for good.
func (f Feature) IsBottomless() bool {
	return caps[f.Kind].bottomless
}

// DodgeModifier is added to a defender's dodge skill on this cell.
func (f Feature) DodgeModifier() int {
	return caps[f.Kind].dodgeMod
}

// IsVisibleTrap reports whether the feature is a trap the player knows of.
func (f Feature) IsVisibleTrap() bool {
	return f.Kind == Trap && !f.Trap.Hidden
}

// IsHoldingWeb reports whether the feature is a revealed web that has caught
// its occupant.
func (f Feature) IsHoldingWeb() bool {
	return f.IsVisibleTrap() && f.Trap.Kind == TrapWeb && f.Trap.Holding
}

// BlocksLOS, BlocksProjectiles and BlocksMove are the predicates used to
// build obstruction grids.
func BlocksLOS(f Feature) bool         { return !f.IsLOSPassable() }
func BlocksProjectiles(f Feature) bool { return !f.IsProjectilePassable() }
func BlocksMove(f Feature) bool        { return !f.IsMovePassable() }
