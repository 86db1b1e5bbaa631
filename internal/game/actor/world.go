package actor

import (
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/crawl/internal/game/condition"
	"github.com/cory-johannsen/crawl/internal/game/dice"
	"github.com/cory-johannsen/crawl/internal/game/fov"
	"github.com/cory-johannsen/crawl/internal/game/geom"
	"github.com/cory-johannsen/crawl/internal/game/inventory"
	"github.com/cory-johannsen/crawl/internal/game/world"
)

// PlayerBonus holds the player's background and trait flags that combat
// consults.
type PlayerBonus struct {
	// Vigilant makes the player aware of every melee attacker.
	Vigilant bool
	// Vicious adds 50% to backstab damage.
	Vicious bool
	// Rogue grants +25 ranged hit chance against unaware monsters.
	Rogue bool
	// UndeadBane adds damage against undead and defeats ethereality.
	UndeadBane bool
}

// World is the context every simulation operation runs against: the map,
// the actor roster, the random source and the external collaborators.
//
// A World is not safe for concurrent use; one turn runs at a time.
type World struct {
	Map    *world.Map
	Actors *Roster
	Rng    *dice.Roller

	Sound  world.SoundEmitter
	Log    world.MessageLog
	Render world.Renderer
	Clock  world.Clock

	// Conditions and Hooks resolve data-driven condition behaviour; both may
	// be nil.
	Conditions *condition.Registry
	Hooks      condition.HookCaller
	// Items builds intrinsic weapons on spawn; may be nil.
	Items *inventory.Registry
	Kills *KillTracker

	Logger *zap.Logger

	Player *Actor
	// PlayerTarget is the monster the player last aimed at.
	PlayerTarget ID
	Bonus        PlayerBonus
	// BotMode stops the player from losing HP or spirit.
	BotMode bool

	ProjectileDelay time.Duration
	ShotgunDelay    time.Duration
}

// NewWorld returns a World over m rolling with rng. Sounds, messages and
// turn ticks go to a fresh Journal, rendering to a NopRenderer. A nil
// logger is replaced by a no-op logger.
//
// Postcondition: every collaborator field is non-nil except Conditions,
// Hooks and Items.
func NewWorld(m *world.Map, rng *dice.Roller, logger *zap.Logger) *World {
	if logger == nil {
		logger = zap.NewNop()
	}
	j := world.NewJournal()
	return &World{
		Map:    m,
		Actors: NewRoster(),
		Rng:    rng,
		Sound:  j,
		Log:    j,
		Render: world.NopRenderer{},
		Clock:  j,
		Kills:  NewKillTracker(),
		Logger: logger,
	}
}

// Spawn places a new monster of species sp at pos and adds it to the roster.
// The species' intrinsic weapon is created when an item registry is set.
//
// Precondition: sp.Validate() == nil.
// Postcondition: the actor is alive with full HP and spirit.
func Spawn(w *World, pos geom.Pos, sp *Species) *Actor {
	a := newActor(pos, sp)
	if sp.Intrinsic != "" && w.Items != nil {
		wpn, err := w.Items.NewWeapon(sp.Intrinsic)
		if err != nil {
			w.Logger.Warn("intrinsic weapon unavailable",
				zap.String("species", sp.ID), zap.Error(err))
		} else {
			a.Inv.Intrinsics = append(a.Inv.Intrinsics, wpn)
		}
	}
	w.Actors.Add(a)
	return a
}

// SpawnPlayer spawns the player and records it on the World.
//
// Precondition: no player has been spawned yet.
func SpawnPlayer(w *World, pos geom.Pos, sp *Species) *Actor {
	if w.Player != nil {
		panic("actor: SpawnPlayer: player already spawned")
	}
	a := Spawn(w, pos, sp)
	a.player = true
	w.Player = a
	return a
}

// PlayerSees reports whether the player can see a.
func (w *World) PlayerSees(a *Actor) bool {
	return w.Player != nil && w.Player.CanSeeActor(w, a, nil)
}

// PlayerAlive reports whether a player exists and is alive.
func (w *World) PlayerAlive() bool {
	return w.Player != nil && w.Player.IsAlive()
}

// UpdateLight recasts the light of every burning actor onto the map.
func (w *World) UpdateLight() {
	var light geom.Grid
	for _, a := range w.Actors.All() {
		a.AddLight(&light)
	}
	w.Map.SetActorLight(light)
}

// UpdatePlayerFOV recasts actor light, then recomputes the map's
// seen-by-player flags from the player's position and records the
// monsters now in sight. A player that cannot see only sees its own cell.
func (w *World) UpdatePlayerFOV() {
	w.UpdateLight()
	if w.Player == nil {
		return
	}
	p := w.Player
	if !p.Conditions.AllowSee() {
		for x := 0; x < geom.MapW; x++ {
			for y := 0; y < geom.MapH; y++ {
				w.Map.SetSeenByPlayer(geom.Pos{X: x, Y: y}, false)
			}
		}
		w.Map.SetSeenByPlayer(p.Pos, true)
		return
	}
	obst := w.Map.BlockGrid(world.BlocksLOS, geom.MapRange)
	fov.PlayerField(&obst, w.Map, p.Pos)
	if w.Kills == nil {
		return
	}
	for _, a := range w.Actors.All() {
		if !a.player && w.PlayerSees(a) {
			w.Kills.OnSighted(a)
		}
	}
}

func (w *World) post(text string, color world.Color, interrupt bool) {
	w.Log.Post(text, color, interrupt)
}
