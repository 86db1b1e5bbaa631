package world

import (
	"github.com/cory-johannsen/crawl/internal/game/damage"
	"github.com/cory-johannsen/crawl/internal/game/dice"
	"github.com/cory-johannsen/crawl/internal/game/geom"
	"github.com/cory-johannsen/crawl/internal/game/inventory"
)

// Cell is the state of one map square.
type Cell struct {
	Feature      Feature
	Lit          bool
	Dark         bool
	SeenByPlayer bool
	Blood        bool
	Gore         bool
}

// Map is the level grid. It is not safe for concurrent use.
type Map struct {
	cells [geom.MapW][geom.MapH]Cell
	// actorLight marks cells lit by burning actors since the last
	// SetActorLight.
	actorLight geom.Grid
	// Floor holds items lying on cells.
	Floor *inventory.FloorManager
}

// NewMap returns a map with floor on every cell.
func NewMap() *Map {
	return &Map{Floor: inventory.NewFloorManager()}
}

// Cell returns the cell at p for in-place reads and writes.
//
// Precondition: geom.InsideMap(p).
func (m *Map) Cell(p geom.Pos) *Cell {
	return &m.cells[p.X][p.Y]
}

// FeatureAt returns the terrain at p.
func (m *Map) FeatureAt(p geom.Pos) Feature {
	return m.cells[p.X][p.Y].Feature
}

// Put replaces the terrain at p.
func (m *Map) Put(p geom.Pos, f Feature) {
	m.cells[p.X][p.Y].Feature = f
}

// Fill puts a plain feature of kind k in every cell of r.
func (m *Map) Fill(r geom.Range, k FeatureKind) {
	for x := r.Min.X; x < r.Max.X; x++ {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			m.cells[x][y].Feature = NewFeature(k)
		}
	}
}

// IsLit reports whether p is lit by the level or by a burning actor.
func (m *Map) IsLit(p geom.Pos) bool {
	return m.cells[p.X][p.Y].Lit || m.actorLight.At(p)
}

func (m *Map) IsDark(p geom.Pos) bool { return m.cells[p.X][p.Y].Dark }

// SetActorLight replaces the light cast by actors. Level lighting is kept.
func (m *Map) SetActorLight(g geom.Grid) {
	m.actorLight = g
}

// IsSeenByPlayer reports the persistent player visibility flag.
func (m *Map) IsSeenByPlayer(p geom.Pos) bool {
	return geom.InsideMap(p) && m.cells[p.X][p.Y].SeenByPlayer
}

// SetSeenByPlayer stores the player visibility flag for p.
func (m *Map) SetSeenByPlayer(p geom.Pos, seen bool) {
	m.cells[p.X][p.Y].SeenByPlayer = seen
}

// BlockGrid marks every cell of region whose feature satisfies blocks.
// Cells outside region are false.
func (m *Map) BlockGrid(blocks func(Feature) bool, region geom.Range) geom.Grid {
	var g geom.Grid
	region = region.Intersect(geom.MapRange)
	for x := region.Min.X; x < region.Max.X; x++ {
		for y := region.Min.Y; y < region.Max.Y; y++ {
			if blocks(m.cells[x][y].Feature) {
				g[x][y] = true
			}
		}
	}
	return g
}

// MakeBlood splatters blood on p.
func (m *Map) MakeBlood(p geom.Pos) {
	m.cells[p.X][p.Y].Blood = true
}

// MakeGore leaves gore on p.
func (m *Map) MakeGore(p geom.Pos) {
	m.cells[p.X][p.Y].Gore = true
}

// HitSource describes who delivered a hit to a feature.
type HitSource struct {
	IsPlayer bool
	Weak     bool
	// SeenByPlayer is true when the player can see the hitter.
	SeenByPlayer bool
	ID           string
}

// HitEnv is what a feature hit needs from the simulation.
type HitEnv struct {
	Rng   *dice.Roller
	Sound SoundEmitter
	Log   MessageLog
}

// HitFeature applies damage to the terrain at p. Only physical damage to
// doors has an effect: a forced hit always smashes the door, a shotgun blast
// splinters a closed wooden door seven times in ten, and a kick may crash
// it open.
func (m *Map) HitFeature(env HitEnv, p geom.Pos, dmgType damage.Type, method damage.Method, src HitSource) {
	f := m.FeatureAt(p)
	if f.Kind != Door || dmgType != damage.Physical {
		return
	}
	d := f.Door
	switch method {
	case damage.Forced:
		m.Put(p, NewFeature(Rubble))
	case damage.Shotgun:
		if d.Open || d.Material != Wood {
			return
		}
		if env.Rng.Fraction(7, 10) {
			if m.IsSeenByPlayer(p) {
				env.Log.Post(doorArticle(d)+" door is blown to splinters!", ColorDefault, false)
			}
			m.Put(p, NewFeature(Rubble))
		}
	case damage.Kick:
		m.kickDoor(env, p, d, src)
	}
}

func doorArticle(d *DoorData) string {
	if d.Secret {
		return "A"
	}
	return "The"
}

func (m *Map) kickDoor(env HitEnv, p geom.Pos, d *DoorData, src HitSource) {
	cellSeen := m.IsSeenByPlayer(p)
	if d.Material != Wood {
		if src.IsPlayer && cellSeen && !d.Secret {
			env.Log.Post("It seems futile.", ColorNote, false)
		}
		return
	}

	if src.IsPlayer {
		num := max(1, 4-d.Spikes)
		if src.Weak {
			if cellSeen && !d.Secret {
				env.Sound.Emit(Sound{Sfx: "door_bang", Origin: p, SourceID: src.ID, AlertsMonsters: true})
				env.Log.Post("It seems futile.", ColorNote, false)
			}
			return
		}
		if env.Rng.Fraction(num, 10) {
			env.Sound.Emit(Sound{Sfx: "door_break", Origin: p, SourceID: src.ID, IgnoreMsgIfOriginSeen: true, AlertsMonsters: true})
			if cellSeen {
				env.Log.Post(doorArticle(d)+" door crashes open!", ColorDefault, false)
			} else {
				env.Log.Post("I feel a door crashing open!", ColorDefault, false)
			}
			m.Put(p, NewFeature(Rubble))
			return
		}
		env.Sound.Emit(Sound{Sfx: "door_bang", Origin: p, SourceID: src.ID, AlertsMonsters: true})
		return
	}

	num := max(1, 10-d.Spikes*3)
	if !src.Weak && env.Rng.Fraction(num, 100) {
		env.Sound.Emit(Sound{
			Msg: "I hear a door crashing open!", Sfx: "door_break", Origin: p, SourceID: src.ID,
			Volume: VolumeHigh, IgnoreMsgIfOriginSeen: true,
		})
		switch {
		case src.SeenByPlayer:
			env.Log.Post("The door crashes open!", ColorDefault, false)
		case cellSeen:
			env.Log.Post("A door crashes open!", ColorDefault, false)
		}
		m.Put(p, NewFeature(Rubble))
		return
	}
	env.Sound.Emit(Sound{Msg: "I hear a loud banging on a door.", Sfx: "door_bang", Origin: p, SourceID: src.ID})
}
