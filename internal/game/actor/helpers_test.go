package actor_test

import (
	"testing"

	"github.com/cory-johannsen/crawl/internal/game/actor"
	"github.com/cory-johannsen/crawl/internal/game/dice"
	"github.com/cory-johannsen/crawl/internal/game/geom"
	"github.com/cory-johannsen/crawl/internal/game/world"
)

// fixedSrc always rolls v, clamped into range.
type fixedSrc struct{ v int }

func (f fixedSrc) Intn(n int) int {
	if f.v >= n {
		return n - 1
	}
	return f.v
}

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
	}
}

func playerSpecies() *actor.Species {
	sp := newSpecies("player")
	sp.Name, sp.NameThe, sp.Glyph = "Player", "The player", "@"
	sp.Humanoid = true
	return sp
}

// newWorld returns an open-floor world rolling v forever, with all output
// going to the returned journal.
func newWorld(t *testing.T, v int) (*actor.World, *world.Journal) {
	t.Helper()
	w := actor.NewWorld(world.NewMap(), dice.NewLoggedRoller(fixedSrc{v}, nil), nil)
	j := world.NewJournal()
	w.Sound, w.Log, w.Clock, w.Render = j, j, j, j
	return w, j
}

func pos(x, y int) geom.Pos { return geom.Pos{X: x, Y: y} }
