package simulate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/crawl/internal/game/actor"
	"github.com/cory-johannsen/crawl/internal/game/dice"
	"github.com/cory-johannsen/crawl/internal/game/geom"
	"github.com/cory-johannsen/crawl/internal/game/world"
)

func listener(id string) *actor.Species {
	return &actor.Species{
		ID: id, Name: id, NameThe: "The " + id, Glyph: "m",
		HP: 10, Spirit: 10, Size: actor.SizeHumanoid, TurnsAware: 5,
	}
}

func newBus(t *testing.T) (*actor.World, *world.Journal, *SoundBus) {
	t.Helper()
	w := actor.NewWorld(world.NewMap(), dice.NewLoggedRoller(fixedSrc{0}, nil), nil)
	j := world.NewJournal()
	w.Log = j
	bus := NewSoundBus(w, j)
	w.Sound = bus
	actor.SpawnPlayer(w, pos(1, 1), listener("player"))
	return w, j, bus
}

func TestSoundBus_MessageWhenOriginUnseen(t *testing.T) {
	_, j, bus := newBus(t)
	bus.Emit(world.Sound{Msg: "I hear a gunshot.", Origin: pos(10, 10), IgnoreMsgIfOriginSeen: true})
	assert.Equal(t, []string{"I hear a gunshot."}, j.Texts())
	assert.Len(t, j.Sounds, 1)
}

func TestSoundBus_MessageSuppressedWhenOriginSeen(t *testing.T) {
	w, j, bus := newBus(t)
	w.Map.SetSeenByPlayer(pos(10, 10), true)
	bus.Emit(world.Sound{Msg: "I hear a gunshot.", Origin: pos(10, 10), IgnoreMsgIfOriginSeen: true})
	assert.Empty(t, j.Texts())
	assert.Len(t, j.Sounds, 1, "the sound is still recorded")

	bus.Emit(world.Sound{Msg: "I hear a door crashing open!", Origin: pos(10, 10)})
	assert.Equal(t, []string{"I hear a door crashing open!"}, j.Texts())
}

func TestSoundBus_AlertsByVolume(t *testing.T) {
	tests := []struct {
		volume  world.Volume
		nearAw  bool
		midAw   bool
		farAw   bool
		awakens string
	}{
		{world.VolumeLow, true, false, false, "low reaches the near listener only"},
		{world.VolumeHigh, true, true, false, "high reaches the mid listener too"},
	}
	for _, tt := range tests {
		t.Run(tt.awakens, func(t *testing.T) {
			w, _, bus := newBus(t)
			near := actor.Spawn(w, pos(12, 10), listener("near"))
			mid := actor.Spawn(w, pos(22, 10), listener("mid"))
			far := actor.Spawn(w, pos(30, 10), listener("far"))

			bus.Emit(world.Sound{Origin: pos(10, 10), Volume: tt.volume, AlertsMonsters: true})

			assert.Equal(t, tt.nearAw, near.IsAware())
			assert.Equal(t, tt.midAw, mid.IsAware())
			assert.Equal(t, tt.farAw, far.IsAware())
			assert.Zero(t, w.Player.AwareCounter)
		})
	}
}

func TestSoundBus_SourceNotAlertedBySelf(t *testing.T) {
	w, _, bus := newBus(t)
	src := actor.Spawn(w, pos(10, 10), listener("shooter"))
	other := actor.Spawn(w, pos(11, 10), listener("bystander"))

	bus.Emit(world.Sound{Origin: src.Pos, SourceID: src.ID.String(), AlertsMonsters: true})
	assert.False(t, src.IsAware())
	assert.Equal(t, 5, other.AwareCounter)
}

func TestSoundBus_QuietSoundAlertsNobody(t *testing.T) {
	w, _, bus := newBus(t)
	m := actor.Spawn(w, pos(11, 10), listener("sleeper"))
	bus.Emit(world.Sound{Msg: "I hear a loud banging on a door.", Origin: pos(10, 10)})
	assert.False(t, m.IsAware())
}

func TestSoundBus_KeepsLongerAwareness(t *testing.T) {
	w, _, bus := newBus(t)
	m := actor.Spawn(w, pos(11, 10), listener("hunter"))
	m.AwareCounter = 9
	bus.Emit(world.Sound{Origin: pos(10, 10), AlertsMonsters: true})
	assert.Equal(t, 9, m.AwareCounter)
}

func TestSoundBus_Property_AlertWithinRadius(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w, _, bus := newBus(t)
		x := rapid.IntRange(3, geom.MapW-1).Draw(rt, "x")
		y := rapid.IntRange(3, geom.MapH-1).Draw(rt, "y")
		loud := rapid.Bool().Draw(rt, "loud")
		m := actor.Spawn(w, pos(x, y), listener("m"))

		s := world.Sound{Origin: pos(3, 3), AlertsMonsters: true}
		radius := LowVolumeRadius
		if loud {
			s.Volume = world.VolumeHigh
			radius = HighVolumeRadius
		}
		bus.Emit(s)
		require.Equal(t, geom.KingDist(m.Pos, s.Origin) <= radius, m.IsAware())
	})
}
