package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cory-johannsen/crawl/internal/game/actor"
	"github.com/cory-johannsen/crawl/internal/game/combat"
	"github.com/cory-johannsen/crawl/internal/game/condition"
	"github.com/cory-johannsen/crawl/internal/game/world"
)

func TestTryKnockBack_PushesAwayFromOrigin(t *testing.T) {
	w, j, _ := shooter(t, 0)
	ghoul := actor.Spawn(w, pos(5, 5), newSpecies("ghoul"))

	assert.True(t, combat.TryKnockBack(w, ghoul, pos(4, 4), false))
	assert.Equal(t, pos(6, 6), ghoul.Pos)
	assert.Equal(t, []string{"The ghoul is knocked back!"}, j.Texts())
	assert.Equal(t, 1, j.Redraws)
}

func TestTryKnockBack_Blocked(t *testing.T) {
	cases := map[string]struct {
		setup func(w *actor.World, defender *actor.Actor)
		at    int
	}{
		"giant":    {func(_ *actor.World, d *actor.Actor) { d.Species.Size = actor.SizeGiant }, 5},
		"wall":     {func(w *actor.World, _ *actor.Actor) { w.Map.Put(pos(6, 5), world.NewFeature(world.Wall)) }, 5},
		"occupied": {func(w *actor.World, _ *actor.Actor) { actor.Spawn(w, pos(6, 5), newSpecies("rat")) }, 5},
		"map edge": {func(*actor.World, *actor.Actor) {}, 79},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			w, _ := newWorld(t, 0)
			ghoul := actor.Spawn(w, pos(tc.at, 5), newSpecies("ghoul"))
			tc.setup(w, ghoul)

			assert.False(t, combat.TryKnockBack(w, ghoul, pos(tc.at-1, 5), false))
			assert.Equal(t, pos(tc.at, 5), ghoul.Pos)
			assert.False(t, ghoul.Conditions.Has(condition.Nailed))
		})
	}
}

func TestTryKnockBack_SameCellIsNoop(t *testing.T) {
	w, _ := newWorld(t, 0)
	ghoul := actor.Spawn(w, pos(5, 5), newSpecies("ghoul"))

	assert.False(t, combat.TryKnockBack(w, ghoul, ghoul.Pos, false))
	assert.Equal(t, pos(5, 5), ghoul.Pos)
}

func TestTryKnockBack_SpikeNailsToWall(t *testing.T) {
	w, j, _ := shooter(t, 0)
	w.Map.Put(pos(6, 10), world.NewFeature(world.Wall))
	ghoul := actor.Spawn(w, pos(5, 10), newSpecies("ghoul"))

	assert.False(t, combat.TryKnockBack(w, ghoul, pos(4, 10), true))
	assert.Equal(t, pos(5, 10), ghoul.Pos)
	assert.Equal(t, combat.NailedTurns, ghoul.Conditions.TurnsLeft(condition.Nailed))
	assert.Equal(t, []string{"The ghoul is nailed to the wall!"}, j.Texts())
}

func TestTryKnockBack_SpikeIntoDoorDoesNotNail(t *testing.T) {
	w, _ := newWorld(t, 0)
	w.Map.Put(pos(6, 10), world.NewDoor(world.DoorClosed))
	ghoul := actor.Spawn(w, pos(5, 10), newSpecies("ghoul"))

	assert.False(t, combat.TryKnockBack(w, ghoul, pos(4, 10), true))
	assert.False(t, ghoul.Conditions.Has(condition.Nailed))
}

func TestTryKnockBack_PlayerViewFollows(t *testing.T) {
	w, j := newWorld(t, 0)
	p := actor.SpawnPlayer(w, pos(5, 5), playerSpecies())
	w.UpdatePlayerFOV()
	assert.False(t, w.Map.IsSeenByPlayer(pos(14, 5)))

	assert.True(t, combat.TryKnockBack(w, p, pos(4, 5), false))

	assert.Equal(t, pos(6, 5), p.Pos)
	assert.True(t, w.Map.IsSeenByPlayer(pos(14, 5)))
	assert.Equal(t, "I am knocked back!", j.Messages[0].Text)
	assert.True(t, j.Messages[0].Interrupt)
}

func TestTryKnockBack_UnseenMonsterMovesSilently(t *testing.T) {
	w, j, _ := shooter(t, 0)
	ghoul := actor.Spawn(w, pos(40, 10), newSpecies("ghoul"))

	assert.True(t, combat.TryKnockBack(w, ghoul, pos(39, 10), false))
	assert.Equal(t, pos(41, 10), ghoul.Pos)
	assert.Empty(t, j.Texts())
}
