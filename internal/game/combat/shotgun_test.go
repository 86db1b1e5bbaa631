package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/crawl/internal/game/actor"
	"github.com/cory-johannsen/crawl/internal/game/combat"
	"github.com/cory-johannsen/crawl/internal/game/world"
)

// frail spawns a monster that any shotgun hit kills.
func frail(w *actor.World, x int, id string) *actor.Actor {
	a := actor.Spawn(w, pos(x, 10), newSpecies(id))
	a.HP = 1
	return a
}

func TestShotgun_HitsAtMostTwoActors(t *testing.T) {
	w, j, p := shooter(t, 0)
	g1 := frail(w, 3, "g1")
	g2 := frail(w, 4, "g2")
	g3 := frail(w, 5, "g3")
	wpn := sawnOff()

	require.True(t, combat.Ranged(w, p, wpn, g3.Pos))

	assert.Equal(t, actor.Corpse, g1.State)
	assert.Equal(t, actor.Corpse, g2.State)
	assert.True(t, g3.IsAlive())
	assert.Equal(t, []string{
		"I fire.",
		"The g1 is hit.",
		"The g1 dies.",
		"The g2 is hit.",
		"The g2 dies.",
	}, j.Texts())
	assert.Equal(t, 1, wpn.Ammo)
	assert.Equal(t, 1, j.Turns)
	require.Len(t, j.Sounds, 1)
	assert.Equal(t, "sawed_off", j.Sounds[0].Sfx)
	assert.Len(t, j.Frames, 2)
	for _, d := range j.Delays {
		assert.Equal(t, shotgunDelay, d)
	}
}

func TestShotgun_StopsAtSurvivor(t *testing.T) {
	w, _, p := shooter(t, 0)
	tough := actor.Spawn(w, pos(3, 10), newSpecies("ogre"))
	behind := frail(w, 4, "rat")

	require.True(t, combat.Ranged(w, p, sawnOff(), behind.Pos))

	assert.Equal(t, 8, tough.HP, "eight pellets each showing 1")
	assert.Equal(t, 1, behind.HP)
}

func TestShotgun_StopsOneCellPastKill(t *testing.T) {
	w, _, p := shooter(t, 0)
	frail(w, 3, "g1")
	far := actor.Spawn(w, pos(5, 10), newSpecies("g2"))

	require.True(t, combat.Ranged(w, p, sawnOff(), far.Pos))

	assert.Equal(t, 16, far.HP)
}

func TestShotgun_FloorAimStopsAtTarget(t *testing.T) {
	w, j, p := shooter(t, 0)
	ratSp := newSpecies("rat")
	ratSp.Size = actor.SizeFloor
	rat := actor.Spawn(w, pos(3, 10), ratSp)
	rat.HP = 1
	ghoul := actor.Spawn(w, pos(4, 10), newSpecies("ghoul"))

	require.True(t, combat.Ranged(w, p, sawnOff(), rat.Pos))

	assert.False(t, rat.IsAlive())
	assert.Equal(t, 16, ghoul.HP)
	assert.Equal(t, []string{"I fire.", "The rat is hit.", "The rat dies."}, j.Texts())
}

func TestShotgun_IgnoresSmallActorsOffTheAimCell(t *testing.T) {
	w, _, p := shooter(t, 0)
	ratSp := newSpecies("rat")
	ratSp.Size = actor.SizeFloor
	rat := actor.Spawn(w, pos(3, 10), ratSp)
	ghoul := actor.Spawn(w, pos(5, 10), newSpecies("ghoul"))

	require.True(t, combat.Ranged(w, p, sawnOff(), ghoul.Pos))

	assert.Equal(t, 16, rat.HP)
	assert.Equal(t, 8, ghoul.HP)
}

func TestShotgun_SplintersWoodenDoor(t *testing.T) {
	w, j, p := shooter(t, 0)
	w.Map.Put(pos(4, 10), world.NewDoor(world.DoorClosed))
	w.UpdatePlayerFOV()
	behind := actor.Spawn(w, pos(6, 10), newSpecies("ghoul"))

	require.True(t, combat.Ranged(w, p, sawnOff(), pos(8, 10)))

	assert.Equal(t, world.Rubble, w.Map.FeatureAt(pos(4, 10)).Kind)
	assert.Equal(t, 16, behind.HP)
	assert.Equal(t, []string{"I fire.", "The door is blown to splinters!"}, j.Texts())
	assert.Equal(t, []string{"", "I hear a ricochet."}, j.SoundMsgs())
	assert.Equal(t, [][]world.ProjectileMark{{{Pos: pos(4, 10), Glyph: '*'}}}, j.Frames)
}

func TestShotgun_WallStopsBlast(t *testing.T) {
	w, j, p := shooter(t, 0)
	w.Map.Put(pos(3, 10), world.NewFeature(world.Wall))
	behind := actor.Spawn(w, pos(4, 10), newSpecies("ghoul"))

	require.True(t, combat.Ranged(w, p, sawnOff(), behind.Pos))

	assert.Equal(t, 16, behind.HP)
	assert.Equal(t, world.Wall, w.Map.FeatureAt(pos(3, 10)).Kind)
	assert.Equal(t, []string{"I fire."}, j.Texts())
	assert.Equal(t, "I hear a ricochet.", j.Sounds[1].Msg)
}

func TestShotgun_NeedsALoadedShell(t *testing.T) {
	w, j, p := shooter(t, 0)
	ghoul := actor.Spawn(w, pos(4, 10), newSpecies("ghoul"))
	wpn := sawnOff()
	wpn.Ammo = 0

	assert.False(t, combat.Ranged(w, p, wpn, ghoul.Pos))
	assert.Equal(t, 16, ghoul.HP)
	assert.Empty(t, j.Sounds)
	assert.Equal(t, 0, j.Turns)
}
