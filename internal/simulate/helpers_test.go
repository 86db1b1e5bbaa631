package simulate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/crawl/internal/config"
	"github.com/cory-johannsen/crawl/internal/game/actor"
	"github.com/cory-johannsen/crawl/internal/game/dice"
	"github.com/cory-johannsen/crawl/internal/game/geom"
	"github.com/cory-johannsen/crawl/internal/game/world"
)

// fixedSrc always rolls v, clamped into range. v == 0 makes every ability
// roll critical and every die show 1; v == 99 makes every ability roll a
// big fail.
type fixedSrc struct{ v int }

func (f fixedSrc) Intn(n int) int {
	if f.v >= n {
		return n - 1
	}
	return f.v
}

func pos(x, y int) geom.Pos { return geom.Pos{X: x, Y: y} }

// repoRoot walks up from the test's working directory to the directory
// holding go.mod.
func repoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		require.NotEqual(t, dir, parent, "go.mod not found above test directory")
		dir = parent
	}
}

func repoContentConfig(t *testing.T) config.ContentConfig {
	t.Helper()
	root := repoRoot(t)
	return config.ContentConfig{
		SpeciesDir:    filepath.Join(root, "content", "species"),
		WeaponsDir:    filepath.Join(root, "content", "weapons"),
		ArmorDir:      filepath.Join(root, "content", "armor"),
		ConditionsDir: filepath.Join(root, "content", "conditions"),
		ScriptsDir:    filepath.Join(root, "content", "scripts"),
		AIDir:         filepath.Join(root, "content", "ai"),
		LevelFile:     filepath.Join(root, "content", "levels", "arena.yaml"),
	}
}

// openRoom is a lit 12x8 room with the player at (2,2) and no spawns.
const openRoom = `
level:
  name: room
  rows:
    - "############"
    - "#..........#"
    - "#..........#"
    - "#..........#"
    - "#..........#"
    - "#..........#"
    - "#..........#"
    - "############"
  player: {x: 2, y: 2}
`

// encounter builds a Runner over the built-in content with levelYAML as
// the level, every roll showing v.
func encounter(t *testing.T, v int, levelYAML string, opts Options) *Runner {
	t.Helper()
	return encounterWith(t, config.ContentConfig{}, v, levelYAML, opts)
}

// encounterWith is encounter over the content cfg names.
func encounterWith(t *testing.T, cfg config.ContentConfig, v int, levelYAML string, opts Options) *Runner {
	t.Helper()
	logger := zaptest.NewLogger(t)
	rng := dice.NewLoggedRoller(fixedSrc{v}, nil)
	c, err := LoadContent(cfg, rng, logger, 0)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	c.Level, err = world.LoadLevelFromBytes([]byte(levelYAML))
	require.NoError(t, err)
	require.NoError(t, c.Validate())
	r, err := NewRunner(c, rng, logger, config.EngineConfig{}, opts)
	require.NoError(t, err)
	return r
}

// spawn adds a monster of the built-in species id at p.
func spawn(t *testing.T, r *Runner, id string, p geom.Pos) *actor.Actor {
	t.Helper()
	var sp *actor.Species
	for _, s := range builtinSpecies() {
		if s.ID == id {
			sp = s
		}
	}
	require.NotNil(t, sp, "unknown species %q", id)
	a := actor.Spawn(r.World, p, sp)
	r.World.UpdatePlayerFOV()
	return a
}
