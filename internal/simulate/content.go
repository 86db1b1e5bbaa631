// Package simulate drives headless combat encounters: it loads content,
// populates a level, and plays rounds of player and monster turns through
// the combat package.
package simulate

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/crawl/internal/config"
	"github.com/cory-johannsen/crawl/internal/game/actor"
	"github.com/cory-johannsen/crawl/internal/game/ai"
	"github.com/cory-johannsen/crawl/internal/game/condition"
	"github.com/cory-johannsen/crawl/internal/game/dice"
	"github.com/cory-johannsen/crawl/internal/game/inventory"
	"github.com/cory-johannsen/crawl/internal/game/world"
	"github.com/cory-johannsen/crawl/internal/scripting"
)

// Content is everything an encounter is built from.
type Content struct {
	Bestiary   actor.Bestiary
	Items      *inventory.Registry
	Conditions *condition.Registry
	// Scripts is nil when no script directory is configured.
	Scripts *scripting.Manager
	// Planners holds one planner per behaviour domain; their Lua
	// preconditions run on Scripts.
	Planners *ai.Registry
	Level    *world.Level
}

// Close releases the script VM, if any.
func (c *Content) Close() {
	if c.Scripts != nil {
		c.Scripts.Close()
	}
}

// LoadContent reads the content named by cfg. Every empty path falls back
// to the built-in set for that kind of content.
//
// Precondition: roller and logger must be non-nil.
// Postcondition: Returns Content whose cross references all resolve, or an
// error describing every dangling reference.
func LoadContent(cfg config.ContentConfig, roller *dice.Roller, logger *zap.Logger, instLimit int) (*Content, error) {
	species := builtinSpecies()
	if cfg.SpeciesDir != "" {
		var err error
		if species, err = actor.LoadSpecies(cfg.SpeciesDir); err != nil {
			return nil, fmt.Errorf("loading species: %w", err)
		}
	}
	bestiary, err := actor.NewBestiary(species)
	if err != nil {
		return nil, fmt.Errorf("indexing species: %w", err)
	}

	weapons := builtinWeapons()
	if cfg.WeaponsDir != "" {
		if weapons, err = inventory.LoadWeapons(cfg.WeaponsDir); err != nil {
			return nil, err
		}
	}
	armors := builtinArmor()
	if cfg.ArmorDir != "" {
		if armors, err = inventory.LoadArmors(cfg.ArmorDir); err != nil {
			return nil, err
		}
	}
	items := inventory.NewRegistry()
	for _, w := range weapons {
		if err := items.RegisterWeapon(w); err != nil {
			return nil, err
		}
	}
	for _, a := range armors {
		if err := items.RegisterArmor(a); err != nil {
			return nil, err
		}
	}

	var conds *condition.Registry
	if cfg.ConditionsDir != "" {
		if conds, err = condition.LoadDirectory(cfg.ConditionsDir); err != nil {
			return nil, fmt.Errorf("loading conditions: %w", err)
		}
	} else {
		conds = condition.NewRegistry()
		for _, d := range builtinConditions() {
			if err := conds.Register(d); err != nil {
				return nil, err
			}
		}
	}

	var level *world.Level
	if cfg.LevelFile != "" {
		level, err = world.LoadLevelFromFile(cfg.LevelFile)
	} else {
		level, err = world.LoadLevelFromBytes([]byte(arenaYAML))
	}
	if err != nil {
		return nil, fmt.Errorf("loading level: %w", err)
	}

	domains := builtinDomains()
	if cfg.AIDir != "" {
		if domains, err = ai.LoadDomains(cfg.AIDir); err != nil {
			return nil, fmt.Errorf("loading ai domains: %w", err)
		}
	}

	c := &Content{Bestiary: bestiary, Items: items, Conditions: conds, Level: level}
	if cfg.ScriptsDir != "" {
		mgr := scripting.NewManager(roller, logger)
		if err := mgr.Load(cfg.ScriptsDir, instLimit); err != nil {
			return nil, err
		}
		c.Scripts = mgr
	}

	c.Planners = ai.NewRegistry()
	var caller ai.ScriptCaller
	if c.Scripts != nil {
		caller = c.Scripts
	}
	for _, d := range domains {
		if err := c.Planners.Register(d, caller); err != nil {
			c.Close()
			return nil, err
		}
	}

	if err := c.Validate(); err != nil {
		c.Close()
		return nil, err
	}

	logger.Info("content loaded",
		zap.Int("species", len(bestiary)),
		zap.Int("weapons", len(weapons)),
		zap.Int("armor", len(armors)),
		zap.Int("conditions", conds.Len()),
		zap.Int("ai_domains", c.Planners.Len()),
		zap.String("level", level.Name),
		zap.Int("spawns", len(level.Spawns)),
		zap.Bool("scripts", c.Scripts != nil),
	)
	return c, nil
}

// Validate checks that every id the content refers to is defined.
//
// Postcondition: Returns nil if all references resolve, or an error
// describing all violations.
func (c *Content) Validate() error {
	var errs []error
	if c.Bestiary[PlayerSpeciesID] == nil {
		errs = append(errs, fmt.Errorf("species %q is required", PlayerSpeciesID))
	}
	for _, sp := range c.Bestiary {
		if sp.Intrinsic != "" && c.Items.Weapon(sp.Intrinsic) == nil {
			errs = append(errs, fmt.Errorf("species %q: unknown intrinsic weapon %q", sp.ID, sp.Intrinsic))
		}
		if c.Planners != nil {
			if _, ok := c.Planners.PlannerFor(aiDomain(sp)); !ok {
				errs = append(errs, fmt.Errorf("species %q: unknown ai domain %q", sp.ID, aiDomain(sp)))
			}
		}
	}
	for _, s := range c.Level.Spawns {
		if c.Bestiary[s.Species] == nil {
			errs = append(errs, fmt.Errorf("spawn at %v: unknown species %q", s.Pos, s.Species))
		}
		if s.Weapon != "" && c.Items.Weapon(s.Weapon) == nil {
			errs = append(errs, fmt.Errorf("spawn at %v: unknown weapon %q", s.Pos, s.Weapon))
		}
		if s.Armor != "" && c.Items.Armor(s.Armor) == nil {
			errs = append(errs, fmt.Errorf("spawn at %v: unknown armor %q", s.Pos, s.Armor))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("content validation failed: %w", errors.Join(errs...))
	}
	return nil
}

// aiDomain is the behaviour domain sp acts by.
func aiDomain(sp *actor.Species) string {
	if sp.AI == "" {
		return DefaultAI
	}
	return sp.AI
}
