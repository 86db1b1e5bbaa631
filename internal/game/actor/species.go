// Package actor owns creature state: health, spirit, conditions, death and
// corpses, and what a creature can perceive.
package actor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Speed is the closed set of movement speed tiers, slowest first.
type Speed int

const (
	Sluggish Speed = iota
	Slow
	Normal
	Fast
	Fastest
	speedCount
)

var speedNames = [speedCount]string{"sluggish", "slow", "normal", "fast", "fastest"}

func (s Speed) String() string {
	if s < 0 || s >= speedCount {
		return fmt.Sprintf("speed(%d)", int(s))
	}
	return speedNames[s]
}

// UnmarshalYAML decodes a speed tier from its name.
func (s *Speed) UnmarshalYAML(node *yaml.Node) error {
	i := slices.Index(speedNames[:], node.Value)
	if i < 0 {
		return fmt.Errorf("line %d: unknown speed %q", node.Line, node.Value)
	}
	*s = Speed(i)
	return nil
}

// Size is how much of a cell a creature fills. SizeNone means "not decided"
// when used as an aim level.
type Size int

const (
	SizeNone Size = iota
	SizeFloor
	SizeHumanoid
	SizeGiant
)

var sizeNames = [...]string{"none", "floor", "humanoid", "giant"}

func (s Size) String() string {
	if s < 0 || int(s) >= len(sizeNames) {
		return fmt.Sprintf("size(%d)", int(s))
	}
	return sizeNames[s]
}

// UnmarshalYAML decodes a size from its name. "none" is not accepted.
func (s *Size) UnmarshalYAML(node *yaml.Node) error {
	i := slices.Index(sizeNames[:], node.Value)
	if i <= 0 {
		return fmt.Errorf("line %d: unknown size %q", node.Line, node.Value)
	}
	*s = Size(i)
	return nil
}

// Abilities holds the skill values rolled against on d100.
type Abilities struct {
	Melee     int `yaml:"melee"`
	Ranged    int `yaml:"ranged"`
	Dodge     int `yaml:"dodge"`
	Stealth   int `yaml:"stealth"`
	Searching int `yaml:"searching"`
}

// Species is the shared, read-only definition of a kind of creature.
type Species struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	NameThe string `yaml:"name_the"`
	Glyph   string `yaml:"glyph"`
	HP      int    `yaml:"hp"`
	Spirit  int    `yaml:"spirit"`
	Speed   Speed  `yaml:"speed"`
	Size    Size   `yaml:"size"`

	Abilities Abilities `yaml:"abilities"`

	CanLeaveCorpse bool `yaml:"can_leave_corpse"`
	CanBleed       bool `yaml:"can_bleed"`
	Humanoid       bool `yaml:"humanoid"`
	Undead         bool `yaml:"undead"`
	SeeInDarkness  bool `yaml:"can_see_in_darkness"`
	// DeathMsg replaces the generic "dies." message when non-empty.
	DeathMsg string `yaml:"death_msg_override"`
	// TurnsAware is how long the creature stays alert after being attacked.
	TurnsAware int `yaml:"nr_turns_aware"`
	// Intrinsic is the weapon id of the creature's natural attack, if any.
	Intrinsic string `yaml:"intrinsic"`
	// AI names the behaviour domain that picks the creature's actions;
	// empty selects the default domain.
	AI string `yaml:"ai"`
}

// Validate checks that the species satisfies its invariants.
//
// Postcondition: returns nil iff all fields are valid.
func (s *Species) Validate() error {
	var errs []error
	if s.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if s.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if s.HP < 1 {
		errs = append(errs, fmt.Errorf("hp %d must be >= 1", s.HP))
	}
	if s.Spirit < 1 {
		errs = append(errs, fmt.Errorf("spirit %d must be >= 1", s.Spirit))
	}
	if s.Size == SizeNone {
		errs = append(errs, errors.New("size is required"))
	}
	if len([]rune(s.Glyph)) != 1 {
		errs = append(errs, fmt.Errorf("glyph %q must be a single character", s.Glyph))
	}
	if s.TurnsAware < 0 {
		errs = append(errs, fmt.Errorf("nr_turns_aware %d must be >= 0", s.TurnsAware))
	}
	if len(errs) > 0 {
		return fmt.Errorf("species %q validation failed: %w", s.ID, errors.Join(errs...))
	}
	return nil
}

// GlyphRune returns the display glyph.
//
// Precondition: s.Validate() == nil.
func (s *Species) GlyphRune() rune {
	return []rune(s.Glyph)[0]
}

// LoadSpeciesFromBytes parses a single species from raw YAML bytes.
//
// Postcondition: Returns a validated *Species, or an error. NameThe defaults
// to "The " + Name and Speed to Normal.
func LoadSpeciesFromBytes(data []byte) (*Species, error) {
	s := Species{Speed: Normal}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing species YAML: %w", err)
	}
	if s.NameThe == "" && s.Name != "" {
		s.NameThe = "The " + s.Name
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadSpecies reads all *.yaml files in dir and returns the parsed species.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all species or an error on the first parse or
// validate failure; on error, the partial result is discarded.
func LoadSpecies(dir string) ([]*Species, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading species dir %q: %w", dir, err)
	}

	var out []*Species
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		s, err := LoadSpeciesFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// Bestiary indexes species by id.
type Bestiary map[string]*Species

// NewBestiary indexes list by id.
//
// Postcondition: Returns an error if two species share an id.
func NewBestiary(list []*Species) (Bestiary, error) {
	b := make(Bestiary, len(list))
	for _, s := range list {
		if _, dup := b[s.ID]; dup {
			return nil, fmt.Errorf("duplicate species id %q", s.ID)
		}
		b[s.ID] = s
	}
	return b, nil
}
