package condition

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/crawl/internal/game/damage"
)

// Def is the content definition of a condition, loaded from YAML.
type Def struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Resists     []string `yaml:"resists"`
	LuaOnHit    string   `yaml:"lua_on_hit"`
	MsgStart    string   `yaml:"msg_start"`
	MsgEnd      string   `yaml:"msg_end"`
}

// Validate checks that the definition names a known condition and only
// known damage types.
func (d *Def) Validate() error {
	var errs []error
	if _, err := ParseID(d.ID); err != nil {
		errs = append(errs, err)
	}
	if d.Name == "" {
		errs = append(errs, fmt.Errorf("condition %q: name must not be empty", d.ID))
	}
	for _, r := range d.Resists {
		if _, err := damage.ParseType(r); err != nil {
			errs = append(errs, fmt.Errorf("condition %q: %w", d.ID, err))
		}
	}
	return errors.Join(errs...)
}

// Registry holds the definitions keyed by condition ID.
type Registry struct {
	defs [Count]*Def
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds def, overwriting any existing entry for the same ID.
//
// Precondition: def.Validate() == nil.
func (r *Registry) Register(def *Def) error {
	id, err := ParseID(def.ID)
	if err != nil {
		return err
	}
	r.defs[id] = def
	return nil
}

// Get returns the definition for id, or (nil, false) if none was loaded.
func (r *Registry) Get(id ID) (*Def, bool) {
	d := r.defs[id]
	return d, d != nil
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	n := 0
	for _, d := range r.defs {
		if d != nil {
			n++
		}
	}
	return n
}

// LoadDirectory reads every *.yaml file in dir as a Def and returns a
// populated Registry.
//
// Postcondition: Returns a non-nil Registry, or an error if any file fails to
// parse or validate.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading condition dir %q: %w", dir, err)
	}
	reg := NewRegistry()
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var def Def
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("validating %q: %w", path, err)
		}
		if err := reg.Register(&def); err != nil {
			return nil, fmt.Errorf("registering %q: %w", path, err)
		}
	}
	return reg, nil
}
