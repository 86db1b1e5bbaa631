// Package inventory provides weapon and armor definitions, their YAML
// loaders, and the per-actor item containers.
package inventory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/crawl/internal/game/condition"
	"github.com/cory-johannsen/crawl/internal/game/damage"
	"github.com/cory-johannsen/crawl/internal/game/dice"
)

// Weight is the heft class of an item.
type Weight string

const (
	WeightNone       Weight = "none"
	WeightExtraLight Weight = "extra_light"
	WeightLight      Weight = "light"
	WeightMedium     Weight = "medium"
	WeightHeavy      Weight = "heavy"
)

var weightRank = map[Weight]int{
	WeightNone:       0,
	WeightExtraLight: 1,
	WeightLight:      2,
	WeightMedium:     3,
	WeightHeavy:      4,
}

// HeavierThan reports whether w is strictly heavier than o.
func (w Weight) HeavierThan(o Weight) bool {
	return weightRank[w] > weightRank[o]
}

// Trait names recognised on weapons.
const (
	TraitDagger     = "dagger"
	TraitUndeadBane = "undead_bane"
	TraitNails      = "nails"
)

// OnHitEffect is a condition a weapon may inflict on a surviving target.
type OnHitEffect struct {
	Condition string `yaml:"condition"`
	Turns     int    `yaml:"turns"`
	Chance    int    `yaml:"chance"` // percent
}

// WeaponDef defines the static properties of a weapon loaded from YAML.
type WeaponDef struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	NameA        string `yaml:"name_a"`
	MeleeDice    string `yaml:"melee_dice"`  // "" = not a melee weapon
	MeleeHitMod  int    `yaml:"melee_hit_mod"`
	RangedDice   string `yaml:"ranged_dice"` // "" = not a ranged weapon
	RangedHitMod int    `yaml:"ranged_hit_mod"`
	DamageType   string `yaml:"damage_type"`
	MeleeMethod  string `yaml:"melee_method"`
	Weight       Weight `yaml:"weight"`
	Intrinsic    bool   `yaml:"intrinsic"`
	Knockback    bool   `yaml:"knockback"`
	MachineGun   bool   `yaml:"machine_gun"`
	Shotgun      bool   `yaml:"shotgun"`
	// EffectiveRange is the king distance beyond which ranged damage is
	// halved. -1 means unlimited.
	EffectiveRange int  `yaml:"effective_range"`
	InfiniteAmmo   bool `yaml:"infinite_ammo"`
	AmmoCapacity   int  `yaml:"ammo_capacity"`
	Ricochet       bool `yaml:"ricochet"`
	// MeleeSfx is the sound effect of a landed melee blow.
	MeleeSfx string `yaml:"melee_sfx"`
	// RangedSound is heard when the shot is fired out of sight.
	RangedSound string `yaml:"ranged_sound"`
	SoundLoud   bool   `yaml:"sound_loud"`
	// Verbs for combat messages: first person for the player ("strike"),
	// third person for monsters ("claws").
	PlayerMeleeVerb   string        `yaml:"player_melee_verb"`
	MonsterMeleeVerb  string        `yaml:"monster_melee_verb"`
	PlayerRangedVerb  string        `yaml:"player_ranged_verb"`
	MonsterRangedVerb string        `yaml:"monster_ranged_verb"`
	Glyph             string        `yaml:"glyph"` // projectile glyph
	OnHit             []OnHitEffect `yaml:"on_hit"`
	Traits            []string      `yaml:"traits"`
}

// MeleeVerb returns the verb for a melee blow by the player or a monster.
func (w *WeaponDef) MeleeVerb(player bool) string {
	return pickVerb(player, w.PlayerMeleeVerb, w.MonsterMeleeVerb, "hit", "hits")
}

// RangedVerb returns the verb for firing the weapon.
func (w *WeaponDef) RangedVerb(player bool) string {
	return pickVerb(player, w.PlayerRangedVerb, w.MonsterRangedVerb, "fire", "fires")
}

func pickVerb(player bool, mine, theirs, myDefault, theirDefault string) string {
	switch {
	case player && mine != "":
		return mine
	case player:
		return myDefault
	case theirs != "":
		return theirs
	}
	return theirDefault
}

// ProjectileGlyph returns the first rune of Glyph, '*' when unset.
func (w *WeaponDef) ProjectileGlyph() rune {
	for _, r := range w.Glyph {
		return r
	}
	return '*'
}

// IsMelee reports whether the weapon can be used in melee.
func (w *WeaponDef) IsMelee() bool { return w.MeleeDice != "" }

// IsRanged reports whether the weapon can be fired.
func (w *WeaponDef) IsRanged() bool { return w.RangedDice != "" }

// HasTrait reports whether the weapon carries the named trait.
func (w *WeaponDef) HasTrait(trait string) bool {
	return slices.Contains(w.Traits, trait)
}

// MeleeExpr returns the parsed melee dice.
//
// Precondition: w.Validate() == nil and w.IsMelee().
func (w *WeaponDef) MeleeExpr() dice.Expression {
	return dice.MustParse(w.MeleeDice)
}

// RangedExpr returns the parsed ranged dice.
//
// Precondition: w.Validate() == nil and w.IsRanged().
func (w *WeaponDef) RangedExpr() dice.Expression {
	return dice.MustParse(w.RangedDice)
}

// DmgType returns the weapon's damage type.
//
// Precondition: w.Validate() == nil.
func (w *WeaponDef) DmgType() damage.Type {
	t, err := damage.ParseType(w.DamageType)
	if err != nil {
		panic("inventory: " + err.Error())
	}
	return t
}

// Method returns the melee delivery method.
//
// Precondition: w.Validate() == nil.
func (w *WeaponDef) Method() damage.Method {
	m, err := damage.ParseMethod(w.MeleeMethod)
	if err != nil {
		panic("inventory: " + err.Error())
	}
	return m
}

// Validate checks that the WeaponDef satisfies its invariants.
//
// Postcondition: returns nil iff all fields are valid.
func (w *WeaponDef) Validate() error {
	var errs []error
	if w.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if w.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if !w.IsMelee() && !w.IsRanged() {
		errs = append(errs, errors.New("at least one of melee_dice and ranged_dice is required"))
	}
	if w.IsMelee() {
		if _, err := dice.Parse(w.MeleeDice); err != nil {
			errs = append(errs, err)
		}
	}
	if w.IsRanged() {
		if _, err := dice.Parse(w.RangedDice); err != nil {
			errs = append(errs, err)
		}
	}
	if _, err := damage.ParseType(w.DamageType); err != nil {
		errs = append(errs, err)
	}
	if _, err := damage.ParseMethod(w.MeleeMethod); err != nil {
		errs = append(errs, err)
	}
	if _, ok := weightRank[w.Weight]; !ok {
		errs = append(errs, fmt.Errorf("weight %q is not a valid weight class", w.Weight))
	}
	if w.MachineGun && w.Shotgun {
		errs = append(errs, errors.New("machine_gun and shotgun are mutually exclusive"))
	}
	if w.IsRanged() && !w.InfiniteAmmo && w.AmmoCapacity <= 0 {
		errs = append(errs, errors.New("ranged weapon without infinite_ammo needs ammo_capacity > 0"))
	}
	for _, e := range w.OnHit {
		if _, err := condition.ParseID(e.Condition); err != nil {
			errs = append(errs, err)
		}
		if e.Chance < 0 || e.Chance > 100 {
			errs = append(errs, fmt.Errorf("on_hit chance %d must be within 0..100", e.Chance))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("weapon %q validation failed: %w", w.ID, errors.Join(errs...))
	}
	return nil
}

// Weapon is one concrete weapon instance.
type Weapon struct {
	InstanceID string
	Def        *WeaponDef
	// MeleePlus is the instance's flat melee damage bonus.
	MeleePlus int
	// Ammo is the number of rounds loaded.
	Ammo int
}

// HasAmmo reports whether the weapon can be discharged.
func (w *Weapon) HasAmmo() bool {
	return w.Def.InfiniteAmmo || w.Ammo > 0
}

// ConsumeAmmo removes one round unless the weapon never runs dry.
//
// Precondition: w.HasAmmo().
func (w *Weapon) ConsumeAmmo() {
	if w.Def.InfiniteAmmo {
		return
	}
	if w.Ammo <= 0 {
		panic(fmt.Sprintf("inventory: Weapon.ConsumeAmmo: %q has no ammo", w.Def.ID))
	}
	w.Ammo--
}

// Reload restores Ammo to the weapon's capacity.
//
// Postcondition: Ammo == Def.AmmoCapacity.
func (w *Weapon) Reload() {
	w.Ammo = w.Def.AmmoCapacity
}

// LoadWeapons reads all *.yaml files from dir, parses each as a WeaponDef,
// validates it, and returns the collected slice.
//
// Postcondition: returns all valid WeaponDefs or the first encountered error.
func LoadWeapons(dir string) ([]*WeaponDef, error) {
	return loadDir(dir, "LoadWeapons", func(data []byte, path string) (*WeaponDef, error) {
		w := WeaponDef{EffectiveRange: -1, Weight: WeightLight}
		if err := yaml.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("cannot parse file %q: %w", path, err)
		}
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("invalid weapon in %q: %w", path, err)
		}
		return &w, nil
	})
}

func loadDir[T any](dir, op string, parse func(data []byte, path string) (*T, error)) ([]*T, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%s: cannot read directory %q: %w", op, dir, err)
	}
	out := []*T{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: cannot read file %q: %w", op, path, err)
		}
		v, err := parse(data, path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, v)
	}
	return out, nil
}
