package inventory

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MaxDurability is the durability of armor in mint condition.
const MaxDurability = 100

// ArmorDef defines the static properties of a body armor loaded from YAML.
type ArmorDef struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// ArmorPoints is the damage absorbed per hit at full durability.
	ArmorPoints int `yaml:"armor_points"`
	// DurabilityFactor scales incoming damage into durability loss.
	DurabilityFactor float64 `yaml:"durability_factor"`
	Weight           Weight  `yaml:"weight"`
}

// Validate reports an error if the ArmorDef is missing required fields or
// contains illegal values.
func (a *ArmorDef) Validate() error {
	var errs []error
	if a.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if a.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if a.ArmorPoints < 0 {
		errs = append(errs, errors.New("armor_points must be >= 0"))
	}
	if a.DurabilityFactor < 0 {
		errs = append(errs, errors.New("durability_factor must be >= 0"))
	}
	if _, ok := weightRank[a.Weight]; !ok {
		errs = append(errs, fmt.Errorf("weight %q is not a valid weight class", a.Weight))
	}
	if len(errs) > 0 {
		return fmt.Errorf("armor %q validation failed: %w", a.ID, errors.Join(errs...))
	}
	return nil
}

// Armor is one worn or carried armor instance.
//
// Invariant: 0 <= Durability <= MaxDurability.
type Armor struct {
	InstanceID string
	Def        *ArmorDef
	Durability int
}

// ArmorPoints returns the current absorption, which degrades in steps as
// durability drops.
func (a *Armor) ArmorPoints() int {
	ap := a.Def.ArmorPoints
	switch {
	case a.Durability > 60:
		return ap
	case a.Durability > 40:
		return max(0, ap-1)
	case a.Durability > 25:
		return max(0, ap-2)
	case a.Durability > 15:
		return max(0, ap-3)
	default:
		return 0
	}
}

// IsDestroyed reports whether the armor has no durability left.
func (a *Armor) IsDestroyed() bool {
	return a.Durability <= 0
}

// TakeDurabilityHit wears the armor down by dmg and returns the damage that
// gets through. degraded is true when the armor lost protection but still
// offers some.
//
// Precondition: dmg >= 0.
// Postcondition: reduced >= 1; Durability is clamped at 0.
func (a *Armor) TakeDurabilityHit(dmg int) (reduced int, degraded bool) {
	apBefore := a.ArmorPoints()
	factor := a.Def.DurabilityFactor
	if factor == 0 {
		factor = 1
	}
	a.Durability = max(0, a.Durability-int(float64(dmg)*factor))
	apAfter := a.ArmorPoints()
	degraded = apAfter < apBefore && apAfter != 0
	return max(1, dmg-apBefore), degraded
}

// LoadArmors reads all .yaml files in dir and returns parsed ArmorDef slice.
//
// Postcondition: Returns non-nil slice and nil error on success; all returned
// defs pass Validate.
func LoadArmors(dir string) ([]*ArmorDef, error) {
	return loadDir(dir, "LoadArmors", func(data []byte, path string) (*ArmorDef, error) {
		a := ArmorDef{Weight: WeightMedium}
		if err := yaml.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("cannot parse file %q: %w", path, err)
		}
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("invalid armor in %q: %w", path, err)
		}
		return &a, nil
	})
}
