package inventory

import (
	"fmt"

	"github.com/google/uuid"
)

// Registry holds all loaded weapon and armor definitions indexed by ID.
type Registry struct {
	weapons map[string]*WeaponDef
	armors  map[string]*ArmorDef
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		weapons: make(map[string]*WeaponDef),
		armors:  make(map[string]*ArmorDef),
	}
}

// RegisterWeapon adds w to the registry.
//
// Postcondition: Weapon(w.ID) returns w; returns error if w.ID already registered.
func (r *Registry) RegisterWeapon(w *WeaponDef) error {
	if _, exists := r.weapons[w.ID]; exists {
		return fmt.Errorf("inventory: Registry.RegisterWeapon: weapon ID %q already registered", w.ID)
	}
	r.weapons[w.ID] = w
	return nil
}

// RegisterArmor adds a to the registry.
//
// Postcondition: Armor(a.ID) returns a; returns error if a.ID already registered.
func (r *Registry) RegisterArmor(a *ArmorDef) error {
	if _, exists := r.armors[a.ID]; exists {
		return fmt.Errorf("inventory: Registry.RegisterArmor: armor ID %q already registered", a.ID)
	}
	r.armors[a.ID] = a
	return nil
}

// Weapon returns the WeaponDef for the given id, or nil if not found.
func (r *Registry) Weapon(id string) *WeaponDef {
	return r.weapons[id]
}

// Armor returns the ArmorDef for the given id, or nil if not found.
func (r *Registry) Armor(id string) *ArmorDef {
	return r.armors[id]
}

// NewWeapon creates a fully loaded instance of weapon id.
func (r *Registry) NewWeapon(id string) (*Weapon, error) {
	def := r.weapons[id]
	if def == nil {
		return nil, fmt.Errorf("inventory: unknown weapon %q", id)
	}
	return NewWeapon(def), nil
}

// NewArmor creates a mint-condition instance of armor id.
func (r *Registry) NewArmor(id string) (*Armor, error) {
	def := r.armors[id]
	if def == nil {
		return nil, fmt.Errorf("inventory: unknown armor %q", id)
	}
	return NewArmor(def), nil
}

// NewWeapon creates a fully loaded instance of def.
func NewWeapon(def *WeaponDef) *Weapon {
	return &Weapon{InstanceID: uuid.NewString(), Def: def, Ammo: def.AmmoCapacity}
}

// NewArmor creates a mint-condition instance of def.
func NewArmor(def *ArmorDef) *Armor {
	return &Armor{InstanceID: uuid.NewString(), Def: def, Durability: MaxDurability}
}
