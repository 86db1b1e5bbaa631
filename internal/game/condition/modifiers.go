package condition

import (
	"github.com/cory-johannsen/crawl/internal/game/damage"
)

// HookCaller runs a named damage-transform script. ok is false when the hook
// is missing or failed, in which case the amount must be left unchanged.
type HookCaller interface {
	TransformDamage(hook string, amount int, dmgType string) (out int, ok bool)
}

var builtinResist = map[damage.Type]ID{
	damage.Fire:     RFire,
	damage.Cold:     RCold,
	damage.Electric: RElec,
	damage.Physical: RPhys,
	damage.Spirit:   RSpirit,
}

// AllowSee reports whether the holder can currently see at all.
func (s *Set) AllowSee() bool {
	return !s.active[Blind] && !s.active[Fainted]
}

// IsDisabled reports whether the holder cannot defend itself at all.
func (s *Set) IsDisabled() bool {
	return s.active[Paralyzed] || s.active[Nailed] || s.active[Fainted]
}

// IsImpaired reports whether the holder is hampered by confusion, slowness
// or fire.
func (s *Set) IsImpaired() bool {
	return s.active[Confused] || s.active[Slowed] || s.active[Burning]
}

// SpeedDelta returns the speed tier adjustment from slowness and haste.
func (s *Set) SpeedDelta() int {
	d := 0
	if s.active[Slowed] {
		d--
	}
	if s.active[Hasted] || s.active[Frenzied] {
		d++
	}
	return d
}

// TryResist reports whether an active condition fully resists dmgType.
// Resistances declared in reg extend the built-in r_* table; reg may be nil.
func (s *Set) TryResist(reg *Registry, dmgType damage.Type) bool {
	if id, ok := builtinResist[dmgType]; ok && s.active[id] {
		return true
	}
	if reg == nil {
		return false
	}
	for _, id := range s.All() {
		def, ok := reg.Get(id)
		if !ok {
			continue
		}
		for _, r := range def.Resists {
			if r == dmgType.String() {
				return true
			}
		}
	}
	return false
}

// TransformDamage passes amount through the lua_on_hit hook of every active
// condition that declares one, in ID order. reg and hooks may be nil.
func (s *Set) TransformDamage(reg *Registry, hooks HookCaller, amount int, dmgType damage.Type) int {
	if reg == nil || hooks == nil {
		return amount
	}
	for _, id := range s.All() {
		def, ok := reg.Get(id)
		if !ok || def.LuaOnHit == "" {
			continue
		}
		if out, ok := hooks.TransformDamage(def.LuaOnHit, amount, dmgType.String()); ok {
			amount = out
		}
	}
	return amount
}

// OnHit updates the set after its holder took damage. Being hurt wakes a
// fainted holder. It returns the conditions that ended.
func (s *Set) OnHit() []ID {
	if s.active[Fainted] {
		s.Remove(Fainted)
		return []ID{Fainted}
	}
	return nil
}
