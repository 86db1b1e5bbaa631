// Package damage names the damage types and delivery methods shared by
// weapons, features, conditions and actors.
package damage

import "fmt"

// Type is the element of incoming damage.
type Type int

const (
	Physical Type = iota
	Fire
	Cold
	Acid
	Electric
	Spirit
	Light
	Pure
)

var typeNames = [...]string{"physical", "fire", "cold", "acid", "electric", "spirit", "light", "pure"}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "unknown"
	}
	return typeNames[t]
}

// ParseType maps a YAML damage type name onto a Type.
func ParseType(s string) (Type, error) {
	for i, n := range typeNames {
		if n == s {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("damage: unknown type %q", s)
}

// Method is how damage is delivered.
type Method int

const (
	Other Method = iota
	Slashing
	Piercing
	BluntMedium
	BluntHeavy
	Kick
	Explosion
	Shotgun
	Elemental
	Forced
)

var methodNames = [...]string{
	"other", "slashing", "piercing", "blunt_medium", "blunt_heavy",
	"kick", "explosion", "shotgun", "elemental", "forced",
}

func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return "unknown"
	}
	return methodNames[m]
}

// ParseMethod maps a YAML method name onto a Method. The empty string is Other.
func ParseMethod(s string) (Method, error) {
	if s == "" {
		return Other, nil
	}
	for i, n := range methodNames {
		if n == s {
			return Method(i), nil
		}
	}
	return 0, fmt.Errorf("damage: unknown method %q", s)
}
