package condition

import "fmt"

// ID names one status effect. The set of IDs is closed; Count is not a
// condition.
type ID int

const (
	Paralyzed ID = iota
	Nailed
	Fainted
	Confused
	Slowed
	Hasted
	Frenzied
	Burning
	Blind
	Ethereal
	Weakened
	LightSensitive
	TeleControl
	Aiming
	Terrified
	Poisoned
	RFire
	RCold
	RElec
	RPhys
	RSpirit
	Count
)

var idNames = [Count]string{
	Paralyzed:      "paralyzed",
	Nailed:         "nailed",
	Fainted:        "fainted",
	Confused:       "confused",
	Slowed:         "slowed",
	Hasted:         "hasted",
	Frenzied:       "frenzied",
	Burning:        "burning",
	Blind:          "blind",
	Ethereal:       "ethereal",
	Weakened:       "weakened",
	LightSensitive: "light_sensitive",
	TeleControl:    "tele_control",
	Aiming:         "aiming",
	Terrified:      "terrified",
	Poisoned:       "poisoned",
	RFire:          "r_fire",
	RCold:          "r_cold",
	RElec:          "r_elec",
	RPhys:          "r_phys",
	RSpirit:        "r_spirit",
}

func (id ID) String() string {
	if id < 0 || id >= Count {
		return fmt.Sprintf("condition(%d)", int(id))
	}
	return idNames[id]
}

// ParseID maps a content name such as "burning" onto its ID.
func ParseID(name string) (ID, error) {
	for i, n := range idNames {
		if n == name {
			return ID(i), nil
		}
	}
	return 0, fmt.Errorf("condition: unknown id %q", name)
}
