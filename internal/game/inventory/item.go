package inventory

// Item is anything that can lie on the floor or sit in a backpack. Exactly
// one of Weapon and Armor is set.
type Item struct {
	Weapon *Weapon
	Armor  *Armor
}

// InstanceID returns the unique id of the wrapped instance.
func (it Item) InstanceID() string {
	if it.Weapon != nil {
		return it.Weapon.InstanceID
	}
	if it.Armor != nil {
		return it.Armor.InstanceID
	}
	return ""
}

// Name returns the display name of the wrapped instance.
func (it Item) Name() string {
	if it.Weapon != nil {
		return it.Weapon.Def.Name
	}
	if it.Armor != nil {
		return it.Armor.Def.Name
	}
	return ""
}
