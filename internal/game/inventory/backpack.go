package inventory

// Inventory is everything one actor carries. The owning actor exclusively
// owns it.
type Inventory struct {
	// Wielded is the melee or ranged weapon in hand, or nil.
	Wielded *Weapon
	// Body is the worn body armor, or nil.
	Body *Armor
	// Intrinsics are natural attacks such as bites; they are never dropped.
	Intrinsics []*Weapon
	Backpack   []Item
}

// Add puts it in the backpack.
func (inv *Inventory) Add(it Item) {
	inv.Backpack = append(inv.Backpack, it)
}

// RemoveBody unequips and returns the worn armor.
//
// Postcondition: Body is nil.
func (inv *Inventory) RemoveBody() *Armor {
	a := inv.Body
	inv.Body = nil
	return a
}

// MeleeWeapon returns the wielded weapon when it can strike in melee, and
// otherwise the first intrinsic attack, or nil.
func (inv *Inventory) MeleeWeapon() *Weapon {
	if inv.Wielded != nil && inv.Wielded.Def.IsMelee() {
		return inv.Wielded
	}
	if len(inv.Intrinsics) > 0 {
		return inv.Intrinsics[0]
	}
	return nil
}

// DropAll removes and returns every droppable item: the wielded weapon, the
// worn armor and the backpack contents, in that order.
//
// Postcondition: Wielded, Body and Backpack are empty; Intrinsics are kept.
func (inv *Inventory) DropAll() []Item {
	var out []Item
	if inv.Wielded != nil {
		out = append(out, Item{Weapon: inv.Wielded})
		inv.Wielded = nil
	}
	if inv.Body != nil {
		out = append(out, Item{Armor: inv.Body})
		inv.Body = nil
	}
	out = append(out, inv.Backpack...)
	inv.Backpack = nil
	return out
}
