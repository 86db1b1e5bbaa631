package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/crawl/internal/game/inventory"
)

func TestInventory_DropAll(t *testing.T) {
	bite := inventory.NewWeapon(&inventory.WeaponDef{ID: "bite", Name: "Bite", MeleeDice: "1d3", Intrinsic: true})
	gun := inventory.NewWeapon(validWeapon())
	jacket := inventory.NewArmor(leatherDef())
	spare := inventory.NewWeapon(validWeapon())

	inv := &inventory.Inventory{Wielded: gun, Body: jacket, Intrinsics: []*inventory.Weapon{bite}}
	inv.Add(inventory.Item{Weapon: spare})

	dropped := inv.DropAll()
	require.Len(t, dropped, 3)
	assert.Equal(t, gun.InstanceID, dropped[0].InstanceID())
	assert.Equal(t, jacket.InstanceID, dropped[1].InstanceID())
	assert.Equal(t, spare.InstanceID, dropped[2].InstanceID())
	assert.Nil(t, inv.Wielded)
	assert.Nil(t, inv.Body)
	assert.Empty(t, inv.Backpack)
	assert.Len(t, inv.Intrinsics, 1)
}

func TestInventory_MeleeWeapon(t *testing.T) {
	bite := inventory.NewWeapon(&inventory.WeaponDef{ID: "bite", Name: "Bite", MeleeDice: "1d3", Intrinsic: true})
	inv := &inventory.Inventory{Intrinsics: []*inventory.Weapon{bite}}
	assert.Equal(t, bite, inv.MeleeWeapon())

	pistol := inventory.NewWeapon(&inventory.WeaponDef{ID: "pistol", Name: "Pistol", RangedDice: "1d8"})
	inv.Wielded = pistol
	assert.Equal(t, bite, inv.MeleeWeapon(), "a gun without melee dice falls back to intrinsics")

	inv = &inventory.Inventory{}
	assert.Nil(t, inv.MeleeWeapon())
}

func TestInventory_RemoveBody(t *testing.T) {
	jacket := inventory.NewArmor(leatherDef())
	inv := &inventory.Inventory{Body: jacket}
	assert.Equal(t, jacket, inv.RemoveBody())
	assert.Nil(t, inv.Body)
	assert.Equal(t, "Leather Jacket", inventory.Item{Armor: jacket}.Name())
	assert.Equal(t, "", inventory.Item{}.Name())
}
