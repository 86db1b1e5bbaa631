package actor

import (
	"github.com/cory-johannsen/crawl/internal/game/world"
)

// restore adds amount to *cur without passing max unless allowAboveMax is
// set, and reports whether anything was gained.
func restore(cur *int, maxVal, amount int, allowAboveMax bool) bool {
	gained := allowAboveMax
	difFromMax := maxVal - amount

	if !allowAboveMax && *cur > difFromMax && *cur < maxVal {
		*cur = maxVal
		gained = true
	}
	if allowAboveMax || *cur <= difFromMax {
		*cur += amount
		gained = true
	}
	return gained
}

// RestoreHP heals amount HP. Unless allowAboveMax is set, HP snaps to HPMax
// instead of passing it, and nothing is gained when already at HPMax.
//
// Postcondition: returns whether HP was gained; without allowAboveMax,
// HP <= HPMax if it was before.
func (a *Actor) RestoreHP(w *World, amount int, allowMsg, allowAboveMax bool) bool {
	gained := restore(&a.HP, a.HPMax, amount, allowAboveMax)
	if allowMsg && gained {
		if a.player {
			w.post("I feel healthier!", world.ColorNote, false)
		} else if w.PlayerSees(a) {
			w.post(a.NameThe()+" looks healthier.", world.ColorDefault, false)
		}
		w.Render.Redraw()
	}
	return gained
}

// RestoreSpirit restores amount spirit with the same capping rule as
// RestoreHP.
func (a *Actor) RestoreSpirit(w *World, amount int, allowMsg, allowAboveMax bool) bool {
	gained := restore(&a.Spirit, a.SpiritMax, amount, allowAboveMax)
	if allowMsg && gained {
		if a.player {
			w.post("I feel more spirited!", world.ColorNote, false)
		} else if w.PlayerSees(a) {
			w.post(a.NameThe()+" looks more spirited.", world.ColorDefault, false)
		}
		w.Render.Redraw()
	}
	return gained
}

// ChangeMaxHP adds delta to both HP and HPMax.
//
// Postcondition: HP >= 1 and HPMax >= 1.
func (a *Actor) ChangeMaxHP(w *World, delta int, allowMsg bool) {
	a.HPMax = max(1, a.HPMax+delta)
	a.HP = max(1, a.HP+delta)
	if allowMsg {
		a.postMaxChange(w, delta,
			"I feel more vigorous!", "I feel frailer!",
			" looks more vigorous.", " looks frailer.")
	}
}

// ChangeMaxSpirit adds delta to both Spirit and SpiritMax.
//
// Postcondition: Spirit >= 1 and SpiritMax >= 1.
func (a *Actor) ChangeMaxSpirit(w *World, delta int, allowMsg bool) {
	a.SpiritMax = max(1, a.SpiritMax+delta)
	a.Spirit = max(1, a.Spirit+delta)
	if allowMsg {
		a.postMaxChange(w, delta,
			"My spirit is stronger!", "My spirit is weaker!",
			" appears to grow in spirit.", " appears to shrink in spirit.")
	}
}

func (a *Actor) postMaxChange(w *World, delta int, playerUp, playerDown, monUp, monDown string) {
	if delta == 0 {
		return
	}
	if a.player {
		if delta > 0 {
			w.post(playerUp, world.ColorNote, false)
		} else {
			w.post(playerDown, world.ColorPlayerHurt, false)
		}
		return
	}
	if !w.PlayerSees(a) {
		return
	}
	if delta > 0 {
		w.post(a.NameThe()+monUp, world.ColorDefault, false)
	} else {
		w.post(a.NameThe()+monDown, world.ColorDefault, false)
	}
}
