package inventory

import (
	"sync"

	"github.com/cory-johannsen/crawl/internal/game/geom"
)

// FloorManager tracks items lying on map cells.
// It is thread-safe via sync.RWMutex.
type FloorManager struct {
	mu    sync.RWMutex
	cells map[geom.Pos][]Item
}

// NewFloorManager creates a FloorManager with no items on any cell.
func NewFloorManager() *FloorManager {
	return &FloorManager{cells: make(map[geom.Pos][]Item)}
}

// Drop places it on the floor at p.
//
// Postcondition: it is appended to the cell's items.
func (fm *FloorManager) Drop(p geom.Pos, it Item) {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	fm.cells[p] = append(fm.cells[p], it)
}

// Pickup removes and returns the item with the given instanceID from p.
// Returns false if the item is not found.
//
// Postcondition: on failure, the cell is unchanged.
func (fm *FloorManager) Pickup(p geom.Pos, instanceID string) (Item, bool) {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	items := fm.cells[p]
	for i, it := range items {
		if it.InstanceID() == instanceID {
			fm.cells[p] = append(items[:i], items[i+1:]...)
			return it, true
		}
	}
	return Item{}, false
}

// PickupAll removes and returns all items at p.
//
// Postcondition: the cell is empty.
func (fm *FloorManager) PickupAll(p geom.Pos) []Item {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	items := fm.cells[p]
	if len(items) == 0 {
		return []Item{}
	}
	delete(fm.cells, p)
	return items
}

// ItemsAt returns a snapshot copy of the items at p.
func (fm *FloorManager) ItemsAt(p geom.Pos) []Item {
	fm.mu.RLock()
	defer fm.mu.RUnlock()
	items := fm.cells[p]
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
