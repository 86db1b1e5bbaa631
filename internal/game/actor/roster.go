package actor

import (
	"github.com/cory-johannsen/crawl/internal/game/geom"
)

// Roster is the ordered collection of every actor on the level. Iteration
// follows insertion order. It is not safe for concurrent use.
type Roster struct {
	order []*Actor
	byID  map[ID]*Actor
}

// NewRoster creates an empty Roster.
func NewRoster() *Roster {
	return &Roster{byID: make(map[ID]*Actor)}
}

// Add appends a to the roster.
//
// Precondition: a is not already present.
func (r *Roster) Add(a *Actor) {
	if _, ok := r.byID[a.ID]; ok {
		panic("actor: Roster.Add: duplicate actor " + a.ID.String())
	}
	r.order = append(r.order, a)
	r.byID[a.ID] = a
}

// Remove drops the actor with the given id. Handles to it become stale.
// Removing an unknown id is a no-op.
func (r *Roster) Remove(id ID) {
	a, ok := r.byID[id]
	if !ok {
		return
	}
	delete(r.byID, id)
	for i, o := range r.order {
		if o == a {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Get returns the actor with the given id, or nil.
func (r *Roster) Get(id ID) *Actor {
	return r.byID[id]
}

// All returns the actors in insertion order. The slice must not be modified.
func (r *Roster) All() []*Actor {
	return r.order
}

// Len returns the number of actors, dead ones included.
func (r *Roster) Len() int {
	return len(r.order)
}

// AliveAt returns the living actor standing on p, or nil.
func (r *Roster) AliveAt(p geom.Pos) *Actor {
	for _, a := range r.order {
		if a.State == Alive && a.Pos == p {
			return a
		}
	}
	return nil
}

// PurgeDestroyed removes every destroyed actor.
func (r *Roster) PurgeDestroyed() {
	kept := r.order[:0]
	for _, a := range r.order {
		if a.State == Destroyed {
			delete(r.byID, a.ID)
			continue
		}
		kept = append(kept, a)
	}
	clear(r.order[len(kept):])
	r.order = kept
}
