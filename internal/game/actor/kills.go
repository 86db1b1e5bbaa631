package actor

import (
	"maps"
	"slices"

	"github.com/zyedidia/generic/mapset"
)

// KillTracker tallies monster deaths per species and remembers which
// species the player has laid eyes on.
type KillTracker struct {
	counts  map[string]int
	sighted mapset.Set[string]
	total   int
}

// NewKillTracker returns an empty tracker.
func NewKillTracker() *KillTracker {
	return &KillTracker{counts: make(map[string]int), sighted: mapset.New[string]()}
}

// OnKilled records the death of a.
func (k *KillTracker) OnKilled(a *Actor) {
	k.counts[a.Species.ID]++
	k.total++
}

// OnSighted records that the player has seen a.
func (k *KillTracker) OnSighted(a *Actor) {
	k.sighted.Put(a.Species.ID)
}

// Count returns how many of the species have been killed.
func (k *KillTracker) Count(speciesID string) int {
	return k.counts[speciesID]
}

// Total returns the number of kills of any species.
func (k *KillTracker) Total() int {
	return k.total
}

// UniqueSpecies returns the ids of every species killed at least once,
// sorted.
func (k *KillTracker) UniqueSpecies() []string {
	return slices.Sorted(maps.Keys(k.counts))
}

// Sighted reports whether the player has seen the species.
func (k *KillTracker) Sighted(speciesID string) bool {
	return k.sighted.Has(speciesID)
}

// SparedSpecies returns the ids of every species the player has seen but
// never killed, sorted.
func (k *KillTracker) SparedSpecies() []string {
	out := make([]string, 0, k.sighted.Size())
	k.sighted.Each(func(id string) {
		if k.counts[id] == 0 {
			out = append(out, id)
		}
	})
	slices.Sort(out)
	return out
}
