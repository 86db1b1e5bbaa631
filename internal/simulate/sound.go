package simulate

import (
	"github.com/cory-johannsen/crawl/internal/game/actor"
	"github.com/cory-johannsen/crawl/internal/game/geom"
	"github.com/cory-johannsen/crawl/internal/game/world"
)

// Hearing distances by volume, in king moves.
const (
	LowVolumeRadius  = 8
	HighVolumeRadius = 16
)

// SoundBus delivers sounds to the player's message log and to the monsters
// in earshot. Every sound is also forwarded to Record.
type SoundBus struct {
	w      *actor.World
	Record world.SoundEmitter
}

// NewSoundBus returns a bus for w that records into rec.
//
// Precondition: w and rec must be non-nil.
func NewSoundBus(w *actor.World, rec world.SoundEmitter) *SoundBus {
	return &SoundBus{w: w, Record: rec}
}

// Emit implements world.SoundEmitter.
func (b *SoundBus) Emit(s world.Sound) {
	b.Record.Emit(s)
	w := b.w
	if s.Msg != "" && !(s.IgnoreMsgIfOriginSeen && w.Map.IsSeenByPlayer(s.Origin)) {
		w.Log.Post(s.Msg, world.ColorDefault, false)
	}
	if !s.AlertsMonsters {
		return
	}
	radius := LowVolumeRadius
	if s.Volume == world.VolumeHigh {
		radius = HighVolumeRadius
	}
	for _, a := range w.Actors.All() {
		if a.IsPlayer() || !a.IsAlive() || a.ID.String() == s.SourceID {
			continue
		}
		if geom.KingDist(a.Pos, s.Origin) <= radius {
			a.AwareCounter = max(a.AwareCounter, a.Species.TurnsAware)
		}
	}
}
