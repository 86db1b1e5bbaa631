package world

import (
	"time"

	"github.com/cory-johannsen/crawl/internal/game/geom"
)

// Volume of a sound.
type Volume int

const (
	VolumeLow Volume = iota
	VolumeHigh
)

// Sound is one noise handed to the sound emitter.
type Sound struct {
	// Msg is shown to the player when the origin is not seen; "" for none.
	Msg string
	// Sfx identifies the sound effect to play; "" for none.
	Sfx    string
	Origin geom.Pos
	// SourceID identifies the actor making the noise, if any.
	SourceID string
	Volume   Volume
	// IgnoreMsgIfOriginSeen suppresses Msg when the player sees Origin.
	IgnoreMsgIfOriginSeen bool
	AlertsMonsters        bool
}

// Color tags a message for the presentation layer.
type Color int

const (
	ColorDefault Color = iota
	ColorPlayerHurt
	ColorMonsterHit
	ColorNote
	ColorWarning
)

// ProjectileMark is one projectile drawn on screen.
type ProjectileMark struct {
	Pos   geom.Pos
	Glyph rune
}

// SoundEmitter routes sounds to listeners.
type SoundEmitter interface {
	Emit(s Sound)
}

// MessageLog shows text to the player.
type MessageLog interface {
	Post(text string, color Color, interrupt bool)
}

// Renderer presents the simulation. Delay is a pacing pause between
// animation frames and may be a no-op.
type Renderer interface {
	Redraw()
	DrawProjectiles(marks []ProjectileMark, clearPrevious bool)
	Delay(d time.Duration)
}

// Clock hands control to the turn scheduler once an action completes.
type Clock interface {
	Tick()
}

// NopRenderer draws nothing and never sleeps.
type NopRenderer struct{}

func (NopRenderer) Redraw()                                {}
func (NopRenderer) DrawProjectiles([]ProjectileMark, bool) {}
func (NopRenderer) Delay(time.Duration)                    {}
