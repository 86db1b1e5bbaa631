package world

import (
	"time"
)

// Message is one entry posted to a Journal.
type Message struct {
	Text      string
	Color     Color
	Interrupt bool
}

// Journal is a headless recorder implementing SoundEmitter, MessageLog,
// Renderer and Clock. It never sleeps. It is not safe for concurrent use.
type Journal struct {
	Sounds   []Sound
	Messages []Message
	Redraws  int
	Frames   [][]ProjectileMark
	Delays   []time.Duration
	Turns    int
}

// NewJournal returns an empty Journal.
func NewJournal() *Journal {
	return &Journal{}
}

func (j *Journal) Emit(s Sound) {
	j.Sounds = append(j.Sounds, s)
}

func (j *Journal) Post(text string, color Color, interrupt bool) {
	j.Messages = append(j.Messages, Message{Text: text, Color: color, Interrupt: interrupt})
}

func (j *Journal) Redraw() {
	j.Redraws++
}

func (j *Journal) DrawProjectiles(marks []ProjectileMark, _ bool) {
	frame := make([]ProjectileMark, len(marks))
	copy(frame, marks)
	j.Frames = append(j.Frames, frame)
}

func (j *Journal) Delay(d time.Duration) {
	j.Delays = append(j.Delays, d)
}

func (j *Journal) Tick() {
	j.Turns++
}

// Texts returns the posted message texts in order.
func (j *Journal) Texts() []string {
	out := make([]string, len(j.Messages))
	for i, m := range j.Messages {
		out[i] = m.Text
	}
	return out
}

// SoundMsgs returns the message of every emitted sound in order.
func (j *Journal) SoundMsgs() []string {
	out := make([]string, len(j.Sounds))
	for i, s := range j.Sounds {
		out[i] = s.Msg
	}
	return out
}
