package transcode

import (
	"cmp"
	"slices"

	"github.com/Garik-/bin2midi/pkg/midi"
	gomidi "gitlab.com/gomidi/midi/v2"
	"go.uber.org/zap"
)

// Sequencer places note events on an absolute time line.
type Sequencer struct {
	clock  uint64
	events []midi.Event
}

func NewSequencer() *Sequencer {
	return &Sequencer{}
}

// Push advances the clock by the onset delta and emits the note-on at the
// new clock and the note-off Duration ticks later.
func (s *Sequencer) Push(e NoteEvent) {
	s.clock += uint64(e.OnsetDelta)

	on := midi.Event{Tick: s.clock, Message: gomidi.NoteOn(e.Channel, e.Note, e.Velocity)}
	off := midi.Event{Tick: s.clock + e.Duration, Message: gomidi.NoteOff(e.Channel, e.Note)}
	s.events = append(s.events, on, off)

	if ce := sequencerLog.Check(zap.DebugLevel, "push"); ce != nil {
		ce.Write(zap.Stringer("on", on.Message), zap.Uint64("tick", on.Tick), zap.Uint64("off", off.Tick))
	}
}

// Clock returns the onset of the last pushed note.
func (s *Sequencer) Clock() uint64 {
	return s.clock
}

func (s *Sequencer) Len() int {
	return len(s.events)
}

// Messages returns every emitted message sorted by tick.
func (s *Sequencer) Messages() []midi.Event {
	out := slices.Clone(s.events)
	sortEvents(out)
	return out
}

// Sequence folds events into a sorted message list.
func Sequence(events []NoteEvent) []midi.Event {
	s := NewSequencer()
	for _, e := range events {
		s.Push(e)
	}
	return s.Messages()
}

// sortEvents orders by tick. At equal ticks note-offs go first, otherwise
// emission order is kept.
func sortEvents(events []midi.Event) {
	slices.SortStableFunc(events, func(a, b midi.Event) int {
		if c := cmp.Compare(a.Tick, b.Tick); c != 0 {
			return c
		}
		switch {
		case a.IsNoteOff() && !b.IsNoteOff():
			return -1
		case !a.IsNoteOff() && b.IsNoteOff():
			return 1
		}
		return 0
	})
}
