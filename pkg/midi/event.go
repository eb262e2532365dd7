package midi

import (
	"strconv"

	gomidi "gitlab.com/gomidi/midi/v2"
)

const (
	noteOffMsgType = 0x8
	noteOnMsgType  = 0x9
)

// Event is a channel message placed at an absolute tick.
type Event struct {
	Tick    uint64
	Message gomidi.Message
}

func (e Event) msgType() uint8 {
	if len(e.Message) == 0 {
		return 0
	}
	return (e.Message[0] & 0xF0) >> 4
}

func (e Event) dataByte(i int) uint8 {
	if len(e.Message) <= i {
		return 0
	}
	return e.Message[i] & 0x7F
}

// IsNoteOff reports whether the message ends a note.
func (e Event) IsNoteOff() bool {
	return e.msgType() == noteOffMsgType
}

// IsNoteOn reports whether the message starts a note.
func (e Event) IsNoteOn() bool {
	return e.msgType() == noteOnMsgType
}

func (e Event) Channel() uint8 {
	if len(e.Message) == 0 {
		return 0
	}
	return e.Message[0] & 0x0F
}

func (e Event) Key() uint8 {
	return e.dataByte(1)
}

func (e Event) Velocity() uint8 {
	return e.dataByte(2)
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName returns the scientific pitch name of key, middle C (60) being C4.
func NoteName(key uint8) string {
	return noteNames[key%12] + strconv.Itoa(int(key)/12-1)
}
