package midi

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

var emptyFile = []byte{
	0x4D, 0x54, 0x68, 0x64, 0x00, 0x00, 0x00, 0x06, 0x00, 0x00, 0x00, 0x01, 0x01, 0xE0,
	0x4D, 0x54, 0x72, 0x6B, 0x00, 0x00, 0x00, 0x04, 0x00, 0xFF, 0x2F, 0x00,
}

type failWriter struct {
	calls int
}

func (w *failWriter) Write(p []byte) (int, error) {
	w.calls++
	return 0, errors.New("disk full")
}

func TestMarshal_Empty(t *testing.T) {
	data, err := Marshal(nil, 480)
	require.NoError(t, err)
	assert.Equal(t, emptyFile, data)
}

func TestMarshal(t *testing.T) {
	events := []Event{
		{Tick: 103, Message: gomidi.NoteOn(1, 35, 69)},
		{Tick: 342, Message: gomidi.NoteOn(9, 43, 77)},
		{Tick: 343, Message: gomidi.NoteOff(9, 43)},
		{Tick: 359, Message: gomidi.NoteOff(1, 35)},
	}

	data, err := Marshal(events, 480)
	require.NoError(t, err)

	want := []byte{
		0x4D, 0x54, 0x68, 0x64, 0x00, 0x00, 0x00, 0x06, 0x00, 0x00, 0x00, 0x01, 0x01, 0xE0,
		0x4D, 0x54, 0x72, 0x6B, 0x00, 0x00, 0x00, 0x15,
		0x67, 0x91, 0x23, 0x45,
		0x81, 0x6F, 0x99, 0x2B, 0x4D,
		0x01, 0x89, 0x2B, 0x00,
		0x10, 0x81, 0x23, 0x00,
		0x00, 0xFF, 0x2F, 0x00,
	}
	assert.Equal(t, want, data)
}

func TestMarshal_ReadBack(t *testing.T) {
	events := []Event{
		{Tick: 0, Message: gomidi.NoteOn(0, 60, 100)},
		{Tick: 480, Message: gomidi.NoteOff(0, 60)},
		{Tick: 480, Message: gomidi.NoteOn(15, 127, 1)},
		{Tick: 20000, Message: gomidi.NoteOff(15, 127)},
	}

	data, err := Marshal(events, 480)
	require.NoError(t, err)

	s, err := smf.ReadFrom(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, s.Tracks, 1)
	assert.Equal(t, smf.MetricTicks(480), s.TimeFormat)

	var (
		abs uint64
		got []Event
	)
	for _, ev := range s.Tracks[0] {
		abs += uint64(ev.Delta)
		msg := []byte(ev.Message)
		if len(msg) == 3 && msg[0] < 0xF0 {
			got = append(got, Event{Tick: abs, Message: gomidi.Message(msg)})
		}
	}

	require.Len(t, got, len(events))
	for i := range events {
		assert.Equal(t, events[i].Tick, got[i].Tick)
		assert.Equal(t, []byte(events[i].Message), []byte(got[i].Message))
	}
}

func TestMarshal_Range(t *testing.T) {
	events := []Event{
		{Tick: 10, Message: gomidi.NoteOn(0, 60, 100)},
		{Tick: MaxVarLen + 1, Message: gomidi.NoteOff(0, 60)},
	}

	data, err := Marshal(events, 480)
	assert.Nil(t, data)
	assert.True(t, errors.Is(err, ErrVarLenRange))

	var rangeErr *RangeError
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, uint64(MaxVarLen+1), rangeErr.Value)
}

func TestMarshal_Unsorted(t *testing.T) {
	events := []Event{
		{Tick: 10, Message: gomidi.NoteOn(0, 60, 100)},
		{Tick: 5, Message: gomidi.NoteOff(0, 60)},
	}

	_, err := Marshal(events, 480)
	assert.True(t, errors.Is(err, ErrUnsortedEvents))
}

func TestMarshal_Division(t *testing.T) {
	_, err := Marshal(nil, 0)
	assert.True(t, errors.Is(err, ErrDivision))

	_, err = Marshal(nil, 0x8000)
	assert.True(t, errors.Is(err, ErrDivision))
}

func TestEncoder_Encode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewEncoder(&buf, 480).Encode(nil))
	assert.Equal(t, emptyFile, buf.Bytes())
}

func TestEncoder_NothingWrittenOnRangeError(t *testing.T) {
	w := &failWriter{}
	err := NewEncoder(w, 480).Encode([]Event{{Tick: MaxVarLen + 1, Message: gomidi.NoteOn(0, 1, 1)}})
	assert.True(t, errors.Is(err, ErrVarLenRange))
	assert.Equal(t, 0, w.calls)
}

func TestEncoder_WriteError(t *testing.T) {
	w := &failWriter{}
	err := NewEncoder(w, 480).Encode(nil)
	assert.EqualError(t, err, "disk full")
	assert.Equal(t, 1, w.calls)
}

func TestEvent(t *testing.T) {
	on := Event{Tick: 1, Message: gomidi.NoteOn(9, 43, 77)}
	off := Event{Tick: 2, Message: gomidi.NoteOff(9, 43)}

	assert.True(t, on.IsNoteOn())
	assert.False(t, on.IsNoteOff())
	assert.True(t, off.IsNoteOff())
	assert.False(t, off.IsNoteOn())

	assert.Equal(t, uint8(9), on.Channel())
	assert.Equal(t, uint8(43), on.Key())
	assert.Equal(t, uint8(77), on.Velocity())
	assert.Equal(t, uint8(0), off.Velocity())

	var empty Event
	assert.False(t, empty.IsNoteOn())
	assert.Equal(t, uint8(0), empty.Key())
}
