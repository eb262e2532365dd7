package midi

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	headerSize = 6

	// FormatSingleTrack is the only file format the encoder produces.
	FormatSingleTrack uint16 = 0
)

var (
	headerChunkID = [4]byte{0x4D, 0x54, 0x68, 0x64}
	trackChunkID  = [4]byte{0x4D, 0x54, 0x72, 0x6B}

	// delta 0, meta 0x2F, length 0
	endOfTrack = []byte{0x00, 0xFF, 0x2F, 0x00}

	// ErrUnsortedEvents is a generic error reporting events that go back in time.
	ErrUnsortedEvents = errors.New("events are not sorted by tick")
	// ErrDivision reports a division that cannot be stored as metrical ticks.
	ErrDivision = errors.New("ticks per quarter note must be in 1..32767")
)

type header struct {
	ID        [4]byte
	Size      uint32
	Format    uint16
	NumTracks uint16
	Division  uint16
}

type chunkHeader struct {
	ID   [4]byte
	Size uint32
}

// Encoder writes format 0 Standard MIDI Files.
type Encoder struct {
	w io.Writer

	TicksPerQuarterNote uint16
}

func NewEncoder(w io.Writer, ticksPerQuarterNote uint16) *Encoder {
	return &Encoder{w: w, TicksPerQuarterNote: ticksPerQuarterNote}
}

// Encode writes a single track file holding events. Nothing reaches the
// underlying writer unless the whole file was encoded.
func (e *Encoder) Encode(events []Event) error {
	data, err := Marshal(events, e.TicksPerQuarterNote)
	if err != nil {
		return err
	}

	_, err = e.w.Write(data)
	return err
}

// Marshal returns the header chunk and one track chunk for events, which must
// be sorted by tick. The track length is filled in once the body is complete.
func Marshal(events []Event, ticksPerQuarterNote uint16) ([]byte, error) {
	if ticksPerQuarterNote == 0 || ticksPerQuarterNote&0x8000 != 0 {
		return nil, fmt.Errorf("%w - %d", ErrDivision, ticksPerQuarterNote)
	}

	body, err := encodeTrack(events)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(14 + 8 + len(body))

	h := header{
		ID:        headerChunkID,
		Size:      headerSize,
		Format:    FormatSingleTrack,
		NumTracks: 1,
		Division:  ticksPerQuarterNote,
	}
	if err := binary.Write(&buf, binary.BigEndian, h); err != nil {
		return nil, err
	}

	th := chunkHeader{ID: trackChunkID, Size: uint32(len(body))}
	if err := binary.Write(&buf, binary.BigEndian, th); err != nil {
		return nil, err
	}
	buf.Write(body)

	return buf.Bytes(), nil
}

func encodeTrack(events []Event) ([]byte, error) {
	var (
		body []byte
		last uint64
		err  error
	)

	body = make([]byte, 0, len(events)*5+len(endOfTrack))

	for i, e := range events {
		if e.Tick > MaxVarLen {
			return nil, &RangeError{Value: e.Tick}
		}
		if e.Tick < last {
			return nil, fmt.Errorf("%w - event %d at tick %d after tick %d", ErrUnsortedEvents, i, e.Tick, last)
		}

		body, err = appendVarLen(body, e.Tick-last)
		if err != nil {
			return nil, err
		}
		body = append(body, e.Message...)
		last = e.Tick
	}

	return append(body, endOfTrack...), nil
}
