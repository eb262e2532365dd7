package transcode

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DurationEntries is the size of the duration table, one entry per nibble value.
const DurationEntries = 16

// NoteEvent describes one note derived from a chunk.
type NoteEvent struct {
	Channel  uint8
	Note     uint8
	Velocity uint8
	// OnsetDelta is relative to the onset of the previous note.
	OnsetDelta uint32
	Duration   uint64
}

// DurationTable returns baseTicks * DurationExponentBase^i for i in 0..15.
func DurationTable(baseTicks uint32) [DurationEntries]uint64 {
	var table [DurationEntries]uint64

	d := uint64(baseTicks)
	for i := range table {
		table[i] = d
		d *= DurationExponentBase
	}

	return table
}

// Mapper turns chunks into note events.
type Mapper struct {
	durations [DurationEntries]uint64
}

func NewMapper(cfg Config) *Mapper {
	cfg = cfg.withDefaults()
	return &Mapper{durations: DurationTable(cfg.BaseTicks)}
}

func combine(hi, lo Nibble) uint8 {
	return uint8(hi&0x0F)<<4 | uint8(lo&0x0F)
}

// Map is total: every chunk yields a playable note.
func (m *Mapper) Map(c Chunk) NoteEvent {
	velocity := combine(c[3], c[4]) % 128
	if velocity == 0 {
		// a zero velocity note-on would end the note
		velocity = 1
	}

	return NoteEvent{
		Channel:    uint8(c[0] & 0x0F),
		Note:       combine(c[1], c[2]) % 128,
		Velocity:   velocity,
		OnsetDelta: uint32(combine(c[5], c[6])),
		Duration:   m.durations[c[7]&0x0F],
	}
}

// MapChunks maps chunks using up to workers goroutines. The result keeps the
// order of chunks.
func (m *Mapper) MapChunks(ctx context.Context, chunks []Chunk, workers int) ([]NoteEvent, error) {
	out := make([]NoteEvent, len(chunks))

	if workers <= 1 || len(chunks) < 2*workers {
		for i, c := range chunks {
			out[i] = m.Map(c)
		}
		return out, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	size := (len(chunks) + workers - 1) / workers

	for lo := 0; lo < len(chunks); lo += size {
		hi := min(lo+size, len(chunks))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := lo; i < hi; i++ {
				out[i] = m.Map(chunks[i])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
