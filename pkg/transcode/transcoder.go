package transcode

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/Garik-/bin2midi/pkg/midi"
	"go.uber.org/zap"
)

// Stats describes the output of one run.
type Stats struct {
	Chunks   int
	Messages int
	// LastTick is the absolute tick of the last message.
	LastTick uint64
	// NotesPerChannel counts note-on messages by channel.
	NotesPerChannel [16]int
}

func newStats(events []midi.Event) Stats {
	s := Stats{Messages: len(events)}
	for _, e := range events {
		if e.IsNoteOn() {
			s.Chunks++
			s.NotesPerChannel[e.Channel()]++
		}
		s.LastTick = e.Tick
	}
	return s
}

// Transcoder converts byte streams to Standard MIDI Files.
type Transcoder struct {
	cfg    Config
	mapper *Mapper
}

func New(cfg Config) *Transcoder {
	cfg = cfg.withDefaults()
	return &Transcoder{cfg: cfg, mapper: NewMapper(cfg)}
}

func (t *Transcoder) Config() Config {
	return t.cfg
}

func (t *Transcoder) limitReached(n int) bool {
	return t.cfg.MaxChunks > 0 && n >= t.cfg.MaxChunks
}

// Events reads r to the end and returns the sorted note messages.
func (t *Transcoder) Events(ctx context.Context, r io.Reader) ([]midi.Event, error) {
	log := transcodeLog.Named("Events")

	cr := NewChunkReader(r)
	seq := NewSequencer()
	batch := make([]Chunk, 0, t.cfg.BatchSize)
	total := 0

	for done := false; !done; {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		batch = batch[:0]
		for len(batch) < cap(batch) {
			if t.limitReached(total + len(batch)) {
				done = true
				break
			}

			c, err := cr.Next()
			if err == io.EOF {
				done = true
				break
			}
			if err != nil {
				log.Debug("read", zap.Error(err))
				return nil, err
			}
			batch = append(batch, c)
		}

		events, err := t.mapper.MapChunks(ctx, batch, t.cfg.Workers)
		if err != nil {
			return nil, err
		}

		for _, e := range events {
			seq.Push(e)
		}
		total += len(batch)

		log.Debug("batch", zap.Int("chunks", len(batch)), zap.Uint64("clock", seq.Clock()))
	}

	log.Debug("sequenced", zap.Int("chunks", total), zap.Int("messages", seq.Len()))

	return seq.Messages(), nil
}

// Transcode reads r and writes the MIDI file to w.
func (t *Transcoder) Transcode(ctx context.Context, r io.Reader, w io.Writer) (Stats, error) {
	events, err := t.Events(ctx, r)
	if err != nil {
		return Stats{}, err
	}

	if err := midi.NewEncoder(w, t.cfg.TicksPerQuarterNote).Encode(events); err != nil {
		if isEncodeError(err) {
			return Stats{}, err
		}
		return Stats{}, &WriteError{Err: err}
	}

	stats := newStats(events)
	transcodeLog.Debug("transcoded",
		zap.Int("chunks", stats.Chunks),
		zap.Uint64("lastTick", stats.LastTick),
	)

	return stats, nil
}

func isEncodeError(err error) bool {
	return errors.Is(err, midi.ErrVarLenRange) ||
		errors.Is(err, midi.ErrUnsortedEvents) ||
		errors.Is(err, midi.ErrDivision)
}

// ConvertFile transcodes the file at in into out. The output is written to a
// temporary file next to out and renamed into place only after success, so
// out is never left half written.
func (t *Transcoder) ConvertFile(ctx context.Context, in, out string) (stats Stats, err error) {
	src, err := os.Open(in)
	if err != nil {
		return Stats{}, &ReadError{Err: err}
	}
	defer src.Close()

	tmp, err := os.CreateTemp(filepath.Dir(out), "."+filepath.Base(out)+".*")
	if err != nil {
		return Stats{}, &WriteError{Err: err}
	}

	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriter(tmp)
	stats, err = t.Transcode(ctx, bufio.NewReader(src), bw)
	if err != nil {
		return Stats{}, err
	}

	if err := commit(bw, tmp, out); err != nil {
		return Stats{}, &WriteError{Err: err}
	}
	committed = true

	return stats, nil
}

func commit(bw *bufio.Writer, tmp *os.File, out string) error {
	if err := bw.Flush(); err != nil {
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), out)
}
