package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Garik-/bin2midi/pkg/transcode"
	"go.uber.org/zap"
)

type summary struct {
	files    int
	failed   int
	notes    int
	lastTick uint64
	// channel -> notes
	channels [16]int
}

func (s *summary) add(r *result) {
	s.files++
	if r.err != nil {
		s.failed++
		return
	}

	s.notes += r.stats.Chunks
	if r.stats.LastTick > s.lastTick {
		s.lastTick = r.stats.LastTick
	}
	for ch, n := range r.stats.NotesPerChannel {
		s.channels[ch] += n
	}
}

func (s *summary) write(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "files\t%d\n", s.files)
	fmt.Fprintf(tw, "failed\t%d\n", s.failed)
	fmt.Fprintf(tw, "notes\t%d\n", s.notes)
	fmt.Fprintf(tw, "longest\t%d ticks\n", s.lastTick)
	for ch, n := range s.channels {
		if n == 0 {
			continue
		}
		fmt.Fprintf(tw, "channel %d\t%d\n", ch, n)
	}

	return tw.Flush()
}

func collect(parent context.Context, tr *transcode.Transcoder, paths <-chan string, outDir string, cntRoutines int) (*summary, error) {
	log := batchLog.Named("collect")
	ctx, cancel := context.WithCancel(parent)
	results, done := encodeWorker(ctx, tr, paths, outDir, cntRoutines)

	defer func() {
		log.Debug("cancel")
		cancel()
		<-done // wait encodeWorker closed
	}()

	s := new(summary)

	for result := range results {
		s.add(result)

		if result.err != nil {
			log.Error("convert", zap.String("in", result.in), zap.Error(result.err))
			continue
		}

		log.Debug("result",
			zap.String("in", result.in),
			zap.String("out", result.out),
			zap.Int("notes", result.stats.Chunks),
		)
	}

	if err := parent.Err(); err != nil {
		return s, err
	}
	return s, nil
}
