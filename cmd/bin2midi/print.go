package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Garik-/bin2midi/pkg/midi"
	"github.com/Garik-/bin2midi/pkg/transcode"
	"github.com/pkg/errors"
)

func printFile(ctx context.Context, tr *transcode.Transcoder, name string, w io.Writer) error {
	f, err := os.Open(name)
	if err != nil {
		return errors.Wrap(err, "open input")
	}
	defer f.Close()

	events, err := tr.Events(ctx, bufio.NewReader(f))
	if err != nil {
		return errors.Wrapf(err, "read %s", name)
	}

	return printEvents(w, events, tr.Config().TicksPerQuarterNote)
}

// printEvents writes one line per message with its position counted from bar 1 beat 1.
func printEvents(w io.Writer, events []midi.Event, division uint16) error {
	bw := bufio.NewWriter(w)

	var last uint64
	for _, e := range events {
		kind := "note-on"
		if e.IsNoteOff() {
			kind = "note-off"
		}

		bar, beat := midi.Position(e.Tick, division)
		_, err := fmt.Fprintf(bw, "%-8s %-4s : channel %2d : velocity %3d : tick %d (+%d) : bar %d beat %d\n",
			kind, midi.NoteName(e.Key()), e.Channel(), e.Velocity(), e.Tick, e.Tick-last, bar+1, beat+1)
		if err != nil {
			return err
		}
		last = e.Tick
	}

	return bw.Flush()
}
