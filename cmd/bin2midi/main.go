package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Garik-/bin2midi/pkg/transcode"
	"github.com/urfave/cli/v3"
)

func configFrom(cmd *cli.Command) transcode.Config {
	cfg := transcode.DefaultConfig()
	cfg.MaxChunks = cmd.Int("max-chunks")
	cfg.Workers = cmd.Int("workers")
	return cfg
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "bin2midi",
		Usage: "Turn arbitrary binary data into a Standard MIDI File",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log every pipeline stage",
			},
			&cli.IntFlag{
				Name:  "max-chunks",
				Usage: "stop after that many notes, 0 reads the whole input",
			},
			&cli.IntFlag{
				Name:  "workers",
				Value: 1,
				Usage: "goroutines mapping chunks of one input",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			l, err := newLogger(cmd.Bool("debug"))
			if err != nil {
				return ctx, err
			}
			enableLogging(l)
			if cmd.Bool("debug") {
				transcode.SetLogger(l)
			}
			return ctx, nil
		},
		After: func(ctx context.Context, cmd *cli.Command) error {
			_ = logger.Sync()
			return nil
		},
		Commands: []*cli.Command{
			convertCommand(),
			batchCommand(),
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
