package main

import (
	"context"

	"github.com/Garik-/bin2midi/pkg/transcode"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "convert one file",
		ArgsUsage: "INPUT",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Value:   "out.mid",
				Usage:   "output midi file",
			},
			&cli.BoolFlag{
				Name:  "print",
				Usage: "list the note messages on stdout instead of writing a file",
			},
		},
		Action: runConvert,
	}
}

func runConvert(ctx context.Context, cmd *cli.Command) error {
	log := convertLog.Named("runConvert")

	in := cmd.Args().First()
	if in == "" {
		return errors.New("missing input file")
	}

	tr := transcode.New(configFrom(cmd))

	if cmd.Bool("print") {
		return printFile(ctx, tr, in, cmd.Root().Writer)
	}

	out := cmd.String("out")
	stats, err := tr.ConvertFile(ctx, in, out)
	if err != nil {
		return errors.Wrapf(err, "convert %s", in)
	}

	log.Info("written",
		zap.String("in", in),
		zap.String("out", out),
		zap.Int("notes", stats.Chunks),
		zap.Uint64("lastTick", stats.LastTick),
	)

	return nil
}
