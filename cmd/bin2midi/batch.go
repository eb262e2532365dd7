package main

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Garik-/bin2midi/pkg/transcode"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

const (
	maxGoroutines = 10
)

type result struct {
	in    string
	out   string
	stats transcode.Stats
	err   error
}

func batchCommand() *cli.Command {
	return &cli.Command{
		Name:  "batch",
		Usage: "convert every file named in a list",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "list",
				Aliases:  []string{"l"},
				Required: true,
				Usage:    "the path to the list of input files,\nfind . -type f -name \"*.bin\" > list.txt",
			},
			&cli.StringFlag{
				Name:  "out-dir",
				Usage: "directory for the midi files, next to each input when empty",
			},
			&cli.IntFlag{
				Name:    "parallel",
				Aliases: []string{"p"},
				Value:   maxGoroutines,
				Usage:   "number of files processed in parallel, must be > 0",
			},
		},
		Action: runBatch,
	}
}

func runBatch(ctx context.Context, cmd *cli.Command) error {
	parallel := cmd.Int("parallel")
	if parallel <= 0 {
		return errors.Errorf("parallel must be > 0, got %d", parallel)
	}

	f, err := os.Open(cmd.String("list"))
	if err != nil {
		return errors.Wrap(err, "open list")
	}
	defer f.Close()

	tr := transcode.New(configFrom(cmd))

	paths, listErr := readList(ctx, f)

	s, err := collect(ctx, tr, paths, cmd.String("out-dir"), parallel)
	if err != nil {
		return err
	}
	if err := <-listErr; err != nil {
		return errors.Wrap(err, "read list")
	}

	if err := s.write(cmd.Root().Writer); err != nil {
		return err
	}

	if s.failed > 0 {
		return errors.Errorf("%d of %d files failed", s.failed, s.files)
	}
	return nil
}

// outputPath swaps the extension of in for .mid.
func outputPath(in string, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in)) + ".mid"

	dir := outDir
	if dir == "" {
		dir = filepath.Dir(in)
	}

	out := filepath.Join(dir, base)
	if out == filepath.Clean(in) {
		out += ".mid"
	}
	return out
}

func encodeFile(ctx context.Context, tr *transcode.Transcoder, in string, outDir string) *result {
	out := &result{in: in, out: outputPath(in, outDir)}
	out.stats, out.err = tr.ConvertFile(ctx, in, out.out)
	return out
}

// readList sends every non-blank line of file. The error channel receives
// exactly one value once the paths channel is closed.
func readList(ctx context.Context, file io.Reader) (<-chan string, <-chan error) {
	out := make(chan string)
	errc := make(chan error, 1)

	scanner := bufio.NewScanner(file)
	scanner.Split(bufio.ScanLines)

	go func() {
		defer close(errc)
		defer close(out)

		for scanner.Scan() {
			path := strings.TrimSpace(scanner.Text())
			if path == "" {
				continue
			}

			select {
			case out <- path:
			case <-ctx.Done():
				errc <- nil
				return
			}
		}

		errc <- scanner.Err()
	}()

	return out, errc
}

func encodeWorker(ctx context.Context, tr *transcode.Transcoder, paths <-chan string, outDir string, cntRoutines int) (<-chan *result, <-chan struct{}) {
	log := batchLog.Named("encodeWorker")
	out := make(chan *result)
	done := make(chan struct{}, 1)

	go func() {
		var wg sync.WaitGroup
		goroutines := make(chan struct{}, cntRoutines)

	loop:
		for path := range paths {
			select {
			case goroutines <- struct{}{}:
			case <-ctx.Done():
				log.Debug("context done")
				break loop
			}
			wg.Add(1)
			go func(ctx context.Context, path string, goroutines <-chan struct{}, out chan<- *result, wg *sync.WaitGroup) {
				defer wg.Done()

				select {
				case out <- encodeFile(ctx, tr, path, outDir):
				case <-ctx.Done():
					log.Debug("encodeFile context done", zap.String("path", path))
				}
				<-goroutines

			}(ctx, path, goroutines, out, &wg)
		}

		wg.Wait()
		close(goroutines)
		close(out)

		done <- struct{}{}
		close(done)
	}()

	return out, done
}
