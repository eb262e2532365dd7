package transcode

import (
	"errors"
	"io"
	"iter"
)

const (
	// ChunkSize is the number of nibbles that describe one note.
	ChunkSize = 8

	chunkBytes = ChunkSize / 2
)

// Chunk holds the nibbles of one note, in order:
// channel, note hi/lo, velocity hi/lo, onset hi/lo, length.
type Chunk [ChunkSize]Nibble

// Assemble groups nibbles into chunks. A short final chunk is padded with zeros.
func Assemble(nibbles iter.Seq[Nibble]) iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		var (
			c Chunk
			n int
		)

		for v := range nibbles {
			c[n] = v
			n++
			if n == ChunkSize {
				if !yield(c) {
					return
				}
				c, n = Chunk{}, 0
			}
		}

		if n > 0 {
			yield(c)
		}
	}
}

// ChunkReader reads chunks from a byte stream without holding more than one
// chunk of input.
type ChunkReader struct {
	r   io.Reader
	buf [chunkBytes]byte
	err error
}

func NewChunkReader(r io.Reader) *ChunkReader {
	return &ChunkReader{r: r}
}

// Next returns the next chunk, or io.EOF once the input is exhausted.
func (cr *ChunkReader) Next() (Chunk, error) {
	if cr.err != nil {
		return Chunk{}, cr.err
	}

	n, err := io.ReadFull(cr.r, cr.buf[:])
	switch {
	case errors.Is(err, io.EOF):
		cr.err = io.EOF
		return Chunk{}, cr.err
	case errors.Is(err, io.ErrUnexpectedEOF):
		// short tail, still yields a padded chunk
		cr.err = io.EOF
	case err != nil:
		cr.err = &ReadError{Err: err}
		return Chunk{}, cr.err
	}

	for c := range Assemble(Split(cr.buf[:n])) {
		return c, nil
	}

	return Chunk{}, io.EOF
}
