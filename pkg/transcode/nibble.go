package transcode

import "iter"

// Nibble is a 4-bit value.
type Nibble uint8

// Split yields the nibbles of data, high nibble first. The sequence can be
// ranged over any number of times.
func Split(data []byte) iter.Seq[Nibble] {
	return func(yield func(Nibble) bool) {
		for _, b := range data {
			if !yield(Nibble(b >> 4)) {
				return
			}
			if !yield(Nibble(b & 0x0F)) {
				return
			}
		}
	}
}
