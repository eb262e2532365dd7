package midi

import (
	"errors"
	"fmt"
)

// MaxVarLen is the largest value a four byte variable length quantity can hold.
const MaxVarLen = 0x0FFFFFFF

// ErrVarLenRange is a generic error reporting a value that does not fit a variable length quantity.
var ErrVarLenRange = errors.New("variable length value out of range")

// RangeError reports the tick value that could not be encoded.
type RangeError struct {
	Value uint64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s - %d exceeds %d", ErrVarLenRange, e.Value, MaxVarLen)
}

// Is makes errors.Is(err, ErrVarLenRange) hold for every RangeError.
func (e *RangeError) Is(target error) bool {
	return target == ErrVarLenRange
}

// EncodeVarLen returns the variable length encoding of v, most significant group first.
func EncodeVarLen(v uint64) ([]byte, error) {
	return appendVarLen(nil, v)
}

func appendVarLen(buf []byte, v uint64) ([]byte, error) {
	if v > MaxVarLen {
		return buf, &RangeError{Value: v}
	}

	var tmp [4]byte
	i := len(tmp) - 1
	tmp[i] = byte(v & 0x7F)

	for v >>= 7; v > 0; v >>= 7 {
		i--
		tmp[i] = byte(v&0x7F) | 0x80
	}

	return append(buf, tmp[i:]...), nil
}
