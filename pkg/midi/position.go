package midi

const beatsPerBar = 4

type beatRange struct {
	cnt int

	lowerBound uint64
	upperBound uint64
}

func newBeatRange(lowerBound uint64, upperBound uint64) *beatRange {
	return &beatRange{
		lowerBound: lowerBound,
		upperBound: upperBound,
	}
}

func (r *beatRange) stepBy(n int) {
	r.cnt += n
	step := r.upperBound - r.lowerBound

	r.upperBound += step * uint64(n)
	r.lowerBound += step * uint64(n)
}

func (r *beatRange) contains(tick uint64) bool {
	return tick >= r.lowerBound && tick < r.upperBound
}

func (r *beatRange) beat() int {
	return r.cnt % beatsPerBar
}

func (r *beatRange) bar() int {
	return r.cnt / beatsPerBar
}

// Position returns the zero based 4/4 bar and quarter note beat that tick falls in.
func Position(tick uint64, ticksPerQuarterNote uint16) (bar int, beat int) {
	if ticksPerQuarterNote == 0 {
		return 0, 0
	}

	n := uint64(ticksPerQuarterNote)
	r := newBeatRange(0, n)

	for !r.contains(tick) {
		if tick > n {
			r.stepBy(int(tick / n))
		} else {
			r.stepBy(1)
		}
	}

	return r.bar(), r.beat()
}
