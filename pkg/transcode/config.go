package transcode

const (
	// TicksPerQuarterNote is the division written to the header chunk.
	TicksPerQuarterNote = 480
	// BaseTicks is the shortest entry of the duration table.
	BaseTicks = 1
	// DurationExponentBase is the ratio between neighbouring duration table entries.
	DurationExponentBase = 2

	defaultBatchSize = 1024
)

// Config holds the parameters shared by every run of a Transcoder.
type Config struct {
	TicksPerQuarterNote uint16
	BaseTicks           uint32

	// MaxChunks stops reading after that many chunks, 0 means the whole input.
	MaxChunks int
	// Workers above 1 maps each batch of chunks concurrently.
	Workers   int
	BatchSize int
}

func DefaultConfig() Config {
	return Config{
		TicksPerQuarterNote: TicksPerQuarterNote,
		BaseTicks:           BaseTicks,
		Workers:             1,
		BatchSize:           defaultBatchSize,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.TicksPerQuarterNote == 0 {
		c.TicksPerQuarterNote = d.TicksPerQuarterNote
	}
	if c.BaseTicks == 0 {
		c.BaseTicks = d.BaseTicks
	}
	if c.Workers <= 0 {
		c.Workers = d.Workers
	}
	if c.BatchSize <= 0 {
		c.BatchSize = d.BatchSize
	}
	if c.MaxChunks < 0 {
		c.MaxChunks = 0
	}
	return c
}
