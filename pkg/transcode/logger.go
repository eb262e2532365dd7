package transcode

import "go.uber.org/zap"

var transcodeLog = zap.NewNop()
var sequencerLog = zap.NewNop()

// SetLogger enables logging for the package.
func SetLogger(l *zap.Logger) {
	transcodeLog = l.Named("transcode")
	sequencerLog = l.Named("sequencer")
}
