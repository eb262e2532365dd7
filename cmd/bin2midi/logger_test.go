package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestEnableLogging(t *testing.T) {
	prev, prevConvert, prevBatch := logger, convertLog, batchLog
	t.Cleanup(func() {
		logger, convertLog, batchLog = prev, prevConvert, prevBatch
	})

	core, logs := observer.New(zapcore.DebugLevel)
	enableLogging(zap.New(core))

	logger.Info("root")
	convertLog.Info("one")
	batchLog.Info("two")

	entries := logs.AllUntimed()
	if assert.Len(t, entries, 3) {
		assert.Equal(t, "", entries[0].LoggerName)
		assert.Equal(t, "convert", entries[1].LoggerName)
		assert.Equal(t, "batch", entries[2].LoggerName)
	}
}
