package main

import "go.uber.org/zap"

var logger = zap.NewNop()
var convertLog = zap.NewNop()
var batchLog = zap.NewNop()

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func enableLogging(l *zap.Logger) {
	logger = l
	convertLog = l.Named("convert")
	batchLog = l.Named("batch")
}
