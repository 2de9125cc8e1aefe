// Package logging builds the process logger.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TimeLayout is the timestamp layout of every log line.
const TimeLayout = "2006-01-02T15:04:05.000"

// Config returns the logger configuration: console lines made of
// timestamp, level, message and fields, written to stderr.
// verbose enables debug messages.
func Config(verbose bool) zap.Config {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.Sampling = nil
	config.DisableCaller = true
	config.DisableStacktrace = true
	config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(TimeLayout)
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	return config
}

// New builds the logger described by Config.
func New(verbose bool) (*zap.Logger, error) {
	return Config(verbose).Build()
}
