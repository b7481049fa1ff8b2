package internal

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	EncodingConsole = "console"
	EncodingJSON    = "json"
)

// NewLogger builds a logger writing to stdout. Verbosity follows the
// VerbosityLow/Medium/High scale used in the config file.
func NewLogger(verbosity int, encoding string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = encoding
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(levelForVerbosity(verbosity))
	cfg.DisableStacktrace = true
	if encoding == EncodingConsole {
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		cfg.DisableCaller = true
	}
	return cfg.Build()
}

func levelForVerbosity(verbosity int) zapcore.Level {
	switch {
	case verbosity >= VerbosityHigh:
		return zapcore.DebugLevel
	case verbosity >= VerbosityMedium:
		return zapcore.InfoLevel
	default:
		return zapcore.WarnLevel
	}
}
