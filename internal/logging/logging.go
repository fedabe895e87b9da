// Package logging builds the zap logger shared by the desktop app and the CLI.
package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DebugEnv turns on debug logging when set to a non-empty value other than
// "0" or "false".
const DebugEnv = "PAPERS_DEBUG"

// New constructs a console logger writing to stderr. Debug level is used when
// verbose is set or DebugEnv asks for it; otherwise info.
func New(verbose bool) (*zap.Logger, error) {
	return Config(verbose || debugFromEnv()).Build()
}

// Config returns the logger configuration for the given verbosity.
func Config(debug bool) zap.Config {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	cfg.Sampling = nil
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg
}

func debugFromEnv() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(DebugEnv)))
	return v != "" && v != "0" && v != "false"
}
