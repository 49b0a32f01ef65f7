// Package logging builds the zap logger used by the catalog CLI.
package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Log formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Options configures New. Zero values give warn-level console logs on stderr.
type Options struct {
	Level      string // debug, info, warn, error
	Format     string // console or json
	File       string // rotating log file; stderr when empty
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// New returns a logger writing to stderr, or to a lumberjack-rotated file
// when opts.File is set.
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.WarnLevel
	if strings.TrimSpace(opts.Level) != "" {
		l, err := zapcore.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = l
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	switch strings.ToLower(opts.Format) {
	case "", FormatConsole:
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	case FormatJSON:
		enc = zapcore.NewJSONEncoder(encCfg)
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	var ws zapcore.WriteSyncer = zapcore.Lock(os.Stderr)
	if strings.TrimSpace(opts.File) != "" {
		ws = zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   opts.Compress,
		})
	}

	return zap.New(zapcore.NewCore(enc, ws, level)), nil
}
