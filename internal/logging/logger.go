// Package logging builds the zerolog logger shared by the interpreter, the
// router and the front-ends.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration
type Config struct {
	Level     string // debug, info, warn or error (default: info)
	Dir       string // directory for log files; empty disables the file
	Verbose   bool   // also log to stderr
	SessionID string
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New creates a logger writing plain console lines to a dated file under
// cfg.Dir and, when Verbose is set, colored lines to stderr. With neither output
// configured it returns a disabled logger.
func New(cfg Config) (zerolog.Logger, io.Closer, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		l, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = l
	}

	var (
		writers []io.Writer
		closer  io.Closer = nopCloser{}
	)

	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("failed to create log directory: %w", err)
		}
		path := filepath.Join(cfg.Dir, FileName(time.Now()))
		file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("failed to open log file: %w", err)
		}
		writers = append(writers, zerolog.ConsoleWriter{Out: file, NoColor: true, TimeFormat: time.RFC3339})
		closer = file
	}

	if cfg.Verbose {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	}

	if len(writers) == 0 {
		return zerolog.Nop(), closer, nil
	}

	ctx := zerolog.New(io.MultiWriter(writers...)).Level(level).With().Timestamp()
	if cfg.SessionID != "" {
		ctx = ctx.Str("session", cfg.SessionID)
	}
	return ctx.Logger(), closer, nil
}

// FileName is the log file name used for day t.
func FileName(t time.Time) string {
	return fmt.Sprintf("nlterm_%s.log", t.Format("2006-01-02"))
}
