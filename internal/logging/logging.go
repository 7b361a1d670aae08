// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// TimeFormat is used for console output.
const TimeFormat = "2006-01-02 15:04:05"

// levelSplitWriter routes ERROR and above to err and everything else to out.
type levelSplitWriter struct {
	out io.Writer
	err io.Writer
}

func (w levelSplitWriter) Write(p []byte) (int, error) {
	return w.out.Write(p)
}

func (w levelSplitWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level >= zerolog.ErrorLevel && level != zerolog.NoLevel {
		return w.err.Write(p)
	}
	return w.out.Write(p)
}

// ParseLevel parses a level name; empty means info.
func ParseLevel(level string) (zerolog.Level, error) {
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return l, nil
}

// New builds a logger writing human-readable lines: INFO/WARN to stdout,
// ERROR and above to stderr. When file is non-nil it also receives every
// event as JSON.
func New(stdout, stderr, file io.Writer, level zerolog.Level) zerolog.Logger {
	var w zerolog.LevelWriter = levelSplitWriter{
		out: zerolog.ConsoleWriter{Out: stdout, TimeFormat: TimeFormat, NoColor: true},
		err: zerolog.ConsoleWriter{Out: stderr, TimeFormat: TimeFormat, NoColor: true},
	}
	if file != nil {
		w = zerolog.MultiLevelWriter(w, file)
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Setup installs the global logger. If logPath is non-empty, events are also
// appended to that file. Returns a cleanup function that closes the log file
// (if opened).
func Setup(level, logPath string) (func(), error) {
	l, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var file io.Writer
	cleanup := func() {}
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		file = f
		cleanup = func() { f.Close() }
	}

	log.Logger = New(os.Stdout, os.Stderr, file, l)
	zerolog.DefaultContextLogger = &log.Logger
	return cleanup, nil
}
