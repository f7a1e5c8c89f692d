// ABOUTME: logrus setup for the gym CLI: level, formatter, and output.
// ABOUTME: Logs go to stderr by default so stdout stays free for command output and MCP stdio.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects how logs are written.
type Options struct {
	// Level is a logrus level name; unknown names fall back to warn.
	Level string
	// File, when set, receives logs through a size-rotated writer.
	File string
	// JSON switches to the JSON formatter.
	JSON bool
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup configures the standard logrus logger. The returned Closer releases
// the log file, if any.
func Setup(opts Options) (io.Closer, error) {
	return Configure(logrus.StandardLogger(), opts)
}

// Configure applies opts to l.
func Configure(l *logrus.Logger, opts Options) (io.Closer, error) {
	if opts.JSON {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: opts.File == ""})
	}

	l.SetLevel(GetLevel(opts.Level))

	if opts.File == "" {
		l.SetOutput(os.Stderr)
		return nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0750); err != nil {
		return nil, err
	}

	w := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		LocalTime:  false,
		Compress:   true,
	}
	l.SetOutput(w)
	return w, nil
}

// GetLevel maps a level name to a logrus level.
func GetLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	default:
		return logrus.WarnLevel
	}
}
