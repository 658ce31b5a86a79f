// Package logging configures the module's zerolog logger, rotating its
// output through lumberjack the way the teacher wires scheduler.log
// (spec §6: a rotating log file beside the database).
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where and how the logger writes.
type Options struct {
	// Dir is the directory the log file lives in, typically the same
	// directory as the SQLite database.
	Dir      string
	Filename string // defaults to "scheduler.log"
	Console  bool   // also mirror output to stderr, human-readable
}

// New builds a zerolog.Logger writing to a rotating file, optionally
// mirrored to the console.
func New(opts Options) (zerolog.Logger, error) {
	filename := opts.Filename
	if filename == "" {
		filename = "scheduler.log"
	}

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return zerolog.Logger{}, err
	}

	rotate := &lumberjack.Logger{
		Filename:   filepath.Join(opts.Dir, filename),
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}

	var w io.Writer = rotate
	if opts.Console {
		w = zerolog.MultiLevelWriter(rotate, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	}

	logger := zerolog.New(w).With().Timestamp().Logger()
	return logger, nil
}
