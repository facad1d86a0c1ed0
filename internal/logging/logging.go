package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Setup directs the process-wide logger at an append-only diagnostic log
// file, creating the parent directory if needed. It returns a closer for the
// underlying file.
func Setup(path string) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logrus.SetOutput(f)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetLevel(level())

	return f, nil
}

// Discard silences the process-wide logger. Used when no log file is
// available so diagnostics never mix into command output.
func Discard() {
	logrus.SetOutput(io.Discard)
}

func level() logrus.Level {
	if l, err := logrus.ParseLevel(os.Getenv("JTRACK_LOG_LEVEL")); err == nil {
		return l
	}
	return logrus.InfoLevel
}
