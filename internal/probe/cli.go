package probe

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/adgenius/pkg/logger"
)

const (
	logFilePermission = 0600
)

// SetupLogging initializes the logger on stdout and, when logFile is set,
// on that file as well.
func SetupLogging(logFile string) (io.Closer, error) {
	if logFile == "" {
		return nopCloser{}, logger.Init()
	}
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	if err := logger.InitWith(io.MultiWriter(os.Stdout, file), "text"); err != nil {
		_ = file.Close()
		return nil, err
	}
	return file, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// ShowHelp prints usage information for the probe.
func ShowHelp() {
	os.Stdout.WriteString(`AdGenius Relay Probe
====================

Checks a running relay against its HTTP contract.

Usage:
  go run ./cmd/probe [options]

Options:
  -url string
        Base URL of the relay (default "http://localhost:8000")
  -q string
        Comma-separated search terms; empty probes the default term
  -requests int
        Number of trending requests to issue (default 10)
  -workers int
        Number of concurrent workers (default 2)
  -timeout duration
        HTTP request timeout (default 20s)
  -log string
        Also write logs to this file
  -verbose
        Log every response
  -help
        Show this help message
`)
}
