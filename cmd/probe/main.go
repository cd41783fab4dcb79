package main

import (
	"context"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/okian/adgenius/internal/probe"
)

const (
	defaultRequests = 10
	defaultWorkers  = 2
	defaultTimeout  = 20 * time.Second
	runTimeout      = 5 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:8000", "Base URL of the relay")
		queries  = flag.String("q", "", "Comma-separated search terms; empty probes the default term")
		requests = flag.Int("requests", defaultRequests, "Number of trending requests to issue")
		workers  = flag.Int("workers", defaultWorkers, "Number of concurrent workers")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile  = flag.String("log", "", "Also write logs to this file")
		verbose  = flag.Bool("verbose", false, "Log every response")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		probe.ShowHelp()
		return
	}

	closer, err := probe.SetupLogging(*logFile)
	if err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() { _ = closer.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cfg := &probe.Config{
		BaseURL:  strings.TrimRight(*baseURL, "/"),
		Queries:  splitQueries(*queries),
		Requests: *requests,
		Workers:  *workers,
		Timeout:  *timeout,
		LogFile:  *logFile,
		Verbose:  *verbose,
	}

	if _, err := probe.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("Probe failed: " + err.Error() + "\n")
		cancel()
		os.Exit(1)
	}
}

func splitQueries(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	var out []string
	for _, q := range strings.Split(v, ",") {
		out = append(out, strings.TrimSpace(q))
	}
	return out
}
