package probe

import "time"

// Config holds configuration for a probe run.
type Config struct {
	BaseURL  string        // Base URL of the relay
	Queries  []string      // Search terms; "" probes the default-term path
	Requests int           // Total trending requests to issue
	Workers  int           // Concurrent workers
	Timeout  time.Duration // Per-request HTTP timeout
	LogFile  string        // Optional log file
	Verbose  bool          // Log every response
}

// Card mirrors the relay's prompt card shape.
type Card struct {
	ID         string `json:"id"`
	ImageURL   string `json:"image_url"`
	PromptText string `json:"prompt_text"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
}

// Liveness mirrors the GET / payload.
type Liveness struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Stats tallies probe outcomes.
type Stats struct {
	Requests    int
	OK          int
	Unavailable int
	Internal    int
	Other       int
	Violations  int
	CardsSeen   int
	StartTime   time.Time
	Duration    time.Duration
}
