package sse

import "time"

// Config holds configuration for SSE connections
type Config struct {
	// KeepAliveInterval is how often an idle stream gets a comment line.
	// Proxies commonly drop connections idle for 30-60 seconds.
	KeepAliveInterval time.Duration

	// ReplayLimit is how many recent events a new subscriber receives first
	ReplayLimit int
}

// DefaultConfig returns the default SSE configuration
func DefaultConfig() *Config {
	return &Config{
		KeepAliveInterval: 15 * time.Second,
		ReplayLimit:       20,
	}
}
