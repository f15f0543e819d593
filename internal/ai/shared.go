package ai

import (
	"sync"
	"time"

	"staffmatch/internal/config"

	"go.uber.org/zap"
)

var (
	sharedMu       sync.Mutex
	sharedClient   *Client
	sharedSettings Settings
	sharedTimeout  time.Duration
	sharedLogger   *zap.Logger
)

// SetLogger sets the logger used by clients built through Shared. It applies to
// the next client that is built.
func SetLogger(l *zap.Logger) {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	sharedLogger = l
}

// Shared returns the process-wide client for cfg. The client is built on first
// use and reused while the resolved settings stay the same; a change of
// provider, model or key builds a replacement. Configuration errors never
// touch the cached client.
func Shared(cfg config.AIConfig) (*Client, error) {
	s, err := Resolve(cfg)
	if err != nil {
		return nil, err
	}

	sharedMu.Lock()
	defer sharedMu.Unlock()

	if sharedClient != nil && sharedSettings == s && sharedTimeout == cfg.Timeout {
		return sharedClient, nil
	}
	sharedClient = NewClient(s, cfg.Timeout, sharedLogger)
	sharedSettings = s
	sharedTimeout = cfg.Timeout
	return sharedClient, nil
}

// SharedGenerator adapts Shared to a Generator factory.
func SharedGenerator(cfg config.AIConfig) (Generator, error) {
	c, err := Shared(cfg)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Reset drops the shared client so the next Shared call builds a fresh one.
func Reset() {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	sharedClient = nil
	sharedSettings = Settings{}
	sharedTimeout = 0
}
