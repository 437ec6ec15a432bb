package repository

import (
	"github.com/eeese/showcase/internal/domain/event"
)

// Config holds repository configuration
type Config struct {
	// CoalesceReads lets concurrent reads of the same scope share one fetch.
	CoalesceReads bool

	// Dispatcher receives cache events. Nil disables them.
	Dispatcher event.EventDispatcher
}

// DefaultConfig returns default repository configuration
func DefaultConfig() *Config {
	return &Config{
		CoalesceReads: false,
	}
}
