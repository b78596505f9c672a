package memory

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/gamba-labs/gamba-go/pkg/config"
)

// ErrInduced is returned by Get while SetError(ErrInduced) is in effect.
var ErrInduced = errors.New("in memory config: induced error")

// Config is an in memory config.Config for tests and programmatic overrides.
type Config struct {
	mu       sync.RWMutex
	value    interface{}
	err      error
	shutdown bool
}

// NewConfig returns a config holding value. A nil value reads as unset.
func NewConfig(value interface{}) *Config {
	return &Config{value: value}
}

// Get implements Config.Get
func (c *Config) Get(_ context.Context) (interface{}, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch {
	case c.shutdown:
		return nil, config.ErrShutdown
	case c.err != nil:
		return nil, c.err
	case c.value == nil:
		return nil, config.ErrNoValue
	}
	return c.value, nil
}

// Shutdown implements Config.Shutdown
func (c *Config) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shutdown = true
}

// SetValue replaces the value. A nil value reads as unset.
func (c *Config) SetValue(value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = value
}

// SetError makes Get fail with err until it is cleared with a nil err.
func (c *Config) SetError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}
