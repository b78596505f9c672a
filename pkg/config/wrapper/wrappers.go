package wrapper

import (
	"context"
	"strconv"
	"sync"

	"github.com/pkg/errors"

	"github.com/gamba-labs/gamba-go/pkg/config"
)

// ErrUnsuportedConversion indicates the wrapper does not implement conversion from the source type
var ErrUnsuportedConversion = errors.New("config: wrapper conversion from source type not implemented")

// converter turns a raw override value into T. ok is false when the source
// type is not supported.
type converter[T any] func(raw interface{}) (val T, ok bool, err error)

// TypedConfig is a utility wrapper that converts an untyped config.Config
// into a typed one with a default value.
type TypedConfig[T any] struct {
	override     config.Config
	defaultValue T
	convert      converter[T]

	stateMu   sync.RWMutex
	lastValue T
}

func newTypedConfig[T any](override config.Config, defaultValue T, convert converter[T]) *TypedConfig[T] {
	return &TypedConfig[T]{
		override:     override,
		defaultValue: defaultValue,
		convert:      convert,
		lastValue:    defaultValue,
	}
}

// GetSafe gets a config value and propagates any errors that arise. A best-effort
// attempt is made to return the last known value
func (c *TypedConfig[T]) GetSafe(ctx context.Context) (T, error) {
	override, err := c.override.Get(ctx)

	c.stateMu.RLock()
	lastValue := c.lastValue
	c.stateMu.RUnlock()

	if err == config.ErrNoValue {
		c.set(c.defaultValue)
		return c.defaultValue, nil
	} else if err != nil {
		return lastValue, err
	}

	newValue, ok, err := c.convert(override)
	if !ok {
		return lastValue, ErrUnsuportedConversion
	} else if err != nil {
		return lastValue, err
	}

	c.set(newValue)
	return newValue, nil
}

// Get is a wrapper for GetSafe that ignores the returned error
func (c *TypedConfig[T]) Get(ctx context.Context) T {
	val, _ := c.GetSafe(ctx)
	return val
}

// Shutdown signals the config to stop all underlying resources
func (c *TypedConfig[T]) Shutdown() {
	c.override.Shutdown()
}

func (c *TypedConfig[T]) set(val T) {
	c.stateMu.Lock()
	c.lastValue = val
	c.stateMu.Unlock()
}

// NewBoolConfig returns a new bool config utility wrapper
func NewBoolConfig(override config.Config, defaultValue bool) config.Bool {
	return newTypedConfig(override, defaultValue, func(raw interface{}) (bool, bool, error) {
		switch typed := raw.(type) {
		case []byte:
			val, err := strconv.ParseBool(string(typed))
			return val, true, err
		case bool:
			return typed, true, nil
		}
		return false, false, nil
	})
}

// NewUint64Config returns a new uint64 config utility wrapper
func NewUint64Config(override config.Config, defaultValue uint64) config.Uint64 {
	return newTypedConfig(override, defaultValue, func(raw interface{}) (uint64, bool, error) {
		switch typed := raw.(type) {
		case []byte:
			val, err := strconv.ParseUint(string(typed), 10, 64)
			return val, true, err
		case uint:
			return uint64(typed), true, nil
		case uint32:
			return uint64(typed), true, nil
		case uint64:
			return typed, true, nil
		}
		return 0, false, nil
	})
}

// NewFloat64Config returns a new float64 config utility wrapper
func NewFloat64Config(override config.Config, defaultValue float64) config.Float64 {
	return newTypedConfig(override, defaultValue, func(raw interface{}) (float64, bool, error) {
		switch typed := raw.(type) {
		case []byte:
			val, err := strconv.ParseFloat(string(typed), 64)
			return val, true, err
		case float32:
			return float64(typed), true, nil
		case float64:
			return typed, true, nil
		}
		return 0, false, nil
	})
}

// NewStringConfig returns a new string config utility wrapper
func NewStringConfig(override config.Config, defaultValue string) config.String {
	return newTypedConfig(override, defaultValue, func(raw interface{}) (string, bool, error) {
		switch typed := raw.(type) {
		case []byte:
			return string(typed), true, nil
		case string:
			return typed, true, nil
		}
		return "", false, nil
	})
}
