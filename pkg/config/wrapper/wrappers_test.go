package wrapper

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamba-labs/gamba-go/pkg/config"
	"github.com/gamba-labs/gamba-go/pkg/config/memory"
)

type typedTestCase[T any] struct {
	name          string
	ctor          func(config.Config, T) config.Typed[T]
	defaultValue  T
	overrideValue T
	encoded       []byte
	decoded       T
}

func runTypedConfigTest[T any](t *testing.T, tc typedTestCase[T]) {
	t.Run(tc.name, func(t *testing.T) {
		ctx := context.Background()
		mock := memory.NewConfig(nil)
		wrapper := tc.ctor(mock, tc.defaultValue)

		// Return the default value when no override is set
		val, err := wrapper.GetSafe(ctx)
		require.NoError(t, err)
		assert.Equal(t, tc.defaultValue, val)
		assert.Equal(t, tc.defaultValue, wrapper.Get(ctx))

		// The overriden value is returned when set
		mock.SetValue(tc.overrideValue)
		val, err = wrapper.GetSafe(ctx)
		require.NoError(t, err)
		assert.Equal(t, tc.overrideValue, val)

		// The last observed config value is returned on error
		mock.SetError(memory.ErrInduced)
		val, err = wrapper.GetSafe(ctx)
		require.Error(t, err)
		assert.Equal(t, tc.overrideValue, val)

		// The default value is returned when the override no longer has a value
		mock.SetError(nil)
		mock.SetValue(nil)
		val, err = wrapper.GetSafe(ctx)
		require.NoError(t, err)
		assert.Equal(t, tc.defaultValue, val)

		// Verify conversion from a byte array
		mock.SetValue(tc.encoded)
		val, err = wrapper.GetSafe(ctx)
		require.NoError(t, err)
		assert.Equal(t, tc.decoded, val)

		// Return an unsupported source value type
		mock.SetValue(struct{}{})
		val, err = wrapper.GetSafe(ctx)
		assert.Equal(t, ErrUnsuportedConversion, err)
		assert.Equal(t, tc.decoded, val)

		// Shutdown the config via the wrapper
		wrapper.Shutdown()
		_, err = wrapper.GetSafe(ctx)
		assert.Equal(t, config.ErrShutdown, err)
	})
}

func TestTypedConfigs(t *testing.T) {
	runTypedConfigTest(t, typedTestCase[bool]{
		name:          "bool",
		ctor:          NewBoolConfig,
		defaultValue:  true,
		overrideValue: false,
		encoded:       []byte("true"),
		decoded:       true,
	})
	runTypedConfigTest(t, typedTestCase[uint64]{
		name:          "uint64",
		ctor:          NewUint64Config,
		defaultValue:  math.MaxUint64,
		overrideValue: 0,
		encoded:       []byte("200000"),
		decoded:       200000,
	})
	runTypedConfigTest(t, typedTestCase[float64]{
		name:          "float64",
		ctor:          NewFloat64Config,
		defaultValue:  math.Pi,
		overrideValue: -math.Phi,
		encoded:       []byte("1.15"),
		decoded:       1.15,
	})
	runTypedConfigTest(t, typedTestCase[string]{
		name:          "string",
		ctor:          NewStringConfig,
		defaultValue:  "default",
		overrideValue: "override",
		encoded:       []byte("confirmed"),
		decoded:       "confirmed",
	})
}

func TestInvalidEncodingKeepsLastValue(t *testing.T) {
	ctx := context.Background()
	mock := memory.NewConfig([]byte("1.5"))
	wrapper := NewFloat64Config(mock, 1.15)
	assert.Equal(t, 1.5, wrapper.Get(ctx))

	mock.SetValue([]byte("cannot convert"))
	val, err := wrapper.GetSafe(ctx)
	require.Error(t, err)
	assert.Equal(t, 1.5, val)
}
