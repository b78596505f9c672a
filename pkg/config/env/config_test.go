package env

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gamba-labs/gamba-go/pkg/config"
)

func TestConfigDoesntExist(t *testing.T) {
	const env = "ENV_CONFIG_TEST_VAR"
	os.Setenv(env, "default")

	v, err := NewConfig(env).Get(context.Background())
	assert.Equal(t, []byte("default"), v)
	assert.Nil(t, err)

	os.Unsetenv(env)

	v, err = NewConfig(env).Get(context.Background())
	assert.Nil(t, v)
	assert.Equal(t, config.ErrNoValue, err)
}

func TestTypedConfigs(t *testing.T) {
	t.Setenv("ENV_CONFIG_TEST_BUFFER", "1.25")
	t.Setenv("ENV_CONFIG_TEST_UNITS", "300000")
	t.Setenv("ENV_CONFIG_TEST_SKIP", "true")

	ctx := context.Background()
	assert.Equal(t, 1.25, NewFloat64Config("ENV_CONFIG_TEST_BUFFER", 1.15).Get(ctx))
	assert.EqualValues(t, 300000, NewUint64Config("ENV_CONFIG_TEST_UNITS", 200000).Get(ctx))
	assert.True(t, NewBoolConfig("ENV_CONFIG_TEST_SKIP", false).Get(ctx))
	assert.Equal(t, "confirmed", NewStringConfig("ENV_CONFIG_TEST_UNSET", "confirmed").Get(ctx))
}
