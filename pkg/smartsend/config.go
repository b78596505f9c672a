package smartsend

import (
	"github.com/gamba-labs/gamba-go/pkg/config"
	"github.com/gamba-labs/gamba-go/pkg/config/env"
	"github.com/gamba-labs/gamba-go/pkg/config/memory"
	"github.com/gamba-labs/gamba-go/pkg/config/wrapper"
)

const (
	envConfigPrefix = "SMART_SEND_"

	ComputeUnitBufferConfigEnvName = envConfigPrefix + "COMPUTE_UNIT_BUFFER"
	defaultComputeUnitBuffer       = 1.15

	DefaultComputeUnitsConfigEnvName = envConfigPrefix + "DEFAULT_COMPUTE_UNITS"
	defaultDefaultComputeUnits       = 200_000

	PreflightCommitmentConfigEnvName = envConfigPrefix + "PREFLIGHT_COMMITMENT"
	defaultPreflightCommitment       = "confirmed"

	SkipPreflightConfigEnvName = envConfigPrefix + "SKIP_PREFLIGHT"
	defaultSkipPreflight       = false
)

type conf struct {
	computeUnitBuffer   config.Float64
	defaultComputeUnits config.Uint64
	preflightCommitment config.String
	skipPreflight       config.Bool
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			computeUnitBuffer:   env.NewFloat64Config(ComputeUnitBufferConfigEnvName, defaultComputeUnitBuffer),
			defaultComputeUnits: env.NewUint64Config(DefaultComputeUnitsConfigEnvName, defaultDefaultComputeUnits),
			preflightCommitment: env.NewStringConfig(PreflightCommitmentConfigEnvName, defaultPreflightCommitment),
			skipPreflight:       env.NewBoolConfig(SkipPreflightConfigEnvName, defaultSkipPreflight),
		}
	}
}

type testOverrides struct {
	computeUnitBuffer   float64
	defaultComputeUnits uint64
}

func withManualTestOverrides(overrides *testOverrides) ConfigProvider {
	return func() *conf {
		return &conf{
			computeUnitBuffer:   wrapper.NewFloat64Config(memory.NewConfig(overrides.computeUnitBuffer), defaultComputeUnitBuffer),
			defaultComputeUnits: wrapper.NewUint64Config(memory.NewConfig(overrides.defaultComputeUnits), defaultDefaultComputeUnits),
			preflightCommitment: wrapper.NewStringConfig(memory.NewConfig(defaultPreflightCommitment), defaultPreflightCommitment),
			skipPreflight:       wrapper.NewBoolConfig(memory.NewConfig(defaultSkipPreflight), defaultSkipPreflight),
		}
	}
}
