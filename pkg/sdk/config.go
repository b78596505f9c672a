package sdk

import (
	"github.com/gamba-labs/gamba-go/pkg/config"
	"github.com/gamba-labs/gamba-go/pkg/config/env"
	"github.com/gamba-labs/gamba-go/pkg/config/memory"
	"github.com/gamba-labs/gamba-go/pkg/config/wrapper"
	"github.com/gamba-labs/gamba-go/pkg/solana"
)

const (
	envConfigPrefix = "GAMBA_"

	RpcEndpointConfigEnvName = envConfigPrefix + "RPC_ENDPOINT"
	defaultRpcEndpoint       = string(solana.EnvironmentProd)

	RpcRequestsPerSecondConfigEnvName = envConfigPrefix + "RPC_REQUESTS_PER_SECOND"
	defaultRpcRequestsPerSecond       = 0

	HistoryConcurrencyConfigEnvName = envConfigPrefix + "HISTORY_CONCURRENCY"
	defaultHistoryConcurrency       = 4

	TransactionCacheSizeConfigEnvName = envConfigPrefix + "TRANSACTION_CACHE_SIZE"
	defaultTransactionCacheSize       = 1024
)

type conf struct {
	rpcEndpoint          config.String
	rpcRequestsPerSecond config.Float64
	historyConcurrency   config.Uint64
	transactionCacheSize config.Uint64
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			rpcEndpoint:          env.NewStringConfig(RpcEndpointConfigEnvName, defaultRpcEndpoint),
			rpcRequestsPerSecond: env.NewFloat64Config(RpcRequestsPerSecondConfigEnvName, defaultRpcRequestsPerSecond),
			historyConcurrency:   env.NewUint64Config(HistoryConcurrencyConfigEnvName, defaultHistoryConcurrency),
			transactionCacheSize: env.NewUint64Config(TransactionCacheSizeConfigEnvName, defaultTransactionCacheSize),
		}
	}
}

type testOverrides struct {
	historyConcurrency   uint64
	transactionCacheSize uint64
}

func withManualTestOverrides(overrides *testOverrides) ConfigProvider {
	return func() *conf {
		return &conf{
			rpcEndpoint:          wrapper.NewStringConfig(memory.NewConfig(defaultRpcEndpoint), defaultRpcEndpoint),
			rpcRequestsPerSecond: wrapper.NewFloat64Config(memory.NewConfig(float64(defaultRpcRequestsPerSecond)), defaultRpcRequestsPerSecond),
			historyConcurrency:   wrapper.NewUint64Config(memory.NewConfig(overrides.historyConcurrency), defaultHistoryConcurrency),
			transactionCacheSize: wrapper.NewUint64Config(memory.NewConfig(overrides.transactionCacheSize), defaultTransactionCacheSize),
		}
	}
}
