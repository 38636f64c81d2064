package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/nodegate/nodegate/internal/adapters/chain"
)

// Config holds gateway configuration loaded from environment variables.
type Config struct {
	// AssetDir is the directory of JSON asset catalog files, used unless
	// RedisURL points at a shared catalog store.
	AssetDir string

	// RedisURL, when set, switches catalog loading to redis.
	RedisURL string

	Algorand map[string]chain.AlgorandEndpoints
	Ethereum map[string]chain.EVMEndpoints
}

// Load reads configuration from the environment. Networks are declared in
// NODEGATE_ALGORAND_NETWORKS / NODEGATE_ETHEREUM_NETWORKS as comma-separated
// lists; each declared network must have its endpoint variables set, e.g.
// for algorand "mainnet": ALGOD_MAINNET_URL and INDEXER_MAINNET_URL
// (tokens optional), and for ethereum "mainnet": ETH_MAINNET_RPC_URL and
// ETH_MAINNET_EXPLORER_URL.
func Load() (*Config, error) {
	cfg := &Config{
		AssetDir: envOr("NODEGATE_ASSET_DIR", "assets"),
		RedisURL: os.Getenv("NODEGATE_REDIS_URL"),
		Algorand: map[string]chain.AlgorandEndpoints{},
		Ethereum: map[string]chain.EVMEndpoints{},
	}

	for _, network := range splitList(os.Getenv("NODEGATE_ALGORAND_NETWORKS")) {
		prefix := strings.ToUpper(network)
		endpoints := chain.AlgorandEndpoints{
			AlgodURL:     os.Getenv("ALGOD_" + prefix + "_URL"),
			AlgodToken:   os.Getenv("ALGOD_" + prefix + "_TOKEN"),
			IndexerURL:   os.Getenv("INDEXER_" + prefix + "_URL"),
			IndexerToken: os.Getenv("INDEXER_" + prefix + "_TOKEN"),
		}
		if endpoints.AlgodURL == "" {
			return nil, fmt.Errorf("ALGOD_%s_URL is required for declared network %q", prefix, network)
		}
		if endpoints.IndexerURL == "" {
			return nil, fmt.Errorf("INDEXER_%s_URL is required for declared network %q", prefix, network)
		}
		cfg.Algorand[network] = endpoints
	}

	for _, network := range splitList(os.Getenv("NODEGATE_ETHEREUM_NETWORKS")) {
		prefix := strings.ToUpper(network)
		endpoints := chain.EVMEndpoints{
			RPCURL:      os.Getenv("ETH_" + prefix + "_RPC_URL"),
			ExplorerURL: os.Getenv("ETH_" + prefix + "_EXPLORER_URL"),
			ExplorerKey: os.Getenv("ETH_" + prefix + "_EXPLORER_KEY"),
		}
		if endpoints.RPCURL == "" {
			return nil, fmt.Errorf("ETH_%s_RPC_URL is required for declared network %q", prefix, network)
		}
		if endpoints.ExplorerURL == "" {
			return nil, fmt.Errorf("ETH_%s_EXPLORER_URL is required for declared network %q", prefix, network)
		}
		cfg.Ethereum[network] = endpoints
	}

	if len(cfg.Algorand) == 0 && len(cfg.Ethereum) == 0 {
		return nil, fmt.Errorf("no networks declared; set NODEGATE_ALGORAND_NETWORKS and/or NODEGATE_ETHEREUM_NETWORKS")
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
