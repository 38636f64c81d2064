package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/nodegate/nodegate/internal/adapters/chain"
	"github.com/nodegate/nodegate/internal/assetdir"
	"github.com/nodegate/nodegate/internal/config"
	"github.com/nodegate/nodegate/internal/core/service"
	"github.com/nodegate/nodegate/pkg/version"
)

func main() {
	_ = godotenv.Load()

	var (
		chainName   = flag.String("chain", "", "chain name, e.g. algorand or ethereum")
		network     = flag.String("network", "", "network name, e.g. mainnet or testnet")
		op          = flag.String("op", "status", "operation: status, poll, balances or assets")
		address     = flag.String("address", "", "account address for balances")
		txHash      = flag.String("tx", "", "transaction hash for poll")
		symbols     = flag.String("symbols", "", "comma-separated asset symbols")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	loader, err := newCatalogLoader(cfg)
	if err != nil {
		log.Fatalf("Catalog loader error: %v", err)
	}

	registry := service.NewRegistry(
		chain.NewAlgorandFactory(cfg.Algorand, loader),
		chain.NewEVMFactory(cfg.Ethereum, loader),
	)
	defer registry.Close()

	ctx := context.Background()
	log.Printf("nodegate %s, op=%s", version.String(), *op)

	var result any
	switch *op {
	case "status":
		result, err = service.NewStatusService(registry).Status(ctx, *chainName, *network)
	case "poll":
		result, err = service.NewPollService(registry).Poll(ctx, *chainName, *network, *txHash)
	case "balances":
		result, err = service.NewBalanceService(registry).Balances(ctx, *chainName, *network, *address, splitSymbols(*symbols))
	case "assets":
		result, err = service.NewAssetService(registry).Assets(ctx, *chainName, *network, splitSymbols(*symbols))
	default:
		log.Fatalf("Unknown op %q (want status, poll, balances or assets)", *op)
	}
	if err != nil {
		log.Fatalf("Operation %s failed: %v", *op, err)
	}

	output, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(output))
}

// newCatalogLoader prefers a shared redis catalog when NODEGATE_REDIS_URL is
// set, otherwise falls back to per-network JSON files on disk.
func newCatalogLoader(cfg *config.Config) (assetdir.Loader, error) {
	if cfg.RedisURL == "" {
		return assetdir.NewFileLoader(cfg.AssetDir), nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return assetdir.NewRedisLoader(redis.NewClient(opts)), nil
}

func splitSymbols(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
