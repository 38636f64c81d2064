package config

import "testing"

func TestLoad_DeclaredNetworks(t *testing.T) {
	t.Setenv("NODEGATE_ALGORAND_NETWORKS", "mainnet, TestNet")
	t.Setenv("ALGOD_MAINNET_URL", "https://algod.example")
	t.Setenv("INDEXER_MAINNET_URL", "https://indexer.example")
	t.Setenv("ALGOD_TESTNET_URL", "https://algod-test.example")
	t.Setenv("ALGOD_TESTNET_TOKEN", "tok")
	t.Setenv("INDEXER_TESTNET_URL", "https://indexer-test.example")
	t.Setenv("NODEGATE_ETHEREUM_NETWORKS", "mainnet")
	t.Setenv("ETH_MAINNET_RPC_URL", "https://rpc.example")
	t.Setenv("ETH_MAINNET_EXPLORER_URL", "https://explorer.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.Algorand) != 2 {
		t.Fatalf("expected 2 algorand networks, got %d", len(cfg.Algorand))
	}
	if cfg.Algorand["testnet"].AlgodToken != "tok" {
		t.Errorf("expected testnet token to load, got %+v", cfg.Algorand["testnet"])
	}
	if cfg.Ethereum["mainnet"].RPCURL != "https://rpc.example" {
		t.Errorf("unexpected ethereum config: %+v", cfg.Ethereum["mainnet"])
	}
	if cfg.AssetDir != "assets" {
		t.Errorf("expected default asset dir, got %q", cfg.AssetDir)
	}
}

func TestLoad_MissingEndpoint(t *testing.T) {
	t.Setenv("NODEGATE_ALGORAND_NETWORKS", "mainnet")
	t.Setenv("ALGOD_MAINNET_URL", "https://algod.example")
	// INDEXER_MAINNET_URL deliberately unset

	if _, err := Load(); err == nil {
		t.Error("expected error for declared network missing its indexer URL")
	}
}

func TestLoad_NoNetworks(t *testing.T) {
	t.Setenv("NODEGATE_ALGORAND_NETWORKS", "")
	t.Setenv("NODEGATE_ETHEREUM_NETWORKS", "")

	if _, err := Load(); err == nil {
		t.Error("expected error when no networks are declared")
	}
}
