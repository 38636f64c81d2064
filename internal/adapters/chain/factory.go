package chain

import (
	"context"
	"fmt"
	"time"

	"github.com/nodegate/nodegate/internal/assetdir"
	"github.com/nodegate/nodegate/internal/core/domain"
)

// AlgorandEndpoints holds one algorand network's upstream endpoints.
type AlgorandEndpoints struct {
	AlgodURL     string
	AlgodToken   string
	IndexerURL   string
	IndexerToken string
}

// AlgorandFactory builds chain instances for algorand networks.
type AlgorandFactory struct {
	networks map[string]AlgorandEndpoints
	loader   assetdir.Loader
}

// NewAlgorandFactory creates a factory over configured networks and an asset
// catalog loader.
func NewAlgorandFactory(networks map[string]AlgorandEndpoints, loader assetdir.Loader) *AlgorandFactory {
	return &AlgorandFactory{networks: networks, loader: loader}
}

// Supports checks if the factory handles the given chain name.
func (f *AlgorandFactory) Supports(chain string) bool {
	return chain == "algorand"
}

// Build connects to the network's algod and indexer endpoints and loads its
// asset catalog. Probes the node once so an unreachable endpoint fails
// initialization instead of the first request.
func (f *AlgorandFactory) Build(ctx context.Context, key domain.NetworkKey) (*domain.ChainInstance, error) {
	endpoints, ok := f.networks[key.Network]
	if !ok {
		return nil, fmt.Errorf("algorand network %q not configured", key.Network)
	}
	if endpoints.AlgodURL == "" || endpoints.IndexerURL == "" {
		return nil, fmt.Errorf("algorand network %q missing algod or indexer URL", key.Network)
	}

	catalog, err := loadCatalog(ctx, f.loader, key)
	if err != nil {
		return nil, err
	}

	node := NewAlgodNode(endpoints.AlgodURL, endpoints.AlgodToken)
	if _, err := node.CurrentBlock(ctx); err != nil {
		return nil, fmt.Errorf("algod probe failed: %w", err)
	}

	return &domain.ChainInstance{
		Key:         key,
		Node:        node,
		Indexer:     NewAlgoIndexer(endpoints.IndexerURL, endpoints.IndexerToken),
		NativeAsset: catalog.Native(),
		Assets:      catalog,
		CreatedAt:   time.Now(),
	}, nil
}

// EVMEndpoints holds one EVM network's upstream endpoints.
type EVMEndpoints struct {
	RPCURL      string
	ExplorerURL string
	ExplorerKey string
}

// EVMFactory builds chain instances for EVM networks.
type EVMFactory struct {
	networks map[string]EVMEndpoints
	loader   assetdir.Loader
}

// NewEVMFactory creates a factory over configured networks and an asset
// catalog loader.
func NewEVMFactory(networks map[string]EVMEndpoints, loader assetdir.Loader) *EVMFactory {
	return &EVMFactory{networks: networks, loader: loader}
}

// Supports checks if the factory handles the given chain name.
func (f *EVMFactory) Supports(chain string) bool {
	return chain == "ethereum"
}

// Build dials the network's RPC endpoint and loads its asset catalog.
func (f *EVMFactory) Build(ctx context.Context, key domain.NetworkKey) (*domain.ChainInstance, error) {
	endpoints, ok := f.networks[key.Network]
	if !ok {
		return nil, fmt.Errorf("ethereum network %q not configured", key.Network)
	}
	if endpoints.RPCURL == "" || endpoints.ExplorerURL == "" {
		return nil, fmt.Errorf("ethereum network %q missing RPC or explorer URL", key.Network)
	}

	catalog, err := loadCatalog(ctx, f.loader, key)
	if err != nil {
		return nil, err
	}

	node, err := NewEVMNode(endpoints.RPCURL)
	if err != nil {
		return nil, err
	}
	if _, err := node.CurrentBlock(ctx); err != nil {
		node.Close()
		return nil, fmt.Errorf("RPC probe failed: %w", err)
	}

	return &domain.ChainInstance{
		Key:         key,
		Node:        node,
		Indexer:     NewEtherscanIndexer(endpoints.ExplorerURL, endpoints.ExplorerKey),
		NativeAsset: catalog.Native(),
		Assets:      catalog,
		CreatedAt:   time.Now(),
	}, nil
}

func loadCatalog(ctx context.Context, loader assetdir.Loader, key domain.NetworkKey) (*assetdir.Set, error) {
	records, err := loader.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load asset catalog for %s: %w", key, err)
	}
	catalog, err := assetdir.NewSet(records)
	if err != nil {
		return nil, fmt.Errorf("invalid asset catalog for %s: %w", key, err)
	}
	return catalog, nil
}
