package domain

import (
	"context"
	"math/big"
)

// PrimaryNode is the chain's directly-queried RPC endpoint. Implementations
// classify their own chain's error shapes into the domain error kinds; the
// services above never parse upstream payloads.
type PrimaryNode interface {
	// CurrentBlock returns the node's latest block height.
	CurrentBlock(ctx context.Context) (uint64, error)

	// Transaction looks up a transaction by hash. A transaction the node has
	// dropped from its retention window fails with KindRecoverableMiss,
	// which tells the poller to consult the fallback indexer.
	Transaction(ctx context.Context, hash string) (TxStatus, error)

	// NativeBalance returns the account's balance of the chain's native
	// asset, in raw base units.
	NativeBalance(ctx context.Context, address string) (*big.Int, error)

	// AssetBalance returns the account's holding of one asset, in raw base
	// units. An account that never held the asset fails with
	// KindHoldingNotFound.
	AssetBalance(ctx context.Context, address, assetID string) (*big.Int, error)
}

// FallbackIndexer is a secondary lookup service with deeper history than the
// primary node. Consulted only after the node reports a recoverable miss.
type FallbackIndexer interface {
	Transaction(ctx context.Context, hash string) (IndexedTx, error)
}

// AssetCatalog is a network's immutable symbol directory, loaded once when
// the instance is initialized.
type AssetCatalog interface {
	// Lookup resolves a symbol case-insensitively.
	Lookup(symbol string) (AssetRecord, bool)

	// All returns every record, sorted by symbol.
	All() []AssetRecord
}
