package domain

import (
	"math/big"
	"strings"
	"time"
)

// NetworkKey identifies one connection instance: a chain family plus the
// network within it (e.g. "algorand"/"mainnet", "ethereum"/"sepolia").
type NetworkKey struct {
	Chain   string `json:"chain"`
	Network string `json:"network"`
}

// NewNetworkKey builds a normalized key. Chain and network names are
// case-insensitive everywhere in the gateway.
func NewNetworkKey(chain, network string) NetworkKey {
	return NetworkKey{
		Chain:   strings.ToLower(strings.TrimSpace(chain)),
		Network: strings.ToLower(strings.TrimSpace(network)),
	}
}

func (k NetworkKey) String() string {
	return k.Chain + "/" + k.Network
}

// AssetRecord describes one asset in a network's catalog. The ID is the
// chain-native identifier: an ASA index for algorand, a contract address for
// ethereum; the native asset carries an empty ID.
type AssetRecord struct {
	Symbol   string `json:"symbol"`
	ID       string `json:"asset_id,omitempty"`
	Decimals int32  `json:"decimals"`
	Native   bool   `json:"native,omitempty"`
}

// ChainInstance is the live connection object for one NetworkKey. Created by
// a chain factory, owned by the registry, at most one per key. Read-only
// after initialization.
type ChainInstance struct {
	Key         NetworkKey
	Node        PrimaryNode
	Indexer     FallbackIndexer
	NativeAsset AssetRecord
	Assets      AssetCatalog
	CreatedAt   time.Time
}

// TxStatus is the primary node's view of a transaction it knows about.
type TxStatus struct {
	Pending bool
	Block   uint64   // confirmed block, meaningful only when !Pending
	Fee     *big.Int // raw fee if the payload carries one, else nil
}

// IndexedTx is the fallback indexer's view of a confirmed transaction,
// including the indexer's own notion of current height.
type IndexedTx struct {
	CurrentBlock uint64
	Block        uint64
	Fee          *big.Int
}

// TxPollResult is the normalized outcome of one confirmation poll. A nil
// TxBlock means the transaction is known but not yet included in a block.
type TxPollResult struct {
	CurrentBlock uint64   `json:"current_block"`
	TxBlock      *uint64  `json:"tx_block"`
	TxHash       string   `json:"tx_hash"`
	Fee          *big.Int `json:"fee,omitempty"`
}

// Confirmed reports whether the poll observed the transaction in a block.
func (r *TxPollResult) Confirmed() bool {
	return r.TxBlock != nil
}

// StatusEntry is the current view of one initialized network. Error is set
// only in multi-network responses, where one failing network must not take
// down the entries for the others.
type StatusEntry struct {
	Chain          string    `json:"chain"`
	Network        string    `json:"network"`
	CurrentBlock   uint64    `json:"current_block"`
	NativeCurrency string    `json:"native_currency"`
	ConnectedAt    time.Time `json:"connected_at"`
	Error          string    `json:"error,omitempty"`
}

// BalanceSet maps requested symbols to decimal-string balances, with timing
// for the whole resolution.
type BalanceSet struct {
	Address   string            `json:"address"`
	Balances  map[string]string `json:"balances"`
	Timestamp time.Time         `json:"timestamp"`
	Latency   time.Duration     `json:"latency"`
}
