package service

import (
	"context"
	"math/big"
	"strings"
	"sync/atomic"
	"time"

	"github.com/nodegate/nodegate/internal/core/domain"
)

// fakeNode is a scriptable PrimaryNode.
type fakeNode struct {
	currentBlock    uint64
	currentBlockErr error

	tx    domain.TxStatus
	txErr error

	nativeBalance *big.Int
	nativeErr     error

	assetBalances map[string]*big.Int // assetID -> raw
	assetErr      error

	closed bool
}

func (n *fakeNode) CurrentBlock(ctx context.Context) (uint64, error) {
	return n.currentBlock, n.currentBlockErr
}

func (n *fakeNode) Transaction(ctx context.Context, hash string) (domain.TxStatus, error) {
	return n.tx, n.txErr
}

func (n *fakeNode) NativeBalance(ctx context.Context, address string) (*big.Int, error) {
	return n.nativeBalance, n.nativeErr
}

func (n *fakeNode) AssetBalance(ctx context.Context, address, assetID string) (*big.Int, error) {
	if n.assetErr != nil {
		return nil, n.assetErr
	}
	raw, ok := n.assetBalances[assetID]
	if !ok {
		return nil, domain.Errorf(domain.KindHoldingNotFound, "fake.AssetBalance",
			"no holding of asset %s", assetID)
	}
	return raw, nil
}

func (n *fakeNode) Close() { n.closed = true }

// fakeIndexer is a scriptable FallbackIndexer that records whether it was
// consulted.
type fakeIndexer struct {
	tx     domain.IndexedTx
	err    error
	called atomic.Bool
}

func (i *fakeIndexer) Transaction(ctx context.Context, hash string) (domain.IndexedTx, error) {
	i.called.Store(true)
	if i.err != nil {
		return domain.IndexedTx{}, i.err
	}
	return i.tx, nil
}

// fakeCatalog implements domain.AssetCatalog over a record slice.
type fakeCatalog struct {
	records []domain.AssetRecord
}

func (c *fakeCatalog) Lookup(symbol string) (domain.AssetRecord, bool) {
	want := strings.ToUpper(strings.TrimSpace(symbol))
	for _, rec := range c.records {
		if rec.Symbol == want {
			return rec, true
		}
	}
	return domain.AssetRecord{}, false
}

func (c *fakeCatalog) All() []domain.AssetRecord {
	return c.records
}

// fakeFactory builds instances around a fixed node/indexer pair and counts
// initializations.
type fakeFactory struct {
	chain   string
	node    *fakeNode
	indexer *fakeIndexer
	catalog *fakeCatalog
	native  domain.AssetRecord

	builds   atomic.Int64
	buildErr error
	delay    time.Duration
}

func (f *fakeFactory) Supports(chain string) bool {
	return chain == f.chain
}

func (f *fakeFactory) Build(ctx context.Context, key domain.NetworkKey) (*domain.ChainInstance, error) {
	f.builds.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.buildErr != nil {
		return nil, f.buildErr
	}

	native := f.native
	if native.Symbol == "" {
		native = domain.AssetRecord{Symbol: "ALGO", Decimals: 6, Native: true}
	}
	catalog := f.catalog
	if catalog == nil {
		catalog = &fakeCatalog{records: []domain.AssetRecord{native}}
	}

	return &domain.ChainInstance{
		Key:         key,
		Node:        f.node,
		Indexer:     f.indexer,
		NativeAsset: native,
		Assets:      catalog,
		CreatedAt:   time.Now(),
	}, nil
}

func newTestFactory() *fakeFactory {
	return &fakeFactory{
		chain:   "algorand",
		node:    &fakeNode{currentBlock: 100},
		indexer: &fakeIndexer{},
	}
}
