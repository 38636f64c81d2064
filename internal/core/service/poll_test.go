package service

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/nodegate/nodegate/internal/core/domain"
)

func TestPoll_Pending(t *testing.T) {
	factory := newTestFactory()
	factory.node.currentBlock = 100
	factory.node.tx = domain.TxStatus{Pending: true, Fee: big.NewInt(1000)}
	poll := NewPollService(NewRegistry(factory))

	result, err := poll.Poll(context.Background(), "algorand", "mainnet", "0xabc")
	if err != nil {
		t.Fatalf("poll failed: %v", err)
	}

	if result.TxBlock != nil {
		t.Errorf("pending tx must report a nil tx block, got %d", *result.TxBlock)
	}
	if result.Confirmed() {
		t.Error("pending tx must not report confirmed")
	}
	if result.CurrentBlock != 100 {
		t.Errorf("expected current block 100, got %d", result.CurrentBlock)
	}
	if result.TxHash != "0xabc" {
		t.Errorf("expected tx hash to pass through, got %q", result.TxHash)
	}
	if result.Fee == nil || result.Fee.Int64() != 1000 {
		t.Errorf("expected fee 1000 from the payload, got %v", result.Fee)
	}
	if factory.indexer.called.Load() {
		t.Error("indexer must not be consulted for a pending tx")
	}
}

func TestPoll_Confirmed(t *testing.T) {
	factory := newTestFactory()
	factory.node.currentBlock = 100
	factory.node.tx = domain.TxStatus{Block: 99, Fee: big.NewInt(1000)}
	poll := NewPollService(NewRegistry(factory))

	result, err := poll.Poll(context.Background(), "algorand", "mainnet", "0xabc")
	if err != nil {
		t.Fatalf("poll failed: %v", err)
	}

	if result.TxBlock == nil || *result.TxBlock != 99 {
		t.Fatalf("expected tx block 99 unchanged from the node, got %v", result.TxBlock)
	}
	if !result.Confirmed() {
		t.Error("expected confirmed state")
	}
	if factory.indexer.called.Load() {
		t.Error("indexer must not be consulted when the node reports a block")
	}
}

func TestPoll_RecoverableMissFallsBackToIndexer(t *testing.T) {
	factory := newTestFactory()
	factory.node.txErr = domain.Errorf(domain.KindRecoverableMiss, "fake.Transaction",
		"transaction not found in pool or recent rounds")
	factory.indexer.tx = domain.IndexedTx{CurrentBlock: 100, Block: 99, Fee: big.NewInt(1000)}
	poll := NewPollService(NewRegistry(factory))

	result, err := poll.Poll(context.Background(), "algorand", "mainnet", "0xabc")
	if err != nil {
		t.Fatalf("poll failed: %v", err)
	}

	if !factory.indexer.called.Load() {
		t.Fatal("expected the indexer to be consulted on a recoverable miss")
	}
	if result.CurrentBlock != 100 {
		t.Errorf("expected the indexer's current height 100, got %d", result.CurrentBlock)
	}
	if result.TxBlock == nil || *result.TxBlock != 99 {
		t.Errorf("expected confirmed block 99 from the indexer, got %v", result.TxBlock)
	}
	if result.Fee == nil || result.Fee.Int64() != 1000 {
		t.Errorf("expected fee 1000 from the indexer, got %v", result.Fee)
	}
}

func TestPoll_IndexerFailurePropagates(t *testing.T) {
	factory := newTestFactory()
	factory.node.txErr = domain.Errorf(domain.KindRecoverableMiss, "fake.Transaction", "dropped")
	factory.indexer.err = domain.E(domain.KindNetwork, "fake.Indexer", errors.New("indexer down"))
	poll := NewPollService(NewRegistry(factory))

	_, err := poll.Poll(context.Background(), "algorand", "mainnet", "0xabc")
	if !domain.IsNetwork(err) {
		t.Errorf("expected the indexer's network error to propagate, got %v", err)
	}
}

func TestPoll_NetworkErrorSkipsIndexer(t *testing.T) {
	factory := newTestFactory()
	factory.node.txErr = domain.E(domain.KindNetwork, "fake.Transaction", errors.New("i/o timeout"))
	poll := NewPollService(NewRegistry(factory))

	_, err := poll.Poll(context.Background(), "algorand", "mainnet", "0xabc")
	if !domain.IsNetwork(err) {
		t.Fatalf("expected network error, got %v", err)
	}
	if factory.indexer.called.Load() {
		t.Error("a transport-level failure must never trigger the indexer fallback")
	}
}

func TestPoll_UnknownErrorDistinctFromNetwork(t *testing.T) {
	factory := newTestFactory()
	factory.node.txErr = errors.New("malformed upstream response")
	poll := NewPollService(NewRegistry(factory))

	_, err := poll.Poll(context.Background(), "algorand", "mainnet", "0xabc")
	if err == nil {
		t.Fatal("expected error")
	}
	if domain.IsNetwork(err) {
		t.Error("an unclassified failure must not be reported as a network error")
	}
	if domain.KindOf(err) != domain.KindUnknown {
		t.Errorf("expected unknown kind, got %s", domain.KindOf(err))
	}
	if factory.indexer.called.Load() {
		t.Error("an unknown failure must not trigger the indexer fallback")
	}
}

func TestPoll_CurrentBlockFailurePropagates(t *testing.T) {
	factory := newTestFactory()
	factory.node.tx = domain.TxStatus{Block: 99}
	factory.node.currentBlockErr = domain.E(domain.KindNetwork, "fake.CurrentBlock", errors.New("timeout"))
	poll := NewPollService(NewRegistry(factory))

	_, err := poll.Poll(context.Background(), "algorand", "mainnet", "0xabc")
	if !domain.IsNetwork(err) {
		t.Errorf("expected network error from the height fetch, got %v", err)
	}
}
