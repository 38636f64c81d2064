package service

import (
	"context"

	"github.com/nodegate/nodegate/internal/core/domain"
)

// PollService resolves a transaction hash to its confirmation state.
//
// "Confirmed" has no universal signal across chains, so the state machine is
// strict about what each upstream answer means:
//
//  1. the primary node knows the tx and reports no block: PENDING
//  2. the primary node reports a block: CONFIRMED at that block
//  3. the primary node reports its recoverable miss (tx outside the node's
//     retention window): ask the fallback indexer, whose answer is CONFIRMED
//     against the indexer's own current height
//  4. any other primary-node failure is surfaced with its kind; the indexer
//     is never consulted for transport-level errors
type PollService struct {
	registry *Registry
}

// NewPollService creates a poll service over the registry.
func NewPollService(registry *Registry) *PollService {
	return &PollService{registry: registry}
}

// Poll resolves txHash on (chain, network). A nil TxBlock in the result
// means the transaction is known but not yet included in a block.
func (s *PollService) Poll(ctx context.Context, chain, network, txHash string) (*domain.TxPollResult, error) {
	inst, err := s.registry.GetOrCreate(ctx, chain, network)
	if err != nil {
		return nil, err
	}

	status, err := inst.Node.Transaction(ctx, txHash)
	switch {
	case err == nil:
		current, err := inst.Node.CurrentBlock(ctx)
		if err != nil {
			return nil, err
		}

		result := &domain.TxPollResult{
			CurrentBlock: current,
			TxHash:       txHash,
			Fee:          status.Fee,
		}
		if !status.Pending {
			block := status.Block
			result.TxBlock = &block
		}
		return result, nil

	case domain.IsRecoverableMiss(err):
		// The node has dropped the tx from its pool and recent history; the
		// indexer keeps the full history. Its current height may trail the
		// node's slightly, so the result reports the indexer's own view.
		indexed, ierr := inst.Indexer.Transaction(ctx, txHash)
		if ierr != nil {
			return nil, ierr
		}

		block := indexed.Block
		return &domain.TxPollResult{
			CurrentBlock: indexed.CurrentBlock,
			TxBlock:      &block,
			TxHash:       txHash,
			Fee:          indexed.Fee,
		}, nil

	default:
		// Network and unknown failures propagate with their kind; no retry,
		// no fallback.
		return nil, err
	}
}
