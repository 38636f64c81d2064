package service

import (
	"context"
	"fmt"

	"github.com/nodegate/nodegate/internal/core/domain"
)

// StatusService reports current block height and native currency for
// initialized networks.
type StatusService struct {
	registry *Registry
}

// NewStatusService creates a status service over the registry.
func NewStatusService(registry *Registry) *StatusService {
	return &StatusService{registry: registry}
}

// Status returns network status entries. With both chain and network set it
// resolves that single pair, lazily initializing it if needed, and returns
// any chain failure directly. With both empty it reports every initialized
// network without opening new connections; a failing network gets its Error
// field set and does not abort the other entries.
func (s *StatusService) Status(ctx context.Context, chain, network string) ([]domain.StatusEntry, error) {
	if chain != "" && network != "" {
		inst, err := s.registry.GetOrCreate(ctx, chain, network)
		if err != nil {
			return nil, err
		}

		entry, err := s.entryFor(ctx, inst)
		if err != nil {
			return nil, err
		}
		return []domain.StatusEntry{entry}, nil
	}

	if chain != "" || network != "" {
		return nil, fmt.Errorf("chain and network must be given together or both omitted")
	}

	instances := s.registry.ListInitialized("")
	entries := make([]domain.StatusEntry, 0, len(instances))
	for _, inst := range instances {
		entry, err := s.entryFor(ctx, inst)
		if err != nil {
			// Per-entry isolation: report the failure inline and keep going.
			entry = domain.StatusEntry{
				Chain:          inst.Key.Chain,
				Network:        inst.Key.Network,
				NativeCurrency: inst.NativeAsset.Symbol,
				ConnectedAt:    inst.CreatedAt,
				Error:          err.Error(),
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// entryFor fetches a fresh block height for one instance. Never cached:
// downstream polling compares tx block against this value.
func (s *StatusService) entryFor(ctx context.Context, inst *domain.ChainInstance) (domain.StatusEntry, error) {
	block, err := inst.Node.CurrentBlock(ctx)
	if err != nil {
		return domain.StatusEntry{}, err
	}

	return domain.StatusEntry{
		Chain:          inst.Key.Chain,
		Network:        inst.Key.Network,
		CurrentBlock:   block,
		NativeCurrency: inst.NativeAsset.Symbol,
		ConnectedAt:    inst.CreatedAt,
	}, nil
}
