package service

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/nodegate/nodegate/internal/core/domain"
	"github.com/nodegate/nodegate/pkg/amount"
)

// BalanceService resolves wallet balances for a set of asset symbols into
// decimal strings. All-or-nothing per call: one hard failure fails the whole
// set. The only soft case is an account that never opted into an asset,
// which resolves to the decimal zero for that asset.
type BalanceService struct {
	registry *Registry
}

// NewBalanceService creates a balance service over the registry.
func NewBalanceService(registry *Registry) *BalanceService {
	return &BalanceService{registry: registry}
}

// Balances resolves each requested symbol against the network's catalog and
// queries the primary node for the raw amounts. Unknown symbols fail the
// call with KindUnknownAsset.
func (s *BalanceService) Balances(ctx context.Context, chain, network, address string, symbols []string) (*domain.BalanceSet, error) {
	start := time.Now()

	if address == "" {
		return nil, fmt.Errorf("address is required")
	}
	if len(symbols) == 0 {
		return nil, fmt.Errorf("at least one asset symbol is required")
	}

	inst, err := s.registry.GetOrCreate(ctx, chain, network)
	if err != nil {
		return nil, err
	}

	balances := make(map[string]string, len(symbols))
	for _, symbol := range symbols {
		rec, ok := inst.Assets.Lookup(symbol)
		if !ok {
			return nil, domain.Errorf(domain.KindUnknownAsset, "balances",
				"symbol %q not in %s catalog", symbol, inst.Key)
		}

		raw, err := s.rawBalance(ctx, inst, address, rec)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s balance: %w", rec.Symbol, err)
		}

		balances[rec.Symbol] = amount.FromRaw(raw, rec.Decimals)
	}

	return &domain.BalanceSet{
		Address:   address,
		Balances:  balances,
		Timestamp: start,
		Latency:   time.Since(start),
	}, nil
}

func (s *BalanceService) rawBalance(ctx context.Context, inst *domain.ChainInstance, address string, rec domain.AssetRecord) (*big.Int, error) {
	if rec.Native {
		return inst.Node.NativeBalance(ctx, address)
	}

	raw, err := inst.Node.AssetBalance(ctx, address, rec.ID)
	if domain.IsHoldingNotFound(err) {
		// Never opted in: a normal zero balance, not an error.
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}
