package service

import (
	"context"

	"github.com/nodegate/nodegate/internal/core/domain"
)

// AssetService lists a network's asset catalog.
type AssetService struct {
	registry *Registry
}

// NewAssetService creates an asset listing service over the registry.
func NewAssetService(registry *Registry) *AssetService {
	return &AssetService{registry: registry}
}

// Assets returns the catalog records for (chain, network). With symbols
// given, only those records are returned, in request order; an unrecognized
// symbol fails the call with KindUnknownAsset, matching the balance
// resolver's policy. With no symbols, the full catalog is returned sorted by
// symbol.
func (s *AssetService) Assets(ctx context.Context, chain, network string, symbols []string) ([]domain.AssetRecord, error) {
	inst, err := s.registry.GetOrCreate(ctx, chain, network)
	if err != nil {
		return nil, err
	}

	if len(symbols) == 0 {
		return inst.Assets.All(), nil
	}

	records := make([]domain.AssetRecord, 0, len(symbols))
	for _, symbol := range symbols {
		rec, ok := inst.Assets.Lookup(symbol)
		if !ok {
			return nil, domain.Errorf(domain.KindUnknownAsset, "assets",
				"symbol %q not in %s catalog", symbol, inst.Key)
		}
		records = append(records, rec)
	}
	return records, nil
}
