// Package assetdir holds the per-network asset catalogs: the symbol to
// asset-id/decimals mappings each chain instance resolves balances against.
// A catalog is loaded once during instance initialization and immutable
// afterwards.
package assetdir

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/nodegate/nodegate/internal/core/domain"
)

// Loader fetches the raw asset records for one network. Implementations
// back onto JSON catalog files or redis.
type Loader interface {
	Load(ctx context.Context, key domain.NetworkKey) ([]domain.AssetRecord, error)
}

// Set is one network's immutable catalog. Implements domain.AssetCatalog.
type Set struct {
	bySymbol map[string]domain.AssetRecord
	ordered  []domain.AssetRecord
}

// NewSet builds a catalog from loaded records. Symbols must be unique within
// a network; exactly one record must be marked native.
func NewSet(records []domain.AssetRecord) (*Set, error) {
	s := &Set{bySymbol: make(map[string]domain.AssetRecord, len(records))}

	natives := 0
	for _, rec := range records {
		sym := strings.ToUpper(strings.TrimSpace(rec.Symbol))
		if sym == "" {
			return nil, fmt.Errorf("asset record with empty symbol")
		}
		if _, dup := s.bySymbol[sym]; dup {
			return nil, fmt.Errorf("duplicate asset symbol %q", sym)
		}
		if rec.Decimals < 0 {
			return nil, fmt.Errorf("asset %q has negative decimals", sym)
		}
		if rec.Native {
			natives++
		}
		rec.Symbol = sym
		s.bySymbol[sym] = rec
		s.ordered = append(s.ordered, rec)
	}

	if natives != 1 {
		return nil, fmt.Errorf("catalog must contain exactly one native asset, found %d", natives)
	}

	sort.Slice(s.ordered, func(i, j int) bool {
		return s.ordered[i].Symbol < s.ordered[j].Symbol
	})
	return s, nil
}

// Lookup resolves a symbol case-insensitively.
func (s *Set) Lookup(symbol string) (domain.AssetRecord, bool) {
	rec, ok := s.bySymbol[strings.ToUpper(strings.TrimSpace(symbol))]
	return rec, ok
}

// All returns every record, sorted by symbol.
func (s *Set) All() []domain.AssetRecord {
	out := make([]domain.AssetRecord, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// Native returns the network's native asset record.
func (s *Set) Native() domain.AssetRecord {
	for _, rec := range s.ordered {
		if rec.Native {
			return rec
		}
	}
	// unreachable: NewSet enforces exactly one native record
	return domain.AssetRecord{}
}
