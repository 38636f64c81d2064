package assetdir

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nodegate/nodegate/internal/core/domain"
)

func testRecords() []domain.AssetRecord {
	return []domain.AssetRecord{
		{Symbol: "ALGO", Decimals: 6, Native: true},
		{Symbol: "USDC", ID: "31566704", Decimals: 6},
		{Symbol: "GOBTC", ID: "386192725", Decimals: 8},
	}
}

func TestNewSet_LookupCaseInsensitive(t *testing.T) {
	set, err := NewSet(testRecords())
	if err != nil {
		t.Fatalf("failed to build set: %v", err)
	}

	rec, ok := set.Lookup("usdc")
	if !ok {
		t.Fatal("expected lowercase lookup to resolve")
	}
	if rec.ID != "31566704" || rec.Decimals != 6 {
		t.Errorf("unexpected record: %+v", rec)
	}

	if _, ok := set.Lookup("WETH"); ok {
		t.Error("unknown symbol should not resolve")
	}
}

func TestNewSet_AllSorted(t *testing.T) {
	set, err := NewSet(testRecords())
	if err != nil {
		t.Fatalf("failed to build set: %v", err)
	}

	all := set.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 records, got %d", len(all))
	}
	if all[0].Symbol != "ALGO" || all[1].Symbol != "GOBTC" || all[2].Symbol != "USDC" {
		t.Errorf("records not sorted by symbol: %+v", all)
	}
}

func TestNewSet_Native(t *testing.T) {
	set, err := NewSet(testRecords())
	if err != nil {
		t.Fatalf("failed to build set: %v", err)
	}
	if native := set.Native(); native.Symbol != "ALGO" {
		t.Errorf("expected native ALGO, got %+v", native)
	}
}

func TestNewSet_RejectsDuplicates(t *testing.T) {
	records := append(testRecords(), domain.AssetRecord{Symbol: "usdc", ID: "1", Decimals: 6})
	if _, err := NewSet(records); err == nil {
		t.Error("expected error for duplicate symbol (case-insensitive)")
	}
}

func TestNewSet_RequiresOneNative(t *testing.T) {
	if _, err := NewSet([]domain.AssetRecord{{Symbol: "USDC", ID: "1", Decimals: 6}}); err == nil {
		t.Error("expected error for catalog without a native asset")
	}

	two := testRecords()
	two[1].Native = true
	if _, err := NewSet(two); err == nil {
		t.Error("expected error for catalog with two native assets")
	}
}

func TestFileLoader(t *testing.T) {
	dir := t.TempDir()
	catalog := `[
		{"symbol": "ALGO", "decimals": 6, "native": true},
		{"symbol": "USDC", "asset_id": "31566704", "decimals": 6}
	]`
	path := filepath.Join(dir, "algorand-testnet.json")
	if err := os.WriteFile(path, []byte(catalog), 0600); err != nil {
		t.Fatalf("failed to write catalog file: %v", err)
	}

	loader := NewFileLoader(dir)
	records, err := loader.Load(context.Background(), domain.NewNetworkKey("algorand", "testnet"))
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Symbol != "ALGO" || !records[0].Native {
		t.Errorf("unexpected first record: %+v", records[0])
	}
}

func TestFileLoader_MissingFile(t *testing.T) {
	loader := NewFileLoader(t.TempDir())
	if _, err := loader.Load(context.Background(), domain.NewNetworkKey("algorand", "mainnet")); err == nil {
		t.Error("expected error for missing catalog file")
	}
}
