package assetdir

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nodegate/nodegate/internal/core/domain"
)

// FileLoader reads catalogs from JSON files laid out as
// <dir>/<chain>-<network>.json, each file holding an array of asset records.
type FileLoader struct {
	dir string
}

// NewFileLoader creates a loader rooted at dir.
func NewFileLoader(dir string) *FileLoader {
	return &FileLoader{dir: dir}
}

// Load reads and parses the catalog file for one network.
func (l *FileLoader) Load(ctx context.Context, key domain.NetworkKey) ([]domain.AssetRecord, error) {
	_ = ctx

	path := filepath.Join(l.dir, fmt.Sprintf("%s-%s.json", key.Chain, key.Network))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset catalog %s: %w", path, err)
	}

	var records []domain.AssetRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse asset catalog %s: %w", path, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("asset catalog %s is empty", path)
	}

	return records, nil
}
