package assetdir

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/nodegate/nodegate/internal/core/domain"
)

// RedisLoader reads catalogs from a redis hash per network, keyed
// "assets:<chain>/<network>" with one JSON-encoded record per symbol field.
// Used when several gateway processes share one curated catalog.
type RedisLoader struct {
	client *redis.Client
}

// NewRedisLoader creates a loader over an existing redis client.
func NewRedisLoader(client *redis.Client) *RedisLoader {
	return &RedisLoader{client: client}
}

func catalogKey(key domain.NetworkKey) string {
	return "assets:" + key.String()
}

// Load fetches every record in the network's catalog hash.
func (l *RedisLoader) Load(ctx context.Context, key domain.NetworkKey) ([]domain.AssetRecord, error) {
	fields, err := l.client.HGetAll(ctx, catalogKey(key)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read asset catalog from redis: %w", err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no asset catalog in redis for %s", key)
	}

	records := make([]domain.AssetRecord, 0, len(fields))
	for symbol, raw := range fields {
		var rec domain.AssetRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("failed to parse catalog entry %q: %w", symbol, err)
		}
		if rec.Symbol == "" {
			rec.Symbol = symbol
		}
		records = append(records, rec)
	}

	return records, nil
}

// Store writes a full catalog into redis, replacing any previous hash.
// Used by catalog provisioning tooling, not by the gateway's request path.
func (l *RedisLoader) Store(ctx context.Context, key domain.NetworkKey, records []domain.AssetRecord) error {
	values := make(map[string]string, len(records))
	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal catalog entry %q: %w", rec.Symbol, err)
		}
		values[rec.Symbol] = string(data)
	}

	pipe := l.client.TxPipeline()
	pipe.Del(ctx, catalogKey(key))
	pipe.HSet(ctx, catalogKey(key), values)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store asset catalog: %w", err)
	}
	return nil
}
