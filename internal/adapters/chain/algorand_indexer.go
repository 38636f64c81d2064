package chain

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nodegate/nodegate/internal/core/domain"
)

const indexerTimeout = 15 * time.Second

// AlgoIndexer implements domain.FallbackIndexer over the indexer v2 REST
// API. The indexer holds the full transaction history, so it answers for
// transactions algod has already dropped. Its current round may trail
// algod's slightly; results report the indexer's own view.
type AlgoIndexer struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

// NewAlgoIndexer creates a client for one indexer endpoint.
func NewAlgoIndexer(baseURL, apiToken string) *AlgoIndexer {
	return &AlgoIndexer{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiToken: apiToken,
		httpClient: &http.Client{
			Timeout: indexerTimeout,
		},
	}
}

type indexerTxResponse struct {
	CurrentRound uint64 `json:"current-round"`
	Transaction  struct {
		ConfirmedRound uint64 `json:"confirmed-round"`
		Fee            uint64 `json:"fee"`
	} `json:"transaction"`
}

// Transaction looks up a confirmed transaction by id.
func (i *AlgoIndexer) Transaction(ctx context.Context, hash string) (domain.IndexedTx, error) {
	const op = "indexer.Transaction"

	endpoint := i.baseURL + "/v2/transactions/" + url.PathEscape(hash)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.IndexedTx{}, domain.E(domain.KindUnknown, op, err)
	}
	if i.apiToken != "" {
		req.Header.Set("X-Indexer-API-Token", i.apiToken)
	}

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return domain.IndexedTx{}, domain.E(domain.KindNetwork, op, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests:
		return domain.IndexedTx{}, domain.Errorf(domain.KindNetwork, op,
			"indexer returned status %d", resp.StatusCode)
	default:
		// Including 404: a tx missing from the full history is not a
		// recoverable condition at this level.
		return domain.IndexedTx{}, domain.Errorf(domain.KindUnknown, op,
			"transaction %s: indexer returned status %d", hash, resp.StatusCode)
	}

	var body indexerTxResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.IndexedTx{}, domain.Errorf(domain.KindUnknown, op,
			"decoding indexer response: %v", err)
	}

	indexed := domain.IndexedTx{
		CurrentBlock: body.CurrentRound,
		Block:        body.Transaction.ConfirmedRound,
	}
	if fee := body.Transaction.Fee; fee > 0 {
		indexed.Fee = new(big.Int).SetUint64(fee)
	}
	return indexed, nil
}
