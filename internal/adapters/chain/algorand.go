package chain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nodegate/nodegate/internal/core/domain"
)

const algodTimeout = 15 * time.Second

// AlgodNode implements domain.PrimaryNode over the algod v2 REST API.
// Algod keeps pending transactions and a bounded window of recent rounds;
// anything older surfaces as the "not found in pool or transactions table"
// miss that sends the poller to the indexer.
type AlgodNode struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

// NewAlgodNode creates a client for one algod endpoint.
func NewAlgodNode(baseURL, apiToken string) *AlgodNode {
	return &AlgodNode{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiToken: apiToken,
		httpClient: &http.Client{
			Timeout: algodTimeout,
		},
	}
}

type algodStatusResponse struct {
	LastRound uint64 `json:"last-round"`
}

// CurrentBlock returns the node's last committed round.
func (n *AlgodNode) CurrentBlock(ctx context.Context) (uint64, error) {
	var status algodStatusResponse
	if err := n.get(ctx, "algod.CurrentBlock", "/v2/status", &status); err != nil {
		return 0, err
	}
	return status.LastRound, nil
}

type algodPendingTxResponse struct {
	ConfirmedRound uint64 `json:"confirmed-round"`
	PoolError      string `json:"pool-error"`
	Txn            struct {
		Txn struct {
			Fee uint64 `json:"fee"`
		} `json:"txn"`
	} `json:"txn"`
}

// Transaction looks up a transaction via the pending-transaction endpoint,
// which also answers for recently confirmed transactions. A 404 here is the
// recoverable miss: the node has dropped the tx, the indexer may still know
// it.
func (n *AlgodNode) Transaction(ctx context.Context, hash string) (domain.TxStatus, error) {
	var pending algodPendingTxResponse
	err := n.get(ctx, "algod.Transaction", "/v2/transactions/pending/"+url.PathEscape(hash), &pending)
	if err != nil {
		var httpErr *httpStatusError
		if errors.As(err, &httpErr) && httpErr.status == http.StatusNotFound {
			return domain.TxStatus{}, domain.Errorf(domain.KindRecoverableMiss, "algod.Transaction",
				"transaction %s not found in pool or recent rounds", hash)
		}
		return domain.TxStatus{}, err
	}

	if pending.PoolError != "" {
		return domain.TxStatus{}, domain.Errorf(domain.KindUnknown, "algod.Transaction",
			"transaction %s rejected by pool: %s", hash, pending.PoolError)
	}

	status := domain.TxStatus{
		Pending: pending.ConfirmedRound == 0,
		Block:   pending.ConfirmedRound,
	}
	if fee := pending.Txn.Txn.Fee; fee > 0 {
		status.Fee = new(big.Int).SetUint64(fee)
	}
	return status, nil
}

type algodAccountResponse struct {
	Amount uint64 `json:"amount"`
}

// NativeBalance returns the account's microalgo balance.
func (n *AlgodNode) NativeBalance(ctx context.Context, address string) (*big.Int, error) {
	var account algodAccountResponse
	if err := n.get(ctx, "algod.NativeBalance", "/v2/accounts/"+url.PathEscape(address), &account); err != nil {
		return nil, err
	}
	return new(big.Int).SetUint64(account.Amount), nil
}

type algodAssetHoldingResponse struct {
	AssetHolding struct {
		Amount uint64 `json:"amount"`
	} `json:"asset-holding"`
}

// AssetBalance returns the account's holding of one ASA. An account that
// never opted into the asset gets a 404 from algod, reported as
// KindHoldingNotFound so the balance resolver can treat it as zero.
func (n *AlgodNode) AssetBalance(ctx context.Context, address, assetID string) (*big.Int, error) {
	if _, err := strconv.ParseUint(assetID, 10, 64); err != nil {
		return nil, fmt.Errorf("invalid ASA index %q: %w", assetID, err)
	}

	path := "/v2/accounts/" + url.PathEscape(address) + "/assets/" + assetID
	var holding algodAssetHoldingResponse
	err := n.get(ctx, "algod.AssetBalance", path, &holding)
	if err != nil {
		var httpErr *httpStatusError
		if errors.As(err, &httpErr) && httpErr.status == http.StatusNotFound {
			return nil, domain.Errorf(domain.KindHoldingNotFound, "algod.AssetBalance",
				"account %s holds no asset %s", address, assetID)
		}
		return nil, err
	}
	return new(big.Int).SetUint64(holding.AssetHolding.Amount), nil
}

// get performs one authenticated GET and decodes the JSON body into out.
// Transport failures and server-side statuses classify as network errors;
// 4xx statuses are returned as httpStatusError for the caller to interpret
// against its endpoint's semantics.
func (n *AlgodNode) get(ctx context.Context, op, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+path, nil)
	if err != nil {
		return domain.E(domain.KindUnknown, op, err)
	}
	if n.apiToken != "" {
		req.Header.Set("X-Algo-API-Token", n.apiToken)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return domain.E(domain.KindNetwork, op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
		return domain.Errorf(domain.KindNetwork, op, "algod returned status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &httpStatusError{op: op, status: resp.StatusCode, body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.Errorf(domain.KindUnknown, op, "decoding algod response: %v", err)
	}
	return nil
}

// httpStatusError carries a non-OK, non-server-error HTTP status whose
// meaning depends on the endpoint that produced it.
type httpStatusError struct {
	op     string
	status int
	body   string
}

func (e *httpStatusError) Error() string {
	if e.body == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.op, e.status)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.op, e.status, e.body)
}
