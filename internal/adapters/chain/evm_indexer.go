package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nodegate/nodegate/internal/core/domain"
)

const etherscanTimeout = 15 * time.Second

// EtherscanIndexer implements domain.FallbackIndexer over an Etherscan-style
// proxy API. Explorers index the full chain history, so they answer for
// transactions a pruned node no longer serves.
type EtherscanIndexer struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewEtherscanIndexer creates a client for one explorer API endpoint.
func NewEtherscanIndexer(baseURL, apiKey string) *EtherscanIndexer {
	return &EtherscanIndexer{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: etherscanTimeout,
		},
	}
}

type etherscanReceiptResult struct {
	BlockNumber       string `json:"blockNumber"`
	GasUsed           string `json:"gasUsed"`
	EffectiveGasPrice string `json:"effectiveGasPrice"`
}

// Transaction resolves a confirmed transaction through the explorer's
// eth_getTransactionReceipt proxy, plus eth_blockNumber for the explorer's
// current height.
func (i *EtherscanIndexer) Transaction(ctx context.Context, hash string) (domain.IndexedTx, error) {
	const op = "etherscan.Transaction"

	var receipt *etherscanReceiptResult
	if err := i.proxy(ctx, op, "eth_getTransactionReceipt", url.Values{"txhash": {hash}}, &receipt); err != nil {
		return domain.IndexedTx{}, err
	}
	if receipt == nil || receipt.BlockNumber == "" {
		return domain.IndexedTx{}, domain.Errorf(domain.KindUnknown, op,
			"transaction %s not found in explorer history", hash)
	}

	block, err := parseHexUint(receipt.BlockNumber)
	if err != nil {
		return domain.IndexedTx{}, domain.Errorf(domain.KindUnknown, op,
			"bad block number %q: %v", receipt.BlockNumber, err)
	}

	var currentHex string
	if err := i.proxy(ctx, op, "eth_blockNumber", nil, &currentHex); err != nil {
		return domain.IndexedTx{}, err
	}
	current, err := parseHexUint(currentHex)
	if err != nil {
		return domain.IndexedTx{}, domain.Errorf(domain.KindUnknown, op,
			"bad current block %q: %v", currentHex, err)
	}

	indexed := domain.IndexedTx{
		CurrentBlock: current,
		Block:        block,
	}
	if gasUsed, err1 := parseHexBig(receipt.GasUsed); err1 == nil {
		if gasPrice, err2 := parseHexBig(receipt.EffectiveGasPrice); err2 == nil {
			indexed.Fee = new(big.Int).Mul(gasUsed, gasPrice)
		}
	}
	return indexed, nil
}

// proxy performs one module=proxy call and decodes its result field.
func (i *EtherscanIndexer) proxy(ctx context.Context, op, action string, extra url.Values, out interface{}) error {
	params := url.Values{}
	params.Set("module", "proxy")
	params.Set("action", action)
	if i.apiKey != "" {
		params.Set("apikey", i.apiKey)
	}
	for k, vs := range extra {
		for _, v := range vs {
			params.Add(k, v)
		}
	}

	endpoint := i.baseURL + "/api?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.E(domain.KindUnknown, op, err)
	}

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return domain.E(domain.KindNetwork, op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Errorf(domain.KindNetwork, op, "explorer returned status %d", resp.StatusCode)
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
		Error  *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return domain.Errorf(domain.KindUnknown, op, "decoding explorer response: %v", err)
	}
	if envelope.Error != nil {
		return domain.Errorf(domain.KindUnknown, op, "explorer error: %s", envelope.Error.Message)
	}

	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return domain.Errorf(domain.KindUnknown, op, "decoding explorer result: %v", err)
	}
	return nil
}

func parseHexUint(s string) (uint64, error) {
	v, err := parseHexBig(s)
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, fmt.Errorf("value %s out of range", s)
	}
	return v.Uint64(), nil
}

func parseHexBig(s string) (*big.Int, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	if s == "" {
		return nil, fmt.Errorf("empty hex quantity")
	}
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return nil, fmt.Errorf("invalid hex quantity %q", s)
	}
	return v, nil
}
