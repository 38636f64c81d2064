package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net"
	"net/url"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/nodegate/nodegate/internal/core/domain"
)

// erc20ABI is the minimal fragment needed for balance queries.
const erc20ABI = `[{"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}]`

// EVMNode implements domain.PrimaryNode over a go-ethereum RPC client.
// ERC-20 contracts report an absent balance as zero, so this node never
// returns KindHoldingNotFound.
type EVMNode struct {
	client     *ethclient.Client
	balanceABI abi.ABI
}

// NewEVMNode dials an EVM JSON-RPC endpoint.
func NewEVMNode(rpcURL string) (*EVMNode, error) {
	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	balanceABI, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse balanceOf ABI: %w", err)
	}

	return &EVMNode{client: client, balanceABI: balanceABI}, nil
}

// Close closes the underlying RPC connection.
func (n *EVMNode) Close() {
	n.client.Close()
}

// CurrentBlock returns the latest block number.
func (n *EVMNode) CurrentBlock(ctx context.Context) (uint64, error) {
	block, err := n.client.BlockNumber(ctx)
	if err != nil {
		return 0, classifyEVMError("evm.CurrentBlock", err)
	}
	return block, nil
}

// Transaction looks up a transaction by hash. go-ethereum reports a hash the
// node does not know as ethereum.NotFound, which maps to the recoverable
// miss that triggers the indexer fallback. For a mined transaction the fee
// is the receipt's gasUsed * effectiveGasPrice; a pending payload carries no
// settled fee.
func (n *EVMNode) Transaction(ctx context.Context, hash string) (domain.TxStatus, error) {
	const op = "evm.Transaction"

	txHash := common.HexToHash(hash)
	_, isPending, err := n.client.TransactionByHash(ctx, txHash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return domain.TxStatus{}, domain.Errorf(domain.KindRecoverableMiss, op,
				"transaction %s not known to the node", hash)
		}
		return domain.TxStatus{}, classifyEVMError(op, err)
	}

	if isPending {
		return domain.TxStatus{Pending: true}, nil
	}

	receipt, err := n.client.TransactionReceipt(ctx, txHash)
	if err != nil {
		return domain.TxStatus{}, classifyEVMError(op, err)
	}

	fee := new(big.Int).Mul(new(big.Int).SetUint64(receipt.GasUsed), receipt.EffectiveGasPrice)
	return domain.TxStatus{
		Block: receipt.BlockNumber.Uint64(),
		Fee:   fee,
	}, nil
}

// NativeBalance returns the account's balance in wei.
func (n *EVMNode) NativeBalance(ctx context.Context, address string) (*big.Int, error) {
	balance, err := n.client.BalanceAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return nil, classifyEVMError("evm.NativeBalance", err)
	}
	return balance, nil
}

// AssetBalance returns an ERC-20 balance via an eth_call to balanceOf.
func (n *EVMNode) AssetBalance(ctx context.Context, address, assetID string) (*big.Int, error) {
	const op = "evm.AssetBalance"

	if !common.IsHexAddress(assetID) {
		return nil, fmt.Errorf("invalid token contract address %q", assetID)
	}
	token := common.HexToAddress(assetID)

	data, err := n.balanceABI.Pack("balanceOf", common.HexToAddress(address))
	if err != nil {
		return nil, fmt.Errorf("failed to pack balanceOf call: %w", err)
	}

	result, err := n.client.CallContract(ctx, ethereum.CallMsg{
		To:   &token,
		Data: data,
	}, nil)
	if err != nil {
		return nil, classifyEVMError(op, err)
	}

	var balance *big.Int
	if err := n.balanceABI.UnpackIntoInterface(&balance, "balanceOf", result); err != nil {
		return nil, domain.Errorf(domain.KindUnknown, op,
			"failed to unpack balanceOf result: %v", err)
	}
	return balance, nil
}

// classifyEVMError separates transport-level failures from everything else.
// Dial/timeout problems are retryable network errors; an RPC-level rejection
// with no recognized shape stays unknown.
func classifyEVMError(op string, err error) error {
	var netErr net.Error
	var urlErr *url.Error
	switch {
	case errors.As(err, &netErr),
		errors.As(err, &urlErr),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return domain.E(domain.KindNetwork, op, err)
	default:
		return domain.E(domain.KindUnknown, op, err)
	}
}
