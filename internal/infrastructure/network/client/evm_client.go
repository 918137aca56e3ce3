package client

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"crypto_dashboard/internal/domain/entity"
	"crypto_dashboard/internal/pkg/utils"
)

// BatchCaller is the subset of *rpc.Client used for balance lookups.
type BatchCaller interface {
	BatchCallContext(ctx context.Context, b []rpc.BatchElem) error
}

// EVMClient implements port.BlockchainClient for EVM-compatible chains.
type EVMClient struct {
	rpc            BatchCaller
	netDef         entity.NetworkDefinition
	rpcCallTimeout time.Duration
}

// ERC20 ABI minimal part for balanceOf
const erc20ABI = `[{"constant":true,"inputs":[{"name":"_owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"balance","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"}]`

var (
	parsedERC20ABI  abi.ABI
	parsedERC20Once sync.Once
)

func erc20() abi.ABI {
	parsedERC20Once.Do(func() {
		var err error
		parsedERC20ABI, err = abi.JSON(strings.NewReader(erc20ABI))
		if err != nil {
			panic(fmt.Sprintf("failed to parse ERC20 ABI: %v", err))
		}
	})
	return parsedERC20ABI
}

// DialEVMClient connects to the first reachable RPC endpoint of the network.
func DialEVMClient(netDef entity.NetworkDefinition, connectionTimeout, rpcCallTimeout time.Duration) (*EVMClient, error) {
	rpcURLs := append([]string{netDef.PrimaryRPCURL}, netDef.FallbackRPCURLs...)
	var lastErr error

	for _, rpcURL := range rpcURLs {
		if rpcURL == "" {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
		client, err := ethclient.DialContext(ctx, rpcURL)
		cancel()
		if err == nil {
			return NewEVMClient(netDef, client.Client(), rpcCallTimeout), nil
		}
		lastErr = fmt.Errorf("failed to connect to RPC %s: %w", rpcURL, err)
	}

	return nil, fmt.Errorf("all RPC connection attempts failed for network %s: %w", netDef.Name, lastErr)
}

// NewEVMClient wraps an existing RPC connection.
func NewEVMClient(netDef entity.NetworkDefinition, caller BatchCaller, rpcCallTimeout time.Duration) *EVMClient {
	if rpcCallTimeout <= 0 {
		rpcCallTimeout = 10 * time.Second
	}
	return &EVMClient{rpc: caller, netDef: netDef, rpcCallTimeout: rpcCallTimeout}
}

// GetBalances fetches multiple balances using a single JSON-RPC batch.
func (c *EVMClient) GetBalances(ctx context.Context, requests []entity.BalanceRequestItem) ([]entity.BalanceResultItem, error) {
	if len(requests) == 0 {
		return []entity.BalanceResultItem{}, nil
	}

	batchElems := make([]rpc.BatchElem, 0, len(requests))
	elemIndex := make([]int, len(requests)) // request -> batch element, -1 если запрос не отправлялся
	results := make([]entity.BalanceResultItem, len(requests))

	for i, reqItem := range requests {
		elemIndex[i] = -1
		results[i] = entity.BalanceResultItem{
			RequestID:     reqItem.ID,
			WalletAddress: reqItem.WalletAddress,
			Network:       c.netDef.Identifier,
			TokenAddress:  reqItem.TokenAddress,
			TokenSymbol:   reqItem.TokenSymbol,
			TokenName:     reqItem.TokenName,
			Decimals:      reqItem.TokenDecimals,
			IsNative:      reqItem.Type == entity.NativeBalanceRequest,
		}

		if !common.IsHexAddress(reqItem.WalletAddress) {
			results[i].Error = fmt.Errorf("invalid wallet address %q", reqItem.WalletAddress)
			continue
		}
		wallet := common.HexToAddress(reqItem.WalletAddress)

		switch reqItem.Type {
		case entity.NativeBalanceRequest:
			elemIndex[i] = len(batchElems)
			batchElems = append(batchElems, rpc.BatchElem{
				Method: "eth_getBalance",
				Args:   []interface{}{wallet, "latest"},
				Result: new(hexutil.Big),
			})
		case entity.TokenBalanceRequest:
			if !common.IsHexAddress(reqItem.TokenAddress) {
				results[i].Error = fmt.Errorf("invalid token address %q for %s", reqItem.TokenAddress, reqItem.TokenSymbol)
				continue
			}
			callData, err := erc20().Pack("balanceOf", wallet)
			if err != nil {
				results[i].Error = fmt.Errorf("pack balanceOf for %s: %w", reqItem.TokenSymbol, err)
				continue
			}
			elemIndex[i] = len(batchElems)
			batchElems = append(batchElems, rpc.BatchElem{
				Method: "eth_call",
				Args: []interface{}{map[string]interface{}{
					"to":   common.HexToAddress(reqItem.TokenAddress),
					"data": hexutil.Bytes(callData),
				}, "latest"},
				Result: new(hexutil.Bytes),
			})
		default:
			results[i].Error = fmt.Errorf("unknown balance request type: %v for %s", reqItem.Type, reqItem.TokenSymbol)
		}
	}

	if len(batchElems) == 0 {
		return results, nil
	}

	rpcCallCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()
	if err := c.rpc.BatchCallContext(rpcCallCtx, batchElems); err != nil {
		return results, fmt.Errorf("RPC batch call failed on %s: %w", c.netDef.Name, err)
	}

	for i, idx := range elemIndex {
		if idx < 0 {
			continue
		}
		elem := batchElems[idx]
		if elem.Error != nil {
			results[i].Error = fmt.Errorf("failed to fetch %s (wallet %s): %w", requests[i].TokenSymbol, requests[i].WalletAddress, elem.Error)
			continue
		}

		balance, err := decodeBalance(requests[i].Type, elem.Result)
		if err != nil {
			results[i].Error = fmt.Errorf("decode %s balance: %w", requests[i].TokenSymbol, err)
			continue
		}
		results[i].Balance = balance
		results[i].FormattedBalance = utils.FormatBigInt(balance, results[i].Decimals)
	}
	return results, nil
}

func decodeBalance(kind entity.BalanceRequestType, result interface{}) (*big.Int, error) {
	switch kind {
	case entity.NativeBalanceRequest:
		v, ok := result.(*hexutil.Big)
		if !ok || v == nil {
			return nil, fmt.Errorf("unexpected native result %T", result)
		}
		return new(big.Int).Set((*big.Int)(v)), nil
	case entity.TokenBalanceRequest:
		raw, ok := result.(*hexutil.Bytes)
		if !ok || raw == nil {
			return nil, fmt.Errorf("unexpected token result %T", result)
		}
		// пустой ответ у не-контрактов и самоуничтоженных токенов
		if len(*raw) == 0 {
			return big.NewInt(0), nil
		}
		unpacked, err := erc20().Unpack("balanceOf", *raw)
		if err != nil {
			return nil, fmt.Errorf("unpack balanceOf %s: %w", hexutil.Encode(*raw), err)
		}
		if len(unpacked) == 0 {
			return nil, fmt.Errorf("balanceOf returned no data")
		}
		v, ok := unpacked[0].(*big.Int)
		if !ok {
			return nil, fmt.Errorf("balanceOf returned %T", unpacked[0])
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unknown balance request type: %v", kind)
	}
}

// Definition returns the network definition for this client.
func (c *EVMClient) Definition() entity.NetworkDefinition {
	return c.netDef
}
