package chain

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// multicall3 tryAggregate, with per-call success flags so one bad slot does
// not fail the whole batch
const multicallAbiJson = `[{"inputs":[{"internalType":"bool","name":"requireSuccess","type":"bool"},{"components":[{"internalType":"address","name":"target","type":"address"},{"internalType":"bytes","name":"callData","type":"bytes"}],"internalType":"struct Multicall3.Call[]","name":"calls","type":"tuple[]"}],"name":"tryAggregate","outputs":[{"components":[{"internalType":"bool","name":"success","type":"bool"},{"internalType":"bytes","name":"returnData","type":"bytes"}],"internalType":"struct Multicall3.Result[]","name":"returnData","type":"tuple[]"}],"stateMutability":"payable","type":"function"}]`

type Call struct {
	Target   common.Address `abi:"target"`
	CallData []byte         `abi:"callData"`
}

// Result is one multicall slot. A failed slot has Success=false and must be
// treated as missing data, not decoded.
type Result struct {
	Success    bool   `abi:"success"`
	ReturnData []byte `abi:"returnData"`
}

// Client wraps an eth RPC connection and the fixed contract addresses the
// daemon reads through.
type Client struct {
	eth          *ethclient.Client
	multicallAbi abi.ABI

	MulticallAddress    common.Address
	LensAddress         common.Address
	PriceManagerAddress common.Address
	TriggerVaultAddress common.Address
}

func NewClient(rpcUrl, multicallAddr, lensAddr, priceManagerAddr, triggerVaultAddr string) (*Client, error) {
	eth, err := ethclient.Dial(rpcUrl)
	if err != nil {
		return nil, fmt.Errorf("fail to dial rpc '%v': %w", rpcUrl, err)
	}
	multicallAbi, err := abi.JSON(strings.NewReader(multicallAbiJson))
	if err != nil {
		return nil, err
	}
	return &Client{
		eth:                 eth,
		multicallAbi:        multicallAbi,
		MulticallAddress:    common.HexToAddress(multicallAddr),
		LensAddress:         common.HexToAddress(lensAddr),
		PriceManagerAddress: common.HexToAddress(priceManagerAddr),
		TriggerVaultAddress: common.HexToAddress(triggerVaultAddr),
	}, nil
}

// TryAggregate executes a batch of reads in one RPC round trip. The returned
// slice is positionally aligned with calls; callers consume it by index.
func (c *Client) TryAggregate(ctx context.Context, calls []Call) ([]Result, error) {
	data, err := c.multicallAbi.Pack("tryAggregate", false, calls)
	if err != nil {
		return nil, fmt.Errorf("fail to pack tryAggregate: %w", err)
	}

	raw, err := c.eth.CallContract(ctx, ethereum.CallMsg{
		To:   &c.MulticallAddress,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("fail to call multicall: %w", err)
	}

	out, err := c.multicallAbi.Unpack("tryAggregate", raw)
	if err != nil {
		return nil, fmt.Errorf("fail to unpack tryAggregate: %w", err)
	}
	results := *abi.ConvertType(out[0], new([]Result)).(*[]Result)
	if len(results) != len(calls) {
		return nil, fmt.Errorf("multicall returned %v results for %v calls", len(results), len(calls))
	}
	return results, nil
}
