package chain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Contract value scaling. USD amounts and prices are 1e18; rate fields are
// 1e6-scaled percentages per the platform's native 1h interval.
const (
	UsdDecimals  = 18
	RateDecimals = 6
)

// The lens aggregates reads over the vault/position-manager pair. Struct
// field order below mirrors the ABI exactly; the multicall consumer indexes
// into positionally aligned slots, so order changes break decoding.
const lensAbiJson = `[
{"inputs":[{"internalType":"uint256","name":"assetId","type":"uint256"}],"name":"getGlobalInfo","outputs":[{"internalType":"int256","name":"fundingRate","type":"int256"},{"internalType":"uint256","name":"borrowRateLong","type":"uint256"},{"internalType":"uint256","name":"borrowRateShort","type":"uint256"},{"internalType":"uint256","name":"longOpenInterest","type":"uint256"},{"internalType":"uint256","name":"shortOpenInterest","type":"uint256"},{"internalType":"uint256","name":"maxLongOpenInterest","type":"uint256"},{"internalType":"uint256","name":"maxShortOpenInterest","type":"uint256"},{"internalType":"uint256","name":"tradingFeeLong","type":"uint256"},{"internalType":"uint256","name":"tradingFeeShort","type":"uint256"}],"stateMutability":"view","type":"function"},
{"inputs":[{"internalType":"uint256","name":"assetId","type":"uint256"}],"name":"getMaxLeverage","outputs":[{"internalType":"uint256","name":"maxLeverage","type":"uint256"}],"stateMutability":"view","type":"function"},
{"inputs":[{"internalType":"address","name":"user","type":"address"}],"name":"getUserPositions","outputs":[{"components":[{"internalType":"uint256","name":"id","type":"uint256"},{"internalType":"uint256","name":"assetId","type":"uint256"},{"internalType":"bool","name":"isLong","type":"bool"},{"internalType":"uint256","name":"size","type":"uint256"},{"internalType":"uint256","name":"entryPrice","type":"uint256"},{"internalType":"uint256","name":"margin","type":"uint256"},{"internalType":"uint256","name":"leverage","type":"uint256"}],"internalType":"struct Lens.Position[]","name":"positions","type":"tuple[]"}],"stateMutability":"view","type":"function"},
{"inputs":[{"internalType":"address","name":"user","type":"address"}],"name":"getPaidFees","outputs":[{"components":[{"internalType":"uint256","name":"positionId","type":"uint256"},{"internalType":"uint256","name":"positionFee","type":"uint256"},{"internalType":"uint256","name":"borrowFee","type":"uint256"},{"internalType":"int256","name":"fundingFee","type":"int256"}],"internalType":"struct Lens.Fees[]","name":"fees","type":"tuple[]"}],"stateMutability":"view","type":"function"},
{"inputs":[{"internalType":"address","name":"user","type":"address"}],"name":"getAccruedFees","outputs":[{"components":[{"internalType":"uint256","name":"positionId","type":"uint256"},{"internalType":"uint256","name":"positionFee","type":"uint256"},{"internalType":"uint256","name":"borrowFee","type":"uint256"},{"internalType":"int256","name":"fundingFee","type":"int256"}],"internalType":"struct Lens.Fees[]","name":"fees","type":"tuple[]"}],"stateMutability":"view","type":"function"},
{"inputs":[{"internalType":"address","name":"user","type":"address"}],"name":"getUserOpenOrders","outputs":[{"components":[{"internalType":"uint256","name":"id","type":"uint256"},{"internalType":"uint256","name":"assetId","type":"uint256"},{"internalType":"bool","name":"isLong","type":"bool"},{"internalType":"uint256","name":"orderType","type":"uint256"},{"internalType":"uint256","name":"stepType","type":"uint256"},{"internalType":"uint256","name":"size","type":"uint256"},{"internalType":"uint256","name":"price","type":"uint256"},{"internalType":"uint256","name":"stopPrice","type":"uint256"},{"internalType":"uint256","name":"margin","type":"uint256"},{"internalType":"uint256","name":"timestamp","type":"uint256"}],"internalType":"struct Lens.Order[]","name":"orders","type":"tuple[]"}],"stateMutability":"view","type":"function"}
]`

const triggerVaultAbiJson = `[
{"inputs":[{"internalType":"address","name":"user","type":"address"}],"name":"getTriggerOrders","outputs":[{"components":[{"internalType":"uint256","name":"id","type":"uint256"},{"internalType":"uint256","name":"positionId","type":"uint256"},{"internalType":"bool","name":"isTakeProfit","type":"bool"},{"internalType":"uint256","name":"price","type":"uint256"},{"internalType":"uint256","name":"sizePercent","type":"uint256"},{"internalType":"uint256","name":"status","type":"uint256"}],"internalType":"struct TriggerVault.Trigger[]","name":"triggers","type":"tuple[]"}],"stateMutability":"view","type":"function"},
{"inputs":[{"internalType":"address","name":"user","type":"address"}],"name":"getTPSL","outputs":[{"components":[{"internalType":"uint256","name":"positionId","type":"uint256"},{"internalType":"uint256","name":"takeProfit","type":"uint256"},{"internalType":"uint256","name":"stopLoss","type":"uint256"},{"internalType":"uint256","name":"takeProfitSize","type":"uint256"},{"internalType":"uint256","name":"stopLossSize","type":"uint256"}],"internalType":"struct TriggerVault.TPSL[]","name":"bundles","type":"tuple[]"}],"stateMutability":"view","type":"function"},
{"inputs":[{"internalType":"uint256","name":"positionId","type":"uint256"},{"internalType":"uint256","name":"orderId","type":"uint256"}],"name":"cancelTriggerOrder","outputs":[],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"internalType":"uint256","name":"positionId","type":"uint256"}],"name":"cancelAllTriggerOrders","outputs":[],"stateMutability":"nonpayable","type":"function"}
]`

type RawGlobalInfo struct {
	FundingRate          *big.Int
	BorrowRateLong       *big.Int
	BorrowRateShort      *big.Int
	LongOpenInterest     *big.Int
	ShortOpenInterest    *big.Int
	MaxLongOpenInterest  *big.Int
	MaxShortOpenInterest *big.Int
	TradingFeeLong       *big.Int
	TradingFeeShort      *big.Int
}

type RawPosition struct {
	Id         *big.Int `abi:"id"`
	AssetId    *big.Int `abi:"assetId"`
	IsLong     bool     `abi:"isLong"`
	Size       *big.Int `abi:"size"`
	EntryPrice *big.Int `abi:"entryPrice"`
	Margin     *big.Int `abi:"margin"`
	Leverage   *big.Int `abi:"leverage"`
}

type RawFees struct {
	PositionId  *big.Int `abi:"positionId"`
	PositionFee *big.Int `abi:"positionFee"`
	BorrowFee   *big.Int `abi:"borrowFee"`
	FundingFee  *big.Int `abi:"fundingFee"`
}

type RawOrder struct {
	Id        *big.Int `abi:"id"`
	AssetId   *big.Int `abi:"assetId"`
	IsLong    bool     `abi:"isLong"`
	OrderType *big.Int `abi:"orderType"`
	StepType  *big.Int `abi:"stepType"`
	Size      *big.Int `abi:"size"`
	Price     *big.Int `abi:"price"`
	StopPrice *big.Int `abi:"stopPrice"`
	Margin    *big.Int `abi:"margin"`
	Timestamp *big.Int `abi:"timestamp"`
}

type RawTrigger struct {
	Id           *big.Int `abi:"id"`
	PositionId   *big.Int `abi:"positionId"`
	IsTakeProfit bool     `abi:"isTakeProfit"`
	Price        *big.Int `abi:"price"`
	SizePercent  *big.Int `abi:"sizePercent"`
	Status       *big.Int `abi:"status"`
}

type RawTPSL struct {
	PositionId     *big.Int `abi:"positionId"`
	TakeProfit     *big.Int `abi:"takeProfit"`
	StopLoss       *big.Int `abi:"stopLoss"`
	TakeProfitSize *big.Int `abi:"takeProfitSize"`
	StopLossSize   *big.Int `abi:"stopLossSize"`
}

// Lens packs and decodes the read calls issued through the multicall.
type Lens struct {
	lensAbi    abi.ABI
	triggerAbi abi.ABI
}

func NewLens() (*Lens, error) {
	lensAbi, err := abi.JSON(strings.NewReader(lensAbiJson))
	if err != nil {
		return nil, fmt.Errorf("fail to parse lens abi: %w", err)
	}
	triggerAbi, err := abi.JSON(strings.NewReader(triggerVaultAbiJson))
	if err != nil {
		return nil, fmt.Errorf("fail to parse trigger vault abi: %w", err)
	}
	return &Lens{lensAbi: lensAbi, triggerAbi: triggerAbi}, nil
}

// ╔═════════════╗
//      Pack
// ╚═════════════╝

func (l *Lens) PackGetGlobalInfo(assetId int64) ([]byte, error) {
	return l.lensAbi.Pack("getGlobalInfo", big.NewInt(assetId))
}

func (l *Lens) PackGetMaxLeverage(assetId int64) ([]byte, error) {
	return l.lensAbi.Pack("getMaxLeverage", big.NewInt(assetId))
}

func (l *Lens) PackGetUserPositions(user common.Address) ([]byte, error) {
	return l.lensAbi.Pack("getUserPositions", user)
}

func (l *Lens) PackGetPaidFees(user common.Address) ([]byte, error) {
	return l.lensAbi.Pack("getPaidFees", user)
}

func (l *Lens) PackGetAccruedFees(user common.Address) ([]byte, error) {
	return l.lensAbi.Pack("getAccruedFees", user)
}

func (l *Lens) PackGetUserOpenOrders(user common.Address) ([]byte, error) {
	return l.lensAbi.Pack("getUserOpenOrders", user)
}

func (l *Lens) PackGetTriggerOrders(user common.Address) ([]byte, error) {
	return l.triggerAbi.Pack("getTriggerOrders", user)
}

func (l *Lens) PackGetTPSL(user common.Address) ([]byte, error) {
	return l.triggerAbi.Pack("getTPSL", user)
}

// PackCancelTriggerOrder builds the calldata a signed cancel action carries.
func (l *Lens) PackCancelTriggerOrder(positionId, orderId *big.Int) ([]byte, error) {
	return l.triggerAbi.Pack("cancelTriggerOrder", positionId, orderId)
}

func (l *Lens) PackCancelAllTriggerOrders(positionId *big.Int) ([]byte, error) {
	return l.triggerAbi.Pack("cancelAllTriggerOrders", positionId)
}

// ╔═════════════╗
//     Decode
// ╚═════════════╝

func (l *Lens) DecodeGlobalInfo(data []byte) (*RawGlobalInfo, error) {
	out, err := l.lensAbi.Unpack("getGlobalInfo", data)
	if err != nil {
		return nil, fmt.Errorf("fail to decode getGlobalInfo: %w", err)
	}
	if len(out) != 9 {
		return nil, fmt.Errorf("getGlobalInfo returned %v fields", len(out))
	}
	return &RawGlobalInfo{
		FundingRate:          out[0].(*big.Int),
		BorrowRateLong:       out[1].(*big.Int),
		BorrowRateShort:      out[2].(*big.Int),
		LongOpenInterest:     out[3].(*big.Int),
		ShortOpenInterest:    out[4].(*big.Int),
		MaxLongOpenInterest:  out[5].(*big.Int),
		MaxShortOpenInterest: out[6].(*big.Int),
		TradingFeeLong:       out[7].(*big.Int),
		TradingFeeShort:      out[8].(*big.Int),
	}, nil
}

func (l *Lens) DecodeMaxLeverage(data []byte) (*big.Int, error) {
	out, err := l.lensAbi.Unpack("getMaxLeverage", data)
	if err != nil {
		return nil, fmt.Errorf("fail to decode getMaxLeverage: %w", err)
	}
	return out[0].(*big.Int), nil
}

func (l *Lens) DecodeUserPositions(data []byte) ([]RawPosition, error) {
	out, err := l.lensAbi.Unpack("getUserPositions", data)
	if err != nil {
		return nil, fmt.Errorf("fail to decode getUserPositions: %w", err)
	}
	return *abi.ConvertType(out[0], new([]RawPosition)).(*[]RawPosition), nil
}

func (l *Lens) DecodeFees(method string, data []byte) ([]RawFees, error) {
	out, err := l.lensAbi.Unpack(method, data)
	if err != nil {
		return nil, fmt.Errorf("fail to decode %v: %w", method, err)
	}
	return *abi.ConvertType(out[0], new([]RawFees)).(*[]RawFees), nil
}

func (l *Lens) DecodeUserOpenOrders(data []byte) ([]RawOrder, error) {
	out, err := l.lensAbi.Unpack("getUserOpenOrders", data)
	if err != nil {
		return nil, fmt.Errorf("fail to decode getUserOpenOrders: %w", err)
	}
	return *abi.ConvertType(out[0], new([]RawOrder)).(*[]RawOrder), nil
}

func (l *Lens) DecodeTriggerOrders(data []byte) ([]RawTrigger, error) {
	out, err := l.triggerAbi.Unpack("getTriggerOrders", data)
	if err != nil {
		return nil, fmt.Errorf("fail to decode getTriggerOrders: %w", err)
	}
	return *abi.ConvertType(out[0], new([]RawTrigger)).(*[]RawTrigger), nil
}

func (l *Lens) DecodeTPSL(data []byte) ([]RawTPSL, error) {
	out, err := l.triggerAbi.Unpack("getTPSL", data)
	if err != nil {
		return nil, fmt.Errorf("fail to decode getTPSL: %w", err)
	}
	return *abi.ConvertType(out[0], new([]RawTPSL)).(*[]RawTPSL), nil
}
