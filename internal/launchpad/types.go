package launchpad

import (
	"crypto/rand"
	"math/big"
)

// Phase 募资阶段
type Phase uint8

const (
	PhaseInit         Phase = iota // 初始化，可配置
	PhaseRaising                   // 募资中
	PhaseRefunding                 // 退款中（未达软顶）
	PhaseRefundClosed              // 退款已关闭（终态）
	PhaseClaiming                  // 领取中（达到软顶）
)

// String 阶段名称
func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseRaising:
		return "raising"
	case PhaseRefunding:
		return "refunding"
	case PhaseRefundClosed:
		return "refund_closed"
	case PhaseClaiming:
		return "claiming"
	default:
		return "unknown"
	}
}

// PercentScale 里程碑解锁比例的基数，500 即 50%
const PercentScale = 1000

// AdminCap 管理员能力凭证。持有即视为授权，引擎不校验持有者身份，
// 凭证的签发与分发由外部模块负责。
type AdminCap struct {
	nonce [16]byte
}

// NewAdminCap 签发一个新的管理员凭证
func NewAdminCap() *AdminCap {
	cap := &AdminCap{}
	_, _ = rand.Read(cap.nonce[:])
	return cap
}

// LaunchParams 一轮募资的配置参数
type LaunchParams struct {
	SoftCap     *big.Int // 软顶，基础资产单位
	HardCap     *big.Int // 硬顶，代币单位
	RatioBase   uint64   // 兑换比例：基础资产份
	RatioToken  uint64   // 兑换比例：代币份
	MaxAllocate *big.Int // 单个参与者默认认购上限，基础资产单位，nil 或 0 表示不限
	EndTime     int64    // 计划结束时间，0 表示仅手动结束
}

// Order 参与者的认购账目，记录出资、应得代币与已释放代币
type Order struct {
	Participant string   `json:"participant"`
	Contributed *big.Int `json:"contributed"`
	Entitled    *big.Int `json:"entitled"`
	Released    *big.Int `json:"released"`
}

// Clone 返回账目的深拷贝
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	return &Order{
		Participant: o.Participant,
		Contributed: cloneBigInt(o.Contributed),
		Entitled:    cloneBigInt(o.Entitled),
		Released:    cloneBigInt(o.Released),
	}
}

// LaunchState 募资参数与可变账目，由 Project 独占持有
type LaunchState struct {
	SoftCap          *big.Int
	HardCap          *big.Int
	RatioBase        uint64
	RatioToken       uint64
	Phase            Phase
	TotalSold        *big.Int // 已售出代币
	ParticipantCount uint64
	StartTime        int64
	EndTime          int64
	MaxAllocate      *big.Int

	// TokenFund 代币池，项目方注入前为 nil
	TokenFund *Pool
	// RaisedFund 募集池，首笔认购前为 nil
	RaisedFund *Pool

	// Orders 认购账目，键为参与者地址
	Orders map[string]*Order
}

// Project 募资项目聚合根。白名单集合与上限覆盖表仅在对应开关打开后才存在。
type Project struct {
	ID        uint64
	Owner     string
	Name      string
	CreatedAt int64

	State LaunchState

	WhitelistEnabled bool
	Whitelist        map[string]struct{}

	OverrideEnabled      bool
	MaxAllocateOverrides map[string]*big.Int

	Schedule *VestingSchedule
}

// Order 查找参与者账目
func (p *Project) Order(participant string) (*Order, bool) {
	if p == nil || p.State.Orders == nil {
		return nil, false
	}
	o, ok := p.State.Orders[participant]
	return o, ok
}

// RaisedBalance 募集池余额，池不存在时为 0
func (p *Project) RaisedBalance() *big.Int {
	if p == nil || p.State.RaisedFund == nil {
		return big.NewInt(0)
	}
	return p.State.RaisedFund.Balance()
}

// TokenFundBalance 代币池余额，池不存在时为 0
func (p *Project) TokenFundBalance() *big.Int {
	if p == nil || p.State.TokenFund == nil {
		return big.NewInt(0)
	}
	return p.State.TokenFund.Balance()
}

func cloneBigInt(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(v)
}

// convertToToken 基础资产换算成代币：amount / ratioBase * ratioToken，
// 整除截断，零头不计入参与者
func convertToToken(amount *big.Int, ratioBase, ratioToken uint64) *big.Int {
	out := new(big.Int).Div(cloneBigInt(amount), new(big.Int).SetUint64(ratioBase))
	return out.Mul(out, new(big.Int).SetUint64(ratioToken))
}

// convertToBase 代币换算回基础资产：amount / ratioToken * ratioBase，同样截断
func convertToBase(amount *big.Int, ratioBase, ratioToken uint64) *big.Int {
	out := new(big.Int).Div(cloneBigInt(amount), new(big.Int).SetUint64(ratioToken))
	return out.Mul(out, new(big.Int).SetUint64(ratioBase))
}
