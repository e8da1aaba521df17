package launchpad

import (
	"math/big"
)

// 资产标识，传给外部划转原语
const (
	AssetBase  = "BASE"  // 参与者出资的基础资产
	AssetToken = "TOKEN" // 项目方发售的代币
)

// Transferor 外部资产划转原语：把指定资产从托管池划给目标身份。
// 引擎在调用前已校验池内余额，划转视为原子且不失败。
type Transferor interface {
	Transfer(asset string, to string, amount *big.Int) error
}

// NoopTransferor 不执行任何实际划转的缺省实现
type NoopTransferor struct{}

// Transfer 空操作
func (NoopTransferor) Transfer(string, string, *big.Int) error { return nil }

// Engine 启动台状态机引擎。持有项目竞技场，所有状态迁移都经由它执行；
// 每次迁移对单个项目独占生效，要么全部成功要么毫无效果。
type Engine struct {
	store      *Store
	emitter    Emitter
	transferor Transferor
}

// NewEngine 创建引擎，事件与划转默认接入空实现
func NewEngine(store *Store) *Engine {
	if store == nil {
		store = NewStore()
	}
	return &Engine{
		store:      store,
		emitter:    NoopEmitter{},
		transferor: NoopTransferor{},
	}
}

// Store 引擎持有的项目仓库
func (e *Engine) Store() *Store { return e.store }

// SetEmitter 配置事件接收方，传 nil 恢复为空实现
func (e *Engine) SetEmitter(emitter Emitter) {
	if emitter == nil {
		e.emitter = NoopEmitter{}
		return
	}
	e.emitter = emitter
}

// SetTransferor 配置资产划转原语，传 nil 恢复为空实现
func (e *Engine) SetTransferor(t Transferor) {
	if t == nil {
		e.transferor = NoopTransferor{}
		return
	}
	e.transferor = t
}

func (e *Engine) emit(evt *Event) {
	if e == nil || e.emitter == nil || evt == nil {
		return
	}
	e.emitter.Emit(evt)
}

// CreateProject 创建项目，初始阶段为 Init
func (e *Engine) CreateProject(cap *AdminCap, owner, name string, now int64) (*Project, error) {
	if cap == nil {
		return nil, ErrAdminCapRequired
	}
	p := &Project{
		Owner:     owner,
		Name:      name,
		CreatedAt: now,
		State: LaunchState{
			Phase:     PhaseInit,
			TotalSold: big.NewInt(0),
			Orders:    make(map[string]*Order),
		},
	}
	e.store.Add(p)
	e.emit(newLaunchEvent(EventTypeProjectCreated, p))
	return p, nil
}

// setupAllowed setup 仅在非募资期可用：Init、Claiming 或 RefundClosed
func setupAllowed(phase Phase) bool {
	return phase == PhaseInit || phase == PhaseClaiming || phase == PhaseRefundClosed
}

// softCapTokens 软顶换算成代币，代币池需至少覆盖该值
func softCapTokens(params LaunchParams) *big.Int {
	return convertToToken(params.SoftCap, params.RatioBase, params.RatioToken)
}

func validateParams(params LaunchParams) error {
	if params.SoftCap == nil || params.SoftCap.Sign() <= 0 {
		return ErrInvalidParams
	}
	if params.HardCap == nil || params.HardCap.Sign() <= 0 {
		return ErrInvalidParams
	}
	if params.RatioBase == 0 || params.RatioToken == 0 {
		return ErrInvalidParams
	}
	if params.MaxAllocate != nil && params.MaxAllocate.Sign() < 0 {
		return ErrInvalidParams
	}
	return nil
}

// SetupLaunch 配置一轮募资。仅在非募资期可用，且代币池
// 必须已覆盖软顶对应的代币量。重复配置会清零销量与参与者计数，
// 开启新一轮；既有账目保留，阶段回到 Init 等待 StartRaise。
func (e *Engine) SetupLaunch(cap *AdminCap, projectID uint64, params LaunchParams) error {
	if cap == nil {
		return ErrAdminCapRequired
	}
	if err := validateParams(params); err != nil {
		return err
	}
	var evt *Event
	err := e.store.Update(projectID, func(p *Project) error {
		if !setupAllowed(p.State.Phase) {
			return ErrInvalidPhase
		}
		if p.TokenFundBalance().Cmp(softCapTokens(params)) < 0 {
			return ErrInsufficientTokenFund
		}
		p.State.SoftCap = cloneBigInt(params.SoftCap)
		p.State.HardCap = cloneBigInt(params.HardCap)
		p.State.RatioBase = params.RatioBase
		p.State.RatioToken = params.RatioToken
		p.State.MaxAllocate = cloneBigInt(params.MaxAllocate)
		p.State.TotalSold = big.NewInt(0)
		p.State.ParticipantCount = 0
		p.State.StartTime = 0
		p.State.EndTime = params.EndTime
		p.State.Phase = PhaseInit
		evt = newLaunchEvent(EventTypeSetup, p)
		return nil
	})
	if err != nil {
		return err
	}
	e.emit(evt)
	return nil
}

// DepositTokenFund 项目方向代币池注入发售代币，任意阶段可追加
func (e *Engine) DepositTokenFund(projectID uint64, from string, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	var evt *Event
	err := e.store.Update(projectID, func(p *Project) error {
		if from != p.Owner {
			return ErrNotOwner
		}
		if p.State.TokenFund == nil {
			p.State.TokenFund = NewPool()
		}
		if err := p.State.TokenFund.Deposit(amount); err != nil {
			return err
		}
		evt = newLaunchEvent(EventTypeTokenDeposited, p)
		evt.Attributes["amount"] = amount.String()
		return nil
	})
	if err != nil {
		return err
	}
	e.emit(evt)
	return nil
}

// EnableWhitelist 开启白名单准入，仅限募资开始前
func (e *Engine) EnableWhitelist(cap *AdminCap, projectID uint64) error {
	if cap == nil {
		return ErrAdminCapRequired
	}
	return e.store.Update(projectID, func(p *Project) error {
		if p.State.Phase != PhaseInit {
			return ErrInvalidPhase
		}
		p.WhitelistEnabled = true
		if p.Whitelist == nil {
			p.Whitelist = make(map[string]struct{})
		}
		return nil
	})
}

// AddWhitelist 追加白名单地址，仅限募资开始前
func (e *Engine) AddWhitelist(cap *AdminCap, projectID uint64, participants ...string) error {
	if cap == nil {
		return ErrAdminCapRequired
	}
	var evt *Event
	err := e.store.Update(projectID, func(p *Project) error {
		if p.State.Phase != PhaseInit {
			return ErrInvalidPhase
		}
		if !p.WhitelistEnabled {
			return ErrWhitelistDisabled
		}
		for _, addr := range participants {
			p.Whitelist[addr] = struct{}{}
		}
		evt = newLaunchEvent(EventTypeWhitelistAdded, p)
		return nil
	})
	if err != nil {
		return err
	}
	e.emit(evt)
	return nil
}

// SetMaxAllocateOverride 为单个参与者设置认购上限覆盖，仅限募资开始前
func (e *Engine) SetMaxAllocateOverride(cap *AdminCap, projectID uint64, participant string, amount *big.Int) error {
	if cap == nil {
		return ErrAdminCapRequired
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	var evt *Event
	err := e.store.Update(projectID, func(p *Project) error {
		if p.State.Phase != PhaseInit {
			return ErrInvalidPhase
		}
		p.OverrideEnabled = true
		if p.MaxAllocateOverrides == nil {
			p.MaxAllocateOverrides = make(map[string]*big.Int)
		}
		p.MaxAllocateOverrides[participant] = cloneBigInt(amount)
		evt = newLaunchEvent(EventTypeOverrideSet, p)
		evt.Attributes["participant"] = participant
		evt.Attributes["amount"] = amount.String()
		return nil
	})
	if err != nil {
		return err
	}
	e.emit(evt)
	return nil
}

// SetVestingSchedule 配置解锁计划，仅限募资开始前
func (e *Engine) SetVestingSchedule(cap *AdminCap, projectID uint64, kind ScheduleKind, initialReleaseTime, now int64) error {
	if cap == nil {
		return ErrAdminCapRequired
	}
	var evt *Event
	err := e.store.Update(projectID, func(p *Project) error {
		if p.State.Phase != PhaseInit {
			return ErrInvalidPhase
		}
		p.Schedule = NewVestingSchedule(kind, initialReleaseTime, now)
		evt = newLaunchEvent(EventTypeScheduleSet, p)
		return nil
	})
	if err != nil {
		return err
	}
	e.emit(evt)
	return nil
}

// AddMilestone 向解锁计划追加里程碑，仅限募资开始前
func (e *Engine) AddMilestone(cap *AdminCap, projectID uint64, t int64, percent uint64, now int64) error {
	if cap == nil {
		return ErrAdminCapRequired
	}
	var evt *Event
	err := e.store.Update(projectID, func(p *Project) error {
		if p.State.Phase != PhaseInit {
			return ErrInvalidPhase
		}
		if p.Schedule == nil {
			return ErrNoSchedule
		}
		if err := p.Schedule.AddMilestone(t, percent, now); err != nil {
			return err
		}
		evt = newLaunchEvent(EventTypeMilestoneAdded, p)
		return nil
	})
	if err != nil {
		return err
	}
	e.emit(evt)
	return nil
}

// ResetMilestones 清空解锁计划的里程碑，仅限募资开始前
func (e *Engine) ResetMilestones(cap *AdminCap, projectID uint64) error {
	if cap == nil {
		return ErrAdminCapRequired
	}
	var evt *Event
	err := e.store.Update(projectID, func(p *Project) error {
		if p.State.Phase != PhaseInit {
			return ErrInvalidPhase
		}
		if p.Schedule == nil {
			return ErrNoSchedule
		}
		if err := p.Schedule.ResetMilestones(); err != nil {
			return err
		}
		evt = newLaunchEvent(EventTypeMilestonesReset, p)
		return nil
	})
	if err != nil {
		return err
	}
	e.emit(evt)
	return nil
}

// StartRaise 开始募资：Init → Raising，开始前复核代币池覆盖软顶
func (e *Engine) StartRaise(cap *AdminCap, projectID uint64, now int64) error {
	if cap == nil {
		return ErrAdminCapRequired
	}
	var evt *Event
	err := e.store.Update(projectID, func(p *Project) error {
		if p.State.Phase != PhaseInit {
			return ErrInvalidPhase
		}
		if p.State.SoftCap == nil {
			return ErrInvalidParams
		}
		need := convertToToken(p.State.SoftCap, p.State.RatioBase, p.State.RatioToken)
		if p.TokenFundBalance().Cmp(need) < 0 {
			return ErrInsufficientTokenFund
		}
		p.State.Phase = PhaseRaising
		p.State.StartTime = now
		evt = newLaunchEvent(EventTypeRaiseStarted, p)
		return nil
	})
	if err != nil {
		return err
	}
	e.emit(evt)
	return nil
}

// Contribute 参与认购。所有校验通过前不动任何状态：
// 准入 → 硬顶 → 个人上限，全部通过后才更新账目、池子与销量。
func (e *Engine) Contribute(projectID uint64, participant string, amount *big.Int, now int64) (*Order, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}
	var (
		evt   *Event
		order *Order
	)
	err := e.store.Update(projectID, func(p *Project) error {
		if p.State.Phase != PhaseRaising {
			return ErrInvalidPhase
		}
		if err := p.admit(participant); err != nil {
			return err
		}
		tokens := convertToToken(amount, p.State.RatioBase, p.State.RatioToken)
		sold := new(big.Int).Add(p.State.TotalSold, tokens)
		if sold.Cmp(p.State.HardCap) > 0 {
			return ErrOutOfHardCap
		}
		existing := p.State.Orders[participant]
		total := cloneBigInt(amount)
		if existing != nil {
			total.Add(total, existing.Contributed)
		}
		if cap := p.effectiveCap(participant); cap != nil && total.Cmp(cap) > 0 {
			return ErrMaxAllocateExceeded
		}

		// 校验全部通过，以下变更一并生效
		if existing == nil {
			existing = &Order{
				Participant: participant,
				Contributed: big.NewInt(0),
				Entitled:    big.NewInt(0),
				Released:    big.NewInt(0),
			}
			p.State.Orders[participant] = existing
			p.State.ParticipantCount++
		}
		existing.Contributed = new(big.Int).Add(existing.Contributed, amount)
		existing.Entitled = new(big.Int).Add(existing.Entitled, tokens)
		if p.State.RaisedFund == nil {
			p.State.RaisedFund = NewPool()
		}
		if err := p.State.RaisedFund.Deposit(amount); err != nil {
			return err
		}
		p.State.TotalSold = sold
		order = existing.Clone()
		evt = NewContributedEvent(p, participant, amount, tokens)
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.emit(evt)
	return order, nil
}

// EndRaise 结束募资。销量换算回基础资产后与软顶比较：
// 不足进入 Refunding，达到进入 Claiming。
func (e *Engine) EndRaise(cap *AdminCap, projectID uint64, now int64) (Phase, error) {
	if cap == nil {
		return 0, ErrAdminCapRequired
	}
	var (
		evt   *Event
		phase Phase
	)
	err := e.store.Update(projectID, func(p *Project) error {
		if p.State.Phase != PhaseRaising {
			return ErrInvalidPhase
		}
		raisedBase := convertToBase(p.State.TotalSold, p.State.RatioBase, p.State.RatioToken)
		if raisedBase.Cmp(p.State.SoftCap) < 0 {
			p.State.Phase = PhaseRefunding
		} else {
			p.State.Phase = PhaseClaiming
		}
		p.State.EndTime = now
		phase = p.State.Phase
		evt = newLaunchEvent(EventTypeRaiseEnded, p)
		return nil
	})
	if err != nil {
		return 0, err
	}
	e.emit(evt)
	return phase, nil
}

// EndRefund 关闭退款期：Refunding → RefundClosed，本身不动资金
func (e *Engine) EndRefund(cap *AdminCap, projectID uint64, now int64) error {
	if cap == nil {
		return ErrAdminCapRequired
	}
	var evt *Event
	err := e.store.Update(projectID, func(p *Project) error {
		if p.State.Phase != PhaseRefunding {
			return ErrInvalidPhase
		}
		p.State.Phase = PhaseRefundClosed
		evt = newLaunchEvent(EventTypeRefundClosed, p)
		return nil
	})
	if err != nil {
		return err
	}
	e.emit(evt)
	return nil
}

// distributeAllowed 整池划转仅在 RefundClosed 或 Claiming 阶段可用
func distributeAllowed(phase Phase) bool {
	return phase == PhaseRefundClosed || phase == PhaseClaiming
}

// DistributeRaisedFund 把募集池全额划给指定收款方，划转后池子归零
func (e *Engine) DistributeRaisedFund(cap *AdminCap, projectID uint64, recipient string) (*big.Int, error) {
	if cap == nil {
		return nil, ErrAdminCapRequired
	}
	var (
		evt    *Event
		amount *big.Int
	)
	err := e.store.Update(projectID, func(p *Project) error {
		if !distributeAllowed(p.State.Phase) {
			return ErrInvalidPhase
		}
		if p.State.RaisedFund.IsEmpty() {
			return ErrEmptyPool
		}
		if err := e.transferor.Transfer(AssetBase, recipient, p.State.RaisedFund.Balance()); err != nil {
			return err
		}
		amount = p.State.RaisedFund.Drain()
		p.State.RaisedFund = nil
		evt = NewTransferEvent(EventTypeRaisedDistribute, p, recipient, amount)
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.emit(evt)
	return amount, nil
}

// RefundTokenToOwner 把代币池剩余全额退回指定收款方
func (e *Engine) RefundTokenToOwner(cap *AdminCap, projectID uint64, recipient string) (*big.Int, error) {
	if cap == nil {
		return nil, ErrAdminCapRequired
	}
	var (
		evt    *Event
		amount *big.Int
	)
	err := e.store.Update(projectID, func(p *Project) error {
		if !distributeAllowed(p.State.Phase) {
			return ErrInvalidPhase
		}
		if p.State.TokenFund.IsEmpty() {
			return ErrEmptyPool
		}
		if err := e.transferor.Transfer(AssetToken, recipient, p.State.TokenFund.Balance()); err != nil {
			return err
		}
		amount = p.State.TokenFund.Drain()
		p.State.TokenFund = nil
		evt = NewTransferEvent(EventTypeTokenRefunded, p, recipient, amount)
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.emit(evt)
	return amount, nil
}

// ClaimRefund 参与者领取退款：全额退回出资并移除账目，重复领取报无账目
func (e *Engine) ClaimRefund(projectID uint64, participant string) (*big.Int, error) {
	var (
		evt    *Event
		amount *big.Int
	)
	err := e.store.Update(projectID, func(p *Project) error {
		if p.State.Phase != PhaseRefunding {
			return ErrInvalidPhase
		}
		order, ok := p.Order(participant)
		if !ok {
			return ErrNoOrder
		}
		if p.State.RaisedFund == nil {
			return ErrInsufficientBalance
		}
		refund := cloneBigInt(order.Contributed)
		if err := p.State.RaisedFund.Withdraw(refund); err != nil {
			return err
		}
		if err := e.transferor.Transfer(AssetBase, participant, refund); err != nil {
			// 划转失败时把钱放回池子，保持无部分效果
			_ = p.State.RaisedFund.Deposit(refund)
			return err
		}
		delete(p.State.Orders, participant)
		amount = refund
		evt = NewRefundClaimedEvent(p, participant, refund)
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.emit(evt)
	return amount, nil
}

// ClaimToken 参与者领取已解锁代币。按解锁计划计算应释放增量，
// 无新增可领时报 ClaimAlreadyComplete；释放量单调累加不回退。
func (e *Engine) ClaimToken(projectID uint64, participant string, now int64) (*big.Int, error) {
	var (
		evt    *Event
		amount *big.Int
	)
	err := e.store.Update(projectID, func(p *Project) error {
		if p.State.Phase != PhaseClaiming {
			return ErrInvalidPhase
		}
		order, ok := p.Order(participant)
		if !ok {
			return ErrNoOrder
		}
		unlocked := p.Schedule.UnlockedPercent(now)
		if unlocked > PercentScale {
			unlocked = PercentScale
		}
		vested := new(big.Int).Mul(order.Entitled, new(big.Int).SetUint64(unlocked))
		vested.Div(vested, big.NewInt(PercentScale))
		owed := vested.Sub(vested, order.Released)
		if owed.Sign() <= 0 {
			return ErrClaimAlreadyComplete
		}
		if p.State.TokenFund == nil {
			return ErrInsufficientBalance
		}
		if err := p.State.TokenFund.Withdraw(owed); err != nil {
			return err
		}
		if err := e.transferor.Transfer(AssetToken, participant, owed); err != nil {
			_ = p.State.TokenFund.Deposit(owed)
			return err
		}
		order.Released = new(big.Int).Add(order.Released, owed)
		amount = owed
		evt = NewTokenClaimedEvent(p, participant, owed, unlocked)
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.emit(evt)
	return amount, nil
}
