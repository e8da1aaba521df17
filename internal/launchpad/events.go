package launchpad

import (
	"math/big"
	"strconv"
)

const (
	EventTypeProjectCreated   = "launch.project_created"
	EventTypeSetup            = "launch.setup"
	EventTypeTokenDeposited   = "launch.token_deposited"
	EventTypeWhitelistAdded   = "launch.whitelist_added"
	EventTypeOverrideSet      = "launch.override_set"
	EventTypeScheduleSet      = "launch.schedule_set"
	EventTypeMilestoneAdded   = "launch.milestone_added"
	EventTypeMilestonesReset  = "launch.milestones_reset"
	EventTypeRaiseStarted     = "launch.raise_started"
	EventTypeContributed      = "launch.contributed"
	EventTypeRaiseEnded       = "launch.raise_ended"
	EventTypeRefundClosed     = "launch.refund_closed"
	EventTypeRaisedDistribute = "launch.raised_distributed"
	EventTypeTokenRefunded    = "launch.token_refunded"
	EventTypeRefundClaimed    = "launch.refund_claimed"
	EventTypeTokenClaimed     = "launch.token_claimed"
)

// Event 状态迁移成功后对外发布的结构化记录
type Event struct {
	Type       string
	Attributes map[string]string
}

// Emitter 事件接收方接口，由外部观察者实现
type Emitter interface {
	Emit(evt *Event)
}

// NoopEmitter 丢弃所有事件的缺省实现
type NoopEmitter struct{}

// Emit 丢弃事件
func (NoopEmitter) Emit(*Event) {}

func newLaunchEvent(eventType string, p *Project) *Event {
	attrs := make(map[string]string)
	if p != nil {
		attrs["projectId"] = strconv.FormatUint(p.ID, 10)
		attrs["phase"] = p.State.Phase.String()
		attrs["totalSold"] = bigString(p.State.TotalSold)
		attrs["participantCount"] = strconv.FormatUint(p.State.ParticipantCount, 10)
		attrs["raisedBalance"] = p.RaisedBalance().String()
		attrs["tokenFundBalance"] = p.TokenFundBalance().String()
	}
	return &Event{Type: eventType, Attributes: attrs}
}

// NewContributedEvent 认购成功事件
func NewContributedEvent(p *Project, participant string, amount, tokens *big.Int) *Event {
	evt := newLaunchEvent(EventTypeContributed, p)
	evt.Attributes["participant"] = participant
	evt.Attributes["amount"] = bigString(amount)
	evt.Attributes["tokens"] = bigString(tokens)
	return evt
}

// NewRefundClaimedEvent 退款领取事件
func NewRefundClaimedEvent(p *Project, participant string, amount *big.Int) *Event {
	evt := newLaunchEvent(EventTypeRefundClaimed, p)
	evt.Attributes["participant"] = participant
	evt.Attributes["amount"] = bigString(amount)
	return evt
}

// NewTokenClaimedEvent 代币领取事件
func NewTokenClaimedEvent(p *Project, participant string, amount *big.Int, unlocked uint64) *Event {
	evt := newLaunchEvent(EventTypeTokenClaimed, p)
	evt.Attributes["participant"] = participant
	evt.Attributes["amount"] = bigString(amount)
	evt.Attributes["unlockedPercent"] = strconv.FormatUint(unlocked, 10)
	return evt
}

// NewTransferEvent 整池划转事件（分配募集款或退回代币）
func NewTransferEvent(eventType string, p *Project, recipient string, amount *big.Int) *Event {
	evt := newLaunchEvent(eventType, p)
	evt.Attributes["recipient"] = recipient
	evt.Attributes["amount"] = bigString(amount)
	return evt
}

func bigString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
