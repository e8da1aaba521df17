package launchpad

import "errors"

// 所有失败都是同步的业务拒绝，调用不产生任何部分效果。
var (
	// 阶段违规
	ErrInvalidPhase = errors.New("launchpad: operation not allowed in current phase")

	// 额度违规
	ErrOutOfHardCap        = errors.New("launchpad: contribution exceeds hard cap")
	ErrMaxAllocateExceeded = errors.New("launchpad: contribution exceeds max allocation")

	// 资金违规
	ErrInsufficientTokenFund = errors.New("launchpad: token fund does not cover soft cap")
	ErrInsufficientBalance   = errors.New("launchpad: insufficient pool balance")
	ErrEmptyPool             = errors.New("launchpad: pool is empty")

	// 准入违规
	ErrNotWhitelisted    = errors.New("launchpad: participant not whitelisted")
	ErrWhitelistDisabled = errors.New("launchpad: whitelist not enabled")

	// 账目违规
	ErrNoOrder              = errors.New("launchpad: no order for participant")
	ErrClaimAlreadyComplete = errors.New("launchpad: nothing unlocked to claim")

	// 解锁计划违规
	ErrInvalidMilestone = errors.New("launchpad: invalid milestone")
	ErrScheduleKind     = errors.New("launchpad: wrong schedule kind for operation")
	ErrNoSchedule       = errors.New("launchpad: vesting schedule not configured")

	// 其他
	ErrAdminCapRequired = errors.New("launchpad: admin capability required")
	ErrNotOwner         = errors.New("launchpad: caller is not project owner")
	ErrProjectNotFound  = errors.New("launchpad: project not found")
	ErrInvalidParams    = errors.New("launchpad: invalid launch params")
	ErrInvalidAmount    = errors.New("launchpad: amount must be positive")
)
