package logic

import (
	"fmt"
	"math/big"

	"github.com/blues/lps/internal/launchpad"
	"github.com/blues/lps/internal/logger"
	"github.com/blues/lps/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LaunchLogic 募资业务逻辑。内存账本（引擎）是状态迁移的权威来源，
// 每次迁移成功后在事务里落快照与流水，供查询与重启恢复。
type LaunchLogic struct {
	db     *gorm.DB
	engine *launchpad.Engine
	cap    *launchpad.AdminCap
}

// NewLaunchLogic 创建募资业务逻辑。cap 是服务进程持有的管理员凭证，
// HTTP 层校验过能力令牌后即以该凭证调用引擎。
func NewLaunchLogic(db *gorm.DB, engine *launchpad.Engine, cap *launchpad.AdminCap) *LaunchLogic {
	return &LaunchLogic{db: db, engine: engine, cap: cap}
}

// Engine 暴露底层引擎，调度任务使用
func (l *LaunchLogic) Engine() *launchpad.Engine { return l.engine }

// CreateProject 创建项目并落快照
func (l *LaunchLogic) CreateProject(owner, name string, now int64) (*launchpad.Project, error) {
	p, err := l.engine.CreateProject(l.cap, owner, name, now)
	if err != nil {
		return nil, err
	}
	record := model.ProjectModel{
		Id:            int64(p.ID),
		Name:          name,
		OwnerAddress:  owner,
		Phase:         p.State.Phase.String(),
		CreatedAtUnix: now,
	}
	if err := l.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("保存项目快照失败: %w", err)
	}
	return p, nil
}

// Setup 配置一轮募资
func (l *LaunchLogic) Setup(projectID uint64, params launchpad.LaunchParams) error {
	if err := l.engine.SetupLaunch(l.cap, projectID, params); err != nil {
		return err
	}
	return l.snapshot(l.db, projectID)
}

// DepositTokenFund 项目方注入发售代币
func (l *LaunchLogic) DepositTokenFund(projectID uint64, from string, amount *big.Int) error {
	if err := l.engine.DepositTokenFund(projectID, from, amount); err != nil {
		return err
	}
	return l.snapshot(l.db, projectID)
}

// EnableWhitelist 开启白名单
func (l *LaunchLogic) EnableWhitelist(projectID uint64) error {
	if err := l.engine.EnableWhitelist(l.cap, projectID); err != nil {
		return err
	}
	return l.snapshot(l.db, projectID)
}

// AddWhitelist 追加白名单地址
func (l *LaunchLogic) AddWhitelist(projectID uint64, addresses ...string) error {
	if err := l.engine.AddWhitelist(l.cap, projectID, addresses...); err != nil {
		return err
	}
	return l.db.Transaction(func(tx *gorm.DB) error {
		for _, addr := range addresses {
			entry := model.WhitelistEntryModel{ProjectId: int64(projectID), Address: addr}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error; err != nil {
				return err
			}
		}
		return l.snapshot(tx, projectID)
	})
}

// SetMaxAllocateOverride 设置单个参与者的认购上限覆盖
func (l *LaunchLogic) SetMaxAllocateOverride(projectID uint64, address string, amount *big.Int) error {
	if err := l.engine.SetMaxAllocateOverride(l.cap, projectID, address, amount); err != nil {
		return err
	}
	return l.db.Transaction(func(tx *gorm.DB) error {
		override := model.AllocationOverrideModel{
			ProjectId: int64(projectID),
			Address:   address,
			Amount:    amount.String(),
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}, {Name: "address"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount"}),
		}).Create(&override).Error; err != nil {
			return err
		}
		return l.snapshot(tx, projectID)
	})
}

// SetSchedule 配置解锁计划，旧里程碑一并清掉
func (l *LaunchLogic) SetSchedule(projectID uint64, kind launchpad.ScheduleKind, initialReleaseTime, now int64) error {
	if err := l.engine.SetVestingSchedule(l.cap, projectID, kind, initialReleaseTime, now); err != nil {
		return err
	}
	return l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).Delete(&model.MilestoneModel{}).Error; err != nil {
			return err
		}
		return l.snapshot(tx, projectID)
	})
}

// AddMilestone 追加解锁里程碑
func (l *LaunchLogic) AddMilestone(projectID uint64, t int64, percent uint64, now int64) error {
	if err := l.engine.AddMilestone(l.cap, projectID, t, percent, now); err != nil {
		return err
	}
	return l.db.Transaction(func(tx *gorm.DB) error {
		var seq int64
		if err := tx.Model(&model.MilestoneModel{}).Where("project_id = ?", projectID).Count(&seq).Error; err != nil {
			return err
		}
		record := model.MilestoneModel{
			ProjectId: int64(projectID),
			Seq:       int(seq),
			Time:      t,
			Percent:   percent,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		return l.snapshot(tx, projectID)
	})
}

// ResetMilestones 清空解锁里程碑
func (l *LaunchLogic) ResetMilestones(projectID uint64) error {
	if err := l.engine.ResetMilestones(l.cap, projectID); err != nil {
		return err
	}
	return l.db.Where("project_id = ?", projectID).Delete(&model.MilestoneModel{}).Error
}

// Start 开始募资
func (l *LaunchLogic) Start(projectID uint64, now int64) error {
	if err := l.engine.StartRaise(l.cap, projectID, now); err != nil {
		return err
	}
	return l.snapshot(l.db, projectID)
}

// Contribute 参与认购：更新账目快照并记一笔流水
func (l *LaunchLogic) Contribute(projectID uint64, address string, amount *big.Int, now int64) (*launchpad.Order, error) {
	order, err := l.engine.Contribute(projectID, address, amount, now)
	if err != nil {
		return nil, err
	}
	err = l.db.Transaction(func(tx *gorm.DB) error {
		if err := l.upsertOrder(tx, projectID, order); err != nil {
			return err
		}
		record := model.ContributeRecordModel{
			ProjectId: int64(projectID),
			Address:   address,
			Amount:    amount.String(),
			Tokens:    order.Entitled.String(),
			Timestamp: now,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		return l.snapshot(tx, projectID)
	})
	if err != nil {
		return nil, fmt.Errorf("保存认购流水失败: %w", err)
	}
	return order, nil
}

// End 结束募资，按软顶决定进入退款期还是领取期
func (l *LaunchLogic) End(projectID uint64, now int64) (launchpad.Phase, error) {
	phase, err := l.engine.EndRaise(l.cap, projectID, now)
	if err != nil {
		return 0, err
	}
	return phase, l.snapshot(l.db, projectID)
}

// EndRefund 关闭退款期
func (l *LaunchLogic) EndRefund(projectID uint64, now int64) error {
	if err := l.engine.EndRefund(l.cap, projectID, now); err != nil {
		return err
	}
	return l.snapshot(l.db, projectID)
}

// Distribute 把募集池全额划给收款方
func (l *LaunchLogic) Distribute(projectID uint64, recipient string) (*big.Int, error) {
	amount, err := l.engine.DistributeRaisedFund(l.cap, projectID, recipient)
	if err != nil {
		return nil, err
	}
	return amount, l.recordPayout(projectID, model.PayoutKindRaised, recipient, amount)
}

// RefundToken 把剩余代币退回收款方
func (l *LaunchLogic) RefundToken(projectID uint64, recipient string) (*big.Int, error) {
	amount, err := l.engine.RefundTokenToOwner(l.cap, projectID, recipient)
	if err != nil {
		return nil, err
	}
	return amount, l.recordPayout(projectID, model.PayoutKindToken, recipient, amount)
}

// ClaimRefund 参与者领取退款
func (l *LaunchLogic) ClaimRefund(projectID uint64, address string) (*big.Int, error) {
	amount, err := l.engine.ClaimRefund(projectID, address)
	if err != nil {
		return nil, err
	}
	err = l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.OrderModel{}).
			Where("project_id = ? AND address = ?", projectID, address).
			Update("refunded", true).Error; err != nil {
			return err
		}
		record := model.RefundRecordModel{
			ProjectId: int64(projectID),
			Address:   address,
			Amount:    amount.String(),
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		return l.snapshot(tx, projectID)
	})
	if err != nil {
		return nil, fmt.Errorf("保存退款流水失败: %w", err)
	}
	return amount, nil
}

// ClaimToken 参与者领取已解锁代币
func (l *LaunchLogic) ClaimToken(projectID uint64, address string, now int64) (*big.Int, error) {
	amount, err := l.engine.ClaimToken(projectID, address, now)
	if err != nil {
		return nil, err
	}
	err = l.db.Transaction(func(tx *gorm.DB) error {
		var order *launchpad.Order
		var unlocked uint64
		viewErr := l.engine.Store().View(projectID, func(p *launchpad.Project) error {
			if o, ok := p.Order(address); ok {
				order = o.Clone()
			}
			unlocked = p.Schedule.UnlockedPercent(now)
			return nil
		})
		if viewErr != nil {
			return viewErr
		}
		if order != nil {
			if err := l.upsertOrder(tx, projectID, order); err != nil {
				return err
			}
		}
		record := model.ClaimRecordModel{
			ProjectId:       int64(projectID),
			Address:         address,
			Amount:          amount.String(),
			UnlockedPercent: unlocked,
			Timestamp:       now,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		return l.snapshot(tx, projectID)
	})
	if err != nil {
		return nil, fmt.Errorf("保存领取流水失败: %w", err)
	}
	return amount, nil
}

// upsertOrder 账目快照写入（按项目+地址唯一）
func (l *LaunchLogic) upsertOrder(tx *gorm.DB, projectID uint64, order *launchpad.Order) error {
	record := model.OrderModel{
		ProjectId:   int64(projectID),
		Address:     order.Participant,
		Contributed: order.Contributed.String(),
		Entitled:    order.Entitled.String(),
		Released:    order.Released.String(),
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "project_id"}, {Name: "address"}},
		DoUpdates: clause.AssignmentColumns([]string{"contributed", "entitled", "released", "refunded"}),
	}).Create(&record).Error
}

func (l *LaunchLogic) recordPayout(projectID uint64, kind model.PayoutKind, recipient string, amount *big.Int) error {
	return l.db.Transaction(func(tx *gorm.DB) error {
		record := model.PayoutRecordModel{
			ProjectId: int64(projectID),
			Kind:      string(kind),
			Recipient: recipient,
			Amount:    amount.String(),
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		return l.snapshot(tx, projectID)
	})
}

// snapshot 把内存账本的当前状态写回项目快照表
func (l *LaunchLogic) snapshot(tx *gorm.DB, projectID uint64) error {
	var fields map[string]interface{}
	err := l.engine.Store().View(projectID, func(p *launchpad.Project) error {
		fields = map[string]interface{}{
			"phase":              p.State.Phase.String(),
			"soft_cap":           bigString(p.State.SoftCap),
			"hard_cap":           bigString(p.State.HardCap),
			"ratio_base":         p.State.RatioBase,
			"ratio_token":        p.State.RatioToken,
			"max_allocate":       bigString(p.State.MaxAllocate),
			"total_sold":         bigString(p.State.TotalSold),
			"participant_count":  p.State.ParticipantCount,
			"raised_balance":     p.RaisedBalance().String(),
			"token_fund_balance": p.TokenFundBalance().String(),
			"start_time":         p.State.StartTime,
			"end_time":           p.State.EndTime,
			"whitelist_enabled":  p.WhitelistEnabled,
			"override_enabled":   p.OverrideEnabled,
		}
		if p.Schedule != nil {
			kind := uint8(p.Schedule.Kind)
			fields["schedule_kind"] = &kind
			fields["initial_release_time"] = p.Schedule.InitialReleaseTime
			fields["schedule_created_at"] = p.Schedule.CreatedAt
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := tx.Model(&model.ProjectModel{}).Where("id = ?", projectID).Updates(fields).Error; err != nil {
		logger.Error("Failed to snapshot project %d: %v", projectID, err)
		return err
	}
	return nil
}

func bigString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
