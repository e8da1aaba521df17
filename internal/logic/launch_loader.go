package logic

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/blues/lps/internal/launchpad"
	"github.com/blues/lps/internal/logger"
	"github.com/blues/lps/internal/model"
)

// LoadProjects 启动时从数据库快照重建内存账本。
// 已退款的账目（Refunded）不再回到账本，与退款即删单的语义一致。
func (l *LaunchLogic) LoadProjects() error {
	var projects []model.ProjectModel
	if err := l.db.Find(&projects).Error; err != nil {
		return fmt.Errorf("加载项目快照失败: %w", err)
	}

	for _, pm := range projects {
		p, err := l.rebuild(&pm)
		if err != nil {
			return fmt.Errorf("重建项目 %d 失败: %w", pm.Id, err)
		}
		l.engine.Store().Add(p)
	}

	logger.Info("Loaded %d projects from snapshot", len(projects))
	return nil
}

func (l *LaunchLogic) rebuild(pm *model.ProjectModel) (*launchpad.Project, error) {
	softCap, err := parseBig(pm.SoftCap)
	if err != nil {
		return nil, err
	}
	hardCap, err := parseBig(pm.HardCap)
	if err != nil {
		return nil, err
	}
	maxAllocate, err := parseBig(pm.MaxAllocate)
	if err != nil {
		return nil, err
	}
	totalSold, err := parseBig(pm.TotalSold)
	if err != nil {
		return nil, err
	}
	raised, err := parseBig(pm.RaisedBalance)
	if err != nil {
		return nil, err
	}
	tokenFund, err := parseBig(pm.TokenFundBalance)
	if err != nil {
		return nil, err
	}

	p := &launchpad.Project{
		ID:        uint64(pm.Id),
		Owner:     pm.OwnerAddress,
		Name:      pm.Name,
		CreatedAt: pm.CreatedAtUnix,
		State: launchpad.LaunchState{
			SoftCap:          softCap,
			HardCap:          hardCap,
			RatioBase:        pm.RatioBase,
			RatioToken:       pm.RatioToken,
			Phase:            parsePhase(pm.Phase),
			TotalSold:        totalSold,
			ParticipantCount: pm.ParticipantCount,
			StartTime:        pm.StartTime,
			EndTime:          pm.EndTime,
			MaxAllocate:      maxAllocate,
		},
		WhitelistEnabled: pm.WhitelistEnabled,
		OverrideEnabled:  pm.OverrideEnabled,
	}
	if raised.Sign() > 0 {
		p.State.RaisedFund = launchpad.NewPool()
		if err := p.State.RaisedFund.Deposit(raised); err != nil {
			return nil, err
		}
	}
	if tokenFund.Sign() > 0 {
		p.State.TokenFund = launchpad.NewPool()
		if err := p.State.TokenFund.Deposit(tokenFund); err != nil {
			return nil, err
		}
	}

	if err := l.rebuildOrders(pm.Id, p); err != nil {
		return nil, err
	}
	if err := l.rebuildGate(pm.Id, p); err != nil {
		return nil, err
	}
	if err := l.rebuildSchedule(pm, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (l *LaunchLogic) rebuildOrders(projectID int64, p *launchpad.Project) error {
	var orders []model.OrderModel
	if err := l.db.Where("project_id = ? AND refunded = ?", projectID, false).Find(&orders).Error; err != nil {
		return err
	}
	if len(orders) == 0 {
		return nil
	}
	p.State.Orders = make(map[string]*launchpad.Order, len(orders))
	for _, om := range orders {
		contributed, err := parseBig(om.Contributed)
		if err != nil {
			return err
		}
		entitled, err := parseBig(om.Entitled)
		if err != nil {
			return err
		}
		released, err := parseBig(om.Released)
		if err != nil {
			return err
		}
		p.State.Orders[om.Address] = &launchpad.Order{
			Participant: om.Address,
			Contributed: contributed,
			Entitled:    entitled,
			Released:    released,
		}
	}
	return nil
}

func (l *LaunchLogic) rebuildGate(projectID int64, p *launchpad.Project) error {
	if p.WhitelistEnabled {
		var entries []model.WhitelistEntryModel
		if err := l.db.Where("project_id = ?", projectID).Find(&entries).Error; err != nil {
			return err
		}
		p.Whitelist = make(map[string]struct{}, len(entries))
		for _, e := range entries {
			p.Whitelist[e.Address] = struct{}{}
		}
	}
	if p.OverrideEnabled {
		var overrides []model.AllocationOverrideModel
		if err := l.db.Where("project_id = ?", projectID).Find(&overrides).Error; err != nil {
			return err
		}
		p.MaxAllocateOverrides = make(map[string]*big.Int, len(overrides))
		for _, o := range overrides {
			amount, err := parseBig(o.Amount)
			if err != nil {
				return err
			}
			p.MaxAllocateOverrides[o.Address] = amount
		}
	}
	return nil
}

func (l *LaunchLogic) rebuildSchedule(pm *model.ProjectModel, p *launchpad.Project) error {
	if pm.ScheduleKind == nil {
		return nil
	}
	schedule := launchpad.NewVestingSchedule(
		launchpad.ScheduleKind(*pm.ScheduleKind), pm.InitialReleaseTime, pm.ScheduleCreatedAt)
	var milestones []model.MilestoneModel
	if err := l.db.Where("project_id = ?", pm.Id).Find(&milestones).Error; err != nil {
		return err
	}
	sort.Slice(milestones, func(i, j int) bool { return milestones[i].Seq < milestones[j].Seq })
	for _, m := range milestones {
		schedule.Milestones = append(schedule.Milestones, launchpad.Milestone{Time: m.Time, Percent: m.Percent})
	}
	p.Schedule = schedule
	return nil
}

func parseBig(s string) (*big.Int, error) {
	if s == "" {
		return big.NewInt(0), nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("非法金额: %q", s)
	}
	return v, nil
}

func parsePhase(s string) launchpad.Phase {
	switch s {
	case "raising":
		return launchpad.PhaseRaising
	case "refunding":
		return launchpad.PhaseRefunding
	case "refund_closed":
		return launchpad.PhaseRefundClosed
	case "claiming":
		return launchpad.PhaseClaiming
	default:
		return launchpad.PhaseInit
	}
}
