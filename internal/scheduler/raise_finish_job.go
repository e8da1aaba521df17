package scheduler

import (
	"time"

	"github.com/blues/lps/internal/config"
	"github.com/blues/lps/internal/launchpad"
	"github.com/blues/lps/internal/logger"
	"github.com/blues/lps/internal/logic"
	"github.com/go-co-op/gocron/v2"
)

// RaiseFinishJob 自动结束募资任务。扫描所有募资中且配置了计划
// 结束时间的项目，到期即触发结束迁移。未配置结束时间的项目只手动结束。
type RaiseFinishJob struct {
	launchLogic *logic.LaunchLogic
	config      *config.Config
}

// NewRaiseFinishJob 创建自动结束募资任务
func NewRaiseFinishJob(launchLogic *logic.LaunchLogic, cfg *config.Config) *RaiseFinishJob {
	return &RaiseFinishJob{
		launchLogic: launchLogic,
		config:      cfg,
	}
}

// GetName 获取任务名称
func (j *RaiseFinishJob) GetName() string {
	return "raise_finisher"
}

// GetSchedule 获取调度配置
func (j *RaiseFinishJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Scheduler.FinishInterval) * time.Second)
}

// Execute 执行任务
func (j *RaiseFinishJob) Execute() {
	now := time.Now().Unix()
	store := j.launchLogic.Engine().Store()

	finished := 0
	for _, id := range store.IDs() {
		var due bool
		err := store.View(id, func(p *launchpad.Project) error {
			due = p.State.Phase == launchpad.PhaseRaising &&
				p.State.EndTime > 0 && p.State.EndTime <= now
			return nil
		})
		if err != nil || !due {
			continue
		}

		phase, err := j.launchLogic.End(id, now)
		if err != nil {
			logger.Error("Failed to finish raise for project %d: %v", id, err)
			continue
		}
		logger.Info("Raise finished for project %d, entering phase %s", id, phase)
		finished++
	}

	if finished > 0 {
		logger.Info("Raise finish task completed, %d projects finished", finished)
	}
}
