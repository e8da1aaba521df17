package scheduler

import (
	"time"

	"github.com/blues/lps/internal/config"
	"github.com/blues/lps/internal/logger"
	"github.com/blues/lps/internal/notifier"
	"github.com/go-co-op/gocron/v2"
)

// NotifyJob 事件补推任务，周期性重投未投递成功的事件
type NotifyJob struct {
	notifier *notifier.Notifier
	config   *config.Config
}

// NewNotifyJob 创建事件补推任务
func NewNotifyJob(n *notifier.Notifier, cfg *config.Config) *NotifyJob {
	return &NotifyJob{
		notifier: n,
		config:   cfg,
	}
}

// GetName 获取任务名称
func (j *NotifyJob) GetName() string {
	return "event_redeliverer"
}

// GetSchedule 获取调度配置
func (j *NotifyJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Scheduler.NotifyInterval) * time.Second)
}

// Execute 执行任务
func (j *NotifyJob) Execute() {
	if err := j.notifier.Redeliver(100); err != nil {
		logger.Error("Failed to redeliver events: %v", err)
	}
}
