package scheduler

import (
	"github.com/blues/lps/internal/config"
	"github.com/blues/lps/internal/logger"
	"github.com/blues/lps/internal/logic"
	"github.com/blues/lps/internal/notifier"
	"github.com/go-co-op/gocron/v2"
)

// Manager 任务管理器
type Manager struct {
	scheduler   gocron.Scheduler
	launchLogic *logic.LaunchLogic
	notifier    *notifier.Notifier
	config      *config.Config
}

// NewManager 创建新的任务管理器
func NewManager(launchLogic *logic.LaunchLogic, n *notifier.Notifier, cfg *config.Config) (*Manager, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	return &Manager{
		scheduler:   s,
		launchLogic: launchLogic,
		notifier:    n,
		config:      cfg,
	}, nil
}

// Start 启动任务管理器
func (m *Manager) Start() {
	m.registerJobs()
	m.scheduler.Start()
	logger.Info("Task manager started successfully")
}

// registerJobs 注册所有任务
func (m *Manager) registerJobs() {
	m.registerJob(NewRaiseFinishJob(m.launchLogic, m.config))
	if m.notifier != nil {
		m.registerJob(NewNotifyJob(m.notifier, m.config))
	}
}

// Job 周期任务
type Job interface {
	GetName() string
	GetSchedule() gocron.JobDefinition
	Execute()
}

func (m *Manager) registerJob(job Job) {
	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", job.GetName(), err)
	}
}

// Stop 停止任务管理器
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
	logger.Info("Task manager stopped")
}
