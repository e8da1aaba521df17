package main

import (
	"github.com/blues/lps/internal/chain"
	"github.com/blues/lps/internal/config"
	"github.com/blues/lps/internal/database"
	"github.com/blues/lps/internal/launchpad"
	"github.com/blues/lps/internal/logger"
	"github.com/blues/lps/internal/logic"
	"github.com/blues/lps/internal/notifier"
	"github.com/blues/lps/internal/router"
	"github.com/blues/lps/internal/scheduler"
	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	logger.Setup(cfg.Log.Level, cfg.Log.Output, cfg.Log.File)

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化引擎与内存账本
	engine := launchpad.NewEngine(launchpad.NewStore())
	adminCap := launchpad.NewAdminCap()

	launchLogic := logic.NewLaunchLogic(db, engine, adminCap)
	engagementLogic := logic.NewEngagementLogic(db)
	eventLogic := logic.NewEventLogic(db)

	// 从数据库快照重建内存账本
	if err := launchLogic.LoadProjects(); err != nil {
		logger.Fatal("Failed to load projects: %v", err)
	}

	// 接入链上划转
	if cfg.Chain.Enabled {
		payoutClient, err := chain.NewPayoutClient(cfg.Chain)
		if err != nil {
			logger.Fatal("Failed to initialize payout client: %v", err)
		}
		defer payoutClient.Close()
		engine.SetTransferor(payoutClient)
	}

	// 接入事件通知
	n, err := notifier.New(eventLogic, cfg.Notify.WebhookURL, cfg.Notify.Workers)
	if err != nil {
		logger.Fatal("Failed to initialize notifier: %v", err)
	}
	defer n.Close()
	engine.SetEmitter(n)

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(launchLogic, engagementLogic, eventLogic, cfg)

	// 启动定时任务
	manager, err := scheduler.NewManager(launchLogic, n, cfg)
	if err != nil {
		logger.Fatal("Failed to create scheduler: %v", err)
	}
	manager.Start()
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
