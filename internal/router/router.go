package router

import (
	"crypto/subtle"

	"github.com/blues/lps/internal/config"
	"github.com/blues/lps/internal/handler"
	"github.com/blues/lps/internal/logic"
	"github.com/gin-gonic/gin"
)

// Setup 组装路由。管理端路由要求请求携带能力令牌，
// 持有令牌即视为管理员，不做进一步身份校验。
func Setup(launchLogic *logic.LaunchLogic, engagementLogic *logic.EngagementLogic, eventLogic *logic.EventLogic, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "launchpad-service",
		})
	})

	launchHandler := handler.NewLaunchHandler(launchLogic)
	adminHandler := handler.NewAdminHandler(launchLogic)
	engagementHandler := handler.NewEngagementHandler(engagementLogic)
	eventHandler := handler.NewEventHandler(eventLogic)

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 项目查询与参与者操作
		projects := v1.Group("/projects")
		{
			projects.GET("", launchHandler.GetProjects)
			projects.GET("/:id", launchHandler.GetProject)
			projects.GET("/:id/stats", launchHandler.GetProjectStats)
			projects.GET("/:id/orders", launchHandler.GetOrders)
			projects.GET("/:id/orders/:address", launchHandler.GetOrder)
			projects.GET("/:id/contributions", launchHandler.GetContributeRecords)

			projects.POST("/:id/contribute", launchHandler.Contribute)
			projects.POST("/:id/claim-token", launchHandler.ClaimToken)
			projects.POST("/:id/claim-refund", launchHandler.ClaimRefund)

			// 社交互动
			projects.POST("/:id/engage", engagementHandler.Engage)
			projects.DELETE("/:id/engage", engagementHandler.Disengage)
			projects.GET("/:id/engagements", engagementHandler.GetCounts)
			projects.GET("/:id/engaged", engagementHandler.HasEngaged)
		}

		// 事件查询
		v1.GET("/events", eventHandler.GetEvents)

		// 管理端路由
		admin := v1.Group("/admin", capabilityMiddleware(cfg.Admin.CapabilityToken))
		{
			admin.POST("/projects", adminHandler.CreateProject)
			admin.POST("/projects/:id/setup", adminHandler.SetupLaunch)
			admin.POST("/projects/:id/deposit", adminHandler.DepositTokenFund)
			admin.POST("/projects/:id/whitelist/enable", adminHandler.EnableWhitelist)
			admin.POST("/projects/:id/whitelist", adminHandler.AddWhitelist)
			admin.POST("/projects/:id/override", adminHandler.SetMaxAllocateOverride)
			admin.POST("/projects/:id/schedule", adminHandler.SetSchedule)
			admin.POST("/projects/:id/milestones", adminHandler.AddMilestone)
			admin.DELETE("/projects/:id/milestones", adminHandler.ResetMilestones)
			admin.POST("/projects/:id/start", adminHandler.StartRaise)
			admin.POST("/projects/:id/end", adminHandler.EndRaise)
			admin.POST("/projects/:id/end-refund", adminHandler.EndRefund)
			admin.POST("/projects/:id/distribute", adminHandler.DistributeRaisedFund)
			admin.POST("/projects/:id/refund-token", adminHandler.RefundTokenToOwner)
		}
	}

	return r
}

// capabilityMiddleware 校验管理员能力令牌
func capabilityMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.AbortWithStatusJSON(503, gin.H{"error": "管理端未配置能力令牌"})
			return
		}
		got := c.GetHeader("X-Admin-Capability")
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			c.AbortWithStatusJSON(401, gin.H{"error": "无效的能力令牌"})
			return
		}
		c.Next()
	}
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, X-Admin-Capability")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
