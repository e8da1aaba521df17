package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/blues/lps/internal/logic"
	"github.com/gin-gonic/gin"
)

// AdminHandler 管理端接口：项目创建、募资配置与阶段迁移
type AdminHandler struct {
	launchLogic *logic.LaunchLogic
}

func NewAdminHandler(launchLogic *logic.LaunchLogic) *AdminHandler {
	return &AdminHandler{launchLogic: launchLogic}
}

// CreateProject 创建项目
func (h *AdminHandler) CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	project, err := h.launchLogic.CreateProject(req.Owner, req.Name, time.Now().Unix())
	if err != nil {
		EngineErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "项目创建成功", gin.H{"projectId": project.ID})
}

// SetupLaunch 配置一轮募资
func (h *AdminHandler) SetupLaunch(c *gin.Context) {
	projectId, ok := parseProjectId(c)
	if !ok {
		return
	}

	var req SetupLaunchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	params, err := req.ToParams()
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.launchLogic.Setup(projectId, params); err != nil {
		EngineErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "募资配置成功", nil)
}

// DepositTokenFund 项目方注入发售代币
func (h *AdminHandler) DepositTokenFund(c *gin.Context) {
	projectId, ok := parseProjectId(c)
	if !ok {
		return
	}

	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.launchLogic.DepositTokenFund(projectId, req.From, amount); err != nil {
		EngineErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "注资成功", nil)
}

// EnableWhitelist 开启白名单
func (h *AdminHandler) EnableWhitelist(c *gin.Context) {
	projectId, ok := parseProjectId(c)
	if !ok {
		return
	}

	if err := h.launchLogic.EnableWhitelist(projectId); err != nil {
		EngineErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "白名单已开启", nil)
}

// AddWhitelist 追加白名单地址
func (h *AdminHandler) AddWhitelist(c *gin.Context) {
	projectId, ok := parseProjectId(c)
	if !ok {
		return
	}

	var req AddWhitelistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.launchLogic.AddWhitelist(projectId, req.Addresses...); err != nil {
		EngineErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "白名单已更新", gin.H{"added": len(req.Addresses)})
}

// SetMaxAllocateOverride 设置单个参与者的认购上限覆盖
func (h *AdminHandler) SetMaxAllocateOverride(c *gin.Context) {
	projectId, ok := parseProjectId(c)
	if !ok {
		return
	}

	var req SetOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.launchLogic.SetMaxAllocateOverride(projectId, req.Address, amount); err != nil {
		EngineErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "认购上限已设置", nil)
}

// SetSchedule 配置解锁计划
func (h *AdminHandler) SetSchedule(c *gin.Context) {
	projectId, ok := parseProjectId(c)
	if !ok {
		return
	}

	var req SetScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	kind, err := parseScheduleKind(req.Kind)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.launchLogic.SetSchedule(projectId, kind, req.InitialReleaseTime, time.Now().Unix()); err != nil {
		EngineErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "解锁计划已配置", nil)
}

// AddMilestone 追加解锁里程碑
func (h *AdminHandler) AddMilestone(c *gin.Context) {
	projectId, ok := parseProjectId(c)
	if !ok {
		return
	}

	var req AddMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.launchLogic.AddMilestone(projectId, req.Time, req.Percent, time.Now().Unix()); err != nil {
		EngineErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "里程碑已追加", nil)
}

// ResetMilestones 清空解锁里程碑
func (h *AdminHandler) ResetMilestones(c *gin.Context) {
	projectId, ok := parseProjectId(c)
	if !ok {
		return
	}

	if err := h.launchLogic.ResetMilestones(projectId); err != nil {
		EngineErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "里程碑已清空", nil)
}

// StartRaise 开始募资
func (h *AdminHandler) StartRaise(c *gin.Context) {
	projectId, ok := parseProjectId(c)
	if !ok {
		return
	}

	if err := h.launchLogic.Start(projectId, time.Now().Unix()); err != nil {
		EngineErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "募资已开始", nil)
}

// EndRaise 结束募资
func (h *AdminHandler) EndRaise(c *gin.Context) {
	projectId, ok := parseProjectId(c)
	if !ok {
		return
	}

	phase, err := h.launchLogic.End(projectId, time.Now().Unix())
	if err != nil {
		EngineErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "募资已结束", gin.H{"phase": phase.String()})
}

// EndRefund 关闭退款期
func (h *AdminHandler) EndRefund(c *gin.Context) {
	projectId, ok := parseProjectId(c)
	if !ok {
		return
	}

	if err := h.launchLogic.EndRefund(projectId, time.Now().Unix()); err != nil {
		EngineErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "退款期已关闭", nil)
}

// DistributeRaisedFund 把募集池全额划给收款方
func (h *AdminHandler) DistributeRaisedFund(c *gin.Context) {
	projectId, ok := parseProjectId(c)
	if !ok {
		return
	}

	var req PayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	amount, err := h.launchLogic.Distribute(projectId, req.Recipient)
	if err != nil {
		EngineErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "募集款已划转", gin.H{"amount": amount.String()})
}

// RefundTokenToOwner 把剩余代币退回收款方
func (h *AdminHandler) RefundTokenToOwner(c *gin.Context) {
	projectId, ok := parseProjectId(c)
	if !ok {
		return
	}

	var req PayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	amount, err := h.launchLogic.RefundToken(projectId, req.Recipient)
	if err != nil {
		EngineErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "剩余代币已划转", gin.H{"amount": amount.String()})
}

func parseProjectId(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return 0, false
	}
	return id, true
}
