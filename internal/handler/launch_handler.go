package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/blues/lps/internal/logic"
	"github.com/gin-gonic/gin"
)

// LaunchHandler 参与者接口：认购、领取与查询
type LaunchHandler struct {
	launchLogic *logic.LaunchLogic
}

func NewLaunchHandler(launchLogic *logic.LaunchLogic) *LaunchHandler {
	return &LaunchHandler{launchLogic: launchLogic}
}

// Contribute 参与认购
func (h *LaunchHandler) Contribute(c *gin.Context) {
	projectId, ok := parseProjectId(c)
	if !ok {
		return
	}

	var req ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.launchLogic.Contribute(projectId, req.Address, amount, time.Now().Unix())
	if err != nil {
		EngineErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "认购成功", gin.H{"order": ToOrderResponse(order)})
}

// ClaimToken 领取已解锁代币
func (h *LaunchHandler) ClaimToken(c *gin.Context) {
	projectId, ok := parseProjectId(c)
	if !ok {
		return
	}

	var req ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	amount, err := h.launchLogic.ClaimToken(projectId, req.Address, time.Now().Unix())
	if err != nil {
		EngineErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "代币领取成功", gin.H{"amount": amount.String()})
}

// ClaimRefund 领取退款
func (h *LaunchHandler) ClaimRefund(c *gin.Context) {
	projectId, ok := parseProjectId(c)
	if !ok {
		return
	}

	var req ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	amount, err := h.launchLogic.ClaimRefund(projectId, req.Address)
	if err != nil {
		EngineErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "退款领取成功", gin.H{"amount": amount.String()})
}

// GetProjects 获取项目列表
func (h *LaunchHandler) GetProjects(c *gin.Context) {
	page, pageSize := parsePagination(c)

	projects, total, err := h.launchLogic.GetProjects(page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取成功", gin.H{
		"projects":   projects,
		"pagination": NewPagination(page, pageSize, total),
	})
}

// GetProject 获取项目详情
func (h *LaunchHandler) GetProject(c *gin.Context) {
	projectId, ok := parseProjectId(c)
	if !ok {
		return
	}

	project, err := h.launchLogic.GetProject(int64(projectId))
	if err != nil {
		ErrorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	milestones, err := h.launchLogic.GetMilestones(int64(projectId))
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取成功", gin.H{
		"project":    project,
		"milestones": milestones,
	})
}

// GetOrder 获取参与者账目
func (h *LaunchHandler) GetOrder(c *gin.Context) {
	projectId, ok := parseProjectId(c)
	if !ok {
		return
	}
	address := c.Param("address")

	order, err := h.launchLogic.GetOrder(int64(projectId), address)
	if err != nil {
		ErrorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取成功", gin.H{"order": order})
}

// GetOrders 获取项目账目列表
func (h *LaunchHandler) GetOrders(c *gin.Context) {
	projectId, ok := parseProjectId(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)

	orders, total, err := h.launchLogic.GetOrders(int64(projectId), page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取成功", gin.H{
		"orders":     orders,
		"pagination": NewPagination(page, pageSize, total),
	})
}

// GetContributeRecords 获取项目认购流水
func (h *LaunchHandler) GetContributeRecords(c *gin.Context) {
	projectId, ok := parseProjectId(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)

	records, total, err := h.launchLogic.GetContributeRecords(int64(projectId), page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取成功", gin.H{
		"records":    records,
		"pagination": NewPagination(page, pageSize, total),
	})
}

// GetProjectStats 获取项目统计信息
func (h *LaunchHandler) GetProjectStats(c *gin.Context) {
	projectId, ok := parseProjectId(c)
	if !ok {
		return
	}

	stats, err := h.launchLogic.GetProjectStats(int64(projectId))
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取成功", gin.H{"stats": stats})
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}
