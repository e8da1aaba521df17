package handler

import (
	"net/http"

	"github.com/blues/lps/internal/logic"
	"github.com/blues/lps/internal/model"
	"github.com/gin-gonic/gin"
)

// EngagementHandler 社交互动接口
type EngagementHandler struct {
	engagementLogic *logic.EngagementLogic
}

func NewEngagementHandler(engagementLogic *logic.EngagementLogic) *EngagementHandler {
	return &EngagementHandler{engagementLogic: engagementLogic}
}

// Engage 记录一次互动
func (h *EngagementHandler) Engage(c *gin.Context) {
	projectId, ok := parseProjectId(c)
	if !ok {
		return
	}

	var req EngageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.engagementLogic.Engage(int64(projectId), req.Address, model.EngagementKind(req.Kind)); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "互动成功", nil)
}

// Disengage 撤销一次互动
func (h *EngagementHandler) Disengage(c *gin.Context) {
	projectId, ok := parseProjectId(c)
	if !ok {
		return
	}

	var req EngageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.engagementLogic.Disengage(int64(projectId), req.Address, model.EngagementKind(req.Kind)); err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "互动已撤销", nil)
}

// GetCounts 获取项目互动计数
func (h *EngagementHandler) GetCounts(c *gin.Context) {
	projectId, ok := parseProjectId(c)
	if !ok {
		return
	}

	counts, err := h.engagementLogic.GetCounts(int64(projectId))
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取成功", gin.H{"counts": counts})
}

// HasEngaged 查询某地址的互动状态
func (h *EngagementHandler) HasEngaged(c *gin.Context) {
	projectId, ok := parseProjectId(c)
	if !ok {
		return
	}
	address := c.Query("address")
	kind := c.Query("kind")
	if address == "" || kind == "" {
		ErrorResponse(c, http.StatusBadRequest, "address 和 kind 不能为空")
		return
	}

	engaged, err := h.engagementLogic.HasEngaged(int64(projectId), address, model.EngagementKind(kind))
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取成功", gin.H{"engaged": engaged})
}
