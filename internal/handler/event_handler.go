package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/lps/internal/logic"
	"github.com/gin-gonic/gin"
)

// EventHandler 事件查询接口
type EventHandler struct {
	eventLogic *logic.EventLogic
}

func NewEventHandler(eventLogic *logic.EventLogic) *EventHandler {
	return &EventHandler{eventLogic: eventLogic}
}

// GetEvents 获取事件列表
func (h *EventHandler) GetEvents(c *gin.Context) {
	projectId, _ := strconv.ParseInt(c.Query("project_id"), 10, 64)
	eventType := c.Query("event_type")
	page, pageSize := parsePagination(c)

	events, total, err := h.eventLogic.GetEvents(projectId, eventType, page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取成功", gin.H{
		"events":     events,
		"pagination": NewPagination(page, pageSize, total),
	})
}
