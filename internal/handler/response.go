package handler

import (
	"errors"
	"net/http"

	"github.com/blues/lps/internal/launchpad"
	"github.com/gin-gonic/gin"
)

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// EngineErrorResponse 引擎错误响应，按错误类别映射 HTTP 状态码
func EngineErrorResponse(c *gin.Context, err error) {
	ErrorResponse(c, engineStatus(err), err.Error())
}

func engineStatus(err error) int {
	switch {
	case errors.Is(err, launchpad.ErrProjectNotFound),
		errors.Is(err, launchpad.ErrNoOrder):
		return http.StatusNotFound
	case errors.Is(err, launchpad.ErrAdminCapRequired):
		return http.StatusUnauthorized
	case errors.Is(err, launchpad.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, launchpad.ErrInvalidPhase),
		errors.Is(err, launchpad.ErrClaimAlreadyComplete),
		errors.Is(err, launchpad.ErrEmptyPool),
		errors.Is(err, launchpad.ErrInsufficientTokenFund):
		return http.StatusConflict
	case errors.Is(err, launchpad.ErrOutOfHardCap),
		errors.Is(err, launchpad.ErrMaxAllocateExceeded),
		errors.Is(err, launchpad.ErrNotWhitelisted),
		errors.Is(err, launchpad.ErrWhitelistDisabled),
		errors.Is(err, launchpad.ErrInvalidMilestone),
		errors.Is(err, launchpad.ErrScheduleKind),
		errors.Is(err, launchpad.ErrNoSchedule),
		errors.Is(err, launchpad.ErrInvalidParams),
		errors.Is(err, launchpad.ErrInvalidAmount):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
