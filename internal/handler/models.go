package handler

import (
	"errors"
	"math/big"

	"github.com/blues/lps/internal/launchpad"
)

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// 分页信息结构
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"pageSize"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"totalPage"`
}

// NewPagination 计算分页信息
func NewPagination(page, pageSize int, total int64) Pagination {
	totalPage := total / int64(pageSize)
	if total%int64(pageSize) > 0 {
		totalPage++
	}
	return Pagination{Page: page, PageSize: pageSize, Total: total, TotalPage: totalPage}
}

// 请求模型。金额统一用十进制字符串传递，避免 JSON 数字精度丢失

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Name  string `json:"name" binding:"required"`
	Owner string `json:"owner" binding:"required"`
}

// SetupLaunchRequest 配置募资请求
type SetupLaunchRequest struct {
	SoftCap     string `json:"softCap" binding:"required"`
	HardCap     string `json:"hardCap" binding:"required"`
	RatioBase   uint64 `json:"ratioBase" binding:"required"`
	RatioToken  uint64 `json:"ratioToken" binding:"required"`
	MaxAllocate string `json:"maxAllocate"`
	EndTime     int64  `json:"endTime"`
}

// ToParams 转换成引擎参数
func (r *SetupLaunchRequest) ToParams() (launchpad.LaunchParams, error) {
	softCap, err := parseAmount(r.SoftCap)
	if err != nil {
		return launchpad.LaunchParams{}, err
	}
	hardCap, err := parseAmount(r.HardCap)
	if err != nil {
		return launchpad.LaunchParams{}, err
	}
	var maxAllocate *big.Int
	if r.MaxAllocate != "" {
		if maxAllocate, err = parseAmount(r.MaxAllocate); err != nil {
			return launchpad.LaunchParams{}, err
		}
	}
	return launchpad.LaunchParams{
		SoftCap:     softCap,
		HardCap:     hardCap,
		RatioBase:   r.RatioBase,
		RatioToken:  r.RatioToken,
		MaxAllocate: maxAllocate,
		EndTime:     r.EndTime,
	}, nil
}

// DepositRequest 注资请求
type DepositRequest struct {
	From   string `json:"from" binding:"required"`
	Amount string `json:"amount" binding:"required"`
}

// AddWhitelistRequest 追加白名单请求
type AddWhitelistRequest struct {
	Addresses []string `json:"addresses" binding:"required"`
}

// SetOverrideRequest 设置认购上限覆盖请求
type SetOverrideRequest struct {
	Address string `json:"address" binding:"required"`
	Amount  string `json:"amount" binding:"required"`
}

// SetScheduleRequest 配置解锁计划请求
type SetScheduleRequest struct {
	Kind               string `json:"kind" binding:"required"` // milestone, single_release
	InitialReleaseTime int64  `json:"initialReleaseTime"`
}

// AddMilestoneRequest 追加里程碑请求
type AddMilestoneRequest struct {
	Time    int64  `json:"time" binding:"required"`
	Percent uint64 `json:"percent" binding:"required"`
}

// PayoutRequest 整池划转请求
type PayoutRequest struct {
	Recipient string `json:"recipient" binding:"required"`
}

// ContributeRequest 认购请求
type ContributeRequest struct {
	Address string `json:"address" binding:"required"`
	Amount  string `json:"amount" binding:"required"`
}

// ClaimRequest 领取请求（代币或退款）
type ClaimRequest struct {
	Address string `json:"address" binding:"required"`
}

// EngageRequest 社交互动请求
type EngageRequest struct {
	Address string `json:"address" binding:"required"`
	Kind    string `json:"kind" binding:"required"` // like, vote, watch
}

// OrderResponse 账目响应模型
type OrderResponse struct {
	Participant string `json:"participant"`
	Contributed string `json:"contributed"`
	Entitled    string `json:"entitled"`
	Released    string `json:"released"`
}

// ToOrderResponse 将引擎账目转换为响应模型
func ToOrderResponse(order *launchpad.Order) OrderResponse {
	return OrderResponse{
		Participant: order.Participant,
		Contributed: order.Contributed.String(),
		Entitled:    order.Entitled.String(),
		Released:    order.Released.String(),
	}
}

func parseAmount(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.New("无效的金额格式")
	}
	return v, nil
}

func parseScheduleKind(s string) (launchpad.ScheduleKind, error) {
	switch s {
	case "milestone":
		return launchpad.KindMilestone, nil
	case "single_release":
		return launchpad.KindSingleRelease, nil
	default:
		return 0, errors.New("无效的解锁计划类型")
	}
}
