package model

import (
	"time"
)

// ProjectModel 募资项目快照。内存账本是状态迁移的权威来源，
// 本表在每次成功迁移后落一份快照，用于查询与重启恢复。
type ProjectModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	Name         string `json:"name" gorm:"not null" binding:"required"`
	OwnerAddress string `json:"owner_address" gorm:"not null"`

	// 募资参数。金额字段统一用十进制字符串存储，避免精度丢失
	SoftCap     string `json:"soft_cap" gorm:"default:'0'"`     // 基础资产单位
	HardCap     string `json:"hard_cap" gorm:"default:'0'"`     // 代币单位
	RatioBase   uint64 `json:"ratio_base" gorm:"default:1"`     // 兑换比例：基础资产份
	RatioToken  uint64 `json:"ratio_token" gorm:"default:1"`    // 兑换比例：代币份
	MaxAllocate string `json:"max_allocate" gorm:"default:'0'"` // 默认认购上限

	// 可变账目
	Phase            string `json:"phase" gorm:"default:'init'"`
	TotalSold        string `json:"total_sold" gorm:"default:'0'"`
	ParticipantCount uint64 `json:"participant_count" gorm:"default:0"`
	RaisedBalance    string `json:"raised_balance" gorm:"default:'0'"`
	TokenFundBalance string `json:"token_fund_balance" gorm:"default:'0'"`

	// 时间信息，账本时间戳由调用方提供
	CreatedAtUnix int64 `json:"created_at_unix"`
	StartTime     int64 `json:"start_time"`
	EndTime       int64 `json:"end_time"`

	// 准入开关
	WhitelistEnabled bool `json:"whitelist_enabled" gorm:"default:false"`
	OverrideEnabled  bool `json:"override_enabled" gorm:"default:false"`

	// 解锁计划
	ScheduleKind       *uint8 `json:"schedule_kind"` // nil 表示未配置
	InitialReleaseTime int64  `json:"initial_release_time"`
	ScheduleCreatedAt  int64  `json:"schedule_created_at"`
}

// TableName 自定义表名
func (ProjectModel) TableName() string {
	return "project"
}
