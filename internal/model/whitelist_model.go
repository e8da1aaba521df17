package model

import (
	"time"
)

// WhitelistEntryModel 白名单条目
type WhitelistEntryModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId int64  `json:"project_id" gorm:"not null;uniqueIndex:idx_whitelist_project_address"`
	Address   string `json:"address" gorm:"not null;uniqueIndex:idx_whitelist_project_address"`
}

// TableName 自定义表名
func (WhitelistEntryModel) TableName() string {
	return "whitelist_entry"
}

// AllocationOverrideModel 单个参与者的认购上限覆盖
type AllocationOverrideModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId int64  `json:"project_id" gorm:"not null;uniqueIndex:idx_override_project_address"`
	Address   string `json:"address" gorm:"not null;uniqueIndex:idx_override_project_address"`
	Amount    string `json:"amount" gorm:"not null"` // 基础资产单位
}

// TableName 自定义表名
func (AllocationOverrideModel) TableName() string {
	return "allocation_override"
}
