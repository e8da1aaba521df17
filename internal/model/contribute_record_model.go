package model

import (
	"time"
)

// ContributeRecordModel 认购流水，每笔一条
type ContributeRecordModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId int64  `json:"project_id" gorm:"not null;index"`
	Address   string `json:"address" gorm:"not null"`
	Amount    string `json:"amount" gorm:"not null"` // 基础资产
	Tokens    string `json:"tokens" gorm:"not null"` // 换得代币
	Timestamp int64  `json:"timestamp"`              // 账本时间戳
}

// TableName 自定义表名
func (ContributeRecordModel) TableName() string {
	return "contribute_record"
}
