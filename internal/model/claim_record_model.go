package model

import (
	"time"
)

// ClaimRecordModel 代币领取流水
type ClaimRecordModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId       int64  `json:"project_id" gorm:"not null;index"`
	Address         string `json:"address" gorm:"not null"`
	Amount          string `json:"amount" gorm:"not null"` // 本次释放代币
	UnlockedPercent uint64 `json:"unlocked_percent"`       // 领取时累计解锁千分比
	Timestamp       int64  `json:"timestamp"`              // 账本时间戳
}

// TableName 自定义表名
func (ClaimRecordModel) TableName() string {
	return "claim_record"
}
