package model

import (
	"time"
)

// RefundRecordModel 退款流水
type RefundRecordModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId int64  `json:"project_id" gorm:"not null;index"`
	Address   string `json:"address" gorm:"not null"`
	Amount    string `json:"amount" gorm:"not null"` // 退回的基础资产
}

// TableName 自定义表名
func (RefundRecordModel) TableName() string {
	return "refund_record"
}
