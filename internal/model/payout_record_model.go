package model

import (
	"time"
)

// PayoutRecordModel 整池划转记录：分配募集款或退回剩余代币
type PayoutRecordModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId int64  `json:"project_id" gorm:"not null;index"`
	Kind      string `json:"kind" gorm:"not null"` // raised_distributed, token_refunded
	Recipient string `json:"recipient" gorm:"not null"`
	Amount    string `json:"amount" gorm:"not null"`
}

// PayoutKind 划转类型
type PayoutKind string

const (
	PayoutKindRaised PayoutKind = "raised_distributed" // 募集款分配给项目方
	PayoutKindToken  PayoutKind = "token_refunded"     // 剩余代币退回项目方
)

// TableName 自定义表名
func (PayoutRecordModel) TableName() string {
	return "payout_record"
}
