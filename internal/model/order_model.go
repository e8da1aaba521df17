package model

import (
	"time"
)

// OrderModel 参与者认购账目，每个项目每个地址一条
type OrderModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId   int64  `json:"project_id" gorm:"not null;uniqueIndex:idx_order_project_address"`
	Address     string `json:"address" gorm:"not null;uniqueIndex:idx_order_project_address"`
	Contributed string `json:"contributed" gorm:"default:'0'"` // 基础资产
	Entitled    string `json:"entitled" gorm:"default:'0'"`    // 应得代币
	Released    string `json:"released" gorm:"default:'0'"`    // 已释放代币
	Refunded    bool   `json:"refunded" gorm:"default:false"`  // 已退款的账目保留存档
}

// TableName 自定义表名
func (OrderModel) TableName() string {
	return "launch_order"
}
