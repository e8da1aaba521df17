package model

import (
	"time"
)

// MilestoneModel 解锁里程碑，随快照整表重写
type MilestoneModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId int64  `json:"project_id" gorm:"not null;index"`
	Seq       int    `json:"seq" gorm:"not null"`     // 列表内序号
	Time      int64  `json:"time" gorm:"not null"`    // 解锁时间
	Percent   uint64 `json:"percent" gorm:"not null"` // 千分比
}

// TableName 自定义表名
func (MilestoneModel) TableName() string {
	return "vesting_milestone"
}
