package model

import (
	"time"
)

// EventModel 状态迁移事件记录
type EventModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId  int64  `json:"project_id" gorm:"index"`
	EventType  string `json:"event_type" gorm:"not null"`
	Attributes string `json:"attributes" gorm:"type:text"` // JSON 编码的事件字段
	Processed  bool   `json:"processed" gorm:"default:false"`
}

// TableName 自定义表名
func (EventModel) TableName() string {
	return "event"
}
