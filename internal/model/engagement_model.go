package model

import (
	"time"
)

// EngagementModel 社交互动计数，按 (项目, 地址, 类型) 幂等，与资金安全无关
type EngagementModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId int64  `json:"project_id" gorm:"not null;uniqueIndex:idx_engagement_unique"`
	Address   string `json:"address" gorm:"not null;uniqueIndex:idx_engagement_unique"`
	Kind      string `json:"kind" gorm:"not null;uniqueIndex:idx_engagement_unique"` // like, vote, watch
}

// EngagementKind 互动类型
type EngagementKind string

const (
	EngagementLike  EngagementKind = "like"
	EngagementVote  EngagementKind = "vote"
	EngagementWatch EngagementKind = "watch"
)

// TableName 自定义表名
func (EngagementModel) TableName() string {
	return "engagement"
}
