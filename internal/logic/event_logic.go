package logic

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/blues/lps/internal/launchpad"
	"github.com/blues/lps/internal/model"
	"gorm.io/gorm"
)

// EventLogic 事件业务逻辑。引擎发出的状态迁移事件先落库，
// 再由通知器异步投递，投递成功后标记已处理。
type EventLogic struct {
	db *gorm.DB
}

// NewEventLogic 创建事件业务逻辑
func NewEventLogic(db *gorm.DB) *EventLogic {
	return &EventLogic{db: db}
}

// SaveEvent 保存引擎事件
func (e *EventLogic) SaveEvent(evt *launchpad.Event) (*model.EventModel, error) {
	attrs, err := json.Marshal(evt.Attributes)
	if err != nil {
		return nil, fmt.Errorf("序列化事件字段失败: %w", err)
	}

	var projectId int64
	if raw, ok := evt.Attributes["projectId"]; ok {
		projectId, _ = strconv.ParseInt(raw, 10, 64)
	}

	record := &model.EventModel{
		ProjectId:  projectId,
		EventType:  evt.Type,
		Attributes: string(attrs),
	}
	if err := e.db.Create(record).Error; err != nil {
		return nil, fmt.Errorf("创建事件记录失败: %w", err)
	}
	return record, nil
}

// GetEvents 获取事件列表
func (e *EventLogic) GetEvents(projectId int64, eventType string, page, pageSize int) ([]model.EventModel, int64, error) {
	var events []model.EventModel
	var total int64

	query := e.db.Model(&model.EventModel{})
	if projectId > 0 {
		query = query.Where("project_id = ?", projectId)
	}
	if eventType != "" {
		query = query.Where("event_type = ?", eventType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取事件总数失败: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&events).Error; err != nil {
		return nil, 0, fmt.Errorf("获取事件列表失败: %w", err)
	}

	return events, total, nil
}

// GetUnprocessedEvents 获取未投递的事件
func (e *EventLogic) GetUnprocessedEvents(limit int) ([]model.EventModel, error) {
	var events []model.EventModel
	if err := e.db.Where("processed = ?", false).
		Order("created_at ASC").
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("获取未投递事件失败: %w", err)
	}
	return events, nil
}

// MarkProcessed 标记事件已投递
func (e *EventLogic) MarkProcessed(id int64) error {
	if err := e.db.Model(&model.EventModel{}).Where("id = ?", id).Update("processed", true).Error; err != nil {
		return fmt.Errorf("更新事件投递状态失败: %w", err)
	}
	return nil
}
