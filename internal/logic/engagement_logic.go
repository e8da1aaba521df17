package logic

import (
	"errors"
	"fmt"

	"github.com/blues/lps/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EngagementLogic 社交互动业务逻辑。点赞、投票、关注按
// (项目, 地址, 类型) 幂等，同一地址重复操作不增加计数。
type EngagementLogic struct {
	db *gorm.DB
}

// NewEngagementLogic 创建社交互动业务逻辑
func NewEngagementLogic(db *gorm.DB) *EngagementLogic {
	return &EngagementLogic{db: db}
}

// Engage 记录一次互动，已存在则不重复记录
func (e *EngagementLogic) Engage(projectId int64, address string, kind model.EngagementKind) error {
	if address == "" {
		return errors.New("地址不能为空")
	}
	switch kind {
	case model.EngagementLike, model.EngagementVote, model.EngagementWatch:
	default:
		return fmt.Errorf("未知互动类型: %s", kind)
	}

	var project model.ProjectModel
	if err := e.db.First(&project, projectId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("项目不存在")
		}
		return err
	}

	record := model.EngagementModel{
		ProjectId: projectId,
		Address:   address,
		Kind:      string(kind),
	}
	if err := e.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error; err != nil {
		return fmt.Errorf("记录互动失败: %w", err)
	}
	return nil
}

// Disengage 撤销一次互动
func (e *EngagementLogic) Disengage(projectId int64, address string, kind model.EngagementKind) error {
	return e.db.Where("project_id = ? AND address = ? AND kind = ?", projectId, address, string(kind)).
		Delete(&model.EngagementModel{}).Error
}

// GetCounts 获取项目各类互动计数
func (e *EngagementLogic) GetCounts(projectId int64) (map[string]int64, error) {
	counts := map[string]int64{
		string(model.EngagementLike):  0,
		string(model.EngagementVote):  0,
		string(model.EngagementWatch): 0,
	}

	var rows []struct {
		Kind  string
		Count int64
	}
	if err := e.db.Model(&model.EngagementModel{}).
		Select("kind, COUNT(*) as count").
		Where("project_id = ?", projectId).
		Group("kind").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("获取互动计数失败: %w", err)
	}

	for _, row := range rows {
		counts[row.Kind] = row.Count
	}
	return counts, nil
}

// HasEngaged 查询某地址是否已有某类互动
func (e *EngagementLogic) HasEngaged(projectId int64, address string, kind model.EngagementKind) (bool, error) {
	var count int64
	err := e.db.Model(&model.EngagementModel{}).
		Where("project_id = ? AND address = ? AND kind = ?", projectId, address, string(kind)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("查询互动状态失败: %w", err)
	}
	return count > 0, nil
}
