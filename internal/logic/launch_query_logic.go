package logic

import (
	"errors"
	"fmt"

	"github.com/blues/lps/internal/model"
	"gorm.io/gorm"
)

// GetProjects 获取项目快照列表
func (l *LaunchLogic) GetProjects(page, pageSize int) ([]model.ProjectModel, int64, error) {
	var projects []model.ProjectModel
	var total int64

	if err := l.db.Model(&model.ProjectModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取项目总数失败: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := l.db.Offset(offset).Limit(pageSize).Order("id DESC").Find(&projects).Error; err != nil {
		return nil, 0, fmt.Errorf("获取项目列表失败: %w", err)
	}

	return projects, total, nil
}

// GetProject 获取项目快照详情
func (l *LaunchLogic) GetProject(id int64) (*model.ProjectModel, error) {
	var project model.ProjectModel
	if err := l.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("项目不存在")
		}
		return nil, fmt.Errorf("获取项目详情失败: %w", err)
	}
	return &project, nil
}

// GetOrder 获取参与者账目
func (l *LaunchLogic) GetOrder(projectId int64, address string) (*model.OrderModel, error) {
	var order model.OrderModel
	if err := l.db.Where("project_id = ? AND address = ?", projectId, address).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("账目不存在")
		}
		return nil, fmt.Errorf("获取账目失败: %w", err)
	}
	return &order, nil
}

// GetOrders 获取项目的认购账目列表
func (l *LaunchLogic) GetOrders(projectId int64, page, pageSize int) ([]model.OrderModel, int64, error) {
	var orders []model.OrderModel
	var total int64

	if err := l.db.Model(&model.OrderModel{}).Where("project_id = ?", projectId).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取账目总数失败: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := l.db.Where("project_id = ?", projectId).
		Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("获取账目列表失败: %w", err)
	}

	return orders, total, nil
}

// GetContributeRecords 获取项目认购流水
func (l *LaunchLogic) GetContributeRecords(projectId int64, page, pageSize int) ([]model.ContributeRecordModel, int64, error) {
	var records []model.ContributeRecordModel
	var total int64

	if err := l.db.Model(&model.ContributeRecordModel{}).Where("project_id = ?", projectId).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取认购流水总数失败: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := l.db.Where("project_id = ?", projectId).
		Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, 0, fmt.Errorf("获取认购流水失败: %w", err)
	}

	return records, total, nil
}

// GetMilestones 按序号获取项目解锁里程碑
func (l *LaunchLogic) GetMilestones(projectId int64) ([]model.MilestoneModel, error) {
	var milestones []model.MilestoneModel
	if err := l.db.Where("project_id = ?", projectId).Order("seq ASC").Find(&milestones).Error; err != nil {
		return nil, fmt.Errorf("获取里程碑列表失败: %w", err)
	}
	return milestones, nil
}

// GetProjectStats 获取项目统计信息
func (l *LaunchLogic) GetProjectStats(projectId int64) (map[string]interface{}, error) {
	project, err := l.GetProject(projectId)
	if err != nil {
		return nil, err
	}

	var contributionCount int64
	if err := l.db.Model(&model.ContributeRecordModel{}).Where("project_id = ?", projectId).Count(&contributionCount).Error; err != nil {
		return nil, fmt.Errorf("获取认购笔数失败: %w", err)
	}

	var refundCount int64
	if err := l.db.Model(&model.RefundRecordModel{}).Where("project_id = ?", projectId).Count(&refundCount).Error; err != nil {
		return nil, fmt.Errorf("获取退款笔数失败: %w", err)
	}

	var claimCount int64
	if err := l.db.Model(&model.ClaimRecordModel{}).Where("project_id = ?", projectId).Count(&claimCount).Error; err != nil {
		return nil, fmt.Errorf("获取领取笔数失败: %w", err)
	}

	return map[string]interface{}{
		"project_id":         project.Id,
		"phase":              project.Phase,
		"soft_cap":           project.SoftCap,
		"hard_cap":           project.HardCap,
		"total_sold":         project.TotalSold,
		"raised_balance":     project.RaisedBalance,
		"token_fund_balance": project.TokenFundBalance,
		"participant_count":  project.ParticipantCount,
		"contribution_count": contributionCount,
		"refund_count":       refundCount,
		"claim_count":        claimCount,
	}, nil
}
