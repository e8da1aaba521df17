package logic

import (
	"math/big"
	"testing"

	"github.com/blues/lps/internal/database"
	"github.com/blues/lps/internal/launchpad"
	"github.com/blues/lps/internal/model"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	testOwner = "0xowner"
	testAlice = "0xalice"
	testBob   = "0xbob"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func setupTestLogic(t *testing.T) (*LaunchLogic, *gorm.DB) {
	db := setupTestDB(t)
	engine := launchpad.NewEngine(launchpad.NewStore())
	return NewLaunchLogic(db, engine, launchpad.NewAdminCap()), db
}

func bi(v int64) *big.Int { return big.NewInt(v) }

func testParams() launchpad.LaunchParams {
	return launchpad.LaunchParams{
		SoftCap:    bi(100),
		HardCap:    bi(1000),
		RatioBase:  1,
		RatioToken: 2,
	}
}

func TestLaunchLifecyclePersistsSnapshots(t *testing.T) {
	l, db := setupTestLogic(t)

	project, err := l.CreateProject(testOwner, "genesis", 1000)
	require.NoError(t, err)
	id := project.ID

	var pm model.ProjectModel
	require.NoError(t, db.First(&pm, id).Error)
	assert.Equal(t, "genesis", pm.Name)
	assert.Equal(t, "init", pm.Phase)

	require.NoError(t, l.DepositTokenFund(id, testOwner, bi(1000)))
	require.NoError(t, l.Setup(id, testParams()))
	require.NoError(t, l.Start(id, 2000))

	require.NoError(t, db.First(&pm, id).Error)
	assert.Equal(t, "raising", pm.Phase)
	assert.Equal(t, "100", pm.SoftCap)
	assert.Equal(t, "1000", pm.HardCap)
	assert.Equal(t, "1000", pm.TokenFundBalance)

	order, err := l.Contribute(id, testAlice, bi(100), 2100)
	require.NoError(t, err)
	assert.Equal(t, "200", order.Entitled.String())

	var om model.OrderModel
	require.NoError(t, db.Where("project_id = ? AND address = ?", id, testAlice).First(&om).Error)
	assert.Equal(t, "100", om.Contributed)
	assert.Equal(t, "200", om.Entitled)
	assert.Equal(t, "0", om.Released)

	var records []model.ContributeRecordModel
	require.NoError(t, db.Where("project_id = ?", id).Find(&records).Error)
	require.Len(t, records, 1)
	assert.Equal(t, "100", records[0].Amount)
	assert.Equal(t, "200", records[0].Tokens)

	require.NoError(t, db.First(&pm, id).Error)
	assert.Equal(t, "200", pm.TotalSold)
	assert.Equal(t, "100", pm.RaisedBalance)
	assert.Equal(t, uint64(1), pm.ParticipantCount)

	phase, err := l.End(id, 3000)
	require.NoError(t, err)
	assert.Equal(t, launchpad.PhaseClaiming, phase)

	require.NoError(t, db.First(&pm, id).Error)
	assert.Equal(t, "claiming", pm.Phase)
}

func TestClaimTokenUpdatesOrderAndRecords(t *testing.T) {
	l, db := setupTestLogic(t)

	project, err := l.CreateProject(testOwner, "genesis", 1000)
	require.NoError(t, err)
	id := project.ID
	require.NoError(t, l.DepositTokenFund(id, testOwner, bi(1000)))
	require.NoError(t, l.Setup(id, testParams()))
	require.NoError(t, l.Start(id, 2000))
	_, err = l.Contribute(id, testAlice, bi(100), 2100)
	require.NoError(t, err)
	_, err = l.End(id, 3000)
	require.NoError(t, err)

	// 未配置解锁计划，全额解锁
	amount, err := l.ClaimToken(id, testAlice, 3100)
	require.NoError(t, err)
	assert.Equal(t, "200", amount.String())

	var om model.OrderModel
	require.NoError(t, db.Where("project_id = ? AND address = ?", id, testAlice).First(&om).Error)
	assert.Equal(t, "200", om.Released)

	var claims []model.ClaimRecordModel
	require.NoError(t, db.Where("project_id = ?", id).Find(&claims).Error)
	require.Len(t, claims, 1)
	assert.Equal(t, "200", claims[0].Amount)
	assert.Equal(t, uint64(launchpad.PercentScale), claims[0].UnlockedPercent)

	_, err = l.ClaimToken(id, testAlice, 3200)
	assert.ErrorIs(t, err, launchpad.ErrClaimAlreadyComplete)
}

func TestClaimRefundArchivesOrder(t *testing.T) {
	l, db := setupTestLogic(t)

	project, err := l.CreateProject(testOwner, "genesis", 1000)
	require.NoError(t, err)
	id := project.ID
	require.NoError(t, l.DepositTokenFund(id, testOwner, bi(1000)))
	require.NoError(t, l.Setup(id, testParams()))
	require.NoError(t, l.Start(id, 2000))
	_, err = l.Contribute(id, testAlice, bi(40), 2100)
	require.NoError(t, err)

	phase, err := l.End(id, 3000)
	require.NoError(t, err)
	require.Equal(t, launchpad.PhaseRefunding, phase)

	amount, err := l.ClaimRefund(id, testAlice)
	require.NoError(t, err)
	assert.Equal(t, "40", amount.String())

	var om model.OrderModel
	require.NoError(t, db.Where("project_id = ? AND address = ?", id, testAlice).First(&om).Error)
	assert.True(t, om.Refunded)

	var refunds []model.RefundRecordModel
	require.NoError(t, db.Where("project_id = ?", id).Find(&refunds).Error)
	require.Len(t, refunds, 1)
	assert.Equal(t, "40", refunds[0].Amount)
}

func TestWhitelistAndMilestonesPersist(t *testing.T) {
	l, db := setupTestLogic(t)

	project, err := l.CreateProject(testOwner, "genesis", 1000)
	require.NoError(t, err)
	id := project.ID
	require.NoError(t, l.DepositTokenFund(id, testOwner, bi(1000)))
	require.NoError(t, l.Setup(id, testParams()))

	require.NoError(t, l.EnableWhitelist(id))
	require.NoError(t, l.AddWhitelist(id, testAlice, testBob))
	// 重复追加不产生重复行
	require.NoError(t, l.AddWhitelist(id, testAlice))

	var entries []model.WhitelistEntryModel
	require.NoError(t, db.Where("project_id = ?", id).Find(&entries).Error)
	assert.Len(t, entries, 2)

	require.NoError(t, l.SetSchedule(id, launchpad.KindMilestone, 0, 1000))
	require.NoError(t, l.AddMilestone(id, 5000, 600, 1000))
	require.NoError(t, l.AddMilestone(id, 6000, 400, 1000))

	milestones, err := l.GetMilestones(int64(id))
	require.NoError(t, err)
	require.Len(t, milestones, 2)
	assert.Equal(t, uint64(600), milestones[0].Percent)
	assert.Equal(t, uint64(400), milestones[1].Percent)

	require.NoError(t, l.ResetMilestones(id))
	milestones, err = l.GetMilestones(int64(id))
	require.NoError(t, err)
	assert.Empty(t, milestones)
}

func TestFailedTransitionLeavesNoRows(t *testing.T) {
	l, db := setupTestLogic(t)

	project, err := l.CreateProject(testOwner, "genesis", 1000)
	require.NoError(t, err)
	id := project.ID
	require.NoError(t, l.DepositTokenFund(id, testOwner, bi(1000)))
	require.NoError(t, l.Setup(id, testParams()))
	require.NoError(t, l.Start(id, 2000))

	// 超出硬顶的认购被拒绝，不留任何流水
	_, err = l.Contribute(id, testAlice, bi(600), 2100)
	assert.ErrorIs(t, err, launchpad.ErrOutOfHardCap)

	var count int64
	require.NoError(t, db.Model(&model.ContributeRecordModel{}).Where("project_id = ?", id).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&model.OrderModel{}).Where("project_id = ?", id).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLoadProjectsRebuildsState(t *testing.T) {
	l, db := setupTestLogic(t)

	project, err := l.CreateProject(testOwner, "genesis", 1000)
	require.NoError(t, err)
	id := project.ID
	require.NoError(t, l.DepositTokenFund(id, testOwner, bi(1000)))
	require.NoError(t, l.Setup(id, testParams()))
	require.NoError(t, l.SetSchedule(id, launchpad.KindMilestone, 0, 1000))
	require.NoError(t, l.AddMilestone(id, 5000, 600, 1000))
	require.NoError(t, l.AddMilestone(id, 6000, 400, 1000))
	require.NoError(t, l.Start(id, 2000))
	_, err = l.Contribute(id, testAlice, bi(100), 2100)
	require.NoError(t, err)
	phase, err := l.End(id, 3000)
	require.NoError(t, err)
	require.Equal(t, launchpad.PhaseClaiming, phase)

	// 新引擎从同一个库重建
	engine := launchpad.NewEngine(launchpad.NewStore())
	reloaded := NewLaunchLogic(db, engine, launchpad.NewAdminCap())
	require.NoError(t, reloaded.LoadProjects())

	err = engine.Store().View(id, func(p *launchpad.Project) error {
		assert.Equal(t, launchpad.PhaseClaiming, p.State.Phase)
		assert.Equal(t, "200", p.State.TotalSold.String())
		assert.Equal(t, uint64(1), p.State.ParticipantCount)
		assert.Equal(t, "100", p.RaisedBalance().String())
		assert.Equal(t, "1000", p.TokenFundBalance().String())

		order, ok := p.Order(testAlice)
		require.True(t, ok)
		assert.Equal(t, "100", order.Contributed.String())
		assert.Equal(t, "200", order.Entitled.String())

		require.NotNil(t, p.Schedule)
		require.Len(t, p.Schedule.Milestones, 2)
		assert.Equal(t, uint64(600), p.Schedule.UnlockedPercent(5000))
		return nil
	})
	require.NoError(t, err)

	// 重建后的账本可以继续迁移：第一个里程碑后领取 60%
	amount, err := reloaded.ClaimToken(id, testAlice, 5100)
	require.NoError(t, err)
	assert.Equal(t, "120", amount.String())
}

func TestLoadProjectsSkipsRefundedOrders(t *testing.T) {
	l, db := setupTestLogic(t)

	project, err := l.CreateProject(testOwner, "genesis", 1000)
	require.NoError(t, err)
	id := project.ID
	require.NoError(t, l.DepositTokenFund(id, testOwner, bi(1000)))
	require.NoError(t, l.Setup(id, testParams()))
	require.NoError(t, l.Start(id, 2000))
	_, err = l.Contribute(id, testAlice, bi(40), 2100)
	require.NoError(t, err)
	_, err = l.End(id, 3000)
	require.NoError(t, err)
	_, err = l.ClaimRefund(id, testAlice)
	require.NoError(t, err)

	engine := launchpad.NewEngine(launchpad.NewStore())
	reloaded := NewLaunchLogic(db, engine, launchpad.NewAdminCap())
	require.NoError(t, reloaded.LoadProjects())

	err = engine.Store().View(id, func(p *launchpad.Project) error {
		_, ok := p.Order(testAlice)
		assert.False(t, ok)
		return nil
	})
	require.NoError(t, err)
}
