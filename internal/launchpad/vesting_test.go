package launchpad

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddMilestoneOrderedInsert(t *testing.T) {
	s := NewVestingSchedule(KindMilestone, 0, 100)
	require.NoError(t, s.AddMilestone(3500, 750, 100))
	require.NoError(t, s.AddMilestone(4000, 250, 100))
	require.Len(t, s.Milestones, 2)
}

func TestAddMilestoneDecreasingTimeRejected(t *testing.T) {
	s := NewVestingSchedule(KindMilestone, 0, 100)
	require.NoError(t, s.AddMilestone(1000, 500, 100))
	require.NoError(t, s.AddMilestone(2000, 250, 100))

	// 第三个时间回退，整个调用中止且前两个保持原样
	err := s.AddMilestone(900, 250, 100)
	require.ErrorIs(t, err, ErrInvalidMilestone)
	require.Len(t, s.Milestones, 2)
	require.Equal(t, Milestone{Time: 1000, Percent: 500}, s.Milestones[0])
	require.Equal(t, Milestone{Time: 2000, Percent: 250}, s.Milestones[1])
}

func TestAddMilestonePercentSumCapped(t *testing.T) {
	s := NewVestingSchedule(KindMilestone, 0, 0)
	require.NoError(t, s.AddMilestone(1000, 750, 0))
	require.NoError(t, s.AddMilestone(2000, 250, 0))

	// 总和已满 1000，再追加任何比例都会超出
	require.ErrorIs(t, s.AddMilestone(3000, 1, 0), ErrInvalidMilestone)
	require.Len(t, s.Milestones, 2)
}

func TestAddMilestoneRejectsPastTime(t *testing.T) {
	s := NewVestingSchedule(KindMilestone, 0, 5000)
	require.ErrorIs(t, s.AddMilestone(4000, 100, 5000), ErrInvalidMilestone)
}

func TestAddMilestoneRejectsZeroOrOversizedPercent(t *testing.T) {
	s := NewVestingSchedule(KindMilestone, 0, 0)
	require.ErrorIs(t, s.AddMilestone(1000, 0, 0), ErrInvalidMilestone)
	require.ErrorIs(t, s.AddMilestone(1000, PercentScale+1, 0), ErrInvalidMilestone)
}

func TestAddMilestoneWrongKind(t *testing.T) {
	s := NewVestingSchedule(KindSingleRelease, 9000, 0)
	require.ErrorIs(t, s.AddMilestone(1000, 100, 0), ErrScheduleKind)
	require.ErrorIs(t, s.ResetMilestones(), ErrScheduleKind)
}

func TestUnlockedPercentAccumulates(t *testing.T) {
	s := NewVestingSchedule(KindMilestone, 0, 0)
	require.NoError(t, s.AddMilestone(1000, 300, 0))
	require.NoError(t, s.AddMilestone(2000, 300, 0))
	require.NoError(t, s.AddMilestone(3000, 400, 0))

	require.Equal(t, uint64(0), s.UnlockedPercent(999))
	require.Equal(t, uint64(300), s.UnlockedPercent(1000))
	require.Equal(t, uint64(600), s.UnlockedPercent(2500))
	require.Equal(t, uint64(1000), s.UnlockedPercent(3000))
	require.Equal(t, uint64(1000), s.UnlockedPercent(99999))
}

// 一次性解锁折算进里程碑路径后为空列表，结果是无条件全额解锁，
// 不受 InitialReleaseTime 闸门约束。此测试钉住该链上原行为。
func TestSingleReleaseUnlocksUnconditionally(t *testing.T) {
	s := NewVestingSchedule(KindSingleRelease, 9000, 0)
	require.Equal(t, uint64(PercentScale), s.UnlockedPercent(0))
	require.Equal(t, uint64(PercentScale), s.UnlockedPercent(8999))
}

func TestResetMilestones(t *testing.T) {
	s := NewVestingSchedule(KindMilestone, 0, 0)
	require.NoError(t, s.AddMilestone(1000, 500, 0))
	require.NoError(t, s.ResetMilestones())
	require.Empty(t, s.Milestones)
	// 清空后等同一次性路径
	require.Equal(t, uint64(PercentScale), s.UnlockedPercent(0))
}

func TestScheduleClone(t *testing.T) {
	s := NewVestingSchedule(KindMilestone, 0, 0)
	require.NoError(t, s.AddMilestone(1000, 500, 0))
	c := s.Clone()
	require.NoError(t, c.AddMilestone(2000, 500, 0))
	require.Len(t, s.Milestones, 1)
	require.Len(t, c.Milestones, 2)
}
