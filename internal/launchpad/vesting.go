package launchpad

import "fmt"

// ScheduleKind 解锁计划类型
type ScheduleKind uint8

const (
	// KindMilestone 按里程碑分批解锁
	KindMilestone ScheduleKind = iota
	// KindSingleRelease 到期一次性解锁
	KindSingleRelease
)

// Milestone 解锁里程碑：到达 Time 后累计解锁 Percent（千分比）
type Milestone struct {
	Time    int64  `json:"time"`
	Percent uint64 `json:"percent"`
}

// VestingSchedule 代币解锁计划
type VestingSchedule struct {
	Kind               ScheduleKind `json:"kind"`
	InitialReleaseTime int64        `json:"initial_release_time"`
	Milestones         []Milestone  `json:"milestones"`
	CreatedAt          int64        `json:"created_at"`
}

// NewVestingSchedule 创建解锁计划
func NewVestingSchedule(kind ScheduleKind, initialReleaseTime, now int64) *VestingSchedule {
	return &VestingSchedule{
		Kind:               kind,
		InitialReleaseTime: initialReleaseTime,
		CreatedAt:          now,
	}
}

// UnlockedPercent 计算 now 时刻的累计解锁千分比。
// 里程碑按时间严格递增，遇到第一个未到期的即可停止。
// 空里程碑列表（含一次性解锁类型）视为全额解锁，不按
// InitialReleaseTime 闸门，与链上原行为一致。
func (s *VestingSchedule) UnlockedPercent(now int64) uint64 {
	if s == nil || len(s.Milestones) == 0 {
		return PercentScale
	}
	var unlocked uint64
	for _, m := range s.Milestones {
		if m.Time > now {
			break
		}
		unlocked += m.Percent
	}
	return unlocked
}

// AddMilestone 追加一个里程碑，追加前校验整表不变量：
// 时间严格递增、千分比在 (0, 1000]、总和不超过 1000、时间不早于当前时刻。
// 任一校验失败则整个调用中止，已有里程碑不受影响。
func (s *VestingSchedule) AddMilestone(t int64, percent uint64, now int64) error {
	if s.Kind != KindMilestone {
		return ErrScheduleKind
	}
	if percent == 0 || percent > PercentScale {
		return fmt.Errorf("%w: percent %d out of range", ErrInvalidMilestone, percent)
	}
	if t < now {
		return fmt.Errorf("%w: time %d already passed", ErrInvalidMilestone, t)
	}
	var sum uint64
	for _, m := range s.Milestones {
		sum += m.Percent
	}
	if sum+percent > PercentScale {
		return fmt.Errorf("%w: total percent %d exceeds %d", ErrInvalidMilestone, sum+percent, PercentScale)
	}
	if n := len(s.Milestones); n > 0 && t <= s.Milestones[n-1].Time {
		return fmt.Errorf("%w: time %d not increasing", ErrInvalidMilestone, t)
	}
	s.Milestones = append(s.Milestones, Milestone{Time: t, Percent: percent})
	return nil
}

// ResetMilestones 清空里程碑列表
func (s *VestingSchedule) ResetMilestones() error {
	if s.Kind != KindMilestone {
		return ErrScheduleKind
	}
	s.Milestones = nil
	return nil
}

// Clone 返回计划的深拷贝
func (s *VestingSchedule) Clone() *VestingSchedule {
	if s == nil {
		return nil
	}
	out := &VestingSchedule{
		Kind:               s.Kind,
		InitialReleaseTime: s.InitialReleaseTime,
		CreatedAt:          s.CreatedAt,
	}
	if len(s.Milestones) > 0 {
		out.Milestones = append([]Milestone(nil), s.Milestones...)
	}
	return out
}
