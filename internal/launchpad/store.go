package launchpad

import "sync"

// Store 项目记录的内存竞技场。每条记录有独立互斥锁，
// 同一项目的变更严格串行，不同项目互不阻塞。
type Store struct {
	mu       sync.RWMutex
	projects map[uint64]*record
	nextID   uint64
}

type record struct {
	mu      sync.Mutex
	project *Project
}

// NewStore 创建空的项目仓库
func NewStore() *Store {
	return &Store{projects: make(map[uint64]*record), nextID: 1}
}

// Add 收录一个项目并分配稳定 ID
func (s *Store) Add(p *Project) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.nextID
	}
	if p.ID >= s.nextID {
		s.nextID = p.ID + 1
	}
	s.projects[p.ID] = &record{project: p}
	return p.ID
}

// IDs 返回全部项目 ID
func (s *Store) IDs() []uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]uint64, 0, len(s.projects))
	for id := range s.projects {
		out = append(out, id)
	}
	return out
}

func (s *Store) record(id uint64) (*record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.projects[id]
	return rec, ok
}

// Update 对单个项目执行独占变更。fn 返回错误时约定不留下任何部分效果。
func (s *Store) Update(id uint64, fn func(*Project) error) error {
	rec, ok := s.record(id)
	if !ok {
		return ErrProjectNotFound
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return fn(rec.project)
}

// View 在同一把记录锁下读取项目，读取期间不会有并发变更
func (s *Store) View(id uint64, fn func(*Project) error) error {
	return s.Update(id, fn)
}
