package launchpad

import (
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreAssignsStableIDs(t *testing.T) {
	s := NewStore()
	id1 := s.Add(&Project{Owner: testOwner})
	id2 := s.Add(&Project{Owner: testOwner})
	require.Equal(t, uint64(1), id1)
	require.Equal(t, uint64(2), id2)
	require.ElementsMatch(t, []uint64{1, 2}, s.IDs())
}

func TestStoreKeepsExplicitID(t *testing.T) {
	s := NewStore()
	s.Add(&Project{ID: 7, Owner: testOwner})
	id := s.Add(&Project{Owner: testOwner})
	require.Equal(t, uint64(8), id)
}

func TestStoreUpdateUnknownProject(t *testing.T) {
	s := NewStore()
	err := s.Update(99, func(*Project) error { return nil })
	require.ErrorIs(t, err, ErrProjectNotFound)
}

func TestStoreSerializesPerRecord(t *testing.T) {
	s := NewStore()
	id := s.Add(&Project{
		Owner: testOwner,
		State: LaunchState{TotalSold: big.NewInt(0), Orders: map[string]*Order{}},
	})

	// 并发自增在记录锁下必须不丢更新
	const n = 200
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Update(id, func(p *Project) error {
				p.State.TotalSold = new(big.Int).Add(p.State.TotalSold, big.NewInt(1))
				return nil
			})
		}()
	}
	wg.Wait()

	require.NoError(t, s.View(id, func(p *Project) error {
		require.Equal(t, big.NewInt(n), p.State.TotalSold)
		return nil
	}))
}
