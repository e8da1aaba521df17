package launchpad

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoolDepositWithdraw(t *testing.T) {
	p := NewPool()
	require.True(t, p.IsEmpty())

	require.NoError(t, p.Deposit(big.NewInt(500)))
	require.NoError(t, p.Deposit(big.NewInt(200)))
	require.Equal(t, big.NewInt(700), p.Balance())
	require.False(t, p.IsEmpty())

	require.NoError(t, p.Withdraw(big.NewInt(700)))
	require.True(t, p.IsEmpty())
}

func TestPoolWithdrawInsufficient(t *testing.T) {
	p := NewPool()
	require.NoError(t, p.Deposit(big.NewInt(100)))

	// 超额提取被拒且余额不变
	require.ErrorIs(t, p.Withdraw(big.NewInt(101)), ErrInsufficientBalance)
	require.Equal(t, big.NewInt(100), p.Balance())
}

func TestPoolRejectsNonPositiveAmounts(t *testing.T) {
	p := NewPool()
	require.ErrorIs(t, p.Deposit(big.NewInt(0)), ErrInvalidAmount)
	require.ErrorIs(t, p.Deposit(big.NewInt(-5)), ErrInvalidAmount)
	require.ErrorIs(t, p.Deposit(nil), ErrInvalidAmount)
	require.ErrorIs(t, p.Withdraw(big.NewInt(-5)), ErrInvalidAmount)
}

func TestPoolDrain(t *testing.T) {
	p := NewPool()
	require.NoError(t, p.Deposit(big.NewInt(123)))
	out := p.Drain()
	require.Equal(t, big.NewInt(123), out)
	require.True(t, p.IsEmpty())
}

func TestNilPoolIsEmpty(t *testing.T) {
	var p *Pool
	require.True(t, p.IsEmpty())
	require.Equal(t, big.NewInt(0), p.Balance())
}
