package launchpad

import "math/big"

// Pool 单一资产的托管池。余额永不为负，超额提取直接拒绝。
type Pool struct {
	balance *big.Int
}

// NewPool 创建空池
func NewPool() *Pool {
	return &Pool{balance: big.NewInt(0)}
}

// Deposit 存入金额，金额必须为正
func (p *Pool) Deposit(amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	p.balance = new(big.Int).Add(p.balance, amount)
	return nil
}

// Withdraw 提取金额，余额不足时拒绝且不改变池子
func (p *Pool) Withdraw(amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if p.balance.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	p.balance = new(big.Int).Sub(p.balance, amount)
	return nil
}

// Drain 提空整个池子并返回提取的金额
func (p *Pool) Drain() *big.Int {
	out := p.balance
	p.balance = big.NewInt(0)
	return out
}

// Balance 当前余额的拷贝
func (p *Pool) Balance() *big.Int {
	if p == nil || p.balance == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(p.balance)
}

// IsEmpty 池子是否为空
func (p *Pool) IsEmpty() bool {
	return p == nil || p.balance == nil || p.balance.Sign() == 0
}
