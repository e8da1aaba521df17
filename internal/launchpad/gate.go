package launchpad

import "math/big"

// admit 准入检查：未启用白名单时放行，启用后仅放行名单内的参与者。
func (p *Project) admit(participant string) error {
	if !p.WhitelistEnabled {
		return nil
	}
	if p.Whitelist == nil {
		return ErrNotWhitelisted
	}
	if _, ok := p.Whitelist[participant]; !ok {
		return ErrNotWhitelisted
	}
	return nil
}

// effectiveCap 参与者的生效认购上限：覆盖表优先，否则取全局默认。
// 返回 nil 表示不限额。
func (p *Project) effectiveCap(participant string) *big.Int {
	if p.OverrideEnabled && p.MaxAllocateOverrides != nil {
		if cap, ok := p.MaxAllocateOverrides[participant]; ok {
			return cap
		}
	}
	if p.State.MaxAllocate == nil || p.State.MaxAllocate.Sign() == 0 {
		return nil
	}
	return p.State.MaxAllocate
}
