package types

// PoolParams describes a stake pool's registered parameters, as supplied by
// a RegPool certificate.
type PoolParams struct {
	PoolKeyHash   HashKey
	VrfKeyHash    HashKey
	Pledge        Coin
	Cost          Coin
	Margin        UnitInterval
	RewardAccount RewardAcnt
	Owners        []HashKey
	Relays        []string
}

// OwnerSet returns the owner hashes as a set for witness-requirement and
// pledge-satisfaction checks.
func (p PoolParams) OwnerSet() map[HashKey]struct{} {
	set := make(map[HashKey]struct{}, len(p.Owners))
	for _, o := range p.Owners {
		set[o] = struct{}{}
	}
	return set
}
