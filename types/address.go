package types

// AddressKind discriminates the two ways a UTxO output can name its owning
// stake key, per spec §3.
type AddressKind uint8

const (
	// AddrKindTxin names the stake key directly alongside a payment key
	// hash.
	AddrKindTxin AddressKind = iota
	// AddrKindPtr names the stake key indirectly through a certificate
	// pointer, resolved at stake-distribution time (§4.4).
	AddrKindPtr
)

// Address is either AddrTxin(payKeyHash, stakeKeyHash) or AddrPtr(Ptr). Only
// one of StakeKeyHash / Pointer is meaningful, selected by Kind; callers
// must not read the other.
type Address struct {
	Kind         AddressKind
	PayKeyHash   HashKey
	StakeKeyHash HashKey
	Pointer      Ptr
}

// AddrTxin constructs a direct address.
func AddrTxin(payKeyHash, stakeKeyHash HashKey) Address {
	return Address{Kind: AddrKindTxin, PayKeyHash: payKeyHash, StakeKeyHash: stakeKeyHash}
}

// AddrPtr constructs a pointer address.
func AddrPtr(payKeyHash HashKey, p Ptr) Address {
	return Address{Kind: AddrKindPtr, PayKeyHash: payKeyHash, Pointer: p}
}

// IsPtr reports whether the address resolves its stake key through a
// pointer rather than an embedded hash.
func (a Address) IsPtr() bool { return a.Kind == AddrKindPtr }
