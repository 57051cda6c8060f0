package types

// CertKind discriminates the five certificate variants the delegation rule
// (§4.3) knows how to apply.
type CertKind uint8

const (
	CertRegKey CertKind = iota
	CertDeRegKey
	CertDelegate
	CertRegPool
	CertRetirePool
)

// Cert is a tagged union over the five certificate bodies. Exactly one of
// the typed fields is populated, selected by Kind; the zero value of the
// others is ignored.
type Cert struct {
	Kind CertKind

	// CertRegKey / CertDeRegKey
	StakeKeyHash HashKey

	// CertDelegate
	DelegatorHash HashKey
	DelegateeHash HashKey

	// CertRegPool
	PoolParams PoolParams
	// OpCounter is the pool's KES operational counter, when this
	// registration carries one. nil means the certificate does not touch
	// the counter at all.
	OpCounter *uint64

	// CertRetirePool
	PoolKeyHash     HashKey
	RetirementEpoch Epoch
}

// RegKeyCert builds a stake-key registration certificate.
func RegKeyCert(stakeKeyHash HashKey) Cert {
	return Cert{Kind: CertRegKey, StakeKeyHash: stakeKeyHash}
}

// DeRegKeyCert builds a stake-key deregistration certificate.
func DeRegKeyCert(stakeKeyHash HashKey) Cert {
	return Cert{Kind: CertDeRegKey, StakeKeyHash: stakeKeyHash}
}

// DelegateCert builds a delegation certificate from src to tgt.
func DelegateCert(src, tgt HashKey) Cert {
	return Cert{Kind: CertDelegate, DelegatorHash: src, DelegateeHash: tgt}
}

// RegPoolCert builds a pool registration/update certificate.
func RegPoolCert(params PoolParams) Cert {
	return Cert{Kind: CertRegPool, PoolParams: params}
}

// RegPoolCertWithOpCounter builds a pool registration/update certificate
// that also advances the pool's KES operational counter.
func RegPoolCertWithOpCounter(params PoolParams, opCounter uint64) Cert {
	return Cert{Kind: CertRegPool, PoolParams: params, OpCounter: &opCounter}
}

// RetirePoolCert builds a pool retirement certificate.
func RetirePoolCert(poolKeyHash HashKey, retireAt Epoch) Cert {
	return Cert{Kind: CertRetirePool, PoolKeyHash: poolKeyHash, RetirementEpoch: retireAt}
}

// RequiredSigner returns the hash whose witness §4.1 requires for this
// certificate: the stake key for RegKey/DeRegKey/Delegate, the pool key for
// RegPool/RetirePool.
func (c Cert) RequiredSigner() HashKey {
	switch c.Kind {
	case CertRegKey, CertDeRegKey:
		return c.StakeKeyHash
	case CertDelegate:
		return c.DelegatorHash
	case CertRegPool:
		return c.PoolParams.PoolKeyHash
	case CertRetirePool:
		return c.PoolKeyHash
	default:
		return ZeroHashKey
	}
}
