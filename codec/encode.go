// Package codec provides the deterministic byte encoding the core needs for
// two purposes the spec places out of scope but still depends on: the
// transaction-body hash input, and the size(tx) term of the fee formula
// (§4.1, validFee). Real networks use CBOR (see spec §1); this package is a
// canonical stand-in with the same determinism property — sorted map keys,
// fixed-width integers (the pool margin's numerator and denominator are the
// one exception: their minimal big-endian bytes are written without a
// length prefix), no padding — so fee and hash computations are
// reproducible across nodes without pulling in a CBOR codec this module
// does not otherwise need.
package codec

import (
	"encoding/binary"

	"ledgerengine/types"
)

// EncodeTxBody renders body into a canonical byte sequence. The encoding is
// deterministic (fixed field order, sorted input set) but is not meant to be
// decoded back; it exists purely as a hash/size oracle.
func EncodeTxBody(body types.TxBody) []byte {
	var buf []byte

	ins := body.SortedInputs()
	buf = appendUint32(buf, uint32(len(ins)))
	for _, in := range ins {
		buf = append(buf, HashKeyBytes(in.TxId)...)
		buf = appendUint32(buf, in.Ix)
	}

	buf = appendUint32(buf, uint32(len(body.Outputs)))
	for _, out := range body.Outputs {
		buf = appendAddress(buf, out.Address)
		buf = appendUint64(buf, out.Coin.Uint64())
	}

	buf = appendUint32(buf, uint32(len(body.Certs)))
	for _, c := range body.Certs {
		buf = appendCert(buf, c)
	}

	wks := body.SortedWithdrawalKeys()
	buf = appendUint32(buf, uint32(len(wks)))
	for _, k := range wks {
		buf = append(buf, types.HashKey(k).Bytes()...)
		buf = appendUint64(buf, body.Withdrawals[k].Uint64())
	}

	buf = appendUint64(buf, body.Fee.Uint64())
	buf = appendUint64(buf, uint64(body.TTL))
	buf = appendUint32(buf, uint32(len(body.Entropy)))
	buf = append(buf, body.Entropy...)

	return buf
}

// Size returns the canonical byte length of body, the size(tx) term used by
// the minimum-fee formula in §4.1.
func Size(body types.TxBody) uint64 {
	return uint64(len(EncodeTxBody(body)))
}

// HashKeyBytes exposes a TxId's underlying bytes; a tiny helper so callers
// outside this package do not need to know TxId is a HashKey alias.
func HashKeyBytes(id types.TxId) []byte {
	return types.HashKey(id).Bytes()
}

func appendAddress(buf []byte, a types.Address) []byte {
	buf = append(buf, byte(a.Kind))
	buf = append(buf, a.PayKeyHash.Bytes()...)
	switch a.Kind {
	case types.AddrKindTxin:
		buf = append(buf, a.StakeKeyHash.Bytes()...)
	case types.AddrKindPtr:
		buf = appendUint64(buf, uint64(a.Pointer.Slot))
		buf = appendUint32(buf, a.Pointer.TxIndex)
		buf = appendUint32(buf, a.Pointer.CertIndex)
	}
	return buf
}

// appendCert encodes every field a witness's signature must cover,
// including OpCounter: the counter is what freshOperationalCounters checks
// for monotonicity, so a cert whose counter is left out of this encoding
// could be resubmitted with a different counter under the same signature.
func appendCert(buf []byte, c types.Cert) []byte {
	buf = append(buf, byte(c.Kind))
	switch c.Kind {
	case types.CertRegKey, types.CertDeRegKey:
		buf = append(buf, c.StakeKeyHash.Bytes()...)
	case types.CertDelegate:
		buf = append(buf, c.DelegatorHash.Bytes()...)
		buf = append(buf, c.DelegateeHash.Bytes()...)
	case types.CertRegPool:
		buf = append(buf, c.PoolParams.PoolKeyHash.Bytes()...)
		buf = append(buf, c.PoolParams.VrfKeyHash.Bytes()...)
		buf = appendUint64(buf, c.PoolParams.Pledge.Uint64())
		buf = appendUint64(buf, c.PoolParams.Cost.Uint64())
		buf = append(buf, c.PoolParams.Margin.Rat().Num().Bytes()...)
		buf = append(buf, c.PoolParams.Margin.Rat().Denom().Bytes()...)
		buf = append(buf, types.HashKey(c.PoolParams.RewardAccount).Bytes()...)
		buf = appendUint32(buf, uint32(len(c.PoolParams.Owners)))
		for _, o := range c.PoolParams.Owners {
			buf = append(buf, o.Bytes()...)
		}
		buf = appendUint32(buf, uint32(len(c.PoolParams.Relays)))
		for _, r := range c.PoolParams.Relays {
			buf = appendUint32(buf, uint32(len(r)))
			buf = append(buf, r...)
		}
		if c.OpCounter != nil {
			buf = append(buf, 1)
			buf = appendUint64(buf, *c.OpCounter)
		} else {
			buf = append(buf, 0)
		}
	case types.CertRetirePool:
		buf = append(buf, c.PoolKeyHash.Bytes()...)
		buf = appendUint64(buf, uint64(c.RetirementEpoch))
	}
	return buf
}

func appendUint32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

func appendUint64(buf []byte, v uint64) []byte {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	return append(buf, tmp[:]...)
}
