package types

import "fmt"

// TxId is the hash of a transaction's body; it is also used as the genesis
// transaction id, which per §6 is the hash of an empty body.
type TxId HashKey

func (id TxId) String() string { return HashKey(id).String() }

// TxIn is a reference to a previously produced output: (TxId, Ix).
type TxIn struct {
	TxId TxId
	Ix   uint32
}

// NewTxIn constructs an input reference.
func NewTxIn(id TxId, ix uint32) TxIn { return TxIn{TxId: id, Ix: ix} }

func (in TxIn) String() string { return fmt.Sprintf("%s#%d", in.TxId.String(), in.Ix) }

// Compare provides a total order over inputs for deterministic iteration.
func (in TxIn) Compare(other TxIn) int {
	if c := HashKey(in.TxId).Compare(HashKey(other.TxId)); c != 0 {
		return c
	}
	switch {
	case in.Ix < other.Ix:
		return -1
	case in.Ix > other.Ix:
		return 1
	default:
		return 0
	}
}

// TxOut is a (Address, Coin) pair.
type TxOut struct {
	Address Address
	Coin    Coin
}

// NewTxOut constructs an output.
func NewTxOut(addr Address, coin Coin) TxOut { return TxOut{Address: addr, Coin: coin} }
