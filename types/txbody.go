package types

// EEnt is an extra-entropy contribution attached to a transaction body,
// threaded unchanged into UTxOState.entropy (§3). The core never interprets
// its contents; it is opaque bytes supplied and consumed by the consensus
// layer, an external collaborator per §1/§6.
type EEnt []byte

// TxBody is the set of inputs, ordered outputs, ordered certificates,
// withdrawals, fee, ttl, and entropy contribution that together make up what
// a transaction's witnesses sign over.
type TxBody struct {
	Inputs      map[TxIn]struct{}
	Outputs     []TxOut
	Certs       []Cert
	Withdrawals map[RewardAcnt]Coin
	Fee         Coin
	TTL         Slot
	Entropy     EEnt
}

// NewTxBody constructs an empty body ready for population by a builder.
func NewTxBody() *TxBody {
	return &TxBody{
		Inputs:      make(map[TxIn]struct{}),
		Withdrawals: make(map[RewardAcnt]Coin),
	}
}

// AddInput inserts an input into the set.
func (b *TxBody) AddInput(in TxIn) { b.Inputs[in] = struct{}{} }

// AddOutput appends an output, preserving insertion order as §4.2 step 0
// requires for assigning output indices.
func (b *TxBody) AddOutput(out TxOut) { b.Outputs = append(b.Outputs, out) }

// AddCert appends a certificate, preserving insertion order as §4.2 step 6
// requires for assigning certificate pointers.
func (b *TxBody) AddCert(c Cert) { b.Certs = append(b.Certs, c) }

// SortedInputs returns the input set as a slice in canonical (ascending)
// order, satisfying the determinism requirement of §5.
func (b *TxBody) SortedInputs() []TxIn {
	out := make([]TxIn, 0, len(b.Inputs))
	for in := range b.Inputs {
		out = append(out, in)
	}
	sortTxIns(out)
	return out
}

func sortTxIns(ins []TxIn) {
	for i := 1; i < len(ins); i++ {
		for j := i; j > 0 && ins[j-1].Compare(ins[j]) > 0; j-- {
			ins[j-1], ins[j] = ins[j], ins[j-1]
		}
	}
}

// SortedWithdrawalKeys returns the withdrawal map's keys in canonical order.
func (b *TxBody) SortedWithdrawalKeys() []RewardAcnt {
	out := make([]RewardAcnt, 0, len(b.Withdrawals))
	for k := range b.Withdrawals {
		out = append(out, k)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && HashKey(out[j-1]).Compare(HashKey(out[j])) > 0; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// Witness is a single verification-key witness over a transaction body:
// the signer's verification key, the hash it claims to be (checked against
// the Hasher's digest of PubKey and used for the witness-set rules), and the
// signature bytes.
type Witness struct {
	VKeyHash  HashKey
	PubKey    []byte
	Signature []byte
}

// Tx is a (TxBody, set of witnesses) pair.
type Tx struct {
	Body    TxBody
	Witness []Witness
}

// WitnessHashes returns the set of verification-key hashes that signed this
// transaction.
func (t Tx) WitnessHashes() map[HashKey]struct{} {
	out := make(map[HashKey]struct{}, len(t.Witness))
	for _, w := range t.Witness {
		out[w.VKeyHash] = struct{}{}
	}
	return out
}
