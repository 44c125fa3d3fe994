package model

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Output is a single payment of a transaction.
type Output struct {
	Address string
	Amount  int64
}

// Transaction is a reference-chain transaction as seen by the miner.
type Transaction struct {
	ID            chainhash.Hash
	SourceAddress string
	Outputs       []Output
	Raw           []byte
}

// Addresses lists every address the transaction touches.
func (t Transaction) Addresses() []string {
	out := make([]string, 0, len(t.Outputs)+1)
	if t.SourceAddress != "" {
		out = append(out, t.SourceAddress)
	}
	for _, o := range t.Outputs {
		out = append(out, o.Address)
	}
	return out
}

// ConfirmationState is the wallet view of a transaction.
type ConfirmationState int

const (
	StateUnknown ConfirmationState = iota
	StatePending
	StateConfirmed
)

func (s ConfirmationState) String() string {
	switch s {
	case StatePending:
		return "PENDING"
	case StateConfirmed:
		return "CONFIRMED"
	default:
		return "UNKNOWN"
	}
}

// TransactionMeta carries confirmation data of a tracked transaction.
type TransactionMeta struct {
	TxID                    chainhash.Hash
	State                   ConfirmationState
	Depth                   int
	AppearsInBestChainBlock *chainhash.Hash
	AppearsAtHeight         int32
	AppearsInBlocks         map[chainhash.Hash]struct{}
}

// Clone returns a deep copy of m.
func (m TransactionMeta) Clone() TransactionMeta {
	out := m
	if m.AppearsInBestChainBlock != nil {
		h := *m.AppearsInBestChainBlock
		out.AppearsInBestChainBlock = &h
	}
	out.AppearsInBlocks = make(map[chainhash.Hash]struct{}, len(m.AppearsInBlocks))
	for k := range m.AppearsInBlocks {
		out.AppearsInBlocks[k] = struct{}{}
	}
	return out
}

// WalletTransaction is a tracked transaction with its inclusion proof.
type WalletTransaction struct {
	Transaction Transaction
	Meta        TransactionMeta
	MerklePath  *MerklePath
}

// Clone returns a deep copy of w.
func (w WalletTransaction) Clone() WalletTransaction {
	out := w
	out.Meta = w.Meta.Clone()
	if w.MerklePath != nil {
		p := w.MerklePath.Clone()
		out.MerklePath = &p
	}
	return out
}
