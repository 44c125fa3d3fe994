package model

import (
	"math/big"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// ChainBlock is a reference-chain block header with an optional body.
// Reference fields hold truncated hashes whose widths come from the chain parameters.
type ChainBlock struct {
	Height                 int32
	Version                int16
	Hash                   chainhash.Hash
	PreviousBlock          []byte
	PreviousKeystone       []byte
	SecondPreviousKeystone []byte
	MerkleRoot             []byte
	Timestamp              int32
	Difficulty             uint32
	Nonce                  uint32

	Transactions []Transaction
}

// Time returns the block timestamp.
func (b ChainBlock) Time() time.Time {
	return time.Unix(int64(b.Timestamp), 0).UTC()
}

// Header returns a copy of the block without its body.
func (b ChainBlock) Header() ChainBlock {
	b.Transactions = nil
	return b
}

// TransactionIDs lists the body's transaction ids in block order.
func (b ChainBlock) TransactionIDs() []chainhash.Hash {
	ids := make([]chainhash.Hash, len(b.Transactions))
	for i, tx := range b.Transactions {
		ids[i] = tx.ID
	}
	return ids
}

// StoredBlock is a validated header plus the cumulative work of its chain.
type StoredBlock struct {
	Block ChainBlock
	Work  *big.Int
}

// Height returns the stored block height.
func (s *StoredBlock) Height() int32 {
	return s.Block.Height
}

// Hash returns the stored block hash.
func (s *StoredBlock) Hash() chainhash.Hash {
	return s.Block.Hash
}

// Truncate returns the trailing size bytes of h.
func Truncate(h chainhash.Hash, size int) []byte {
	if size > chainhash.HashSize {
		size = chainhash.HashSize
	}
	out := make([]byte, size)
	copy(out, h[chainhash.HashSize-size:])
	return out
}
