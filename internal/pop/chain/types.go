//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE
package chain

import (
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/popminer-backend/internal/pop/model"
)

// BlockStore keeps validated headers by hash and the best chain by height.
type BlockStore interface {
	// Block returns the block with the given hash, or nil.
	Block(hash chainhash.Hash) (*model.StoredBlock, error)
	// BlockByReference resolves a truncated previous-block reference, or returns nil.
	BlockByReference(ref []byte) (*model.StoredBlock, error)
	// BestHash returns the best chain hash at height.
	BestHash(height int32) (chainhash.Hash, bool, error)
	Put(block *model.StoredBlock) error
	SetBest(height int32, hash chainhash.Hash) error
	// TruncateBest drops best chain entries above height.
	TruncateBest(height int32) error
	Empty() (bool, error)
}

// HeadStore is implemented by block stores that survive restarts. The
// synchronizer resumes from the returned block, which may be nil.
type HeadStore interface {
	Head() (*model.StoredBlock, error)
}

// Metrics receives synchronizer observations.
type Metrics interface {
	ObserveAdd(outcome string, started time.Time)
	SetHead(height int32)
}
