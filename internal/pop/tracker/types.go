//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE
package tracker

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/popminer-backend/internal/pop/model"
)

// Metrics receives tracker observations.
type Metrics interface {
	ObserveConfirmed(n int)
	ObserveDemoted(n int)
	SetTracked(n int)
}

// Store persists encoded wallet transactions across restarts.
type Store interface {
	PutTransaction(id chainhash.Hash, data []byte) error
	ForEachTransaction(fn func(id chainhash.Hash, data []byte) error) error
}

// BestChain answers which block the best chain holds at a height.
type BestChain interface {
	ChainHead() *model.StoredBlock
	GetByHeight(height int32) (*model.StoredBlock, error)
}
