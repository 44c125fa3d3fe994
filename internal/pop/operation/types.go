//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE
package operation

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/popminer-backend/internal/pop/model"
)

// TransactionTracker delivers confirmation state changes of a transaction.
type TransactionTracker interface {
	Subscribe(txID chainhash.Hash, owner any, fn func(model.TransactionMeta))
	Unsubscribe(txID chainhash.Hash, owner any)
}

// HeaderCodec converts reference-chain headers to and from bytes.
type HeaderCodec interface {
	EncodeHeader(block model.ChainBlock) ([]byte, error)
	DecodeHeader(raw []byte) (model.ChainBlock, error)
}
