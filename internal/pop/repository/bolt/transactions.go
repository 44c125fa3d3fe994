package bolt

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	bbolt "go.etcd.io/bbolt"
)

// TransactionStore keeps encoded wallet transactions keyed by transaction id.
type TransactionStore struct {
	db *DB
}

func NewTransactionStore(db *DB) *TransactionStore {
	return &TransactionStore{db: db}
}

// PutTransaction replaces the record stored for id.
func (s *TransactionStore) PutTransaction(id chainhash.Hash, data []byte) error {
	return s.db.update(func(tx *bbolt.Tx) error {
		return tx.Bucket(walletBucket).Put(id[:], data)
	})
}

// ForEachTransaction calls fn for every stored record outside the read
// transaction, so fn may write back.
func (s *TransactionStore) ForEachTransaction(fn func(id chainhash.Hash, data []byte) error) error {
	type entry struct {
		id   chainhash.Hash
		data []byte
	}
	var entries []entry
	err := s.db.view(func(tx *bbolt.Tx) error {
		return tx.Bucket(walletBucket).ForEach(func(k, v []byte) error {
			id, err := chainhash.NewHash(k)
			if err != nil {
				return fmt.Errorf("wallet transaction key %x: %w", k, err)
			}
			entries = append(entries, entry{id: *id, data: clone(v)})
			return nil
		})
	})
	if err != nil {
		return err
	}

	for _, e := range entries {
		if err := fn(e.id, e.data); err != nil {
			return err
		}
	}
	return nil
}
