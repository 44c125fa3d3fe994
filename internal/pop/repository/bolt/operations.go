package bolt

import (
	bbolt "go.etcd.io/bbolt"
)

// OperationStore persists encoded operation records keyed by operation id.
type OperationStore struct {
	db *DB
}

// NewOperationStore returns a store over db.
func NewOperationStore(db *DB) *OperationStore {
	return &OperationStore{db: db}
}

// Put replaces the record stored under id.
func (s *OperationStore) Put(id string, data []byte) error {
	return s.db.update(func(tx *bbolt.Tx) error {
		return tx.Bucket(operationsBucket).Put([]byte(id), data)
	})
}

// Get returns the record stored under id, or nil.
func (s *OperationStore) Get(id string) ([]byte, error) {
	var out []byte
	err := s.db.view(func(tx *bbolt.Tx) error {
		out = clone(tx.Bucket(operationsBucket).Get([]byte(id)))
		return nil
	})
	return out, err
}

// Delete drops the record stored under id.
func (s *OperationStore) Delete(id string) error {
	return s.db.update(func(tx *bbolt.Tx) error {
		return tx.Bucket(operationsBucket).Delete([]byte(id))
	})
}

// ForEach calls fn for every record in id order. An error from fn stops the
// iteration and is returned unchanged.
func (s *OperationStore) ForEach(fn func(id string, data []byte) error) error {
	type entry struct {
		id   string
		data []byte
	}
	var entries []entry
	err := s.db.view(func(tx *bbolt.Tx) error {
		return tx.Bucket(operationsBucket).ForEach(func(k, v []byte) error {
			entries = append(entries, entry{id: string(k), data: clone(v)})
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
