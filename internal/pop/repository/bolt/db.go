// Package bolt keeps miner state in a single bbolt file.
package bolt

import (
	"errors"
	"fmt"
	"time"

	bbolt "go.etcd.io/bbolt"
)

const fileMode = 0o600

var (
	operationsBucket = []byte("operations")
	blocksBucket     = []byte("blocks")
	referencesBucket = []byte("references")
	bestBucket       = []byte("best")
	walletBucket     = []byte("wallet_transactions")
)

// ErrIO marks a failure of the underlying database.
var ErrIO = errors.New("bolt io")

// DB is an open bbolt file with the miner's buckets created.
type DB struct {
	db *bbolt.DB
}

// Open opens or creates the database at path. timeout bounds the wait for
// the file lock held by another process.
func Open(path string, timeout time.Duration) (*DB, error) {
	db, err := bbolt.Open(path, fileMode, &bbolt.Options{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrIO, path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{operationsBucket, blocksBucket, referencesBucket, bestBucket, walletBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return &DB{db: db}, nil
}

// Close releases the file.
func (d *DB) Close() error {
	if err := d.db.Close(); err != nil {
		return fmt.Errorf("%w: close: %w", ErrIO, err)
	}
	return nil
}

func (d *DB) update(fn func(tx *bbolt.Tx) error) error {
	if err := d.db.Update(fn); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

func (d *DB) view(fn func(tx *bbolt.Tx) error) error {
	if err := d.db.View(fn); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
