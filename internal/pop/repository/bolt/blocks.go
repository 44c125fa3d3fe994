package bolt

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	bbolt "go.etcd.io/bbolt"

	"github.com/goodnatureofminers/popminer-backend/internal/pop/chain"
	"github.com/goodnatureofminers/popminer-backend/internal/pop/model"
)

// HeaderCodec serializes reference-chain headers.
type HeaderCodec interface {
	HeaderSize() int
	EncodeHeader(b model.ChainBlock) ([]byte, error)
	DecodeHeader(raw []byte) (model.ChainBlock, error)
}

// BlockStore is a chain.BlockStore that survives restarts. A value in the
// blocks bucket is the serialized header followed by the big-endian work.
type BlockStore struct {
	db      *DB
	codec   HeaderCodec
	refSize int
}

var (
	_ chain.BlockStore = (*BlockStore)(nil)
	_ chain.HeadStore  = (*BlockStore)(nil)
)

// NewBlockStore returns a block store resolving references of refSize bytes.
func NewBlockStore(db *DB, codec HeaderCodec, refSize int) (*BlockStore, error) {
	if codec == nil {
		return nil, errors.New("header codec is required")
	}
	if refSize < 1 || refSize > chainhash.HashSize {
		return nil, fmt.Errorf("reference size %d out of range", refSize)
	}
	return &BlockStore{db: db, codec: codec, refSize: refSize}, nil
}

func (s *BlockStore) Block(hash chainhash.Hash) (*model.StoredBlock, error) {
	var raw []byte
	if err := s.db.view(func(tx *bbolt.Tx) error {
		raw = clone(tx.Bucket(blocksBucket).Get(hash[:]))
		return nil
	}); err != nil {
		return nil, fmt.Errorf("%w: %w", chain.ErrStoreIO, err)
	}
	if raw == nil {
		return nil, nil
	}
	return s.decode(raw)
}

func (s *BlockStore) BlockByReference(ref []byte) (*model.StoredBlock, error) {
	var raw []byte
	if err := s.db.view(func(tx *bbolt.Tx) error {
		hash := tx.Bucket(referencesBucket).Get(ref)
		if hash == nil {
			return nil
		}
		raw = clone(tx.Bucket(blocksBucket).Get(hash))
		return nil
	}); err != nil {
		return nil, fmt.Errorf("%w: %w", chain.ErrStoreIO, err)
	}
	if raw == nil {
		return nil, nil
	}
	return s.decode(raw)
}

func (s *BlockStore) BestHash(height int32) (chainhash.Hash, bool, error) {
	if height < 0 {
		return chainhash.Hash{}, false, nil
	}
	var (
		hash  chainhash.Hash
		found bool
	)
	if err := s.db.view(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bestBucket).Get(heightKey(height))
		if v == nil {
			return nil
		}
		if len(v) != chainhash.HashSize {
			return fmt.Errorf("best hash at height %d has %d bytes", height, len(v))
		}
		copy(hash[:], v)
		found = true
		return nil
	}); err != nil {
		return chainhash.Hash{}, false, fmt.Errorf("%w: %w", chain.ErrStoreIO, err)
	}
	return hash, found, nil
}

func (s *BlockStore) Put(block *model.StoredBlock) error {
	raw, err := s.codec.EncodeHeader(block.Block)
	if err != nil {
		return fmt.Errorf("%w: encode header: %w", chain.ErrStoreIO, err)
	}
	if block.Work != nil {
		raw = append(raw, block.Work.Bytes()...)
	}

	hash := block.Hash()
	if err := s.db.update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(blocksBucket).Put(hash[:], raw); err != nil {
			return err
		}
		return tx.Bucket(referencesBucket).Put(model.Truncate(hash, s.refSize), hash[:])
	}); err != nil {
		return fmt.Errorf("%w: %w", chain.ErrStoreIO, err)
	}
	return nil
}

func (s *BlockStore) SetBest(height int32, hash chainhash.Hash) error {
	if height < 0 {
		return fmt.Errorf("%w: negative height %d", chain.ErrStoreIO, height)
	}
	if err := s.db.update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bestBucket).Put(heightKey(height), hash[:])
	}); err != nil {
		return fmt.Errorf("%w: %w", chain.ErrStoreIO, err)
	}
	return nil
}

func (s *BlockStore) TruncateBest(height int32) error {
	from := int32(0)
	if height >= 0 {
		from = height + 1
	}
	if err := s.db.update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bestBucket)
		var stale [][]byte
		c := b.Cursor()
		for k, _ := c.Seek(heightKey(from)); k != nil; k, _ = c.Next() {
			stale = append(stale, clone(k))
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("%w: %w", chain.ErrStoreIO, err)
	}
	return nil
}

func (s *BlockStore) Empty() (bool, error) {
	empty := true
	if err := s.db.view(func(tx *bbolt.Tx) error {
		k, _ := tx.Bucket(blocksBucket).Cursor().First()
		empty = k == nil
		return nil
	}); err != nil {
		return false, fmt.Errorf("%w: %w", chain.ErrStoreIO, err)
	}
	return empty, nil
}

// Head returns the block at the top of the best chain, or nil when empty.
func (s *BlockStore) Head() (*model.StoredBlock, error) {
	var raw []byte
	if err := s.db.view(func(tx *bbolt.Tx) error {
		_, hash := tx.Bucket(bestBucket).Cursor().Last()
		if hash == nil {
			return nil
		}
		raw = clone(tx.Bucket(blocksBucket).Get(hash))
		if raw == nil {
			return fmt.Errorf("best chain names unknown block %x", hash)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("%w: %w", chain.ErrStoreIO, err)
	}
	if raw == nil {
		return nil, nil
	}
	return s.decode(raw)
}

func (s *BlockStore) decode(raw []byte) (*model.StoredBlock, error) {
	size := s.codec.HeaderSize()
	if len(raw) < size {
		return nil, fmt.Errorf("%w: stored block has %d bytes, header needs %d", chain.ErrStoreIO, len(raw), size)
	}
	block, err := s.codec.DecodeHeader(raw[:size])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", chain.ErrStoreIO, err)
	}
	return &model.StoredBlock{Block: block, Work: new(big.Int).SetBytes(raw[size:])}, nil
}

// heightKey sorts heights in numeric order under bbolt's byte ordering.
func heightKey(height int32) []byte {
	return binary.BigEndian.AppendUint32(nil, uint32(height))
}
