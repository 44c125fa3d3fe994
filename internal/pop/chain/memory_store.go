package chain

import (
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/popminer-backend/internal/pop/model"
)

// MemoryStore is a BlockStore backed by maps.
type MemoryStore struct {
	refSize int

	mu       sync.RWMutex
	byHash   map[chainhash.Hash]*model.StoredBlock
	byRef    map[string]chainhash.Hash
	byHeight map[int32]chainhash.Hash
	top      int32
}

// NewMemoryStore returns an empty store resolving references of refSize bytes.
func NewMemoryStore(refSize int) *MemoryStore {
	return &MemoryStore{
		refSize:  refSize,
		byHash:   make(map[chainhash.Hash]*model.StoredBlock),
		byRef:    make(map[string]chainhash.Hash),
		byHeight: make(map[int32]chainhash.Hash),
		top:      -1,
	}
}

func (s *MemoryStore) Block(hash chainhash.Hash) (*model.StoredBlock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byHash[hash], nil
}

func (s *MemoryStore) BlockByReference(ref []byte) (*model.StoredBlock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	hash, ok := s.byRef[string(ref)]
	if !ok {
		return nil, nil
	}
	return s.byHash[hash], nil
}

func (s *MemoryStore) BestHash(height int32) (chainhash.Hash, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	hash, ok := s.byHeight[height]
	return hash, ok, nil
}

func (s *MemoryStore) Put(block *model.StoredBlock) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	hash := block.Hash()
	s.byHash[hash] = block
	s.byRef[string(model.Truncate(hash, s.refSize))] = hash
	return nil
}

func (s *MemoryStore) SetBest(height int32, hash chainhash.Hash) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byHeight[height] = hash
	if height > s.top {
		s.top = height
	}
	return nil
}

func (s *MemoryStore) TruncateBest(height int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for h := s.top; h > height; h-- {
		delete(s.byHeight, h)
	}
	if s.top > height {
		s.top = height
	}
	return nil
}

func (s *MemoryStore) Empty() (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byHash) == 0, nil
}

// Len returns the number of stored blocks.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byHash)
}
