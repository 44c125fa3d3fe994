// Package merkle builds binary hash trees over ordered transaction ids and
// produces and checks inclusion paths against them.
package merkle

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/popminer-backend/internal/pop/model"
)

// ErrEmptyTree is returned when a path is requested over no leaves.
var ErrEmptyTree = errors.New("merkle tree has no leaves")

// Hasher hashes a byte string into a 32-byte digest.
type Hasher func([]byte) chainhash.Hash

// DoubleSHA256 is the default Hasher.
var DoubleSHA256 Hasher = chainhash.DoubleHashH

// Root returns the merkle root of ids using DoubleSHA256.
func Root(ids []chainhash.Hash) chainhash.Hash {
	return DoubleSHA256.Root(ids)
}

// Path returns the inclusion path of ids[index] using DoubleSHA256.
func Path(ids []chainhash.Hash, index int) (model.MerklePath, error) {
	return DoubleSHA256.Path(ids, index)
}

// Verify reports whether path recomputes root using DoubleSHA256.
func Verify(path model.MerklePath, root chainhash.Hash) bool {
	return DoubleSHA256.Verify(path, root)
}

// VerifyTruncated reports whether path recomputes a root ending in root
// using DoubleSHA256.
func VerifyTruncated(path model.MerklePath, root []byte) bool {
	return DoubleSHA256.VerifyTruncated(path, root)
}

// Root builds a tree of depth ceil(log2(n)) and returns its root. Missing
// leaves of the bottom level are the hash of the empty string. A single leaf
// is its own root.
func (h Hasher) Root(ids []chainhash.Hash) chainhash.Hash {
	if len(ids) == 0 {
		return h(nil)
	}
	level := h.leaves(ids)
	for len(level) > 1 {
		level = h.parents(level)
	}
	return level[0]
}

// Path walks from the leaf at index to the root recording the sibling of
// each visited node.
func (h Hasher) Path(ids []chainhash.Hash, index int) (model.MerklePath, error) {
	if len(ids) == 0 {
		return model.MerklePath{}, ErrEmptyTree
	}
	if index < 0 || index >= len(ids) {
		return model.MerklePath{}, fmt.Errorf("leaf index %d out of range [0, %d)", index, len(ids))
	}

	path := model.MerklePath{Subject: ids[index], Index: index}
	level := h.leaves(ids)
	for i := index; len(level) > 1; i >>= 1 {
		path.Layers = append(path.Layers, level[i^1])
		level = h.parents(level)
	}
	return path, nil
}

// Verify recomputes the root from path and compares it with root.
func (h Hasher) Verify(path model.MerklePath, root chainhash.Hash) bool {
	got, ok := h.climb(path)
	return ok && got == root
}

// VerifyTruncated is Verify against a root kept only as its trailing bytes,
// as block headers store it.
func (h Hasher) VerifyTruncated(path model.MerklePath, root []byte) bool {
	got, ok := h.climb(path)
	return ok && len(root) > 0 && bytes.Equal(model.Truncate(got, len(root)), root)
}

func (h Hasher) climb(path model.MerklePath) (chainhash.Hash, bool) {
	if path.Index < 0 || (len(path.Layers) < 63 && path.Index >= 1<<len(path.Layers)) {
		return chainhash.Hash{}, false
	}
	cur := path.Subject
	i := path.Index
	for _, sibling := range path.Layers {
		if i&1 == 0 {
			cur = h.node(cur, sibling)
		} else {
			cur = h.node(sibling, cur)
		}
		i >>= 1
	}
	return cur, true
}

func (h Hasher) leaves(ids []chainhash.Hash) []chainhash.Hash {
	width := 1
	for width < len(ids) {
		width <<= 1
	}
	level := make([]chainhash.Hash, width)
	copy(level, ids)
	if width > len(ids) {
		empty := h(nil)
		for i := len(ids); i < width; i++ {
			level[i] = empty
		}
	}
	return level
}

func (h Hasher) parents(level []chainhash.Hash) []chainhash.Hash {
	next := make([]chainhash.Hash, len(level)/2)
	for i := range next {
		next[i] = h.node(level[2*i], level[2*i+1])
	}
	return next
}

func (h Hasher) node(left, right chainhash.Hash) chainhash.Hash {
	var buf [chainhash.HashSize * 2]byte
	copy(buf[:chainhash.HashSize], left[:])
	copy(buf[chainhash.HashSize:], right[:])
	return h(buf[:])
}
