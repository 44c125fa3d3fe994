package model

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// MerklePath proves that Subject is a leaf of a merkle tree.
// Bit i of Index selects the side of Subject's ancestor at level i.
type MerklePath struct {
	Subject chainhash.Hash
	Index   int
	Layers  []chainhash.Hash
	Subtree int
}

// Clone returns a copy of p with its own layer slice.
func (p MerklePath) Clone() MerklePath {
	out := p
	out.Layers = append([]chainhash.Hash(nil), p.Layers...)
	return out
}

// String renders the compact form "subtree:index:subject:layer1:...:layerN"
// using raw byte order hex.
func (p MerklePath) String() string {
	parts := make([]string, 0, len(p.Layers)+3)
	parts = append(parts, strconv.Itoa(p.Subtree), strconv.Itoa(p.Index), hex.EncodeToString(p.Subject[:]))
	for _, l := range p.Layers {
		parts = append(parts, hex.EncodeToString(l[:]))
	}
	return strings.Join(parts, ":")
}

// ParseMerklePath decodes the compact form produced by MerklePath.String.
func ParseMerklePath(s string) (MerklePath, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 3 {
		return MerklePath{}, fmt.Errorf("merkle path %q: expected at least 3 fields, got %d", s, len(parts))
	}

	subtree, err := strconv.Atoi(parts[0])
	if err != nil {
		return MerklePath{}, fmt.Errorf("merkle path subtree: %w", err)
	}
	index, err := strconv.Atoi(parts[1])
	if err != nil {
		return MerklePath{}, fmt.Errorf("merkle path index: %w", err)
	}
	if index < 0 {
		return MerklePath{}, fmt.Errorf("merkle path index %d is negative", index)
	}

	subject, err := decodeRawHash(parts[2])
	if err != nil {
		return MerklePath{}, fmt.Errorf("merkle path subject: %w", err)
	}

	path := MerklePath{Subject: subject, Index: index, Subtree: subtree}
	for i, raw := range parts[3:] {
		layer, err := decodeRawHash(raw)
		if err != nil {
			return MerklePath{}, fmt.Errorf("merkle path layer %d: %w", i, err)
		}
		path.Layers = append(path.Layers, layer)
	}
	return path, nil
}

func decodeRawHash(s string) (chainhash.Hash, error) {
	var h chainhash.Hash
	b, err := hex.DecodeString(s)
	if err != nil {
		return h, err
	}
	if len(b) != chainhash.HashSize {
		return h, fmt.Errorf("hash length %d, want %d", len(b), chainhash.HashSize)
	}
	copy(h[:], b)
	return h, nil
}
