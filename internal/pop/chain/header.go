package chain

import (
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/popminer-backend/internal/pop/model"
)

// height, version, timestamp, difficulty, nonce
const fixedHeaderSize = 4 + 2 + 4 + 4 + 4

// HeaderSize returns the serialized header length.
func (p *Params) HeaderSize() int {
	return fixedHeaderSize + p.PreviousBlockSize + 2*p.KeystoneSize + p.MerkleRootSize
}

// EncodeHeader serializes the header fields of b big-endian in wire order.
func (p *Params) EncodeHeader(b model.ChainBlock) ([]byte, error) {
	if err := p.checkWidths(b); err != nil {
		return nil, err
	}

	buf := make([]byte, 0, p.HeaderSize())
	buf = binary.BigEndian.AppendUint32(buf, uint32(b.Height))
	buf = binary.BigEndian.AppendUint16(buf, uint16(b.Version))
	buf = append(buf, b.PreviousBlock...)
	buf = append(buf, b.PreviousKeystone...)
	buf = append(buf, b.SecondPreviousKeystone...)
	buf = append(buf, b.MerkleRoot...)
	buf = binary.BigEndian.AppendUint32(buf, uint32(b.Timestamp))
	buf = binary.BigEndian.AppendUint32(buf, b.Difficulty)
	buf = binary.BigEndian.AppendUint32(buf, b.Nonce)
	return buf, nil
}

// DecodeHeader parses raw and fills in the block hash.
func (p *Params) DecodeHeader(raw []byte) (model.ChainBlock, error) {
	if len(raw) != p.HeaderSize() {
		return model.ChainBlock{}, fmt.Errorf("%w: header length %d, want %d", ErrMalformedHeader, len(raw), p.HeaderSize())
	}

	var b model.ChainBlock
	off := 0
	take := func(n int) []byte {
		out := append([]byte(nil), raw[off:off+n]...)
		off += n
		return out
	}

	b.Height = int32(binary.BigEndian.Uint32(take(4)))
	b.Version = int16(binary.BigEndian.Uint16(take(2)))
	b.PreviousBlock = take(p.PreviousBlockSize)
	b.PreviousKeystone = take(p.KeystoneSize)
	b.SecondPreviousKeystone = take(p.KeystoneSize)
	b.MerkleRoot = take(p.MerkleRootSize)
	b.Timestamp = int32(binary.BigEndian.Uint32(take(4)))
	b.Difficulty = binary.BigEndian.Uint32(take(4))
	b.Nonce = binary.BigEndian.Uint32(take(4))
	b.Hash = p.HashHeader(raw)
	return b, nil
}

// BlockHash computes the hash of b's header.
func (p *Params) BlockHash(b model.ChainBlock) (chainhash.Hash, error) {
	raw, err := p.EncodeHeader(b)
	if err != nil {
		return chainhash.Hash{}, err
	}
	return p.HashHeader(raw), nil
}

func (p *Params) checkWidths(b model.ChainBlock) error {
	fields := []struct {
		name string
		got  int
		want int
	}{
		{"previous block", len(b.PreviousBlock), p.PreviousBlockSize},
		{"previous keystone", len(b.PreviousKeystone), p.KeystoneSize},
		{"second previous keystone", len(b.SecondPreviousKeystone), p.KeystoneSize},
		{"merkle root", len(b.MerkleRoot), p.MerkleRootSize},
	}
	for _, f := range fields {
		if f.got != f.want {
			return fmt.Errorf("%w: %s is %d bytes, want %d", ErrMalformedHeader, f.name, f.got, f.want)
		}
	}
	return nil
}
