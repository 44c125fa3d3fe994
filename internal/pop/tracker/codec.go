package tracker

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/goodnatureofminers/popminer-backend/internal/pop/model"
)

// ErrCorruptedRecord marks a stored wallet transaction that cannot be decoded.
var ErrCorruptedRecord = errors.New("corrupted wallet transaction record")

// Depth is not stored; it is recomputed from the best chain on load.
const (
	recordTxID protowire.Number = iota + 1
	recordState
	recordBlockHash
	recordHeight
	recordMerklePath
)

func marshalTransaction(wtx *model.WalletTransaction) []byte {
	var b []byte
	b = protowire.AppendTag(b, recordTxID, protowire.BytesType)
	b = protowire.AppendBytes(b, wtx.Meta.TxID[:])
	b = protowire.AppendTag(b, recordState, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(wtx.Meta.State))

	if wtx.Meta.AppearsInBestChainBlock != nil {
		b = protowire.AppendTag(b, recordBlockHash, protowire.BytesType)
		b = protowire.AppendBytes(b, wtx.Meta.AppearsInBestChainBlock[:])
		b = protowire.AppendTag(b, recordHeight, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(int64(wtx.Meta.AppearsAtHeight)))
	}
	if wtx.MerklePath != nil {
		b = protowire.AppendTag(b, recordMerklePath, protowire.BytesType)
		b = protowire.AppendString(b, wtx.MerklePath.String())
	}
	return b
}

func unmarshalTransaction(b []byte) (*model.WalletTransaction, error) {
	var (
		id       *chainhash.Hash
		state    model.ConfirmationState
		block    *chainhash.Hash
		height   int32
		path     *model.MerklePath
		parseErr error
	)
	for len(b) > 0 && parseErr == nil {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: %w", ErrCorruptedRecord, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case typ == protowire.BytesType:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return nil, fmt.Errorf("%w: field %d: %w", ErrCorruptedRecord, num, protowire.ParseError(m))
			}
			n = m
			switch num {
			case recordTxID:
				id, parseErr = chainhash.NewHash(v)
			case recordBlockHash:
				block, parseErr = chainhash.NewHash(v)
			case recordMerklePath:
				var p model.MerklePath
				p, parseErr = model.ParseMerklePath(string(v))
				path = &p
			}
		case typ == protowire.VarintType:
			u, m := protowire.ConsumeVarint(b)
			if m < 0 {
				return nil, fmt.Errorf("%w: field %d: %w", ErrCorruptedRecord, num, protowire.ParseError(m))
			}
			n = m
			switch num {
			case recordState:
				state = model.ConfirmationState(u)
			case recordHeight:
				height = int32(protowire.DecodeZigZag(u))
			}
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, fmt.Errorf("%w: field %d: %w", ErrCorruptedRecord, num, protowire.ParseError(n))
			}
		}
		b = b[n:]
	}

	switch {
	case parseErr != nil:
		return nil, fmt.Errorf("%w: %w", ErrCorruptedRecord, parseErr)
	case id == nil:
		return nil, fmt.Errorf("%w: transaction id missing", ErrCorruptedRecord)
	case state != model.StatePending && state != model.StateConfirmed:
		return nil, fmt.Errorf("%w: state %d", ErrCorruptedRecord, state)
	case state == model.StateConfirmed && (block == nil || path == nil):
		return nil, fmt.Errorf("%w: confirmed transaction %s without block or merkle path", ErrCorruptedRecord, id)
	}

	wtx := newWalletTransaction(model.Transaction{ID: *id})
	wtx.Meta.State = state
	if state == model.StateConfirmed {
		wtx.Meta.AppearsInBestChainBlock = block
		wtx.Meta.AppearsAtHeight = height
		wtx.Meta.AppearsInBlocks[*block] = struct{}{}
		wtx.MerklePath = path
	}
	return wtx, nil
}
