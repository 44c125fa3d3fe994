package operation

import (
	"fmt"
	"time"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/goodnatureofminers/popminer-backend/internal/pop/model"
)

// Record field numbers. New fields take new numbers; unknown ones are skipped.
const (
	fieldID protowire.Number = iota + 1
	fieldChainID
	fieldStatus
	fieldEndorsedHeight
	fieldPublicationData
	fieldContext
	fieldBtcContext
	fieldEndorsementTxID
	fieldBlockOfProof
	fieldMerklePath
	fieldKeystoneOfProof
	fieldPublication
	fieldProofOfProofID
	fieldAltEndorsementBlockHash
	fieldPayoutBlockHash
	fieldPayoutAmount
	fieldChange
	fieldFailureReason
	fieldFailedFrom
	fieldState
	fieldCreatedAt
)

const (
	changeText protowire.Number = iota + 1
	changeTimestamp
)

const (
	publicationTransactionID protowire.Number = iota + 1
	publicationBlockHash
	publicationMerklePath
	publicationPayload
)

// MarshalBinary encodes the record in protobuf wire format.
func (r Record) MarshalBinary() ([]byte, error) {
	var b []byte
	b = appendString(b, fieldID, r.ID)
	b = appendString(b, fieldChainID, r.ChainID)
	b = appendVarint(b, fieldStatus, uint64(r.Status))

	if r.Instruction != nil {
		b = protowire.AppendTag(b, fieldEndorsedHeight, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(int64(r.Instruction.EndorsedBlockHeight)))
		b = appendBytes(b, fieldPublicationData, r.Instruction.PublicationData)
		for _, h := range r.Instruction.Context {
			b = protowire.AppendTag(b, fieldContext, protowire.BytesType)
			b = protowire.AppendBytes(b, h)
		}
		for _, h := range r.Instruction.BtcContext {
			b = protowire.AppendTag(b, fieldBtcContext, protowire.BytesType)
			b = protowire.AppendBytes(b, h)
		}
	}

	b = appendString(b, fieldEndorsementTxID, r.EndorsementTxID)
	b = appendBytes(b, fieldBlockOfProof, r.BlockOfProof)
	b = appendString(b, fieldMerklePath, r.MerklePath)
	b = appendBytes(b, fieldKeystoneOfProof, r.KeystoneOfProof)
	for _, p := range r.Publications {
		b = protowire.AppendTag(b, fieldPublication, protowire.BytesType)
		b = protowire.AppendBytes(b, marshalPublication(p))
	}
	b = appendString(b, fieldProofOfProofID, r.ProofOfProofID)
	b = appendString(b, fieldAltEndorsementBlockHash, r.AltEndorsementBlockHash)
	b = appendString(b, fieldPayoutBlockHash, r.PayoutBlockHash)
	if r.PayoutAmount != 0 {
		b = protowire.AppendTag(b, fieldPayoutAmount, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(r.PayoutAmount))
	}
	for _, c := range r.History {
		var cb []byte
		cb = appendString(cb, changeText, c.Text)
		cb = appendVarint(cb, changeTimestamp, uint64(c.Timestamp.Unix()))
		b = protowire.AppendTag(b, fieldChange, protowire.BytesType)
		b = protowire.AppendBytes(b, cb)
	}
	b = appendString(b, fieldFailureReason, r.FailureReason)
	b = appendString(b, fieldFailedFrom, string(r.FailedFrom))
	b = appendString(b, fieldState, string(r.State))
	if !r.CreatedAt.IsZero() {
		b = appendVarint(b, fieldCreatedAt, uint64(r.CreatedAt.Unix()))
	}
	return b, nil
}

// UnmarshalBinary decodes a record written by MarshalBinary.
func (r *Record) UnmarshalBinary(b []byte) error {
	*r = Record{}
	instruction := func() *model.MiningInstruction {
		if r.Instruction == nil {
			r.Instruction = &model.MiningInstruction{}
		}
		return r.Instruction
	}

	return consumeFields(b, func(num protowire.Number, typ protowire.Type, v []byte, u uint64) error {
		switch num {
		case fieldID:
			r.ID = string(v)
		case fieldChainID:
			r.ChainID = string(v)
		case fieldStatus:
			r.Status = Status(u)
		case fieldEndorsedHeight:
			instruction().EndorsedBlockHeight = int32(protowire.DecodeZigZag(u))
		case fieldPublicationData:
			instruction().PublicationData = v
		case fieldContext:
			instruction().Context = append(instruction().Context, v)
		case fieldBtcContext:
			instruction().BtcContext = append(instruction().BtcContext, v)
		case fieldEndorsementTxID:
			r.EndorsementTxID = string(v)
		case fieldBlockOfProof:
			r.BlockOfProof = v
		case fieldMerklePath:
			r.MerklePath = string(v)
		case fieldKeystoneOfProof:
			r.KeystoneOfProof = v
		case fieldPublication:
			p, err := unmarshalPublication(v)
			if err != nil {
				return fmt.Errorf("publication %d: %w", len(r.Publications), err)
			}
			r.Publications = append(r.Publications, p)
		case fieldProofOfProofID:
			r.ProofOfProofID = string(v)
		case fieldAltEndorsementBlockHash:
			r.AltEndorsementBlockHash = string(v)
		case fieldPayoutBlockHash:
			r.PayoutBlockHash = string(v)
		case fieldPayoutAmount:
			r.PayoutAmount = protowire.DecodeZigZag(u)
		case fieldChange:
			c, err := unmarshalChange(v)
			if err != nil {
				return fmt.Errorf("change %d: %w", len(r.History), err)
			}
			r.History = append(r.History, c)
		case fieldFailureReason:
			r.FailureReason = string(v)
		case fieldFailedFrom:
			r.FailedFrom = State(v)
		case fieldState:
			r.State = State(v)
		case fieldCreatedAt:
			r.CreatedAt = time.Unix(int64(u), 0).UTC()
		}
		return nil
	})
}

func marshalPublication(p model.Publication) []byte {
	var b []byte
	b = appendString(b, publicationTransactionID, p.TransactionID)
	b = appendString(b, publicationBlockHash, p.BlockHash)
	b = appendString(b, publicationMerklePath, p.MerklePath)
	b = appendBytes(b, publicationPayload, p.Payload)
	return b
}

func unmarshalPublication(b []byte) (model.Publication, error) {
	var p model.Publication
	err := consumeFields(b, func(num protowire.Number, _ protowire.Type, v []byte, _ uint64) error {
		switch num {
		case publicationTransactionID:
			p.TransactionID = string(v)
		case publicationBlockHash:
			p.BlockHash = string(v)
		case publicationMerklePath:
			p.MerklePath = string(v)
		case publicationPayload:
			p.Payload = v
		}
		return nil
	})
	return p, err
}

func unmarshalChange(b []byte) (Change, error) {
	var c Change
	err := consumeFields(b, func(num protowire.Number, _ protowire.Type, v []byte, u uint64) error {
		switch num {
		case changeText:
			c.Text = string(v)
		case changeTimestamp:
			c.Timestamp = time.Unix(int64(u), 0).UTC()
		}
		return nil
	})
	return c, err
}

// consumeFields walks b calling fn with either the copied bytes of a
// length-delimited field or the value of a varint field. Other wire types
// are skipped.
func consumeFields(b []byte, fn func(num protowire.Number, typ protowire.Type, v []byte, u uint64) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %w", ErrCorruptedRecord, protowire.ParseError(n))
		}
		b = b[n:]

		var (
			v []byte
			u uint64
		)
		switch typ {
		case protowire.BytesType:
			raw, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return fmt.Errorf("%w: field %d: %w", ErrCorruptedRecord, num, protowire.ParseError(m))
			}
			v = append([]byte{}, raw...)
			n = m
		case protowire.VarintType:
			u, n = protowire.ConsumeVarint(b)
			if n < 0 {
				return fmt.Errorf("%w: field %d: %w", ErrCorruptedRecord, num, protowire.ParseError(n))
			}
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return fmt.Errorf("%w: field %d: %w", ErrCorruptedRecord, num, protowire.ParseError(n))
			}
			b = b[n:]
			continue
		}
		b = b[n:]

		if err := fn(num, typ, v, u); err != nil {
			return err
		}
	}
	return nil
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if v == nil {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}
