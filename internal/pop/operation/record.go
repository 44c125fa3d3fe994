package operation

import (
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/popminer-backend/internal/pop/model"
)

// Record is the persisted form of an operation. Fields are optional and
// populated as far as the operation got.
type Record struct {
	ID                      string
	ChainID                 string
	Status                  Status
	State                   State
	Instruction             *model.MiningInstruction
	EndorsementTxID         string
	BlockOfProof            []byte
	MerklePath              string
	KeystoneOfProof         []byte
	Publications            []model.Publication
	ProofOfProofID          string
	AltEndorsementBlockHash string
	PayoutBlockHash         string
	PayoutAmount            int64
	FailedFrom              State
	FailureReason           string
	CreatedAt               time.Time
	History                 []Change
}

// Record captures the operation for persistence. Headers are serialized with codec.
func (o *Operation) Record(codec HeaderCodec) (Record, error) {
	s := o.Snapshot()

	rec := Record{
		ID:                      s.ID,
		ChainID:                 s.ChainID,
		Status:                  s.Status,
		State:                   s.State,
		Instruction:             s.Instruction,
		Publications:            s.Publications,
		ProofOfProofID:          s.ProofOfProofID,
		AltEndorsementBlockHash: s.AltEndorsementBlock,
		PayoutBlockHash:         s.PayoutBlockHash,
		PayoutAmount:            s.PayoutAmount,
		FailedFrom:              s.FailedFrom,
		FailureReason:           s.FailureReason,
		CreatedAt:               s.CreatedAt,
		History:                 s.History,
	}
	if s.EndorsementTxID != nil {
		rec.EndorsementTxID = s.EndorsementTxID.String()
	}
	if s.MerklePath != nil {
		rec.MerklePath = s.MerklePath.String()
	}

	var err error
	if s.BlockOfProof != nil {
		if rec.BlockOfProof, err = codec.EncodeHeader(*s.BlockOfProof); err != nil {
			return Record{}, fmt.Errorf("encode block of proof: %w", err)
		}
	}
	if s.KeystoneOfProof != nil {
		if rec.KeystoneOfProof, err = codec.EncodeHeader(*s.KeystoneOfProof); err != nil {
			return Record{}, fmt.Errorf("encode keystone of proof: %w", err)
		}
	}
	return rec, nil
}

// Restore rebuilds an operation by replaying its setters in pipeline order
// with notifications and history suppressed. The tracker is not attached;
// call AttachTracker on the result to resume watching the transaction.
func Restore(rec Record, codec HeaderCodec, opts ...Option) (*Operation, error) {
	target := rec.State
	if target == "" {
		target = rec.inferState()
	}
	if target == StateFailed {
		target = rec.FailedFrom
	}
	if target.Order() < 0 {
		return nil, fmt.Errorf("%w: operation %s: unknown state %q", ErrCorruptedRecord, rec.ID, target)
	}

	o, err := New(rec.ID, rec.ChainID, opts...)
	if err != nil {
		return nil, err
	}
	o.restoring = true
	o.createdAt = rec.CreatedAt

	steps := []struct {
		state State
		apply func() error
	}{
		{StateInstruction, func() error {
			if rec.Instruction == nil {
				return errors.New("mining instruction missing")
			}
			return o.SetMiningInstruction(*rec.Instruction)
		}},
		{StateEndorsementTransaction, func() error {
			id, err := chainhash.NewHashFromStr(rec.EndorsementTxID)
			if err != nil {
				return fmt.Errorf("endorsement transaction id: %w", err)
			}
			return o.SetTransaction(model.Transaction{ID: *id})
		}},
		{StateConfirmed, o.SetConfirmed},
		{StateBlockOfProof, func() error {
			block, err := codec.DecodeHeader(rec.BlockOfProof)
			if err != nil {
				return fmt.Errorf("block of proof: %w", err)
			}
			return o.SetBlockOfProof(block)
		}},
		{StateTransactionProved, func() error {
			path, err := model.ParseMerklePath(rec.MerklePath)
			if err != nil {
				return err
			}
			return o.SetMerklePath(path)
		}},
		{StateKeystoneOfProof, func() error {
			block, err := codec.DecodeHeader(rec.KeystoneOfProof)
			if err != nil {
				return fmt.Errorf("keystone of proof: %w", err)
			}
			return o.SetKeystoneOfProof(block)
		}},
		{StatePublications, func() error { return o.SetPublications(rec.Publications) }},
		{StateSubmittedPopData, func() error { return o.SetProofOfProofID(rec.ProofOfProofID) }},
		{StateAltTxConfirmed, o.SetAltTxConfirmed},
		{StateAltBlockConfirmed, func() error { return o.SetAltBlockConfirmed(rec.AltEndorsementBlockHash) }},
		{StateCompleted, func() error { return o.Complete(rec.PayoutBlockHash, rec.PayoutAmount) }},
	}

	for _, step := range steps {
		if step.state.Order() > target.Order() {
			break
		}
		if err := step.apply(); err != nil {
			return nil, fmt.Errorf("%w: operation %s at %s: %w", ErrCorruptedRecord, rec.ID, step.state, err)
		}
	}
	if rec.Status == StatusFailed || rec.State == StateFailed {
		if err := o.Fail(rec.FailureReason); err != nil {
			return nil, fmt.Errorf("%w: operation %s: %w", ErrCorruptedRecord, rec.ID, err)
		}
	}

	o.mu.Lock()
	o.history = append([]Change(nil), rec.History...)
	o.restoring = false
	o.mu.Unlock()
	return o, nil
}

// inferState picks the furthest stage whose data the record carries.
func (r Record) inferState() State {
	switch {
	case r.Status == StatusCompleted:
		return StateCompleted
	case r.AltEndorsementBlockHash != "":
		return StateAltBlockConfirmed
	case r.ProofOfProofID != "":
		return StateSubmittedPopData
	case r.Publications != nil:
		return StatePublications
	case r.KeystoneOfProof != nil:
		return StateKeystoneOfProof
	case r.MerklePath != "":
		return StateTransactionProved
	case r.BlockOfProof != nil:
		return StateBlockOfProof
	case r.EndorsementTxID != "":
		return StateEndorsementTransaction
	case r.Instruction != nil:
		return StateInstruction
	default:
		return StateInitial
	}
}
