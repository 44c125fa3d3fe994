package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/popminer-backend/internal/pop/merkle"
	"github.com/goodnatureofminers/popminer-backend/internal/pop/model"
	"github.com/goodnatureofminers/popminer-backend/internal/pop/operation"
)

// reasonNoInstruction fails operations stored before their instruction was fetched.
const reasonNoInstruction = "mining instruction was never fetched"

// advance moves op forward until it has to wait on something.
func (m *Miner) advance(ctx context.Context, op *operation.Operation) error {
	for i := 0; i < maxStepsPerTick; i++ {
		s := op.Snapshot()
		if s.State.Terminal() {
			return nil
		}
		if m.expire(op, s) {
			return nil
		}

		progressed, err := m.step(ctx, op, s)
		if err != nil {
			return fmt.Errorf("operation %s at %s: %w", s.ID, s.State, err)
		}
		if !progressed {
			return nil
		}
	}
	return nil
}

func (m *Miner) step(ctx context.Context, op *operation.Operation, s operation.Snapshot) (bool, error) {
	alt, ok := m.alts[s.ChainID]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownChain, s.ChainID)
	}

	switch s.State {
	case operation.StateInitial:
		return true, op.Fail(reasonNoInstruction)
	case operation.StateInstruction:
		return m.submitEndorsement(ctx, op, s)
	case operation.StateEndorsementTransaction:
		return m.checkConfirmed(op, s)
	case operation.StateConfirmed:
		return m.findBlockOfProof(op, s)
	case operation.StateBlockOfProof:
		return m.proveTransaction(op, s)
	case operation.StateTransactionProved:
		return m.findKeystone(op, s)
	case operation.StateKeystoneOfProof:
		return m.fetchPublications(ctx, op, s)
	case operation.StatePublications:
		return m.submitProofOfProof(ctx, op, s, alt)
	case operation.StateSubmittedPopData:
		return m.checkAltTransaction(ctx, op, s, alt)
	case operation.StateAltTxConfirmed:
		return m.checkAltBlock(ctx, op, s, alt)
	case operation.StateAltBlockConfirmed:
		return m.payout(ctx, op, s, alt)
	default:
		return false, nil
	}
}

func (m *Miner) submitEndorsement(ctx context.Context, op *operation.Operation, s operation.Snapshot) (bool, error) {
	tx, err := m.reference.SubmitTransaction(ctx, s.Instruction.PublicationData)
	if err != nil {
		return false, fmt.Errorf("submit endorsement: %w", err)
	}
	m.tracker.Commit(tx)
	if err := op.SetTransaction(tx); err != nil {
		return false, err
	}
	return true, nil
}

// checkConfirmed catches confirmations that happened before the operation
// subscribed to the tracker.
func (m *Miner) checkConfirmed(op *operation.Operation, s operation.Snapshot) (bool, error) {
	if !m.tracker.IsConfirmed(*s.EndorsementTxID, 1) {
		return false, nil
	}
	if err := op.SetConfirmed(); err != nil && !operation.IsInvalidTransition(err) {
		return false, err
	}
	return true, nil
}

func (m *Miner) findBlockOfProof(op *operation.Operation, s operation.Snapshot) (bool, error) {
	wt, ok := m.tracker.Transaction(*s.EndorsementTxID)
	if !ok || wt.Meta.State != model.StateConfirmed || wt.Meta.AppearsInBestChainBlock == nil {
		return false, nil
	}
	stored, err := m.sync.Get(*wt.Meta.AppearsInBestChainBlock)
	if err != nil {
		return false, fmt.Errorf("load block of proof: %w", err)
	}
	if stored == nil {
		return false, nil
	}
	if err := op.SetBlockOfProof(stored.Block); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Miner) proveTransaction(op *operation.Operation, s operation.Snapshot) (bool, error) {
	wt, ok := m.tracker.Transaction(*s.EndorsementTxID)
	if !ok || wt.MerklePath == nil {
		return false, nil
	}
	if !merkle.VerifyTruncated(*wt.MerklePath, s.BlockOfProof.MerkleRoot) {
		return false, fmt.Errorf("%w: transaction %s in block %s", ErrProofMismatch, s.EndorsementTxID, s.BlockOfProof.Hash)
	}
	if err := op.SetMerklePath(*wt.MerklePath); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Miner) findKeystone(op *operation.Operation, s operation.Snapshot) (bool, error) {
	height := s.BlockOfProof.Height - s.BlockOfProof.Height%m.params.KeystonePeriod
	keystone, err := m.sync.GetByHeight(height)
	if err != nil {
		return false, fmt.Errorf("load keystone at height %d: %w", height, err)
	}
	if keystone == nil {
		m.logger.Debug("keystone of proof not in best chain yet", zap.String("operation", s.ID), zap.Int32("height", height))
		return false, nil
	}
	if err := op.SetKeystoneOfProof(keystone.Block); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Miner) fetchPublications(ctx context.Context, op *operation.Operation, s operation.Snapshot) (bool, error) {
	pubs, err := m.reference.PublicationsFor(ctx, s.KeystoneOfProof.Hash, s.Instruction.Context, s.Instruction.BtcContext)
	if err != nil {
		return false, fmt.Errorf("fetch publications: %w", err)
	}
	if err := op.SetPublications(pubs); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Miner) submitProofOfProof(ctx context.Context, op *operation.Operation, s operation.Snapshot, alt AltChain) (bool, error) {
	blockOfProof, err := m.params.EncodeHeader(*s.BlockOfProof)
	if err != nil {
		return false, fmt.Errorf("encode block of proof: %w", err)
	}
	endorsement := model.Endorsement{
		TransactionID:   s.EndorsementTxID.String(),
		BlockOfProof:    blockOfProof,
		MerklePath:      s.MerklePath.String(),
		PublicationData: s.Instruction.PublicationData,
	}

	id, err := alt.Gateway.Submit(ctx, s.Instruction.Context, []model.Endorsement{endorsement}, s.Publications)
	if err != nil {
		return false, fmt.Errorf("submit proof of proof: %w", err)
	}
	if err := op.SetProofOfProofID(id); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Miner) checkAltTransaction(ctx context.Context, op *operation.Operation, s operation.Snapshot, alt AltChain) (bool, error) {
	tx, err := alt.Gateway.Transaction(ctx, s.ProofOfProofID)
	if err != nil {
		return false, fmt.Errorf("fetch proof of proof transaction: %w", err)
	}
	if !tx.Included() || tx.Confirmations < m.cfg.AltConfirmations {
		return false, nil
	}
	if err := op.SetAltTxConfirmed(); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Miner) checkAltBlock(ctx context.Context, op *operation.Operation, s operation.Snapshot, alt AltChain) (bool, error) {
	tx, err := alt.Gateway.Transaction(ctx, s.ProofOfProofID)
	if err != nil {
		return false, fmt.Errorf("fetch proof of proof transaction: %w", err)
	}
	if !tx.Included() {
		return false, nil
	}
	if err := op.SetAltBlockConfirmed(tx.BlockHash); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Miner) payout(ctx context.Context, op *operation.Operation, s operation.Snapshot, alt AltChain) (bool, error) {
	payoutHeight := s.Instruction.EndorsedBlockHeight + m.cfg.PayoutDelay
	best, err := m.bestHeight(ctx, alt)
	if err != nil {
		return false, err
	}
	if best < payoutHeight {
		return false, nil
	}

	block, err := alt.Gateway.BlockByHeight(ctx, payoutHeight)
	if err != nil {
		return false, fmt.Errorf("fetch payout block at height %d: %w", payoutHeight, err)
	}
	if err := op.Complete(block.Hash, block.PayoutTo(m.cfg.PayoutAddress)); err != nil {
		return false, err
	}
	return true, nil
}

// expire fails op when it has waited in its current stage longer than allowed.
func (m *Miner) expire(op *operation.Operation, s operation.Snapshot) bool {
	timeout := m.stageTimeout(s.State)
	if timeout <= 0 {
		return false
	}

	since := s.CreatedAt
	if n := len(s.History); n > 0 {
		since = s.History[n-1].Timestamp
	}
	if m.clock.Now().Sub(since) <= timeout {
		return false
	}

	reason := fmt.Sprintf("%s timed out after %s", s.State, timeout)
	if err := op.Fail(reason); err != nil {
		m.logger.Warn("fail expired operation", zap.String("operation", s.ID), zap.Error(err))
	}
	return true
}

func (m *Miner) stageTimeout(state operation.State) time.Duration {
	switch state {
	case operation.StateEndorsementTransaction, operation.StateConfirmed, operation.StateBlockOfProof:
		return m.cfg.ConfirmationTimeout
	case operation.StateTransactionProved, operation.StateKeystoneOfProof, operation.StatePublications:
		return m.cfg.PublicationTimeout
	case operation.StateSubmittedPopData, operation.StateAltTxConfirmed:
		return m.cfg.AltTimeout
	default:
		return 0
	}
}
