package transport

import (
	"encoding/hex"
	"time"

	"github.com/goodnatureofminers/popminer-backend/internal/pop/model"
	"github.com/goodnatureofminers/popminer-backend/internal/pop/operation"
)

type changeView struct {
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type operationView struct {
	ID              string       `json:"id"`
	ChainID         string       `json:"chain_id"`
	State           string       `json:"state"`
	Status          string       `json:"status"`
	EndorsedHeight  int32        `json:"endorsed_height,omitempty"`
	EndorsementTxID string       `json:"endorsement_tx_id,omitempty"`
	BlockOfProof    string       `json:"block_of_proof,omitempty"`
	KeystoneOfProof string       `json:"keystone_of_proof,omitempty"`
	ProofOfProofID  string       `json:"proof_of_proof_id,omitempty"`
	AltBlock        string       `json:"alt_block,omitempty"`
	PayoutBlockHash string       `json:"payout_block_hash,omitempty"`
	PayoutAmount    int64        `json:"payout_amount,omitempty"`
	FailedFrom      string       `json:"failed_from,omitempty"`
	FailureReason   string       `json:"failure_reason,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	History         []changeView `json:"history,omitempty"`
}

type blockView struct {
	Height        int32     `json:"height"`
	Hash          string    `json:"hash"`
	PreviousBlock string    `json:"previous_block"`
	Timestamp     time.Time `json:"timestamp"`
	Difficulty    uint32    `json:"difficulty"`
	Work          string    `json:"work"`
}

type mineRequest struct {
	ChainID string `json:"chain_id"`
	Height  int32  `json:"height"`
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

type errorView struct {
	Error string `json:"error"`
}

func newOperationView(s operation.Snapshot, withHistory bool) operationView {
	v := operationView{
		ID:              s.ID,
		ChainID:         s.ChainID,
		State:           string(s.State),
		Status:          s.Status.String(),
		ProofOfProofID:  s.ProofOfProofID,
		AltBlock:        s.AltEndorsementBlock,
		PayoutBlockHash: s.PayoutBlockHash,
		PayoutAmount:    s.PayoutAmount,
		FailedFrom:      string(s.FailedFrom),
		FailureReason:   s.FailureReason,
		CreatedAt:       s.CreatedAt,
	}
	if s.Instruction != nil {
		v.EndorsedHeight = s.Instruction.EndorsedBlockHeight
	}
	if s.EndorsementTxID != nil {
		v.EndorsementTxID = s.EndorsementTxID.String()
	}
	if s.BlockOfProof != nil {
		v.BlockOfProof = s.BlockOfProof.Hash.String()
	}
	if s.KeystoneOfProof != nil {
		v.KeystoneOfProof = s.KeystoneOfProof.Hash.String()
	}
	if withHistory {
		v.History = make([]changeView, 0, len(s.History))
		for _, c := range s.History {
			v.History = append(v.History, changeView{Text: c.Text, Timestamp: c.Timestamp})
		}
	}
	return v
}

func newBlockView(b *model.StoredBlock) blockView {
	v := blockView{
		Height:        b.Block.Height,
		Hash:          b.Block.Hash.String(),
		PreviousBlock: hex.EncodeToString(b.Block.PreviousBlock),
		Timestamp:     b.Block.Time(),
		Difficulty:    b.Block.Difficulty,
	}
	if b.Work != nil {
		v.Work = b.Work.String()
	}
	return v
}
