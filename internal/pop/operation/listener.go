package operation

import (
	"github.com/goodnatureofminers/popminer-backend/internal/pop/model"
)

// ReasonReorganized is the failure reason when the endorsement transaction
// drops out of the best chain after it was confirmed.
const ReasonReorganized = "chain reorganized"

func (o *Operation) onTransactionState(meta model.TransactionMeta) {
	state := o.State()
	if state.Terminal() {
		return
	}

	switch meta.State {
	case model.StatePending:
		if state.Order() > StateEndorsementTransaction.Order() {
			_ = o.Fail(ReasonReorganized)
		}
	case model.StateConfirmed:
		if state == StateEndorsementTransaction {
			_ = o.SetConfirmed()
		}
	}
}
