package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/popminer-backend/internal/pop/model"
)

const insertOperationChangesQuery = `
INSERT INTO popminer_operation_changes (
	network,
	operation_id,
	chain_id,
	state,
	status,
	text,
	timestamp
) VALUES`

// InsertOperationChanges appends operation history rows.
func (r *Repository) InsertOperationChanges(ctx context.Context, changes []model.OperationChange) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_operation_changes", r.network, err, start)
	}()

	if len(changes) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertOperationChangesQuery)
	if err != nil {
		return fmt.Errorf("prepare operation changes batch: %w", err)
	}

	for _, change := range changes {
		if err = batch.Append(
			string(r.network),
			change.OperationID,
			change.ChainID,
			change.State,
			change.Status,
			change.Text,
			change.Timestamp,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append operation change: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert operation changes: %w", err)
	}
	return nil
}
