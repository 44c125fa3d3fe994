package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/popminer-backend/internal/pop/model"
)

const insertBlocksQuery = `
INSERT INTO popminer_blocks (
	network,
	height,
	hash,
	previous_block,
	timestamp,
	difficulty,
	status
) VALUES`

// InsertBlocks stores reference-chain header rows. A later row for the same
// hash replaces the earlier status.
func (r *Repository) InsertBlocks(ctx context.Context, blocks []model.ArchivedBlock) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_blocks", r.network, err, start)
	}()

	if len(blocks) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertBlocksQuery)
	if err != nil {
		return fmt.Errorf("prepare blocks batch: %w", err)
	}

	for _, block := range blocks {
		if err = batch.Append(
			string(block.Network),
			block.Height,
			block.Hash,
			block.PreviousBlock,
			block.Timestamp,
			block.Difficulty,
			string(block.Status),
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append block: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert blocks: %w", err)
	}
	return nil
}
