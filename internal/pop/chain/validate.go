package chain

import (
	"bytes"
	"fmt"
	"math"
	"math/big"
	"sort"
	"time"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/popminer-backend/internal/pop/merkle"
	"github.com/goodnatureofminers/popminer-backend/internal/pop/model"
)

// checkHeader runs the context-free checks and returns the recomputed hash.
func (s *Synchronizer) checkHeader(block model.ChainBlock) (chainhash.Hash, error) {
	if block.Height < 0 {
		return chainhash.Hash{}, fmt.Errorf("%w: negative height %d", ErrMalformedHeader, block.Height)
	}

	hash, err := s.params.BlockHash(block)
	if err != nil {
		return chainhash.Hash{}, err
	}
	if block.Hash != (chainhash.Hash{}) && block.Hash != hash {
		return chainhash.Hash{}, fmt.Errorf("%w: declared hash %s, computed %s", ErrMalformedHeader, block.Hash, hash)
	}

	target := blockchain.CompactToBig(block.Difficulty)
	if target.Sign() <= 0 {
		return chainhash.Hash{}, fmt.Errorf("%w: difficulty %08x encodes a non-positive target", ErrMalformedHeader, block.Difficulty)
	}
	if target.Cmp(s.params.PowLimit) > 0 {
		return chainhash.Hash{}, fmt.Errorf("%w: difficulty %08x above the proof-of-work limit", ErrMalformedHeader, block.Difficulty)
	}

	if len(block.Transactions) > 0 {
		root := model.Truncate(merkle.Root(block.TransactionIDs()), s.params.MerkleRootSize)
		if !bytes.Equal(root, block.MerkleRoot) {
			return chainhash.Hash{}, fmt.Errorf("%w: transactions hash to merkle root %x, header has %x", ErrMalformedHeader, root, block.MerkleRoot)
		}
	}
	return hash, nil
}

// contextDepth is the number of ancestors the contextual checks may read.
func (s *Synchronizer) contextDepth(height int32) int {
	_, second := KeystoneHeights(height, s.params.KeystonePeriod)
	depth := 0
	if second >= 0 {
		depth = int(height - second)
	} else if prev, _ := KeystoneHeights(height, s.params.KeystonePeriod); prev >= 0 {
		depth = int(height - prev)
	}
	if s.params.MedianTimeBlocks > depth {
		depth = s.params.MedianTimeBlocks
	}
	if s.params.RetargetWindow+1 > depth {
		depth = s.params.RetargetWindow + 1
	}
	return depth
}

// checkKeystones compares the declared keystone references with the
// ancestors at the keystone heights. References that point below the oldest
// stored ancestor cannot be resolved yet and are accepted.
func (s *Synchronizer) checkKeystones(block model.ChainBlock, ancestors []*model.StoredBlock) error {
	previous, second := KeystoneHeights(block.Height, s.params.KeystonePeriod)
	refs := []struct {
		height   int32
		declared []byte
	}{
		{previous, block.PreviousKeystone},
		{second, block.SecondPreviousKeystone},
	}

	parentHeight := block.Height - 1
	for _, ref := range refs {
		if ref.height < 0 {
			continue
		}
		distance := int(parentHeight - ref.height)
		if distance >= len(ancestors) {
			s.logger.Debug("keystone reference not resolvable yet",
				zap.Int32("height", block.Height),
				zap.Int32("keystone_height", ref.height),
			)
			continue
		}
		ancestor := ancestors[distance]
		if !bytes.Equal(model.Truncate(ancestor.Hash(), s.params.KeystoneSize), ref.declared) {
			return fmt.Errorf("%w: block at height %d references keystone %x at height %d, found %s",
				ErrBadKeystone, block.Height, ref.declared, ref.height, ancestor.Hash())
		}
	}
	return nil
}

// checkMedianTime rejects timestamps at or before the median of the most
// recent ancestors once enough of them are known.
func (s *Synchronizer) checkMedianTime(block model.ChainBlock, ancestors []*model.StoredBlock) error {
	n := s.params.MedianTimeBlocks
	if n <= 0 || len(ancestors) < n {
		return nil
	}

	timestamps := make([]int32, n)
	for i := 0; i < n; i++ {
		timestamps[i] = ancestors[i].Block.Timestamp
	}
	sort.Slice(timestamps, func(i, j int) bool { return timestamps[i] < timestamps[j] })
	median := timestamps[n/2]

	if block.Timestamp <= median {
		return fmt.Errorf("%w: block timestamp %v is not after median time %v",
			ErrTimeTooOld, block.Time(), time.Unix(int64(median), 0).UTC())
	}
	return nil
}

// checkDifficulty recomputes the target over a full retarget window.
func (s *Synchronizer) checkDifficulty(block model.ChainBlock, ancestors []*model.StoredBlock) error {
	window := s.params.RetargetWindow
	if window <= 0 || len(ancestors) < window+1 {
		return nil
	}

	expected := s.params.requiredDifficulty(ancestors[:window+1])
	if block.Difficulty != expected {
		return fmt.Errorf("%w: block difficulty %08x, expected %08x", ErrUnexpectedDifficulty, block.Difficulty, expected)
	}
	return nil
}

// requiredDifficulty averages the targets of the newest RetargetWindow
// blocks and scales by the observed timespan of the window+1 blocks:
// averageTarget * (maxTime - minTime) / (targetTimePerBlock * window).
func (p *Params) requiredDifficulty(timestampsWindow []*model.StoredBlock) uint32 {
	minTimestamp, maxTimestamp := int64(math.MaxInt64), int64(math.MinInt64)
	for _, b := range timestampsWindow {
		ts := int64(b.Block.Timestamp)
		if ts < minTimestamp {
			minTimestamp = ts
		}
		if ts > maxTimestamp {
			maxTimestamp = ts
		}
	}

	targetsWindow := timestampsWindow[:p.RetargetWindow]
	newTarget := new(big.Int)
	for _, b := range targetsWindow {
		newTarget.Add(newTarget, blockchain.CompactToBig(b.Block.Difficulty))
	}
	newTarget.Div(newTarget, big.NewInt(int64(len(targetsWindow))))

	newTarget.
		Mul(newTarget, big.NewInt(maxTimestamp-minTimestamp)).
		Div(newTarget, big.NewInt(p.targetSeconds())).
		Div(newTarget, big.NewInt(int64(p.RetargetWindow)))
	if newTarget.Cmp(p.PowLimit) > 0 {
		return p.PowLimitBits
	}
	return blockchain.BigToCompact(newTarget)
}

func (p *Params) targetSeconds() int64 {
	if s := int64(p.TargetTimePerBlock / time.Second); s > 0 {
		return s
	}
	return 1
}
