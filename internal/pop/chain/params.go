package chain

import (
	"fmt"
	"math/big"
	"time"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/popminer-backend/internal/pop/model"
)

var bigOne = big.NewInt(1)

// Params defines the consensus rules of a reference chain.
type Params struct {
	Network model.Network

	// KeystonePeriod is the distance between keystone blocks.
	KeystonePeriod int32
	// MedianTimeBlocks is the number of ancestors used for median-time-past.
	MedianTimeBlocks int

	PreviousBlockSize int
	KeystoneSize      int
	MerkleRootSize    int

	PowLimit     *big.Int
	PowLimitBits uint32
	// RetargetWindow is the number of blocks averaged when recomputing the
	// target. Zero disables the difficulty check.
	RetargetWindow     int
	TargetTimePerBlock time.Duration

	// HashHeader hashes a serialized header.
	HashHeader func([]byte) chainhash.Hash
}

func newParams(network model.Network, powLimit *big.Int, window int, spacing time.Duration) *Params {
	return &Params{
		Network:            network,
		KeystonePeriod:     20,
		MedianTimeBlocks:   20,
		PreviousBlockSize:  12,
		KeystoneSize:       9,
		MerkleRootSize:     16,
		PowLimit:           powLimit,
		PowLimitBits:       blockchain.BigToCompact(powLimit),
		RetargetWindow:     window,
		TargetTimePerBlock: spacing,
		HashHeader:         chainhash.DoubleHashH,
	}
}

var (
	// MainNetParams are the production reference chain rules.
	MainNetParams = newParams(model.Mainnet, new(big.Int).Sub(new(big.Int).Lsh(bigOne, 224), bigOne), 100, 30*time.Second)
	// TestNetParams relax the proof-of-work limit.
	TestNetParams = newParams(model.Testnet, new(big.Int).Sub(new(big.Int).Lsh(bigOne, 240), bigOne), 100, 30*time.Second)
	// RegTestParams disable retargeting for local networks.
	RegTestParams = newParams(model.Regtest, new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), bigOne), 0, time.Second)
)

// ParamsForNetwork returns the rules for network.
func ParamsForNetwork(network model.Network) (*Params, error) {
	switch network {
	case model.Mainnet:
		return MainNetParams, nil
	case model.Testnet:
		return TestNetParams, nil
	case model.Regtest:
		return RegTestParams, nil
	default:
		return nil, fmt.Errorf("unsupported network %q", network)
	}
}

// KeystoneHeights returns the heights of the previous and second previous
// keystones a block at height must reference. Negative heights do not exist.
func KeystoneHeights(height, period int32) (previous, second int32) {
	offset := height % period
	previous = height - offset
	if offset <= 1 {
		previous -= period
	}
	return previous, previous - period
}
