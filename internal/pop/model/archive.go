package model

import "time"

// BlockStatus describes the archived position of a block.
type BlockStatus string

var (
	// BlockBest marks a block on the best chain when archived.
	BlockBest BlockStatus = "best"
	// BlockOrphaned marks a block removed by a reorganization.
	BlockOrphaned BlockStatus = "orphaned"
)

// ArchivedBlock is a reference-chain header row in the analytics archive.
type ArchivedBlock struct {
	Network       Network
	Height        int32
	Hash          string
	PreviousBlock string
	Timestamp     time.Time
	Difficulty    uint32
	Status        BlockStatus
}

// OperationChange is one row of an operation's change history.
type OperationChange struct {
	OperationID string
	ChainID     string
	State       string
	Status      string
	Text        string
	Timestamp   time.Time
}
