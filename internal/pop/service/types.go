package service

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/popminer-backend/internal/pop/chain"
	"github.com/goodnatureofminers/popminer-backend/internal/pop/model"
	"github.com/goodnatureofminers/popminer-backend/internal/pop/operation"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	ReferenceGateway interface {
		LastBlock(ctx context.Context) (model.ChainBlock, error)
		BlockByHeight(ctx context.Context, height int32) (model.ChainBlock, error)
		ChangesSince(ctx context.Context, hash chainhash.Hash) (removed, added []model.ChainBlock, err error)
		SubmitTransaction(ctx context.Context, payload []byte) (model.Transaction, error)
		PublicationsFor(ctx context.Context, keystone chainhash.Hash, altContext, btcContext [][]byte) ([]model.Publication, error)
	}
	AltGateway interface {
		ChainID() string
		BestBlockHeight(ctx context.Context) (int32, error)
		BlockByHeight(ctx context.Context, height int32) (model.AltBlock, error)
		Transaction(ctx context.Context, txID string) (model.AltTransaction, error)
		MiningInstruction(ctx context.Context, height int32) (model.MiningInstruction, error)
		Submit(ctx context.Context, altContext [][]byte, endorsements []model.Endorsement, publications []model.Publication) (string, error)
	}
	HeightSource interface {
		BestHeight() (int32, bool)
	}
	Synchronizer interface {
		ChainHead() *model.StoredBlock
		Get(hash chainhash.Hash) (*model.StoredBlock, error)
		GetByHeight(height int32) (*model.StoredBlock, error)
		Add(block model.ChainBlock) error
		Reconcile(removed, added []model.ChainBlock) chain.ReconcileResult
	}
	Tracker interface {
		Track(address string)
		Commit(tx model.Transaction)
		IsConfirmed(txID chainhash.Hash, threshold int) bool
		Transaction(txID chainhash.Hash) (model.WalletTransaction, bool)
		Subscribe(txID chainhash.Hash, owner any, fn func(model.TransactionMeta))
		Unsubscribe(txID chainhash.Hash, owner any)
	}
	OperationStore interface {
		Put(id string, data []byte) error
		ForEach(fn func(id string, data []byte) error) error
	}
	PollMetrics interface {
		ObserveTick(err error, started time.Time)
	}
	OperationMetrics interface {
		ObserveTransition(chainID string, state operation.State)
		ObserveRestore(err error)
		SetRunning(n int)
	}
)
