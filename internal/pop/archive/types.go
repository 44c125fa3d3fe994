package archive

import (
	"context"

	"github.com/goodnatureofminers/popminer-backend/internal/pop/chain"
	"github.com/goodnatureofminers/popminer-backend/internal/pop/model"
	"github.com/goodnatureofminers/popminer-backend/internal/pop/operation"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Repository interface {
		InsertBlocks(ctx context.Context, blocks []model.ArchivedBlock) error
		InsertOperationChanges(ctx context.Context, changes []model.OperationChange) error
	}
	ChainEvents interface {
		OnNewBlock(owner any, fn func(model.ChainBlock))
		OnReorganized(owner any, fn func(chain.Reorg))
		Unsubscribe(owner any)
	}
	OperationEvents interface {
		Subscribe(owner any, fn func(operation.Notification))
		Unsubscribe(owner any)
	}
)
