// Package transport exposes the miner over gRPC and HTTP.
package transport

import (
	"context"

	"github.com/goodnatureofminers/popminer-backend/internal/pop/model"
	"github.com/goodnatureofminers/popminer-backend/internal/pop/operation"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Miner interface {
		Mine(ctx context.Context, chainID string, height int32) (*operation.Operation, error)
		Cancel(id, reason string) error
		Operation(id string) (*operation.Operation, bool)
		Operations() []*operation.Operation
	}
	ChainHead interface {
		ChainHead() *model.StoredBlock
	}
	// HealthFlag is a named health state that reports its flips.
	HealthFlag interface {
		Name() string
		Healthy() bool
		OnChange(owner any, fn func(healthy bool))
	}
)
