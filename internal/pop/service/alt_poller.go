package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/popminer-backend/internal/clock"
	"github.com/goodnatureofminers/popminer-backend/pkg/event"
)

// AltChainPoller follows the best height of one SI chain.
type AltChainPoller struct {
	logger   *zap.Logger
	gateway  AltGateway
	health   *Health
	metrics  PollMetrics
	interval time.Duration
	sleep    clock.SleepFunc

	height  atomic.Int32
	known   atomic.Bool
	changed *event.Registry[int32]
}

// NewAltChainPoller builds a poller for gateway.
func NewAltChainPoller(gateway AltGateway, health *Health, metrics PollMetrics, interval time.Duration, logger *zap.Logger) (*AltChainPoller, error) {
	if gateway == nil {
		return nil, errors.New("alt gateway is required")
	}
	if metrics == nil {
		return nil, errors.New("alt poller metrics is required")
	}
	if health == nil {
		health = NewHealth(gateway.ChainID(), defaultFailureThreshold)
	}
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &AltChainPoller{
		logger:   logger.With(zap.String("chain", gateway.ChainID())),
		gateway:  gateway,
		health:   health,
		metrics:  metrics,
		interval: interval,
		sleep:    clock.SleepWithContext,
		changed:  event.NewRegistry[int32](nil),
	}, nil
}

// Health returns the poller's health flag.
func (p *AltChainPoller) Health() *Health {
	return p.health
}

// BestHeight returns the last polled height; false until the first success.
func (p *AltChainPoller) BestHeight() (int32, bool) {
	if !p.known.Load() {
		return 0, false
	}
	return p.height.Load(), true
}

// OnHeight registers fn for height changes.
func (p *AltChainPoller) OnHeight(owner any, fn func(height int32)) {
	p.changed.Register(owner, fn)
}

// Run polls until the context is canceled.
func (p *AltChainPoller) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		started := time.Now()
		err := p.run(ctx)
		p.metrics.ObserveTick(err, started)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.health.Failure(err)
			p.logger.Warn("run iteration failed, backing off", zap.Error(err), zap.Duration("sleep", p.interval))
		} else {
			p.health.Success()
		}

		if err := p.sleep(ctx, p.interval); err != nil {
			return err
		}
	}
}

func (p *AltChainPoller) run(ctx context.Context) error {
	height, err := p.gateway.BestBlockHeight(ctx)
	if err != nil {
		return fmt.Errorf("fetch best height: %w", err)
	}

	previous := p.height.Swap(height)
	wasKnown := p.known.Swap(true)
	if !wasKnown || previous != height {
		p.logger.Debug("alt chain height changed", zap.Int32("height", height))
		p.changed.Emit(height)
	}
	return nil
}
