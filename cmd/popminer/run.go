package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goodnatureofminers/popminer-backend/internal/metrics"
	"github.com/goodnatureofminers/popminer-backend/internal/pop/archive"
	"github.com/goodnatureofminers/popminer-backend/internal/pop/chain"
	"github.com/goodnatureofminers/popminer-backend/internal/pop/gateway"
	"github.com/goodnatureofminers/popminer-backend/internal/pop/merkle"
	"github.com/goodnatureofminers/popminer-backend/internal/pop/repository/bolt"
	"github.com/goodnatureofminers/popminer-backend/internal/pop/repository/clickhouse"
	"github.com/goodnatureofminers/popminer-backend/internal/pop/service"
	"github.com/goodnatureofminers/popminer-backend/internal/pop/tracker"
	"github.com/goodnatureofminers/popminer-backend/internal/transport"
	"github.com/goodnatureofminers/popminer-backend/pkg/batcher"
	"github.com/goodnatureofminers/popminer-backend/pkg/event"
)

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	params, err := chain.ParamsForNetwork(cfg.Network)
	if err != nil {
		return err
	}
	alts, err := parseAltChains(cfg.AltChains)
	if err != nil {
		return err
	}

	db, err := bolt.Open(cfg.BoltPath, cfg.BoltTimeout)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("close database", zap.Error(err))
		}
	}()
	blocks, err := bolt.NewBlockStore(db, params, params.PreviousBlockSize)
	if err != nil {
		return err
	}

	exec := event.NewOrdered(logger.Named("events"))
	exec.Start(ctx)
	defer exec.Stop()

	chainSync, err := chain.NewSynchronizer(params, blocks, metrics.NewSynchronizer(cfg.Network), logger.Named("synchronizer"), exec)
	if err != nil {
		return fmt.Errorf("init synchronizer: %w", err)
	}
	trk, err := tracker.New(merkle.DoubleSHA256, metrics.NewTracker(cfg.Network), logger.Named("tracker"), exec)
	if err != nil {
		return fmt.Errorf("init tracker: %w", err)
	}
	if cfg.WalletAddress != "" {
		trk.Track(cfg.WalletAddress)
	}
	if err := trk.Load(bolt.NewTransactionStore(db), chainSync); err != nil {
		return fmt.Errorf("restore wallet transactions: %w", err)
	}
	chainSync.OnNewBlock(trk, trk.OnNewBlock)
	chainSync.OnReorganized(trk, func(r chain.Reorg) {
		trk.OnReorg(r.Removed, r.Added)
	})

	referenceRPC, err := newRPCClient(cfg.ReferenceRPCURL, cfg.ReferenceRPCUser, cfg.ReferenceRPCPassword)
	if err != nil {
		return fmt.Errorf("init reference rpc client: %w", err)
	}
	defer shutdownRPCClient(referenceRPC)
	reference, err := gateway.NewReference(gateway.NewObservedClient(referenceRPC, metrics.NewReferenceRPC(cfg.Network)), params)
	if err != nil {
		return err
	}

	blockSignal, err := startBlockSignal(ctx, cfg.ReferenceZMQAddr, logger.Named("block_signal"))
	if err != nil {
		return fmt.Errorf("init block signal: %w", err)
	}
	referenceSync, err := service.NewReferenceSync(
		reference,
		chainSync,
		service.NewHealth("reference", 0),
		metrics.NewPoller("reference"),
		service.ReferenceSyncConfig{
			PollInterval:   cfg.PollInterval,
			BootstrapDepth: cfg.BootstrapDepth,
			Workers:        cfg.Workers,
		},
		logger.Named("reference_sync"),
		blockSignal,
	)
	if err != nil {
		return err
	}

	runners := []func(context.Context) error{referenceSync.Run}
	healthFlags := []transport.HealthFlag{referenceSync.Health()}
	altChains := make([]service.AltChain, 0, len(alts))
	for _, a := range alts {
		client, err := newRPCClient(a.URL, a.User, a.Password)
		if err != nil {
			return fmt.Errorf("init %s rpc client: %w", a.ID, err)
		}
		defer shutdownRPCClient(client)

		gw, err := gateway.NewAltChain(gateway.NewObservedClient(client, metrics.NewAltChainRPC(a.ID, cfg.Network)), a.ID, cfg.Network)
		if err != nil {
			return err
		}
		poller, err := service.NewAltChainPoller(gw, service.NewHealth(a.ID, 0), metrics.NewPoller(a.ID), cfg.PollInterval, logger.Named("alt_poller").With(zap.String("chain", a.ID)))
		if err != nil {
			return err
		}
		runners = append(runners, poller.Run)
		healthFlags = append(healthFlags, poller.Health())
		altChains = append(altChains, service.AltChain{Gateway: gw, Heights: poller})
	}

	miner, err := service.NewMiner(
		service.MinerConfig{
			PollInterval:        cfg.PollInterval,
			Workers:             cfg.Workers,
			PayoutAddress:       cfg.PayoutAddress,
			PayoutDelay:         cfg.PayoutDelay,
			AltConfirmations:    cfg.AltConfirmations,
			ConfirmationTimeout: cfg.ConfirmationTimeout,
			PublicationTimeout:  cfg.PublicationTimeout,
			AltTimeout:          cfg.AltTimeout,
		},
		params,
		reference,
		altChains,
		chainSync,
		trk,
		bolt.NewOperationStore(db),
		metrics.NewOperations(),
		logger.Named("miner"),
		exec,
	)
	if err != nil {
		return fmt.Errorf("init miner: %w", err)
	}

	if cfg.ClickhouseDSN != "" {
		repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, cfg.Network, metrics.NewArchiveStore())
		if err != nil {
			return fmt.Errorf("init repository: %w", err)
		}
		defer func() {
			if err := repo.Close(); err != nil {
				logger.Error("close repository", zap.Error(err))
			}
		}()
		archiver, err := archive.New(repo, cfg.Network, batcher.Config{Interval: cfg.PollInterval}, logger.Named("archive"))
		if err != nil {
			return err
		}
		archiver.Attach(chainSync, miner)
		defer archiver.Detach(chainSync, miner)
		runners = append(runners, archiver.Run)
	}

	if err := miner.Resume(); err != nil {
		return fmt.Errorf("resume operations: %w", err)
	}
	for id, err := range miner.Corrupted() {
		logger.Warn("operation record could not be restored", zap.String("operation", id), zap.Error(err))
	}
	runners = append(runners, miner.Run)

	status, err := transport.NewStatusHandler(miner, chainSync, logger.Named("rest"))
	if err != nil {
		return err
	}
	handler, err := transport.NewHTTPHandler(status)
	if err != nil {
		return err
	}
	health := transport.NewHealthServer(logger.Named("health"), healthFlags...)
	grpcServer := transport.NewGRPCServer(logger.Named("grpc"), health)
	runners = append(runners,
		func(ctx context.Context) error { return transport.ServeGRPC(ctx, grpcServer, cfg.GRPCAddr, logger) },
		func(ctx context.Context) error { return transport.ServeHTTP(ctx, handler, cfg.RestAddr, logger) },
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, r := range runners {
		g.Go(func() error { return r(gctx) })
	}

	logger.Info("popminer started",
		zap.String("network", string(cfg.Network)),
		zap.Int("alt_chains", len(altChains)),
		zap.Int("operations", len(miner.Operations())),
	)
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
