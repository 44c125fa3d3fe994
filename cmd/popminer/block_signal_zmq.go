//go:build zmq

package main

import (
	"context"
	"fmt"
	"syscall"
	"time"

	"github.com/pebbe/zmq4"
	"go.uber.org/zap"
)

const (
	hashBlockTopic   = "hashblock"
	zmqRecvTimeout   = time.Second
	zmqFailurePause  = time.Second
	hashBlockMinimum = 2
)

// zmqBlockSignal turns bitcoind hashblock publications into wake-ups for the
// reference sync loop. Notifications coalesce; only "something changed"
// matters.
type zmqBlockSignal struct {
	socket *zmq4.Socket
	wake   chan struct{}
	logger *zap.Logger
}

func startBlockSignal(ctx context.Context, addr string, logger *zap.Logger) (<-chan struct{}, error) {
	if addr == "" {
		return nil, nil
	}

	socket, err := dialHashBlock(addr)
	if err != nil {
		return nil, fmt.Errorf("subscribe to %s: %w", addr, err)
	}

	s := &zmqBlockSignal{socket: socket, wake: make(chan struct{}, 1), logger: logger}
	go s.listen(ctx)

	logger.Info("subscribed to block notifications", zap.String("addr", addr))
	return s.wake, nil
}

func (s *zmqBlockSignal) listen(ctx context.Context) {
	defer s.socket.Close()

	for ctx.Err() == nil {
		frames, err := s.socket.RecvMessageBytes(0)
		switch {
		case err == nil:
		case zmq4.AsErrno(err) == zmq4.Errno(syscall.EAGAIN):
			continue
		default:
			s.logger.Warn("block notification receive failed", zap.Error(err))
			time.Sleep(zmqFailurePause)
			continue
		}

		if len(frames) < hashBlockMinimum {
			s.logger.Debug("ignoring short block notification", zap.Int("frames", len(frames)))
			continue
		}
		select {
		case s.wake <- struct{}{}:
		default:
		}
	}
}

func dialHashBlock(addr string) (*zmq4.Socket, error) {
	socket, err := zmq4.NewSocket(zmq4.SUB)
	if err != nil {
		return nil, err
	}

	setup := []func() error{
		func() error { return socket.SetSubscribe(hashBlockTopic) },
		func() error { return socket.SetRcvtimeo(zmqRecvTimeout) },
		func() error { return socket.Connect(addr) },
	}
	for _, step := range setup {
		if err := step(); err != nil {
			socket.Close()
			return nil, err
		}
	}
	return socket, nil
}
