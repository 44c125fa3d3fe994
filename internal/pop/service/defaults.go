package service

import "time"

const (
	defaultPollInterval     = 5 * time.Second
	defaultFailureThreshold = 3
	defaultBootstrapDepth   = 200
	defaultWorkerCount      = 8
	defaultAltConfirmations = 1
	defaultPayoutDelay      = 50
	defaultStageTimeout     = 2 * time.Hour
	maxStepsPerTick         = 16
	operationIDBytes        = 8
)
