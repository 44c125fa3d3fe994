// Package model defines the domain models of the proof-of-proof miner.
package model

// Network names a reference-chain deployment.
type Network string

var (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
	Regtest Network = "regtest"
)
