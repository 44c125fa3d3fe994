package gateway

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/popminer-backend/internal/pop/model"
)

// Reference chain node methods.
const (
	methodLastBlock         = "getlastblock"
	methodBlockByHeight     = "getblockbyheight"
	methodBlockByHash       = "getblockbyhash"
	methodChangesSince      = "getchangessince"
	methodSubmitTransaction = "submittransaction"
	methodPublications      = "getpublications"
)

type (
	referenceBlock struct {
		Header       string                 `json:"header"`
		Transactions []referenceTransaction `json:"tx,omitempty"`
	}
	referenceTransaction struct {
		TxID   string            `json:"txid"`
		Source string            `json:"source,omitempty"`
		Vout   []referenceOutput `json:"vout,omitempty"`
		Hex    string            `json:"hex,omitempty"`
	}
	referenceOutput struct {
		Address string `json:"address"`
		Amount  int64  `json:"amount"`
	}
	referenceChanges struct {
		Removed []referenceBlock `json:"removed"`
		Added   []referenceBlock `json:"added"`
	}
	referencePublication struct {
		TxID       string `json:"txid"`
		BlockHash  string `json:"blockhash"`
		MerklePath string `json:"merklepath"`
		Payload    string `json:"payload"`
	}
)

// Reference talks to a reference-chain node over JSON-RPC.
type Reference struct {
	rpc   RPCClient
	codec HeaderDecoder
}

// NewReference creates a reference-chain gateway. Headers are decoded with codec.
func NewReference(rpc RPCClient, codec HeaderDecoder) (*Reference, error) {
	if rpc == nil {
		return nil, fmt.Errorf("reference rpc client is required")
	}
	if codec == nil {
		return nil, fmt.Errorf("reference header codec is required")
	}
	return &Reference{rpc: rpc, codec: codec}, nil
}

// LastBlock returns the node's best block.
func (g *Reference) LastBlock(ctx context.Context) (model.ChainBlock, error) {
	var res referenceBlock
	if err := call(ctx, g.rpc, methodLastBlock, &res); err != nil {
		return model.ChainBlock{}, err
	}
	return g.block(res)
}

// BlockByHeight returns the node's best-chain block at height.
func (g *Reference) BlockByHeight(ctx context.Context, height int32) (model.ChainBlock, error) {
	var res referenceBlock
	if err := call(ctx, g.rpc, methodBlockByHeight, &res, height); err != nil {
		return model.ChainBlock{}, err
	}
	return g.block(res)
}

// BlockByHash returns the block with the given hash.
func (g *Reference) BlockByHash(ctx context.Context, hash chainhash.Hash) (model.ChainBlock, error) {
	var res referenceBlock
	if err := call(ctx, g.rpc, methodBlockByHash, &res, hash.String()); err != nil {
		return model.ChainBlock{}, err
	}
	return g.block(res)
}

// ChangesSince lists the blocks that left and joined the node's best chain
// after the block with the given hash. Removed blocks are ordered tip first,
// added blocks lowest first.
func (g *Reference) ChangesSince(ctx context.Context, hash chainhash.Hash) (removed, added []model.ChainBlock, err error) {
	var res referenceChanges
	if err := call(ctx, g.rpc, methodChangesSince, &res, hash.String()); err != nil {
		return nil, nil, err
	}
	if removed, err = g.blocks(res.Removed); err != nil {
		return nil, nil, fmt.Errorf("removed blocks: %w", err)
	}
	if added, err = g.blocks(res.Added); err != nil {
		return nil, nil, fmt.Errorf("added blocks: %w", err)
	}
	return removed, added, nil
}

// SubmitTransaction broadcasts an endorsement payload and returns the
// transaction the node built for it.
func (g *Reference) SubmitTransaction(ctx context.Context, payload []byte) (model.Transaction, error) {
	var res referenceTransaction
	if err := call(ctx, g.rpc, methodSubmitTransaction, &res, hex.EncodeToString(payload)); err != nil {
		return model.Transaction{}, err
	}
	return transaction(res)
}

// PublicationsFor returns the publications the SI chain needs to accept an
// endorsement anchored at keystone.
func (g *Reference) PublicationsFor(ctx context.Context, keystone chainhash.Hash, altContext, btcContext [][]byte) ([]model.Publication, error) {
	var res []referencePublication
	if err := call(ctx, g.rpc, methodPublications, &res, keystone.String(), hexList(altContext), hexList(btcContext)); err != nil {
		return nil, err
	}

	out := make([]model.Publication, 0, len(res))
	for i, p := range res {
		payload, err := hex.DecodeString(p.Payload)
		if err != nil {
			return nil, fmt.Errorf("publication %d payload: %w", i, err)
		}
		out = append(out, model.Publication{
			TransactionID: p.TxID,
			BlockHash:     p.BlockHash,
			MerklePath:    p.MerklePath,
			Payload:       payload,
		})
	}
	return out, nil
}

func (g *Reference) blocks(in []referenceBlock) ([]model.ChainBlock, error) {
	out := make([]model.ChainBlock, 0, len(in))
	for _, b := range in {
		block, err := g.block(b)
		if err != nil {
			return nil, err
		}
		out = append(out, block)
	}
	return out, nil
}

func (g *Reference) block(res referenceBlock) (model.ChainBlock, error) {
	raw, err := hex.DecodeString(res.Header)
	if err != nil {
		return model.ChainBlock{}, fmt.Errorf("block header hex: %w", err)
	}
	block, err := g.codec.DecodeHeader(raw)
	if err != nil {
		return model.ChainBlock{}, err
	}

	if len(res.Transactions) > 0 {
		block.Transactions = make([]model.Transaction, 0, len(res.Transactions))
	}
	for _, t := range res.Transactions {
		tx, err := transaction(t)
		if err != nil {
			return model.ChainBlock{}, fmt.Errorf("block %s: %w", block.Hash, err)
		}
		block.Transactions = append(block.Transactions, tx)
	}
	return block, nil
}

func transaction(res referenceTransaction) (model.Transaction, error) {
	id, err := chainhash.NewHashFromStr(res.TxID)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("transaction id %q: %w", res.TxID, err)
	}
	raw, err := hex.DecodeString(res.Hex)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("transaction %s hex: %w", id, err)
	}
	if len(raw) == 0 {
		raw = nil
	}

	tx := model.Transaction{ID: *id, SourceAddress: res.Source, Raw: raw}
	for _, o := range res.Vout {
		tx.Outputs = append(tx.Outputs, model.Output{Address: o.Address, Amount: o.Amount})
	}
	return tx, nil
}
