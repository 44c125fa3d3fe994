package gateway

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/popminer-backend/internal/pop/model"
	"github.com/goodnatureofminers/popminer-backend/pkg/safe"
)

// SI chain node methods without a typed btcd call.
const (
	methodPopData   = "getpopdata"
	methodSubmitPop = "submitpop"
)

type (
	altPopData struct {
		PublicationData string   `json:"publication_data"`
		Context         []string `json:"context"`
		BtcContext      []string `json:"btc_context"`
	}
	altEndorsement struct {
		TxID            string `json:"txid"`
		BlockOfProof    string `json:"block_of_proof"`
		MerklePath      string `json:"merkle_path"`
		PublicationData string `json:"publication_data"`
	}
	altPublication struct {
		TxID       string `json:"txid"`
		BlockHash  string `json:"blockhash"`
		MerklePath string `json:"merklepath"`
		Payload    string `json:"payload"`
	}
)

// AltChain talks to a security-inheriting chain node that speaks the btcd
// JSON-RPC dialect plus the proof-of-proof extensions.
type AltChain struct {
	rpc     RPCClient
	chainID string
	params  *chaincfg.Params
}

// NewAltChain creates an SI chain gateway. network selects the address
// encoding used for coinbase payouts.
func NewAltChain(rpc RPCClient, chainID string, network model.Network) (*AltChain, error) {
	if rpc == nil {
		return nil, fmt.Errorf("alt chain %s rpc client is required", chainID)
	}
	params, err := chainParamsForNetwork(network)
	if err != nil {
		return nil, err
	}
	return &AltChain{rpc: rpc, chainID: chainID, params: params}, nil
}

// ChainID names the SI chain.
func (g *AltChain) ChainID() string {
	return g.chainID
}

// BestBlockHeight returns the height of the node's best block.
func (g *AltChain) BestBlockHeight(ctx context.Context) (int32, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	count, err := g.rpc.GetBlockCount()
	if err != nil {
		return 0, fmt.Errorf("get block count: %w", err)
	}
	height, err := safe.Int32(count)
	if err != nil {
		return 0, fmt.Errorf("block count overflow: %w", err)
	}
	return height, nil
}

// BlockByHeight returns the best-chain block at height.
func (g *AltChain) BlockByHeight(ctx context.Context, height int32) (model.AltBlock, error) {
	if err := ctx.Err(); err != nil {
		return model.AltBlock{}, err
	}
	hash, err := g.rpc.GetBlockHash(int64(height))
	if err != nil {
		return model.AltBlock{}, fmt.Errorf("get block hash at height %d: %w", height, err)
	}
	return g.blockByHash(hash)
}

// BlockByHash returns the block with the given hash.
func (g *AltChain) BlockByHash(ctx context.Context, hash string) (model.AltBlock, error) {
	if err := ctx.Err(); err != nil {
		return model.AltBlock{}, err
	}
	h, err := chainhash.NewHashFromStr(hash)
	if err != nil {
		return model.AltBlock{}, fmt.Errorf("block hash %q: %w", hash, err)
	}
	return g.blockByHash(h)
}

func (g *AltChain) blockByHash(hash *chainhash.Hash) (model.AltBlock, error) {
	src, err := g.rpc.GetBlockVerboseTx(hash)
	if err != nil {
		return model.AltBlock{}, fmt.Errorf("get block %s: %w", hash, err)
	}
	return g.buildBlock(*src)
}

func (g *AltChain) buildBlock(src btcjson.GetBlockVerboseTxResult) (model.AltBlock, error) {
	height, err := safe.Int32(src.Height)
	if err != nil {
		return model.AltBlock{}, fmt.Errorf("block %s height overflow: %w", src.Hash, err)
	}
	block := model.AltBlock{
		Hash:         src.Hash,
		PreviousHash: src.PreviousHash,
		Height:       height,
	}
	if len(src.Tx) == 0 {
		return block, nil
	}

	for i, vout := range src.Tx[0].Vout {
		amount, err := btcutil.NewAmount(vout.Value)
		if err != nil {
			return model.AltBlock{}, fmt.Errorf("block %s coinbase output %d amount: %w", src.Hash, i, err)
		}
		address, err := decodeAddress(vout, g.params)
		if err != nil {
			return model.AltBlock{}, fmt.Errorf("block %s coinbase output %d address: %w", src.Hash, i, err)
		}
		if address == "" {
			continue
		}
		block.Coinbase = append(block.Coinbase, model.AltOutput{Address: address, Amount: int64(amount)})
	}
	return block, nil
}

// Transaction returns the inclusion status of txID.
func (g *AltChain) Transaction(ctx context.Context, txID string) (model.AltTransaction, error) {
	if err := ctx.Err(); err != nil {
		return model.AltTransaction{}, err
	}
	h, err := chainhash.NewHashFromStr(txID)
	if err != nil {
		return model.AltTransaction{}, fmt.Errorf("transaction id %q: %w", txID, err)
	}
	res, err := g.rpc.GetRawTransactionVerbose(h)
	if err != nil {
		return model.AltTransaction{}, fmt.Errorf("get transaction %s: %w", txID, err)
	}
	confirmations, err := safe.Int64(res.Confirmations)
	if err != nil {
		return model.AltTransaction{}, fmt.Errorf("transaction %s confirmations overflow: %w", txID, err)
	}
	return model.AltTransaction{ID: txID, BlockHash: res.BlockHash, Confirmations: confirmations}, nil
}

// MiningInstruction asks the node what to publish to endorse the block at height.
func (g *AltChain) MiningInstruction(ctx context.Context, height int32) (model.MiningInstruction, error) {
	var res altPopData
	if err := call(ctx, g.rpc, methodPopData, &res, height); err != nil {
		return model.MiningInstruction{}, err
	}

	data, err := hex.DecodeString(res.PublicationData)
	if err != nil {
		return model.MiningInstruction{}, fmt.Errorf("publication data: %w", err)
	}
	altContext, err := decodeHexList(res.Context)
	if err != nil {
		return model.MiningInstruction{}, fmt.Errorf("context: %w", err)
	}
	btcContext, err := decodeHexList(res.BtcContext)
	if err != nil {
		return model.MiningInstruction{}, fmt.Errorf("btc context: %w", err)
	}
	return model.MiningInstruction{
		PublicationData:     data,
		EndorsedBlockHeight: height,
		Context:             altContext,
		BtcContext:          btcContext,
	}, nil
}

// Submit hands the proof of proof to the SI chain and returns its id there.
func (g *AltChain) Submit(ctx context.Context, altContext [][]byte, endorsements []model.Endorsement, publications []model.Publication) (string, error) {
	es := make([]altEndorsement, 0, len(endorsements))
	for _, e := range endorsements {
		es = append(es, altEndorsement{
			TxID:            e.TransactionID,
			BlockOfProof:    hex.EncodeToString(e.BlockOfProof),
			MerklePath:      e.MerklePath,
			PublicationData: hex.EncodeToString(e.PublicationData),
		})
	}
	ps := make([]altPublication, 0, len(publications))
	for _, p := range publications {
		ps = append(ps, altPublication{
			TxID:       p.TransactionID,
			BlockHash:  p.BlockHash,
			MerklePath: p.MerklePath,
			Payload:    hex.EncodeToString(p.Payload),
		})
	}

	var id string
	if err := call(ctx, g.rpc, methodSubmitPop, &id, hexList(altContext), es, ps); err != nil {
		return "", err
	}
	if id == "" {
		return "", fmt.Errorf("%s returned an empty id", methodSubmitPop)
	}
	return id, nil
}
