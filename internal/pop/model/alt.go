package model

// MiningInstruction is the SI chain's request to endorse one of its blocks.
type MiningInstruction struct {
	PublicationData     []byte
	EndorsedBlockHeight int32
	Context             [][]byte
	BtcContext          [][]byte
}

// Clone returns a deep copy of m.
func (m MiningInstruction) Clone() MiningInstruction {
	return MiningInstruction{
		PublicationData:     append([]byte(nil), m.PublicationData...),
		EndorsedBlockHeight: m.EndorsedBlockHeight,
		Context:             cloneBytes(m.Context),
		BtcContext:          cloneBytes(m.BtcContext),
	}
}

// Publication is a reference-chain proof the SI chain accepts alongside an endorsement.
type Publication struct {
	TransactionID string
	BlockHash     string
	MerklePath    string
	Payload       []byte
}

// Endorsement proves an SI block was published to the reference chain.
type Endorsement struct {
	TransactionID   string
	BlockOfProof    []byte
	MerklePath      string
	PublicationData []byte
}

// AltOutput pays Amount atoms to Address.
type AltOutput struct {
	Address string
	Amount  int64
}

// AltBlock is an SI chain block.
type AltBlock struct {
	Hash         string
	PreviousHash string
	Height       int32
	Coinbase     []AltOutput
}

// PayoutTo sums the coinbase outputs that pay address.
func (b AltBlock) PayoutTo(address string) int64 {
	var total int64
	for _, o := range b.Coinbase {
		if o.Address == address {
			total += o.Amount
		}
	}
	return total
}

// AltTransaction is an SI chain transaction with its inclusion status.
type AltTransaction struct {
	ID            string
	BlockHash     string
	Confirmations int64
}

// Included reports whether the transaction is in a block.
func (t AltTransaction) Included() bool {
	return t.BlockHash != ""
}

func cloneBytes(in [][]byte) [][]byte {
	if in == nil {
		return nil
	}
	out := make([][]byte, len(in))
	for i, b := range in {
		out[i] = append([]byte(nil), b...)
	}
	return out
}
