package gateway

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// call sends method with JSON-encoded params and decodes the reply into
// result when it is not nil.
func call(ctx context.Context, client RPCClient, method string, result any, params ...any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw := make([]json.RawMessage, 0, len(params))
	for i, p := range params {
		b, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("%s param %d: %w", method, i, err)
		}
		raw = append(raw, b)
	}

	reply, err := client.RawRequest(method, raw)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(reply, result); err != nil {
		return fmt.Errorf("%s decode reply: %w", method, err)
	}
	return nil
}

func hexList(in [][]byte) []string {
	out := make([]string, 0, len(in))
	for _, b := range in {
		out = append(out, hex.EncodeToString(b))
	}
	return out
}

func decodeHexList(in []string) ([][]byte, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([][]byte, 0, len(in))
	for i, s := range in {
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		out = append(out, b)
	}
	return out, nil
}
