package intrinsics

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/sovereign-lang/sovereign/object"
	"github.com/sovereign-lang/sovereign/sandbox"
)

func (r *Registry) registerCrypto() {
	r.Register("sys.crypto.sha256", r.cryptoSha256)
}

func (r *Registry) cryptoSha256(ctx context.Context, args ...object.Value) (object.Value, error) {
	if err := object.Require("sys.crypto.sha256", 1, args); err != nil {
		return nil, err
	}
	data, err := object.AsString(args[0])
	if err != nil {
		return nil, err
	}
	if err := r.policy.CheckCapability(sandbox.CapCrypto); err != nil {
		return nil, err
	}
	sum := sha256.Sum256([]byte(data))
	return object.NewString(hex.EncodeToString(sum[:])), nil
}
