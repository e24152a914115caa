package intrinsics

import (
	"context"
	"io"
	"net/http"

	"github.com/sovereign-lang/sovereign/errz"
	"github.com/sovereign-lang/sovereign/object"
	"github.com/sovereign-lang/sovereign/sandbox"
)

func (r *Registry) registerNet() {
	r.Register("sys.net.fetch", r.netFetch)
}

// netFetch performs an HTTP GET bounded by the policy timeout. The body
// is truncated at the captured-output limit with the same marker and
// metadata flag used for subprocess output.
func (r *Registry) netFetch(ctx context.Context, args ...object.Value) (object.Value, error) {
	if err := object.Require("sys.net.fetch", 1, args); err != nil {
		return nil, err
	}
	url, err := object.AsString(args[0])
	if err != nil {
		return nil, err
	}
	if err := r.policy.CheckCapability(sandbox.CapNet); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, r.policy.Timeout())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errz.Newf(errz.Runtime, "sys.net.fetch %q: %s", url, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return object.NewNamespace(map[string]object.Value{
				"status":    object.NewInt(0),
				"body":      object.NewString(""),
				"timed_out": object.True,
				"truncated": object.False,
			}), nil
		}
		return nil, errz.Newf(errz.Runtime, "sys.net.fetch %q: %s", url, err)
	}
	defer resp.Body.Close()

	limit := int64(r.policy.MaxOutputBytes())
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, errz.Newf(errz.Runtime, "sys.net.fetch %q: %s", url, err)
	}
	truncated := int64(len(body)) > limit
	text := string(body)
	if truncated {
		text = string(body[:limit]) + sandbox.TruncationMarker
	}
	r.log.Debug().Str("url", url).Int("status", resp.StatusCode).Bool("truncated", truncated).Msg("net fetch")
	return object.NewNamespace(map[string]object.Value{
		"status":    object.NewInt(int64(resp.StatusCode)),
		"body":      object.NewString(text),
		"timed_out": object.False,
		"truncated": object.NewBool(truncated),
	}), nil
}
