package intrinsics

import (
	"context"
	"os"

	"github.com/sovereign-lang/sovereign/errz"
	"github.com/sovereign-lang/sovereign/object"
	"github.com/sovereign-lang/sovereign/sandbox"
)

func (r *Registry) registerFS() {
	r.Register("sys.fs.read", r.fsRead)
	r.Register("sys.fs.write", r.fsWrite)
	r.Register("sys.fs.exists", r.fsExists)
	r.Register("sys.fs.list", r.fsList)
}

func (r *Registry) fsRead(ctx context.Context, args ...object.Value) (object.Value, error) {
	if err := object.Require("sys.fs.read", 1, args); err != nil {
		return nil, err
	}
	path, err := object.AsString(args[0])
	if err != nil {
		return nil, err
	}
	canonical, err := r.policy.CheckPath(path, sandbox.ModeRead)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(canonical)
	if err != nil {
		return nil, errz.Newf(errz.Runtime, "sys.fs.read %q: %s", path, err)
	}
	r.log.Debug().Str("path", canonical).Int("bytes", len(data)).Msg("fs read")
	return object.NewString(string(data)), nil
}

func (r *Registry) fsWrite(ctx context.Context, args ...object.Value) (object.Value, error) {
	if err := object.Require("sys.fs.write", 2, args); err != nil {
		return nil, err
	}
	path, err := object.AsString(args[0])
	if err != nil {
		return nil, err
	}
	content, err := object.AsString(args[1])
	if err != nil {
		return nil, err
	}
	canonical, err := r.policy.CheckPath(path, sandbox.ModeWrite)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(canonical, []byte(content), 0o644); err != nil {
		return nil, errz.Newf(errz.Runtime, "sys.fs.write %q: %s", path, err)
	}
	r.log.Debug().Str("path", canonical).Int("bytes", len(content)).Msg("fs write")
	return object.Unit, nil
}

func (r *Registry) fsExists(ctx context.Context, args ...object.Value) (object.Value, error) {
	if err := object.Require("sys.fs.exists", 1, args); err != nil {
		return nil, err
	}
	path, err := object.AsString(args[0])
	if err != nil {
		return nil, err
	}
	canonical, err := r.policy.CheckPath(path, sandbox.ModeRead)
	if err != nil {
		return nil, err
	}
	_, statErr := os.Stat(canonical)
	return object.NewBool(statErr == nil), nil
}

func (r *Registry) fsList(ctx context.Context, args ...object.Value) (object.Value, error) {
	if err := object.Require("sys.fs.list", 1, args); err != nil {
		return nil, err
	}
	path, err := object.AsString(args[0])
	if err != nil {
		return nil, err
	}
	canonical, err := r.policy.CheckPath(path, sandbox.ModeRead)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(canonical)
	if err != nil {
		return nil, errz.Newf(errz.Runtime, "sys.fs.list %q: %s", path, err)
	}
	items := make([]object.Value, 0, len(entries))
	for _, entry := range entries {
		items = append(items, object.NewString(entry.Name()))
	}
	return object.NewList(items), nil
}
