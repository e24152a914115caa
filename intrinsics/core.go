package intrinsics

import (
	"context"
	"fmt"

	"github.com/sovereign-lang/sovereign/errz"
	"github.com/sovereign-lang/sovereign/object"
)

func (r *Registry) registerCore() {
	r.Register("print", r.printFn)
	r.Register("len", lenFn)
	r.Register("str", strFn)
	r.Register("int", intFn)
	r.Register("float", floatFn)
	r.Register("type", typeFn)
	r.Register("append", appendFn)
	r.Register("set", setFn)
}

// printFn writes its arguments separated by spaces with a trailing
// newline. Output goes to the registry's stdout stream so both engines
// share one observable output channel.
func (r *Registry) printFn(ctx context.Context, args ...object.Value) (object.Value, error) {
	values := make([]interface{}, len(args))
	for i, arg := range args {
		values[i] = object.PrintableValue(arg)
	}
	if _, err := fmt.Fprintln(r.stdout, values...); err != nil {
		return nil, errz.Newf(errz.Runtime, "print: %s", err)
	}
	return object.Unit, nil
}

func lenFn(ctx context.Context, args ...object.Value) (object.Value, error) {
	if err := object.Require("len", 1, args); err != nil {
		return nil, err
	}
	switch arg := args[0].(type) {
	case *object.String:
		return object.NewInt(int64(len(arg.Value()))), nil
	case *object.List:
		return object.NewInt(int64(arg.Len())), nil
	case *object.Namespace:
		return object.NewInt(int64(arg.Len())), nil
	case *object.Set:
		return object.NewInt(int64(arg.Len())), nil
	}
	return nil, errz.Newf(errz.Type, "len() unsupported argument (%s given)", args[0].Type())
}

func strFn(ctx context.Context, args ...object.Value) (object.Value, error) {
	if err := object.Require("str", 1, args); err != nil {
		return nil, err
	}
	if s, ok := args[0].(*object.String); ok {
		return s, nil
	}
	return object.NewString(fmt.Sprintf("%v", object.PrintableValue(args[0]))), nil
}

// intFn converts a numeric value to an int, truncating floats toward
// zero.
func intFn(ctx context.Context, args ...object.Value) (object.Value, error) {
	if err := object.Require("int", 1, args); err != nil {
		return nil, err
	}
	if i, err := object.AsInt(args[0]); err == nil {
		return object.NewInt(i), nil
	}
	f, err := object.AsFloat(args[0])
	if err != nil {
		return nil, err
	}
	return object.NewInt(int64(f)), nil
}

func floatFn(ctx context.Context, args ...object.Value) (object.Value, error) {
	if err := object.Require("float", 1, args); err != nil {
		return nil, err
	}
	f, err := object.AsFloat(args[0])
	if err != nil {
		return nil, err
	}
	return object.NewFloat(f), nil
}

func typeFn(ctx context.Context, args ...object.Value) (object.Value, error) {
	if err := object.Require("type", 1, args); err != nil {
		return nil, err
	}
	return object.NewString(string(args[0].Type())), nil
}

// appendFn mutates a list in place and returns it. This is the explicit
// mutation path for the List container.
func appendFn(ctx context.Context, args ...object.Value) (object.Value, error) {
	if err := object.Require("append", 2, args); err != nil {
		return nil, err
	}
	list, err := object.AsList(args[0])
	if err != nil {
		return nil, err
	}
	list.Append(args[1])
	return list, nil
}

func setFn(ctx context.Context, args ...object.Value) (object.Value, error) {
	if err := object.RequireRange("set", 0, 1, args); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return object.NewSet(nil)
	}
	list, err := object.AsList(args[0])
	if err != nil {
		return nil, err
	}
	return object.NewSet(list.Value())
}
