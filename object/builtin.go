package object

import (
	"context"
	"fmt"
)

// BuiltinFunction holds the type of a built-in (intrinsic) function.
type BuiltinFunction func(ctx context.Context, args ...Value) (Value, error)

// Builtin wraps a native function and implements Value.
type Builtin struct {
	fn   BuiltinFunction
	name string
}

// NewBuiltin creates a new builtin function with the given name. The name
// is the flat registry key, including any dotted namespace prefix.
func NewBuiltin(name string, fn BuiltinFunction) *Builtin {
	return &Builtin{fn: fn, name: name}
}

func (b *Builtin) Type() Type {
	return BUILTIN
}

func (b *Builtin) Name() string {
	return b.name
}

func (b *Builtin) Call(ctx context.Context, args ...Value) (Value, error) {
	return b.fn(ctx, args...)
}

func (b *Builtin) Inspect() string {
	return fmt.Sprintf("builtin(%s)", b.name)
}

func (b *Builtin) String() string {
	return b.Inspect()
}

func (b *Builtin) Interface() interface{} {
	return nil
}

func (b *Builtin) IsTruthy() bool {
	return true
}

func (b *Builtin) Equals(other Value) bool {
	otherBuiltin, ok := other.(*Builtin)
	return ok && b == otherBuiltin
}
