package object

import (
	"fmt"

	"github.com/sovereign-lang/sovereign/ast"
	"github.com/sovereign-lang/sovereign/bytecode"
)

// Function is a user-defined function closed over its defining scope.
// The interpreter executes the AST body directly; the virtual machine
// executes the compiled form. Exactly one of the two is set.
type Function struct {
	name       string
	params     []string
	returnType string
	body       *ast.Block
	compiled   *bytecode.Function
	scope      *Scope
}

// NewFunction returns a function backed by an AST body.
func NewFunction(name string, params []string, returnType string, body *ast.Block, scope *Scope) *Function {
	return &Function{
		name:       name,
		params:     params,
		returnType: returnType,
		body:       body,
		scope:      scope,
	}
}

// NewCompiledFunction returns a function backed by compiled code.
func NewCompiledFunction(fn *bytecode.Function, scope *Scope) *Function {
	return &Function{
		name:       fn.Name,
		params:     fn.Params,
		returnType: fn.ReturnType,
		compiled:   fn,
		scope:      scope,
	}
}

func (f *Function) Type() Type {
	return FUNCTION
}

func (f *Function) Name() string {
	return f.name
}

func (f *Function) Params() []string {
	return f.params
}

func (f *Function) ReturnType() string {
	return f.returnType
}

// Body returns the AST body, or nil for a compiled function.
func (f *Function) Body() *ast.Block {
	return f.body
}

// Compiled returns the compiled form, or nil for an AST-backed function.
func (f *Function) Compiled() *bytecode.Function {
	return f.compiled
}

// Scope returns the scope captured at definition time. Closures capture
// by reference to the defining scope chain, not by value.
func (f *Function) Scope() *Scope {
	return f.scope
}

func (f *Function) Inspect() string {
	return fmt.Sprintf("function(%s)", f.name)
}

func (f *Function) String() string {
	return f.Inspect()
}

func (f *Function) Interface() interface{} {
	return nil
}

func (f *Function) IsTruthy() bool {
	return true
}

func (f *Function) Equals(other Value) bool {
	otherFn, ok := other.(*Function)
	return ok && f == otherFn
}
