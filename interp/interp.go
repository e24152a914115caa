// Package interp implements the reference tree-walking interpreter.
// Evaluation is a recursive walk over the AST with an explicit scope
// threaded through every call; the only shared state is the read-only
// intrinsic registry and its capability policy.
//
// The interpreter consumes verified ASTs: integrity checking happens at
// the loader boundary, before a program reaches either engine.
package interp

import (
	"context"

	"github.com/sovereign-lang/sovereign/ast"
	"github.com/sovereign-lang/sovereign/errz"
	"github.com/sovereign-lang/sovereign/intrinsics"
	"github.com/sovereign-lang/sovereign/object"
)

// MaxCallDepth bounds recursion so runaway programs surface a
// RuntimeError instead of exhausting the host stack. The virtual machine
// applies the same bound.
const MaxCallDepth = 10000

// Interpreter evaluates a program AST. Each instance is single-threaded;
// run concurrent programs on independent instances.
type Interpreter struct {
	registry *intrinsics.Registry
	depth    int
}

// New returns an interpreter that dispatches intrinsic calls against the
// given registry.
func New(registry *intrinsics.Registry) *Interpreter {
	return &Interpreter{registry: registry}
}

// Run evaluates the program and returns the value of its final
// statement.
func (i *Interpreter) Run(ctx context.Context, program *ast.Program) (object.Value, error) {
	scope := object.NewFunctionScope(nil)
	return i.evalBlock(ctx, program.Body, scope)
}

func (i *Interpreter) evalBlock(ctx context.Context, block *ast.Block, scope *object.Scope) (object.Value, error) {
	var result object.Value = object.Unit
	for _, stmt := range block.Stmts {
		var err error
		result, err = i.evalStmt(ctx, stmt, scope)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (i *Interpreter) evalStmt(ctx context.Context, stmt ast.Stmt, scope *object.Scope) (object.Value, error) {
	switch stmt := stmt.(type) {
	case *ast.Block:
		return i.evalBlock(ctx, stmt, scope)
	case *ast.Function:
		fn := object.NewFunction(stmt.Name, stmt.Params, stmt.ReturnType, stmt.Body, scope)
		scope.Declare(stmt.Name, fn)
		return object.Unit, nil
	case *ast.Assign:
		value, err := i.evalExpr(ctx, stmt.Value, scope)
		if err != nil {
			return nil, err
		}
		scope.Assign(stmt.Name, value)
		return object.Unit, nil
	case *ast.If:
		cond, err := i.evalExpr(ctx, stmt.Cond, scope)
		if err != nil {
			return nil, err
		}
		if cond.IsTruthy() {
			return i.evalBlock(ctx, stmt.Then, scope)
		}
		if stmt.Else != nil {
			return i.evalBlock(ctx, stmt.Else, scope)
		}
		return object.Unit, nil
	case *ast.While:
		for {
			cond, err := i.evalExpr(ctx, stmt.Cond, scope)
			if err != nil {
				return nil, err
			}
			if !cond.IsTruthy() {
				return object.Unit, nil
			}
			if _, err := i.evalBlock(ctx, stmt.Body, scope); err != nil {
				return nil, err
			}
		}
	case *ast.FlowAnnotation:
		return object.Unit, nil
	case *ast.NeuroBlock:
		// Training semantics are out of scope; the block is a placeholder.
		return object.Unit, nil
	case *ast.ExprStmt:
		return i.evalExpr(ctx, stmt.Expr, scope)
	}
	return nil, errz.Newf(errz.Runtime, "unsupported statement: %T", stmt)
}

func (i *Interpreter) evalExpr(ctx context.Context, expr ast.Expr, scope *object.Scope) (object.Value, error) {
	switch expr := expr.(type) {
	case *ast.Int:
		return object.NewInt(expr.Value), nil
	case *ast.Float:
		return object.NewFloat(expr.Value), nil
	case *ast.String:
		return object.NewString(expr.Value), nil
	case *ast.Bool:
		return object.NewBool(expr.Value), nil
	case *ast.Var:
		value, ok := scope.Get(expr.Name)
		if !ok {
			return nil, errz.Newf(errz.Runtime, "undefined variable %q", expr.Name)
		}
		return value, nil
	case *ast.Call:
		return i.evalCall(ctx, expr, scope)
	case *ast.List:
		items := make([]object.Value, len(expr.Items))
		for idx, item := range expr.Items {
			value, err := i.evalExpr(ctx, item, scope)
			if err != nil {
				return nil, err
			}
			items[idx] = value
		}
		return object.NewList(items), nil
	case *ast.BinaryOp:
		left, err := i.evalExpr(ctx, expr.Left, scope)
		if err != nil {
			return nil, err
		}
		right, err := i.evalExpr(ctx, expr.Right, scope)
		if err != nil {
			return nil, err
		}
		return object.BinaryOp(expr.Op, left, right)
	case *ast.Hole:
		return object.Hole, nil
	}
	return nil, errz.Newf(errz.Runtime, "unsupported expression: %T", expr)
}

// evalCall resolves the callee name in the scope chain first; names that
// do not resolve to a user function dispatch against the intrinsic
// registry.
func (i *Interpreter) evalCall(ctx context.Context, call *ast.Call, scope *object.Scope) (object.Value, error) {
	args := make([]object.Value, len(call.Args))
	for idx, arg := range call.Args {
		value, err := i.evalExpr(ctx, arg, scope)
		if err != nil {
			return nil, err
		}
		args[idx] = value
	}
	if value, ok := scope.Get(call.Name); ok {
		switch callee := value.(type) {
		case *object.Function:
			return i.callFunction(ctx, callee, args)
		case *object.Builtin:
			return callee.Call(ctx, args...)
		}
		return nil, errz.Newf(errz.Type, "%s is not callable (%s given)", call.Name, value.Type())
	}
	return i.registry.Dispatch(ctx, call.Name, args)
}

func (i *Interpreter) callFunction(ctx context.Context, fn *object.Function, args []object.Value) (object.Value, error) {
	if len(args) != len(fn.Params()) {
		return nil, errz.Newf(errz.Type, "%s() takes exactly %d arguments (%d given)",
			fn.Name(), len(fn.Params()), len(args))
	}
	if fn.Body() == nil {
		return nil, errz.Newf(errz.Runtime, "function %q has no interpretable body", fn.Name())
	}
	if i.depth >= MaxCallDepth {
		return nil, errz.New(errz.Runtime, "maximum call depth exceeded")
	}
	i.depth++
	defer func() { i.depth-- }()

	scope := object.NewFunctionScope(fn.Scope())
	for idx, param := range fn.Params() {
		scope.Declare(param, args[idx])
	}
	return i.evalBlock(ctx, fn.Body(), scope)
}
