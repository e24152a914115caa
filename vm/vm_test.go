package vm

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sovereign-lang/sovereign/ast"
	"github.com/sovereign-lang/sovereign/compiler"
	"github.com/sovereign-lang/sovereign/errz"
	"github.com/sovereign-lang/sovereign/intrinsics"
	"github.com/sovereign-lang/sovereign/object"
	"github.com/sovereign-lang/sovereign/op"
	"github.com/sovereign-lang/sovereign/sandbox"
)

func newRegistry(t *testing.T) (*intrinsics.Registry, *bytes.Buffer) {
	t.Helper()
	policy, err := sandbox.DenyAll(t.TempDir())
	require.NoError(t, err)
	var out bytes.Buffer
	return intrinsics.New(policy, intrinsics.WithStdout(&out)), &out
}

func program(stmts ...ast.Stmt) *ast.Program {
	return &ast.Program{Body: &ast.Block{Stmts: stmts}}
}

func intLit(v int64) *ast.Int       { return &ast.Int{Value: v} }
func varRef(name string) *ast.Var   { return &ast.Var{Name: name} }
func expr(e ast.Expr) *ast.ExprStmt { return &ast.ExprStmt{Expr: e} }

func binop(o op.BinaryOpType, left, right ast.Expr) *ast.BinaryOp {
	return &ast.BinaryOp{Op: o, Left: left, Right: right}
}

func runVM(t *testing.T, p *ast.Program) (object.Value, string, error) {
	t.Helper()
	code, err := compiler.Compile(p)
	require.NoError(t, err)
	registry, out := newRegistry(t)
	result, err := Run(context.Background(), code, registry)
	return result, out.String(), err
}

func TestArithmetic(t *testing.T) {
	result, _, err := runVM(t, program(expr(
		binop(op.Subtract,
			binop(op.Multiply,
				binop(op.Add, intLit(2), intLit(3)),
				intLit(4)),
			intLit(1)),
	)))
	require.NoError(t, err)
	assert.Equal(t, int64(19), result.(*object.Int).Value())
}

func TestProgramValueIsFinalStatement(t *testing.T) {
	result, _, err := runVM(t, program(
		expr(intLit(1)),
		expr(intLit(2)),
		expr(intLit(3)),
	))
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.(*object.Int).Value())

	result, _, err = runVM(t, program())
	require.NoError(t, err)
	assert.Equal(t, object.Unit, result)
}

func TestIfBranches(t *testing.T) {
	result, _, err := runVM(t, program(&ast.If{
		Cond: binop(op.GreaterThan, intLit(3), intLit(2)),
		Then: &ast.Block{Stmts: []ast.Stmt{expr(intLit(1))}},
		Else: &ast.Block{Stmts: []ast.Stmt{expr(intLit(2))}},
	}))
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.(*object.Int).Value())

	result, _, err = runVM(t, program(&ast.If{
		Cond: &ast.Bool{Value: false},
		Then: &ast.Block{Stmts: []ast.Stmt{expr(intLit(1))}},
	}))
	require.NoError(t, err)
	assert.Equal(t, object.Unit, result)
}

func TestWhileAccumulates(t *testing.T) {
	result, _, err := runVM(t, program(
		&ast.Assign{Name: "total", Value: intLit(0)},
		&ast.Assign{Name: "i", Value: intLit(0)},
		&ast.While{
			Cond: binop(op.LessThan, varRef("i"), intLit(5)),
			Body: &ast.Block{Stmts: []ast.Stmt{
				&ast.Assign{Name: "total", Value: binop(op.Add, varRef("total"), varRef("i"))},
				&ast.Assign{Name: "i", Value: binop(op.Add, varRef("i"), intLit(1))},
			}},
		},
		expr(varRef("total")),
	))
	require.NoError(t, err)
	assert.Equal(t, int64(10), result.(*object.Int).Value())
}

func TestRecursiveFibonacci(t *testing.T) {
	body := &ast.Block{Stmts: []ast.Stmt{
		&ast.If{
			Cond: binop(op.LessThan, varRef("n"), intLit(2)),
			Then: &ast.Block{Stmts: []ast.Stmt{expr(varRef("n"))}},
			Else: &ast.Block{Stmts: []ast.Stmt{expr(
				binop(op.Add,
					&ast.Call{Name: "fib", Args: []ast.Expr{binop(op.Subtract, varRef("n"), intLit(1))}},
					&ast.Call{Name: "fib", Args: []ast.Expr{binop(op.Subtract, varRef("n"), intLit(2))}}),
			)}},
		},
	}}
	result, out, err := runVM(t, program(
		&ast.Function{Name: "fib", Params: []string{"n"}, Body: body},
		expr(&ast.Call{Name: "print", Args: []ast.Expr{
			&ast.Call{Name: "fib", Args: []ast.Expr{intLit(10)}},
		}}),
	))
	require.NoError(t, err)
	assert.Equal(t, object.Unit, result)
	assert.Equal(t, "55\n", out)
}

func TestClosureCapturesByReference(t *testing.T) {
	result, _, err := runVM(t, program(
		&ast.Assign{Name: "x", Value: intLit(1)},
		&ast.Function{Name: "get", Body: &ast.Block{Stmts: []ast.Stmt{expr(varRef("x"))}}},
		&ast.Assign{Name: "x", Value: intLit(2)},
		expr(&ast.Call{Name: "get"}),
	))
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.(*object.Int).Value())
}

func TestFunctionScopeShadowsGlobal(t *testing.T) {
	result, _, err := runVM(t, program(
		&ast.Assign{Name: "x", Value: intLit(1)},
		&ast.Function{Name: "shadow", Body: &ast.Block{Stmts: []ast.Stmt{
			&ast.Assign{Name: "x", Value: intLit(99)},
			expr(varRef("x")),
		}}},
		expr(&ast.Call{Name: "shadow"}),
		expr(varRef("x")),
	))
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.(*object.Int).Value())
}

func TestListConstruction(t *testing.T) {
	result, _, err := runVM(t, program(expr(&ast.List{Items: []ast.Expr{
		intLit(1),
		binop(op.Add, intLit(1), intLit(1)),
		&ast.String{Value: "three"},
	}})))
	require.NoError(t, err)
	assert.Equal(t, `[1, 2, "three"]`, result.(*object.List).Inspect())
}

func TestHoleEvaluates(t *testing.T) {
	result, _, err := runVM(t, program(expr(&ast.Hole{})))
	require.NoError(t, err)
	assert.Equal(t, object.Hole, result)
}

func TestUndefinedVariable(t *testing.T) {
	_, _, err := runVM(t, program(expr(varRef("ghost"))))
	require.Error(t, err)
	assert.True(t, errz.IsKind(err, errz.Runtime))
	assert.Contains(t, err.Error(), `undefined variable "ghost"`)
}

func TestTypeError(t *testing.T) {
	_, _, err := runVM(t, program(expr(
		binop(op.Add, intLit(1), &ast.String{Value: "x"}),
	)))
	require.Error(t, err)
	assert.True(t, errz.IsKind(err, errz.Type))
	assert.Contains(t, err.Error(), "TypeError")
}

func TestWrongArgumentCount(t *testing.T) {
	_, _, err := runVM(t, program(
		&ast.Function{Name: "one", Params: []string{"a"}, Body: &ast.Block{}},
		expr(&ast.Call{Name: "one"}),
	))
	require.Error(t, err)
	assert.True(t, errz.IsKind(err, errz.Type))
	assert.Contains(t, err.Error(), "one() takes exactly 1 arguments (0 given)")
}

func TestMaxCallDepth(t *testing.T) {
	_, _, err := runVM(t, program(
		&ast.Function{Name: "loop", Body: &ast.Block{Stmts: []ast.Stmt{
			expr(&ast.Call{Name: "loop"}),
		}}},
		expr(&ast.Call{Name: "loop"}),
	))
	require.Error(t, err)
	assert.True(t, errz.IsKind(err, errz.Runtime))
	assert.Contains(t, err.Error(), "maximum call depth exceeded")
}

func TestShadowedIntrinsic(t *testing.T) {
	result, _, err := runVM(t, program(
		&ast.Function{Name: "len", Params: []string{"x"}, Body: &ast.Block{Stmts: []ast.Stmt{
			expr(intLit(-1)),
		}}},
		expr(&ast.Call{Name: "len", Args: []ast.Expr{&ast.String{Value: "abc"}}}),
	))
	require.NoError(t, err)
	assert.Equal(t, int64(-1), result.(*object.Int).Value())
}

func TestVMReuse(t *testing.T) {
	registry, _ := newRegistry(t)
	machine := New(registry)
	code, err := compiler.Compile(program(expr(intLit(7))))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		result, err := machine.Run(context.Background(), code)
		require.NoError(t, err)
		assert.Equal(t, int64(7), result.(*object.Int).Value())
	}
}
