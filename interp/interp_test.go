package interp

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sovereign-lang/sovereign/ast"
	"github.com/sovereign-lang/sovereign/errz"
	"github.com/sovereign-lang/sovereign/intrinsics"
	"github.com/sovereign-lang/sovereign/object"
	"github.com/sovereign-lang/sovereign/op"
	"github.com/sovereign-lang/sovereign/sandbox"
)

func newInterp(t *testing.T) (*Interpreter, *bytes.Buffer) {
	t.Helper()
	policy, err := sandbox.DenyAll(t.TempDir())
	require.NoError(t, err)
	var out bytes.Buffer
	registry := intrinsics.New(policy, intrinsics.WithStdout(&out))
	return New(registry), &out
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

func run(t *testing.T, p *ast.Program) (object.Value, string) {
	t.Helper()
	i, out := newInterp(t)
	result, err := i.Run(context.Background(), p)
	require.NoError(t, err)
	return result, out.String()
}

func TestArithmetic(t *testing.T) {
	// (2 + 3) * 4 - 1
	result, _ := run(t, program(expr(
		binop(op.Subtract,
			binop(op.Multiply,
				binop(op.Add, intLit(2), intLit(3)),
				intLit(4)),
			intLit(1)),
	)))
	assert.Equal(t, int64(19), result.(*object.Int).Value())
}

func TestProgramValueIsFinalStatement(t *testing.T) {
	result, _ := run(t, program(
		expr(intLit(1)),
		expr(intLit(2)),
		expr(intLit(3)),
	))
	assert.Equal(t, int64(3), result.(*object.Int).Value())

	result, _ = run(t, program(&ast.Assign{Name: "x", Value: intLit(5)}))
	assert.Equal(t, object.Unit, result)

	result, _ = run(t, program())
	assert.Equal(t, object.Unit, result)
}

func TestIfYieldsBranchValue(t *testing.T) {
	result, _ := run(t, program(&ast.If{
		Cond: &ast.Bool{Value: true},
		Then: &ast.Block{Stmts: []ast.Stmt{expr(intLit(1))}},
		Else: &ast.Block{Stmts: []ast.Stmt{expr(intLit(2))}},
	}))
	assert.Equal(t, int64(1), result.(*object.Int).Value())

	result, _ = run(t, program(&ast.If{
		Cond: &ast.Bool{Value: false},
		Then: &ast.Block{Stmts: []ast.Stmt{expr(intLit(1))}},
		Else: &ast.Block{Stmts: []ast.Stmt{expr(intLit(2))}},
	}))
	assert.Equal(t, int64(2), result.(*object.Int).Value())

	// No else and a false condition: unit.
	result, _ = run(t, program(&ast.If{
		Cond: &ast.Bool{Value: false},
		Then: &ast.Block{Stmts: []ast.Stmt{expr(intLit(1))}},
	}))
	assert.Equal(t, object.Unit, result)
}

func TestWhileAccumulates(t *testing.T) {
	// total = 0; i = 0; while i < 5 { total = total + i; i = i + 1 }; total
	p := program(
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
	)
	result, _ := run(t, p)
	assert.Equal(t, int64(10), result.(*object.Int).Value())
}

func fibProgram(n int64) *ast.Program {
	// fn fib(n) { if n < 2 { n } else { fib(n-1) + fib(n-2) } }
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
	return program(
		&ast.Function{Name: "fib", Params: []string{"n"}, Body: body},
		expr(&ast.Call{Name: "print", Args: []ast.Expr{
			&ast.Call{Name: "fib", Args: []ast.Expr{intLit(n)}},
		}}),
	)
}

func TestRecursiveFibonacci(t *testing.T) {
	result, out := run(t, fibProgram(10))
	assert.Equal(t, object.Unit, result)
	assert.Equal(t, "55\n", out)
}

func TestImplicitReturn(t *testing.T) {
	// fn double(x) { x * 2 }; double(21)
	p := program(
		&ast.Function{
			Name:   "double",
			Params: []string{"x"},
			Body:   &ast.Block{Stmts: []ast.Stmt{expr(binop(op.Multiply, varRef("x"), intLit(2)))}},
		},
		expr(&ast.Call{Name: "double", Args: []ast.Expr{intLit(21)}}),
	)
	result, _ := run(t, p)
	assert.Equal(t, int64(42), result.(*object.Int).Value())
}

func TestClosureCapturesByReference(t *testing.T) {
	// x = 1; fn get() { x }; x = 2; get()
	p := program(
		&ast.Assign{Name: "x", Value: intLit(1)},
		&ast.Function{Name: "get", Body: &ast.Block{Stmts: []ast.Stmt{expr(varRef("x"))}}},
		&ast.Assign{Name: "x", Value: intLit(2)},
		expr(&ast.Call{Name: "get"}),
	)
	result, _ := run(t, p)
	assert.Equal(t, int64(2), result.(*object.Int).Value())
}

func TestFunctionScopeShadowsGlobal(t *testing.T) {
	// x = 1; fn shadow() { x = 99; x }; shadow(); x
	p := program(
		&ast.Assign{Name: "x", Value: intLit(1)},
		&ast.Function{Name: "shadow", Body: &ast.Block{Stmts: []ast.Stmt{
			&ast.Assign{Name: "x", Value: intLit(99)},
			expr(varRef("x")),
		}}},
		expr(&ast.Call{Name: "shadow"}),
		expr(varRef("x")),
	)
	result, _ := run(t, p)
	assert.Equal(t, int64(1), result.(*object.Int).Value())
}

func TestHoleEvaluates(t *testing.T) {
	result, _ := run(t, program(expr(&ast.Hole{})))
	assert.Equal(t, object.Hole, result)
}

func TestFlowAndNeuroAreInert(t *testing.T) {
	result, _ := run(t, program(
		&ast.FlowAnnotation{Name: "x", TypeName: "int"},
		&ast.NeuroBlock{Name: "model", Config: map[string]any{"epochs": 3}},
	))
	assert.Equal(t, object.Unit, result)
}

func TestUndefinedVariable(t *testing.T) {
	i, _ := newInterp(t)
	_, err := i.Run(context.Background(), program(expr(varRef("ghost"))))
	require.Error(t, err)
	assert.True(t, errz.IsKind(err, errz.Runtime))
	assert.Contains(t, err.Error(), `undefined variable "ghost"`)
}

func TestUndefinedFunction(t *testing.T) {
	i, _ := newInterp(t)
	_, err := i.Run(context.Background(), program(expr(&ast.Call{Name: "ghost"})))
	require.Error(t, err)
	assert.True(t, errz.IsKind(err, errz.Runtime))
}

func TestTypeError(t *testing.T) {
	i, _ := newInterp(t)
	_, err := i.Run(context.Background(), program(expr(
		binop(op.Add, intLit(1), &ast.String{Value: "x"}),
	)))
	require.Error(t, err)
	assert.True(t, errz.IsKind(err, errz.Type))
	assert.Contains(t, err.Error(), "TypeError")
}

func TestWrongArgumentCount(t *testing.T) {
	i, _ := newInterp(t)
	p := program(
		&ast.Function{Name: "one", Params: []string{"a"}, Body: &ast.Block{}},
		expr(&ast.Call{Name: "one"}),
	)
	_, err := i.Run(context.Background(), p)
	require.Error(t, err)
	assert.True(t, errz.IsKind(err, errz.Type))
	assert.Contains(t, err.Error(), "one() takes exactly 1 arguments (0 given)")
}

func TestMaxCallDepth(t *testing.T) {
	// fn loop() { loop() }; loop()
	p := program(
		&ast.Function{Name: "loop", Body: &ast.Block{Stmts: []ast.Stmt{
			expr(&ast.Call{Name: "loop"}),
		}}},
		expr(&ast.Call{Name: "loop"}),
	)
	i, _ := newInterp(t)
	_, err := i.Run(context.Background(), p)
	require.Error(t, err)
	assert.True(t, errz.IsKind(err, errz.Runtime))
	assert.Contains(t, err.Error(), "maximum call depth exceeded")
}

func TestShadowedIntrinsic(t *testing.T) {
	// User functions take precedence over intrinsics of the same name.
	p := program(
		&ast.Function{Name: "len", Params: []string{"x"}, Body: &ast.Block{Stmts: []ast.Stmt{
			expr(intLit(-1)),
		}}},
		expr(&ast.Call{Name: "len", Args: []ast.Expr{&ast.String{Value: "abc"}}}),
	)
	result, _ := run(t, p)
	assert.Equal(t, int64(-1), result.(*object.Int).Value())
}

func TestSandboxDeniedIntrinsic(t *testing.T) {
	i, _ := newInterp(t)
	p := program(expr(&ast.Call{Name: "sys.fs.read", Args: []ast.Expr{
		&ast.String{Value: "data.txt"},
	}}))
	_, err := i.Run(context.Background(), p)
	require.Error(t, err)
	assert.True(t, errz.IsKind(err, errz.Sandbox))
	assert.Contains(t, err.Error(), "Security Violation")
}
