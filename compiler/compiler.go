// Package compiler translates a verified AST into bytecode for the
// virtual machine. Compilation is deterministic and total over the
// supported AST: any construct outside the closed node set fails
// compilation explicitly rather than silently miscompiling, because the
// VM must stay observationally equivalent to the interpreter.
package compiler

import (
	"github.com/sovereign-lang/sovereign/ast"
	"github.com/sovereign-lang/sovereign/bytecode"
	"github.com/sovereign-lang/sovereign/errz"
	"github.com/sovereign-lang/sovereign/op"
)

// Compile translates a program into a bytecode program whose execution
// leaves the value of the final top-level statement on the stack.
func Compile(program *ast.Program) (*bytecode.Program, error) {
	c := &compiler{}
	code := &bytecode.Program{}
	if err := c.compileBlock(code, program.Body); err != nil {
		return nil, err
	}
	code.Emit(op.Halt)
	return code, nil
}

type compiler struct{}

// compileBlock emits code that leaves exactly one value on the stack:
// the value of the final statement, or unit for an empty block.
func (c *compiler) compileBlock(code *bytecode.Program, block *ast.Block) error {
	if len(block.Stmts) == 0 {
		code.Emit(op.Unit)
		return nil
	}
	for i, stmt := range block.Stmts {
		if err := c.compileStmt(code, stmt); err != nil {
			return err
		}
		if i < len(block.Stmts)-1 {
			code.Emit(op.PopTop)
		}
	}
	return nil
}

func (c *compiler) compileStmt(code *bytecode.Program, stmt ast.Stmt) error {
	switch stmt := stmt.(type) {
	case *ast.Block:
		return c.compileBlock(code, stmt)
	case *ast.Function:
		return c.compileFunction(code, stmt)
	case *ast.Assign:
		if err := c.compileExpr(code, stmt.Value); err != nil {
			return err
		}
		// StoreName consumes the value and pushes unit, giving the
		// statement its value.
		code.Emit(op.StoreName, op.Code(code.AddName(stmt.Name)))
		return nil
	case *ast.If:
		return c.compileIf(code, stmt)
	case *ast.While:
		return c.compileWhile(code, stmt)
	case *ast.FlowAnnotation:
		code.Emit(op.Unit)
		return nil
	case *ast.NeuroBlock:
		// Placeholder semantics, same as the interpreter.
		code.Emit(op.Unit)
		return nil
	case *ast.ExprStmt:
		return c.compileExpr(code, stmt.Expr)
	}
	return errz.Newf(errz.Runtime, "compile error: unsupported statement: %T", stmt)
}

func (c *compiler) compileFunction(code *bytecode.Program, fn *ast.Function) error {
	body := &bytecode.Program{}
	if err := c.compileBlock(body, fn.Body); err != nil {
		return err
	}
	body.Emit(op.ReturnValue)
	constIdx := code.AddConstant(&bytecode.Function{
		Name:       fn.Name,
		Params:     fn.Params,
		ReturnType: fn.ReturnType,
		Code:       body,
	})
	code.Emit(op.MakeFunction, op.Code(constIdx))
	return nil
}

func (c *compiler) compileIf(code *bytecode.Program, stmt *ast.If) error {
	if err := c.compileExpr(code, stmt.Cond); err != nil {
		return err
	}
	elseJump := code.Emit(op.PopJumpForwardIfFalse, 0)
	if err := c.compileBlock(code, stmt.Then); err != nil {
		return err
	}
	endJump := code.Emit(op.JumpForward, 0)
	patchForward(code, elseJump)
	if stmt.Else != nil {
		if err := c.compileBlock(code, stmt.Else); err != nil {
			return err
		}
	} else {
		code.Emit(op.Unit)
	}
	patchForward(code, endJump)
	return nil
}

func (c *compiler) compileWhile(code *bytecode.Program, stmt *ast.While) error {
	condStart := len(code.Instructions)
	if err := c.compileExpr(code, stmt.Cond); err != nil {
		return err
	}
	exitJump := code.Emit(op.PopJumpForwardIfFalse, 0)
	if err := c.compileBlock(code, stmt.Body); err != nil {
		return err
	}
	// The body value is discarded each iteration; the loop as a whole
	// yields unit.
	code.Emit(op.PopTop)
	backJump := code.Emit(op.JumpBackward, 0)
	code.Instructions[backJump+1] = op.Code(backJump + 2 - condStart)
	patchForward(code, exitJump)
	code.Emit(op.Unit)
	return nil
}

func (c *compiler) compileExpr(code *bytecode.Program, expr ast.Expr) error {
	switch expr := expr.(type) {
	case *ast.Int:
		code.Emit(op.LoadConst, op.Code(code.AddConstant(expr.Value)))
		return nil
	case *ast.Float:
		code.Emit(op.LoadConst, op.Code(code.AddConstant(expr.Value)))
		return nil
	case *ast.String:
		code.Emit(op.LoadConst, op.Code(code.AddConstant(expr.Value)))
		return nil
	case *ast.Bool:
		if expr.Value {
			code.Emit(op.True)
		} else {
			code.Emit(op.False)
		}
		return nil
	case *ast.Var:
		code.Emit(op.LoadName, op.Code(code.AddName(expr.Name)))
		return nil
	case *ast.Call:
		for _, arg := range expr.Args {
			if err := c.compileExpr(code, arg); err != nil {
				return err
			}
		}
		code.Emit(op.Call, op.Code(code.AddName(expr.Name)), op.Code(len(expr.Args)))
		return nil
	case *ast.List:
		for _, item := range expr.Items {
			if err := c.compileExpr(code, item); err != nil {
				return err
			}
		}
		code.Emit(op.BuildList, op.Code(len(expr.Items)))
		return nil
	case *ast.BinaryOp:
		if err := c.compileExpr(code, expr.Left); err != nil {
			return err
		}
		if err := c.compileExpr(code, expr.Right); err != nil {
			return err
		}
		code.Emit(op.BinaryOp, op.Code(expr.Op))
		return nil
	case *ast.Hole:
		code.Emit(op.Hole)
		return nil
	}
	return errz.Newf(errz.Runtime, "compile error: unsupported expression: %T", expr)
}

// patchForward rewrites the operand of a forward jump to land on the
// next instruction to be emitted. Deltas are relative to the position
// immediately after the jump instruction.
func patchForward(code *bytecode.Program, jumpPos int) {
	code.Instructions[jumpPos+1] = op.Code(len(code.Instructions) - (jumpPos + 2))
}
