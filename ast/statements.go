package ast

import (
	"fmt"
	"strings"
)

// Block is an ordered sequence of statements. Its value is the value of
// the final statement, or the unit value when empty.
type Block struct {
	Stmts []Stmt
}

func (b *Block) stmtNode() {}

func (b *Block) String() string {
	var out strings.Builder
	for i, s := range b.Stmts {
		if i > 0 {
			out.WriteString("\n")
		}
		out.WriteString(s.String())
	}
	return out.String()
}

// Function declares a named function. The body carries its own integrity
// hash and must be verified before it is eligible for execution.
type Function struct {
	Name       string
	Params     []string
	ReturnType string

	// Hash is the hex digest of the canonical serialization of Body.
	Hash string

	// Body is the hashed content of the function.
	Body *Block

	// Span is optional source metadata for the hashed envelope.
	Span *Span
}

func (f *Function) stmtNode() {}

func (f *Function) String() string {
	sig := fmt.Sprintf("fn %s(%s)", f.Name, strings.Join(f.Params, ", "))
	if f.ReturnType != "" {
		sig += " -> " + f.ReturnType
	}
	return sig + " { " + f.Body.String() + " }"
}

// Assign binds the value of an expression to a name.
type Assign struct {
	Name  string
	Value Expr
}

func (a *Assign) stmtNode() {}

func (a *Assign) String() string {
	return fmt.Sprintf("%s = %s", a.Name, a.Value.String())
}

// If evaluates the condition and executes the then-block or the optional
// else-block. Its value is the value of the taken branch.
type If struct {
	Cond Expr
	Then *Block
	Else *Block // may be nil
}

func (i *If) stmtNode() {}

func (i *If) String() string {
	out := fmt.Sprintf("if %s { %s }", i.Cond.String(), i.Then.String())
	if i.Else != nil {
		out += fmt.Sprintf(" else { %s }", i.Else.String())
	}
	return out
}

// While re-evaluates the condition before each iteration. The loop body
// executes in the enclosing scope, so rebindings are visible across
// iterations. A While statement yields the unit value.
type While struct {
	Cond Expr
	Body *Block
}

func (w *While) stmtNode() {}

func (w *While) String() string {
	return fmt.Sprintf("while %s { %s }", w.Cond.String(), w.Body.String())
}

// FlowAnnotation declares the type of a name. The engine records it as
// metadata only; no checking is performed in-core.
type FlowAnnotation struct {
	Name     string
	TypeName string
}

func (f *FlowAnnotation) stmtNode() {}

func (f *FlowAnnotation) String() string {
	return fmt.Sprintf("flow %s: %s", f.Name, f.TypeName)
}

// NeuroBlock is an opaque model-training block. The engine executes it as
// a no-op placeholder; training semantics live outside the core.
type NeuroBlock struct {
	Name   string
	Config map[string]any
}

func (n *NeuroBlock) stmtNode() {}

func (n *NeuroBlock) String() string {
	return fmt.Sprintf("neuro %s { ... }", n.Name)
}

// ExprStmt wraps an expression in statement position. Its value is the
// value of the expression.
type ExprStmt struct {
	Expr Expr
}

func (e *ExprStmt) stmtNode() {}

func (e *ExprStmt) String() string {
	return e.Expr.String()
}
