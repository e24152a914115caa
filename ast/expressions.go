package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sovereign-lang/sovereign/op"
)

// Int is an integer literal.
type Int struct {
	Value int64
}

func (i *Int) exprNode() {}

func (i *Int) String() string {
	return strconv.FormatInt(i.Value, 10)
}

// Float is a floating point literal.
type Float struct {
	Value float64
}

func (f *Float) exprNode() {}

func (f *Float) String() string {
	return strconv.FormatFloat(f.Value, 'g', -1, 64)
}

// String is a string literal.
type String struct {
	Value string
}

func (s *String) exprNode() {}

func (s *String) String() string {
	return strconv.Quote(s.Value)
}

// Bool is a boolean literal.
type Bool struct {
	Value bool
}

func (b *Bool) exprNode() {}

func (b *Bool) String() string {
	return strconv.FormatBool(b.Value)
}

// Var references a variable by name.
type Var struct {
	Name string
}

func (v *Var) exprNode() {}

func (v *Var) String() string {
	return v.Name
}

// Call invokes a function or intrinsic by name. Dotted intrinsic names
// like "sys.fs.write" are flat keys at this level; namespace syntax is a
// surface concern resolved before the AST is produced.
type Call struct {
	Name string
	Args []Expr
}

func (c *Call) exprNode() {}

func (c *Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(args, ", "))
}

// List constructs a list from element expressions.
type List struct {
	Items []Expr
}

func (l *List) exprNode() {}

func (l *List) String() string {
	items := make([]string, len(l.Items))
	for i, item := range l.Items {
		items[i] = item.String()
	}
	return "[" + strings.Join(items, ", ") + "]"
}

// BinaryOp combines two operands with a strict binary operator. Both
// operands are evaluated before the operation is applied.
type BinaryOp struct {
	Op    op.BinaryOpType
	Left  Expr
	Right Expr
}

func (b *BinaryOp) exprNode() {}

func (b *BinaryOp) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), b.Op, b.Right.String())
}

// Hole is an intentionally unresolved placeholder. It evaluates to a
// fixed sentinel value and never fails.
type Hole struct{}

func (h *Hole) exprNode() {}

func (h *Hole) String() string {
	return "<hole>"
}
