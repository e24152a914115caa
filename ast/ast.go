// Package ast defines the canonical node representation of Sovereign
// programs. The engine never consumes source text directly; an externally
// produced AST document is decoded into these nodes by the loader after
// its integrity hashes have been verified.
package ast

// Span records where a node appeared in the original source. It is
// metadata only and has no effect on execution or hashing.
type Span struct {
	File string `json:"file,omitempty"`
	Line int    `json:"line,omitempty"`
	Col  int    `json:"col,omitempty"`
}

// Node represents a portion of the syntax tree.
type Node interface {
	// String returns a human friendly representation of the node. This
	// should be similar to the original source code, but not necessarily
	// identical.
	String() string
}

// Stmt represents a statement node. Statements are evaluated for effect,
// but each also yields a value: a block's value is the value of its final
// statement.
type Stmt interface {
	Node
	stmtNode()
}

// Expr represents an expression node. Expressions evaluate to a value and
// may be embedded within other expressions.
type Expr interface {
	Node
	exprNode()
}

// Program is the top-level execution unit. The whole unit is wrapped in a
// hash envelope, exactly like function bodies, so that externally loaded
// top-level code is also tamper-checked before execution.
type Program struct {
	// Hash is the hex digest of the canonical serialization of Body.
	Hash string

	// Body holds the top-level statements.
	Body *Block

	// Span is optional source metadata for the unit.
	Span *Span
}

func (p *Program) String() string {
	if p.Body == nil {
		return ""
	}
	return p.Body.String()
}
