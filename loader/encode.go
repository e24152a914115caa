package loader

import (
	"encoding/json"

	"github.com/sovereign-lang/sovereign/ast"
	"github.com/sovereign-lang/sovereign/errz"
	"github.com/sovereign-lang/sovereign/integrity"
	"github.com/sovereign-lang/sovereign/op"
)

// Encode produces the wire document for a program, computing fresh hash
// envelopes for the program unit and every function body. Front ends and
// test fixtures use this to emit documents Parse will accept.
func Encode(program *ast.Program) (map[string]any, error) {
	content, err := encodeBlock(program.Body)
	if err != nil {
		return nil, err
	}
	doc, err := integrity.Seal(content)
	if err != nil {
		return nil, err
	}
	if program.Span != nil {
		doc["span"] = encodeSpan(program.Span)
	}
	return doc, nil
}

// Marshal renders a program as wire-format JSON.
func Marshal(program *ast.Program) ([]byte, error) {
	doc, err := Encode(program)
	if err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

func encodeBlock(block *ast.Block) (map[string]any, error) {
	stmts := make([]any, 0, len(block.Stmts))
	for _, stmt := range block.Stmts {
		encoded, err := encodeStmt(stmt)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, encoded)
	}
	return map[string]any{"kind": "block", "statements": stmts}, nil
}

func encodeStmt(stmt ast.Stmt) (map[string]any, error) {
	switch stmt := stmt.(type) {
	case *ast.Block:
		return encodeBlock(stmt)
	case *ast.Function:
		content, err := encodeBlock(stmt.Body)
		if err != nil {
			return nil, err
		}
		envelope, err := integrity.Seal(content)
		if err != nil {
			return nil, err
		}
		if stmt.Span != nil {
			envelope["span"] = encodeSpan(stmt.Span)
		}
		params := make([]any, len(stmt.Params))
		for i, p := range stmt.Params {
			params[i] = p
		}
		node := map[string]any{
			"kind":   "function",
			"name":   stmt.Name,
			"params": params,
			"body":   envelope,
		}
		if stmt.ReturnType != "" {
			node["return_type"] = stmt.ReturnType
		}
		return node, nil
	case *ast.Assign:
		value, err := encodeExpr(stmt.Value)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": "assign", "name": stmt.Name, "value": value}, nil
	case *ast.If:
		cond, err := encodeExpr(stmt.Cond)
		if err != nil {
			return nil, err
		}
		then, err := encodeBlock(stmt.Then)
		if err != nil {
			return nil, err
		}
		node := map[string]any{"kind": "if", "cond": cond, "then": then}
		if stmt.Else != nil {
			elseBlock, err := encodeBlock(stmt.Else)
			if err != nil {
				return nil, err
			}
			node["else"] = elseBlock
		}
		return node, nil
	case *ast.While:
		cond, err := encodeExpr(stmt.Cond)
		if err != nil {
			return nil, err
		}
		body, err := encodeBlock(stmt.Body)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": "while", "cond": cond, "body": body}, nil
	case *ast.FlowAnnotation:
		return map[string]any{"kind": "flow", "name": stmt.Name, "type": stmt.TypeName}, nil
	case *ast.NeuroBlock:
		node := map[string]any{"kind": "neuro", "name": stmt.Name}
		if stmt.Config != nil {
			node["config"] = stmt.Config
		}
		return node, nil
	case *ast.ExprStmt:
		expr, err := encodeExpr(stmt.Expr)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": "expr", "expr": expr}, nil
	}
	return nil, errz.Newf(errz.Parse, "cannot encode statement: %T", stmt)
}

func encodeExpr(expr ast.Expr) (map[string]any, error) {
	switch expr := expr.(type) {
	case *ast.Int:
		return map[string]any{"kind": "int", "value": expr.Value}, nil
	case *ast.Float:
		return map[string]any{"kind": "float", "value": expr.Value}, nil
	case *ast.String:
		return map[string]any{"kind": "string", "value": expr.Value}, nil
	case *ast.Bool:
		return map[string]any{"kind": "bool", "value": expr.Value}, nil
	case *ast.Var:
		return map[string]any{"kind": "var", "name": expr.Name}, nil
	case *ast.Call:
		args := make([]any, 0, len(expr.Args))
		for _, arg := range expr.Args {
			encoded, err := encodeExpr(arg)
			if err != nil {
				return nil, err
			}
			args = append(args, encoded)
		}
		return map[string]any{"kind": "call", "name": expr.Name, "args": args}, nil
	case *ast.List:
		items := make([]any, 0, len(expr.Items))
		for _, item := range expr.Items {
			encoded, err := encodeExpr(item)
			if err != nil {
				return nil, err
			}
			items = append(items, encoded)
		}
		return map[string]any{"kind": "list", "items": items}, nil
	case *ast.BinaryOp:
		name, ok := binaryOpNames[expr.Op]
		if !ok {
			return nil, errz.Newf(errz.Parse, "cannot encode binary operator %q", expr.Op)
		}
		left, err := encodeExpr(expr.Left)
		if err != nil {
			return nil, err
		}
		right, err := encodeExpr(expr.Right)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": "binop", "op": name, "left": left, "right": right}, nil
	case *ast.Hole:
		return map[string]any{"kind": "hole"}, nil
	}
	return nil, errz.Newf(errz.Parse, "cannot encode expression: %T", expr)
}

var binaryOpNames = map[op.BinaryOpType]string{
	op.Add:         "add",
	op.Subtract:    "sub",
	op.Multiply:    "mul",
	op.GreaterThan: "gt",
	op.LessThan:    "lt",
	op.Equal:       "eq",
}

func encodeSpan(span *ast.Span) map[string]any {
	node := map[string]any{}
	if span.File != "" {
		node["file"] = span.File
	}
	if span.Line != 0 {
		node["line"] = span.Line
	}
	if span.Col != 0 {
		node["col"] = span.Col
	}
	return node
}
