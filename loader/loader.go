// Package loader reads and writes the JSON wire format for program ASTs.
// Loading always verifies every integrity envelope before any node is
// trusted; a document that fails verification never yields an executable
// program.
package loader

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/sovereign-lang/sovereign/ast"
	"github.com/sovereign-lang/sovereign/errz"
	"github.com/sovereign-lang/sovereign/integrity"
	"github.com/sovereign-lang/sovereign/op"
)

// Load reads a program document from a file.
func Load(path string) (*ast.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errz.Newf(errz.Parse, "cannot read program %q: %s", path, err).WithCause(err)
	}
	return Parse(data)
}

// Parse decodes a program document, verifies the hash envelope of the
// program unit and of every function body, and builds the typed AST.
func Parse(data []byte) (*ast.Program, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, errz.Newf(errz.Parse, "malformed program document: %s", err).WithCause(err)
	}
	if err := integrity.VerifyProgram(doc); err != nil {
		return nil, err
	}
	hash, _ := doc["hash"].(string)
	body, err := decodeBlock(doc["content"])
	if err != nil {
		return nil, err
	}
	return &ast.Program{
		Hash: hash,
		Body: body,
		Span: decodeSpan(doc["span"]),
	}, nil
}

func decodeBlock(v any) (*ast.Block, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, errz.New(errz.Parse, "expected a block node")
	}
	if kind, _ := m["kind"].(string); kind != "block" {
		return nil, errz.Newf(errz.Parse, "expected a block node (got %q)", m["kind"])
	}
	stmts, ok := m["statements"].([]any)
	if !ok {
		return nil, errz.New(errz.Parse, "block node is missing its statements")
	}
	block := &ast.Block{}
	for _, s := range stmts {
		stmt, err := decodeStmt(s)
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
	}
	return block, nil
}

func decodeStmt(v any) (ast.Stmt, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, errz.New(errz.Parse, "expected a statement node")
	}
	kind, _ := m["kind"].(string)
	switch kind {
	case "block":
		return decodeBlock(m)
	case "function":
		return decodeFunction(m)
	case "assign":
		name, err := requireString(m, "name", kind)
		if err != nil {
			return nil, err
		}
		value, err := decodeExpr(m["value"])
		if err != nil {
			return nil, err
		}
		return &ast.Assign{Name: name, Value: value}, nil
	case "if":
		cond, err := decodeExpr(m["cond"])
		if err != nil {
			return nil, err
		}
		then, err := decodeBlock(m["then"])
		if err != nil {
			return nil, err
		}
		stmt := &ast.If{Cond: cond, Then: then}
		if elseV, ok := m["else"]; ok && elseV != nil {
			stmt.Else, err = decodeBlock(elseV)
			if err != nil {
				return nil, err
			}
		}
		return stmt, nil
	case "while":
		cond, err := decodeExpr(m["cond"])
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(m["body"])
		if err != nil {
			return nil, err
		}
		return &ast.While{Cond: cond, Body: body}, nil
	case "flow":
		name, err := requireString(m, "name", kind)
		if err != nil {
			return nil, err
		}
		typeName, err := requireString(m, "type", kind)
		if err != nil {
			return nil, err
		}
		return &ast.FlowAnnotation{Name: name, TypeName: typeName}, nil
	case "neuro":
		name, _ := m["name"].(string)
		config, _ := m["config"].(map[string]any)
		return &ast.NeuroBlock{Name: name, Config: config}, nil
	case "expr":
		expr, err := decodeExpr(m["expr"])
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Expr: expr}, nil
	}
	return nil, errz.Newf(errz.Parse, "unknown statement kind %q", kind)
}

func decodeFunction(m map[string]any) (*ast.Function, error) {
	name, err := requireString(m, "name", "function")
	if err != nil {
		return nil, err
	}
	var params []string
	if rawParams, ok := m["params"].([]any); ok {
		for _, p := range rawParams {
			s, ok := p.(string)
			if !ok {
				return nil, errz.Newf(errz.Parse, "function %q has a non-string parameter", name)
			}
			params = append(params, s)
		}
	}
	returnType, _ := m["return_type"].(string)
	envelope, ok := m["body"].(map[string]any)
	if !ok {
		return nil, errz.Newf(errz.Parse, "function %q is missing its body envelope", name)
	}
	hash, _ := envelope["hash"].(string)
	body, err := decodeBlock(envelope["content"])
	if err != nil {
		return nil, err
	}
	return &ast.Function{
		Name:       name,
		Params:     params,
		ReturnType: returnType,
		Hash:       hash,
		Body:       body,
		Span:       decodeSpan(envelope["span"]),
	}, nil
}

func decodeExpr(v any) (ast.Expr, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, errz.New(errz.Parse, "expected an expression node")
	}
	kind, _ := m["kind"].(string)
	switch kind {
	case "int":
		n, ok := m["value"].(json.Number)
		if !ok {
			return nil, errz.New(errz.Parse, "int literal is missing its value")
		}
		i, err := n.Int64()
		if err != nil {
			return nil, errz.Newf(errz.Parse, "invalid int literal %q", n.String())
		}
		return &ast.Int{Value: i}, nil
	case "float":
		n, ok := m["value"].(json.Number)
		if !ok {
			return nil, errz.New(errz.Parse, "float literal is missing its value")
		}
		f, err := n.Float64()
		if err != nil {
			return nil, errz.Newf(errz.Parse, "invalid float literal %q", n.String())
		}
		return &ast.Float{Value: f}, nil
	case "string":
		s, err := requireString(m, "value", kind)
		if err != nil {
			return nil, err
		}
		return &ast.String{Value: s}, nil
	case "bool":
		b, ok := m["value"].(bool)
		if !ok {
			return nil, errz.New(errz.Parse, "bool literal is missing its value")
		}
		return &ast.Bool{Value: b}, nil
	case "var":
		name, err := requireString(m, "name", kind)
		if err != nil {
			return nil, err
		}
		return &ast.Var{Name: name}, nil
	case "call":
		name, err := requireString(m, "name", kind)
		if err != nil {
			return nil, err
		}
		call := &ast.Call{Name: name}
		if rawArgs, ok := m["args"].([]any); ok {
			for _, a := range rawArgs {
				arg, err := decodeExpr(a)
				if err != nil {
					return nil, err
				}
				call.Args = append(call.Args, arg)
			}
		}
		return call, nil
	case "list":
		list := &ast.List{}
		if rawItems, ok := m["items"].([]any); ok {
			for _, item := range rawItems {
				expr, err := decodeExpr(item)
				if err != nil {
					return nil, err
				}
				list.Items = append(list.Items, expr)
			}
		}
		return list, nil
	case "binop":
		opName, err := requireString(m, "op", kind)
		if err != nil {
			return nil, err
		}
		opType, ok := binaryOps[opName]
		if !ok {
			return nil, errz.Newf(errz.Parse, "unknown binary operator %q", opName)
		}
		left, err := decodeExpr(m["left"])
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(m["right"])
		if err != nil {
			return nil, err
		}
		return &ast.BinaryOp{Op: opType, Left: left, Right: right}, nil
	case "hole":
		return &ast.Hole{}, nil
	}
	return nil, errz.Newf(errz.Parse, "unknown expression kind %q", kind)
}

var binaryOps = map[string]op.BinaryOpType{
	"add": op.Add,
	"sub": op.Subtract,
	"mul": op.Multiply,
	"gt":  op.GreaterThan,
	"lt":  op.LessThan,
	"eq":  op.Equal,
}

func decodeSpan(v any) *ast.Span {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	span := &ast.Span{}
	if file, ok := m["file"].(string); ok {
		span.File = file
	}
	if line, ok := m["line"].(json.Number); ok {
		if i, err := line.Int64(); err == nil {
			span.Line = int(i)
		}
	}
	if col, ok := m["col"].(json.Number); ok {
		if i, err := col.Int64(); err == nil {
			span.Col = int(i)
		}
	}
	return span
}

func requireString(m map[string]any, key, kind string) (string, error) {
	s, ok := m[key].(string)
	if !ok {
		return "", errz.Newf(errz.Parse, "%s node is missing %q", kind, key)
	}
	return s, nil
}
