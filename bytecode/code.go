// Package bytecode defines the compiled form of a program: a flat
// instruction sequence plus a constant pool and a names table. Compiled
// code is produced by the compiler and consumed by the virtual machine.
package bytecode

import (
	"fmt"
	"strings"

	"github.com/sovereign-lang/sovereign/op"
)

// Program is a compiled unit of code. Constants hold Go primitives and
// *Function values; the VM wraps them into runtime values at load time.
type Program struct {
	Instructions []op.Code
	Constants    []any
	Names        []string
}

// Constant returns the constant at the given index.
func (p *Program) Constant(i int) any {
	return p.Constants[i]
}

// Name returns the name at the given index.
func (p *Program) Name(i int) string {
	return p.Names[i]
}

// AddConstant appends a constant and returns its index.
func (p *Program) AddConstant(c any) int {
	p.Constants = append(p.Constants, c)
	return len(p.Constants) - 1
}

// AddName interns a name and returns its index.
func (p *Program) AddName(name string) int {
	for i, n := range p.Names {
		if n == name {
			return i
		}
	}
	p.Names = append(p.Names, name)
	return len(p.Names) - 1
}

// Emit appends an instruction with its operands and returns the offset of
// the instruction.
func (p *Program) Emit(code op.Code, operands ...op.Code) int {
	offset := len(p.Instructions)
	p.Instructions = append(p.Instructions, code)
	p.Instructions = append(p.Instructions, operands...)
	return offset
}

// Function is a compiled function stored in a constant pool.
type Function struct {
	Name       string
	Params     []string
	ReturnType string
	Code       *Program
}

func (f *Function) String() string {
	return fmt.Sprintf("compiled_function(%s)", f.Name)
}

// Disassemble returns a human readable listing of the program, including
// nested function code.
func Disassemble(p *Program) string {
	var out strings.Builder
	disassemble(p, "main", &out)
	for _, c := range p.Constants {
		if fn, ok := c.(*Function); ok {
			out.WriteString("\n")
			disassemble(fn.Code, fn.Name, &out)
		}
	}
	return out.String()
}

func disassemble(p *Program, name string, out *strings.Builder) {
	fmt.Fprintf(out, "%s:\n", name)
	for ip := 0; ip < len(p.Instructions); {
		code := p.Instructions[ip]
		info := op.GetInfo(code)
		fmt.Fprintf(out, "%6d %-28s", ip, info.Name)
		for i := 0; i < info.OperandCount; i++ {
			operand := p.Instructions[ip+1+i]
			fmt.Fprintf(out, " %d", operand)
			if code == op.LoadConst || code == op.MakeFunction {
				fmt.Fprintf(out, " (%v)", p.Constants[int(operand)])
			} else if code == op.LoadName || code == op.StoreName {
				fmt.Fprintf(out, " (%s)", p.Names[int(operand)])
			}
		}
		out.WriteString("\n")
		ip += 1 + info.OperandCount
	}
}
