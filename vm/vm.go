// Package vm implements the bytecode virtual machine, the
// performance-oriented counterpart to the tree-walking interpreter. Both
// engines must be observationally equivalent: identical values,
// identical intrinsic side effects, identical error classification.
//
// Names resolve against the same scope-chain type the interpreter uses,
// so closure capture and assignment visibility match the reference
// semantics by construction.
package vm

import (
	"context"

	"github.com/sovereign-lang/sovereign/bytecode"
	"github.com/sovereign-lang/sovereign/errz"
	"github.com/sovereign-lang/sovereign/intrinsics"
	"github.com/sovereign-lang/sovereign/object"
	"github.com/sovereign-lang/sovereign/op"
)

// maxCallDepth matches the interpreter's recursion bound so both engines
// classify runaway recursion identically.
const maxCallDepth = 10000

type frame struct {
	code  *bytecode.Program
	ip    int
	scope *object.Scope
}

// VM is a stack machine over compiled programs. Each instance is
// single-threaded; run concurrent programs on independent instances.
type VM struct {
	registry *intrinsics.Registry
	stack    []object.Value
	frames   []frame
}

// New returns a VM that dispatches intrinsic calls against the given
// registry.
func New(registry *intrinsics.Registry) *VM {
	return &VM{registry: registry}
}

// Run executes a compiled program in a new VM and returns the result.
func Run(ctx context.Context, program *bytecode.Program, registry *intrinsics.Registry) (object.Value, error) {
	return New(registry).Run(ctx, program)
}

// Run executes the program and returns the value of its final top-level
// statement.
func (vm *VM) Run(ctx context.Context, program *bytecode.Program) (object.Value, error) {
	vm.stack = vm.stack[:0]
	vm.frames = append(vm.frames[:0], frame{
		code:  program,
		scope: object.NewFunctionScope(nil),
	})
	for {
		f := &vm.frames[len(vm.frames)-1]
		if f.ip >= len(f.code.Instructions) {
			return nil, errz.New(errz.Runtime, "instruction pointer ran off the end of the code")
		}
		opcode := f.code.Instructions[f.ip]
		info := op.GetInfo(opcode)
		base := f.ip + 1
		f.ip += 1 + info.OperandCount

		switch opcode {
		case op.Nop:
		case op.Halt:
			return vm.pop(), nil
		case op.LoadConst:
			value, err := wrapConstant(f.code.Constant(int(f.code.Instructions[base])))
			if err != nil {
				return nil, err
			}
			vm.push(value)
		case op.LoadName:
			name := f.code.Name(int(f.code.Instructions[base]))
			value, ok := f.scope.Get(name)
			if !ok {
				return nil, errz.Newf(errz.Runtime, "undefined variable %q", name)
			}
			vm.push(value)
		case op.StoreName:
			name := f.code.Name(int(f.code.Instructions[base]))
			f.scope.Assign(name, vm.pop())
			vm.push(object.Unit)
		case op.BinaryOp:
			right := vm.pop()
			left := vm.pop()
			result, err := object.BinaryOp(op.BinaryOpType(f.code.Instructions[base]), left, right)
			if err != nil {
				return nil, err
			}
			vm.push(result)
		case op.BuildList:
			n := int(f.code.Instructions[base])
			items := make([]object.Value, n)
			for i := n - 1; i >= 0; i-- {
				items[i] = vm.pop()
			}
			vm.push(object.NewList(items))
		case op.MakeFunction:
			fn, ok := f.code.Constant(int(f.code.Instructions[base])).(*bytecode.Function)
			if !ok {
				return nil, errz.New(errz.Runtime, "corrupt constant pool: expected a function")
			}
			f.scope.Declare(fn.Name, object.NewCompiledFunction(fn, f.scope))
			vm.push(object.Unit)
		case op.Call:
			name := f.code.Name(int(f.code.Instructions[base]))
			argc := int(f.code.Instructions[base+1])
			if err := vm.call(ctx, f, name, argc); err != nil {
				return nil, err
			}
		case op.ReturnValue:
			vm.frames = vm.frames[:len(vm.frames)-1]
			// The return value stays on the shared stack for the caller.
		case op.PopJumpForwardIfFalse:
			if !vm.pop().IsTruthy() {
				f.ip += int(f.code.Instructions[base])
			}
		case op.JumpForward:
			f.ip += int(f.code.Instructions[base])
		case op.JumpBackward:
			f.ip -= int(f.code.Instructions[base])
		case op.PopTop:
			vm.pop()
		case op.Unit:
			vm.push(object.Unit)
		case op.True:
			vm.push(object.True)
		case op.False:
			vm.push(object.False)
		case op.Hole:
			vm.push(object.Hole)
		default:
			return nil, errz.Newf(errz.Runtime, "invalid opcode: %d", opcode)
		}
	}
}

// call resolves the callee name in the current scope chain first, then
// against the intrinsic registry, mirroring the interpreter's precedence.
func (vm *VM) call(ctx context.Context, f *frame, name string, argc int) error {
	args := make([]object.Value, argc)
	for i := argc - 1; i >= 0; i-- {
		args[i] = vm.pop()
	}
	if value, ok := f.scope.Get(name); ok {
		switch callee := value.(type) {
		case *object.Function:
			return vm.callFunction(callee, args)
		case *object.Builtin:
			result, err := callee.Call(ctx, args...)
			if err != nil {
				return err
			}
			vm.push(result)
			return nil
		}
		return errz.Newf(errz.Type, "%s is not callable (%s given)", name, value.Type())
	}
	result, err := vm.registry.Dispatch(ctx, name, args)
	if err != nil {
		return err
	}
	vm.push(result)
	return nil
}

func (vm *VM) callFunction(fn *object.Function, args []object.Value) error {
	if len(args) != len(fn.Params()) {
		return errz.Newf(errz.Type, "%s() takes exactly %d arguments (%d given)",
			fn.Name(), len(fn.Params()), len(args))
	}
	compiled := fn.Compiled()
	if compiled == nil {
		return errz.Newf(errz.Runtime, "function %q has no compiled body", fn.Name())
	}
	// The main frame does not count toward the bound: only active
	// function calls do, exactly as the interpreter counts them.
	if len(vm.frames)-1 >= maxCallDepth {
		return errz.New(errz.Runtime, "maximum call depth exceeded")
	}
	scope := object.NewFunctionScope(fn.Scope())
	for i, param := range fn.Params() {
		scope.Declare(param, args[i])
	}
	vm.frames = append(vm.frames, frame{code: compiled.Code, scope: scope})
	return nil
}

func (vm *VM) push(value object.Value) {
	vm.stack = append(vm.stack, value)
}

func (vm *VM) pop() object.Value {
	value := vm.stack[len(vm.stack)-1]
	vm.stack = vm.stack[:len(vm.stack)-1]
	return value
}

func wrapConstant(c any) (object.Value, error) {
	switch c := c.(type) {
	case int64:
		return object.NewInt(c), nil
	case float64:
		return object.NewFloat(c), nil
	case string:
		return object.NewString(c), nil
	case bool:
		return object.NewBool(c), nil
	case nil:
		return object.Unit, nil
	}
	return nil, errz.Newf(errz.Runtime, "unsupported constant type: %T", c)
}
