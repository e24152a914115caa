// Package op defines opcodes used by the compiler and virtual machine, and
// the binary operator set shared by both execution engines.
package op

// Code is an integer opcode that indicates an operation to execute.
type Code uint16

const (
	Invalid Code = 0

	// Execution
	Nop         Code = 1
	Halt        Code = 2
	Call        Code = 3
	ReturnValue Code = 4

	// Jump
	JumpBackward          Code = 10
	JumpForward           Code = 11
	PopJumpForwardIfFalse Code = 12

	// Load / store
	LoadConst Code = 20
	LoadName  Code = 21
	StoreName Code = 22

	// Operations
	BinaryOp Code = 30

	// Build
	BuildList    Code = 40
	MakeFunction Code = 41

	// Stack
	PopTop Code = 50

	// Push constants
	Unit  Code = 60
	False Code = 61
	True  Code = 62
	Hole  Code = 63
)

// BinaryOpType describes a type of binary operation, as in an operation
// that takes two operands.
type BinaryOpType uint16

const (
	Add         BinaryOpType = 1
	Subtract    BinaryOpType = 2
	Multiply    BinaryOpType = 3
	GreaterThan BinaryOpType = 4
	LessThan    BinaryOpType = 5
	Equal       BinaryOpType = 6
)

// String returns a string representation of the binary operation.
// For example "+" for addition.
func (bop BinaryOpType) String() string {
	switch bop {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case GreaterThan:
		return ">"
	case LessThan:
		return "<"
	case Equal:
		return "=="
	default:
		return ""
	}
}

// Info contains information about an opcode.
type Info struct {
	Code         Code
	Name         string
	OperandCount int
}

var infos = make([]Info, 256)

func init() {
	type opInfo struct {
		op    Code
		name  string
		count int
	}
	ops := []opInfo{
		{BinaryOp, "BINARY_OP", 1},
		{BuildList, "BUILD_LIST", 1},
		{Call, "CALL", 2},
		{False, "FALSE", 0},
		{Halt, "HALT", 0},
		{Hole, "HOLE", 0},
		{JumpBackward, "JUMP_BACKWARD", 1},
		{JumpForward, "JUMP_FORWARD", 1},
		{LoadConst, "LOAD_CONST", 1},
		{LoadName, "LOAD_NAME", 1},
		{MakeFunction, "MAKE_FUNCTION", 1},
		{Nop, "NOP", 0},
		{PopJumpForwardIfFalse, "POP_JUMP_FORWARD_IF_FALSE", 1},
		{PopTop, "POP_TOP", 0},
		{ReturnValue, "RETURN_VALUE", 0},
		{StoreName, "STORE_NAME", 1},
		{True, "TRUE", 0},
		{Unit, "UNIT", 0},
	}
	for _, o := range ops {
		infos[o.op] = Info{
			Name:         o.name,
			Code:         o.op,
			OperandCount: o.count,
		}
	}
}

// GetInfo returns information about the given opcode.
func GetInfo(op Code) Info {
	return infos[op]
}
