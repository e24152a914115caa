package object

import (
	"github.com/sovereign-lang/sovereign/errz"
	"github.com/sovereign-lang/sovereign/op"
)

// BinaryOp applies a strict binary operator to two evaluated operands.
// Both engines route every operator through this single function so that
// promotion and error classification cannot drift between them.
//
// Mixed int/float operands promote to float. Comparing values of
// incompatible kinds is a type error, not a false result.
func BinaryOp(opType op.BinaryOpType, left, right Value) (Value, error) {
	switch left := left.(type) {
	case *Int:
		switch right := right.(type) {
		case *Int:
			return intOp(opType, left.value, right.value)
		case *Float:
			return floatOp(opType, float64(left.value), right.value)
		}
	case *Float:
		switch right := right.(type) {
		case *Int:
			return floatOp(opType, left.value, float64(right.value))
		case *Float:
			return floatOp(opType, left.value, right.value)
		}
	case *String:
		if right, ok := right.(*String); ok {
			return stringOp(opType, left.value, right.value)
		}
	case *Bool:
		if right, ok := right.(*Bool); ok && opType == op.Equal {
			return NewBool(left.value == right.value), nil
		}
	case *List:
		if right, ok := right.(*List); ok && opType == op.Equal {
			return NewBool(left.Equals(right)), nil
		}
	case *UnitType:
		if _, ok := right.(*UnitType); ok && opType == op.Equal {
			return True, nil
		}
	case *HoleType:
		if _, ok := right.(*HoleType); ok && opType == op.Equal {
			return True, nil
		}
	}
	return nil, errz.Newf(errz.Type,
		"unsupported operand types for %s: %s and %s",
		opType, left.Type(), right.Type())
}

func intOp(opType op.BinaryOpType, left, right int64) (Value, error) {
	switch opType {
	case op.Add:
		return NewInt(left + right), nil
	case op.Subtract:
		return NewInt(left - right), nil
	case op.Multiply:
		return NewInt(left * right), nil
	case op.GreaterThan:
		return NewBool(left > right), nil
	case op.LessThan:
		return NewBool(left < right), nil
	case op.Equal:
		return NewBool(left == right), nil
	}
	return nil, errz.Newf(errz.Runtime, "invalid binary operator: %d", opType)
}

func floatOp(opType op.BinaryOpType, left, right float64) (Value, error) {
	switch opType {
	case op.Add:
		return NewFloat(left + right), nil
	case op.Subtract:
		return NewFloat(left - right), nil
	case op.Multiply:
		return NewFloat(left * right), nil
	case op.GreaterThan:
		return NewBool(left > right), nil
	case op.LessThan:
		return NewBool(left < right), nil
	case op.Equal:
		return NewBool(left == right), nil
	}
	return nil, errz.Newf(errz.Runtime, "invalid binary operator: %d", opType)
}

func stringOp(opType op.BinaryOpType, left, right string) (Value, error) {
	switch opType {
	case op.Add:
		return NewString(left + right), nil
	case op.GreaterThan:
		return NewBool(left > right), nil
	case op.LessThan:
		return NewBool(left < right), nil
	case op.Equal:
		return NewBool(left == right), nil
	}
	return nil, errz.Newf(errz.Type,
		"unsupported operand types for %s: string and string", opType)
}
