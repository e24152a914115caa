// Package object provides the value types produced and consumed by the
// execution engines.
//
// A Value is often type asserted to a specific type, such as *object.Int:
//
//	switch v := v.(type) {
//	case *object.Int:
//		// do something with v.Value()
//	case *object.String:
//		// do something with v.Value()
//	}
//
// The Type() method of each value may also be used to get a string name
// of the value type, such as "string" or "int".
package object

import "fmt"

// Type of a value as a string.
type Type string

// Type constants
const (
	BOOL      Type = "bool"
	BUILTIN   Type = "builtin"
	FLOAT     Type = "float"
	FUNCTION  Type = "function"
	HOLE      Type = "hole"
	INT       Type = "int"
	LIST      Type = "list"
	NAMESPACE Type = "namespace"
	SET       Type = "set"
	STRING    Type = "string"
	UNIT      Type = "unit"
)

var (
	Unit  = &UnitType{}
	Hole  = &HoleType{}
	True  = &Bool{value: true}
	False = &Bool{value: false}
)

// Value is the interface that all value types must implement. Values are
// immutable once constructed, except through explicit mutation intrinsics
// on the mutable containers (List, Namespace).
type Value interface {
	// Type of the value.
	Type() Type

	// Inspect returns a string representation of the value.
	Inspect() string

	// Interface converts the value to a native Go value.
	Interface() interface{}

	// Equals returns true if the given value is equal to this value.
	Equals(other Value) bool

	// IsTruthy returns true if the value is considered "truthy".
	IsTruthy() bool
}

// NewBool returns the interned Bool for the given Go bool.
func NewBool(value bool) *Bool {
	if value {
		return True
	}
	return False
}

// PrintableValue returns a value that should be used when printing.
// Primitive types have their underlying Go value passed to fmt so that
// formatting directives work as expected; containers rely on Inspect.
func PrintableValue(v Value) interface{} {
	switch v := v.(type) {
	case *String:
		return v.Value()
	case *Int, *Float, *Bool:
		return v.Interface()
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return v.Inspect()
}
