package object

import (
	"strconv"
)

// Int is an immutable integer value.
type Int struct {
	value int64
}

func NewInt(value int64) *Int {
	return &Int{value: value}
}

func (i *Int) Type() Type {
	return INT
}

func (i *Int) Value() int64 {
	return i.value
}

func (i *Int) Inspect() string {
	return strconv.FormatInt(i.value, 10)
}

func (i *Int) Interface() interface{} {
	return i.value
}

func (i *Int) IsTruthy() bool {
	return i.value != 0
}

func (i *Int) Equals(other Value) bool {
	switch other := other.(type) {
	case *Int:
		return i.value == other.value
	case *Float:
		return float64(i.value) == other.value
	}
	return false
}

// Float is an immutable floating point value.
type Float struct {
	value float64
}

func NewFloat(value float64) *Float {
	return &Float{value: value}
}

func (f *Float) Type() Type {
	return FLOAT
}

func (f *Float) Value() float64 {
	return f.value
}

func (f *Float) Inspect() string {
	return strconv.FormatFloat(f.value, 'g', -1, 64)
}

func (f *Float) Interface() interface{} {
	return f.value
}

func (f *Float) IsTruthy() bool {
	return f.value != 0
}

func (f *Float) Equals(other Value) bool {
	switch other := other.(type) {
	case *Float:
		return f.value == other.value
	case *Int:
		return f.value == float64(other.value)
	}
	return false
}

// String is an immutable string value.
type String struct {
	value string
}

func NewString(value string) *String {
	return &String{value: value}
}

func (s *String) Type() Type {
	return STRING
}

func (s *String) Value() string {
	return s.value
}

func (s *String) Inspect() string {
	return strconv.Quote(s.value)
}

func (s *String) String() string {
	return s.value
}

func (s *String) Interface() interface{} {
	return s.value
}

func (s *String) IsTruthy() bool {
	return s.value != ""
}

func (s *String) Equals(other Value) bool {
	otherStr, ok := other.(*String)
	return ok && s.value == otherStr.value
}

// Bool is an interned boolean value. Use NewBool to obtain one.
type Bool struct {
	value bool
}

func (b *Bool) Type() Type {
	return BOOL
}

func (b *Bool) Value() bool {
	return b.value
}

func (b *Bool) Inspect() string {
	return strconv.FormatBool(b.value)
}

func (b *Bool) Interface() interface{} {
	return b.value
}

func (b *Bool) IsTruthy() bool {
	return b.value
}

func (b *Bool) Equals(other Value) bool {
	otherBool, ok := other.(*Bool)
	return ok && b.value == otherBool.value
}

// UnitType is the unit value, yielded by statements that have no value of
// their own. There is a single interned instance, object.Unit.
type UnitType struct{}

func (u *UnitType) Type() Type {
	return UNIT
}

func (u *UnitType) Inspect() string {
	return "unit"
}

func (u *UnitType) Interface() interface{} {
	return nil
}

func (u *UnitType) IsTruthy() bool {
	return false
}

func (u *UnitType) Equals(other Value) bool {
	_, ok := other.(*UnitType)
	return ok
}

// HoleType is the sentinel produced by evaluating a hole expression, a
// placeholder for intentionally unresolved code. It is a valid, non-fatal
// runtime value. There is a single interned instance, object.Hole.
type HoleType struct{}

func (h *HoleType) Type() Type {
	return HOLE
}

func (h *HoleType) Inspect() string {
	return "<hole>"
}

func (h *HoleType) Interface() interface{} {
	return nil
}

func (h *HoleType) IsTruthy() bool {
	return false
}

func (h *HoleType) Equals(other Value) bool {
	_, ok := other.(*HoleType)
	return ok
}
