package object

import "github.com/sovereign-lang/sovereign/errz"

// AsString returns the Go string held by a *String value.
func AsString(v Value) (string, error) {
	s, ok := v.(*String)
	if !ok {
		return "", errz.Newf(errz.Type, "expected a string (%s given)", v.Type())
	}
	return s.value, nil
}

// AsInt returns the Go int64 held by an *Int value.
func AsInt(v Value) (int64, error) {
	i, ok := v.(*Int)
	if !ok {
		return 0, errz.Newf(errz.Type, "expected an int (%s given)", v.Type())
	}
	return i.value, nil
}

// AsFloat returns a float64 from an *Int or *Float value.
func AsFloat(v Value) (float64, error) {
	switch v := v.(type) {
	case *Int:
		return float64(v.value), nil
	case *Float:
		return v.value, nil
	}
	return 0, errz.Newf(errz.Type, "expected a number (%s given)", v.Type())
}

// AsList returns the *List behind a value.
func AsList(v Value) (*List, error) {
	l, ok := v.(*List)
	if !ok {
		return nil, errz.Newf(errz.Type, "expected a list (%s given)", v.Type())
	}
	return l, nil
}

// AsStringList converts a *List of *String values to a Go string slice.
func AsStringList(v Value) ([]string, error) {
	l, err := AsList(v)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, l.Len())
	for _, item := range l.Value() {
		s, err := AsString(item)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
