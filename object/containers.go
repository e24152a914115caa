package object

import (
	"sort"
	"strings"

	"github.com/sovereign-lang/sovereign/errz"
)

// List is an ordered, mutable sequence of values.
type List struct {
	items []Value
}

func NewList(items []Value) *List {
	return &List{items: items}
}

func (l *List) Type() Type {
	return LIST
}

func (l *List) Value() []Value {
	return l.items
}

func (l *List) Len() int {
	return len(l.items)
}

// Append adds an item in place. Mutation happens only through explicit
// intrinsics.
func (l *List) Append(item Value) {
	l.items = append(l.items, item)
}

func (l *List) Inspect() string {
	var out strings.Builder
	out.WriteString("[")
	for i, item := range l.items {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(item.Inspect())
	}
	out.WriteString("]")
	return out.String()
}

func (l *List) String() string {
	return l.Inspect()
}

func (l *List) Interface() interface{} {
	items := make([]interface{}, len(l.items))
	for i, item := range l.items {
		items[i] = item.Interface()
	}
	return items
}

func (l *List) IsTruthy() bool {
	return len(l.items) > 0
}

func (l *List) Equals(other Value) bool {
	otherList, ok := other.(*List)
	if !ok || len(l.items) != len(otherList.items) {
		return false
	}
	for i, item := range l.items {
		if !item.Equals(otherList.items[i]) {
			return false
		}
	}
	return true
}

// Namespace is a mutable mapping from name to value. Dotted intrinsic
// names like "sys.fs" surface as namespaces to language code, and
// effectful intrinsics use namespaces for structured results.
type Namespace struct {
	entries map[string]Value
}

func NewNamespace(entries map[string]Value) *Namespace {
	if entries == nil {
		entries = map[string]Value{}
	}
	return &Namespace{entries: entries}
}

func (n *Namespace) Type() Type {
	return NAMESPACE
}

func (n *Namespace) Get(name string) (Value, bool) {
	v, ok := n.entries[name]
	return v, ok
}

func (n *Namespace) Set(name string, value Value) {
	n.entries[name] = value
}

func (n *Namespace) Len() int {
	return len(n.entries)
}

// Keys returns the entry names in sorted order.
func (n *Namespace) Keys() []string {
	keys := make([]string, 0, len(n.entries))
	for k := range n.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (n *Namespace) Inspect() string {
	var out strings.Builder
	out.WriteString("{")
	for i, k := range n.Keys() {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(k)
		out.WriteString(": ")
		out.WriteString(n.entries[k].Inspect())
	}
	out.WriteString("}")
	return out.String()
}

func (n *Namespace) String() string {
	return n.Inspect()
}

func (n *Namespace) Interface() interface{} {
	entries := make(map[string]interface{}, len(n.entries))
	for k, v := range n.entries {
		entries[k] = v.Interface()
	}
	return entries
}

func (n *Namespace) IsTruthy() bool {
	return len(n.entries) > 0
}

func (n *Namespace) Equals(other Value) bool {
	otherNs, ok := other.(*Namespace)
	if !ok || len(n.entries) != len(otherNs.entries) {
		return false
	}
	for k, v := range n.entries {
		otherV, ok := otherNs.entries[k]
		if !ok || !v.Equals(otherV) {
			return false
		}
	}
	return true
}

// Set is an unordered collection of primitive values. Members are keyed
// by their canonical inspect string.
type Set struct {
	items map[string]Value
}

// NewSet builds a set from the given items. Only primitive values may be
// set members.
func NewSet(items []Value) (*Set, error) {
	s := &Set{items: map[string]Value{}}
	for _, item := range items {
		if err := s.Add(item); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Set) Type() Type {
	return SET
}

func (s *Set) Add(item Value) error {
	switch item.(type) {
	case *Int, *Float, *String, *Bool:
		s.items[item.Inspect()] = item
		return nil
	default:
		return errz.Newf(errz.Type, "unhashable set member: %s", item.Type())
	}
}

func (s *Set) Contains(item Value) bool {
	_, ok := s.items[item.Inspect()]
	return ok
}

func (s *Set) Len() int {
	return len(s.items)
}

func (s *Set) Inspect() string {
	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "{" + strings.Join(keys, ", ") + "}"
}

func (s *Set) String() string {
	return s.Inspect()
}

func (s *Set) Interface() interface{} {
	items := make([]interface{}, 0, len(s.items))
	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		items = append(items, s.items[k].Interface())
	}
	return items
}

func (s *Set) IsTruthy() bool {
	return len(s.items) > 0
}

func (s *Set) Equals(other Value) bool {
	otherSet, ok := other.(*Set)
	if !ok || len(s.items) != len(otherSet.items) {
		return false
	}
	for k := range s.items {
		if _, ok := otherSet.items[k]; !ok {
			return false
		}
	}
	return true
}
