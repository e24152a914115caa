package object

// Scope is a chain of lexical variable frames. Lookup walks outward from
// the innermost frame. The parent reference is a non-owning back-link
// used only for lookup.
type Scope struct {
	vars     map[string]Value
	parent   *Scope
	boundary bool
}

// NewScope returns a frame nested inside parent.
func NewScope(parent *Scope) *Scope {
	return &Scope{vars: map[string]Value{}, parent: parent}
}

// NewFunctionScope returns a frame that starts a function boundary.
// Assignments inside the function never rebind names beyond this frame.
func NewFunctionScope(parent *Scope) *Scope {
	return &Scope{vars: map[string]Value{}, parent: parent, boundary: true}
}

// Get resolves a name, walking outward across all frames including
// function boundaries (lexical closure lookup).
func (s *Scope) Get(name string) (Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Declare creates or replaces a binding in this frame.
func (s *Scope) Declare(name string, value Value) {
	s.vars[name] = value
}

// Assign rebinds an existing name if it is reachable without crossing a
// function boundary; otherwise it creates a binding in the innermost
// frame.
func (s *Scope) Assign(name string, value Value) {
	for cur := s; cur != nil; cur = cur.parent {
		if _, ok := cur.vars[name]; ok {
			cur.vars[name] = value
			return
		}
		if cur.boundary {
			break
		}
	}
	s.vars[name] = value
}
