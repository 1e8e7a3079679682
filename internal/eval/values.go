package eval

import (
	"fmt"
	"strings"

	"github.com/roach88/modelir/internal/value"
)

// Values is an ordered name to value assignment, used for constants.
type Values struct {
	names []string
	vals  []value.Value
	index map[string]int
}

// NewValues returns an empty assignment.
func NewValues() *Values {
	return &Values{index: make(map[string]int)}
}

// Set assigns v to name, replacing any earlier value but keeping its
// position.
func (vs *Values) Set(name string, v value.Value) {
	if i, ok := vs.index[name]; ok {
		vs.vals[i] = v
		return
	}
	vs.index[name] = len(vs.names)
	vs.names = append(vs.names, name)
	vs.vals = append(vs.vals, v)
}

// Get returns the value of name.
func (vs *Values) Get(name string) (value.Value, bool) {
	if vs == nil {
		return nil, false
	}
	i, ok := vs.index[name]
	if !ok {
		return nil, false
	}
	return vs.vals[i], true
}

// Len returns the number of assigned names.
func (vs *Values) Len() int {
	if vs == nil {
		return 0
	}
	return len(vs.names)
}

// Names returns the assigned names in insertion order.
func (vs *Values) Names() []string {
	if vs == nil {
		return nil
	}
	return append([]string(nil), vs.names...)
}

// Merge copies every assignment of other into vs.
func (vs *Values) Merge(other *Values) {
	for i, name := range other.Names() {
		vs.Set(name, other.vals[i])
	}
}

// String renders "a=1,b=true".
func (vs *Values) String() string {
	parts := make([]string, vs.Len())
	for i, name := range vs.Names() {
		parts[i] = name + "=" + vs.vals[i].String()
	}
	return strings.Join(parts, ",")
}

// ParseValues parses "a=1,b=true,c=0.5". An empty string yields an empty
// assignment.
func ParseValues(s string) (*Values, error) {
	vs := NewValues()
	s = strings.TrimSpace(s)
	if s == "" {
		return vs, nil
	}
	for _, part := range strings.Split(s, ",") {
		name, raw, ok := strings.Cut(part, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid assignment %q: expected name=value", part)
		}
		v, err := value.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid assignment %q: %w", part, err)
		}
		vs.Set(name, v)
	}
	return vs, nil
}

// State is a valuation of the state variables, indexed like Var.Index.
type State struct {
	Vars []value.Value
}

// NewState returns a state holding vals.
func NewState(vals ...value.Value) *State {
	return &State{Vars: vals}
}

// Var returns the value at index i.
func (s *State) Var(i int) (value.Value, bool) {
	if s == nil || i < 0 || i >= len(s.Vars) || s.Vars[i] == nil {
		return nil, false
	}
	return s.Vars[i], true
}

// String renders "(0,true,2.5)".
func (s *State) String() string {
	parts := make([]string, len(s.Vars))
	for i, v := range s.Vars {
		if v == nil {
			parts[i] = "?"
			continue
		}
		parts[i] = v.String()
	}
	return "(" + strings.Join(parts, ",") + ")"
}
