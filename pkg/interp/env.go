package interp

import "sort"

// Environment maps variable names to their current values. A fresh, empty
// Environment is created for every run.
type Environment struct {
	vars map[string]int32
}

// NewEnvironment returns an Environment with no variables assigned.
func NewEnvironment() *Environment {
	return &Environment{vars: make(map[string]int32)}
}

// Lookup returns the value of name and whether it has been assigned.
func (e *Environment) Lookup(name string) (int32, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Set assigns value to name, replacing any previous value.
func (e *Environment) Set(name string, value int32) {
	e.vars[name] = value
}

// Len returns the number of assigned variables.
func (e *Environment) Len() int {
	return len(e.vars)
}

// Names returns the assigned variable names in sorted order.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.vars))
	for name := range e.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
