// Package stdlib provides the mal primitive function registry.
package stdlib

import (
	"io"
	"sort"

	"github.com/ToucheSir/mal/pkg/types"
)

// Host is the part of the interpreter primitives may call back into.
type Host interface {
	// Apply calls a mal function with evaluated arguments.
	Apply(fn types.Value, args []types.Value) (types.Value, error)
	// Stdout receives prn and println output.
	Stdout() io.Writer
	// ReadLine prompts for one line of input. ok is false at end of input.
	ReadLine(prompt string) (line string, ok bool)
}

// Fn represents a primitive function.
type Fn struct {
	Name    string
	Execute func(h Host, args []types.Value) (types.Value, error)
}

// Registry holds registered primitive functions.
type Registry struct {
	fns map[string]*Fn
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		fns: make(map[string]*Fn),
	}
}

// Register adds a primitive to the registry, replacing any previous entry
// with the same name.
func (r *Registry) Register(fn Fn) {
	r.fns[fn.Name] = &fn
}

// Get retrieves a primitive by name.
func (r *Registry) Get(name string) *Fn {
	return r.fns[name]
}

// All returns all registered primitives.
func (r *Registry) All() map[string]*Fn {
	return r.fns
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.fns))
	for name := range r.fns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Install binds every registered primitive in env as a function value that
// calls back into h.
func (r *Registry) Install(env *types.Env, h Host) {
	for name, fn := range r.fns {
		execute := fn.Execute
		env.Set(types.Intern(name), &types.Func{
			Name: name,
			Fn: func(args []types.Value) (types.Value, error) {
				return execute(h, args)
			},
		})
	}
}
