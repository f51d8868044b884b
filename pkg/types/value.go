// Package types implements the mal value model: a sealed union of runtime
// values, the persistent list, text/keyword keyed maps, lexical environments
// and the structured error carried through evaluation.
package types

import (
	"sync"
)

// Value is the interface for all mal runtime values.
// Use the sealed marker method to restrict implementations to this package.
type Value interface {
	malValue() // sealed marker
}

// Nil is the absent value.
type Nil struct{}

func (Nil) malValue() {}

// Bool represents true or false.
type Bool struct {
	Value bool
}

func (Bool) malValue() {}

// Int represents a signed 64-bit integer.
type Int struct {
	Value int64
}

func (Int) malValue() {}

// Str represents text.
type Str struct {
	Value string
}

func (Str) malValue() {}

// Keyword is a self-evaluating name such as :foo. Keywords compare by name
// and never collide with Str values when used as map keys.
type Keyword struct {
	Name string
}

func (Keyword) malValue() {}

// Symbol is an interned name. Two symbols with the same name are the same
// pointer, so symbols compare with ==.
type Symbol struct {
	Name string
}

func (*Symbol) malValue() {}

func (s *Symbol) String() string {
	return s.Name
}

var symbols sync.Map

// Intern returns the unique symbol for name.
func Intern(name string) *Symbol {
	if sym, ok := symbols.Load(name); ok {
		return sym.(*Symbol)
	}
	sym, _ := symbols.LoadOrStore(name, &Symbol{Name: name})
	return sym.(*Symbol)
}

// Vector is a contiguous, random-access sequence.
type Vector struct {
	Items []Value
	Meta  Value
}

func (Vector) malValue() {}

// Closure is a user function created by fn*. Env is captured by reference.
// Params may contain the & marker followed by a single variadic symbol.
type Closure struct {
	Params  []*Symbol
	Body    Value
	Env     *Env
	IsMacro bool
	Meta    Value
}

func (*Closure) malValue() {}

// Func is a host primitive.
type Func struct {
	Name string
	Fn   func(args []Value) (Value, error)
	Meta Value
}

func (*Func) malValue() {}

// Atom is a mutable reference cell compared by identity.
type Atom struct {
	Value Value
}

func (*Atom) malValue() {}

// NewNil returns the nil value.
func NewNil() Value {
	return Nil{}
}

// NewBool creates a boolean value.
func NewBool(b bool) Value {
	return Bool{Value: b}
}

// NewInt creates an integer value.
func NewInt(n int64) Value {
	return Int{Value: n}
}

// NewStr creates a text value.
func NewStr(s string) Value {
	return Str{Value: s}
}

// NewKeyword creates a keyword value. The name excludes the leading colon.
func NewKeyword(name string) Value {
	return Keyword{Name: name}
}

// NewVector creates a vector value.
func NewVector(items []Value) Value {
	return Vector{Items: items}
}

// NewAtom creates a reference cell holding v.
func NewAtom(v Value) *Atom {
	return &Atom{Value: v}
}

// Truthy reports the boolean interpretation of v: only nil and false are falsy.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case nil, Nil:
		return false
	case Bool:
		return val.Value
	default:
		return true
	}
}

// IsNil reports whether v is the nil value.
func IsNil(v Value) bool {
	switch v.(type) {
	case nil, Nil:
		return true
	}
	return false
}

// Items returns the elements of a list or vector. The second result is false
// for every other kind of value.
func Items(v Value) ([]Value, bool) {
	switch val := v.(type) {
	case *List:
		return val.Slice(), true
	case Vector:
		return val.Items, true
	}
	return nil, false
}

// IsSequential reports whether v is a list or a vector.
func IsSequential(v Value) bool {
	switch v.(type) {
	case *List, Vector:
		return true
	}
	return false
}

// MetaOf returns the metadata attached to v, or nil.
func MetaOf(v Value) Value {
	var m Value
	switch val := v.(type) {
	case *List:
		m = val.meta
	case Vector:
		m = val.Meta
	case Map:
		m = val.Meta
	case *Closure:
		m = val.Meta
	case *Func:
		m = val.Meta
	}
	if m == nil {
		return Nil{}
	}
	return m
}

// WithMeta returns a copy of v carrying meta. Only collections and functions
// accept metadata.
func WithMeta(v Value, meta Value) (Value, bool) {
	switch val := v.(type) {
	case *List:
		return val.withMeta(meta), true
	case Vector:
		val.Meta = meta
		return val, true
	case Map:
		val.Meta = meta
		return val, true
	case *Closure:
		c := *val
		c.Meta = meta
		return &c, true
	case *Func:
		f := *val
		f.Meta = meta
		return &f, true
	}
	return nil, false
}

// TypeName returns a short, user-facing name for the kind of v.
func TypeName(v Value) string {
	switch val := v.(type) {
	case nil, Nil:
		return "nil"
	case Bool:
		return "boolean"
	case Int:
		return "number"
	case Str:
		return "string"
	case Keyword:
		return "keyword"
	case *Symbol:
		return "symbol"
	case *List:
		return "list"
	case Vector:
		return "vector"
	case Map:
		return "map"
	case *Closure:
		if val.IsMacro {
			return "macro"
		}
		return "function"
	case *Func:
		return "function"
	case *Atom:
		return "atom"
	default:
		return "unknown"
	}
}
