package types

// List is a persistent singly-linked list. Nodes are never mutated after
// construction: Cons allocates one node whose tail is the receiver, and Rest
// returns the existing tail.
type List struct {
	first Value
	rest  *List
	count int
	meta  Value
}

func (*List) malValue() {}

var emptyList = &List{}

// EmptyList returns the shared empty list.
func EmptyList() *List {
	return emptyList
}

// NewList builds a list holding items in order.
func NewList(items ...Value) *List {
	l := emptyList
	for i := len(items) - 1; i >= 0; i-- {
		l = l.Cons(items[i])
	}
	return l
}

// Cons returns a new list with v in front of l.
func (l *List) Cons(v Value) *List {
	return &List{first: v, rest: l, count: l.count + 1}
}

// First returns the head element, or nil for the empty list.
func (l *List) First() Value {
	if l.count == 0 {
		return Nil{}
	}
	return l.first
}

// Rest returns the list without its head. The empty list's rest is empty.
func (l *List) Rest() *List {
	if l.count == 0 {
		return emptyList
	}
	return l.rest
}

// Len returns the number of elements.
func (l *List) Len() int {
	return l.count
}

// Empty reports whether the list has no elements.
func (l *List) Empty() bool {
	return l.count == 0
}

// Nth returns the element at index i.
func (l *List) Nth(i int) (Value, bool) {
	if i < 0 || i >= l.count {
		return nil, false
	}
	for ; i > 0; i-- {
		l = l.rest
	}
	return l.first, true
}

// Slice copies the elements into a new slice.
func (l *List) Slice() []Value {
	out := make([]Value, 0, l.count)
	for n := l; n.count > 0; n = n.rest {
		out = append(out, n.first)
	}
	return out
}

func (l *List) withMeta(meta Value) *List {
	return &List{first: l.first, rest: l.rest, count: l.count, meta: meta}
}
