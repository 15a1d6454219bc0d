package store

import "sort"

// ValueKind discriminates the payload of a Value.
type ValueKind int

// Value kinds.
const (
	KindScalar ValueKind = iota // string, float64, or bool
	KindRef                     // element id resolved within the same namespace
	KindList                    // ordered collection of scalars or refs
)

// Value is one property value: a scalar, a reference to another element, or
// an ordered collection of scalars and references.
type Value struct {
	Kind   ValueKind
	Scalar any // string | float64 | bool when KindScalar
	Ref    string
	List   []Value
}

// StringValue returns a string scalar.
func StringValue(s string) Value { return Value{Kind: KindScalar, Scalar: s} }

// NumberValue returns a numeric scalar.
func NumberValue(f float64) Value { return Value{Kind: KindScalar, Scalar: f} }

// BoolValue returns a boolean scalar.
func BoolValue(b bool) Value { return Value{Kind: KindScalar, Scalar: b} }

// RefValue returns a reference to the element with the given id.
func RefValue(id string) Value { return Value{Kind: KindRef, Ref: id} }

// ListValue returns a collection of the given members.
func ListValue(members ...Value) Value { return Value{Kind: KindList, List: members} }

// Equal reports whether two values are structurally identical.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindScalar:
		return v.Scalar == o.Scalar
	case KindRef:
		return v.Ref == o.Ref
	case KindList:
		if len(v.List) != len(o.List) {
			return false
		}
		for i := range v.List {
			if !v.List[i].Equal(o.List[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Item is a typed, identified element of one namespace: a type tag plus a
// mapping from property name to value.
type Item struct {
	Type  string
	ID    string
	props map[string]Value
}

// NewItem creates an item with the given type tag and id.
func NewItem(typ, id string) *Item {
	return &Item{Type: typ, ID: id, props: make(map[string]Value)}
}

// Set stores a property value, replacing any previous value.
func (it *Item) Set(name string, v Value) *Item {
	if it.props == nil {
		it.props = make(map[string]Value)
	}
	it.props[name] = v
	return it
}

// Get returns the named property value.
func (it *Item) Get(name string) (Value, bool) {
	v, ok := it.props[name]
	return v, ok
}

// Remove deletes the named property.
func (it *Item) Remove(name string) {
	delete(it.props, name)
}

// Names returns the item's property names sorted alphabetically.
func (it *Item) Names() []string {
	names := make([]string, 0, len(it.props))
	for name := range it.props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Equal reports whether two items have the same type, id, and properties.
func (it *Item) Equal(o *Item) bool {
	if it.Type != o.Type || it.ID != o.ID || len(it.props) != len(o.props) {
		return false
	}
	for name, v := range it.props {
		ov, ok := o.props[name]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}
