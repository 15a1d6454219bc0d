// Package tree provides the abstract document tree shared by every wire
// format, plus one codec per format (JSON, pretty JSON, XML, YAML).
//
// A Node is either a scalar (string, number, boolean, null), an ordered list
// of items, or an object whose fields keep insertion order. Field order
// matters for deterministic output; the serializer relies on it.
//
// Codecs translate between a Node tree and bytes. The tree convention is
// that the root is always a one-field object naming the document node. The
// JSON and YAML codecs write that wrapper literally; the XML codec folds the
// single field into the root element name, which is how the XML wire shape
// avoids the extra nesting level.
package tree

// Kind discriminates the payload of a Node.
type Kind int

// Node kinds.
const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindObject
	KindArray
)

// Field is one named member of an object node.
type Field struct {
	Name  string
	Value *Node
}

// Node is one node of an abstract document tree.
// Exactly one payload is meaningful, selected by Kind.
type Node struct {
	Kind   Kind
	Str    string
	Num    float64
	Bool   bool
	Fields []Field // object members, insertion-ordered
	Items  []*Node // array members
}

// Object returns an empty object node.
func Object() *Node {
	return &Node{Kind: KindObject}
}

// Array returns an array node holding the given items.
func Array(items ...*Node) *Node {
	return &Node{Kind: KindArray, Items: items}
}

// String returns a string scalar node.
func String(s string) *Node {
	return &Node{Kind: KindString, Str: s}
}

// Number returns a numeric scalar node.
func Number(f float64) *Node {
	return &Node{Kind: KindNumber, Num: f}
}

// Bool returns a boolean scalar node.
func Bool(b bool) *Node {
	return &Node{Kind: KindBool, Bool: b}
}

// Null returns a null node.
func Null() *Node {
	return &Node{Kind: KindNull}
}

// Set adds or replaces the field name on an object node and returns the
// node for chaining. Setting on a non-object node is a no-op.
func (n *Node) Set(name string, v *Node) *Node {
	if n.Kind != KindObject {
		return n
	}
	for i, f := range n.Fields {
		if f.Name == name {
			n.Fields[i].Value = v
			return n
		}
	}
	n.Fields = append(n.Fields, Field{Name: name, Value: v})
	return n
}

// Get returns the value of the field name, or nil if n is not an object or
// has no such field.
func (n *Node) Get(name string) *Node {
	if n == nil || n.Kind != KindObject {
		return nil
	}
	for _, f := range n.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return nil
}

// Append adds items to an array node.
func (n *Node) Append(items ...*Node) *Node {
	if n.Kind == KindArray {
		n.Items = append(n.Items, items...)
	}
	return n
}

// IsScalar reports whether the node is a string, number, boolean, or null.
func (n *Node) IsScalar() bool {
	switch n.Kind {
	case KindString, KindNumber, KindBool, KindNull:
		return true
	}
	return false
}
