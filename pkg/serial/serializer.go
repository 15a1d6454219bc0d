package serial

import (
	"github.com/matzehuels/sbomstore/pkg/errors"
	"github.com/matzehuels/sbomstore/pkg/props"
	"github.com/matzehuels/sbomstore/pkg/store"
	"github.com/matzehuels/sbomstore/pkg/tree"
)

// Serialize flattens the document graph of a namespace into an abstract
// tree. The root is always the one-field wrapper {"Document": ...}; the XML
// codec folds the wrapper into the root element name.
//
// The document node carries its own properties plus one section per element
// type holding the bodies of every element of that type, sorted by id.
// Reference-valued properties render according to verbose; an id already
// being expanded on the active path always renders as an id, regardless of
// verbosity, which bounds traversal on cyclic graphs.
func Serialize(st *store.Store, namespace string, verbose Verbose) (*tree.Node, error) {
	items, err := st.Items(namespace)
	if err != nil {
		return nil, err
	}
	var doc *store.Item
	for _, it := range items {
		if it.Type == props.DocumentType {
			doc = it
			break
		}
	}
	if doc == nil {
		return nil, errors.New(errors.ErrCodeMissingDocument, "namespace %q has no Document element", namespace)
	}

	s := &serializer{store: st, ns: namespace, verbose: verbose, path: newRefPath()}
	docNode := s.elementNode(doc)
	for _, section := range typeSections {
		arr := tree.Array()
		for _, it := range items {
			if it.Type == section.Type {
				arr.Append(s.elementNode(it))
			}
		}
		if len(arr.Items) > 0 {
			docNode.Set(section.Wire, arr)
		}
	}
	return tree.Object().Set(props.DocumentType, docNode), nil
}

// serializer carries one traversal's state. The path tracks the ids
// currently being expanded so cycle detection is explicit state rather than
// an accident of recursion depth.
type serializer struct {
	store   *store.Store
	ns      string
	verbose Verbose
	path    *refPath
}

// elementNode renders one element as an object node: SPDXID first, then
// properties in sorted order. Scalars keep their internal name, collections
// take the plural wire name, references render through refNode.
func (s *serializer) elementNode(it *store.Item) *tree.Node {
	s.path.push(it.ID)
	defer s.path.pop()

	obj := tree.Object()
	obj.Set(props.FieldID, tree.String(it.ID))
	for _, name := range it.Names() {
		v, _ := it.Get(name)
		switch v.Kind {
		case store.KindScalar:
			obj.Set(name, scalarNode(v.Scalar))
		case store.KindRef:
			obj.Set(name, s.refNode(name, v.Ref))
		case store.KindList:
			arr := tree.Array()
			for _, member := range v.List {
				if member.Kind == store.KindRef {
					arr.Append(s.refNode(name, member.Ref))
				} else {
					arr.Append(scalarNode(member.Scalar))
				}
			}
			obj.Set(props.ToWireName(name), arr)
		}
	}
	return obj
}

// refNode renders one reference under the configured verbosity. The cycle
// guard takes precedence: an id on the active expansion path renders as an
// id-only string at every verbosity. Dangling references also render as
// ids, since serialization is a read-only traversal and cannot be stricter
// than the store it reads.
func (s *serializer) refNode(name, id string) *tree.Node {
	if s.path.onPath(id) {
		return tree.String(id)
	}
	target, ok := s.store.Get(s.ns, id)
	if !ok {
		return tree.String(id)
	}
	switch s.verbose {
	case VerboseStandard:
		if props.IsLicenseProperty(name) {
			return tree.String(licenseText(target))
		}
		inner := &serializer{store: s.store, ns: s.ns, verbose: VerboseCompact, path: s.path}
		return inner.elementNode(target)
	case VerboseFull:
		return s.elementNode(target)
	default:
		return tree.String(id)
	}
}

// licenseText returns the flat expression form of a license element: its
// licenseExpression scalar when present, otherwise its id (a LicenseRef id
// is itself a valid expression).
func licenseText(it *store.Item) string {
	if v, ok := it.Get(props.PropLicenseExpression); ok && v.Kind == store.KindScalar {
		if s, ok := v.Scalar.(string); ok {
			return s
		}
	}
	return it.ID
}

// scalarNode converts a stored scalar into a tree node.
func scalarNode(v any) *tree.Node {
	switch t := v.(type) {
	case string:
		return tree.String(t)
	case float64:
		return tree.Number(t)
	case bool:
		return tree.Bool(t)
	case nil:
		return tree.Null()
	}
	return tree.Null()
}

// refPath is the set of element ids on the active expansion path: an
// ordered arena of ids plus a membership set for O(1) cycle checks.
type refPath struct {
	ids  []string
	seen map[string]struct{}
}

func newRefPath() *refPath {
	return &refPath{seen: make(map[string]struct{})}
}

func (p *refPath) push(id string) {
	p.ids = append(p.ids, id)
	p.seen[id] = struct{}{}
}

func (p *refPath) pop() {
	last := p.ids[len(p.ids)-1]
	p.ids = p.ids[:len(p.ids)-1]
	delete(p.seen, last)
}

func (p *refPath) onPath(id string) bool {
	_, ok := p.seen[id]
	return ok
}
