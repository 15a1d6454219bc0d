package serial

import (
	"github.com/matzehuels/sbomstore/pkg/errors"
	"github.com/matzehuels/sbomstore/pkg/props"
	"github.com/matzehuels/sbomstore/pkg/store"
	"github.com/matzehuels/sbomstore/pkg/tree"
)

// Deserialize reconstructs a document graph from a COMPACT-shaped tree and
// installs it into the store under the namespace named by the document's
// documentNamespace property. The whole input is parsed and validated
// before the store is touched, so a failing call leaves no partial
// namespace visible to other callers.
//
// Only COMPACT shapes are accepted: a tree containing nested object
// expansion fails with UNSUPPORTED_VERBOSITY, because ids inside inlined
// references are not guaranteed present.
func Deserialize(st *store.Store, root *tree.Node, overwrite bool) (string, error) {
	doc := root.Get(props.DocumentType)
	if doc == nil || doc.Kind != tree.KindObject {
		return "", errors.New(errors.ErrCodeMissingDocument, "input has no Document node")
	}

	nsNode := doc.Get(props.PropDocumentNamespace)
	if nsNode == nil {
		return "", errors.New(errors.ErrCodeMissingNamespace, "document has no %s property", props.PropDocumentNamespace)
	}
	if nsNode.Kind != tree.KindString {
		return "", errors.New(errors.ErrCodeMalformedElement, "document property %s must be a string", props.PropDocumentNamespace)
	}
	namespace := nsNode.Str
	if namespace == "" {
		return "", errors.New(errors.ErrCodeEmptyNamespace, "document property %s is empty", props.PropDocumentNamespace)
	}

	d := &deserializer{}
	docID := props.DocumentID
	if idNode := doc.Get(props.FieldID); idNode != nil && idNode.Kind == tree.KindString && idNode.Str != "" {
		docID = idNode.Str
	}
	docItem := store.NewItem(props.DocumentType, docID)
	if err := d.add(docItem); err != nil {
		return "", err
	}

	for _, f := range doc.Fields {
		if f.Name == props.FieldID {
			continue
		}
		if typ, ok := sectionTypes[f.Name]; ok {
			if err := d.parseSection(typ, f.Name, f.Value); err != nil {
				return "", err
			}
			continue
		}
		if err := d.parseProperty(docItem, f.Name, f.Value); err != nil {
			return "", err
		}
	}

	if err := st.Install(namespace, overwrite, d.items); err != nil {
		return "", err
	}
	return namespace, nil
}

// deserializer stages reconstructed items until the whole input is known
// valid; only then does Deserialize hand them to the store.
type deserializer struct {
	items []*store.Item
	ids   map[string]struct{}
}

// add stages an item, rejecting duplicate ids.
func (d *deserializer) add(it *store.Item) error {
	if d.ids == nil {
		d.ids = make(map[string]struct{})
	}
	if _, dup := d.ids[it.ID]; dup {
		return errors.New(errors.ErrCodeMalformedElement, "duplicate element id %q", it.ID)
	}
	d.ids[it.ID] = struct{}{}
	d.items = append(d.items, it)
	return nil
}

// parseSection reconstructs every element body in a type section. The XML
// codec decodes a single-element section without an array wrapper, so a
// lone object is accepted as a one-element section.
func (d *deserializer) parseSection(typ, wire string, n *tree.Node) error {
	members := n.Items
	if n.Kind == tree.KindObject {
		members = []*tree.Node{n}
	} else if n.Kind != tree.KindArray {
		return errors.New(errors.ErrCodeMalformedElement, "section %s must hold element objects", wire)
	}
	for _, member := range members {
		if member.Kind != tree.KindObject {
			return errors.New(errors.ErrCodeMalformedElement, "section %s holds a non-object member", wire)
		}
		if err := d.parseElement(typ, member); err != nil {
			return err
		}
	}
	return nil
}

// parseElement reconstructs one typed element from its object node.
func (d *deserializer) parseElement(typ string, n *tree.Node) error {
	idNode := n.Get(props.FieldID)
	if idNode == nil || idNode.Kind != tree.KindString || idNode.Str == "" {
		return errors.New(errors.ErrCodeMalformedElement, "element of type %s is missing %s", typ, props.FieldID)
	}
	item := store.NewItem(typ, idNode.Str)
	if err := d.add(item); err != nil {
		return err
	}
	for _, f := range n.Fields {
		if f.Name == props.FieldID {
			continue
		}
		if err := d.parseProperty(item, f.Name, f.Value); err != nil {
			return err
		}
	}
	return nil
}

// parseProperty translates one wire field back into a stored property.
// Pluralized fields become collection properties under their internal name;
// strings matching the element id pattern become references; nested objects
// are the STANDARD/FULL shape and are rejected.
func (d *deserializer) parseProperty(item *store.Item, wire string, n *tree.Node) error {
	switch n.Kind {
	case tree.KindObject:
		return errors.New(errors.ErrCodeUnsupportedVerbosity,
			"property %s of element %s holds an inlined object; only COMPACT input is supported", wire, item.ID)
	case tree.KindArray:
		internal := props.ToInternalName(wire)
		members := make([]store.Value, 0, len(n.Items))
		for _, m := range n.Items {
			if m.Kind == tree.KindObject {
				return errors.New(errors.ErrCodeUnsupportedVerbosity,
					"collection %s of element %s holds an inlined object; only COMPACT input is supported", wire, item.ID)
			}
			if m.Kind == tree.KindArray {
				return errors.New(errors.ErrCodeMalformedElement, "collection %s of element %s holds a nested collection", wire, item.ID)
			}
			members = append(members, scalarOrRef(m))
		}
		item.Set(internal, store.ListValue(members...))
		return nil
	case tree.KindNull:
		// Absent value: nothing to store.
		return nil
	default:
		if props.IsCollectionName(wire) {
			// XML decodes a one-element collection as a bare scalar.
			item.Set(props.ToInternalName(wire), store.ListValue(scalarOrRef(n)))
			return nil
		}
		item.Set(wire, scalarOrRef(n))
		return nil
	}
}

// scalarOrRef converts a scalar tree node into a stored value, recognizing
// element ids syntactically.
func scalarOrRef(n *tree.Node) store.Value {
	switch n.Kind {
	case tree.KindString:
		if props.IsElementID(n.Str) {
			return store.RefValue(n.Str)
		}
		return store.StringValue(n.Str)
	case tree.KindNumber:
		return store.NumberValue(n.Num)
	case tree.KindBool:
		return store.BoolValue(n.Bool)
	}
	return store.Value{Kind: store.KindScalar, Scalar: nil}
}
