package tree

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// xmlCodec encodes the tree as indented XML with a leading declaration.
//
// The root wrapper field becomes the root element name, so a tree of
// {"Document": {...}} encodes as <Document>...</Document> with no extra
// nesting. Arrays encode as repeated sibling elements carrying the field
// name; scalars encode as character data. XML carries no type information,
// so every scalar decodes back as a string.
type xmlCodec struct{}

// Encode writes root as XML. The root must be an object with exactly one
// field naming the document element.
func (xmlCodec) Encode(w io.Writer, root *Node) error {
	if root.Kind != KindObject || len(root.Fields) != 1 {
		return fmt.Errorf("xml root must be a single-field object, got %d fields", len(root.Fields))
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	f := root.Fields[0]
	if err := encodeXMLElement(enc, f.Name, f.Value); err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func encodeXMLElement(enc *xml.Encoder, name string, n *Node) error {
	start := xml.StartElement{Name: xml.Name{Local: name}}
	if n.IsScalar() {
		return enc.EncodeElement(scalarText(n), start)
	}
	if n.Kind == KindArray {
		// Arrays never appear here: object fields unroll them below.
		return fmt.Errorf("element %s: nested arrays are not representable in xml", name)
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for _, f := range n.Fields {
		if f.Value.Kind == KindArray {
			for _, item := range f.Value.Items {
				if err := encodeXMLElement(enc, f.Name, item); err != nil {
					return err
				}
			}
			continue
		}
		if err := encodeXMLElement(enc, f.Name, f.Value); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// scalarText renders a scalar node as XML character data.
func scalarText(n *Node) string {
	switch n.Kind {
	case KindString:
		return n.Str
	case KindNumber:
		return formatNumber(n.Num)
	case KindBool:
		return strconv.FormatBool(n.Bool)
	}
	return ""
}

// Decode parses one XML document from r. The result is wrapped in a
// one-field object named after the root element, restoring the tree
// convention shared with the other codecs.
func (xmlCodec) Decode(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode xml: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		node, err := decodeXMLElement(dec)
		if err != nil {
			return nil, err
		}
		return Object().Set(start.Name.Local, node), nil
	}
}

// decodeXMLElement reads the content of an already-opened element up to its
// end tag. Elements with children decode as objects, repeated child names
// coalescing into arrays; leaf elements decode as string scalars.
func decodeXMLElement(dec *xml.Decoder) (*Node, error) {
	var text strings.Builder
	var obj *Node
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			child, err := decodeXMLElement(dec)
			if err != nil {
				return nil, err
			}
			if obj == nil {
				obj = Object()
			}
			addXMLField(obj, t.Name.Local, child)
		case xml.EndElement:
			if obj != nil {
				return obj, nil
			}
			return String(strings.TrimSpace(text.String())), nil
		}
	}
}

// addXMLField inserts a decoded child element, turning repeated names into
// arrays.
func addXMLField(obj *Node, name string, child *Node) {
	existing := obj.Get(name)
	if existing == nil {
		obj.Set(name, child)
		return
	}
	if existing.Kind == KindArray {
		existing.Append(child)
		return
	}
	obj.Set(name, Array(existing, child))
}
