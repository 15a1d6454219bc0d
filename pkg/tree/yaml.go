package tree

import (
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// yamlCodec encodes the tree as YAML via yaml.v3 document nodes, which
// preserve mapping key order on both encode and decode.
type yamlCodec struct{}

// Encode writes root as a YAML document.
func (yamlCodec) Encode(w io.Writer, root *Node) error {
	yn, err := toYAMLNode(root)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yn); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func toYAMLNode(n *Node) (*yaml.Node, error) {
	switch n.Kind {
	case KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: n.Str}, nil
	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(n.Bool)}, nil
	case KindNumber:
		tag := "!!float"
		if n.Num == float64(int64(n.Num)) {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: formatNumber(n.Num)}, nil
	case KindArray:
		yn := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range n.Items {
			child, err := toYAMLNode(item)
			if err != nil {
				return nil, err
			}
			yn.Content = append(yn.Content, child)
		}
		return yn, nil
	case KindObject:
		yn := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, f := range n.Fields {
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Name}
			val, err := toYAMLNode(f.Value)
			if err != nil {
				return nil, err
			}
			yn.Content = append(yn.Content, key, val)
		}
		return yn, nil
	}
	return nil, fmt.Errorf("unknown node kind %d", n.Kind)
}

// Decode parses one YAML document from r.
func (yamlCodec) Decode(r io.Reader) (*Node, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	root := &doc
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil, fmt.Errorf("decode yaml: empty document")
		}
		root = doc.Content[0]
	}
	return fromYAMLNode(root)
}

func fromYAMLNode(yn *yaml.Node) (*Node, error) {
	switch yn.Kind {
	case yaml.AliasNode:
		return fromYAMLNode(yn.Alias)
	case yaml.ScalarNode:
		switch yn.Tag {
		case "!!null":
			return Null(), nil
		case "!!bool":
			b, err := strconv.ParseBool(yn.Value)
			if err != nil {
				return nil, fmt.Errorf("bool %q: %w", yn.Value, err)
			}
			return Bool(b), nil
		case "!!int", "!!float":
			f, err := strconv.ParseFloat(yn.Value, 64)
			if err != nil {
				return nil, fmt.Errorf("number %q: %w", yn.Value, err)
			}
			return Number(f), nil
		default:
			return String(yn.Value), nil
		}
	case yaml.SequenceNode:
		arr := Array()
		for _, item := range yn.Content {
			child, err := fromYAMLNode(item)
			if err != nil {
				return nil, err
			}
			arr.Append(child)
		}
		return arr, nil
	case yaml.MappingNode:
		obj := Object()
		for i := 0; i+1 < len(yn.Content); i += 2 {
			val, err := fromYAMLNode(yn.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(yn.Content[i].Value, val)
		}
		return obj, nil
	}
	return nil, fmt.Errorf("unsupported yaml node kind %d", yn.Kind)
}
