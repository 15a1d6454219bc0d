package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// jsonCodec encodes the tree as JSON, optionally indented. A hand-rolled
// writer is used instead of json.Marshal because object fields must retain
// insertion order.
type jsonCodec struct {
	pretty bool
}

// Encode writes root as JSON followed by a newline.
func (c jsonCodec) Encode(w io.Writer, root *Node) error {
	var buf bytes.Buffer
	if err := c.write(&buf, root, 0); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

func (c jsonCodec) write(buf *bytes.Buffer, n *Node, depth int) error {
	switch n.Kind {
	case KindNull:
		buf.WriteString("null")
	case KindString:
		b, err := json.Marshal(n.Str)
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindNumber:
		buf.WriteString(formatNumber(n.Num))
	case KindBool:
		buf.WriteString(strconv.FormatBool(n.Bool))
	case KindObject:
		if len(n.Fields) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteByte('{')
		for i, f := range n.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			c.newline(buf, depth+1)
			name, err := json.Marshal(f.Name)
			if err != nil {
				return err
			}
			buf.Write(name)
			buf.WriteByte(':')
			if c.pretty {
				buf.WriteByte(' ')
			}
			if err := c.write(buf, f.Value, depth+1); err != nil {
				return err
			}
		}
		c.newline(buf, depth)
		buf.WriteByte('}')
	case KindArray:
		if len(n.Items) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteByte('[')
		for i, item := range n.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			c.newline(buf, depth+1)
			if err := c.write(buf, item, depth+1); err != nil {
				return err
			}
		}
		c.newline(buf, depth)
		buf.WriteByte(']')
	default:
		return fmt.Errorf("unknown node kind %d", n.Kind)
	}
	return nil
}

func (c jsonCodec) newline(buf *bytes.Buffer, depth int) {
	if c.pretty {
		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat("  ", depth))
	}
}

// Decode parses one JSON document from r.
func (c jsonCodec) Decode(r io.Reader) (*Node, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return fromAny(v)
}

// fromAny converts a decoded JSON value into a Node. Object field order is
// whatever the map iteration yields; decoded trees are consumed by name, not
// position, so that is fine.
func fromAny(v any) (*Node, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("number %q: %w", t.String(), err)
		}
		return Number(f), nil
	case float64:
		return Number(t), nil
	case []any:
		arr := Array()
		for _, item := range t {
			n, err := fromAny(item)
			if err != nil {
				return nil, err
			}
			arr.Append(n)
		}
		return arr, nil
	case map[string]any:
		obj := Object()
		for name, val := range t {
			n, err := fromAny(val)
			if err != nil {
				return nil, err
			}
			obj.Set(name, n)
		}
		return obj, nil
	}
	return nil, fmt.Errorf("unsupported value type %T", v)
}

// formatNumber renders a float the way encoding/json would: integral values
// without a fractional part.
func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
