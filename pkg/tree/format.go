package tree

import (
	"io"
	"strings"

	"github.com/matzehuels/sbomstore/pkg/errors"
)

// Format selects the wire encoding used for a document tree.
type Format int

// Supported wire formats.
const (
	FormatJSON       Format = iota // compact JSON
	FormatJSONPretty               // indented JSON
	FormatXML                      // indented XML with a leading declaration
	FormatYAML
)

// String returns the canonical lowercase name of the format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatJSONPretty:
		return "json-pretty"
	case FormatXML:
		return "xml"
	case FormatYAML:
		return "yaml"
	}
	return "unknown"
}

// Formats lists every supported format in declaration order.
func Formats() []Format {
	return []Format{FormatJSON, FormatJSONPretty, FormatXML, FormatYAML}
}

// ParseFormat converts a user-supplied name into a Format.
// Accepted names are case-insensitive: json, json-pretty (or json_pretty),
// xml, yaml (or yml).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "json-pretty", "json_pretty", "jsonpretty":
		return FormatJSONPretty, nil
	case "xml":
		return FormatXML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return FormatJSON, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want json, json-pretty, xml, or yaml)", s)
}

// Codec translates between a document tree and bytes in one wire format.
// Implementations are stateless values safe for concurrent use.
type Codec interface {
	// Encode writes the tree rooted at root to w.
	Encode(w io.Writer, root *Node) error

	// Decode reads one document tree from r.
	Decode(r io.Reader) (*Node, error)
}

// CodecFor returns the codec for a format. It is a pure function of f, so a
// (format, codec) pair observed together can never diverge.
func CodecFor(f Format) Codec {
	switch f {
	case FormatXML:
		return xmlCodec{}
	case FormatYAML:
		return yamlCodec{}
	case FormatJSONPretty:
		return jsonCodec{pretty: true}
	default:
		return jsonCodec{}
	}
}
