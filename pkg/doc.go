// Package pkg provides the core libraries for the sbomstore multi-format
// document store.
//
// # Overview
//
// sbomstore moves SPDX-style document graphs between an in-memory reference
// graph and four wire formats (JSON, pretty JSON, XML, YAML). The pkg
// directory is organized by concern:
//
//   - [store] - the reference graph: namespaces of typed, identified
//     elements, plus the namespace admission protocol
//   - [props] - the property-name codec (singular internal names, plural
//     wire names)
//   - [tree] - the abstract document tree and one codec per wire format
//   - [serial] - the verbosity-aware serializer and the COMPACT deserializer
//   - [multiformat] - the facade tying format/verbosity configuration to
//     serialize and deserialize calls
//   - [errors] - structured error codes shared by all of the above
//   - [observability] - optional instrumentation hooks
//
// # Data Flow
//
//	reference graph (store)
//	         ↓  serial.Serialize (verbosity policy, cycle guard)
//	   abstract tree (tree)
//	         ↓  tree.Codec.Encode
//	   JSON / XML / YAML bytes
//
// and the inverse for deserialization, which runs through the namespace
// admission protocol before any element becomes visible.
//
// # Quick Start
//
//	st := multiformat.New(tree.FormatJSONPretty, serial.VerboseCompact)
//	ns, err := st.Deserialize(input, false)
//	if err != nil {
//	    // handle structured error, e.g. errors.Is(err, errors.ErrCodeNamespaceExists)
//	}
//	st.SetFormat(tree.FormatYAML)
//	err = st.Serialize(ns, output)
//
// [store]: https://pkg.go.dev/github.com/matzehuels/sbomstore/pkg/store
// [props]: https://pkg.go.dev/github.com/matzehuels/sbomstore/pkg/props
// [tree]: https://pkg.go.dev/github.com/matzehuels/sbomstore/pkg/tree
// [serial]: https://pkg.go.dev/github.com/matzehuels/sbomstore/pkg/serial
// [multiformat]: https://pkg.go.dev/github.com/matzehuels/sbomstore/pkg/multiformat
// [errors]: https://pkg.go.dev/github.com/matzehuels/sbomstore/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/sbomstore/pkg/observability
package pkg
