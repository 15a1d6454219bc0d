// Package serial converts between the reference graph held in a store and
// the abstract document tree consumed by the wire codecs.
//
// Serialization walks the graph from the Document element and applies one of
// three verbosity policies to reference-valued properties. Deserialization
// accepts COMPACT-shaped trees only and installs the reconstructed elements
// through the store's namespace admission protocol.
package serial

import (
	"strings"

	"github.com/matzehuels/sbomstore/pkg/errors"
)

// Verbose controls how much of the reference graph is inlined during
// serialization.
type Verbose int

// Verbosity policies.
const (
	// VerboseCompact emits every reference as the referenced element's id.
	VerboseCompact Verbose = iota

	// VerboseStandard inlines each referenced element one level deep, with
	// references inside the inlined element emitted as ids and
	// license-bearing properties emitted as flat expression text.
	VerboseStandard

	// VerboseFull expands every reference transitively, including license
	// elements as full objects.
	VerboseFull
)

// String returns the canonical lowercase name of the verbosity.
func (v Verbose) String() string {
	switch v {
	case VerboseCompact:
		return "compact"
	case VerboseStandard:
		return "standard"
	case VerboseFull:
		return "full"
	}
	return "unknown"
}

// Verbosities lists every verbosity in increasing expansion order.
func Verbosities() []Verbose {
	return []Verbose{VerboseCompact, VerboseStandard, VerboseFull}
}

// ParseVerbose converts a user-supplied name into a Verbose.
func ParseVerbose(s string) (Verbose, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "compact":
		return VerboseCompact, nil
	case "standard":
		return VerboseStandard, nil
	case "full":
		return VerboseFull, nil
	}
	return VerboseCompact, errors.New(errors.ErrCodeInvalidVerbosity, "unknown verbosity %q (want compact, standard, or full)", s)
}
