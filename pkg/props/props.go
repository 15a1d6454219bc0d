// Package props defines the property-name codec used on the wire.
//
// Collection-valued properties are stored under a singular internal name and
// serialized under a plural wire name. The mapping is defined by an explicit
// table for every property name the model actually uses, with a suffix
// heuristic (trailing "y" becomes "ies", otherwise append "s") as fallback
// for names the table does not know. One legacy name has an irregular plural
// and is exempt from the transform in both directions.
//
// The inverse law ToInternalName(ToWireName(p)) == p holds for every name in
// the table by construction. The fallback is asymmetric for names ending in
// "y": the "ies" suffix maps back by truncation, not by restoring the "y".
// Callers introducing property names outside the table must verify the round
// trip themselves or extend the table.
package props

import "regexp"

// ExemptCollectionName is the one property whose plural form is irregular:
// it is stored unchanged in both directions.
const ExemptCollectionName = "licenseInfoFromFiles"

// Well-known field and property names.
const (
	FieldID               = "SPDXID"
	PropDocumentNamespace = "documentNamespace"
	PropLicenseExpression = "licenseExpression"
	DocumentID            = "SPDXRef-DOCUMENT"
	DocumentType          = "Document"
)

// collectionNames maps each known collection-valued internal name to its
// wire name. The suffix heuristic covers unknown names.
var collectionNames = map[string]string{
	"annotation":           "annotations",
	"checksum":             "checksums",
	"externalDocumentRef":  "externalDocumentRefs",
	"externalRef":          "externalRefs",
	"fileContributor":      "fileContributors",
	"fileType":             "fileTypes",
	"hasFile":              "hasFiles",
	"licenseInfoInFile":    "licenseInfoInFiles",
	"licenseInfoInSnippet": "licenseInfoInSnippets",
	"member":               "members",
	"range":                "ranges",
	ExemptCollectionName:   ExemptCollectionName,
}

// internalNames is the inverse of collectionNames, built at init.
var internalNames = func() map[string]string {
	m := make(map[string]string, len(collectionNames))
	for internal, wire := range collectionNames {
		m[wire] = internal
	}
	return m
}()

// licenseProperties are the property names that semantically carry a license
// expression. References held under these names are rendered as flat
// expression text at STANDARD verbosity instead of being inlined.
var licenseProperties = map[string]bool{
	"licenseConcluded":     true,
	"licenseDeclared":      true,
	"licenseInfoFromFiles": true,
	"licenseInfoInFile":    true,
	"licenseInfoInSnippet": true,
}

// idPattern matches element identifiers resolvable within a namespace.
var idPattern = regexp.MustCompile(`^(SPDXRef|DocumentRef|LicenseRef)-`)

// ToWireName maps an internal (singular) property name to the plural name
// used for its collection on the wire.
func ToWireName(propertyName string) string {
	if wire, ok := collectionNames[propertyName]; ok {
		return wire
	}
	if n := len(propertyName); n > 0 && propertyName[n-1] == 'y' {
		return propertyName[:n-1] + "ies"
	}
	return propertyName + "s"
}

// ToInternalName maps a wire (plural) property name back to its internal
// singular form. For names in the table this is the exact inverse of
// ToWireName. The fallback truncates an "ies" suffix without appending
// anything, and otherwise strips one trailing character.
func ToInternalName(wireName string) string {
	if internal, ok := internalNames[wireName]; ok {
		return internal
	}
	if n := len(wireName); n > 3 && wireName[n-3:] == "ies" {
		return wireName[:n-3]
	}
	if n := len(wireName); n > 1 && wireName[n-1] == 's' {
		return wireName[:n-1]
	}
	return wireName
}

// IsCollectionName reports whether wireName is a plural wire name, meaning a
// scalar found under it still deserializes as a collection property (the XML
// codec cannot distinguish a one-element collection from a scalar). Known
// wire names answer from the table; unknown names answer by suffix: an "ies"
// suffix is always plural, an "s" suffix is plural when the heuristic round
// trips.
func IsCollectionName(wireName string) bool {
	if _, ok := internalNames[wireName]; ok {
		return true
	}
	if n := len(wireName); n > 3 && wireName[n-3:] == "ies" {
		return true
	}
	internal := ToInternalName(wireName)
	return internal != wireName && ToWireName(internal) == wireName
}

// IsLicenseProperty reports whether the internal property name carries a
// license expression.
func IsLicenseProperty(propertyName string) bool {
	return licenseProperties[propertyName]
}

// IsElementID reports whether s is syntactically an element identifier.
func IsElementID(s string) bool {
	return idPattern.MatchString(s)
}
