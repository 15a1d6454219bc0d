package serial

// typeSections maps element types to the document field that carries their
// bodies on the wire, in emission order. The document node must not use
// these names for data properties; they are reserved for element sections.
var typeSections = []struct {
	Type string
	Wire string
}{
	{"Package", "packages"},
	{"File", "files"},
	{"Snippet", "snippets"},
	{"Relationship", "relationships"},
	{"ExtractedLicensingInfo", "hasExtractedLicensingInfos"},
	{"Annotation", "annotations"},
}

// sectionTypes is the inverse lookup from wire field name to element type.
var sectionTypes = func() map[string]string {
	m := make(map[string]string, len(typeSections))
	for _, s := range typeSections {
		m[s.Wire] = s.Type
	}
	return m
}()
