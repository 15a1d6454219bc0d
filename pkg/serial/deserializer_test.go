package serial

import (
	"testing"

	"github.com/matzehuels/sbomstore/pkg/errors"
	"github.com/matzehuels/sbomstore/pkg/store"
	"github.com/matzehuels/sbomstore/pkg/tree"
)

// compactDoc builds the tree shape the COMPACT serializer would emit for
// seedGraph's contents.
func compactDoc() *tree.Node {
	return tree.Object().Set("Document", tree.Object().
		Set("SPDXID", tree.String("SPDXRef-DOCUMENT")).
		Set("name", tree.String("doc1")).
		Set("documentNamespace", tree.String(testNS)).
		Set("documentDescribes", tree.Array().Append(tree.String("SPDXRef-Package-A"))).
		Set("packages", tree.Array().
			Append(tree.Object().
				Set("SPDXID", tree.String("SPDXRef-Package-A")).
				Set("name", tree.String("pkg-a")).
				Set("licenseDeclared", tree.String("LicenseRef-custom")).
				Set("suppliedBy", tree.String("SPDXRef-Package-B"))).
			Append(tree.Object().
				Set("SPDXID", tree.String("SPDXRef-Package-B")).
				Set("name", tree.String("pkg-b")))).
		Set("hasExtractedLicensingInfos", tree.Array().
			Append(tree.Object().
				Set("SPDXID", tree.String("LicenseRef-custom")).
				Set("licenseExpression", tree.String("MIT AND Apache-2.0")))))
}

func TestDeserialize(t *testing.T) {
	st := store.New()
	ns, err := Deserialize(st, compactDoc(), false)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if ns != testNS {
		t.Errorf("namespace = %q, want %q", ns, testNS)
	}

	items, err := st.Items(ns)
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("got %d items, want 4", len(items))
	}

	doc, ok := st.Get(ns, "SPDXRef-DOCUMENT")
	if !ok || doc.Type != "Document" {
		t.Fatalf("document not installed: %v", doc)
	}
	// The plural wire name comes back under its internal singular name, and
	// id-shaped strings come back as references.
	describe, ok := doc.Get("documentDescribe")
	if !ok || describe.Kind != store.KindList {
		t.Fatalf("documentDescribe = %+v", describe)
	}
	if !describe.List[0].Equal(store.RefValue("SPDXRef-Package-A")) {
		t.Errorf("member = %+v, want a reference", describe.List[0])
	}

	pkgA, _ := st.Get(ns, "SPDXRef-Package-A")
	if pkgA == nil || pkgA.Type != "Package" {
		t.Fatalf("package A not installed")
	}
	if v, _ := pkgA.Get("licenseDeclared"); !v.Equal(store.RefValue("LicenseRef-custom")) {
		t.Errorf("licenseDeclared = %+v, want a reference", v)
	}
	if v, _ := pkgA.Get("name"); !v.Equal(store.StringValue("pkg-a")) {
		t.Errorf("name = %+v", v)
	}
	if lic, ok := st.Get(ns, "LicenseRef-custom"); !ok || lic.Type != "ExtractedLicensingInfo" {
		t.Error("license element not installed under its section's type")
	}
}

func TestDeserializeDefaultDocumentID(t *testing.T) {
	root := tree.Object().Set("Document", tree.Object().
		Set("documentNamespace", tree.String(testNS)))
	st := store.New()
	if _, err := Deserialize(st, root, false); err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if _, ok := st.Get(testNS, "SPDXRef-DOCUMENT"); !ok {
		t.Error("document without SPDXID must install under SPDXRef-DOCUMENT")
	}
}

// The XML codec decodes a one-element collection as a bare scalar and a
// one-element section as a lone object; both shapes must reconstruct.
func TestDeserializeXMLShapes(t *testing.T) {
	root := tree.Object().Set("Document", tree.Object().
		Set("documentNamespace", tree.String(testNS)).
		Set("packages", tree.Object().
			Set("SPDXID", tree.String("SPDXRef-Package-A")).
			Set("hasFiles", tree.String("SPDXRef-File-1"))))
	st := store.New()
	if _, err := Deserialize(st, root, false); err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	pkg, ok := st.Get(testNS, "SPDXRef-Package-A")
	if !ok {
		t.Fatal("lone section object must install as a one-element section")
	}
	v, ok := pkg.Get("hasFile")
	if !ok || v.Kind != store.KindList || len(v.List) != 1 {
		t.Fatalf("hasFile = %+v, want a one-member collection", v)
	}
	if !v.List[0].Equal(store.RefValue("SPDXRef-File-1")) {
		t.Errorf("member = %+v", v.List[0])
	}
}

func TestDeserializeErrors(t *testing.T) {
	withDoc := func(fields ...tree.Field) *tree.Node {
		doc := tree.Object().Set("documentNamespace", tree.String(testNS))
		for _, f := range fields {
			doc.Set(f.Name, f.Value)
		}
		return tree.Object().Set("Document", doc)
	}

	tests := []struct {
		name string
		root *tree.Node
		code errors.Code
	}{
		{
			"NoDocumentNode",
			tree.Object().Set("packages", tree.Array()),
			errors.ErrCodeMissingDocument,
		},
		{
			"DocumentNotAnObject",
			tree.Object().Set("Document", tree.String("nope")),
			errors.ErrCodeMissingDocument,
		},
		{
			"NoNamespace",
			tree.Object().Set("Document", tree.Object().Set("name", tree.String("doc1"))),
			errors.ErrCodeMissingNamespace,
		},
		{
			"NamespaceNotAString",
			tree.Object().Set("Document", tree.Object().Set("documentNamespace", tree.Number(1))),
			errors.ErrCodeMalformedElement,
		},
		{
			"EmptyNamespace",
			tree.Object().Set("Document", tree.Object().Set("documentNamespace", tree.String(""))),
			errors.ErrCodeEmptyNamespace,
		},
		{
			"ElementWithoutID",
			withDoc(tree.Field{Name: "packages", Value: tree.Array().
				Append(tree.Object().Set("name", tree.String("pkg-a")))}),
			errors.ErrCodeMalformedElement,
		},
		{
			"DuplicateID",
			withDoc(tree.Field{Name: "packages", Value: tree.Array().
				Append(tree.Object().Set("SPDXID", tree.String("SPDXRef-Package-A"))).
				Append(tree.Object().Set("SPDXID", tree.String("SPDXRef-Package-A")))}),
			errors.ErrCodeMalformedElement,
		},
		{
			"SectionHoldsScalar",
			withDoc(tree.Field{Name: "packages", Value: tree.String("nope")}),
			errors.ErrCodeMalformedElement,
		},
		{
			"InlinedObjectProperty",
			withDoc(tree.Field{Name: "creationInfo", Value: tree.Object().
				Set("created", tree.String("2024-01-01T00:00:00Z"))}),
			errors.ErrCodeUnsupportedVerbosity,
		},
		{
			"InlinedObjectInCollection",
			withDoc(tree.Field{Name: "documentDescribes", Value: tree.Array().
				Append(tree.Object().Set("SPDXID", tree.String("SPDXRef-Package-A")))}),
			errors.ErrCodeUnsupportedVerbosity,
		},
		{
			"NestedCollection",
			withDoc(tree.Field{Name: "documentDescribes", Value: tree.Array().
				Append(tree.Array().Append(tree.String("SPDXRef-Package-A")))}),
			errors.ErrCodeMalformedElement,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := store.New()
			_, err := Deserialize(st, tt.root, false)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
			// A failing deserialization must leave the store untouched.
			if len(st.Namespaces()) != 0 {
				t.Error("store has namespaces after a failed deserialization")
			}
		})
	}
}

// A COMPACT serialization must reconstruct the exact same graph.
func TestCompactRoundTrip(t *testing.T) {
	src := seedGraph(t)
	root, err := Serialize(src, testNS, VerboseCompact)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}

	dst := store.New()
	ns, err := Deserialize(dst, root, false)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if ns != testNS {
		t.Fatalf("namespace = %q", ns)
	}

	want, _ := src.Items(testNS)
	got, err := dst.Items(testNS)
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d items, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("item %s differs after round trip", want[i].ID)
		}
	}
}
