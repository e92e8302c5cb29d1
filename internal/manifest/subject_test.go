// Copyright (c) 2026 Libretto. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manifest_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/libretto/internal/manifest"
	"github.com/taibuivan/libretto/pkg/pointer"
)

// wire decodes a JSON literal into the `any` tree the codec consumes.
func wire(t *testing.T, document string) any {
	t.Helper()
	var raw any
	require.NoError(t, json.Unmarshal([]byte(document), &raw))
	return raw
}

/*
TestDecodeSubject_Absent verifies that null input is a normal "no subject"
case: absent result, no warning.
*/
func TestDecodeSubject_Absent(t *testing.T) {
	warnings := &manifest.WarningList{}

	subject := manifest.DecodeSubject(nil, manifest.IdentityHref, warnings)

	assert.Nil(t, subject)
	assert.Empty(t, warnings.Warnings)
}

/*
TestDecodeSubject_Shorthand verifies the bare-string form decodes to a
subject with only a localized name.
*/
func TestDecodeSubject_Shorthand(t *testing.T) {
	warnings := &manifest.WarningList{}

	subject := manifest.DecodeSubject(wire(t, `"Horror"`), manifest.IdentityHref, warnings)

	require.NotNil(t, subject)
	assert.Equal(t, "Horror", subject.Name())
	assert.Nil(t, subject.SortAs)
	assert.Nil(t, subject.Scheme)
	assert.Nil(t, subject.Code)
	assert.Empty(t, subject.Links)
	assert.Empty(t, warnings.Warnings)
}

/*
TestDecodeSubject_MissingName verifies that shapes without a resolvable
name degrade to absent with exactly one missing-field warning.
*/
func TestDecodeSubject_MissingName(t *testing.T) {
	tests := []struct {
		name     string
		document string
	}{
		{"empty_object", `{}`},
		{"name_is_number", `{"name": 42}`},
		{"name_is_boolean", `{"name": true}`},
		{"name_object_without_strings", `{"name": {"en": 7}}`},
		{"bare_number", `42`},
		{"bare_boolean", `true`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := &manifest.WarningList{}

			subject := manifest.DecodeSubject(wire(t, tt.document), manifest.IdentityHref, warnings)

			assert.Nil(t, subject)
			require.Len(t, warnings.Warnings, 1)
			assert.Equal(t, manifest.WarnMissingField, warnings.Warnings[0].Kind)
			assert.Equal(t, "[name] is required", warnings.Warnings[0].Message)
		})
	}
}

/*
TestDecodeSubject_FullObject verifies the full object form, including the
optional scalar fields and the nested link list.
*/
func TestDecodeSubject_FullObject(t *testing.T) {
	warnings := &manifest.WarningList{}
	document := `{
		"name": "Fiction",
		"sortAs": "fiction",
		"scheme": "http://example.org/schema",
		"code": "FIC",
		"links": [{"href": "/subjects/fiction"}]
	}`

	subject := manifest.DecodeSubject(wire(t, document), manifest.IdentityHref, warnings)

	require.NotNil(t, subject)
	assert.Equal(t, "Fiction", subject.Name())
	assert.Equal(t, "fiction", pointer.Val(subject.SortAs))
	assert.Equal(t, "http://example.org/schema", pointer.Val(subject.Scheme))
	assert.Equal(t, "FIC", pointer.Val(subject.Code))
	require.Len(t, subject.Links, 1)
	assert.Equal(t, "/subjects/fiction", subject.Links[0].Href)
	assert.Empty(t, warnings.Warnings)
}

/*
TestDecodeSubject_OptionalFieldsDegrade verifies that wrong-typed optional
fields are treated as absent without any warning.
*/
func TestDecodeSubject_OptionalFieldsDegrade(t *testing.T) {
	warnings := &manifest.WarningList{}
	document := `{"name": "Horror", "sortAs": 42, "scheme": true, "code": ["FIC"]}`

	subject := manifest.DecodeSubject(wire(t, document), manifest.IdentityHref, warnings)

	require.NotNil(t, subject)
	assert.Equal(t, "Horror", subject.Name())
	assert.Nil(t, subject.SortAs)
	assert.Nil(t, subject.Scheme)
	assert.Nil(t, subject.Code)
	assert.Empty(t, warnings.Warnings)
}

/*
TestDecodeSubject_LocalizedName verifies the per-language name form and
the default-language projection.
*/
func TestDecodeSubject_LocalizedName(t *testing.T) {
	document := `{"name": {"en": "Science Fiction", "fr": "Science-fiction"}}`

	subject := manifest.DecodeSubject(wire(t, document), manifest.IdentityHref, nil)

	require.NotNil(t, subject)
	assert.Equal(t, "Science Fiction", subject.Name())

	french, ok := subject.LocalizedName.Translation("fr")
	require.True(t, ok)
	assert.Equal(t, "Science-fiction", french)
}

/*
TestDecodeSubject_HrefNormalization verifies the normalizer is passed
through to the link list, including nested children.
*/
func TestDecodeSubject_HrefNormalization(t *testing.T) {
	document := `{
		"name": "Fiction",
		"links": [{"href": "fiction", "children": [{"href": "fiction/new"}]}]
	}`
	prefix := func(href string) string { return "https://catalog.example.org/" + href }

	subject := manifest.DecodeSubject(wire(t, document), prefix, nil)

	require.NotNil(t, subject)
	require.Len(t, subject.Links, 1)
	assert.Equal(t, "https://catalog.example.org/fiction", subject.Links[0].Href)
	require.Len(t, subject.Links[0].Children, 1)
	assert.Equal(t, "https://catalog.example.org/fiction/new", subject.Links[0].Children[0].Href)
}

/*
TestDecodeSubject_MalformedLinksDropped verifies that broken link entries
are dropped by the link codec without sinking the subject itself.
*/
func TestDecodeSubject_MalformedLinksDropped(t *testing.T) {
	warnings := &manifest.WarningList{}
	document := `{"name": "Fiction", "links": [{"href": "/a"}, {"title": "no href"}, {"href": "/b"}]}`

	subject := manifest.DecodeSubject(wire(t, document), manifest.IdentityHref, warnings)

	require.NotNil(t, subject)
	require.Len(t, subject.Links, 2)
	assert.Equal(t, "/a", subject.Links[0].Href)
	assert.Equal(t, "/b", subject.Links[1].Href)

	// The dropped link logs its own warning; the subject adds nothing.
	require.Len(t, warnings.Warnings, 1)
	assert.Equal(t, manifest.WarnMissingField, warnings.Warnings[0].Kind)
	assert.Equal(t, "subject.links[1]", warnings.Warnings[0].Path)
}

/*
TestDecodeSubject_NilSink verifies that decoding tolerates a nil warning
sink on every degrade path.
*/
func TestDecodeSubject_NilSink(t *testing.T) {
	assert.Nil(t, manifest.DecodeSubject(wire(t, `{}`), nil, nil))
	assert.Nil(t, manifest.DecodeSubject(wire(t, `42`), nil, nil))
	assert.NotNil(t, manifest.DecodeSubject(wire(t, `"Horror"`), nil, nil))
}

/*
TestDecodeSubjects_Polymorphism verifies the collection-level shapes: a
string or single object becomes a singleton, an array decodes per element,
and non-collection kinds yield an empty list without warnings.
*/
func TestDecodeSubjects_Polymorphism(t *testing.T) {
	tests := []struct {
		name      string
		document  string
		wantNames []string
		wantWarns int
	}{
		{"bare_string", `"Horror"`, []string{"Horror"}, 0},
		{"single_object", `{"name": "Fiction"}`, []string{"Fiction"}, 0},
		{"array_of_strings", `["A", "B"]`, []string{"A", "B"}, 0},
		{"mixed_array", `["A", {"name": "B", "code": "b"}]`, []string{"A", "B"}, 0},
		{"single_invalid_object", `{}`, nil, 1},
		{"number", `42`, nil, 0},
		{"boolean", `true`, nil, 0},
		{"null", `null`, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := &manifest.WarningList{}

			subjects := manifest.DecodeSubjects(wire(t, tt.document), manifest.IdentityHref, warnings)

			require.Len(t, subjects, len(tt.wantNames))
			for index, want := range tt.wantNames {
				assert.Equal(t, want, subjects[index].Name())
			}
			assert.Len(t, warnings.Warnings, tt.wantWarns)
		})
	}
}

/*
TestDecodeSubjects_DropsMalformedElements verifies that an undecodable
array element is dropped, survivor order is preserved, and exactly one
warning is logged for the dropped element with its position in the path.
*/
func TestDecodeSubjects_DropsMalformedElements(t *testing.T) {
	warnings := &manifest.WarningList{}
	document := `[{"name": "A"}, {}, {"name": "B"}]`

	subjects := manifest.DecodeSubjects(wire(t, document), manifest.IdentityHref, warnings)

	require.Len(t, subjects, 2)
	assert.Equal(t, "A", subjects[0].Name())
	assert.Equal(t, "B", subjects[1].Name())

	require.Len(t, warnings.Warnings, 1)
	assert.Equal(t, manifest.WarnMissingField, warnings.Warnings[0].Kind)
	assert.Equal(t, "subject[1]", warnings.Warnings[0].Path)
}

/*
TestSubject_EncodeNameOnly verifies that a minimal subject encodes to an
object containing only the "name" key.
*/
func TestSubject_EncodeNameOnly(t *testing.T) {
	encoded := manifest.NewSubject("A").JSON()

	assert.Equal(t, map[string]any{"name": "A"}, encoded)
}

/*
TestSubject_EncodeFull verifies conditional key emission for a fully
populated subject.
*/
func TestSubject_EncodeFull(t *testing.T) {
	subject := manifest.Subject{
		LocalizedName: manifest.NewLocalizedText("Fiction"),
		SortAs:        pointer.To("fiction"),
		Scheme:        pointer.To("http://example.org/schema"),
		Code:          pointer.To("FIC"),
		Links:         []manifest.Link{{Href: "/subjects/fiction"}},
	}

	encoded := subject.JSON()

	assert.Equal(t, "Fiction", encoded["name"])
	assert.Equal(t, "fiction", encoded["sortAs"])
	assert.Equal(t, "http://example.org/schema", encoded["scheme"])
	assert.Equal(t, "FIC", encoded["code"])
	require.Len(t, encoded["links"], 1)
}

/*
TestSubject_RoundTrip verifies that encoding a subject and decoding it
back with an identity normalizer yields a structurally equal value.
*/
func TestSubject_RoundTrip(t *testing.T) {
	original := manifest.Subject{
		LocalizedName: manifest.NewLocalizedTextMap(map[string]string{"en": "Fiction", "fr": "Roman"}),
		SortAs:        pointer.To("fiction"),
		Scheme:        pointer.To("http://example.org/schema"),
		Code:          pointer.To("FIC"),
		Links: []manifest.Link{{
			Href:      "https://catalog.example.org/subjects/fiction",
			MediaType: pointer.To("application/opds+json"),
			Rels:      []string{"search"},
		}},
	}

	raw, err := json.Marshal(original)
	require.NoError(t, err)

	warnings := &manifest.WarningList{}
	decoded := manifest.DecodeSubject(wire(t, string(raw)), manifest.IdentityHref, warnings)

	require.NotNil(t, decoded)
	assert.Equal(t, original, *decoded)
	assert.Empty(t, warnings.Warnings)
}

/*
TestSubject_RoundTripShorthand verifies the shorthand survives a full
encode/decode cycle.
*/
func TestSubject_RoundTripShorthand(t *testing.T) {
	original := manifest.NewSubject("Horror")

	raw, err := json.Marshal(original)
	require.NoError(t, err)

	decoded := manifest.DecodeSubject(wire(t, string(raw)), manifest.IdentityHref, nil)
	require.NotNil(t, decoded)
	assert.Equal(t, original, *decoded)
}
