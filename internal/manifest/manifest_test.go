// Copyright (c) 2026 Libretto. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manifest_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/libretto/internal/manifest"
)

const sampleManifest = `{
	"@context": "https://readium.org/webpub-manifest/context.jsonld",
	"metadata": {
		"title": "Moby-Dick",
		"author": "Herman Melville",
		"language": "en",
		"subject": ["Whaling", "Sea stories"]
	},
	"links": [
		{"href": "manifest.json", "rel": "self", "type": "application/webpub+json"}
	],
	"readingOrder": [
		{"href": "chapter-1.html", "type": "text/html", "title": "Loomings"},
		{"href": "chapter-2.html", "type": "text/html"}
	],
	"toc": [
		{"href": "chapter-1.html", "title": "Loomings"}
	]
}`

/*
TestParseManifest verifies byte-level parsing of a representative
document, including reading-order preservation.
*/
func TestParseManifest(t *testing.T) {
	warnings := &manifest.WarningList{}

	parsed, err := manifest.ParseManifest([]byte(sampleManifest), manifest.IdentityHref, warnings)

	require.NoError(t, err)
	assert.Equal(t, []string{manifest.ContextWebPub}, parsed.Context)
	assert.Equal(t, "Moby-Dick", parsed.Metadata.Title.String())
	require.Len(t, parsed.ReadingOrder, 2)
	assert.Equal(t, "chapter-1.html", parsed.ReadingOrder[0].Href)
	assert.Equal(t, "chapter-2.html", parsed.ReadingOrder[1].Href)
	require.Len(t, parsed.TOC, 1)
	assert.Empty(t, warnings.Warnings)
}

/*
TestParseManifest_Invalid verifies the hard-failure paths: broken JSON and
documents whose metadata cannot be decoded.
*/
func TestParseManifest_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		document string
	}{
		{"broken_json", `{"metadata": `},
		{"not_an_object", `"just a string"`},
		{"missing_metadata", `{"readingOrder": []}`},
		{"untitled_metadata", `{"metadata": {"language": "en"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := manifest.ParseManifest([]byte(tt.document), manifest.IdentityHref, nil)

			assert.Nil(t, parsed)
			assert.ErrorIs(t, err, manifest.ErrInvalidManifest)
		})
	}
}

/*
TestManifest_RoundTrip verifies that a parsed manifest re-encodes into a
document that parses back to the same value.
*/
func TestManifest_RoundTrip(t *testing.T) {
	first, err := manifest.ParseManifest([]byte(sampleManifest), manifest.IdentityHref, nil)
	require.NoError(t, err)

	encoded, err := json.Marshal(first)
	require.NoError(t, err)

	second, err := manifest.ParseManifest(encoded, manifest.IdentityHref, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

/*
TestManifest_EncodeAddsContext verifies that the canonical encode emits
the Readium context for documents that declared none.
*/
func TestManifest_EncodeAddsContext(t *testing.T) {
	parsed, err := manifest.ParseManifest([]byte(`{"metadata": {"title": "X"}}`), manifest.IdentityHref, nil)
	require.NoError(t, err)
	assert.Empty(t, parsed.Context)

	encoded := parsed.JSON()
	assert.Equal(t, []string{manifest.ContextWebPub}, encoded["@context"])
}
