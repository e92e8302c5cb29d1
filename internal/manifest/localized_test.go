// Copyright (c) 2026 Libretto. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manifest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/libretto/internal/manifest"
)

/*
TestDecodeLocalizedText_Shapes verifies the string and object wire shapes
and the silent degrade for everything else.
*/
func TestDecodeLocalizedText_Shapes(t *testing.T) {
	tests := []struct {
		name       string
		document   string
		wantAbsent bool
		wantValue  string
	}{
		{"bare_string", `"Fiction"`, false, "Fiction"},
		{"language_map", `{"en": "Fiction", "fr": "Roman"}`, false, "Fiction"},
		{"map_with_nonstring_entries", `{"en": "Fiction", "fr": 42}`, false, "Fiction"},
		{"map_without_strings", `{"en": 42}`, true, ""},
		{"empty_map", `{}`, true, ""},
		{"number", `42`, true, ""},
		{"boolean", `false`, true, ""},
		{"array", `["Fiction"]`, true, ""},
		{"null", `null`, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := &manifest.WarningList{}

			text := manifest.DecodeLocalizedText(wire(t, tt.document), warnings)

			if tt.wantAbsent {
				assert.Nil(t, text)
			} else {
				require.NotNil(t, text)
				assert.Equal(t, tt.wantValue, text.String())
			}

			// Whether an absent localized string is an error is the
			// enclosing field's call, never this codec's.
			assert.Empty(t, warnings.Warnings)
		})
	}
}

/*
TestLocalizedText_DefaultProjection verifies the default-language rules:
the undefined-language entry wins, otherwise the lexically smallest tag.
*/
func TestLocalizedText_DefaultProjection(t *testing.T) {
	withUndefined := manifest.NewLocalizedTextMap(map[string]string{
		"fr":                       "Roman",
		manifest.UndefinedLanguage: "Fiction",
		"en":                       "Fiction (en)",
	})
	assert.Equal(t, "Fiction", withUndefined.String())

	withoutUndefined := manifest.NewLocalizedTextMap(map[string]string{
		"fr": "Roman",
		"en": "Fiction",
	})
	assert.Equal(t, "Fiction", withoutUndefined.String())

	assert.Equal(t, "", manifest.LocalizedText{}.String())
}

/*
TestLocalizedText_TagCanonicalization verifies BCP-47 canonicalization on
decode and the verbatim fallback for unparseable tags.
*/
func TestLocalizedText_TagCanonicalization(t *testing.T) {
	text := manifest.DecodeLocalizedText(wire(t, `{"EN-us": "Color", "!!": "kept"}`), nil)

	require.NotNil(t, text)

	value, ok := text.Translation("en-US")
	require.True(t, ok)
	assert.Equal(t, "Color", value)

	kept, ok := text.Translations()["!!"]
	require.True(t, ok)
	assert.Equal(t, "kept", kept)
}

/*
TestLocalizedText_Encode verifies the canonical wire value: bare string
for a lone undefined-language entry, language map otherwise.
*/
func TestLocalizedText_Encode(t *testing.T) {
	assert.Equal(t, "Horror", manifest.NewLocalizedText("Horror").JSON())

	multi := manifest.NewLocalizedTextMap(map[string]string{"en": "Fiction", "fr": "Roman"})
	assert.Equal(t, map[string]string{"en": "Fiction", "fr": "Roman"}, multi.JSON())

	single := manifest.NewLocalizedTextMap(map[string]string{"en": "Fiction"})
	assert.Equal(t, map[string]string{"en": "Fiction"}, single.JSON())
}

/*
TestLocalizedText_TranslationsIsolated verifies that the map returned by
Translations is a copy and cannot mutate the value.
*/
func TestLocalizedText_TranslationsIsolated(t *testing.T) {
	text := manifest.NewLocalizedText("Fiction")

	text.Translations()[manifest.UndefinedLanguage] = "tampered"

	assert.Equal(t, "Fiction", text.String())
}
