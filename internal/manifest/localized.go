// Copyright (c) 2026 Libretto. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manifest

import (
	"encoding/json"
	"sort"

	"golang.org/x/text/language"
)

// UndefinedLanguage is the BCP-47 tag used for text whose language was not
// declared (the bare-string shorthand on the wire).
const UndefinedLanguage = "und"

// LocalizedText holds a piece of text in one or more languages.
//
// On the wire it is either a bare string ("Fiction") or a map of BCP-47
// tags to strings ({"en": "Fiction", "fr": "Roman"}). In memory it is an
// immutable value; the zero value is empty and encodes as "".
type LocalizedText struct {
	translations map[string]string
}

// NewLocalizedText wraps a single string under [UndefinedLanguage].
func NewLocalizedText(value string) LocalizedText {
	return LocalizedText{translations: map[string]string{UndefinedLanguage: value}}
}

// NewLocalizedTextMap builds a LocalizedText from per-language values.
// Language tags are canonicalized; unparseable tags are kept verbatim.
func NewLocalizedTextMap(translations map[string]string) LocalizedText {
	normalized := make(map[string]string, len(translations))
	for tag, value := range translations {
		normalized[normalizeLanguageTag(tag)] = value
	}
	return LocalizedText{translations: normalized}
}

// String returns the default-language projection: the undefined-language
// entry when present, otherwise the entry with the lexically smallest tag
// (deterministic regardless of map order).
func (t LocalizedText) String() string {
	if value, ok := t.translations[UndefinedLanguage]; ok {
		return value
	}
	tags := make([]string, 0, len(t.translations))
	for tag := range t.translations {
		tags = append(tags, tag)
	}
	if len(tags) == 0 {
		return ""
	}
	sort.Strings(tags)
	return t.translations[tags[0]]
}

// Translation returns the text for a specific language tag.
func (t LocalizedText) Translation(tag string) (string, bool) {
	value, ok := t.translations[normalizeLanguageTag(tag)]
	return value, ok
}

// Translations returns a copy of the per-language map.
func (t LocalizedText) Translations() map[string]string {
	copied := make(map[string]string, len(t.translations))
	for tag, value := range t.translations {
		copied[tag] = value
	}
	return copied
}

// JSON returns the canonical wire value: a bare string when only the
// undefined language is present, otherwise the per-language map.
func (t LocalizedText) JSON() any {
	if len(t.translations) == 1 {
		if value, ok := t.translations[UndefinedLanguage]; ok {
			return value
		}
	}
	if len(t.translations) == 0 {
		return ""
	}
	return t.Translations()
}

// MarshalJSON implements [json.Marshaler].
func (t LocalizedText) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.JSON())
}

// DecodeLocalizedText resolves a localized string from its wire value.
//
// Accepted shapes:
//   - string: a single undefined-language entry.
//   - object: per-language entries; non-string values are skipped.
//
// Any other kind, and an object with no usable entries, yields nil. No
// warning is emitted here: whether an absent value is an error depends on
// the enclosing field, so the caller owns that decision.
func DecodeLocalizedText(raw any, sink WarningSink) *LocalizedText {
	switch kindOf(raw) {
	case kindString:
		text := NewLocalizedText(raw.(string))
		return &text

	case kindObject:
		object := raw.(map[string]any)
		translations := make(map[string]string, len(object))
		for tag, value := range object {
			if s, ok := value.(string); ok {
				translations[normalizeLanguageTag(tag)] = s
			}
		}
		if len(translations) == 0 {
			return nil
		}
		return &LocalizedText{translations: translations}

	case kindNull, kindBool, kindNumber, kindArray, kindInvalid:
		return nil
	}
	return nil
}

// normalizeLanguageTag canonicalizes a BCP-47 tag ("EN-us" → "en-US").
// Tags the parser rejects are kept as provided rather than dropped, so
// third-party manifests with sloppy tags stay readable.
func normalizeLanguageTag(tag string) string {
	if tag == "" || tag == UndefinedLanguage {
		return UndefinedLanguage
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return tag
	}
	return parsed.String()
}
