// Copyright (c) 2026 Libretto. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manifest

import (
	"encoding/json"
	"fmt"
)

// Subject is a keyword or category attached to a publication's metadata.
//
// Wire grammar:
//
//	Subject := string
//	         | { "name": LocalizedText,     // required
//	             "sortAs"?: string,
//	             "scheme"?: string,
//	             "code"?: string,
//	             "links"?: [ Link, ... ] }
//
// A constructed Subject always has a non-absent LocalizedName. All other
// fields are independently optional. Equality is structural, including
// link order.
type Subject struct {
	// LocalizedName is the displayable name of the subject. Required.
	LocalizedName LocalizedText

	// SortAs is a machine-sortable form of the name.
	SortAs *string

	// Scheme identifies the controlled vocabulary the subject comes from.
	Scheme *string

	// Code is the scheme-specific term or code.
	Code *string

	// Links point to resources about the subject (e.g. a catalog search).
	// Order is significant. Default empty.
	Links []Link
}

// NewSubject builds a Subject from a bare display name.
func NewSubject(name string) Subject {
	return Subject{LocalizedName: NewLocalizedText(name)}
}

// Name returns the default-language projection of the subject's name.
func (s Subject) Name() string {
	return s.LocalizedName.String()
}

// JSON returns the canonical wire object for the subject: "name" is always
// present, the optional scalars only when set, "links" only when non-empty.
func (s Subject) JSON() map[string]any {
	out := map[string]any{"name": s.LocalizedName.JSON()}
	if s.SortAs != nil {
		out["sortAs"] = *s.SortAs
	}
	if s.Scheme != nil {
		out["scheme"] = *s.Scheme
	}
	if s.Code != nil {
		out["code"] = *s.Code
	}
	if len(s.Links) > 0 {
		out["links"] = EncodeLinks(s.Links)
	}
	return out
}

// MarshalJSON implements [json.Marshaler].
func (s Subject) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.JSON())
}

// # Subject Codec

// DecodeSubject resolves a single subject from its wire value.
//
// Accepted shapes:
//   - null/absent: no subject. Returns nil without a warning.
//   - string: shorthand for a subject with only a name.
//   - object: the full form; "name" is the one required field.
//
// Any other kind cannot carry a name, which is reported like a missing
// required field. A "name" field that is present but uninterpretable (a
// number, a boolean, an object with no usable entries) degrades exactly
// like an absent "name": callers may depend on that permissive behavior.
//
// Malformed input never raises an error; absence plus an advisory warning
// is the only failure mode.
func DecodeSubject(raw any, normalize HrefNormalizer, sink WarningSink) *Subject {
	switch kindOf(raw) {
	case kindNull:
		return nil

	case kindString:
		subject := NewSubject(raw.(string))
		return &subject

	case kindObject:
		object := raw.(map[string]any)

		localizedName := DecodeLocalizedText(object["name"], sink)
		if localizedName == nil {
			warn(sink, WarnMissingField, "subject", "[name] is required")
			return nil
		}

		return &Subject{
			LocalizedName: *localizedName,
			SortAs:        optString(object, "sortAs"),
			Scheme:        optString(object, "scheme"),
			Code:          optString(object, "code"),
			Links:         decodeLinksAt(object["links"], normalize, sink, "subject.links"),
		}

	case kindBool, kindNumber, kindArray, kindInvalid:
		warn(sink, WarnMissingField, "subject", "[name] is required")
		return nil
	}
	return nil
}

// DecodeSubjects resolves an ordered subject list from its wire value.
//
// A bare string or a single object is treated as a one-element collection.
// An array decodes element by element; elements that decode to absent are
// dropped, each logging its own warning, and the survivors keep their
// input order. Any other kind yields an empty list with no warning.
func DecodeSubjects(raw any, normalize HrefNormalizer, sink WarningSink) []Subject {
	switch kindOf(raw) {
	case kindString, kindObject:
		if subject := DecodeSubject(raw, normalize, sink); subject != nil {
			return []Subject{*subject}
		}
		return nil

	case kindArray:
		elements := raw.([]any)
		var subjects []Subject
		for index, element := range elements {
			subject := decodeSubjectAt(element, normalize, sink, fmt.Sprintf("subject[%d]", index))
			if subject != nil {
				subjects = append(subjects, *subject)
			}
		}
		return subjects

	case kindNull, kindBool, kindNumber, kindInvalid:
		return nil
	}
	return nil
}

// decodeSubjectAt is DecodeSubject with a positional warning path, so list
// warnings stay attributable to their element.
func decodeSubjectAt(raw any, normalize HrefNormalizer, sink WarningSink, path string) *Subject {
	if sink == nil {
		return DecodeSubject(raw, normalize, nil)
	}
	repath := WarningFunc(func(warning Warning) {
		if warning.Path == "subject" {
			warning.Path = path
		} else if len(warning.Path) > 8 && warning.Path[:8] == "subject." {
			warning.Path = path + warning.Path[7:]
		}
		sink.Log(warning)
	})
	return DecodeSubject(raw, normalize, repath)
}

// EncodeSubjects returns the canonical wire array for a subject list,
// preserving order. The single-object shorthand is never emitted.
func EncodeSubjects(subjects []Subject) []any {
	encoded := make([]any, 0, len(subjects))
	for _, subject := range subjects {
		encoded = append(encoded, subject.JSON())
	}
	return encoded
}
