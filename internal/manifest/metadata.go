// Copyright (c) 2026 Libretto. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manifest

import (
	"encoding/json"
	"fmt"
	"time"
)

// Metadata is the descriptive block of a publication manifest. Title is the
// only required field; everything else degrades to absent when missing or
// malformed.
type Metadata struct {
	// Identifier is the publication's canonical identifier (URL, URN, ...).
	Identifier *string

	// Type is the schema.org type of the publication (wire field "@type").
	Type *string

	// Title is the displayable title. Required.
	Title LocalizedText

	// Subtitle is the displayable subtitle.
	Subtitle *LocalizedText

	// SortAs is a machine-sortable form of the title.
	SortAs *string

	// Modified is the last-modification timestamp of the publication.
	Modified *time.Time

	// Published is the original publication date.
	Published *time.Time

	// Languages lists BCP-47 tags (wire field "language": string or array).
	Languages []string

	// Authors lists the creators (wire field "author").
	Authors []Contributor

	// Publishers lists the publishing organizations (wire field "publisher").
	Publishers []Contributor

	// Subjects lists keywords and categories (wire field "subject").
	Subjects []Subject

	// Description is a plain-text summary of the publication.
	Description *string

	// NumberOfPages is the page count of the source publication.
	NumberOfPages *int
}

// JSON returns the canonical wire object for the metadata block.
func (m Metadata) JSON() map[string]any {
	out := map[string]any{"title": m.Title.JSON()}
	if m.Identifier != nil {
		out["identifier"] = *m.Identifier
	}
	if m.Type != nil {
		out["@type"] = *m.Type
	}
	if m.Subtitle != nil {
		out["subtitle"] = m.Subtitle.JSON()
	}
	if m.SortAs != nil {
		out["sortAs"] = *m.SortAs
	}
	if m.Modified != nil {
		out["modified"] = m.Modified.UTC().Format(time.RFC3339)
	}
	if m.Published != nil {
		out["published"] = m.Published.UTC().Format(time.RFC3339)
	}
	if len(m.Languages) > 0 {
		out["language"] = append([]string(nil), m.Languages...)
	}
	if len(m.Authors) > 0 {
		out["author"] = EncodeContributors(m.Authors)
	}
	if len(m.Publishers) > 0 {
		out["publisher"] = EncodeContributors(m.Publishers)
	}
	if len(m.Subjects) > 0 {
		out["subject"] = EncodeSubjects(m.Subjects)
	}
	if m.Description != nil {
		out["description"] = *m.Description
	}
	if m.NumberOfPages != nil {
		out["numberOfPages"] = *m.NumberOfPages
	}
	return out
}

// MarshalJSON implements [json.Marshaler].
func (m Metadata) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.JSON())
}

// DecodeMetadata resolves the metadata block from its wire value.
//
// Only the object shape is accepted. A metadata block without a resolvable
// title yields nil after one missing-field warning; the caller decides
// whether that sinks the whole manifest.
func DecodeMetadata(raw any, normalize HrefNormalizer, sink WarningSink) *Metadata {
	switch kindOf(raw) {
	case kindObject:
		object := raw.(map[string]any)

		title := DecodeLocalizedText(object["title"], sink)
		if title == nil {
			warn(sink, WarnMissingField, "metadata", "[title] is required")
			return nil
		}

		return &Metadata{
			Identifier:    optString(object, "identifier"),
			Type:          optString(object, "@type"),
			Title:         *title,
			Subtitle:      DecodeLocalizedText(object["subtitle"], sink),
			SortAs:        optString(object, "sortAs"),
			Modified:      decodeTimestamp(object, "modified", sink),
			Published:     decodeTimestamp(object, "published", sink),
			Languages:     optStringList(object["language"]),
			Authors:       decodeContributorsAt(object["author"], normalize, sink, "metadata.author"),
			Publishers:    decodeContributorsAt(object["publisher"], normalize, sink, "metadata.publisher"),
			Subjects:      DecodeSubjects(object["subject"], normalize, sink),
			Description:   optString(object, "description"),
			NumberOfPages: optInt(object, "numberOfPages"),
		}

	case kindNull:
		return nil

	case kindBool, kindNumber, kindString, kindArray, kindInvalid:
		warn(sink, WarnMalformedValue, "metadata", fmt.Sprintf("expected an object, got %s", kindOf(raw)))
		return nil
	}
	return nil
}

// decodeTimestamp reads an RFC 3339 timestamp field. A present value that
// is not a parseable timestamp degrades to absent with a warning, since
// callers sort and cache on these fields.
func decodeTimestamp(object map[string]any, field string, sink WarningSink) *time.Time {
	value := optString(object, field)
	if value == nil {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		warn(sink, WarnMalformedValue, "metadata."+field, fmt.Sprintf("%q is not an RFC 3339 timestamp", *value))
		return nil
	}
	return &parsed
}
