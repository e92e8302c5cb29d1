package manifest

import (
	"encoding/json"
	"fmt"
)

// Contributor is a person or organization credited on a publication
// (author, publisher, translator, ...). It shares the Subject wire grammar:
// a bare string shorthand or an object whose only required field is "name".
type Contributor struct {
	// LocalizedName is the displayable name. Required.
	LocalizedName LocalizedText

	// SortAs is a machine-sortable form of the name.
	SortAs *string

	// Identifier is an authority identifier for the contributor (e.g. ISNI).
	Identifier *string

	// Roles lists MARC relator codes (wire field "role": string or array).
	Roles []string

	// Links point to resources about the contributor. Order is significant.
	Links []Link
}

// NewContributor builds a Contributor from a bare display name.
func NewContributor(name string) Contributor {
	return Contributor{LocalizedName: NewLocalizedText(name)}
}

// Name returns the default-language projection of the contributor's name.
func (c Contributor) Name() string {
	return c.LocalizedName.String()
}

// JSON returns the canonical wire object for the contributor.
func (c Contributor) JSON() map[string]any {
	out := map[string]any{"name": c.LocalizedName.JSON()}
	if c.SortAs != nil {
		out["sortAs"] = *c.SortAs
	}
	if c.Identifier != nil {
		out["identifier"] = *c.Identifier
	}
	if len(c.Roles) > 0 {
		out["role"] = append([]string(nil), c.Roles...)
	}
	if len(c.Links) > 0 {
		out["links"] = EncodeLinks(c.Links)
	}
	return out
}

// MarshalJSON implements [json.Marshaler].
func (c Contributor) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.JSON())
}

// DecodeContributor resolves a single contributor from its wire value,
// with the same tolerance rules as [DecodeSubject]: null is silently
// absent, a string is a name-only shorthand, and any shape that cannot
// carry a name degrades to absent after one missing-field warning.
func DecodeContributor(raw any, normalize HrefNormalizer, sink WarningSink) *Contributor {
	return decodeContributorAt(raw, normalize, sink, "contributor")
}

func decodeContributorAt(raw any, normalize HrefNormalizer, sink WarningSink, path string) *Contributor {
	switch kindOf(raw) {
	case kindNull:
		return nil

	case kindString:
		contributor := NewContributor(raw.(string))
		return &contributor

	case kindObject:
		object := raw.(map[string]any)

		localizedName := DecodeLocalizedText(object["name"], sink)
		if localizedName == nil {
			warn(sink, WarnMissingField, path, "[name] is required")
			return nil
		}

		return &Contributor{
			LocalizedName: *localizedName,
			SortAs:        optString(object, "sortAs"),
			Identifier:    optString(object, "identifier"),
			Roles:         optStringList(object["role"]),
			Links:         decodeLinksAt(object["links"], normalize, sink, path+".links"),
		}

	case kindBool, kindNumber, kindArray, kindInvalid:
		warn(sink, WarnMissingField, path, "[name] is required")
		return nil
	}
	return nil
}

// DecodeContributors resolves an ordered contributor list from its wire
// value, with the same shape polymorphism as [DecodeSubjects].
func DecodeContributors(raw any, normalize HrefNormalizer, sink WarningSink) []Contributor {
	return decodeContributorsAt(raw, normalize, sink, "contributor")
}

func decodeContributorsAt(raw any, normalize HrefNormalizer, sink WarningSink, path string) []Contributor {
	switch kindOf(raw) {
	case kindString, kindObject:
		if contributor := decodeContributorAt(raw, normalize, sink, path); contributor != nil {
			return []Contributor{*contributor}
		}
		return nil

	case kindArray:
		elements := raw.([]any)
		var contributors []Contributor
		for index, element := range elements {
			contributor := decodeContributorAt(element, normalize, sink, fmt.Sprintf("%s[%d]", path, index))
			if contributor != nil {
				contributors = append(contributors, *contributor)
			}
		}
		return contributors

	case kindNull, kindBool, kindNumber, kindInvalid:
		return nil
	}
	return nil
}

// EncodeContributors returns the canonical wire array for a contributor
// list, preserving order.
func EncodeContributors(contributors []Contributor) []any {
	encoded := make([]any, 0, len(contributors))
	for _, contributor := range contributors {
		encoded = append(encoded, contributor.JSON())
	}
	return encoded
}
