package manifest

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// # Href Normalization

// HrefNormalizer rewrites a raw resource locator against a publication's
// base resolution context. It must be a pure string transform.
type HrefNormalizer func(href string) string

// IdentityHref returns the href unchanged.
func IdentityHref(href string) string { return href }

// ResolveHref returns a normalizer that resolves hrefs as RFC 3986
// references against base. Hrefs that fail to parse are kept verbatim.
func ResolveHref(base *url.URL) HrefNormalizer {
	return func(href string) string {
		reference, err := url.Parse(href)
		if err != nil {
			return href
		}
		return base.ResolveReference(reference).String()
	}
}

// # Link Value

// Link is a typed hyperlink entry of a manifest, possibly carrying nested
// sub-links in Children.
type Link struct {
	// Href is the normalized resource locator. Required.
	Href string

	// MediaType is the advertised media type of the resource.
	MediaType *string

	// Title is a human-readable label for the link.
	Title *string

	// Rels lists the link relations (wire field "rel": string or array).
	Rels []string

	// Templated marks the href as a URI template.
	Templated bool

	// Children holds nested sub-links, normalized recursively.
	Children []Link
}

// JSON returns the canonical wire object for the link.
func (l Link) JSON() map[string]any {
	out := map[string]any{"href": l.Href}
	if l.MediaType != nil {
		out["type"] = *l.MediaType
	}
	if l.Title != nil {
		out["title"] = *l.Title
	}
	if len(l.Rels) > 0 {
		out["rel"] = append([]string(nil), l.Rels...)
	}
	if l.Templated {
		out["templated"] = true
	}
	if len(l.Children) > 0 {
		out["children"] = EncodeLinks(l.Children)
	}
	return out
}

// MarshalJSON implements [json.Marshaler].
func (l Link) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.JSON())
}

// # Link Codec

// DecodeLink resolves a single link from its wire value.
//
// Only the object shape is accepted; "href" is the one required field.
// A link that cannot be resolved yields nil after one warning, so list
// decoding can drop it without aborting.
func DecodeLink(raw any, normalize HrefNormalizer, sink WarningSink) *Link {
	return decodeLinkAt(raw, normalize, sink, "link")
}

func decodeLinkAt(raw any, normalize HrefNormalizer, sink WarningSink, path string) *Link {
	switch kindOf(raw) {
	case kindObject:
		object := raw.(map[string]any)

		href := optString(object, "href")
		if href == nil {
			warn(sink, WarnMissingField, path, "[href] is required")
			return nil
		}
		if normalize != nil {
			normalized := normalize(*href)
			href = &normalized
		}

		return &Link{
			Href:      *href,
			MediaType: optString(object, "type"),
			Title:     optString(object, "title"),
			Rels:      optStringList(object["rel"]),
			Templated: optBool(object, "templated"),
			Children:  decodeLinksAt(object["children"], normalize, sink, path+".children"),
		}

	case kindNull:
		return nil

	case kindBool, kindNumber, kindString, kindArray, kindInvalid:
		warn(sink, WarnMalformedValue, path, fmt.Sprintf("expected an object, got %s", kindOf(raw)))
		return nil
	}
	return nil
}

// DecodeLinks resolves an ordered link list from its wire value.
//
// An array decodes element by element, dropping entries that fail their own
// decode; a single object is treated as a one-element list; anything else
// yields an empty list. Order of surviving elements matches input order.
func DecodeLinks(raw any, normalize HrefNormalizer, sink WarningSink) []Link {
	return decodeLinksAt(raw, normalize, sink, "links")
}

func decodeLinksAt(raw any, normalize HrefNormalizer, sink WarningSink, path string) []Link {
	switch kindOf(raw) {
	case kindArray:
		elements := raw.([]any)
		var links []Link
		for index, element := range elements {
			link := decodeLinkAt(element, normalize, sink, fmt.Sprintf("%s[%d]", path, index))
			if link != nil {
				links = append(links, *link)
			}
		}
		return links

	case kindObject:
		if link := decodeLinkAt(raw, normalize, sink, path); link != nil {
			return []Link{*link}
		}
		return nil

	case kindNull, kindBool, kindNumber, kindString, kindInvalid:
		return nil
	}
	return nil
}

// EncodeLinks returns the canonical wire array for a link list, preserving
// order.
func EncodeLinks(links []Link) []any {
	encoded := make([]any, 0, len(links))
	for _, link := range links {
		encoded = append(encoded, link.JSON())
	}
	return encoded
}
