// Copyright (c) 2026 Libretto. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ContextWebPub is the JSON-LD context of the Readium Web Publication
// Manifest, emitted on every canonical encode.
const ContextWebPub = "https://readium.org/webpub-manifest/context.jsonld"

// MediaTypeWebPub is the media type manifests are served under.
const MediaTypeWebPub = "application/webpub+json"

// ErrInvalidManifest is returned by [ParseManifest] when the document is
// not valid JSON or cannot be decoded into a usable manifest (e.g. its
// metadata block has no title). The warnings collected during the decode
// carry the details.
var ErrInvalidManifest = errors.New("manifest: invalid manifest document")

// Manifest is the root of a web publication manifest document.
type Manifest struct {
	// Context lists the JSON-LD contexts of the document (wire field
	// "@context": string or array).
	Context []string

	// Metadata is the descriptive block. Required.
	Metadata Metadata

	// Links lists publication-level links (self, alternate, search, ...).
	Links []Link

	// ReadingOrder lists the resources in their intended reading sequence.
	ReadingOrder []Link

	// Resources lists additional resources the publication relies on.
	Resources []Link

	// TOC is the table of contents (wire field "toc").
	TOC []Link
}

// JSON returns the canonical wire object for the manifest. The Readium
// context is emitted when the source document declared none.
func (m Manifest) JSON() map[string]any {
	contexts := m.Context
	if len(contexts) == 0 {
		contexts = []string{ContextWebPub}
	}
	out := map[string]any{
		"@context": contexts,
		"metadata": m.Metadata.JSON(),
	}
	if len(m.Links) > 0 {
		out["links"] = EncodeLinks(m.Links)
	}
	if len(m.ReadingOrder) > 0 {
		out["readingOrder"] = EncodeLinks(m.ReadingOrder)
	}
	if len(m.Resources) > 0 {
		out["resources"] = EncodeLinks(m.Resources)
	}
	if len(m.TOC) > 0 {
		out["toc"] = EncodeLinks(m.TOC)
	}
	return out
}

// MarshalJSON implements [json.Marshaler].
func (m Manifest) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.JSON())
}

// DecodeManifest resolves a manifest from its decoded wire value.
//
// The document must be an object with a decodable metadata block; every
// other part degrades per its own codec's rules. nil means the document is
// unusable, with the reasons on the sink.
func DecodeManifest(raw any, normalize HrefNormalizer, sink WarningSink) *Manifest {
	switch kindOf(raw) {
	case kindObject:
		object := raw.(map[string]any)

		metadata := DecodeMetadata(object["metadata"], normalize, sink)
		if metadata == nil {
			return nil
		}

		return &Manifest{
			Context:      optStringList(object["@context"]),
			Metadata:     *metadata,
			Links:        decodeLinksAt(object["links"], normalize, sink, "links"),
			ReadingOrder: decodeLinksAt(object["readingOrder"], normalize, sink, "readingOrder"),
			Resources:    decodeLinksAt(object["resources"], normalize, sink, "resources"),
			TOC:          decodeLinksAt(object["toc"], normalize, sink, "toc"),
		}

	case kindNull, kindBool, kindNumber, kindString, kindArray, kindInvalid:
		warn(sink, WarnMalformedValue, "manifest", fmt.Sprintf("expected an object, got %s", kindOf(raw)))
		return nil
	}
	return nil
}

// ParseManifest decodes a raw JSON document into a manifest.
//
// It is the byte-level entry point used by the ingestion service. Unlike
// the value-level decoders it returns an error, because a caller handing
// over raw bytes needs a hard accept/reject signal: [ErrInvalidManifest]
// wraps both syntactically broken JSON and documents whose metadata cannot
// be decoded.
func ParseManifest(data []byte, normalize HrefNormalizer, sink WarningSink) (*Manifest, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}

	decoded := DecodeManifest(raw, normalize, sink)
	if decoded == nil {
		return nil, ErrInvalidManifest
	}
	return decoded, nil
}
