// Copyright (c) 2026 Libretto. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package publication implements the catalog of web publications.
//
// # Architecture
//
// A publication is a stored web publication manifest plus the catalog
// attributes derived from it (identity, slug, timestamps). The manifest is
// decoded tolerantly at ingestion time, re-encoded canonically, and the
// canonical bytes are what the catalog stores, caches, and serves.
package publication

import "time"

// # Domain Entity

// Publication represents a single catalog entry.
type Publication struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`

	// Manifest holds the canonical serialized manifest document. It is
	// served verbatim by the manifest endpoint and never exposed through
	// the catalog listing envelope.
	Manifest []byte `json:"-"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

// # Query Filters

// Filter carries the optional criteria for catalog listings.
type Filter struct {
	// Query matches against the publication title, case-insensitively.
	Query string

	// Subject restricts results to publications whose manifest declares
	// the given subject name.
	Subject string
}

// # Field Identifiers

const (
	FieldTitle    = "title"
	FieldSlug     = "slug"
	FieldManifest = "manifest"
)
