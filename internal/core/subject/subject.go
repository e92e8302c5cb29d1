// Copyright (c) 2026 Libretto. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package subject exposes the distinct subjects in use across the catalog.
//
// # Architecture
//
// Subjects are not a managed reference table; they live inside stored
// manifests in whatever shape the publisher used. This package extracts the
// raw subject elements in SQL, runs each through the tolerant subject codec,
// and aggregates the survivors into a deduplicated, sorted vocabulary.
package subject

// Subject is one distinct subject in catalog use.
type Subject struct {
	Name   string  `json:"name"`
	Scheme *string `json:"scheme,omitempty"`
	Code   *string `json:"code,omitempty"`

	// Publications is the number of catalog entries declaring this subject.
	Publications int `json:"publications"`
}

// RawSubject is one subject element as stored, before decoding.
type RawSubject struct {
	// Element is the serialized JSON value of a single 'metadata.subject'
	// entry (string or object).
	Element []byte

	// Count is the number of publications carrying this exact element.
	Count int
}
