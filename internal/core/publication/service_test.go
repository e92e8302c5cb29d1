// Copyright (c) 2026 Libretto. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package publication_test

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/libretto/internal/core/publication"
	"github.com/taibuivan/libretto/internal/platform/apperr"
)

// # Test Doubles

// fakeRepository is an in-memory [publication.Repository].
type fakeRepository struct {
	entries map[string]*publication.Publication
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{entries: make(map[string]*publication.Publication)}
}

func (repository *fakeRepository) List(_ context.Context, filter publication.Filter, limit, offset int) ([]*publication.Publication, int, error) {
	matches := make([]*publication.Publication, 0)
	for _, entry := range repository.entries {
		if filter.Query != "" && !strings.Contains(strings.ToLower(entry.Title), strings.ToLower(filter.Query)) {
			continue
		}
		matches = append(matches, entry)
	}

	total := len(matches)
	if offset >= len(matches) {
		return nil, total, nil
	}
	matches = matches[offset:]
	if limit < len(matches) {
		matches = matches[:limit]
	}
	return matches, total, nil
}

func (repository *fakeRepository) FindByID(_ context.Context, id string) (*publication.Publication, error) {
	entry, found := repository.entries[id]
	if !found {
		return nil, apperr.NotFound("Publication")
	}
	return entry, nil
}

func (repository *fakeRepository) FindBySlug(_ context.Context, slug string) (*publication.Publication, error) {
	for _, entry := range repository.entries {
		if entry.Slug == slug {
			return entry, nil
		}
	}
	return nil, apperr.NotFound("Publication")
}

func (repository *fakeRepository) Create(_ context.Context, entry *publication.Publication) error {
	for _, existing := range repository.entries {
		if existing.Slug == entry.Slug {
			return apperr.Conflict("Resource already exists")
		}
	}
	repository.entries[entry.ID] = entry
	return nil
}

func (repository *fakeRepository) Update(_ context.Context, entry *publication.Publication) error {
	if _, found := repository.entries[entry.ID]; !found {
		return apperr.NotFound("Publication")
	}
	repository.entries[entry.ID] = entry
	return nil
}

func (repository *fakeRepository) SoftDelete(_ context.Context, id string) error {
	if _, found := repository.entries[id]; !found {
		return apperr.NotFound("Publication")
	}
	delete(repository.entries, id)
	return nil
}

// fakeCache is an in-memory [publication.ManifestCache] that counts calls.
type fakeCache struct {
	values      map[string][]byte
	sets        int
	invalidates int
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string][]byte)}
}

func (cache *fakeCache) Get(_ context.Context, id string) ([]byte, error) {
	return cache.values[id], nil
}

func (cache *fakeCache) Set(_ context.Context, id string, manifest []byte, _ time.Duration) error {
	cache.sets++
	cache.values[id] = manifest
	return nil
}

func (cache *fakeCache) Invalidate(_ context.Context, id string) error {
	cache.invalidates++
	delete(cache.values, id)
	return nil
}

// newTestService wires a service over fresh fakes.
func newTestService(t *testing.T) (*publication.Service, *fakeRepository, *fakeCache) {
	t.Helper()

	baseURL, err := url.Parse("https://books.example.org/")
	require.NoError(t, err)

	repository := newFakeRepository()
	cache := newFakeCache()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return publication.NewService(repository, cache, baseURL, logger), repository, cache
}

const validManifest = `{
	"metadata": {
		"title": "Moby Dick",
		"language": "en",
		"author": "Herman Melville",
		"subject": ["Adventure", {"name": "Whaling", "scheme": "http://example.org/scheme"}]
	},
	"readingOrder": [
		{"href": "chapter-01.html", "type": "text/html"}
	]
}`

// # Ingestion Tests

/*
TestService_CreatePublication verifies the happy path of manifest ingestion:
identity and slug derivation, canonical re-encode, and href resolution.
*/
func TestService_CreatePublication(t *testing.T) {
	service, repository, _ := newTestService(t)

	entry, warnings, err := service.CreatePublication(context.Background(), []byte(validManifest))
	require.NoError(t, err)
	require.NotNil(t, entry)

	assert.Empty(t, warnings)
	assert.Len(t, entry.ID, 36)
	assert.Equal(t, "Moby Dick", entry.Title)
	assert.Equal(t, "moby-dick", entry.Slug)

	// Canonical form declares the Readium context and resolves hrefs
	// against the catalog origin.
	stored := string(entry.Manifest)
	assert.Contains(t, stored, "readium.org/webpub-manifest/context.jsonld")
	assert.Contains(t, stored, "https://books.example.org/chapter-01.html")

	assert.Len(t, repository.entries, 1)
}

/*
TestService_CreatePublication_Warnings checks that tolerable defects are
accepted: the broken piece is dropped, the rest is stored, and the warnings
are surfaced to the caller.
*/
func TestService_CreatePublication_Warnings(t *testing.T) {
	service, _, _ := newTestService(t)

	document := `{
		"metadata": {
			"title": "Grimms' Fairy Tales",
			"subject": ["Folklore", {"scheme": "no-name-here"}]
		}
	}`

	entry, warnings, err := service.CreatePublication(context.Background(), []byte(document))
	require.NoError(t, err)

	require.Len(t, warnings, 1)
	assert.Equal(t, "subject[1]", warnings[0].Path)

	stored := string(entry.Manifest)
	assert.Contains(t, stored, "Folklore")
	assert.NotContains(t, stored, "no-name-here")
}

/*
TestService_CreatePublication_Rejected covers the hard rejections: broken
JSON and documents whose metadata cannot be decoded. Both must surface as
422 with the collected warnings attached as field errors.
*/
func TestService_CreatePublication_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		document string
	}{
		{"broken_json", `{"metadata":`},
		{"not_an_object", `[1, 2, 3]`},
		{"missing_title", `{"metadata": {"language": "en"}}`},
		{"unusable_title", `{"metadata": {"title": 42}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repository, _ := newTestService(t)

			entry, _, err := service.CreatePublication(context.Background(), []byte(tt.document))
			assert.Nil(t, entry)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "UNPROCESSABLE_MANIFEST", ae.Code)

			assert.Empty(t, repository.entries)
		})
	}
}

/*
TestService_CreatePublication_DuplicateSlug verifies that two publications
deriving the same slug surface the repository conflict.
*/
func TestService_CreatePublication_DuplicateSlug(t *testing.T) {
	service, _, _ := newTestService(t)

	_, _, err := service.CreatePublication(context.Background(), []byte(validManifest))
	require.NoError(t, err)

	_, _, err = service.CreatePublication(context.Background(), []byte(validManifest))
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
}

// # Lookup Tests

/*
TestService_GetPublication checks the identifier routing: UUIDs resolve by
primary key, anything else by slug.
*/
func TestService_GetPublication(t *testing.T) {
	service, _, _ := newTestService(t)

	created, _, err := service.CreatePublication(context.Background(), []byte(validManifest))
	require.NoError(t, err)

	byID, err := service.GetPublication(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byID.ID)

	bySlug, err := service.GetPublication(context.Background(), "moby-dick")
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)

	_, err = service.GetPublication(context.Background(), "no-such-slug")
	require.Error(t, err)
}

/*
TestService_GetManifest verifies the read-through cache behavior: a miss
primes the cache, a hit skips further writes.
*/
func TestService_GetManifest(t *testing.T) {
	service, _, cache := newTestService(t)

	created, _, err := service.CreatePublication(context.Background(), []byte(validManifest))
	require.NoError(t, err)

	first, err := service.GetManifest(context.Background(), created.Slug)
	require.NoError(t, err)
	assert.Equal(t, created.Manifest, first)
	assert.Equal(t, 1, cache.sets)

	second, err := service.GetManifest(context.Background(), created.Slug)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.sets)
}

// # Mutation Tests

/*
TestService_UpdatePublication verifies that updates replace the manifest,
keep the slug stable across title changes, and invalidate the cache.
*/
func TestService_UpdatePublication(t *testing.T) {
	service, _, cache := newTestService(t)

	created, _, err := service.CreatePublication(context.Background(), []byte(validManifest))
	require.NoError(t, err)

	updatedDocument := `{"metadata": {"title": "Moby Dick; or, The Whale"}}`
	updated, warnings, err := service.UpdatePublication(context.Background(), created.Slug, []byte(updatedDocument))
	require.NoError(t, err)

	assert.Empty(t, warnings)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Moby Dick; or, The Whale", updated.Title)
	assert.Equal(t, "moby-dick", updated.Slug)
	assert.Equal(t, 1, cache.invalidates)

	assert.Contains(t, string(updated.Manifest), "The Whale")
}

/*
TestService_DeletePublication verifies soft deletion and cache invalidation
via either identifier form.
*/
func TestService_DeletePublication(t *testing.T) {
	service, repository, cache := newTestService(t)

	created, _, err := service.CreatePublication(context.Background(), []byte(validManifest))
	require.NoError(t, err)

	require.NoError(t, service.DeletePublication(context.Background(), created.Slug))
	assert.Empty(t, repository.entries)
	assert.Equal(t, 1, cache.invalidates)

	err = service.DeletePublication(context.Background(), created.Slug)
	require.Error(t, err)
}
