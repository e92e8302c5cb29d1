// Copyright (c) 2026 Libretto. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package publication

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/url"

	"github.com/taibuivan/libretto/internal/manifest"
	"github.com/taibuivan/libretto/internal/platform/apperr"
	"github.com/taibuivan/libretto/internal/platform/constants"
	"github.com/taibuivan/libretto/internal/platform/validate"
	"github.com/taibuivan/libretto/pkg/slug"
	"github.com/taibuivan/libretto/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates the business logic for the publication catalog.
// It owns manifest ingestion: tolerant decode, canonical re-encode, and
// cache maintenance.
type Service struct {
	repo    Repository
	cache   ManifestCache
	baseURL *url.URL
	logger  *slog.Logger
}

// NewService constructs a new [Service].
//
// baseURL is the public origin of the catalog; relative hrefs inside
// ingested manifests are resolved against it.
func NewService(repo Repository, cache ManifestCache, baseURL *url.URL, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		cache:   cache,
		baseURL: baseURL,
		logger:  logger,
	}
}

// # Catalog Lookups

/*
ListPublications retrieves a paginated and filtered slice of the catalog.

Description: Filter criteria are pushed down to the repository layer so
title search and subject matching run inside PostgreSQL.

Parameters:
  - context: context.Context
  - filter: Filter (Title query, subject name)
  - limit: int (Max records to return)
  - offset: int (Pagination cursor)

Returns:
  - []*Publication: Slice of matching catalog entries
  - int: Total count of records matching the filter (for pagination metadata)
  - error: System or repository level errors
*/
func (service *Service) ListPublications(context context.Context, filter Filter, limit, offset int) ([]*Publication, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

/*
GetPublication fetches a single catalog entry by UUID or slug.

Description: The service determines the lookup strategy from the
identifier's shape. A UUID performs a primary key lookup; anything else
resolves via the unique slug.

Parameters:
  - context: context.Context
  - identifier: string (UUID or Slug)

Returns:
  - *Publication: The hydrated entity, manifest included
  - error: ErrNotFound if no match is found
*/
func (service *Service) GetPublication(context context.Context, identifier string) (*Publication, error) {

	// Identity format detection
	if isUUID(identifier) {
		return service.repo.FindByID(context, identifier)
	}

	// Slug resolution
	return service.repo.FindBySlug(context, identifier)
}

/*
GetManifest returns the canonical serialized manifest for a slug.

Description: Serves from the Redis cache when possible. On a miss the
manifest is loaded from the repository and the cache is primed with a
bounded TTL, so a lost invalidation can only produce bounded staleness.

Parameters:
  - context: context.Context
  - slug: string (Publication slug)

Returns:
  - []byte: Serialized manifest document
  - error: ErrNotFound if no match is found
*/
func (service *Service) GetManifest(context context.Context, slug string) ([]byte, error) {
	entry, err := service.repo.FindBySlug(context, slug)
	if err != nil {
		return nil, err
	}

	// Cache probe by publication id
	if cached, err := service.cache.Get(context, entry.ID); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		// A degraded cache must not take down reads
		service.logger.Warn("manifest_cache_read_failed", slog.String("error", err.Error()))
	}

	// Prime the cache for subsequent reads
	if err := service.cache.Set(context, entry.ID, entry.Manifest, constants.ManifestCacheTTL); err != nil {
		service.logger.Warn("manifest_cache_write_failed", slog.String("error", err.Error()))
	}

	return entry.Manifest, nil
}

// # Manifest Ingestion

/*
CreatePublication ingests a raw manifest document into the catalog.

Description: The document is decoded tolerantly; non-fatal issues are
collected as warnings and returned to the publisher rather than rejected.
Only a document whose JSON is broken or whose metadata has no resolvable
title is refused, with the collected warnings as field errors. On accept,
the manifest is re-encoded canonically, relative hrefs resolved against
the catalog's public origin, and a UUID v7 identity plus an SEO slug are
derived before persisting.

Parameters:
  - context: context.Context
  - document: []byte (Raw manifest JSON)

Returns:
  - *Publication: The stored entity
  - []manifest.Warning: Non-fatal issues found while decoding
  - error: Rejection or persistence errors
*/
func (service *Service) CreatePublication(context context.Context, document []byte) (*Publication, []manifest.Warning, error) {

	decoded, warnings, err := service.decodeDocument(document)
	if err != nil {
		return nil, warnings, err
	}

	title := decoded.Metadata.Title.String()

	// Business attribute validation
	validator := &validate.Validator{}
	validator.Required(FieldTitle, title).MaxLen(FieldTitle, title, 500)
	if err := validator.Err(); err != nil {
		return nil, warnings, err
	}

	// Canonical re-encode: this is the document the catalog serves
	canonical, err := json.Marshal(decoded)
	if err != nil {
		return nil, warnings, apperr.Internal(err)
	}

	entry := &Publication{
		ID:       uuidv7.New(),
		Slug:     slug.From(title),
		Title:    title,
		Manifest: canonical,
	}

	// Persistence via Repository
	if err := service.repo.Create(context, entry); err != nil {
		return nil, warnings, err
	}

	service.logger.Info("publication_created",
		slog.String("publication_id", entry.ID),
		slog.String("slug", entry.Slug),
		slog.Int("decode_warnings", len(warnings)),
	)

	return entry, warnings, nil
}

/*
UpdatePublication replaces the manifest of an existing catalog entry.

Description: The incoming document goes through the same tolerant decode
and canonical re-encode as creation. The slug is kept stable so catalog
URLs survive title edits. The cached manifest is invalidated on success.

Parameters:
  - context: context.Context
  - identifier: string (UUID or Slug)
  - document: []byte (Raw manifest JSON)

Returns:
  - *Publication: The updated entity
  - []manifest.Warning: Non-fatal issues found while decoding
  - error: Rejection, lookup, or persistence errors
*/
func (service *Service) UpdatePublication(context context.Context, identifier string, document []byte) (*Publication, []manifest.Warning, error) {

	entry, err := service.GetPublication(context, identifier)
	if err != nil {
		return nil, nil, err
	}

	decoded, warnings, err := service.decodeDocument(document)
	if err != nil {
		return nil, warnings, err
	}

	title := decoded.Metadata.Title.String()

	// Business attribute validation
	validator := &validate.Validator{}
	validator.Required(FieldTitle, title).MaxLen(FieldTitle, title, 500)
	if err := validator.Err(); err != nil {
		return nil, warnings, err
	}

	canonical, err := json.Marshal(decoded)
	if err != nil {
		return nil, warnings, apperr.Internal(err)
	}

	entry.Title = title
	entry.Manifest = canonical

	// Execute storage update
	if err := service.repo.Update(context, entry); err != nil {
		return nil, warnings, err
	}

	// Drop the stale cached document
	if err := service.cache.Invalidate(context, entry.ID); err != nil {
		service.logger.Warn("manifest_cache_invalidate_failed", slog.String("error", err.Error()))
	}

	service.logger.Info("publication_updated",
		slog.String("publication_id", entry.ID),
		slog.Int("decode_warnings", len(warnings)),
	)

	return entry, warnings, nil
}

/*
DeletePublication removes a publication from the catalog.

Description: Implements soft-delete logic; the row remains for audit but
the entry disappears from listings, lookups, and the manifest endpoint.

Parameters:
  - context: context.Context
  - identifier: string (UUID or Slug)

Returns:
  - error: Lookup or persistence errors
*/
func (service *Service) DeletePublication(context context.Context, identifier string) error {

	entry, err := service.GetPublication(context, identifier)
	if err != nil {
		return err
	}

	if err := service.repo.SoftDelete(context, entry.ID); err != nil {
		return err
	}

	if err := service.cache.Invalidate(context, entry.ID); err != nil {
		service.logger.Warn("manifest_cache_invalidate_failed", slog.String("error", err.Error()))
	}

	service.logger.Warn("publication_deleted", slog.String("publication_id", entry.ID))

	return nil
}

// decodeDocument runs the tolerant manifest decode and maps a rejection to
// a 422 carrying the collected warnings as field errors.
func (service *Service) decodeDocument(document []byte) (*manifest.Manifest, []manifest.Warning, error) {
	collector := &manifest.WarningList{}

	decoded, err := manifest.ParseManifest(document, manifest.ResolveHref(service.baseURL), collector)
	if err != nil {
		if errors.Is(err, manifest.ErrInvalidManifest) {
			return nil, collector.Warnings, apperr.UnprocessableManifest(
				"Manifest document could not be decoded",
				warningsToFieldErrors(collector.Warnings)...,
			)
		}
		return nil, collector.Warnings, apperr.Internal(err)
	}

	return decoded, collector.Warnings, nil
}

// warningsToFieldErrors converts decode warnings into the response detail shape.
func warningsToFieldErrors(warnings []manifest.Warning) []apperr.FieldError {
	details := make([]apperr.FieldError, 0, len(warnings))
	for _, warning := range warnings {
		details = append(details, apperr.FieldError{
			Field:   warning.Path,
			Message: warning.Message,
		})
	}
	return details
}

// isUUID returns true if the string matches the standard UUID length.
// Slugs never reach 36 characters with hyphens in these positions.
func isUUID(s string) bool {
	return len(s) == 36 && s[8] == '-' && s[13] == '-'
}
