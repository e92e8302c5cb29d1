// Copyright (c) 2026 Libretto. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package publication provides the HTTP interface for the publication catalog.

It exposes endpoints for browsing the catalog, serving manifests in their
wire format, and ingesting manifests from authorised publishers.

# Routing Strategy

  - Public (v1): Discovery endpoints accessible to all visitors
    (GET /publications, GET /publications/{slug}/manifest.json).
  - Restricted (v1): Mutative endpoints requiring the Editor role for
    ingestion and the Admin role for deletion.

The handler translates between the web/JSON layer and the internal domain [Service].
*/
package publication

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/libretto/internal/manifest"
	"github.com/taibuivan/libretto/internal/platform/middleware"
	requestutil "github.com/taibuivan/libretto/internal/platform/request"
	"github.com/taibuivan/libretto/internal/platform/respond"
	"github.com/taibuivan/libretto/internal/platform/sec"
	"github.com/taibuivan/libretto/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for catalog discovery and ingestion.
type Handler struct {
	service *Service
}

// NewHandler constructs a new publication [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the catalog's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery Endpoints
	router.Get("/", handler.listPublications)
	router.Get("/{identifier}", handler.getPublication)
	router.Get("/{slug}/manifest.json", handler.getManifest)

	// ## Manifest Ingestion (Editor Protected)
	router.Group(func(editor chi.Router) {
		editor.Use(middleware.RequireRole(sec.RoleEditor))

		editor.Post("/", handler.createPublication)
		editor.Put("/{identifier}", handler.updatePublication)
	})

	// ## Catalog Removal (Admin Protected)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Delete("/{identifier}", handler.deletePublication)
	})

	return router
}

// # Response Payloads

// warningPayload is the wire shape of a single manifest decode warning.
type warningPayload struct {
	Kind    string `json:"kind"`
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ingestResponse carries the stored entry plus everything the decoder had
// to drop or degrade, so publishers can clean up their documents.
type ingestResponse struct {
	Publication *Publication     `json:"publication"`
	Warnings    []warningPayload `json:"warnings"`
}

func newIngestResponse(entry *Publication, warnings []manifest.Warning) ingestResponse {
	payload := make([]warningPayload, 0, len(warnings))
	for _, warning := range warnings {
		payload = append(payload, warningPayload{
			Kind:    string(warning.Kind),
			Path:    warning.Path,
			Message: warning.Message,
		})
	}
	return ingestResponse{Publication: entry, Warnings: payload}
}

// # Discovery Endpoints

/*
GET /api/v1/publications.

Description: Retrieves a paginated list of catalog entries. Supports
title search and filtering by subject name.

Request:
  - q: string (Title substring search)
  - subject: string (Subject name, matched inside stored manifests)
  - limit: int
  - page: int

Response:
  - 200: []Publication: Paginated list of catalog entries
*/
func (handler *Handler) listPublications(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		Query:   queryParams.Get("q"),
		Subject: queryParams.Get("subject"),
	}

	publications, total, err := handler.service.ListPublications(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, publications, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/publications/{identifier}.

Description: Retrieves a single catalog entry using either its UUID or
unique slug. UUID lookups take precedence.

Request:
  - identifier: string (UUID or Slug)

Response:
  - 200: Publication: Success
  - 404: ErrNotFound: Publication not found
*/
func (handler *Handler) getPublication(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.Param(request, "identifier")

	entry, err := handler.service.GetPublication(request.Context(), identifier)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

/*
GET /api/v1/publications/{slug}/manifest.json.

Description: Serves the canonical manifest document under its wire media
type. This is the endpoint reading systems consume; the body is the
stored document verbatim, not an API envelope.

Request:
  - slug: string (Publication slug)

Response:
  - 200: application/webpub+json document
  - 404: ErrNotFound: Publication not found
*/
func (handler *Handler) getManifest(writer http.ResponseWriter, request *http.Request) {
	slug := requestutil.Param(request, "slug")

	document, err := handler.service.GetManifest(request.Context(), slug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Document(writer, manifest.MediaTypeWebPub, document)
}

// # Ingestion Endpoints

/*
POST /api/v1/publications.

Description: Ingests a raw manifest document as a new catalog entry. The
body is the manifest itself, not a wrapper object. Tolerable defects are
reported back as warnings; only an undecodable document is refused.

Request (Body):
  - Web publication manifest: JSON object

Response:
  - 201: ingestResponse: Stored entry plus decode warnings
  - 400: ErrInvalidJSON: Body is not JSON
  - 401: ErrUnauthorized: Missing or invalid token
  - 403: ErrForbidden: Insufficient permissions
  - 409: Conflict: Slug already in use
  - 422: UnprocessableManifest: Document could not be decoded
*/
func (handler *Handler) createPublication(writer http.ResponseWriter, request *http.Request) {
	document, err := requestutil.ReadBody(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, warnings, err := handler.service.CreatePublication(request.Context(), document)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, newIngestResponse(entry, warnings))
}

/*
PUT /api/v1/publications/{identifier}.

Description: Replaces the manifest of an existing catalog entry. The slug
stays stable across updates so catalog URLs keep working.

Request:
  - identifier: string (UUID or Slug)
  - Body: Web publication manifest (JSON object)

Response:
  - 200: ingestResponse: Updated entry plus decode warnings
  - 404: ErrNotFound: Publication not found
  - 422: UnprocessableManifest: Document could not be decoded
*/
func (handler *Handler) updatePublication(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.Param(request, "identifier")

	document, err := requestutil.ReadBody(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, warnings, err := handler.service.UpdatePublication(request.Context(), identifier, document)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, newIngestResponse(entry, warnings))
}

/*
DELETE /api/v1/publications/{identifier}.

Description: Soft-deletes a catalog entry. Requires the Admin role.

Request:
  - identifier: string (UUID or Slug)

Response:
  - 204: No Content
  - 404: ErrNotFound: Publication not found
*/
func (handler *Handler) deletePublication(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.Param(request, "identifier")

	if err := handler.service.DeletePublication(request.Context(), identifier); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
