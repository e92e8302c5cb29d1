// Copyright (c) 2026 Libretto. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package subject

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/libretto/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listSubjects)
}

/*
GET /api/v1/subjects.

Description: Returns the distinct subjects declared across the catalog,
with usage counts, sorted by name.

Response:
  - 200: []Subject
*/
func (handler *Handler) listSubjects(writer http.ResponseWriter, request *http.Request) {
	subjects, err := handler.service.ListSubjects(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, subjects)
}
