// Copyright (c) 2026 Libretto. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/libretto/internal/platform/constants"
	requestutil "github.com/taibuivan/libretto/internal/platform/request"
	"github.com/taibuivan/libretto/internal/platform/respond"
	"github.com/taibuivan/libretto/internal/platform/validate"
)

// Handler implements the token exchange endpoint.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with the auth endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/token", handler.issueToken)
	return router
}

// # Request Payloads

type tokenRequest struct {
	APIKey string `json:"api_key"`
}

// # Response Payloads

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Publisher   string `json:"publisher"`
	Role        string `json:"role"`
}

// # Token Endpoints

/*
POST /api/v1/auth/token.

Description: Exchanges a publisher API key for a short-lived access token.

Request (Body):
  - api_key: string

Response:
  - 200: tokenResponse: Signed access token and its metadata
  - 400: Validation: Missing api_key
  - 401: ErrUnauthorized: No configured credential matches the key
*/
func (handler *Handler) issueToken(writer http.ResponseWriter, request *http.Request) {
	var input tokenRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required("api_key", input.APIKey)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, credential, err := handler.authService.IssueToken(input.APIKey)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(constants.AccessTokenTTL.Seconds()),
		Publisher:   credential.Name,
		Role:        string(credential.Role),
	})
}
