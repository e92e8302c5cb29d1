// Copyright (c) 2026 Libretto. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth exchanges publisher API keys for short-lived access tokens.

# Architecture

Libretto has no user accounts. Write access to the catalog is granted to a
small set of publisher credentials whose bcrypt hashes live in the server
configuration. A publisher presents its API key once at POST /auth/token
and receives an HS256 JWT carrying its role; every subsequent write request
is authorized from the token alone, without touching the credential store.
*/
package auth

import (
	"log/slog"

	"github.com/taibuivan/libretto/internal/platform/apperr"
	"github.com/taibuivan/libretto/internal/platform/constants"
	"github.com/taibuivan/libretto/internal/platform/sec"
)

// # Credential Registry

// Credential binds a named publisher credential to its role.
type Credential struct {
	// Name identifies the credential in tokens and logs.
	Name string

	// KeyHash is the bcrypt hash of the accepted API key. An empty hash
	// disables the credential.
	KeyHash string

	// Role is the authorization level the credential grants.
	Role sec.Role
}

// # Service Layer

// Service verifies API keys and issues access tokens.
type Service struct {
	credentials []Credential
	tokens      *sec.TokenService
	logger      *slog.Logger
}

// NewService constructs the auth [Service] over a fixed credential set.
func NewService(credentials []Credential, tokens *sec.TokenService, logger *slog.Logger) *Service {
	return &Service{
		credentials: credentials,
		tokens:      tokens,
		logger:      logger,
	}
}

/*
IssueToken exchanges an API key for a signed access token.

Description: The key is checked against every configured credential hash.
bcrypt comparison is deliberately slow, and the credential set is tiny, so
a linear scan is fine. A match mints an HS256 JWT carrying the publisher
name and role.

Parameters:
  - apiKey: string (The plaintext API key presented by the caller)

Returns:
  - string: Signed access token
  - *Credential: The matched credential
  - error: apperr.Unauthorized when no credential matches
*/
func (service *Service) IssueToken(apiKey string) (string, *Credential, error) {

	for index := range service.credentials {
		credential := &service.credentials[index]
		if credential.KeyHash == "" {
			continue
		}

		if !sec.CheckAPIKey(apiKey, credential.KeyHash) {
			continue
		}

		token, err := service.tokens.GenerateAccessToken(credential.Name, credential.Role, constants.AccessTokenTTL)
		if err != nil {
			return "", nil, apperr.Internal(err)
		}

		service.logger.Info("access_token_issued",
			slog.String("publisher", credential.Name),
			slog.String("role", string(credential.Role)),
		)

		return token, credential, nil
	}

	service.logger.Warn("api_key_rejected")
	return "", nil, apperr.Unauthorized("Invalid API key")
}

// VerifyToken delegates to the token service, satisfying the middleware's
// TokenVerifier interface through this package.
func (service *Service) VerifyToken(tokenString string) (*sec.AuthClaims, error) {
	return service.tokens.VerifyToken(tokenString)
}
