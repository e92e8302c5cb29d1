// Copyright (c) 2026 Libretto. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/libretto/internal/platform/validate"
)

// maxBodyBytes bounds request bodies. Manifests are small documents; 2 MiB
// leaves generous headroom while keeping ingestion abuse-proof.
const maxBodyBytes = 2 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	body := http.MaxBytesReader(nil, request.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ReadBody reads the raw request body with the standard size limit. Used by
the manifest ingestion endpoints, which hand the bytes to the manifest
codec instead of a struct decoder.
*/
func ReadBody(request *http.Request) ([]byte, error) {
	body := http.MaxBytesReader(nil, request.Body, maxBodyBytes)
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, validate.ErrInvalidJSON
	}
	return data, nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}
