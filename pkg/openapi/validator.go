/*
Copyright 2026 the PN Academy Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package openapi holds the published contract of the user-management API
// and checks responses against it.
package openapi

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
)

//go:embed server.spec.yaml
var schemaDocument []byte

var ErrUndocumentedRoute = errors.New("route is not documented")

// Schema returns the parsed API document.
func Schema() (*openapi3.T, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(schemaDocument)
	if err != nil {
		return nil, fmt.Errorf("loading api schema: %w", err)
	}

	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validating api schema: %w", err)
	}

	return doc, nil
}

// Validator checks responses against the API document.
type Validator struct {
	router routers.Router
}

func NewValidator() (*Validator, error) {
	doc, err := Schema()
	if err != nil {
		return nil, err
	}

	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("building router: %w", err)
	}

	return &Validator{
		router: router,
	}, nil
}

// ValidateResponse checks that status, headers and body are what the document
// says the operation at method and path returns. path is relative to the
// service root and may carry a query string.
func (v *Validator) ValidateResponse(ctx context.Context, method, path string, status int, header http.Header, body []byte) error {
	u, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("parsing path: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return err
	}

	route, params, err := v.router.FindRoute(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrUndocumentedRoute, method, u.Path, err)
	}

	options := &openapi3filter.Options{
		IncludeResponseStatus: true,
	}

	// Only JSON bodies are checked against a schema.
	if mediaType, _, _ := mime.ParseMediaType(header.Get("Content-Type")); mediaType != "application/json" {
		options.ExcludeResponseBody = true
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request:    req,
			PathParams: params,
			Route:      route,
		},
		Status:  status,
		Header:  header,
		Body:    io.NopCloser(bytes.NewReader(body)),
		Options: options,
	}

	return openapi3filter.ValidateResponse(ctx, input)
}
