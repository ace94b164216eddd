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

package client

import (
	"fmt"
	"strings"

	"github.com/oapi-codegen/runtime"
)

// Endpoints contains all API endpoint paths, relative to the base URL.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

// PageParams selects a page of a listing. Unset fields are left to the
// service defaults.
type PageParams struct {
	Page     *int
	PageSize *int
}

// Authentication endpoints.
func (e *Endpoints) Login() string {
	return "/login"
}

func (e *Endpoints) Info() string {
	return "/info"
}

func (e *Endpoints) AccessToken() string {
	return "/access-token"
}

// User endpoints.
func (e *Endpoints) Register() string {
	return "/register"
}

func (e *Endpoints) UpdateUser() string {
	return "/update"
}

func (e *Endpoints) DeleteUsers() string {
	return "/delete"
}

func (e *Endpoints) ExportUsers() string {
	return "/export"
}

func (e *Endpoints) ListUsers(params *PageParams) (string, error) {
	return withPageQuery("/bulk", params)
}

// Role endpoints.
func (e *Endpoints) Role() string {
	return "/role"
}

func (e *Endpoints) ListRoles(params *PageParams) (string, error) {
	return withPageQuery("/roles", params)
}

// withPageQuery appends form-style query parameters in the same way generated
// OpenAPI clients encode them.
func withPageQuery(path string, params *PageParams) (string, error) {
	if params == nil {
		return path, nil
	}

	var query []string

	if params.Page != nil {
		fragment, err := runtime.StyleParamWithLocation("form", true, "page", runtime.ParamLocationQuery, *params.Page)
		if err != nil {
			return "", fmt.Errorf("encoding page parameter: %w", err)
		}

		query = append(query, fragment)
	}

	if params.PageSize != nil {
		fragment, err := runtime.StyleParamWithLocation("form", true, "pageSize", runtime.ParamLocationQuery, *params.PageSize)
		if err != nil {
			return "", fmt.Errorf("encoding pageSize parameter: %w", err)
		}

		query = append(query, fragment)
	}

	if len(query) == 0 {
		return path, nil
	}

	return path + "?" + strings.Join(query, "&"), nil
}
