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
	"errors"
	"fmt"
)

var (
	// ErrRejected is matched by every failed call, whether the service
	// answered with a non-2xx status or the request never completed.
	ErrRejected = errors.New("request rejected")

	// ErrTransport is matched when no HTTP response was received.
	ErrTransport = errors.New("transport failure")

	// ErrContractViolation is returned when a successful response does not
	// match the published API contract.
	ErrContractViolation = errors.New("response violates api contract")
)

// APIError is returned for any response outside the 2xx range.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	// Message is the "message" field of the error body, if any.
	Message string
	Body    string
	TraceID string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s (trace ID: %s)", e.Method, e.Path, e.StatusCode, e.Message, e.TraceID)
	}

	return fmt.Sprintf("%s %s: status %d, body: %s (trace ID: %s)", e.Method, e.Path, e.StatusCode, e.Body, e.TraceID)
}

// Is allows errors.Is(err, ErrRejected) to match API errors.
func (e *APIError) Is(target error) bool {
	return target == ErrRejected
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not an
// APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}

	return 0
}

// IsRejected reports whether the call failed in any way.
func IsRejected(err error) bool {
	return errors.Is(err, ErrRejected)
}

func transportError(err error) error {
	return fmt.Errorf("%w: %w: %w", ErrRejected, ErrTransport, err)
}
