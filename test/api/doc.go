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

// Package api provides integration test utilities for the user-management API.
//
// The suites under suites/ talk to the service through pkg/client, the same
// client the smoke runner uses, so a response that breaks the client breaks
// both. Every request carries a W3C traceparent header and failures report the
// trace ID to search the service logs with.
//
// When API_BASE_URL is unset the suites start the in-memory service from
// pkg/fake and run against that instead.
package api
