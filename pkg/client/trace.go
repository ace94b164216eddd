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
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	traceParentHeader = "Traceparent"
	traceStateHeader  = "Tracestate"
	traceState        = "test-automation=user-api-tests"
)

// newTraceParent creates a W3C traceparent header value. Every request gets a
// fresh trace so a failure can be looked up in the service logs.
func newTraceParent() string {
	traceID := make([]byte, 16)
	spanID := make([]byte, 8)

	_, _ = rand.Read(traceID)
	_, _ = rand.Read(spanID)

	return fmt.Sprintf("00-%s-%s-01", hex.EncodeToString(traceID), hex.EncodeToString(spanID))
}

// traceIDFrom extracts the trace ID from a traceparent header value.
func traceIDFrom(traceParent string) string {
	parts := strings.Split(traceParent, "-")
	if len(parts) >= 2 {
		return parts[1]
	}

	return traceParent
}
