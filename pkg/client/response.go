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
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Duration   time.Duration
	TraceID    string
}

func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (r *Response) IsJSON() bool {
	return strings.Contains(r.Header.Get("Content-Type"), "application/json")
}

func (r *Response) BodyString() string {
	return string(r.Body)
}

// JSON parses the body. A non-JSON body yields a result for which Exists
// is false.
func (r *Response) JSON() gjson.Result {
	if !gjson.ValidBytes(r.Body) {
		return gjson.Result{}
	}

	return gjson.ParseBytes(r.Body)
}

// Get returns the value at a gjson path, e.g. "data.id".
func (r *Response) Get(path string) gjson.Result {
	return r.JSON().Get(path)
}

// Message returns the top level "message" field, if any.
func (r *Response) Message() string {
	return r.Get("message").String()
}
