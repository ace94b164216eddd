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
//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"errors"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pnacademy/user-api-tests/pkg/client"
)

var _ = Describe("ExpectRejected", func() {
	unprocessable := &client.APIError{Method: http.MethodPost, Path: "/register", StatusCode: http.StatusUnprocessableEntity}

	Context("When running against a deployed service", func() {
		deployed := &TestConfig{BaseURL: "https://users.example.com"}

		It("should accept any rejection status", func() {
			Expect(InterceptGomegaFailures(func() {
				ExpectRejected(deployed, unprocessable, http.StatusBadRequest)
			})).To(BeEmpty())
		})

		It("should fail when the call succeeded", func() {
			Expect(InterceptGomegaFailures(func() {
				ExpectRejected(deployed, nil, http.StatusBadRequest)
			})).NotTo(BeEmpty())
		})

		It("should fail for an error that is not a rejection", func() {
			Expect(InterceptGomegaFailures(func() {
				ExpectRejected(deployed, errors.New("boom"), http.StatusBadRequest)
			})).NotTo(BeEmpty())
		})
	})

	Context("When running against the in-memory service", func() {
		inMemory := &TestConfig{}

		It("should pin the status", func() {
			Expect(InterceptGomegaFailures(func() {
				ExpectRejected(inMemory, unprocessable, http.StatusBadRequest)
			})).NotTo(BeEmpty())

			Expect(InterceptGomegaFailures(func() {
				ExpectRejected(inMemory, unprocessable, http.StatusUnprocessableEntity)
			})).To(BeEmpty())
		})
	})
})
