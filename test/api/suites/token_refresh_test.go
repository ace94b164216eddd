/*
Copyright 2024-2025 the Unikorn Authors.
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
//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pnacademy/user-api-tests/test/api"
)

var _ = Describe("Token Refresh", func() {
	Context("When exchanging a refresh token", func() {
		Describe("Given a valid refresh token", func() {
			It("should return an access token that authenticates", func() {
				_, session := api.LoginAsAdmin(ctx, apiClient, config)

				response, err := apiClient.RefreshAccessToken(ctx, session.RefreshToken)
				Expect(err).NotTo(HaveOccurred())
				Expect(response.AccessToken).NotTo(BeEmpty())

				session = session.WithAccessToken(response.AccessToken)

				info, err := apiClient.Authenticate(session.AccessToken).Info(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(info.Data.Email).To(Equal(config.Fixtures.Admin.Email))
			})
		})

		Describe("Given an invalid token", func() {
			It("should reject an access token", func() {
				_, session := api.LoginAsAdmin(ctx, apiClient, config)

				_, err := apiClient.RefreshAccessToken(ctx, session.AccessToken)
				api.ExpectRejected(config, err, http.StatusUnauthorized)
			})

			It("should reject a malformed token", func() {
				_, err := apiClient.RefreshAccessToken(ctx, "not-a-jwt")
				api.ExpectRejected(config, err, http.StatusUnauthorized)
			})
		})
	})
})
