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

	"github.com/pnacademy/user-api-tests/pkg/client"
	"github.com/pnacademy/user-api-tests/test/api"
)

var _ = Describe("Authentication", func() {
	Context("When logging in", func() {
		Describe("Given valid admin credentials", func() {
			It("should return an access and refresh token", func() {
				response, err := apiClient.Login(ctx, config.Fixtures.AdminLogin())
				Expect(err).NotTo(HaveOccurred())
				Expect(response.AccessToken).NotTo(BeEmpty())
				Expect(response.RefreshToken).NotTo(BeEmpty())
				Expect(response.AccessToken).NotTo(Equal(response.RefreshToken))
			})
		})

		Describe("Given invalid credentials", func() {
			It("should reject an unknown account", func() {
				_, err := apiClient.Login(ctx, client.LoginRequest{
					Email:      config.Fixtures.Invalid.Email,
					Password:   config.Fixtures.Invalid.Password,
					DeviceType: config.Fixtures.DeviceType,
				})
				api.ExpectRejected(config, err, http.StatusUnauthorized)
			})

			It("should reject a wrong password for a known account", func() {
				_, err := apiClient.Login(ctx, client.LoginRequest{
					Email:      config.Fixtures.Admin.Email,
					Password:   config.Fixtures.Invalid.Password,
					DeviceType: config.Fixtures.DeviceType,
				})
				api.ExpectRejected(config, err, http.StatusUnauthorized)
			})

			It("should reject a request with missing fields", func() {
				_, err := apiClient.Login(ctx, client.LoginRequest{})
				Expect(client.IsRejected(err)).To(BeTrue())
			})
		})
	})

	Context("When fetching the current user", func() {
		Describe("Given an authenticated admin", func() {
			It("should return the admin's profile", func() {
				admin, _ := api.LoginAsAdmin(ctx, apiClient, config)

				info, err := admin.Info(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(info.Data).NotTo(BeNil())
				Expect(info.Data.ID).NotTo(BeEmpty())
				Expect(info.Data.Email).To(Equal(config.Fixtures.Admin.Email))
			})
		})

		Describe("Given no valid token", func() {
			It("should reject requests without a token", func() {
				_, err := apiClient.Info(ctx)
				api.ExpectRejected(config, err, http.StatusUnauthorized)
			})

			It("should reject requests with a malformed token", func() {
				_, err := apiClient.Authenticate("not-a-jwt").Info(ctx)
				api.ExpectRejected(config, err, http.StatusUnauthorized)
			})

			It("should reject a refresh token used as an access token", func() {
				api.RequireFakeService(config)

				_, session := api.LoginAsAdmin(ctx, apiClient, config)

				_, err := apiClient.Authenticate(session.RefreshToken).Info(ctx)
				api.ExpectRejected(config, err, http.StatusUnauthorized)
			})
		})
	})

	Context("When calling an unknown route", func() {
		It("should return not found", func() {
			response, err := apiClient.Do(ctx, http.MethodGet, "/does-not-exist", nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(response.IsSuccess()).To(BeFalse())

			if config.UseFakeService() {
				Expect(response.StatusCode).To(Equal(http.StatusNotFound))
				Expect(response.Message()).To(Equal("Route not found"))
			}
		})
	})
})
