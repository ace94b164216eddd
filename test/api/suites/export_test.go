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
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pnacademy/user-api-tests/pkg/client"
	"github.com/pnacademy/user-api-tests/test/api"
)

var _ = Describe("User Export", func() {
	Context("When exporting users", func() {
		Describe("Given an authenticated admin", func() {
			It("should return a CSV including newly created users", func() {
				admin, _ := api.LoginAsAdmin(ctx, apiClient, config)
				user := api.CreateUserWithCleanup(ctx, admin, api.NewUserPayload(config.Fixtures).Build())

				csv, err := admin.ExportUsers(ctx)
				Expect(err).NotTo(HaveOccurred())

				lines := strings.Split(strings.TrimSpace(csv), "\n")
				Expect(strings.TrimSpace(lines[0])).To(Equal(client.ExportHeader))
				Expect(csv).To(ContainSubstring(user.ID))
				Expect(csv).To(ContainSubstring(user.Email))
			})
		})

		Describe("Given no authentication", func() {
			It("should reject the export", func() {
				_, err := apiClient.ExportUsers(ctx)
				api.ExpectRejected(config, err, http.StatusUnauthorized)
			})
		})
	})
})
