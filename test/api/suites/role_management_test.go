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

	"k8s.io/utils/ptr"
)

var _ = Describe("Role Management", func() {
	var admin *client.Client

	BeforeEach(func() {
		admin, _ = api.LoginAsAdmin(ctx, apiClient, config)
	})

	Context("When creating a role", func() {
		Describe("Given every known permission", func() {
			It("should create the role and list it", func() {
				payload := api.NewRolePayload(config.Fixtures).Build()

				role := api.CreateRoleWithCleanup(ctx, admin, payload)
				Expect(role.Name).To(Equal(payload.Name))
				Expect(role.Permissions).To(HaveLen(len(client.PermissionKeys())))

				roles, err := admin.ListRoles(ctx, &client.PageParams{Page: ptr.To(1), PageSize: ptr.To(100)})
				Expect(err).NotTo(HaveOccurred())

				if roles.Data.Total <= 100 {
					api.VerifyRolePresence(roles.Data.Roles, role.ID)
				}
			})
		})

		Describe("Given an invalid payload", func() {
			It("should reject an unknown permission", func() {
				_, err := admin.CreateRole(ctx, api.NewRolePayload(config.Fixtures).
					WithPermission(config.Fixtures.Invalid.Permission, true).
					Build())
				api.ExpectRejected(config, err, http.StatusBadRequest)
			})

			It("should reject a role without permissions", func() {
				api.RequireFakeService(config)

				_, err := admin.CreateRole(ctx, api.NewRolePayload(config.Fixtures).WithoutPermissions().Build())
				api.ExpectRejected(config, err, http.StatusBadRequest)
			})

			It("should reject a duplicate name", func() {
				payload := api.NewRolePayload(config.Fixtures).Build()
				api.CreateRoleWithCleanup(ctx, admin, payload)

				_, err := admin.CreateRole(ctx, payload)
				api.ExpectRejected(config, err, http.StatusConflict)
			})
		})
	})

	Context("When deleting roles", func() {
		Describe("Given the role exists", func() {
			It("should delete it", func() {
				role := api.CreateRoleWithCleanup(ctx, admin, api.NewRolePayload(config.Fixtures).Build())

				response, err := admin.DeleteRoles(ctx, role.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(response.Message).To(Equal(client.MessageRolesDeleted))
			})
		})

		Describe("Given one of the roles does not exist", func() {
			It("should delete none of them", func() {
				api.RequireFakeService(config)

				role := api.CreateRoleWithCleanup(ctx, admin, api.NewRolePayload(config.Fixtures).Build())

				_, err := admin.DeleteRoles(ctx, role.ID, config.Fixtures.Invalid.RoleID)
				api.ExpectRejected(config, err, http.StatusNotFound)

				_, err = admin.DeleteRoles(ctx, role.ID)
				Expect(err).NotTo(HaveOccurred())
			})
		})
	})
})
