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
	"github.com/pnacademy/user-api-tests/pkg/fixtures"
	"github.com/pnacademy/user-api-tests/test/api"

	"k8s.io/utils/ptr"
)

var _ = Describe("User Management", func() {
	var admin *client.Client

	BeforeEach(func() {
		admin, _ = api.LoginAsAdmin(ctx, apiClient, config)
	})

	Context("When registering a user", func() {
		Describe("Given a valid payload", func() {
			It("should create the user and list it", func() {
				payload := api.NewUserPayload(config.Fixtures).Build()

				user := api.CreateUserWithCleanup(ctx, admin, payload)
				Expect(user.Email).To(Equal(payload.Email))
				Expect(user.FirstName).To(Equal(payload.FirstName))

				users, err := admin.ListUsers(ctx, &client.PageParams{Page: ptr.To(1), PageSize: ptr.To(100)})
				Expect(err).NotTo(HaveOccurred())
				Expect(users.Data.Total).To(BeNumerically(">=", 2))

				if users.Data.Total <= 100 {
					api.VerifyUserPresence(users.Data.Users, user.ID)
				}
			})
		})

		Describe("Given an invalid payload", func() {
			DescribeTable("should reject the registration",
				func(mutate func(*api.UserPayloadBuilder)) {
					builder := api.NewUserPayload(config.Fixtures)
					mutate(builder)

					_, err := admin.Register(ctx, builder.Build())
					api.ExpectRejected(config, err, http.StatusBadRequest)
				},
				Entry("with an invalid email", func(b *api.UserPayloadBuilder) { b.WithEmail("not-an-email") }),
				Entry("with a weak password", func(b *api.UserPayloadBuilder) { b.WithPassword(config.Fixtures.Invalid.WeakPassword) }),
				Entry("with a non-numeric phone", func(b *api.UserPayloadBuilder) { b.WithPhone("not-a-phone") }),
				Entry("with no name", func(b *api.UserPayloadBuilder) { b.WithName("", "") }),
			)

			It("should reject a duplicate email", func() {
				payload := api.NewUserPayload(config.Fixtures).Build()
				api.CreateUserWithCleanup(ctx, admin, payload)

				_, err := admin.Register(ctx, payload)
				api.ExpectRejected(config, err, http.StatusConflict)
			})
		})

		Describe("Given no authentication", func() {
			It("should reject the registration", func() {
				_, err := apiClient.Register(ctx, api.NewUserPayload(config.Fixtures).Build())
				api.ExpectRejected(config, err, http.StatusUnauthorized)
			})
		})
	})

	Context("When updating a user", func() {
		Describe("Given the user and role exist", func() {
			It("should apply the changes and assign the role", func() {
				user := api.CreateUserWithCleanup(ctx, admin, api.NewUserPayload(config.Fixtures).Build())
				role := api.CreateRoleWithCleanup(ctx, admin, api.NewRolePayload(config.Fixtures).Build())

				update := config.Fixtures.UserUpdate(role.ID)

				response, err := admin.UpdateUser(ctx, client.UpdateUserRequest{
					ID:           user.ID,
					DataToUpdate: update,
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(response.Message).To(Equal(client.MessageUserUpdated))
			})
		})

		Describe("Given the user does not exist", func() {
			It("should return not found", func() {
				_, err := admin.UpdateUser(ctx, client.UpdateUserRequest{
					ID:           config.Fixtures.Invalid.UserID,
					DataToUpdate: config.Fixtures.UserUpdate(""),
				})
				api.ExpectRejected(config, err, http.StatusNotFound)
			})
		})

		Describe("Given the role does not exist", func() {
			It("should reject the update", func() {
				api.RequireFakeService(config)

				user := api.CreateUserWithCleanup(ctx, admin, api.NewUserPayload(config.Fixtures).Build())

				_, err := admin.UpdateUser(ctx, client.UpdateUserRequest{
					ID:           user.ID,
					DataToUpdate: client.UserUpdate{RoleID: config.Fixtures.Invalid.RoleID},
				})
				api.ExpectRejected(config, err, http.StatusBadRequest)
			})
		})
	})

	Context("When listing users", func() {
		DescribeTable("should honour the page size",
			func(pageSize int) {
				api.RequireFakeService(config)

				users, err := admin.ListUsers(ctx, &client.PageParams{Page: ptr.To(1), PageSize: ptr.To(pageSize)})
				Expect(err).NotTo(HaveOccurred())
				Expect(users.Data.PageSize).To(Equal(pageSize))
				Expect(len(users.Data.Users)).To(BeNumerically("<=", pageSize))
			},
			Entry("a single user", 1),
			Entry("the default", 10),
			Entry("the maximum", 100),
		)

		It("should reject an invalid page", func() {
			api.RequireFakeService(config)

			_, err := admin.ListUsers(ctx, &client.PageParams{Page: ptr.To(0)})
			api.ExpectRejected(config, err, http.StatusBadRequest)
		})
	})

	Context("When deleting users", func() {
		Describe("Given the users exist", func() {
			It("should delete them", func() {
				first := api.CreateUserWithCleanup(ctx, admin, api.NewUserPayload(config.Fixtures).Build())
				second := api.CreateUserWithCleanup(ctx, admin, api.NewUserPayload(config.Fixtures).
					WithEmail(fixtures.UniqueEmail("second", config.Fixtures.User.EmailDomain)).
					Build())

				response, err := admin.DeleteUsers(ctx, first.ID, second.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(response.Message).To(Equal(client.MessageUsersDeleted))

				_, err = admin.DeleteUsers(ctx, first.ID)
				api.ExpectRejected(config, err, http.StatusNotFound)
			})
		})

		Describe("Given a user does not exist", func() {
			It("should return not found", func() {
				_, err := admin.DeleteUsers(ctx, config.Fixtures.Invalid.DeleteUserID)
				api.ExpectRejected(config, err, http.StatusNotFound)
			})
		})

		Describe("Given the caller's own account", func() {
			It("should refuse to delete it", func() {
				api.RequireFakeService(config)

				info, err := admin.Info(ctx)
				Expect(err).NotTo(HaveOccurred())

				_, err = admin.DeleteUsers(ctx, info.Data.ID)
				api.ExpectRejected(config, err, http.StatusBadRequest)
			})
		})
	})
})
