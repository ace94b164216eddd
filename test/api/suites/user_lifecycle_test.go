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
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pnacademy/user-api-tests/pkg/client"
	"github.com/pnacademy/user-api-tests/pkg/runner"
	"github.com/pnacademy/user-api-tests/pkg/scenario"
	"github.com/pnacademy/user-api-tests/test/api"
)

// The lifecycle steps share one session, so they run in order and a failure
// skips the rest.
var _ = Describe("User Lifecycle", Ordered, func() {
	var (
		admin   *client.Client
		session client.Session
	)

	BeforeAll(func() {
		c, err := api.NewAPIClientWithConfig(config)
		Expect(err).NotTo(HaveOccurred())

		admin, session = api.LoginAsAdmin(context.Background(), c, config)
	})

	It("should register a user", func() {
		response, err := admin.Register(ctx, api.NewUserPayload(config.Fixtures).Build())
		Expect(err).NotTo(HaveOccurred())

		session = session.WithUserID(response.Data.ID)
	})

	It("should create a role", func() {
		response, err := admin.CreateRole(ctx, api.NewRolePayload(config.Fixtures).Build())
		Expect(err).NotTo(HaveOccurred())

		session = session.WithRoleID(response.Data.ID)
	})

	It("should assign the role to the user", func() {
		_, err := admin.UpdateUser(ctx, client.UpdateUserRequest{
			ID:           session.UserID,
			DataToUpdate: config.Fixtures.UserUpdate(session.RoleID),
		})
		Expect(err).NotTo(HaveOccurred())
	})

	It("should keep working after refreshing the access token", func() {
		response, err := admin.RefreshAccessToken(ctx, session.RefreshToken)
		Expect(err).NotTo(HaveOccurred())

		session = session.WithAccessToken(response.AccessToken)
		admin = admin.Authenticate(session.AccessToken)

		_, err = admin.Info(ctx)
		Expect(err).NotTo(HaveOccurred())
	})

	It("should delete the role", func() {
		_, err := admin.DeleteRoles(ctx, session.RoleID)
		Expect(err).NotTo(HaveOccurred())
	})

	It("should delete the user", func() {
		_, err := admin.DeleteUsers(ctx, session.UserID)
		Expect(err).NotTo(HaveOccurred())
	})
})

var _ = Describe("Smoke Scenario", func() {
	It("should pass every case", func() {
		ctx, cancel := context.WithTimeout(ctx, config.TestTimeout)
		defer cancel()

		result, err := scenario.New(apiClient, config.Fixtures).Run(ctx, runner.Options{
			Logger: GinkgoLogr.WithName("runner"),
		})
		Expect(err).NotTo(HaveOccurred())

		for _, r := range result.Results {
			Expect(r.Status).To(Equal(runner.StatusPassed), "%s: %v %s", r.Name, r.Err, r.SkipReason)
		}

		Expect(result.Success()).To(BeTrue())
		Expect(result.Total()).To(Equal(len(scenario.New(apiClient, config.Fixtures).Cases())))
	})
})
