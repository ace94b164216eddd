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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pnacademy/user-api-tests/pkg/client"
)

// LoginAsAdmin logs in with the fixture admin and returns an authenticated
// copy of c along with the session tokens.
func LoginAsAdmin(ctx context.Context, c *client.Client, config *TestConfig) (*client.Client, client.Session) {
	response, err := c.Login(ctx, config.Fixtures.AdminLogin())
	Expect(err).NotTo(HaveOccurred(), "admin login failed, check TEST_ADMIN_EMAIL and TEST_ADMIN_PASSWORD")
	Expect(response.AccessToken).NotTo(BeEmpty())
	Expect(response.RefreshToken).NotTo(BeEmpty())

	session := client.Session{}.WithTokens(response.AccessToken, response.RefreshToken)

	return c.Authenticate(session.AccessToken), session
}

// CreateUserWithCleanup registers a user and schedules its deletion.
func CreateUserWithCleanup(ctx context.Context, admin *client.Client, payload client.RegisterRequest) client.User {
	response, err := admin.Register(ctx, payload)
	Expect(err).NotTo(HaveOccurred())
	Expect(response.Data.ID).NotTo(BeEmpty())

	userID := response.Data.ID

	GinkgoWriter.Printf("Created user with ID: %s\n", userID)

	// Runs whether the test passes or fails; a 404 means the test already deleted it.
	DeferCleanup(func(ctx context.Context) {
		if _, err := admin.DeleteUsers(ctx, userID); err != nil && client.StatusCode(err) != http.StatusNotFound {
			GinkgoWriter.Printf("Warning: Failed to delete user %s: %v\n", userID, err)
		}
	})

	return response.Data
}

// CreateRoleWithCleanup creates a role and schedules its deletion.
func CreateRoleWithCleanup(ctx context.Context, admin *client.Client, payload client.CreateRoleRequest) client.Role {
	response, err := admin.CreateRole(ctx, payload)
	Expect(err).NotTo(HaveOccurred())
	Expect(response.Data.ID).NotTo(BeEmpty())

	roleID := response.Data.ID

	GinkgoWriter.Printf("Created role with ID: %s\n", roleID)

	DeferCleanup(func(ctx context.Context) {
		if _, err := admin.DeleteRoles(ctx, roleID); err != nil && client.StatusCode(err) != http.StatusNotFound {
			GinkgoWriter.Printf("Warning: Failed to delete role %s: %v\n", roleID, err)
		}
	})

	return response.Data
}

// ExpectRejected asserts that the call was rejected. The exact status is only
// checked against the in-memory service, a deployed one may choose another
// 4xx for the same rejection.
func ExpectRejected(config *TestConfig, err error, status int) {
	GinkgoHelper()

	Expect(err).To(MatchError(client.ErrRejected))

	if config.UseFakeService() {
		Expect(client.StatusCode(err)).To(Equal(status), "unexpected error: %v", err)
	}
}

// RequireFakeService skips specs for behaviour only the in-memory service
// guarantees.
func RequireFakeService(config *TestConfig) {
	if !config.UseFakeService() {
		Skip("behaviour is specific to the in-memory service, API_BASE_URL is set")
	}
}

// VerifyUserPresence verifies that users are present in the list.
func VerifyUserPresence(users []client.User, expectedIDs ...string) {
	GinkgoHelper()

	ids := make([]string, len(users))
	for i, user := range users {
		ids[i] = user.ID
	}

	Expect(ids).To(ContainElements(expectedIDs))
}

// VerifyRolePresence verifies that roles are present in the list.
func VerifyRolePresence(roles []client.Role, expectedIDs ...string) {
	GinkgoHelper()

	ids := make([]string, len(roles))
	for i, role := range roles {
		ids[i] = role.ID
	}

	Expect(ids).To(ContainElements(expectedIDs))
}
