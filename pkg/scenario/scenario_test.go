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

package scenario_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pnacademy/user-api-tests/pkg/client"
	"github.com/pnacademy/user-api-tests/pkg/fake"
	"github.com/pnacademy/user-api-tests/pkg/fixtures"
	"github.com/pnacademy/user-api-tests/pkg/openapi"
	"github.com/pnacademy/user-api-tests/pkg/runner"
	"github.com/pnacademy/user-api-tests/pkg/scenario"
)

func newScenario(t *testing.T, mutate func(*fixtures.Fixtures)) *scenario.Scenario {
	t.Helper()

	f, err := fixtures.Default()
	require.NoError(t, err)

	server, err := fake.New(fake.Options{
		Admin: fake.Admin{
			FirstName: f.Admin.FirstName,
			LastName:  f.Admin.LastName,
			Email:     f.Admin.Email,
			Password:  f.Admin.Password,
			Phone:     f.Admin.Phone,
		},
	})
	require.NoError(t, err)

	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	validator, err := openapi.NewValidator()
	require.NoError(t, err)

	if mutate != nil {
		mutate(f)
	}

	return scenario.New(client.New(ts.URL, client.WithResponseValidator(validator)), f)
}

func byName(result *runner.RunResult) map[string]runner.CaseResult {
	out := map[string]runner.CaseResult{}

	for _, r := range result.Results {
		out[r.Name] = r
	}

	return out
}

func TestScenarioPasses(t *testing.T) {
	t.Parallel()

	result, err := newScenario(t, nil).Run(context.Background(), runner.Options{})
	require.NoError(t, err)

	for _, r := range result.Results {
		require.Equal(t, runner.StatusPassed, r.Status, "%s: %v %s", r.Name, r.Err, r.SkipReason)
	}

	require.Equal(t, scenario.Name, result.Name)
	require.Equal(t, 19, result.Passed)
	require.True(t, result.Success())
}

func TestCaseOrder(t *testing.T) {
	t.Parallel()

	cases := newScenario(t, nil).Cases()

	names := make([]string, 0, len(cases))
	for _, c := range cases {
		names = append(names, c.Name)
	}

	require.Equal(t, []string{
		scenario.CaseLogin,
		scenario.CaseLoginInvalid,
		scenario.CaseLoginMissingFields,
		scenario.CaseUserInfo,
		scenario.CaseCreateUser,
		scenario.CaseCreateUserMissing,
		scenario.CaseCreateUserWeakPassword,
		scenario.CaseCreateRole,
		scenario.CaseCreateRoleInvalid,
		scenario.CaseUpdateUser,
		scenario.CaseUpdateUserMissing,
		scenario.CaseListUsers,
		scenario.CaseListRoles,
		scenario.CaseDeleteRole,
		scenario.CaseDeleteRoleMissing,
		scenario.CaseNewAccessToken,
		scenario.CaseExportUsers,
		scenario.CaseDeleteUsers,
		scenario.CaseDeleteUsersMissing,
	}, names)
}

func TestFailedLoginSkipsDependents(t *testing.T) {
	t.Parallel()

	s := newScenario(t, func(f *fixtures.Fixtures) {
		f.Admin.Password = "Wrong@pass1"
	})

	result, err := s.Run(context.Background(), runner.Options{})
	require.NoError(t, err)

	results := byName(result)

	require.Equal(t, runner.StatusFailed, results[scenario.CaseLogin].Status)
	require.True(t, client.IsRejected(results[scenario.CaseLogin].Err))

	// Cases that need no session still run.
	require.Equal(t, runner.StatusPassed, results[scenario.CaseLoginInvalid].Status)
	require.Equal(t, runner.StatusPassed, results[scenario.CaseLoginMissingFields].Status)

	require.Equal(t, runner.StatusSkipped, results[scenario.CaseUserInfo].Status)
	require.Equal(t, `dependency "User Login" failed`, results[scenario.CaseUserInfo].SkipReason)
	require.Equal(t, `dependency "Create User" failed`, results[scenario.CaseUpdateUser].SkipReason)

	require.Equal(t, 1, result.Failed)
	require.Equal(t, 2, result.Passed)
	require.Equal(t, 16, result.Skipped)
}

func TestFailedRoleCreationOnlySkipsRoleDependents(t *testing.T) {
	t.Parallel()

	s := newScenario(t, func(f *fixtures.Fixtures) {
		f.Role.Permissions = map[string]bool{"canFly": true}
	})

	result, err := s.Run(context.Background(), runner.Options{})
	require.NoError(t, err)

	results := byName(result)

	require.Equal(t, runner.StatusFailed, results[scenario.CaseCreateRole].Status)
	require.Equal(t, runner.StatusSkipped, results[scenario.CaseUpdateUser].Status)
	require.Equal(t, runner.StatusSkipped, results[scenario.CaseDeleteRole].Status)
	require.Equal(t, runner.StatusPassed, results[scenario.CaseCreateUser].Status)
	require.Equal(t, runner.StatusPassed, results[scenario.CaseDeleteUsers].Status)
	require.Equal(t, 1, result.Failed)
	require.Equal(t, 2, result.Skipped)
}

func TestFilter(t *testing.T) {
	t.Parallel()

	result, err := newScenario(t, nil).Run(context.Background(), runner.Options{Filter: "User Login*"})
	require.NoError(t, err)
	require.Equal(t, 3, result.Passed)
	require.Equal(t, 16, result.Skipped)
}

func TestFilterRunsLoginForDependentCase(t *testing.T) {
	t.Parallel()

	result, err := newScenario(t, nil).Run(context.Background(), runner.Options{Filter: scenario.CaseExportUsers})
	require.NoError(t, err)
	require.True(t, result.Success())
	require.Equal(t, 2, result.Passed)
	require.Equal(t, 17, result.Skipped)

	for _, r := range result.Results {
		if r.Status == runner.StatusSkipped {
			require.Equal(t, "filtered out", r.SkipReason, r.Name)
		}
	}
}
