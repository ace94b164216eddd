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

package cli_test

import (
	"bytes"
	"context"
	"encoding/xml"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pnacademy/user-api-tests/pkg/cli"
	"github.com/pnacademy/user-api-tests/pkg/fake"
	"github.com/pnacademy/user-api-tests/pkg/fixtures"
	"github.com/pnacademy/user-api-tests/pkg/report"
)

func newFakeURL(t *testing.T) string {
	t.Helper()

	f, err := fixtures.Default()
	require.NoError(t, err)

	server, err := fake.New(cli.FakeOptions(f))
	require.NoError(t, err)

	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	return ts.URL
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root, err := cli.NewRootCommand()
	require.NoError(t, err)

	var out bytes.Buffer

	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err = root.ExecuteContext(context.Background())

	return out.String(), err
}

func TestRunPasses(t *testing.T) {
	out, err := execute(t, "run", "--base-url", newFakeURL(t), "--no-color")
	require.NoError(t, err)
	require.Equal(t, cli.ExitSuccess, cli.ExitCode(err))
	require.Contains(t, out, "19 passed")
}

func TestRunJUnitToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xml")

	_, err := execute(t, "run", "--base-url", newFakeURL(t), "--format", "junit", "--output", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var suites report.JUnitTestSuites
	require.NoError(t, xml.Unmarshal(data, &suites))
	require.Equal(t, 19, suites.Tests)
	require.Zero(t, suites.Failures)
}

func TestRunFailureExitCode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	require.NoError(t, os.WriteFile(path, []byte("admin:\n  password: Wrong@pass1\n"), 0o600))

	out, err := execute(t, "run", "--base-url", newFakeURL(t), "--fixtures", path, "--no-color")
	require.ErrorIs(t, err, cli.ErrTestsFailed)
	require.Equal(t, cli.ExitTestFailure, cli.ExitCode(err))
	require.Contains(t, out, "1 failed")
}

func TestRunNetworkExitCode(t *testing.T) {
	ts := httptest.NewServer(nil)
	url := ts.URL
	ts.Close()

	_, err := execute(t, "run", "--base-url", url, "--no-color")
	require.Equal(t, cli.ExitNetworkError, cli.ExitCode(err))
}

func TestRunConfigExitCode(t *testing.T) {
	_, err := execute(t, "run")
	require.Equal(t, cli.ExitConfigError, cli.ExitCode(err))

	_, err = execute(t, "run", "--base-url", "http://localhost", "--format", "html")
	require.Equal(t, cli.ExitConfigError, cli.ExitCode(err))

	_, err = execute(t, "run", "--base-url", "http://localhost", "--filter", "[")
	require.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestUsageExitCode(t *testing.T) {
	_, err := execute(t, "run", "--no-such-flag")
	require.Equal(t, cli.ExitUsageError, cli.ExitCode(err))

	_, err = execute(t, "explode")
	require.Equal(t, cli.ExitUsageError, cli.ExitCode(err))
}

func TestList(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)
	require.Contains(t, out, "  - User Login\n")
	require.Contains(t, out, "  - Update User\n    depends on: Create User, Create Role\n")

	out, err = execute(t, "list", "--filter", "User Login - *")
	require.NoError(t, err)
	require.NotContains(t, out, "  - User Login\n")
	require.NotContains(t, out, "Get User Info")
	require.Contains(t, out, "User Login - Invalid Credentials")

	out, err = execute(t, "list", "--filter", "Export Users")
	require.NoError(t, err)
	require.Contains(t, out, "  - User Login\n")
	require.Contains(t, out, "  - Export Users\n")
	require.NotContains(t, out, "Create Role")
}

func TestRunFilterIncludesDependencies(t *testing.T) {
	out, err := execute(t, "run", "--base-url", newFakeURL(t), "--filter", "Export Users", "--no-color")
	require.NoError(t, err)
	require.Contains(t, out, "2 passed")
	require.NotContains(t, out, "dependency")
}

func TestRunCancelledExitCode(t *testing.T) {
	root, err := cli.NewRootCommand()
	require.NoError(t, err)

	var out bytes.Buffer

	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"run", "--base-url", newFakeURL(t), "--no-color"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = root.ExecuteContext(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, err, cli.ErrTestsFailed)
	require.Equal(t, cli.ExitInterrupted, cli.ExitCode(err))
	require.Contains(t, out.String(), "19 skipped")
}
