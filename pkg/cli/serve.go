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

package cli

import (
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/pnacademy/user-api-tests/pkg/config"
	"github.com/pnacademy/user-api-tests/pkg/fake"
	"github.com/pnacademy/user-api-tests/pkg/fixtures"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// FakeOptions builds the in-memory service options from fixtures so the
// scenario's admin can log in.
func FakeOptions(f *fixtures.Fixtures) fake.Options {
	return fake.Options{
		Admin: fake.Admin{
			FirstName: f.Admin.FirstName,
			LastName:  f.Admin.LastName,
			Email:     f.Admin.Email,
			Password:  f.Admin.Password,
			Phone:     f.Admin.Phone,
		},
		Logger: log.Log.WithName("fake"),
	}
}

func newServeCommand(options *config.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve an in-memory user-management API on --listen.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := fixtures.Load(options.FixturesFile)
			if err != nil {
				return configError(err)
			}

			server, err := fake.New(FakeOptions(f))
			if err != nil {
				return configError(err)
			}

			if err := server.ListenAndServe(cmd.Context(), options.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return exitError(ExitNetworkError, err)
			}

			return nil
		},
	}
}
