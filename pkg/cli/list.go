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
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pnacademy/user-api-tests/pkg/client"
	"github.com/pnacademy/user-api-tests/pkg/config"
	"github.com/pnacademy/user-api-tests/pkg/fixtures"
	"github.com/pnacademy/user-api-tests/pkg/runner"
	"github.com/pnacademy/user-api-tests/pkg/scenario"
)

func newListCommand(options *config.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the cases a run would execute and their dependencies.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := fixtures.Load(options.FixturesFile)
			if err != nil {
				return configError(err)
			}

			r, err := scenario.New(client.New(options.BaseURL), f).Runner(runner.Options{Filter: options.Filter})
			if err != nil {
				return configError(err)
			}

			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "%s:\n", scenario.Name)

			for _, c := range r.Cases() {
				if !r.Included(c.Name) {
					continue
				}

				fmt.Fprintf(out, "  - %s\n", c.Name)

				if len(c.DependsOn) > 0 {
					fmt.Fprintf(out, "    depends on: %s\n", strings.Join(c.DependsOn, ", "))
				}
			}

			return nil
		},
	}
}
