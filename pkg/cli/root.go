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

// Package cli implements the user-api-smoke command.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/pnacademy/user-api-tests/pkg/config"
	"github.com/pnacademy/user-api-tests/pkg/constants"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// NewRootCommand returns the command tree. Options are local to the
// returned command so it can be executed more than once.
func NewRootCommand() (*cobra.Command, error) {
	options := &config.Options{}

	root := &cobra.Command{
		Use:     constants.Application,
		Short:   "Smoke test a user-management API.",
		Version: constants.VersionString(),
		Long: `Runs the end to end user API scenario against a deployed service:
log in, register a user, create a role, update, list, refresh the token,
export and clean up. Every flag can also be set with a USER_API_ prefixed
environment variable.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := options.Complete(); err != nil {
				return configError(err)
			}

			options.SetupLogging()

			log.Log.WithName("init").V(1).Info("starting", "application", constants.Application, "version", constants.Version, "revision", constants.Revision)

			return nil
		},
	}

	if err := options.AddFlags(root.PersistentFlags()); err != nil {
		return nil, err
	}

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return exitError(ExitUsageError, err)
	})

	root.AddCommand(
		newRunCommand(options),
		newListCommand(options),
		newServeCommand(options),
	)

	return root, nil
}
