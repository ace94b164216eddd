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
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pnacademy/user-api-tests/pkg/client"
	"github.com/pnacademy/user-api-tests/pkg/config"
	"github.com/pnacademy/user-api-tests/pkg/fixtures"
	"github.com/pnacademy/user-api-tests/pkg/openapi"
	"github.com/pnacademy/user-api-tests/pkg/report"
	"github.com/pnacademy/user-api-tests/pkg/runner"
	"github.com/pnacademy/user-api-tests/pkg/scenario"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

func newRunCommand(options *config.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the scenario against --base-url.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), options, cmd.OutOrStdout())
		},
	}
}

func newClient(options *config.Options) (*client.Client, error) {
	opts := []client.Option{
		client.WithTimeout(options.Timeout),
		client.WithRateLimit(options.RateLimit, options.RateBurst),
		client.WithLogger(log.Log.WithName("client")),
		client.WithRequestLogging(options.LogRequests),
		client.WithResponseLogging(options.LogResponses),
	}

	if options.ValidateResponses {
		validator, err := openapi.NewValidator()
		if err != nil {
			return nil, err
		}

		opts = append(opts, client.WithResponseValidator(validator))
	}

	return client.New(options.BaseURL, opts...), nil
}

func run(ctx context.Context, options *config.Options, stdout io.Writer) error {
	if err := options.ValidateRun(); err != nil {
		return configError(err)
	}

	f, err := fixtures.Load(options.FixturesFile)
	if err != nil {
		return configError(err)
	}

	formatter, err := report.New(options.Format, options.NoColor, options.Verbose)
	if err != nil {
		return configError(err)
	}

	c, err := newClient(options)
	if err != nil {
		return configError(err)
	}

	result, err := scenario.New(c, f).Run(ctx, runner.Options{
		Bail:   options.Bail,
		Filter: options.Filter,
		Logger: log.Log.WithName("runner"),
	})
	if err != nil {
		return configError(err)
	}

	out := stdout

	if options.Output != "" {
		file, err := os.Create(options.Output)
		if err != nil {
			return configError(fmt.Errorf("creating report: %w", err))
		}

		defer file.Close()

		out = file
	}

	if err := formatter.Format(out, result); err != nil {
		return exitError(ExitTestFailure, fmt.Errorf("writing report: %w", err))
	}

	return resultError(result)
}

// resultError returns nil when every case passed or was skipped. A cancelled
// run is never a success, and a run where every failure is a transport
// failure is reported as a network error.
func resultError(result *runner.RunResult) error {
	if result.Success() {
		return nil
	}

	if result.Err != nil {
		return exitError(ExitInterrupted, fmt.Errorf("%w: %d of %d cases ran: %w", ErrTestsFailed, result.Passed+result.Failed, result.Total(), result.Err))
	}

	transport := 0

	for _, r := range result.Results {
		if r.Status == runner.StatusFailed && errors.Is(r.Err, client.ErrTransport) {
			transport++
		}
	}

	err := fmt.Errorf("%w: %d of %d cases failed", ErrTestsFailed, result.Failed, result.Total())

	if transport == result.Failed {
		return exitError(ExitNetworkError, err)
	}

	return exitError(ExitTestFailure, err)
}
