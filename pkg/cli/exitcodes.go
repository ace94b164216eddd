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
	"fmt"
)

// Process exit codes.
const (
	ExitSuccess = 0

	// ExitTestFailure means at least one case failed.
	ExitTestFailure = 1

	// ExitConfigError means the options or fixtures are invalid.
	ExitConfigError = 3

	// ExitNetworkError means the service could not be reached at all.
	ExitNetworkError = 4

	// ExitUsageError means the command line could not be parsed.
	ExitUsageError = 64

	// ExitInterrupted means the run was cancelled before every case ran.
	ExitInterrupted = 130
)

var ErrTestsFailed = errors.New("tests failed")

// ExitError carries the exit code for an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func exitError(code int, err error) error {
	return &ExitError{Code: code, Err: err}
}

func configError(err error) error {
	return exitError(ExitConfigError, fmt.Errorf("configuration: %w", err))
}

// ExitCode maps an error returned by the root command to an exit code.
// Errors that carry no code come from cobra's argument handling.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return ExitUsageError
}
