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

// Package runner executes an ordered list of cases that share state.
//
// State is threaded by value: each case receives the state produced by the
// cases that passed before it and returns the state for those that follow.
// The output of a failed case is discarded. Dependencies are declared
// explicitly and a case whose dependency did not pass is skipped rather
// than run against missing state.
package runner

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/go-logr/logr"

	"github.com/pnacademy/user-api-tests/pkg/client"
)

var (
	ErrDuplicateCase     = errors.New("duplicate case name")
	ErrInvalidDependency = errors.New("invalid dependency")
	ErrInvalidCase       = errors.New("invalid case")

	// ErrCancelled is set on a result whose run stopped before every
	// case could run.
	ErrCancelled = errors.New("run cancelled")

	// ErrNotRejected is returned by ExpectRejection when the call succeeded.
	ErrNotRejected = errors.New("expected the request to be rejected but it succeeded")
)

const (
	skipReasonFiltered  = "filtered out"
	skipReasonBailed    = "skipped after an earlier failure"
	skipReasonCancelled = "run cancelled"
)

// Case is a named step of a run.
type Case[S any] struct {
	Name string
	// DependsOn names earlier cases that must pass for this one to run.
	DependsOn []string
	Run       func(ctx context.Context, state S) (S, error)
}

// Options control a run.
type Options struct {
	// Bail stops running cases after the first failure.
	Bail bool

	// Filter is a path.Match pattern, cases whose name does not match are
	// skipped unless a matching case depends on them.
	Filter string

	Logger logr.Logger
}

type Runner[S any] struct {
	cases   []Case[S]
	options Options
	// included holds the cases selected by the filter plus everything they
	// depend on, directly or not.
	included map[string]bool
}

// New checks the cases are well formed: names are unique and non-empty, and
// each dependency names an earlier case.
func New[S any](cases []Case[S], options Options) (*Runner[S], error) {
	seen := make(map[string]struct{}, len(cases))

	for i, c := range cases {
		if c.Name == "" {
			return nil, fmt.Errorf("%w: case %d has no name", ErrInvalidCase, i)
		}

		if c.Run == nil {
			return nil, fmt.Errorf("%w: case %q has no run function", ErrInvalidCase, c.Name)
		}

		if _, ok := seen[c.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCase, c.Name)
		}

		for _, dependency := range c.DependsOn {
			if _, ok := seen[dependency]; !ok {
				return nil, fmt.Errorf("%w: case %q depends on %q which is not declared before it", ErrInvalidDependency, c.Name, dependency)
			}
		}

		seen[c.Name] = struct{}{}
	}

	if options.Filter != "" {
		if _, err := path.Match(options.Filter, ""); err != nil {
			return nil, fmt.Errorf("invalid filter %q: %w", options.Filter, err)
		}
	}

	if options.Logger.GetSink() == nil {
		options.Logger = logr.Discard()
	}

	r := &Runner[S]{
		cases:   cases,
		options: options,
	}

	r.included = r.closure()

	return r, nil
}

// Cases returns the cases in run order.
func (r *Runner[S]) Cases() []Case[S] {
	return r.cases
}

func (r *Runner[S]) selected(name string) bool {
	if r.options.Filter == "" {
		return true
	}

	matched, _ := path.Match(r.options.Filter, name)

	return matched
}

// closure walks the cases backwards so every dependency is seen after the
// cases that need it.
func (r *Runner[S]) closure() map[string]bool {
	included := make(map[string]bool, len(r.cases))

	for i := len(r.cases) - 1; i >= 0; i-- {
		c := r.cases[i]

		if !included[c.Name] && !r.selected(c.Name) {
			continue
		}

		included[c.Name] = true

		for _, dependency := range c.DependsOn {
			included[dependency] = true
		}
	}

	return included
}

// Included reports whether the named case will run, either because it
// matches the filter or because a matching case depends on it.
func (r *Runner[S]) Included(name string) bool {
	return r.included[name]
}

// Run executes the cases in order, starting from initial.
func (r *Runner[S]) Run(ctx context.Context, name string, initial S) *RunResult {
	log := r.options.Logger.WithValues("run", name)

	result := &RunResult{
		Name: name,
	}

	start := time.Now()

	state := initial
	passed := map[string]bool{}
	bailed := false

	for _, c := range r.cases {
		caseResult := CaseResult{
			Name:      c.Name,
			DependsOn: c.DependsOn,
		}

		if reason, skip := r.skipReason(ctx, c, passed, bailed); skip {
			caseResult.Status = StatusSkipped
			caseResult.SkipReason = reason

			if reason == skipReasonCancelled && result.Err == nil {
				result.Err = fmt.Errorf("%w: %w", ErrCancelled, context.Cause(ctx))
			}

			log.V(1).Info("case skipped", "case", c.Name, "reason", reason)
			result.add(caseResult)

			continue
		}

		caseStart := time.Now()
		next, err := runCase(ctx, c, state)
		caseResult.Duration = time.Since(caseStart)

		if err != nil {
			caseResult.Status = StatusFailed
			caseResult.Err = err

			log.Info("case failed", "case", c.Name, "error", err.Error(), "duration", caseResult.Duration)
			result.add(caseResult)

			bailed = r.options.Bail

			continue
		}

		state = next
		passed[c.Name] = true

		caseResult.Status = StatusPassed

		log.V(1).Info("case passed", "case", c.Name, "duration", caseResult.Duration)
		result.add(caseResult)
	}

	result.Duration = time.Since(start)

	log.Info("run complete", "passed", result.Passed, "failed", result.Failed, "skipped", result.Skipped, "duration", result.Duration)

	return result
}

func (r *Runner[S]) skipReason(ctx context.Context, c Case[S], passed map[string]bool, bailed bool) (string, bool) {
	if ctx.Err() != nil {
		return skipReasonCancelled, true
	}

	if bailed {
		return skipReasonBailed, true
	}

	if !r.included[c.Name] {
		return skipReasonFiltered, true
	}

	for _, dependency := range c.DependsOn {
		if !passed[dependency] {
			return fmt.Sprintf("dependency %q failed", dependency), true
		}
	}

	return "", false
}

// runCase runs a single case, turning a panic into a failure.
func runCase[S any](ctx context.Context, c Case[S], state S) (next S, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("case panicked: %v", r)
		}
	}()

	return c.Run(ctx, state)
}

// ExpectRejection turns the outcome of an expected-failure call into a case
// result: a rejected call passes, a successful one fails.
func ExpectRejection(err error) error {
	if err == nil {
		return ErrNotRejected
	}

	if client.IsRejected(err) {
		return nil
	}

	return fmt.Errorf("expected the request to be rejected: %w", err)
}
