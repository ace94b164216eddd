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

package runner

import (
	"time"
)

// Status is the outcome of a single case.
type Status int

const (
	StatusPassed Status = iota
	StatusFailed
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	}

	return "unknown"
}

// CaseResult records what happened to one case.
type CaseResult struct {
	Name      string
	DependsOn []string
	Status    Status
	// Err is set for failed cases.
	Err error
	// SkipReason is set for skipped cases.
	SkipReason string
	Duration   time.Duration
}

// RunResult is the outcome of a whole run, cases appear in declaration order.
type RunResult struct {
	Name     string
	Results  []CaseResult
	Passed   int
	Failed   int
	Skipped  int
	Duration time.Duration
	// Err is set when the run was cut short by its context. Cases that
	// never ran are reported skipped.
	Err error
}

// Success is true when no case failed and the run was not cancelled.
func (r *RunResult) Success() bool {
	return r.Failed == 0 && r.Err == nil
}

// Total is the number of cases in the run.
func (r *RunResult) Total() int {
	return len(r.Results)
}

func (r *RunResult) add(result CaseResult) {
	r.Results = append(r.Results, result)

	switch result.Status {
	case StatusPassed:
		r.Passed++
	case StatusFailed:
		r.Failed++
	case StatusSkipped:
		r.Skipped++
	}
}
