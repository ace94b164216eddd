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

package report

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pnacademy/user-api-tests/pkg/client"
	"github.com/pnacademy/user-api-tests/pkg/runner"
)

type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Name       string           `xml:"name,attr,omitempty"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	Skipped    int              `xml:"skipped,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

type JUnitTestSuite struct {
	Name      string          `xml:"name,attr"`
	Tests     int             `xml:"tests,attr"`
	Failures  int             `xml:"failures,attr"`
	Errors    int             `xml:"errors,attr"`
	Skipped   int             `xml:"skipped,attr"`
	Time      float64         `xml:"time,attr"`
	Timestamp string          `xml:"timestamp,attr,omitempty"`
	TestCases []JUnitTestCase `xml:"testcase"`
}

type JUnitTestCase struct {
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Error     *JUnitFailure `xml:"error,omitempty"`
	Skipped   *JUnitSkipped `xml:"skipped,omitempty"`
}

// JUnitFailure is used for both failures and errors.
type JUnitFailure struct {
	Message string `xml:"message,attr,omitempty"`
	Type    string `xml:"type,attr,omitempty"`
	Content string `xml:",chardata"`
}

type JUnitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// JUnit writes results as JUnit XML. A case that never got a response is
// reported as an error, any other failure as a failure.
type JUnit struct {
	// Now stamps the suite, defaults to time.Now.
	Now func() time.Time
}

func failureType(err error) string {
	var apiErr *client.APIError

	switch {
	case errors.As(err, &apiErr):
		return fmt.Sprintf("HTTP %d", apiErr.StatusCode)
	case errors.Is(err, client.ErrContractViolation):
		return "ContractViolation"
	case errors.Is(err, runner.ErrNotRejected):
		return "NotRejected"
	}

	return "AssertionError"
}

// Suite converts a run result.
func (j *JUnit) Suite(result *runner.RunResult) JUnitTestSuite {
	now := time.Now
	if j.Now != nil {
		now = j.Now
	}

	suite := JUnitTestSuite{
		Name:      result.Name,
		Tests:     result.Total(),
		Skipped:   result.Skipped,
		Time:      result.Duration.Seconds(),
		Timestamp: now().UTC().Format(time.RFC3339),
		TestCases: make([]JUnitTestCase, 0, len(result.Results)),
	}

	for _, r := range result.Results {
		tc := JUnitTestCase{
			Name:      r.Name,
			ClassName: result.Name,
			Time:      r.Duration.Seconds(),
		}

		switch r.Status {
		case runner.StatusSkipped:
			tc.Skipped = &JUnitSkipped{
				Message: r.SkipReason,
			}
		case runner.StatusFailed:
			if errors.Is(r.Err, client.ErrTransport) {
				suite.Errors++
				tc.Error = &JUnitFailure{
					Message: r.Err.Error(),
					Type:    "TransportError",
				}
			} else {
				suite.Failures++
				tc.Failure = &JUnitFailure{
					Message: r.Err.Error(),
					Type:    failureType(r.Err),
					Content: r.Err.Error(),
				}
			}
		case runner.StatusPassed:
		}

		suite.TestCases = append(suite.TestCases, tc)
	}

	return suite
}

func (j *JUnit) Format(w io.Writer, result *runner.RunResult) error {
	suite := j.Suite(result)

	suites := JUnitTestSuites{
		Name:       result.Name,
		Tests:      suite.Tests,
		Failures:   suite.Failures,
		Errors:     suite.Errors,
		Skipped:    suite.Skipped,
		Time:       suite.Time,
		TestSuites: []JUnitTestSuite{suite},
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")

	if err := encoder.Encode(suites); err != nil {
		return fmt.Errorf("encoding junit report: %w", err)
	}

	_, err := io.WriteString(w, "\n")

	return err
}
