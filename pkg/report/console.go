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

// Package report renders run results for people and for CI.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/pnacademy/user-api-tests/pkg/runner"
)

var ErrUnknownFormat = errors.New("unknown report format")

// Formatter writes a run result.
type Formatter interface {
	Format(w io.Writer, result *runner.RunResult) error
}

// New returns the formatter for a format name, "console" or "junit".
func New(format string, noColor, verbose bool) (Formatter, error) {
	switch format {
	case "", "console":
		return NewConsole(noColor, verbose), nil
	case "junit":
		return &JUnit{}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Console prints one line per case and a summary.
type Console struct {
	verbose bool

	green  *color.Color
	red    *color.Color
	yellow *color.Color
	cyan   *color.Color
	bold   *color.Color
}

func NewConsole(noColor, verbose bool) *Console {
	c := &Console{
		verbose: verbose,
		green:   color.New(color.FgGreen),
		red:     color.New(color.FgRed),
		yellow:  color.New(color.FgYellow),
		cyan:    color.New(color.FgCyan),
		bold:    color.New(color.Bold),
	}

	if noColor {
		for _, col := range []*color.Color{c.green, c.red, c.yellow, c.cyan, c.bold} {
			col.DisableColor()
		}
	}

	return c
}

func (c *Console) Format(w io.Writer, result *runner.RunResult) error {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s\n\n", c.bold.Sprint("Running: "+result.Name))

	for _, r := range result.Results {
		switch r.Status {
		case runner.StatusSkipped:
			fmt.Fprintf(&b, "  %s %s", c.yellow.Sprint("-"), r.Name)

			if c.verbose || !strings.HasPrefix(r.SkipReason, "filtered") {
				fmt.Fprintf(&b, " (%s)", r.SkipReason)
			}

			b.WriteString("\n")
		case runner.StatusFailed:
			fmt.Fprintf(&b, "  %s %s %s\n", c.red.Sprint("✗"), r.Name, c.cyan.Sprintf("(%dms)", r.Duration.Milliseconds()))
			fmt.Fprintf(&b, "    %s %v\n", c.red.Sprint("→"), r.Err)
		case runner.StatusPassed:
			fmt.Fprintf(&b, "  %s %s %s\n", c.green.Sprint("✓"), r.Name, c.cyan.Sprintf("(%dms)", r.Duration.Milliseconds()))

			if c.verbose && len(r.DependsOn) > 0 {
				fmt.Fprintf(&b, "    depends on: %s\n", strings.Join(r.DependsOn, ", "))
			}
		}
	}

	b.WriteString("\nTests: ")

	if result.Passed > 0 {
		fmt.Fprintf(&b, "%s, ", c.green.Sprintf("%d passed", result.Passed))
	}

	if result.Failed > 0 {
		fmt.Fprintf(&b, "%s, ", c.red.Sprintf("%d failed", result.Failed))
	}

	if result.Skipped > 0 {
		fmt.Fprintf(&b, "%s, ", c.yellow.Sprintf("%d skipped", result.Skipped))
	}

	fmt.Fprintf(&b, "%d total\n", result.Total())

	if result.Err != nil {
		fmt.Fprintf(&b, "%s\n", c.red.Sprintf("Stopped: %v", result.Err))
	}

	fmt.Fprintf(&b, "Time:  %dms\n\n", result.Duration.Milliseconds())

	_, err := io.WriteString(w, b.String())

	return err
}
