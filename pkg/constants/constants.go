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

package constants

import (
	"fmt"
)

const Application = "user-api-smoke"

//nolint:gochecknoglobals
var (
	// Version is set with -ldflags at build time.
	Version = "0.0.0"

	// Revision is the git commit, set with -ldflags at build time.
	Revision = "0000000000000000000000000000000000000000"
)

// VersionString returns a human readable version.
func VersionString() string {
	return fmt.Sprintf("%s (revision %s)", Version, Revision)
}
