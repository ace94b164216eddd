/*
Copyright 2024-2025 the Unikorn Authors.
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

package api

import (
	"net/http/httptest"

	"github.com/onsi/ginkgo/v2"

	"github.com/pnacademy/user-api-tests/pkg/client"
	"github.com/pnacademy/user-api-tests/pkg/fake"
	"github.com/pnacademy/user-api-tests/pkg/openapi"
)

// NewAPIClientWithConfig returns an unauthenticated client for config.BaseURL
// that logs through the Ginkgo writer.
func NewAPIClientWithConfig(config *TestConfig) (*client.Client, error) {
	opts := []client.Option{
		client.WithTimeout(config.RequestTimeout),
		client.WithRateLimit(config.RateLimit, config.RateBurst),
		client.WithLogger(ginkgo.GinkgoLogr.WithName("client")),
		client.WithRequestLogging(config.LogRequests || config.DebugLogging),
		client.WithResponseLogging(config.LogResponses || config.DebugLogging),
	}

	if config.ValidateSchema {
		validator, err := openapi.NewValidator()
		if err != nil {
			return nil, err
		}

		opts = append(opts, client.WithResponseValidator(validator))
	}

	return client.New(config.BaseURL, opts...), nil
}

// StartFakeService serves the in-memory service seeded with the fixture admin
// and points config.BaseURL at it. The returned function stops it.
func StartFakeService(config *TestConfig) (func(), error) {
	admin := config.Fixtures.Admin

	server, err := fake.New(fake.Options{
		Admin: fake.Admin{
			FirstName: admin.FirstName,
			LastName:  admin.LastName,
			Email:     admin.Email,
			Password:  admin.Password,
			Phone:     admin.Phone,
		},
		Logger: ginkgo.GinkgoLogr.WithName("fake"),
	})
	if err != nil {
		return nil, err
	}

	ts := httptest.NewServer(server.Handler())
	config.BaseURL = ts.URL

	ginkgo.GinkgoWriter.Printf("Started in-memory user service at %s\n", ts.URL)

	return ts.Close, nil
}
