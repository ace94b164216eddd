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
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/pnacademy/user-api-tests/pkg/fixtures"
)

type TestConfig struct {
	// BaseURL is the service under test. Empty means an in-memory service
	// is started for the run.
	BaseURL        string
	AdminEmail     string
	AdminPassword  string
	FixturesFile   string
	RequestTimeout time.Duration
	TestTimeout    time.Duration
	RateLimit      float64
	RateBurst      int
	ValidateSchema bool
	DebugLogging   bool
	LogRequests    bool
	LogResponses   bool

	// Fixtures are loaded from FixturesFile with the admin overrides applied.
	Fixtures *fixtures.Fixtures
}

// LoadTestConfig loads configuration from environment variables and .env files.
// Returns an error if the fixtures cannot be loaded.
func LoadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	config := &TestConfig{
		BaseURL:        os.Getenv("API_BASE_URL"),
		AdminEmail:     os.Getenv("TEST_ADMIN_EMAIL"),
		AdminPassword:  os.Getenv("TEST_ADMIN_PASSWORD"),
		FixturesFile:   os.Getenv("TEST_FIXTURES_FILE"),
		RequestTimeout: getDurationWithDefault("REQUEST_TIMEOUT", 30*time.Second),
		TestTimeout:    getDurationWithDefault("TEST_TIMEOUT", 5*time.Minute),
		RateLimit:      getFloatWithDefault("RATE_LIMIT", 0),
		RateBurst:      getIntWithDefault("RATE_BURST", 1),
		ValidateSchema: getBoolWithDefault("VALIDATE_SCHEMA", true),
		DebugLogging:   getBoolWithDefault("DEBUG_LOGGING", false),
		LogRequests:    getBoolWithDefault("LOG_REQUESTS", false),
		LogResponses:   getBoolWithDefault("LOG_RESPONSES", false),
	}

	f, err := fixtures.Load(config.FixturesFile)
	if err != nil {
		return nil, fmt.Errorf("loading fixtures: %w", err)
	}

	if config.AdminEmail != "" {
		f.Admin.Email = config.AdminEmail
	}

	if config.AdminPassword != "" {
		f.Admin.Password = config.AdminPassword
	}

	config.Fixtures = f

	return config, nil
}

// UseFakeService reports whether the suites should start their own service.
func (c *TestConfig) UseFakeService() bool {
	return c.BaseURL == ""
}

// getDurationWithDefault gets a duration from environment variable or returns default.
func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func getFloatWithDefault(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getIntWithDefault(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}

	return value
}

func loadEnvFile() {
	envPaths := []string{
		"../../.env",    // From test/api/suites directory
		"../../../.env", // From test/contracts/consumer/* directories
	}

	var envPath string

	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}
