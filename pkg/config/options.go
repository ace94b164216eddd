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

// Package config holds the command line options. Every flag may also be
// set with a USER_API_ prefixed environment variable, e.g. --base-url is
// USER_API_BASE_URL.
package config

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

const EnvPrefix = "USER_API"

var ErrInvalidOptions = errors.New("invalid options")

const (
	flagBaseURL           = "base-url"
	flagFixtures          = "fixtures"
	flagTimeout           = "timeout"
	flagRateLimit         = "rate-limit"
	flagRateBurst         = "rate-burst"
	flagValidateResponses = "validate-responses"
	flagLogRequests       = "log-requests"
	flagLogResponses      = "log-responses"
	flagFormat            = "format"
	flagOutput            = "output"
	flagNoColor           = "no-color"
	flagVerbose           = "verbose"
	flagBail              = "bail"
	flagFilter            = "filter"
	flagListen            = "listen"
)

// Options configure both the scenario run and the fake service.
type Options struct {
	BaseURL      string
	FixturesFile string

	Timeout   time.Duration
	RateLimit float64
	RateBurst int

	ValidateResponses bool
	LogRequests       bool
	LogResponses      bool

	Format  string
	Output  string
	NoColor bool
	Verbose bool

	Bail   bool
	Filter string

	Listen string

	Logging zap.Options

	viper *viper.Viper
}

// AddFlags registers the options on f and binds them to the environment.
func (o *Options) AddFlags(f *pflag.FlagSet) error {
	f.StringVar(&o.BaseURL, flagBaseURL, "", "Root URL of the user-management API.")
	f.StringVar(&o.FixturesFile, flagFixtures, "", "YAML file overriding the embedded fixtures.")
	f.DurationVar(&o.Timeout, flagTimeout, 30*time.Second, "Per request timeout.")
	f.Float64Var(&o.RateLimit, flagRateLimit, 0, "Maximum requests per second, 0 is unlimited.")
	f.IntVar(&o.RateBurst, flagRateBurst, 1, "Requests allowed in a burst when rate limited.")
	f.BoolVar(&o.ValidateResponses, flagValidateResponses, true, "Check successful responses against the API schema.")
	f.BoolVar(&o.LogRequests, flagLogRequests, false, "Log every request.")
	f.BoolVar(&o.LogResponses, flagLogResponses, false, "Log every response body.")
	f.StringVar(&o.Format, flagFormat, "console", "Report format, console or junit.")
	f.StringVarP(&o.Output, flagOutput, "o", "", "Write the report to a file rather than stdout.")
	f.BoolVar(&o.NoColor, flagNoColor, false, "Disable coloured output.")
	f.BoolVarP(&o.Verbose, flagVerbose, "v", false, "Report more detail.")
	f.BoolVar(&o.Bail, flagBail, false, "Stop at the first failure.")
	f.StringVar(&o.Filter, flagFilter, "", "Only run cases whose name matches this glob.")
	f.StringVar(&o.Listen, flagListen, "127.0.0.1:8080", "Address the fake service listens on.")

	logging := flag.NewFlagSet("logging", flag.ContinueOnError)
	o.Logging.BindFlags(logging)
	f.AddGoFlagSet(logging)

	o.viper = viper.New()
	o.viper.SetEnvPrefix(EnvPrefix)
	o.viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	o.viper.AutomaticEnv()

	if err := o.viper.BindPFlags(f); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	return nil
}

// Complete resolves every option from flags, then the environment, then
// defaults.
func (o *Options) Complete() error {
	if o.viper == nil {
		return fmt.Errorf("%w: flags were not added", ErrInvalidOptions)
	}

	v := o.viper

	o.BaseURL = v.GetString(flagBaseURL)
	o.FixturesFile = v.GetString(flagFixtures)
	o.Timeout = v.GetDuration(flagTimeout)
	o.RateLimit = v.GetFloat64(flagRateLimit)
	o.RateBurst = v.GetInt(flagRateBurst)
	o.ValidateResponses = v.GetBool(flagValidateResponses)
	o.LogRequests = v.GetBool(flagLogRequests)
	o.LogResponses = v.GetBool(flagLogResponses)
	o.Format = v.GetString(flagFormat)
	o.Output = v.GetString(flagOutput)
	o.NoColor = v.GetBool(flagNoColor)
	o.Verbose = v.GetBool(flagVerbose)
	o.Bail = v.GetBool(flagBail)
	o.Filter = v.GetString(flagFilter)
	o.Listen = v.GetString(flagListen)

	return nil
}

// ValidateRun checks the options needed to run the scenario.
func (o *Options) ValidateRun() error {
	if o.BaseURL == "" {
		return fmt.Errorf("%w: --%s or %s_BASE_URL is required", ErrInvalidOptions, flagBaseURL, EnvPrefix)
	}

	if o.Timeout <= 0 {
		return fmt.Errorf("%w: --%s must be positive", ErrInvalidOptions, flagTimeout)
	}

	if o.RateLimit < 0 {
		return fmt.Errorf("%w: --%s must not be negative", ErrInvalidOptions, flagRateLimit)
	}

	return nil
}

// SetupLogging installs the global logger.
func (o *Options) SetupLogging() {
	log.SetLogger(zap.New(zap.UseFlagOptions(&o.Logging)))
}
