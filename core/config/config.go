// Package config loads and validates the wrapper's configuration.
package config

import (
	_ "embed"
	"reflect"
	"strings"
	"time"

	shlex "github.com/anmitsu/go-shlex"
	"github.com/go-playground/validator/v10"
	"sigs.k8s.io/yaml"

	"github.com/strictcheck/strictcheck/core/checker"
)

//go:embed default/config.yaml
var defaultConfigData []byte

// ConfigurationName is the config file looked up in the working
// directory when no explicit path is given.
const ConfigurationName = "strictcheck.yaml"

type Configuration struct {
	// Checker is the executable name or path of the type checker.
	Checker string `json:"checker" validate:"required"`

	// StrictFlags are always passed to the checker, first and in order.
	StrictFlags []string `json:"strict_flags"`

	// ExtraArgs is a shell-style string of arguments inserted between
	// the strict flags and the caller's arguments.
	ExtraArgs string `json:"extra_args"`

	// Color controls summary output coloring.
	Color string `json:"color" validate:"oneof=always auto never"`

	// RunLog is the path of the JSON-lines invocation log. Empty
	// disables invocation logging.
	RunLog string `json:"run_log"`

	Watch Watch `json:"watch"`
}

type Watch struct {
	// Include lists doublestar patterns of files that trigger a re-run.
	Include []string `json:"include" validate:"min=1"`

	// Ignore lists doublestar patterns of paths never watched.
	Ignore []string `json:"ignore"`

	// DebounceMs is the quiet window used to coalesce bursts of file
	// events into one run.
	DebounceMs int `json:"debounce_ms" validate:"gte=0"`

	// RunsPerMinute caps how often the checker is re-run.
	RunsPerMinute int `json:"runs_per_minute" validate:"gt=0"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// CheckerCommand builds the checker invocation described by the
// configuration.
func (c *Configuration) CheckerCommand() (*checker.Command, error) {
	extra, err := shlex.Split(c.ExtraArgs, true)
	if err != nil {
		return nil, err
	}

	return &checker.Command{
		Checker:     c.Checker,
		StrictFlags: c.StrictFlags,
		ExtraArgs:   extra,
	}, nil
}

// Debounce returns the watch debounce window.
func (c *Configuration) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMs) * time.Millisecond
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
