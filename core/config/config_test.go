package config

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v2"

	"github.com/strictcheck/strictcheck/core/checker"
)

func TestBuiltinConfig(t *testing.T) {
	rawConfig := make(map[string]interface{})
	assert.Nil(t, yaml.Unmarshal(defaultConfigData, &rawConfig))

	knownFields := make(map[string]bool)
	rt := reflect.TypeOf(Configuration{})
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		assert.NotEmpty(t, jsonTag)
		jsonField := strings.Split(jsonTag, ",")[0]
		knownFields[jsonField] = true

		if _, ok := rawConfig[jsonField]; !ok {
			assert.False(t, true, "default config missing field: %q", jsonField)
		}
	}

	for k := range rawConfig {
		_, ok := knownFields[k]
		assert.True(t, ok, "default config contains invalid field: %q", k)
	}
}

func TestDefaultConfig(t *testing.T) {
	// Will panic() on load failure because it should never happen at runtime.
	cfg := defaultConfig()
	assert.NotNil(t, cfg)

	assert.Nil(t, cfg.Validate())
	assert.Equal(t, "mypy", cfg.Checker)
	assert.Equal(t, checker.DefaultStrictFlags, cfg.StrictFlags)
	assert.Empty(t, cfg.RunLog)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(c *Configuration)
		wantErr string
	}{
		{
			name:    "missing checker",
			mutate:  func(c *Configuration) { c.Checker = "" },
			wantErr: "checker",
		},
		{
			name:    "bad color",
			mutate:  func(c *Configuration) { c.Color = "sometimes" },
			wantErr: "color",
		},
		{
			name:    "negative debounce",
			mutate:  func(c *Configuration) { c.Watch.DebounceMs = -1 },
			wantErr: "debounce_ms",
		},
		{
			name:    "no include patterns",
			mutate:  func(c *Configuration) { c.Watch.Include = nil },
			wantErr: "include",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)

			err := cfg.Validate()
			if assert.NotNil(t, err) {
				assert.Contains(t, err.Error(), tc.wantErr)
			}
		})
	}
}

func TestCheckerCommand(t *testing.T) {
	cfg := defaultConfig()
	cfg.ExtraArgs = `--cache-dir ".mypy cache"`

	cmd, err := cfg.CheckerCommand()
	assert.Nil(t, err)
	assert.Equal(t, "mypy", cmd.Checker)
	assert.Equal(t, checker.DefaultStrictFlags, cmd.StrictFlags)
	assert.Equal(t, []string{"--cache-dir", ".mypy cache"}, cmd.ExtraArgs)
}

func TestCheckerCommandEmptyExtraArgs(t *testing.T) {
	cmd, err := defaultConfig().CheckerCommand()
	assert.Nil(t, err)
	assert.Empty(t, cmd.ExtraArgs)
}

func TestCheckerCommandBadQuoting(t *testing.T) {
	cfg := defaultConfig()
	cfg.ExtraArgs = `--flag "unterminated`

	_, err := cfg.CheckerCommand()
	assert.NotNil(t, err)
}
