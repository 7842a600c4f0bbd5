// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	// DefaultConfigFile is read from the working directory if it exists and
	// no --config is given.
	DefaultConfigFile = "quotegen.yaml"

	// EnvPrefix is the prefix of environment variables that configure the
	// generator. QUOTEGEN_PACKAGE sets package, and so on.
	EnvPrefix = "QUOTEGEN_"
)

// Config is the configuration for a run of quotegen.
type Config struct {
	// Default package for template files that don't name one. Defaults to
	// $GOPACKAGE, as set by go generate.
	Package string `koanf:"package"`

	// Maximum number of files to generate concurrently.
	Jobs int `koanf:"jobs"`

	// Whether to check that generated files are up to date instead of
	// writing them.
	Check bool `koanf:"check"`

	Verbose bool `koanf:"verbose"`

	// When to color diagnostics: auto, always or never.
	Color string `koanf:"color"`

	// Template files or glob patterns to use when none are given on the
	// command line.
	Files []string `koanf:"files"`
}

// LoadConfig loads configuration. Later sources override earlier ones:
// defaults, then the config file, then the environment, then flags that were
// set explicitly.
func LoadConfig(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]any{
		"package": os.Getenv("GOPACKAGE"),
		"jobs":    runtime.GOMAXPROCS(0),
		"check":   false,
		"verbose": false,
		"color":   "auto",
		"files":   []string{"**/*.go.yaml"},
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	cfg := new(Config)
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	switch c.Color {
	case "auto", "always", "never":
		return nil
	default:
		return fmt.Errorf("color must be one of auto, always or never, got %q", c.Color)
	}
}
