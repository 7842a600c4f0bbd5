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
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bufbuild/goquote/internal/gen"
	"github.com/bufbuild/goquote/report"
)

// errFailed is returned after at least one file failed; the failures
// themselves have already been printed.
var errFailed = errors.New("quotegen: generation failed")

// NewRootCmd creates the quotegen command.
func NewRootCmd() *cobra.Command {
	var cfgFile string
	cmd := &cobra.Command{
		Use:   "quotegen [file or pattern]...",
		Short: "Generate quote builders from .go.yaml templates",
		Long: `quotegen compiles each template in a .go.yaml file into a Go function
returning a quote.Func, and writes them to the file of the same name without
the .yaml suffix.

Arguments may be files or doublestar glob patterns, such as **/*.go.yaml.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			if len(args) == 0 {
				args = cfg.Files
			}
			return run(cmd.ErrOrStderr(), cfg, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./"+DefaultConfigFile+")")
	flags.StringP("package", "p", "", "package name for templates that don't specify one")
	flags.IntP("jobs", "j", 0, "maximum number of files to generate at once")
	flags.Bool("check", false, "fail if generated files are out of date instead of writing them")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	flags.String("color", "", "when to color diagnostics: auto, always or never")
	return cmd
}

func run(stderr io.Writer, cfg *Config, patterns []string) error {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	paths, err := expand(patterns)
	if err != nil {
		return err
	}
	logger.Debug("found template files", "count", len(paths), "jobs", cfg.Jobs)

	generator := &gen.Generator{
		Package: cfg.Package,
		Check:   cfg.Check,
		Logger:  logger,
	}

	errs := make([]error, len(paths))
	var group errgroup.Group
	group.SetLimit(cfg.Jobs)
	for i, path := range paths {
		group.Go(func() error {
			errs[i] = generator.File(path)
			return nil
		})
	}
	_ = group.Wait()

	colorize := cfg.Color == "always" || (cfg.Color == "auto" && !color.NoColor)
	failed := false
	for i, err := range errs {
		if err == nil {
			continue
		}
		failed = true

		var diagnostics *report.AsError
		if errors.As(err, &diagnostics) {
			_ = report.Renderer{Colorize: colorize}.Render(stderr, diagnostics.Report)
			continue
		}

		prefix := color.New(color.FgRed, color.Bold)
		if colorize {
			prefix.EnableColor()
		} else {
			prefix.DisableColor()
		}
		fmt.Fprintf(stderr, "%s %s: %v\n", prefix.Sprint("error:"), paths[i], err)
	}

	if failed {
		return errFailed
	}
	return nil
}

// expand resolves files and glob patterns into a sorted list of unique
// paths.
func expand(patterns []string) ([]string, error) {
	var paths []string
	for _, pattern := range patterns {
		if !doublestar.ValidatePathPattern(pattern) {
			return nil, fmt.Errorf("invalid pattern %q", pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 && !strings.ContainsAny(pattern, "*?[{") {
			// Let the generator report the missing file.
			matches = []string{pattern}
		}
		paths = append(paths, matches...)
	}

	for i, path := range paths {
		paths[i] = filepath.Clean(path)
	}
	slices.Sort(paths)
	return slices.Compact(paths), nil
}
