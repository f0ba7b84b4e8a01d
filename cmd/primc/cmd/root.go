// Copyright 2023-2026 The Prim Language Authors
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

// Package cmd implements the subcommands of primc.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/primlang/primcompile/internal/ctxlog"
)

// errDiagnostics marks a command failure whose details were already
// rendered for the user as diagnostics. Execute exits nonzero for it
// without printing anything further.
var errDiagnostics = errors.New("diagnostics were reported")

var (
	cfgFile   string
	logLevel  string
	logFormat string
	colorMode string

	// useColor is resolved from colorMode before any command runs.
	useColor bool
)

var rootCmd = &cobra.Command{
	Use:   "primc",
	Short: "Compiler and tools for Prim files",
	Long: `primc is the command line interface to the Prim compiler.

Prim is a small configuration language: each line of a file either sets
a property to a numeric value, as in "max_connections = 512", or
carries a "#" comment. primc parses such files, reports any problems in
them, and can reformat them, export their values as JSON, or show how
they tokenize and parse.

Commands that accept file arguments also accept glob patterns,
including "**" for recursive matches. With no arguments they fall back
to the include patterns of the configuration file, and then to
"**/*.prim".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		level := logLevel
		if level == "" {
			level = appConfig.LogLevel
		}
		logger, err := newLogger(level, logFormat, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		switch colorMode {
		case "always":
			useColor = true
		case "never":
			useColor = false
		case "", "auto":
			useColor = os.Getenv("NO_COLOR") == "" && os.Getenv("TERM") != "dumb"
		default:
			return fmt.Errorf("unknown color mode %q", colorMode)
		}
		cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))
		return nil
	},
}

// Execute runs the root command. Failures whose diagnostics were
// already rendered exit quietly; anything else is reported here.
func Execute() error {
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil && !errors.Is(err, errDiagnostics) {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "configuration file (default: nearest .primc.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error (default warn)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "colorize output: auto, always or never")
}

// newLogger builds the process logger from the level and format chosen
// on the command line. Logs go to standard error so they never mix with
// command output.
func newLogger(levelStr, formatStr string, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToLower(levelStr) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "", "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level %q", levelStr)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch strings.ToLower(formatStr) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", formatStr)
	}
	return slog.New(handler), nil
}
