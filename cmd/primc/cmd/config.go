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

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// configName is the file primc looks for in the working directory and
// then each parent when --config is not given.
const configName = ".primc.yaml"

// config carries the settings of a .primc.yaml file. All fields are
// optional.
type config struct {
	// ImportPaths are directories searched, in order, for files that
	// are not found relative to the working directory.
	ImportPaths []string `yaml:"import_paths"`
	// Include is the set of glob patterns used when a command is run
	// without file arguments.
	Include []string `yaml:"include"`
	// MaxParallelism caps how many files are compiled concurrently.
	// Zero means one goroutine per CPU.
	MaxParallelism int `yaml:"max_parallelism"`
	// LogLevel is the default log level, overridden by --log-level.
	LogLevel string `yaml:"log_level"`
}

var appConfig config

func loadConfig() error {
	appConfig = config{}
	path := cfgFile
	if path == "" {
		var err error
		if path, err = findConfig(); err != nil || path == "" {
			return err
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading configuration: %w", err)
	}
	if err := yaml.Unmarshal(data, &appConfig); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	if appConfig.MaxParallelism < 0 {
		return fmt.Errorf("%s: max_parallelism must not be negative", path)
	}
	return nil
}

// findConfig walks from the working directory toward the root and
// returns the first .primc.yaml it finds, or "" if there is none.
func findConfig() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		path := filepath.Join(dir, configName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// resolveFiles expands command line arguments into the list of files to
// operate on. Arguments may be plain paths or glob patterns; "**"
// matches any number of directories. Without arguments the configured
// include patterns are used, defaulting to "**/*.prim". Patterns keep
// the order they were given, each one's matches are sorted, and
// duplicates are dropped. Order matters to commands that layer files,
// such as export --merge.
func resolveFiles(args []string) ([]string, error) {
	patterns := args
	if len(patterns) == 0 {
		patterns = appConfig.Include
	}
	if len(patterns) == 0 {
		patterns = []string{"**/*.prim"}
	}

	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}
	for _, pattern := range patterns {
		// Plain paths pass through unchecked so a misspelled file name
		// is reported by name rather than silently matching nothing.
		if !strings.ContainsAny(pattern, "*?[{") {
			add(pattern)
			continue
		}
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		slices.Sort(matches)
		for _, match := range matches {
			add(match)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files match %s", strings.Join(patterns, " "))
	}
	return files, nil
}
