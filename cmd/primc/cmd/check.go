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
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/primlang/primcompile"
	"github.com/primlang/primcompile/document"
	"github.com/primlang/primcompile/internal/ctxlog"
	"github.com/primlang/primcompile/reporter"
)

var (
	checkWatch bool
	checkShort bool
)

var checkCmd = &cobra.Command{
	Use:   "check [file ...]",
	Short: "Parse and validate Prim files",
	Long: `Check parses and validates the given Prim files and renders a
diagnostic for every problem it finds. It exits nonzero if any file had
errors.

With --watch, check stays running, watches the directories of the
matched files, and rechecks whenever a Prim file in them changes.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkWatch, "watch", false, "recheck files whenever they change")
	checkCmd.Flags().BoolVar(&checkShort, "short", false, "one diagnostic per line, without source windows")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	if !checkWatch {
		files, err := resolveFiles(args)
		if err != nil {
			return err
		}
		_, errs, _, err := compileFiles(cmd.Context(), cmd, files, diagnosticStyle(checkShort))
		if err != nil {
			return err
		}
		if errs > 0 {
			return errDiagnostics
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return watchAndCheck(ctx, cmd, args)
}

// diagnosticStyle picks the renderer style for the current run.
func diagnosticStyle(short bool) reporter.Style {
	switch {
	case short:
		return reporter.StyleSimple
	case useColor:
		return reporter.StyleColored
	default:
		return reporter.StyleMonochrome
	}
}

// sourceCache is a Resolver that remembers the content of every file it
// resolves, so that diagnostics can quote the offending source line.
type sourceCache struct {
	inner primcompile.Resolver

	mu   sync.Mutex
	srcs map[string][]byte
}

func newSourceCache() *sourceCache {
	return &sourceCache{
		inner: &primcompile.SourceResolver{ImportPaths: appConfig.ImportPaths},
		srcs:  make(map[string][]byte),
	}
}

func (c *sourceCache) FindFileByPath(path string) (primcompile.SearchResult, error) {
	res, err := c.inner.FindFileByPath(path)
	if err != nil {
		return res, err
	}
	data, err := io.ReadAll(res.Source)
	if closer, ok := res.Source.(io.Closer); ok {
		_ = closer.Close()
	}
	if err != nil {
		return primcompile.SearchResult{}, err
	}
	c.mu.Lock()
	c.srcs[path] = data
	c.mu.Unlock()
	return primcompile.SearchResult{Source: bytes.NewReader(data)}, nil
}

func (c *sourceCache) source(path string) []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.srcs[path]
}

// compileFiles compiles the files once, rendering diagnostics to the
// command's error stream as they arrive, and returns the compiled
// documents along with how many errors and warnings were reported. A
// non-nil error means the run itself failed, not that the files had
// problems.
func compileFiles(ctx context.Context, cmd *cobra.Command, files []string, style reporter.Style) (docs document.Documents, errs, warnings int, err error) {
	stderr := cmd.ErrOrStderr()
	ren := reporter.NewRenderer(style)
	cache := newSourceCache()

	// The compiler compiles files in parallel against one shared
	// reporter, and warnings are dispatched outside the handler's lock,
	// so the counters and the writes to stderr need a lock of their own.
	var mu sync.Mutex
	rep := reporter.NewReporter(
		func(errWithPos reporter.ErrorWithPos) error {
			mu.Lock()
			defer mu.Unlock()
			errs++
			_ = ren.Render(stderr, reporter.SeverityError, errWithPos, cache.source(errWithPos.GetPosition().Filename))
			return nil
		},
		func(errWithPos reporter.ErrorWithPos) {
			mu.Lock()
			defer mu.Unlock()
			warnings++
			_ = ren.Render(stderr, reporter.SeverityWarning, errWithPos, cache.source(errWithPos.GetPosition().Filename))
		},
	)

	compiler := primcompile.Compiler{
		Resolver:       cache,
		MaxParallelism: appConfig.MaxParallelism,
		Reporter:       rep,
	}
	docs, err = compiler.Compile(ctx, files...)
	if err != nil && !errors.Is(err, reporter.ErrInvalidSource) {
		return nil, errs, warnings, err
	}
	_ = ren.RenderSummary(stderr, errs, warnings)

	properties := 0
	for _, doc := range docs {
		properties += doc.Len()
	}
	ctxlog.FromContext(ctx).Info("checked",
		"files", len(files), "properties", properties, "errors", errs, "warnings", warnings)
	return docs, errs, warnings, nil
}

// debounceDelay filters out the bursts of events editors emit when they
// save a file.
const debounceDelay = 500 * time.Millisecond

func watchAndCheck(ctx context.Context, cmd *cobra.Command, args []string) error {
	logger := ctxlog.FromContext(ctx)
	stderr := cmd.ErrOrStderr()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	files, err := resolveFiles(args)
	if err != nil {
		return err
	}
	// Watching directories rather than files picks up Prim files that
	// are created, renamed, or replaced after the watch starts.
	dirs := make(map[string]bool)
	for _, file := range files {
		dirs[filepath.Dir(file)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		logger.Debug("watching", "dir", dir)
	}

	recheck := func() error {
		files, err := resolveFiles(args)
		if err != nil {
			// Transient states, such as every matched file being
			// deleted, should not end the watch.
			fmt.Fprintln(stderr, err)
			return nil
		}
		_, errs, warnings, err := compileFiles(ctx, cmd, files, diagnosticStyle(checkShort))
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		if errs == 0 && warnings == 0 {
			fmt.Fprintln(stderr, "ok")
		}
		return nil
	}

	if err := recheck(); err != nil {
		return err
	}

	debounce := make(map[string]time.Time)
	for {
		select {
		case <-ctx.Done():
			logger.Info("watch stopped")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Ext(event.Name) != ".prim" {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if last, ok := debounce[event.Name]; ok && time.Since(last) < debounceDelay {
				continue
			}
			debounce[event.Name] = time.Now()
			logger.Debug("file changed", "path", event.Name, "op", event.Op.String())
			fmt.Fprintf(stderr, "\n%s changed\n", event.Name)
			if err := recheck(); err != nil {
				return err
			}
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", "error", watchErr)
		}
	}
}
