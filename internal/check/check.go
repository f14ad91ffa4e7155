// Package check runs batch validation of Sieve scripts on disk. It backs
// the "check" CLI command: directory walking, parallel analysis and an
// optional persistent result cache.
package check

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"sievels/internal/analysis"
	"sievels/internal/diag"
	"sievels/internal/settings"
)

// Options configures a batch run.
type Options struct {
	Settings settings.Settings
	// Jobs caps parallel workers; 0 means GOMAXPROCS.
	Jobs int
	// Cache, when non-nil, skips re-analysis of unchanged files.
	Cache *DiskCache
}

// FileResult is the outcome for one script.
type FileResult struct {
	Path        string
	Diagnostics []diag.Diagnostic
	// FromCache marks results served from the disk cache.
	FromCache bool
}

// HasErrors reports whether any diagnostic in the result is an error.
func (r FileResult) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == diag.SevError {
			return true
		}
	}
	return false
}

// ListScripts returns every *.sieve file under dir, sorted for
// deterministic processing order.
func ListScripts(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".sieve") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Dir checks every script under dir. Results come back in path order.
func Dir(ctx context.Context, dir string, opts Options) ([]FileResult, error) {
	files, err := ListScripts(dir)
	if err != nil {
		return nil, err
	}
	return Files(ctx, files, opts)
}

// Files checks the given scripts in parallel. The result slice is indexed
// like files, so order is stable regardless of scheduling.
func Files(ctx context.Context, files []string, opts Options) ([]FileResult, error) {
	if len(files) == 0 {
		return nil, nil
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			key := cacheKey(content, opts.Settings)
			var payload cachePayload
			if hit, err := opts.Cache.Get(key, &payload); err == nil && hit {
				results[i] = FileResult{Path: path, Diagnostics: payload.Diagnostics, FromCache: true}
				return nil
			}

			diags := analysis.Analyze(string(content), opts.Settings)
			results[i] = FileResult{Path: path, Diagnostics: diags}

			if err := opts.Cache.Put(key, &cachePayload{
				Schema:      cacheSchemaVersion,
				Diagnostics: diags,
			}); err != nil {
				return fmt.Errorf("cache %s: %w", path, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
