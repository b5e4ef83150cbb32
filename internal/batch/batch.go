// Package batch outlines many houlang files at once. It expands doublestar
// patterns into file paths and runs the outline pipeline over them with
// bounded concurrency.
package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.lsp.dev/protocol"
	"golang.org/x/sync/errgroup"
)

// Outliner produces the week symbols of a file on disk.
type Outliner interface {
	OutlineFile(ctx context.Context, path string) ([]protocol.DocumentSymbol, error)
}

// Result is the outline of one file. Err is set when the file could not be
// read, parsed or decoded; Symbols is nil in that case.
type Result struct {
	Path    string
	Symbols []protocol.DocumentSymbol
	Err     error
}

// Expand resolves patterns relative to root. A pattern without glob
// metacharacters is kept as a path even if it does not exist, so the caller
// sees the read error. Matches of one pattern are sorted; paths already
// produced by an earlier pattern are skipped.
func Expand(root string, patterns []string) ([]string, error) {
	var (
		out  []string
		seen = make(map[string]bool)
	)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, pattern := range patterns {
		full := pattern
		if !filepath.IsAbs(full) && root != "" {
			full = filepath.Join(root, pattern)
		}

		if !hasMeta(pattern) {
			add(filepath.Clean(full))
			continue
		}

		matches, err := doublestar.FilepathGlob(full, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", pattern, err)
		}
		slices.Sort(matches)
		for _, m := range matches {
			add(m)
		}
	}
	return out, nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, `*?[{\`)
}

// OutlineAll outlines paths with at most concurrency files in flight. A
// value below one means GOMAXPROCS. Results are in the order of paths. A
// failing file does not stop the others; only cancellation of ctx does, and
// then the unstarted files carry ctx's error.
func OutlineAll(ctx context.Context, o Outliner, paths []string, concurrency int) []Result {
	if concurrency < 1 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = Result{Path: path, Err: err}
				return nil
			}
			symbols, err := o.OutlineFile(gctx, path)
			results[i] = Result{Path: path, Symbols: symbols, Err: err}
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// Failed counts the results that carry an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
