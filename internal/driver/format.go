// Package driver orchestrates formatting over files and directories: it
// collects sources, runs lex/parse/format per file in parallel, consults the
// disk cache, and applies check/stdout/write-back modes.
package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync/atomic"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"silica/internal/diag"
	"silica/internal/format"
	"silica/internal/lexer"
	"silica/internal/observ"
	"silica/internal/parser"
	"silica/internal/source"
)

// FormatOptions configures a FormatPaths run.
type FormatOptions struct {
	// Check leaves files untouched; Changed reports whether a rewrite would
	// alter them.
	Check bool
	// Stdout returns formatted content in the results instead of rewriting.
	Stdout bool
	// Width is the layout column budget; 0 means format.DefaultWidth.
	Width uint32
	// MaxDiagnostics caps the per-file diagnostic bag; 0 means 256.
	MaxDiagnostics int
	// Jobs bounds formatting parallelism; 0 means GOMAXPROCS.
	Jobs int
	// Cache, when set, skips re-formatting files whose content and width
	// match a cached entry.
	Cache *DiskCache
	// Progress, when set, is called after each file completes. It may be
	// called from multiple goroutines.
	Progress func(res FormatResult, done, total int)
	// Timer, when set, records the collect/format/write phases of the run.
	Timer *observ.Timer
}

// FormatResult is the outcome for one file.
type FormatResult struct {
	Path      string
	Changed   bool
	Formatted []byte
	Err       error
	// Diags holds lexer/parser diagnostics when Err reports a parse
	// failure; FileSet resolves their spans.
	Diags   []diag.Diagnostic
	FileSet *source.FileSet
}

// FormatPaths formats the given files and directories (recursively
// collecting .si files) in parallel. Results come back in the sorted file
// order regardless of completion order.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	collectPhase := timerBegin(opts.Timer, "collect")
	files, err := ListSourceFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	timerEnd(opts.Timer, collectPhase, fmt.Sprintf("%d files", len(files)))
	if len(files) == 0 {
		return nil, errors.New("format: no source files found")
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	results := make([]FormatResult, len(files))
	var done atomic.Int64

	formatPhase := timerBegin(opts.Timer, "format")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = formatOneFile(path, opts)
			if opts.Progress != nil {
				opts.Progress(results[i], int(done.Add(1)), len(files))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	timerEnd(opts.Timer, formatPhase, fmt.Sprintf("%d jobs", jobs))

	if !opts.Check && !opts.Stdout {
		writePhase := timerBegin(opts.Timer, "write")
		written := 0
		for i := range results {
			res := &results[i]
			if res.Err != nil || !res.Changed {
				continue
			}
			if err := writeBack(res.Path, res.Formatted); err != nil {
				res.Err = err
				continue
			}
			written++
		}
		timerEnd(opts.Timer, writePhase, fmt.Sprintf("%d rewritten", written))
	}
	return results, nil
}

func timerBegin(t *observ.Timer, name string) int {
	if t == nil {
		return -1
	}
	return t.Begin(name)
}

func timerEnd(t *observ.Timer, idx int, note string) {
	if t != nil {
		t.End(idx, note)
	}
}

func formatOneFile(path string, opts FormatOptions) FormatResult {
	res := FormatResult{Path: path}

	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		res.Err = err
		return res
	}
	sf := fileSet.Get(id)

	width := opts.Width
	if width == 0 {
		width = format.DefaultWidth
	}

	if opts.Cache != nil {
		if formatted, ok := opts.Cache.Lookup(sf.Hash, width); ok {
			res.Formatted = formatted
			res.Changed = !bytes.Equal(sf.Content, formatted)
			return res
		}
	}

	formatted, diags, err := FormatSource(sf, width, opts.MaxDiagnostics)
	if err != nil {
		res.Err = err
		res.Diags = diags
		res.FileSet = fileSet
		return res
	}

	if opts.Cache != nil {
		// Cache misses are not fatal; formatting already succeeded.
		_ = opts.Cache.Store(sf.Hash, width, formatted)
	}

	res.Formatted = formatted
	res.Changed = !bytes.Equal(sf.Content, formatted)
	return res
}

// FormatSource formats one loaded file: tokenize, parse, render. Parse
// errors abort before formatting and come back in the diagnostics slice.
func FormatSource(sf *source.File, width uint32, maxDiagnostics int) ([]byte, []diag.Diagnostic, error) {
	if maxDiagnostics <= 0 {
		maxDiagnostics = 256
	}
	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}

	toks := lexer.Tokenize(sf, lexer.Options{Reporter: reporter})
	maxErrors, err := safecast.Conv[uint](bag.Cap())
	if err != nil {
		maxErrors = 0
	}
	mod := parser.ParseTokens(sf, toks, parser.Options{
		MaxErrors: maxErrors,
		Reporter:  reporter,
	})
	if bag.HasErrors() {
		bag.Sort()
		return nil, bag.Items(), errors.New("format: parse errors present")
	}

	out, err := format.AutoFormat(sf, mod, format.CommentsFromTokens(toks), width)
	if err != nil {
		return nil, nil, err
	}
	return []byte(out), nil, nil
}

func writeBack(path string, formatted []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	return os.WriteFile(path, formatted, mode.Perm())
}
