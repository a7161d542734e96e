// Package reader orchestrates namespace extraction: file discovery,
// foreign-module pre-registration, per-file analysis with fault
// isolation, and cross-file merging. ReadNamespaces is the public
// entry point of the analyzer.
package reader

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/lread/cljdoc-analyzer/internal/analysis"
	"github.com/lread/cljdoc-analyzer/internal/clj"
	"github.com/lread/cljdoc-analyzer/internal/deps"
	"github.com/lread/cljdoc-analyzer/internal/discover"
	"github.com/lread/cljdoc-analyzer/internal/metadata"
	"github.com/lread/cljdoc-analyzer/internal/publics"
)

// ExceptionHandler decides a failing file's contribution: a substitute
// namespace record, or nil for no contribution. A single file's
// failure never aborts the remaining files.
type ExceptionHandler func(err error, file string) *metadata.NamespaceRecord

// Options configures one ReadNamespaces run.
type Options struct {
	// Analyzer performs per-file semantic analysis. Its placeholder
	// registry is shared mutable state for the run, so each run must
	// use a fresh instance. Defaults to a StaticAnalyzer over the
	// root being read.
	Analyzer analysis.Analyzer

	// ExceptionHandler handles per-file analysis failures. Defaults
	// to logging the failure and contributing nothing.
	ExceptionHandler ExceptionHandler

	// Progress receives extraction progress callbacks.
	Progress ProgressReporter

	// IgnorePatterns are glob patterns (matched against root-relative
	// slash paths) excluded from discovery.
	IgnorePatterns []string
}

// ReadNamespaces extracts documentation metadata for every namespace
// under root. Discovery and dependency-scan failures are fatal;
// per-file analysis failures are routed to the exception handler and
// the run continues.
//
// Processing is strictly sequential: the analyzer's placeholder
// registry is shared mutable state and must not see overlapping
// analyses.
func ReadNamespaces(root string, opts Options) ([]metadata.NamespaceRecord, error) {
	// Path normalization compares analyzer-reported paths against the
	// root, so a relative root must be resolved before anything sees it.
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root %q: %w", root, err)
	}
	root = absRoot

	if opts.Analyzer == nil {
		opts.Analyzer = analysis.NewStaticAnalyzer(root)
	}
	if opts.ExceptionHandler == nil {
		opts.ExceptionHandler = func(err error, file string) *metadata.NamespaceRecord {
			log.Warn("skipping file after analysis failure", "file", file, "err", err)
			return nil
		}
	}
	if opts.Progress == nil {
		opts.Progress = NoOpProgressReporter{}
	}

	disc, err := discover.New(opts.IgnorePatterns)
	if err != nil {
		return nil, fmt.Errorf("compiling ignore patterns: %w", err)
	}
	files, err := disc.Files(root)
	if err != nil {
		return nil, fmt.Errorf("discovering files: %w", err)
	}
	opts.Progress.OnDiscoveryComplete(len(files))

	foreign, err := deps.ScanForeignModules(root, files)
	if err != nil {
		return nil, err
	}
	for _, name := range foreign {
		if err := opts.Analyzer.RegisterPlaceholder(name); err != nil {
			return nil, fmt.Errorf("registering placeholder %q: %w", name, err)
		}
	}

	opts.Progress.OnFileProcessingStart(len(files))
	var entries []nsEntry
	for _, file := range files {
		rec, err := readFile(root, file, opts.Analyzer)
		if err != nil {
			rec = opts.ExceptionHandler(err, file)
		}
		if rec != nil {
			entries = append(entries, nsEntry{name: rec.Name, record: *rec})
		}
		opts.Progress.OnFileProcessed(file)
	}

	merged := Merge(entries)
	opts.Progress.OnComplete(len(merged))
	return merged, nil
}

// readFile produces the namespace record for one file, or the error
// the exception handler should see.
func readFile(root, file string, analyzer analysis.Analyzer) (*metadata.NamespaceRecord, error) {
	decl, err := clj.ReadNSDecl(joinRoot(root, file))
	if err != nil {
		return nil, err
	}

	state, err := analyzer.Analyze(file)
	if err != nil {
		return nil, err
	}

	var kept []analysis.RawDef
	for _, def := range state.Defs {
		if def.Anonymous {
			continue
		}
		if excludeProtocolMethod(def, root, file) {
			continue
		}
		kept = append(kept, def)
	}

	rec := &metadata.NamespaceRecord{
		Name:       decl.Name,
		Doc:        publics.Dedent(state.Meta.Doc),
		Author:     state.Meta.Author,
		Added:      state.Meta.Added,
		Deprecated: state.Meta.Deprecated,
		NoDoc:      state.Meta.NoDoc,
		SkipWiki:   state.Meta.SkipWiki,
		Publics:    []metadata.DefinitionRecord{},
	}
	for _, def := range kept {
		// Grouping sees the file's full definition set, including the
		// method defs excluded above.
		rec.Publics = append(rec.Publics, publics.Project(def, state.Defs, root))
	}
	return rec, nil
}

// excludeProtocolMethod applies the unreferenced-protocol exclusion
// rule: a protocol-associated definition is dropped only when its own
// declared file, root-normalized, is the file being read, because it
// is already represented via the owning protocol's members. A definition
// declared in another file is a re-export and stays a public.
func excludeProtocolMethod(def analysis.RawDef, root, file string) bool {
	if def.Protocol == "" {
		return false
	}
	return publics.RelativePath(def.File, root) == file
}
