// Package analysis defines the contract between the extraction core
// and the semantic analyzer, plus a built-in static analyzer that
// reads top-level forms without loading code.
package analysis

import "github.com/lread/cljdoc-analyzer/internal/clj"

// MultiFnTag is the type tag the analyzer reports for multimethods.
const MultiFnTag = "clojure.lang.MultiFn"

// Analyzer produces per-file analysis state. Implementations hold the
// placeholder registry for one run; a fresh instance must be used per
// run so independent runs never observe each other's placeholders.
type Analyzer interface {
	// RegisterPlaceholder makes a foreign module name resolvable for
	// all subsequent analyses in this run. Idempotent.
	RegisterPlaceholder(name string) error

	// Analyze performs full analysis of one file (root-relative path)
	// and returns its symbol-level state.
	Analyze(file string) (*State, error)
}

// State is the analysis result for one file.
type State struct {
	Namespace string
	Meta      NamespaceMeta
	Defs      []RawDef
}

// NamespaceMeta is documentation metadata declared on the namespace.
type NamespaceMeta struct {
	Doc        string
	Author     string
	Added      string
	Deprecated string
	NoDoc      bool
	SkipWiki   bool
}

// RawDef is one definition as reported by the analyzer, before
// classification and projection.
//
// File is where the analyzer says the underlying var was defined. For
// re-exported bindings it can differ from the file being analyzed.
// Protocol names the (possibly qualified) protocol symbol a method
// definition belongs to; empty for non-method definitions.
type RawDef struct {
	Name           string
	File           string
	Line           int
	Macro          bool
	ProtocolSymbol bool
	TypeTag        string
	Protocol       string
	Dynamic        bool
	Arglists       clj.Value
	Doc            string
	Added          string
	Deprecated     string
	NoDoc          bool
	SkipWiki       bool
	Anonymous      bool
}
