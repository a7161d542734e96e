// Package publics turns raw analyzer definitions into classified,
// normalized definition records: type classification, protocol-member
// grouping, docstring dedenting, arglist unwrapping, and source-root
// path normalization.
package publics

import (
	"path/filepath"
	"strings"

	"github.com/lread/cljdoc-analyzer/internal/analysis"
	"github.com/lread/cljdoc-analyzer/internal/clj"
	"github.com/lread/cljdoc-analyzer/internal/metadata"
)

// Classify determines a definition's type. Order is significant: a
// macro flag wins over a protocol flag, which wins over the
// multimethod type tag; everything else is a var.
func Classify(def analysis.RawDef) metadata.DefType {
	switch {
	case def.Macro:
		return metadata.TypeMacro
	case def.ProtocolSymbol:
		return metadata.TypeProtocol
	case def.TypeTag == analysis.MultiFnTag:
		return metadata.TypeMultimethod
	default:
		return metadata.TypeVar
	}
}

// ProtocolMethods returns, in discovery order, every definition in all
// whose protocol association matches proto by unqualified name.
func ProtocolMethods(proto analysis.RawDef, all []analysis.RawDef) []analysis.RawDef {
	protoName := Unqualified(proto.Name)
	var methods []analysis.RawDef
	for _, def := range all {
		if def.Protocol != "" && Unqualified(def.Protocol) == protoName {
			methods = append(methods, def)
		}
	}
	return methods
}

// Project builds the output record for one definition. all is the full
// definition set of the same file, used for protocol-member grouping.
func Project(def analysis.RawDef, all []analysis.RawDef, sourceRoot string) metadata.DefinitionRecord {
	rec := metadata.DefinitionRecord{
		Name:       Unqualified(def.Name),
		File:       RelativePath(def.File, sourceRoot),
		Line:       def.Line,
		Arglists:   renderArglists(unwrapQuote(def.Arglists)),
		Doc:        Dedent(def.Doc),
		Type:       Classify(def),
		Dynamic:    def.Dynamic,
		Added:      def.Added,
		Deprecated: def.Deprecated,
		NoDoc:      def.NoDoc,
		SkipWiki:   def.SkipWiki,
	}
	if rec.Type == metadata.TypeProtocol {
		for _, method := range ProtocolMethods(def, all) {
			member := Project(method, all, sourceRoot)
			member.File = ""
			member.Line = 0
			rec.Members = append(rec.Members, member)
		}
	}
	return rec
}

// Unqualified strips any namespace qualifier from a symbol name.
func Unqualified(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 && i+1 < len(name) {
		return name[i+1:]
	}
	return name
}

// RelativePath rewrites an analyzer-reported file path to be relative
// to sourceRoot. Both are resolved to absolute paths first, so a
// relative root strips a relative path under it. Paths outside the
// root are returned slash-normalized.
func RelativePath(path, sourceRoot string) string {
	if path == "" || sourceRoot == "" {
		return filepath.ToSlash(path)
	}
	absRoot, errRoot := filepath.Abs(sourceRoot)
	absPath, errPath := filepath.Abs(path)
	if errRoot != nil || errPath != nil {
		return filepath.ToSlash(path)
	}
	prefix := filepath.ToSlash(absRoot) + "/"
	if slashed := filepath.ToSlash(absPath); strings.HasPrefix(slashed, prefix) {
		return slashed[len(prefix):]
	}
	return filepath.ToSlash(path)
}

// Dedent removes the minimum common leading whitespace of a docstring.
// The minimum is measured across the non-blank lines after the first
// (the first line starts at the opening quote and carries no
// indentation of its own) and stripped from every line as available.
// Dedenting an already-dedented string is a no-op.
func Dedent(doc string) string {
	if doc == "" || !strings.Contains(doc, "\n") {
		return doc
	}
	lines := strings.Split(doc, "\n")
	min := -1
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if min < 0 || indent < min {
			min = indent
		}
	}
	if min <= 0 {
		return doc
	}
	for i, line := range lines {
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent > min {
			indent = min
		}
		lines[i] = line[indent:]
	}
	return strings.Join(lines, "\n")
}

// unwrapQuote unwraps a literal-quoting marker one level:
// (quote ([x] [x y])) becomes ([x] [x y]).
func unwrapQuote(v clj.Value) clj.Value {
	list, ok := clj.Unmeta(v).(clj.List)
	if !ok || len(list) != 2 {
		return v
	}
	if head, isSym := clj.Unmeta(list[0]).(clj.Symbol); isSym && head == "quote" {
		return list[1]
	}
	return v
}

// renderArglists converts an arglists form, a sequence of parameter
// vectors, into printable parameter names per arity.
func renderArglists(v clj.Value) [][]string {
	if v == nil {
		return nil
	}
	arities, ok := asSeq(clj.Unmeta(v))
	if !ok {
		return nil
	}
	var out [][]string
	for _, arity := range arities {
		params, ok := asSeq(clj.Unmeta(arity))
		if !ok {
			continue
		}
		rendered := make([]string, len(params))
		for i, p := range params {
			rendered[i] = clj.Print(p)
		}
		out = append(out, rendered)
	}
	return out
}

func asSeq(v clj.Value) ([]clj.Value, bool) {
	switch x := v.(type) {
	case clj.List:
		return []clj.Value(x), true
	case clj.Vector:
		return []clj.Value(x), true
	}
	return nil, false
}
