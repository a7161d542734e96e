package analysis

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lread/cljdoc-analyzer/internal/clj"
)

// StaticAnalyzer analyzes files by reading their top-level forms. It
// recognizes the def family without macroexpansion, which covers
// hand-written namespaces; analyzer output produced by def-generating
// macros is out of its reach.
//
// String-valued requires must be placeholder-registered before a file
// using them can be analyzed; symbol-valued requires name in-tree
// namespaces and need no registration.
type StaticAnalyzer struct {
	root         string
	placeholders map[string]struct{}
}

// NewStaticAnalyzer creates an analyzer for files under root with an
// empty placeholder registry.
func NewStaticAnalyzer(root string) *StaticAnalyzer {
	return &StaticAnalyzer{
		root:         root,
		placeholders: make(map[string]struct{}),
	}
}

// RegisterPlaceholder records a foreign module name as resolvable.
func (a *StaticAnalyzer) RegisterPlaceholder(name string) error {
	a.placeholders[name] = struct{}{}
	return nil
}

// Analyze reads one root-relative file and extracts its namespace
// metadata and raw definitions.
func (a *StaticAnalyzer) Analyze(file string) (*State, error) {
	absPath := filepath.Join(a.root, filepath.FromSlash(file))
	src, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("analyzing %s: %w", file, err)
	}

	decl, err := clj.ParseNSDecl(src)
	if err != nil {
		return nil, fmt.Errorf("analyzing %s: %w", file, err)
	}
	for _, req := range decl.Requires {
		if req.Foreign {
			if _, ok := a.placeholders[req.Name]; !ok {
				return nil, fmt.Errorf("analyzing %s: unresolvable foreign module %q (no placeholder registered)", file, req.Name)
			}
		}
	}

	forms, err := clj.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("analyzing %s: %w", file, err)
	}

	state := &State{
		Namespace: decl.Name,
		Meta: NamespaceMeta{
			Doc:        decl.Doc,
			Author:     decl.Author,
			Added:      decl.Added,
			Deprecated: decl.Deprecated,
			NoDoc:      decl.NoDoc,
			SkipWiki:   decl.SkipWiki,
		},
	}

	for _, form := range forms {
		list, ok := clj.Unmeta(form.Value).(clj.List)
		if !ok || len(list) < 2 {
			continue
		}
		head, ok := clj.Unmeta(list[0]).(clj.Symbol)
		if !ok {
			continue
		}
		switch head {
		case "def", "defonce":
			a.collectDef(state, decl.Name, absPath, form.Line, list, defKindVar)
		case "defn":
			a.collectDef(state, decl.Name, absPath, form.Line, list, defKindFn)
		case "defmacro":
			a.collectDef(state, decl.Name, absPath, form.Line, list, defKindMacro)
		case "defmulti":
			a.collectDef(state, decl.Name, absPath, form.Line, list, defKindMulti)
		case "defprotocol":
			a.collectProtocol(state, decl.Name, absPath, form.Line, list)
		}
	}
	return state, nil
}

type defKind int

const (
	defKindVar defKind = iota
	defKindFn
	defKindMacro
	defKindMulti
)

func (a *StaticAnalyzer) collectDef(state *State, ns, absPath string, line int, form clj.List, kind defKind) {
	nameSym, ok := clj.Unmeta(form[1]).(clj.Symbol)
	if !ok {
		return
	}
	meta := clj.MetaOf(form[1])
	def := RawDef{
		Name: string(nameSym),
		File: absPath,
		Line: line,
	}

	rest := form[2:]
	if len(rest) > 0 {
		if doc, isStr := clj.Unmeta(rest[0]).(clj.Str); isStr && docstringPosition(kind, rest) {
			def.Doc = string(doc)
			rest = rest[1:]
		}
	}
	var attrs clj.Map
	if kind != defKindVar && len(rest) > 0 {
		if m, isMap := clj.Unmeta(rest[0]).(clj.Map); isMap {
			attrs = m
			rest = rest[1:]
		}
	}
	applyDefMeta(&def, attrs)
	applyDefMeta(&def, meta)
	if isPrivate(meta) || isPrivate(attrs) {
		return
	}

	switch kind {
	case defKindMacro:
		def.Macro = true
	case defKindMulti:
		def.TypeTag = MultiFnTag
	}
	if kind == defKindFn || kind == defKindMacro {
		if def.Arglists == nil {
			def.Arglists = readArglists(rest)
		}
	}
	state.Defs = append(state.Defs, def)
}

// collectProtocol emits the protocol definition itself plus one raw
// definition per method signature, each carrying the qualified
// protocol symbol.
func (a *StaticAnalyzer) collectProtocol(state *State, ns, absPath string, line int, form clj.List) {
	nameSym, ok := clj.Unmeta(form[1]).(clj.Symbol)
	if !ok {
		return
	}
	meta := clj.MetaOf(form[1])
	proto := RawDef{
		Name:           string(nameSym),
		File:           absPath,
		Line:           line,
		ProtocolSymbol: true,
	}
	rest := form[2:]
	if len(rest) > 0 {
		if doc, isStr := clj.Unmeta(rest[0]).(clj.Str); isStr {
			proto.Doc = string(doc)
			rest = rest[1:]
		}
	}
	applyDefMeta(&proto, meta)
	if isPrivate(meta) {
		return
	}
	state.Defs = append(state.Defs, proto)

	qualified := ns + "/" + string(nameSym)
	for _, sigForm := range rest {
		sig, isList := clj.Unmeta(sigForm).(clj.List)
		if !isList || len(sig) < 2 {
			continue
		}
		methodSym, isSym := clj.Unmeta(sig[0]).(clj.Symbol)
		if !isSym {
			continue
		}
		method := RawDef{
			Name:     string(methodSym),
			File:     absPath,
			Line:     line,
			Protocol: qualified,
		}
		var arglists clj.List
		for _, part := range sig[1:] {
			switch p := clj.Unmeta(part).(type) {
			case clj.Vector:
				arglists = append(arglists, p)
			case clj.Str:
				method.Doc = string(p)
			}
		}
		if len(arglists) > 0 {
			method.Arglists = arglists
		}
		state.Defs = append(state.Defs, method)
	}
}

// docstringPosition reports whether a leading string in rest is a
// docstring rather than the def's value. For plain defs a bare
// `(def x "value")` has no docstring; the string must be followed by
// another form.
func docstringPosition(kind defKind, rest []clj.Value) bool {
	if kind == defKindVar {
		return len(rest) > 1
	}
	return true
}

// readArglists collects parameter vectors from a defn/defmacro body:
// either one leading vector or the head vector of each arity clause.
func readArglists(rest []clj.Value) clj.Value {
	if len(rest) == 0 {
		return nil
	}
	if v, ok := clj.Unmeta(rest[0]).(clj.Vector); ok {
		return clj.List{v}
	}
	var arglists clj.List
	for _, part := range rest {
		clause, ok := clj.Unmeta(part).(clj.List)
		if !ok || len(clause) == 0 {
			continue
		}
		if v, ok := clj.Unmeta(clause[0]).(clj.Vector); ok {
			arglists = append(arglists, v)
		}
	}
	if len(arglists) == 0 {
		return nil
	}
	return arglists
}

func applyDefMeta(def *RawDef, m clj.Map) {
	if m == nil {
		return
	}
	if v, ok := clj.MapGet(m, "doc"); ok && def.Doc == "" {
		if s, isStr := clj.Unmeta(v).(clj.Str); isStr {
			def.Doc = string(s)
		}
	}
	if v, ok := clj.MapGet(m, "added"); ok && def.Added == "" {
		def.Added = metaString(v)
	}
	if v, ok := clj.MapGet(m, "deprecated"); ok && def.Deprecated == "" {
		def.Deprecated = metaString(v)
	}
	if v, ok := clj.MapGet(m, "dynamic"); ok {
		def.Dynamic = def.Dynamic || clj.Truthy(v)
	}
	if v, ok := clj.MapGet(m, "no-doc"); ok {
		def.NoDoc = def.NoDoc || clj.Truthy(v)
	}
	if v, ok := clj.MapGet(m, "skip-wiki"); ok {
		def.SkipWiki = def.SkipWiki || clj.Truthy(v)
	}
	if v, ok := clj.MapGet(m, "anonymous"); ok {
		def.Anonymous = def.Anonymous || clj.Truthy(v)
	}
	if v, ok := clj.MapGet(m, "arglists"); ok && def.Arglists == nil {
		// Attribute-map arglists are typically quote-wrapped; the
		// projection unwraps them.
		def.Arglists = v
	}
}

func isPrivate(m clj.Map) bool {
	if m == nil {
		return false
	}
	v, ok := clj.MapGet(m, "private")
	return ok && clj.Truthy(v)
}

func metaString(v clj.Value) string {
	if s, ok := clj.Unmeta(v).(clj.Str); ok {
		return string(s)
	}
	return clj.Print(v)
}
