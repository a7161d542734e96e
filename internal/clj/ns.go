package clj

import (
	"fmt"
	"os"
)

// Require is one required or used module from an ns declaration. A
// string-valued spec names a module supplied by an external package
// ecosystem rather than the analyzed source tree.
type Require struct {
	Name    string
	Foreign bool
}

// NSDecl is the parsed namespace declaration header of one file.
type NSDecl struct {
	Name       string
	Doc        string
	Author     string
	Added      string
	Deprecated string
	NoDoc      bool
	SkipWiki   bool
	Requires   []Require
	Line       int
}

// ReadNSDecl reads path and parses its ns declaration header. Only the
// declaration form is interpreted; the rest of the file is not read as
// forms.
func ReadNSDecl(path string) (*NSDecl, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	decl, err := ParseNSDecl(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return decl, nil
}

// ParseNSDecl locates the first top-level (ns ...) form in src and
// parses it.
func ParseNSDecl(src []byte) (*NSDecl, error) {
	r := &reader{src: src, line: 1}
	for {
		f, ok, err := r.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("no ns declaration found")
		}
		list, isList := Unmeta(f.Value).(List)
		if !isList || len(list) < 2 {
			continue
		}
		if head, isSym := Unmeta(list[0]).(Symbol); !isSym || head != "ns" {
			continue
		}
		return parseNSForm(list, f.Line)
	}
}

func parseNSForm(form List, line int) (*NSDecl, error) {
	nameSym, ok := Unmeta(form[1]).(Symbol)
	if !ok {
		return nil, fmt.Errorf("line %d: ns name is not a symbol", line)
	}
	decl := &NSDecl{Name: string(nameSym), Line: line}
	decl.applyMeta(MetaOf(form[1]))

	rest := form[2:]
	if len(rest) > 0 {
		if doc, isStr := Unmeta(rest[0]).(Str); isStr {
			decl.Doc = string(doc)
			rest = rest[1:]
		}
	}
	if len(rest) > 0 {
		if attrs, isMap := Unmeta(rest[0]).(Map); isMap {
			decl.applyMeta(attrs)
			rest = rest[1:]
		}
	}

	for _, ref := range rest {
		list, isList := Unmeta(ref).(List)
		if !isList || len(list) == 0 {
			continue
		}
		kw, isKw := Unmeta(list[0]).(Keyword)
		if !isKw || (kw != "require" && kw != "use") {
			continue
		}
		for _, spec := range list[1:] {
			if req, ok := parseRequireSpec(spec); ok {
				decl.Requires = append(decl.Requires, req)
			}
		}
	}
	return decl, nil
}

// parseRequireSpec extracts the module name from one require spec:
// a bare symbol or string, or a vector/list whose first element is one.
func parseRequireSpec(spec Value) (Require, bool) {
	v := Unmeta(spec)
	if seq, ok := asSeq(v); ok {
		if len(seq) == 0 {
			return Require{}, false
		}
		v = Unmeta(seq[0])
	}
	switch x := v.(type) {
	case Symbol:
		return Require{Name: string(x)}, true
	case Str:
		return Require{Name: string(x), Foreign: true}, true
	}
	return Require{}, false
}

func asSeq(v Value) ([]Value, bool) {
	switch x := v.(type) {
	case Vector:
		return []Value(x), true
	case List:
		return []Value(x), true
	}
	return nil, false
}

// applyMeta folds doc-relevant keys from a metadata or attribute map
// into the declaration. Later maps never overwrite earlier values.
func (d *NSDecl) applyMeta(m Map) {
	if v, ok := MapGet(m, "doc"); ok && d.Doc == "" {
		d.Doc = metaString(v)
	}
	if v, ok := MapGet(m, "author"); ok && d.Author == "" {
		d.Author = metaString(v)
	}
	if v, ok := MapGet(m, "added"); ok && d.Added == "" {
		d.Added = metaString(v)
	}
	if v, ok := MapGet(m, "deprecated"); ok && d.Deprecated == "" {
		d.Deprecated = metaString(v)
	}
	if v, ok := MapGet(m, "no-doc"); ok {
		d.NoDoc = d.NoDoc || Truthy(v)
	}
	if v, ok := MapGet(m, "skip-wiki"); ok {
		d.SkipWiki = d.SkipWiki || Truthy(v)
	}
}

// metaString renders a metadata value: strings as their contents,
// anything else in reader syntax (a bare `:deprecated true` prints as
// "true").
func metaString(v Value) string {
	if s, ok := Unmeta(v).(Str); ok {
		return string(s)
	}
	return Print(v)
}
