// Package clj implements a minimal Clojure form reader. It covers
// exactly what namespace-header scanning and the static analyzer need:
// symbols, keywords, strings, numbers, collections, quoting, metadata
// markers, comments, and the reader discard. It performs no
// macroexpansion and no evaluation.
package clj

import (
	"fmt"
	"strings"
)

// Value is a Clojure form read from source.
type Value interface{ value() }

type (
	// Symbol is a bare identifier, possibly namespace-qualified.
	Symbol string
	// Keyword is a keyword without its leading colon.
	Keyword string
	// Str is a string literal.
	Str string
	// Num is a numeric literal, kept as source text.
	Num string
	// Char is a character literal, kept as its name (e.g. "newline").
	Char string
	// Bool is a boolean literal.
	Bool bool
	// Nil is the nil literal.
	Nil struct{}
	// List is a parenthesized form.
	List []Value
	// Vector is a bracketed form.
	Vector []Value
	// Set is a #{...} form.
	Set []Value
	// Map is a braced form as a flat key/value pair sequence,
	// preserving source order.
	Map []Value
)

func (Symbol) value()  {}
func (Keyword) value() {}
func (Str) value()     {}
func (Num) value()     {}
func (Char) value()    {}
func (Bool) value()    {}
func (Nil) value()     {}
func (List) value()    {}
func (Vector) value()  {}
func (Set) value()     {}
func (Map) value()     {}

// Annotated wraps a form that carried ^meta markers. Meta is the
// accumulated metadata map; stacked markers merge left to right.
type Annotated struct {
	Meta Map
	Form Value
}

func (Annotated) value() {}

// Form is a top-level form together with the line it starts on.
type Form struct {
	Value Value
	Line  int
}

// Unmeta strips any metadata annotation from v.
func Unmeta(v Value) Value {
	if a, ok := v.(Annotated); ok {
		return a.Form
	}
	return v
}

// MetaOf returns the metadata map attached to v, or nil.
func MetaOf(v Value) Map {
	if a, ok := v.(Annotated); ok {
		return a.Meta
	}
	return nil
}

// MapGet looks up key in a flat key/value map form.
func MapGet(m Map, key Keyword) (Value, bool) {
	for i := 0; i+1 < len(m); i += 2 {
		if k, ok := Unmeta(m[i]).(Keyword); ok && k == key {
			return m[i+1], true
		}
	}
	return nil, false
}

// Truthy reports whether v is a value other than nil and false.
func Truthy(v Value) bool {
	switch x := Unmeta(v).(type) {
	case nil:
		return false
	case Nil:
		return false
	case Bool:
		return bool(x)
	default:
		return true
	}
}

type reader struct {
	src  []byte
	pos  int
	line int
}

// ReadAll reads every top-level form in src.
func ReadAll(src []byte) ([]Form, error) {
	r := &reader{src: src, line: 1}
	var forms []Form
	for {
		f, ok, err := r.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return forms, nil
		}
		forms = append(forms, f)
	}
}

// ReadString reads the first form in s.
func ReadString(s string) (Value, error) {
	r := &reader{src: []byte(s), line: 1}
	f, ok, err := r.next()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("line 1: no form found")
	}
	return f.Value, nil
}

// next returns the next top-level form, skipping discards.
func (r *reader) next() (Form, bool, error) {
	if err := r.skipSpace(); err != nil {
		return Form{}, false, err
	}
	if r.eof() {
		return Form{}, false, nil
	}
	line := r.line
	v, err := r.read()
	if err != nil {
		return Form{}, false, err
	}
	return Form{Value: v, Line: line}, true, nil
}

func (r *reader) eof() bool { return r.pos >= len(r.src) }

func (r *reader) peek() byte { return r.src[r.pos] }

func (r *reader) advance() byte {
	c := r.src[r.pos]
	r.pos++
	if c == '\n' {
		r.line++
	}
	return c
}

func (r *reader) errf(format string, args ...any) error {
	return fmt.Errorf("line %d: %s", r.line, fmt.Sprintf(format, args...))
}

// skipSpace consumes whitespace, commas, line comments, and #_ discards.
// A discarded form must still read cleanly; its error is reported here
// rather than surfacing later at an unrelated position.
func (r *reader) skipSpace() error {
	for !r.eof() {
		c := r.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == ',':
			r.advance()
		case c == ';':
			for !r.eof() && r.peek() != '\n' {
				r.advance()
			}
		case c == '#' && r.pos+1 < len(r.src) && r.src[r.pos+1] == '_':
			r.advance()
			r.advance()
			if _, err := r.read(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

func (r *reader) read() (Value, error) {
	if err := r.skipSpace(); err != nil {
		return nil, err
	}
	if r.eof() {
		return nil, r.errf("unexpected end of input")
	}
	c := r.peek()
	switch c {
	case '(':
		r.advance()
		items, err := r.readUntil(')')
		return List(items), err
	case '[':
		r.advance()
		items, err := r.readUntil(']')
		return Vector(items), err
	case '{':
		r.advance()
		items, err := r.readUntil('}')
		if err != nil {
			return nil, err
		}
		if len(items)%2 != 0 {
			return nil, r.errf("map literal with odd number of forms")
		}
		return Map(items), nil
	case ')', ']', '}':
		return nil, r.errf("unmatched %q", string(c))
	case '"':
		return r.readStr()
	case '\\':
		return r.readChar()
	case '\'', '`':
		r.advance()
		form, err := r.read()
		if err != nil {
			return nil, err
		}
		return List{Symbol("quote"), form}, nil
	case '~':
		r.advance()
		if !r.eof() && r.peek() == '@' {
			r.advance()
		}
		return r.read()
	case '@':
		r.advance()
		return r.read()
	case '^':
		r.advance()
		return r.readMeta()
	case '#':
		return r.readDispatch()
	}
	return r.readToken()
}

func (r *reader) readUntil(close byte) ([]Value, error) {
	var items []Value
	for {
		if err := r.skipSpace(); err != nil {
			return nil, err
		}
		if r.eof() {
			return nil, r.errf("unexpected end of input, expected %q", string(close))
		}
		if r.peek() == close {
			r.advance()
			return items, nil
		}
		v, err := r.read()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
}

func (r *reader) readStr() (Value, error) {
	r.advance() // opening quote
	var b strings.Builder
	for {
		if r.eof() {
			return nil, r.errf("unterminated string")
		}
		c := r.advance()
		if c == '"' {
			return Str(b.String()), nil
		}
		if c == '\\' {
			if r.eof() {
				return nil, r.errf("unterminated string escape")
			}
			e := r.advance()
			switch e {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '\\', '"':
				b.WriteByte(e)
			default:
				b.WriteByte('\\')
				b.WriteByte(e)
			}
			continue
		}
		b.WriteByte(c)
	}
}

func (r *reader) readChar() (Value, error) {
	r.advance() // backslash
	if r.eof() {
		return nil, r.errf("unterminated character literal")
	}
	var b strings.Builder
	b.WriteByte(r.advance())
	for !r.eof() && !isDelimiter(r.peek()) {
		b.WriteByte(r.advance())
	}
	return Char(b.String()), nil
}

// readMeta reads a ^meta marker and attaches it to the following form.
// Keyword meta becomes {kw true}; symbol or string meta becomes
// {:tag v}; map meta is used as-is.
func (r *reader) readMeta() (Value, error) {
	metaForm, err := r.read()
	if err != nil {
		return nil, err
	}
	var meta Map
	switch m := metaForm.(type) {
	case Keyword:
		meta = Map{m, Bool(true)}
	case Map:
		meta = m
	case Symbol, Str:
		meta = Map{Keyword("tag"), m}
	default:
		return nil, r.errf("invalid metadata form %T", metaForm)
	}
	target, err := r.read()
	if err != nil {
		return nil, err
	}
	if a, ok := target.(Annotated); ok {
		merged := append(Map{}, meta...)
		merged = append(merged, a.Meta...)
		return Annotated{Meta: merged, Form: a.Form}, nil
	}
	return Annotated{Meta: meta, Form: target}, nil
}

func (r *reader) readDispatch() (Value, error) {
	r.advance() // #
	if r.eof() {
		return nil, r.errf("unexpected end of input after #")
	}
	switch r.peek() {
	case '{':
		r.advance()
		items, err := r.readUntil('}')
		return Set(items), err
	case '"':
		return r.readStr()
	case '\'':
		r.advance()
		form, err := r.read()
		if err != nil {
			return nil, err
		}
		return List{Symbol("var"), form}, nil
	case '(':
		r.advance()
		items, err := r.readUntil(')')
		return List(items), err
	case '^':
		r.advance()
		return r.readMeta()
	case '?':
		// Reader conditional #?(...) or #?@(...): the clause list is
		// read as a plain list.
		r.advance()
		if !r.eof() && r.peek() == '@' {
			r.advance()
		}
		return r.read()
	}
	return nil, r.errf("unsupported dispatch #%s", string(r.peek()))
}

func (r *reader) readToken() (Value, error) {
	start := r.pos
	for !r.eof() && !isDelimiter(r.peek()) {
		r.advance()
	}
	tok := string(r.src[start:r.pos])
	if tok == "" {
		return nil, r.errf("unexpected character %q", string(r.peek()))
	}
	switch tok {
	case "nil":
		return Nil{}, nil
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	}
	if tok[0] == ':' {
		return Keyword(strings.TrimLeft(tok, ":")), nil
	}
	if isNumberToken(tok) {
		return Num(tok), nil
	}
	return Symbol(tok), nil
}

func isDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', ',', '(', ')', '[', ']', '{', '}', '"', ';':
		return true
	}
	return false
}

func isNumberToken(tok string) bool {
	c := tok[0]
	if c >= '0' && c <= '9' {
		return true
	}
	if (c == '+' || c == '-') && len(tok) > 1 {
		d := tok[1]
		return d >= '0' && d <= '9'
	}
	return false
}
