package clj

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadString_Scalars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want Value
	}{
		{"symbol", "foo", Symbol("foo")},
		{"qualified symbol", "clojure.string/join", Symbol("clojure.string/join")},
		{"keyword", ":doc", Keyword("doc")},
		{"string", `"hello"`, Str("hello")},
		{"string with escapes", `"a\"b\nc"`, Str("a\"b\nc")},
		{"number", "42", Num("42")},
		{"negative number", "-1.5", Num("-1.5")},
		{"plus symbol", "+", Symbol("+")},
		{"nil", "nil", Nil{}},
		{"true", "true", Bool(true)},
		{"false", "false", Bool(false)},
		{"char", `\newline`, Char("newline")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadString(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadString_Collections(t *testing.T) {
	t.Parallel()

	got, err := ReadString(`(defn f [x y] {:a 1} #{:b})`)
	require.NoError(t, err)
	assert.Equal(t, List{
		Symbol("defn"),
		Symbol("f"),
		Vector{Symbol("x"), Symbol("y")},
		Map{Keyword("a"), Num("1")},
		Set{Keyword("b")},
	}, got)
}

func TestReadString_Quote(t *testing.T) {
	t.Parallel()

	got, err := ReadString(`'([x] [x y])`)
	require.NoError(t, err)
	assert.Equal(t, List{
		Symbol("quote"),
		List{Vector{Symbol("x")}, Vector{Symbol("x"), Symbol("y")}},
	}, got)
}

func TestReadString_KeywordMeta(t *testing.T) {
	t.Parallel()

	got, err := ReadString("^:dynamic *db*")
	require.NoError(t, err)
	a, ok := got.(Annotated)
	require.True(t, ok)
	assert.Equal(t, Symbol("*db*"), a.Form)
	v, found := MapGet(a.Meta, "dynamic")
	require.True(t, found)
	assert.Equal(t, Bool(true), v)
}

func TestReadString_MapMeta(t *testing.T) {
	t.Parallel()

	got, err := ReadString(`^{:added "1.2" :deprecated "2.0"} thing`)
	require.NoError(t, err)
	a, ok := got.(Annotated)
	require.True(t, ok)
	assert.Equal(t, Symbol("thing"), a.Form)
	added, found := MapGet(a.Meta, "added")
	require.True(t, found)
	assert.Equal(t, Str("1.2"), added)
}

func TestReadString_StackedMeta(t *testing.T) {
	t.Parallel()

	got, err := ReadString("^:no-doc ^:dynamic x")
	require.NoError(t, err)
	a, ok := got.(Annotated)
	require.True(t, ok)
	_, hasNoDoc := MapGet(a.Meta, "no-doc")
	_, hasDynamic := MapGet(a.Meta, "dynamic")
	assert.True(t, hasNoDoc)
	assert.True(t, hasDynamic)
}

func TestReadAll_SkipsCommentsAndDiscards(t *testing.T) {
	t.Parallel()

	src := []byte(`
; a comment
#_(ignored form)
(def a 1) ; trailing comment
(def b 2)
`)
	forms, err := ReadAll(src)
	require.NoError(t, err)
	require.Len(t, forms, 2)
	assert.Equal(t, List{Symbol("def"), Symbol("a"), Num("1")}, forms[0].Value)
	assert.Equal(t, List{Symbol("def"), Symbol("b"), Num("2")}, forms[1].Value)
}

func TestReadAll_MalformedDiscardIsAnError(t *testing.T) {
	t.Parallel()

	_, err := ReadAll([]byte("#_(unclosed\n(def a 1)"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected end of input")
}

func TestReadAll_TracksLines(t *testing.T) {
	t.Parallel()

	src := []byte("(ns foo)\n\n(def a 1)\n(def b\n  2)\n")
	forms, err := ReadAll(src)
	require.NoError(t, err)
	require.Len(t, forms, 3)
	assert.Equal(t, 1, forms[0].Line)
	assert.Equal(t, 3, forms[1].Line)
	assert.Equal(t, 4, forms[2].Line)
}

func TestReadAll_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{"unterminated list", "(def a"},
		{"unmatched close", ")"},
		{"unterminated string", `"abc`},
		{"odd map", "{:a}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadAll([]byte(tt.src))
			assert.Error(t, err)
		})
	}
}

func TestPrint_RoundTrips(t *testing.T) {
	t.Parallel()

	tests := []string{
		"foo",
		":kw",
		"42",
		"[x y]",
		"(f [x] {:a 1})",
		"#{:a}",
	}
	for _, src := range tests {
		v, err := ReadString(src)
		require.NoError(t, err)
		assert.Equal(t, src, Print(v))
	}
}

func TestTruthy(t *testing.T) {
	t.Parallel()

	assert.False(t, Truthy(Nil{}))
	assert.False(t, Truthy(Bool(false)))
	assert.False(t, Truthy(nil))
	assert.True(t, Truthy(Bool(true)))
	assert.True(t, Truthy(Str("")))
	assert.True(t, Truthy(Num("0")))
}
