package deps

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestScanForeignModules_KeepsOnlyStringRequires(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeSource(t, root, "src/a.clj", `(ns a (:require [clojure.string :as str] "cljsjs.react"))`)
	writeSource(t, root, "src/b.clj", `(ns b (:require clojure.set ["react-dom" :as dom]))`)

	modules, err := ScanForeignModules(root, []string{"src/a.clj", "src/b.clj"})
	require.NoError(t, err)
	assert.Equal(t, []string{"cljsjs.react", "react-dom"}, modules)
}

func TestScanForeignModules_Deduplicates(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeSource(t, root, "a.clj", `(ns a (:require "cljsjs.react"))`)
	writeSource(t, root, "b.clj", `(ns b (:require "cljsjs.react"))`)

	modules, err := ScanForeignModules(root, []string{"a.clj", "b.clj"})
	require.NoError(t, err)
	assert.Equal(t, []string{"cljsjs.react"}, modules)
}

func TestScanForeignModules_NoForeign(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeSource(t, root, "a.clj", `(ns a (:require [clojure.string]))`)

	modules, err := ScanForeignModules(root, []string{"a.clj"})
	require.NoError(t, err)
	assert.Empty(t, modules)
}

func TestScanForeignModules_MalformedHeaderIsFatal(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeSource(t, root, "bad.clj", `(ns broken`)

	_, err := ScanForeignModules(root, []string{"bad.clj"})
	assert.Error(t, err)
}
