// Package discover walks a source tree and returns root-relative paths
// of analyzable Clojure files.
package discover

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Extensions recognized as analyzable source files.
var sourceExtensions = []string{".clj", ".cljc"}

// compiledPattern holds both the pattern string and compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Discoverer finds analyzable files under a root directory, honoring
// ignore patterns matched against root-relative slash paths.
type Discoverer struct {
	ignorePatterns []compiledPattern
}

// New compiles the given ignore patterns into a Discoverer.
func New(ignorePatterns []string) (*Discoverer, error) {
	d := &Discoverer{}
	for _, pattern := range ignorePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		d.ignorePatterns = append(d.ignorePatterns, compiledPattern{pattern: pattern, glob: g})
	}
	return d, nil
}

// Files walks root and returns root-relative slash paths of files with
// a recognized source extension, in walk order. A non-directory root
// yields no files. Walk errors abort discovery.
func (d *Discoverer) Files(root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, nil
	}

	var files []string
	err = filepath.Walk(absRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !hasSourceExtension(info.Name()) {
			return nil
		}
		// Root-relative path by stripping the root prefix plus one
		// separator. Shorter candidates cannot be under the root.
		if len(path) <= len(absRoot)+1 {
			return nil
		}
		relPath := filepath.ToSlash(path[len(absRoot)+1:])
		if d.shouldIgnore(relPath) {
			return nil
		}
		files = append(files, relPath)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func hasSourceExtension(name string) bool {
	for _, ext := range sourceExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// shouldIgnore checks if a path matches any ignore pattern, either
// directly or as a directory prefix (so "target" ignores "target/**").
func (d *Discoverer) shouldIgnore(relPath string) bool {
	for _, cp := range d.ignorePatterns {
		if cp.glob.Match(relPath) {
			return true
		}
	}
	pathWithSuffix := relPath + "/**"
	for _, cp := range d.ignorePatterns {
		if cp.glob.Match(pathWithSuffix) {
			return true
		}
	}
	return false
}
