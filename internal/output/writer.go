// Package output writes extraction results as JSON.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lread/cljdoc-analyzer/internal/metadata"
)

// Writer writes the namespace list to a file atomically (temp file in
// the destination directory, then rename), or to stdout when the path
// is "-".
type Writer struct {
	path   string
	pretty bool
}

// NewWriter creates a writer for path.
func NewWriter(path string, pretty bool) *Writer {
	return &Writer{path: path, pretty: pretty}
}

// Write marshals namespaces and writes them to the destination.
func (w *Writer) Write(namespaces []metadata.NamespaceRecord) error {
	if namespaces == nil {
		namespaces = []metadata.NamespaceRecord{}
	}
	var data []byte
	var err error
	if w.pretty {
		data, err = json.MarshalIndent(namespaces, "", "  ")
	} else {
		data, err = json.Marshal(namespaces)
	}
	if err != nil {
		return fmt.Errorf("marshaling namespaces: %w", err)
	}
	data = append(data, '\n')

	if w.path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	tempFile, err := os.CreateTemp(dir, ".cljdoc-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := tempFile.Name()
	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tempPath, w.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
