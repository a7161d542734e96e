package reader

import (
	"path/filepath"
	"reflect"

	"github.com/lread/cljdoc-analyzer/internal/metadata"
)

// nsEntry is one file's contribution: a namespace name and its record.
type nsEntry struct {
	name   string
	record metadata.NamespaceRecord
}

// Merge combines per-file entries by namespace name. On collision the
// earlier record's namespace metadata is kept as-is and its publics
// become the deduplicated union of both records' publics (duplicates
// compared by full record equality). Order across namespaces is
// first-seen; within a namespace, first-seen definition order is
// preserved with later additions appended.
func Merge(entries []nsEntry) []metadata.NamespaceRecord {
	index := make(map[string]int)
	var merged []metadata.NamespaceRecord
	for _, entry := range entries {
		i, seen := index[entry.name]
		if !seen {
			index[entry.name] = len(merged)
			merged = append(merged, entry.record)
			continue
		}
		merged[i].Publics = unionPublics(merged[i].Publics, entry.record.Publics)
	}
	return merged
}

// unionPublics appends records from addition not already present in
// base. Records contain nested slices, so equality is structural.
func unionPublics(base, addition []metadata.DefinitionRecord) []metadata.DefinitionRecord {
	for _, candidate := range addition {
		duplicate := false
		for _, existing := range base {
			if reflect.DeepEqual(existing, candidate) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			base = append(base, candidate)
		}
	}
	return base
}

func joinRoot(root, file string) string {
	return filepath.Join(root, filepath.FromSlash(file))
}
