// Package deps scans namespace declaration headers for modules hosted
// by an external package ecosystem. Those modules are named by strings
// in :require clauses rather than resolvable in-tree symbols, and must
// be pre-registered as placeholders before analysis.
package deps

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/lread/cljdoc-analyzer/internal/clj"
)

// ScanForeignModules parses the ns header of every file (root-relative
// paths under root) and returns the deduplicated, sorted union of
// string-named required modules. Header parse failures are fatal: the
// scan runs before per-file fault isolation is established.
func ScanForeignModules(root string, files []string) ([]string, error) {
	seen := make(map[string]struct{})
	for _, file := range files {
		decl, err := clj.ReadNSDecl(filepath.Join(root, filepath.FromSlash(file)))
		if err != nil {
			return nil, fmt.Errorf("scanning dependencies: %w", err)
		}
		for _, req := range decl.Requires {
			if req.Foreign {
				seen[req.Name] = struct{}{}
			}
		}
	}
	modules := make([]string, 0, len(seen))
	for name := range seen {
		modules = append(modules, name)
	}
	sort.Strings(modules)
	return modules, nil
}
