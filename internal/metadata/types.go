// Package metadata defines the output records produced by namespace
// extraction: one NamespaceRecord per namespace, each holding the
// classified public definitions a documentation renderer consumes.
//
// Sparse encoding is part of the contract: optional fields carry
// `omitempty` tags so an absent field means "not applicable", which
// consumers must treat as distinct from an explicit false or empty
// value. Boolean flags are only ever emitted as true.
package metadata

// DefType classifies a public definition.
type DefType string

const (
	TypeVar         DefType = "var"
	TypeMacro       DefType = "macro"
	TypeProtocol    DefType = "protocol"
	TypeMultimethod DefType = "multimethod"
)

// DefinitionRecord is one public definition within a namespace.
//
// Members is populated only for protocols and holds the protocol's
// method records with File/Line stripped (the owning protocol already
// locates them).
type DefinitionRecord struct {
	Name       string             `json:"name"`
	File       string             `json:"file,omitempty"`
	Line       int                `json:"line,omitempty"`
	Arglists   [][]string         `json:"arglists,omitempty"`
	Doc        string             `json:"doc,omitempty"`
	Type       DefType            `json:"type"`
	Dynamic    bool               `json:"dynamic,omitempty"`
	Added      string             `json:"added,omitempty"`
	Deprecated string             `json:"deprecated,omitempty"`
	NoDoc      bool               `json:"no-doc,omitempty"`
	SkipWiki   bool               `json:"skip-wiki,omitempty"`
	Members    []DefinitionRecord `json:"members,omitempty"`
}

// NamespaceRecord is the extracted documentation metadata for one
// namespace, with its public definitions in first-seen order.
type NamespaceRecord struct {
	Name       string             `json:"name"`
	Doc        string             `json:"doc,omitempty"`
	Author     string             `json:"author,omitempty"`
	NoDoc      bool               `json:"no-doc,omitempty"`
	SkipWiki   bool               `json:"skip-wiki,omitempty"`
	Deprecated string             `json:"deprecated,omitempty"`
	Added      string             `json:"added,omitempty"`
	Publics    []DefinitionRecord `json:"publics"`
}
