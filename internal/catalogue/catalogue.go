// Package catalogue loads the static tree of games, categories, and
// topics that drives the index build.
//
// Each game lives in its own directory under the pages root and declares
// itself via a meta.json file. Directories without meta.json are ignored.
// The catalogue is loaded once per build and immutable afterwards.
package catalogue

import (
	"github.com/Badpoolinator/strata-wiki/internal/util/sets"
)

// SourceKind selects the content source adapter backing a topic.
// It is resolved once at catalogue-load time, not per article.
type SourceKind string

const (
	// SourceMarkdown topics enumerate .md files in the topic directory.
	SourceMarkdown SourceKind = "markdown"
	// SourceTypedoc topics are backed by a generated typedoc.json dump.
	SourceTypedoc SourceKind = "typedoc"
	// SourceMaterial topics are backed by a generated materials.json dump.
	SourceMaterial SourceKind = "material"
)

// Topic is a navigable group of articles inside a category.
type Topic struct {
	ID   string     `json:"id"`
	Name string     `json:"name"`
	Type SourceKind `json:"type,omitempty"`
}

// Kind returns the topic's source kind, defaulting to Markdown.
func (t Topic) Kind() SourceKind {
	if t.Type == "" {
		return SourceMarkdown
	}
	return t.Type
}

// Category groups topics inside a game. Home names the topic linked
// from the top navigation bar.
type Category struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Home   string  `json:"home,omitempty"`
	Topics []Topic `json:"topics"`
}

// Game is a top-level catalogue entry, loaded from pages/<id>/meta.json.
type Game struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	NameShort  string     `json:"nameShort,omitempty"`
	Features   []string   `json:"features"`
	Categories []Category `json:"categories"`

	featureSet sets.Set[string]
}

// Label returns the shortest available display name for the game.
func (g *Game) Label() string {
	if g.NameShort != "" {
		return g.NameShort
	}
	if g.Name != "" {
		return g.Name
	}
	return g.ID
}

// SupportsAll reports whether every named feature is declared by the
// game. Matching is case-sensitive exact string comparison; an empty
// list is always supported.
func (g *Game) SupportsAll(features []string) bool {
	if len(features) == 0 {
		return true
	}
	if g.featureSet == nil {
		g.featureSet = sets.New(g.Features...)
	}
	return g.featureSet.HasAll(features)
}
