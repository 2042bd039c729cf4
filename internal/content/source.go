// Package content resolves wiki articles from their backing sources.
//
// A Source produces rendered documents for one content kind: freeform
// Markdown files, generated API-doc dumps (typedoc.json), or generated
// material dumps (materials.json). The index builder selects a Source
// per topic at catalogue-load time and treats the interface uniformly.
package content

import (
	"errors"
	"fmt"

	"github.com/Badpoolinator/strata-wiki/internal/render"
)

// Item is one enumerable article candidate within a topic.
type Item struct {
	ID   string         `json:"id"`
	Meta map[string]any `json:"meta"`
}

// Source resolves and enumerates articles for a catalogue path
// (game/category/topic).
type Source interface {
	// Resolve renders the named article. It returns a NotFoundError
	// when the article does not exist; malformed generated dumps are
	// fatal errors.
	Resolve(cataloguePath, name string) (*render.Page, error)

	// List enumerates candidate articles in presentation order.
	List(cataloguePath string) ([]Item, error)
}

// NotFoundError reports a missing article, namespace, or material.
// The index builder skips these; the preview server surfaces a 404.
type NotFoundError struct {
	Path string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("content not found: %s/%s", e.Path, e.Name)
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
