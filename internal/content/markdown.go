package content

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Badpoolinator/strata-wiki/internal/logfields"
	"github.com/Badpoolinator/strata-wiki/internal/render"
	"github.com/Badpoolinator/strata-wiki/internal/slug"
)

// MarkdownSource resolves articles from .md files under the pages root.
// It performs no caching of its own: the raw file is read and rendered
// on every resolve, so edits between resolves are always picked up.
type MarkdownSource struct {
	root     string
	renderer *render.Renderer
}

// NewMarkdownSource creates a markdown source rooted at the pages
// directory. An empty root defaults to slug.SourceRoot.
func NewMarkdownSource(root string, renderer *render.Renderer) *MarkdownSource {
	if root == "" {
		root = slug.SourceRoot
	}
	return &MarkdownSource{root: root, renderer: renderer}
}

// Resolve reads and renders <root>/<cataloguePath>/<name>.md.
func (m *MarkdownSource) Resolve(cataloguePath, name string) (*render.Page, error) {
	s, err := slug.Parse(cataloguePath + "/" + name)
	if err != nil {
		return nil, err
	}

	sourcePath := filepath.Join(m.root, filepath.FromSlash(s.URL())+slug.SourceExt)
	raw, err := os.ReadFile(sourcePath)
	if os.IsNotExist(err) {
		return nil, &NotFoundError{Path: cataloguePath, Name: name}
	}
	if err != nil {
		return nil, fmt.Errorf("read article source %s: %w", sourcePath, err)
	}

	slog.Debug("Rendering markdown article", logfields.Path(sourcePath), logfields.Slug(s.URL()))
	return m.renderer.Render(raw, s)
}

// List enumerates the .md files in the topic directory, in directory
// order. A missing topic directory is a NotFoundError.
func (m *MarkdownSource) List(cataloguePath string) ([]Item, error) {
	dir := filepath.Join(m.root, filepath.FromSlash(cataloguePath))
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, &NotFoundError{Path: cataloguePath}
	}
	if err != nil {
		return nil, fmt.Errorf("list topic directory %s: %w", dir, err)
	}

	items := make([]Item, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), slug.SourceExt) {
			continue
		}
		items = append(items, Item{
			ID:   strings.TrimSuffix(entry.Name(), slug.SourceExt),
			Meta: map[string]any{},
		})
	}
	return items, nil
}
