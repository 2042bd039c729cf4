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

// TypedocFileName is the generated API dump inside a docs directory.
const TypedocFileName = "typedoc.json"

// typePagePrefix marks requests for standalone type pages, which are
// not supported yet.
const typePagePrefix = "types/"

// TypedocSource resolves generated API documentation from a
// typedoc.json dump. The parsed dump is memoized per catalogue path
// for the process lifetime with no staleness check: the dump is
// regenerated by an external tool between builds and treated as
// immutable while the process runs.
type TypedocSource struct {
	docsRoot string
	renderer *render.Renderer
	projects *Memo[*TypedocProject]
}

// NewTypedocSource creates a typedoc source reading dumps from
// <docsRoot>/<cataloguePath>/typedoc.json.
func NewTypedocSource(docsRoot string, renderer *render.Renderer) *TypedocSource {
	return &TypedocSource{
		docsRoot: docsRoot,
		renderer: renderer,
		projects: NewMemo[*TypedocProject](),
	}
}

func (t *TypedocSource) project(cataloguePath string) (*TypedocProject, error) {
	return t.projects.Do(cataloguePath, func() (*TypedocProject, error) {
		dumpPath := filepath.Join(t.docsRoot, filepath.FromSlash(cataloguePath), TypedocFileName)
		raw, err := os.ReadFile(dumpPath)
		if err != nil {
			return nil, fmt.Errorf("read typedoc dump %s: %w", dumpPath, err)
		}

		project, err := parseTypedocProject(raw)
		if err != nil {
			return nil, fmt.Errorf("typedoc dump %s: %w", dumpPath, err)
		}

		slog.Debug("Parsed typedoc dump", logfields.Path(dumpPath),
			slog.Int("namespaces", len(project.NamespaceNames())))
		return project, nil
	})
}

// Resolve synthesizes and renders the documentation page for a
// namespace looked up by fully-qualified dotted name.
func (t *TypedocSource) Resolve(cataloguePath, name string) (*render.Page, error) {
	project, err := t.project(cataloguePath)
	if err != nil {
		return nil, err
	}

	if strings.HasPrefix(name, typePagePrefix) {
		slog.Debug("Type pages are not supported yet", logfields.Article(name))
		return nil, &NotFoundError{Path: cataloguePath, Name: name}
	}

	ns, ok := project.Namespace(name)
	if !ok {
		return nil, &NotFoundError{Path: cataloguePath, Name: name}
	}

	s, err := slug.Parse(cataloguePath + "/" + name)
	if err != nil {
		return nil, err
	}

	page, err := t.renderer.Render([]byte(typedocMarkdown(project, name, ns)), s)
	if err != nil {
		return nil, err
	}
	page.Meta["title"] = name
	if features := typedocFeatures(ns); features != nil {
		page.Meta["features"] = toAnySlice(features)
	}
	return page, nil
}

// List enumerates every namespace in the dump, parents before their
// children, with title and feature metadata.
func (t *TypedocSource) List(cataloguePath string) ([]Item, error) {
	project, err := t.project(cataloguePath)
	if err != nil {
		return nil, err
	}

	names := project.NamespaceNames()
	items := make([]Item, 0, len(names))
	for _, name := range names {
		ns, _ := project.Namespace(name)
		meta := map[string]any{"title": name}
		if features := typedocFeatures(ns); features != nil {
			meta["features"] = toAnySlice(features)
		}
		items = append(items, Item{ID: name, Meta: meta})
	}
	return items, nil
}

// toAnySlice matches the shape frontmatter.Features expects, so
// generated metadata and YAML-decoded metadata filter identically.
func toAnySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
