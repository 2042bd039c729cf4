package content

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Badpoolinator/strata-wiki/internal/logfields"
	"github.com/Badpoolinator/strata-wiki/internal/render"
	"github.com/Badpoolinator/strata-wiki/internal/slug"
)

// MaterialFileName is the generated shader dump inside a docs directory.
const MaterialFileName = "materials.json"

// Material describes one shader and its parameters.
type Material struct {
	Name   string          `json:"name"`
	Params []MaterialParam `json:"params"`
}

// MaterialParam is one tunable shader parameter.
type MaterialParam struct {
	Name    string `json:"name"`
	Desc    string `json:"desc"`
	Type    string `json:"type"`
	Default string `json:"default"`
}

type materialDump struct {
	Shaders []Material `json:"shaders"`
}

// MaterialSource resolves generated shader/material documentation from
// a materials.json dump. The parsed dump is cached per catalogue path
// and invalidated whenever the raw bytes differ from the cached copy.
type MaterialSource struct {
	docsRoot string
	renderer *render.Renderer
	cache    *Cache[[]Material]
}

// NewMaterialSource creates a material source reading dumps from
// <docsRoot>/<cataloguePath>/materials.json.
func NewMaterialSource(docsRoot string, renderer *render.Renderer) *MaterialSource {
	return &MaterialSource{
		docsRoot: docsRoot,
		renderer: renderer,
		cache:    NewCache[[]Material](),
	}
}

func (m *MaterialSource) materials(cataloguePath string) ([]Material, error) {
	dumpPath := filepath.Join(m.docsRoot, filepath.FromSlash(cataloguePath), MaterialFileName)
	raw, err := os.ReadFile(dumpPath)
	if err != nil {
		return nil, fmt.Errorf("read material dump %s: %w", dumpPath, err)
	}

	return m.cache.Fetch(cataloguePath, raw, func() ([]Material, error) {
		slog.Debug("Material cache miss, regenerating", logfields.Path(dumpPath))
		dump := materialDump{}
		if err := json.Unmarshal(raw, &dump); err != nil {
			return nil, fmt.Errorf("parse material dump %s: %w", dumpPath, err)
		}
		return dump.Shaders, nil
	})
}

// Resolve synthesizes and renders the documentation page for a named
// material.
func (m *MaterialSource) Resolve(cataloguePath, name string) (*render.Page, error) {
	all, err := m.materials(cataloguePath)
	if err != nil {
		return nil, err
	}

	for _, mat := range all {
		if mat.Name != name {
			continue
		}

		s, err := slug.Parse(cataloguePath + "/" + name)
		if err != nil {
			return nil, err
		}

		page, err := m.renderer.Render([]byte(m.materialMarkdown(cataloguePath, mat)), s)
		if err != nil {
			return nil, err
		}
		page.Meta["title"] = mat.Name
		return page, nil
	}

	return nil, &NotFoundError{Path: cataloguePath, Name: name}
}

// materialMarkdown builds the page body: title, the optional
// hand-written description file next to the dump, and the parameter
// reference.
func (m *MaterialSource) materialMarkdown(cataloguePath string, mat Material) string {
	var b strings.Builder
	b.WriteString("# " + mat.Name + "\n\n")

	descPath := filepath.Join(m.docsRoot, filepath.FromSlash(cataloguePath), mat.Name+slug.SourceExt)
	if desc, err := os.ReadFile(descPath); err == nil {
		b.Write(desc)
		b.WriteString("\n\n")
	}

	b.WriteString("## Parameters\n\n")
	for _, param := range mat.Params {
		b.WriteString("> ```c\n")
		b.WriteString("> " + param.Name + " <" + param.Type + ">")
		if param.Default != "" {
			b.WriteString(" = " + param.Default)
		}
		b.WriteString("\n> ```\n> \n> " + param.Desc + "\n\n")
	}

	return b.String()
}

// List enumerates every material in dump order.
func (m *MaterialSource) List(cataloguePath string) ([]Item, error) {
	all, err := m.materials(cataloguePath)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(all))
	for _, mat := range all {
		items = append(items, Item{ID: mat.Name, Meta: map[string]any{"title": mat.Name}})
	}
	return items, nil
}
