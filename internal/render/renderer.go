// Package render turns raw Markdown sources into HTML pages.
//
// The renderer is a thin wrapper around goldmark plus the wiki-specific
// preprocessing (YAML frontmatter extraction and per-game exclusive
// blocks). It performs no I/O; callers hand it raw bytes.
package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/Badpoolinator/strata-wiki/internal/catalogue"
	"github.com/Badpoolinator/strata-wiki/internal/frontmatter"
	"github.com/Badpoolinator/strata-wiki/internal/slug"
)

// Page is a rendered document: HTML content plus its frontmatter
// metadata and the slug it was rendered for.
type Page struct {
	Content string         `json:"content"`
	Meta    map[string]any `json:"meta"`
	Slug    slug.Slug      `json:"slug"`
}

// Title returns the page's explicit frontmatter title, or "".
func (p *Page) Title() string { return frontmatter.Title(p.Meta) }

// Features returns the page's declared feature requirements, or nil.
func (p *Page) Features() ([]string, error) { return frontmatter.Features(p.Meta) }

// Renderer converts Markdown to HTML. Safe for concurrent use.
type Renderer struct {
	md        goldmark.Markdown
	exclusive *exclusiveTransform
}

// New creates a renderer. The game list drives the `::: <game>`
// exclusive-block transform; it may be empty.
func New(games []*catalogue.Game) *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Typographer),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			// Exclusive blocks emit raw div wrappers, so raw HTML must
			// survive rendering. Input is trusted wiki content.
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
		exclusive: newExclusiveTransform(games),
	}
}

// Render converts a raw Markdown document into a Page. Frontmatter is
// extracted first; a malformed frontmatter block is an error.
func (r *Renderer) Render(raw []byte, s slug.Slug) (*Page, error) {
	meta, body, err := frontmatter.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", s.URL(), err)
	}

	body = r.exclusive.Apply(body)

	var buf bytes.Buffer
	if err := r.md.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", s.URL(), err)
	}

	return &Page{Content: buf.String(), Meta: meta, Slug: s}, nil
}
