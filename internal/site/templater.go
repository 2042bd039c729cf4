package site

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Badpoolinator/strata-wiki/internal/catalogue"
	"github.com/Badpoolinator/strata-wiki/internal/index"
	"github.com/Badpoolinator/strata-wiki/internal/slug"
)

// MainTemplateName is the page shell inside the templates directory.
const MainTemplateName = "main.html"

// NotFoundTemplateName is the 404 page body inside the templates
// directory.
const NotFoundTemplateName = "404.html"

// Templater applies the site's HTML shell around rendered articles.
//
// The shell is a plain HTML file with %KEY% placeholders (%CONTENT%,
// %TITLE%, %SIDEBAR%, %NAV%, %SLUG%, %FILE%), substituted literally.
// This is the contract the hand-written templates and client-side
// scripts already rely on, so no template engine is involved.
type Templater struct {
	templatesDir string
	shell        string
	navs         map[string]string
	menu         index.Menu
}

// NewTemplater reads the main shell template from the templates
// directory.
func NewTemplater(templatesDir string) (*Templater, error) {
	shellPath := filepath.Join(templatesDir, MainTemplateName)
	shell, err := os.ReadFile(shellPath)
	if err != nil {
		return nil, fmt.Errorf("read page template %s: %w", shellPath, err)
	}
	return &Templater{
		templatesDir: templatesDir,
		shell:        string(shell),
		navs:         map[string]string{},
	}, nil
}

// GenerateNav builds the top navigation HTML for every game: one link
// per category, pointing at the category's home topic.
func (t *Templater) GenerateNav(games []*catalogue.Game) {
	for _, game := range games {
		var b strings.Builder
		for _, category := range game.Categories {
			fmt.Fprintf(&b, `<a href="/%s/%s/%s">%s</a>`, game.ID, category.ID, category.Home, category.Label)
		}
		t.navs[game.ID] = b.String()
	}
}

// SetMenu attaches the built menu, enabling sidebar generation.
func (t *Templater) SetMenu(menu index.Menu) { t.menu = menu }

// Sidebar builds the sidebar HTML for the category containing the
// given slug. Slugs outside any known category yield an empty sidebar.
func (t *Templater) Sidebar(s slug.Slug) string {
	entries, ok := t.menu[s.Game()][s.Category()]
	if !ok {
		return ""
	}

	var b strings.Builder
	for _, entry := range entries {
		fmt.Fprintf(&b, `<a href="/%s" class="%s">%s</a>`, entry.Link, entry.Type, entry.Text)
	}
	return b.String()
}

// Apply wraps an article's HTML in the page shell.
func (t *Templater) Apply(article *index.Article) string {
	values := map[string]string{
		"CONTENT": article.Content,
		"TITLE":   article.Title,
		"SIDEBAR": t.Sidebar(article.Slug),
		"NAV":     t.navs[article.Slug.Game()],
		"SLUG":    article.Slug.URL(),
		"FILE":    strings.TrimPrefix(article.File, slug.SourceRoot+"/"),
	}

	out := t.shell
	for key, value := range values {
		out = strings.ReplaceAll(out, "%"+key+"%", value)
	}
	return out
}

// NotFoundContent reads the 404 template body, or returns a minimal
// fallback when none is provided.
func (t *Templater) NotFoundContent() string {
	raw, err := os.ReadFile(filepath.Join(t.templatesDir, NotFoundTemplateName))
	if err != nil {
		return "<h1>Page not found</h1>"
	}
	return string(raw)
}
