package linkcheck

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Badpoolinator/strata-wiki/internal/logfields"
)

// Broken is one internal link whose target does not exist in the
// output directory.
type Broken struct {
	Page string // page containing the link, relative to the output dir
	Link Link
}

func (b Broken) String() string {
	return fmt.Sprintf("%s: <%s %s=%q> %q", b.Page, b.Link.Tag, b.Link.Attribute, b.Link.URL, b.Link.Text)
}

// Checker scans every HTML page under the output directory and checks
// its internal links against the same directory.
type Checker struct {
	outDir string
}

// NewChecker creates a checker over an output directory.
func NewChecker(outDir string) *Checker {
	return &Checker{outDir: outDir}
}

// Run walks all built pages and returns the broken internal links
// found. An empty result means the site is internally consistent.
func (c *Checker) Run() ([]Broken, error) {
	var broken []Broken
	pages := 0

	err := filepath.WalkDir(c.outDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".html") {
			return nil
		}
		pages++

		rel, err := filepath.Rel(c.outDir, path)
		if err != nil {
			return err
		}
		pageBroken, err := c.checkPage(path, filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		broken = append(broken, pageBroken...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Link check finished",
		slog.Int("pages", pages),
		slog.Int("broken", len(broken)))
	return broken, nil
}

func (c *Checker) checkPage(path, rel string) ([]Broken, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	links, err := ExtractLinks(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", rel, err)
	}

	var broken []Broken
	for _, link := range links {
		if !link.Internal {
			continue
		}
		if !c.resolves(link.URL, rel) {
			slog.Debug("Broken internal link",
				logfields.Path(rel), logfields.URL(link.URL))
			broken = append(broken, Broken{Page: rel, Link: link})
		}
	}
	return broken, nil
}

// resolves reports whether an internal link target exists, using the
// site's URL conventions: the literal path, the path with .html
// appended, or the path's index.html.
func (c *Checker) resolves(link, fromPage string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}

	target := u.Path
	if !strings.HasPrefix(target, "/") {
		target = path.Join("/", path.Dir(fromPage), target)
	}
	target = strings.TrimPrefix(path.Clean(target), "/")
	if target == "" {
		target = "index"
	}

	base := filepath.Join(c.outDir, filepath.FromSlash(target))
	for _, candidate := range []string{base, base + ".html", filepath.Join(base, "index.html")} {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return true
		}
	}
	return false
}
