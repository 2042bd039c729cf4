package site

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Badpoolinator/strata-wiki/internal/catalogue"
	"github.com/Badpoolinator/strata-wiki/internal/index"
	"github.com/Badpoolinator/strata-wiki/internal/logfields"
)

// Writer serializes build artifacts into the output directory:
// per-article HTML and JSON, the menu and games indices, and copies of
// the asset/static trees.
type Writer struct {
	outDir    string
	templater *Templater
}

// NewWriter creates a writer rooted at the output directory.
func NewWriter(outDir string, templater *Templater) *Writer {
	return &Writer{outDir: outDir, templater: templater}
}

// Clean removes any previous output and recreates the directory
// skeleton, so a failed build never leaves the old site half-replaced.
func (w *Writer) Clean() error {
	if err := os.RemoveAll(w.outDir); err != nil {
		return fmt.Errorf("clean output directory %s: %w", w.outDir, err)
	}
	for _, dir := range []string{w.outDir, filepath.Join(w.outDir, "ajax")} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create output directory %s: %w", dir, err)
		}
	}
	return nil
}

// SavePage writes an article's JSON fragment and templated HTML to
// their slug-derived locations.
func (w *Writer) SavePage(article *index.Article) error {
	dir := filepath.FromSlash(article.Slug.Dir())

	jsonDir := filepath.Join(w.outDir, "ajax", "article", dir)
	if err := os.MkdirAll(jsonDir, 0o750); err != nil {
		return fmt.Errorf("create article directory: %w", err)
	}
	raw, err := json.Marshal(article)
	if err != nil {
		return fmt.Errorf("encode article %s: %w", article.Slug.URL(), err)
	}
	if err := os.WriteFile(filepath.Join(jsonDir, article.ID+".json"), raw, 0o640); err != nil {
		return fmt.Errorf("write article json %s: %w", article.Slug.URL(), err)
	}

	htmlDir := filepath.Join(w.outDir, dir)
	if err := os.MkdirAll(htmlDir, 0o750); err != nil {
		return fmt.Errorf("create page directory: %w", err)
	}
	html := w.templater.Apply(article)
	if err := os.WriteFile(filepath.Join(htmlDir, article.ID+".html"), []byte(html), 0o640); err != nil {
		return fmt.Errorf("write page html %s: %w", article.Slug.URL(), err)
	}

	slog.Debug("Saved page", logfields.Slug(article.Slug.URL()), logfields.Article(article.ID))
	return nil
}

// WriteMenu writes the navigation index consumed by the sidebar.
func (w *Writer) WriteMenu(menu index.Menu) error {
	return w.writeJSON(filepath.Join("ajax", "menu.json"), menu)
}

// WriteIndex writes the full resolved article tree keyed by game id.
func (w *Writer) WriteIndex(idx index.Index) error {
	return w.writeJSON(filepath.Join("ajax", "index.json"), idx)
}

// WriteGames writes the game metadata index keyed by game id.
func (w *Writer) WriteGames(games []*catalogue.Game) error {
	byID := make(map[string]*catalogue.Game, len(games))
	for _, game := range games {
		byID[game.ID] = game
	}
	return w.writeJSON(filepath.Join("ajax", "games.json"), byID)
}

func (w *Writer) writeJSON(rel string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", rel, err)
	}
	full := filepath.Join(w.outDir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		return fmt.Errorf("create directory for %s: %w", rel, err)
	}
	if err := os.WriteFile(full, raw, 0o640); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	return nil
}

// CopyTree copies a directory tree into the output directory under
// dest. A missing source tree is skipped with a warning: not every
// deployment ships assets alongside the content.
func (w *Writer) CopyTree(src, dest string) error {
	if _, err := os.Stat(src); os.IsNotExist(err) {
		slog.Warn("Skipping missing directory", logfields.Path(src))
		return nil
	}

	destRoot := filepath.Join(w.outDir, dest)
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(destRoot, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o750)
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return err
	}
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s: %w", dest, err)
	}
	return out.Close()
}
