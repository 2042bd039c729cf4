// Package site exports the complete static site: it orchestrates the
// catalogue load, index build, and artifact writing as discrete stages.
package site

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Badpoolinator/strata-wiki/internal/catalogue"
	"github.com/Badpoolinator/strata-wiki/internal/config"
	"github.com/Badpoolinator/strata-wiki/internal/content"
	"github.com/Badpoolinator/strata-wiki/internal/index"
	"github.com/Badpoolinator/strata-wiki/internal/logfields"
	"github.com/Badpoolinator/strata-wiki/internal/metrics"
	"github.com/Badpoolinator/strata-wiki/internal/render"
	"github.com/Badpoolinator/strata-wiki/internal/slug"
)

// Exporter runs the full build: clean, copy site chrome, build the
// index, and save every page. Page saving only starts after the index
// build completes, so a partially resolved index is never published.
type Exporter struct {
	cfg      *config.Config
	recorder metrics.Recorder

	games     []*catalogue.Game
	builder   *index.Builder
	templater *Templater
	writer    *Writer
	markdown  *content.MarkdownSource

	result *index.Result
}

// NewExporter loads the catalogue and wires the renderer, source
// adapters, and writer. Catalogue errors are fatal.
func NewExporter(cfg *config.Config, recorder metrics.Recorder) (*Exporter, error) {
	if recorder == nil {
		recorder = metrics.Noop{}
	}

	games, err := catalogue.Load(cfg.Content.Pages)
	if err != nil {
		return nil, err
	}

	renderer := render.New(games)
	markdown := content.NewMarkdownSource(cfg.Content.Pages, renderer)
	sources := map[catalogue.SourceKind]content.Source{
		catalogue.SourceMarkdown: markdown,
		catalogue.SourceTypedoc:  content.NewTypedocSource(cfg.Content.Docs, renderer),
		catalogue.SourceMaterial: content.NewMaterialSource(cfg.Content.Docs, renderer),
	}

	templater, err := NewTemplater(cfg.Content.Templates)
	if err != nil {
		return nil, err
	}

	return &Exporter{
		cfg:       cfg,
		recorder:  recorder,
		games:     games,
		builder:   index.NewBuilder(games, sources),
		templater: templater,
		writer:    NewWriter(cfg.Output.Directory, templater),
		markdown:  markdown,
	}, nil
}

// Result returns the index build output, available after Export.
func (e *Exporter) Result() *index.Result { return e.result }

type stage struct {
	name string
	fn   func(*Exporter) error
}

var stages = []stage{
	{"clean", (*Exporter).stageClean},
	{"copy_assets", (*Exporter).stageCopyAssets},
	{"copy_static", (*Exporter).stageCopyStatic},
	{"generate_nav", (*Exporter).stageGenerateNav},
	{"build_index", (*Exporter).stageBuildIndex},
	{"save_pages", (*Exporter).stageSavePages},
	{"special_pages", (*Exporter).stageSpecialPages},
	{"write_meta", (*Exporter).stageWriteMeta},
}

// Export runs every stage in order, stopping at the first error. The
// returned report is complete either way.
func (e *Exporter) Export() (*Report, error) {
	report := NewReport()
	slog.Info("Starting site export", logfields.BuildID(report.BuildID))

	for _, st := range stages {
		t0 := time.Now()
		err := st.fn(e)
		dur := time.Since(t0)

		report.recordStage(st.name, dur)
		e.recorder.ObserveStageDuration(st.name, dur)
		slog.Debug("Stage finished", logfields.Stage(st.name), logfields.DurationMS(float64(dur.Milliseconds())))

		if err != nil {
			report.finish(fmt.Errorf("stage %s: %w", st.name, err))
			e.recorder.IncBuildOutcome(OutcomeFailed)
			return report, fmt.Errorf("stage %s: %w", st.name, err)
		}
	}

	if e.result != nil {
		report.Pages = e.result.Stats.Resolved
		report.SkippedNotFound = e.result.Stats.SkippedNotFound
		report.SkippedFiltered = e.result.Stats.SkippedFiltered
		e.recorder.AddArticles(metrics.OutcomeResolved, e.result.Stats.Resolved)
		e.recorder.AddArticles(metrics.OutcomeNotFound, e.result.Stats.SkippedNotFound)
		e.recorder.AddArticles(metrics.OutcomeFiltered, e.result.Stats.SkippedFiltered)
	}

	report.finish(nil)
	e.recorder.ObserveBuildDuration(report.Duration)
	e.recorder.IncBuildOutcome(OutcomeSuccess)

	slog.Info("Site export finished",
		logfields.BuildID(report.BuildID),
		slog.Int("pages", report.Pages),
		logfields.DurationMS(float64(report.Duration.Milliseconds())))
	return report, nil
}

func (e *Exporter) stageClean() error { return e.writer.Clean() }

func (e *Exporter) stageCopyAssets() error {
	return e.writer.CopyTree(e.cfg.Content.Assets, "assets")
}

func (e *Exporter) stageCopyStatic() error {
	return e.writer.CopyTree(e.cfg.Content.Static, "")
}

func (e *Exporter) stageGenerateNav() error {
	e.templater.GenerateNav(e.games)
	return nil
}

func (e *Exporter) stageBuildIndex() error {
	result, err := e.builder.Build()
	if err != nil {
		return err
	}
	e.result = result
	e.templater.SetMenu(result.Menu)
	return nil
}

func (e *Exporter) stageSavePages() error {
	for _, article := range e.result.Articles {
		if err := e.writer.SavePage(article); err != nil {
			return err
		}
	}
	return nil
}

// stageSpecialPages writes each game's home page (from the game's
// index.md) and its 404 page.
func (e *Exporter) stageSpecialPages() error {
	for _, game := range e.games {
		page, err := e.markdown.Resolve(game.ID, "index")
		if content.IsNotFound(err) {
			slog.Warn("Game has no home page", logfields.Game(game.ID))
			continue
		}
		if err != nil {
			return err
		}

		homeSlug, err := slug.New(game.ID, "index")
		if err != nil {
			return err
		}

		title := page.Title()
		if title == "" {
			title = "Home"
		}
		home := &index.Article{
			ID:      "index",
			Content: page.Content,
			Title:   title,
			Slug:    homeSlug,
			File:    homeSlug.SourcePath(),
			Meta:    page.Meta,
		}
		if err := e.writer.SavePage(home); err != nil {
			return err
		}

		notFoundSlug, err := slug.New(game.ID, "404")
		if err != nil {
			return err
		}
		notFound := &index.Article{
			ID:      "404",
			Content: e.templater.NotFoundContent(),
			Title:   "Page not found",
			Slug:    notFoundSlug,
			Meta:    map[string]any{},
		}
		if err := e.writer.SavePage(notFound); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) stageWriteMeta() error {
	if err := e.writer.WriteMenu(e.result.Menu); err != nil {
		return err
	}
	if err := e.writer.WriteIndex(e.result.Index); err != nil {
		return err
	}
	return e.writer.WriteGames(e.games)
}
