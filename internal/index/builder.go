package index

import (
	"fmt"
	"log/slog"

	"github.com/Badpoolinator/strata-wiki/internal/catalogue"
	"github.com/Badpoolinator/strata-wiki/internal/content"
	"github.com/Badpoolinator/strata-wiki/internal/logfields"
	"github.com/Badpoolinator/strata-wiki/internal/slug"
)

// Builder walks the catalogue and assembles the Index and Menu.
//
// The walk is strictly sequential in declared order: menu ordering is
// presentation-sensitive and must match enumeration order exactly.
type Builder struct {
	games   []*catalogue.Game
	sources map[catalogue.SourceKind]content.Source
}

// NewBuilder creates a builder over the loaded catalogue. The sources
// map provides one adapter per source kind; every kind
// referenced by a topic must be present.
func NewBuilder(games []*catalogue.Game, sources map[catalogue.SourceKind]content.Source) *Builder {
	return &Builder{games: games, sources: sources}
}

// Build resolves every candidate article and produces the Index, Menu,
// and flat article list. A candidate that is missing (NotFound) or
// fails the feature filter is skipped silently; any other adapter
// error is a fatal configuration error and aborts the build.
func (b *Builder) Build() (*Result, error) {
	result := &Result{Index: Index{}, Menu: Menu{}}

	for _, game := range b.games {
		gameIndex := &GameIndex{ID: game.ID, Meta: game, Categories: map[string]*CategoryIndex{}}
		result.Index[game.ID] = gameIndex
		result.Menu[game.ID] = map[string][]MenuItem{}

		for _, category := range game.Categories {
			categoryIndex := &CategoryIndex{ID: category.ID, Meta: category, Topics: map[string]*TopicIndex{}}
			gameIndex.Categories[category.ID] = categoryIndex

			menuCategory := make([]MenuItem, 0, len(category.Topics))

			for _, topic := range category.Topics {
				topicIndex := &TopicIndex{ID: topic.ID, Meta: topic, Articles: map[string]*Article{}}
				categoryIndex.Topics[topic.ID] = topicIndex

				cataloguePath := game.ID + "/" + category.ID + "/" + topic.ID

				// The topic entry goes into the menu before any of its
				// articles.
				menuCategory = append(menuCategory, MenuItem{
					Type: EntryTopic,
					ID:   topic.ID,
					Text: topic.Name,
					Link: cataloguePath,
				})

				source, ok := b.sources[topic.Kind()]
				if !ok {
					return nil, fmt.Errorf("topic %s: no source adapter for kind %q", cataloguePath, topic.Kind())
				}

				items, err := source.List(cataloguePath)
				if err != nil {
					return nil, fmt.Errorf("enumerate topic %s: %w", cataloguePath, err)
				}

				for _, item := range items {
					article, skip, err := b.resolveArticle(game, source, cataloguePath, item.ID)
					if err != nil {
						return nil, err
					}
					switch skip {
					case skipNotFound:
						result.Stats.SkippedNotFound++
						continue
					case skipFiltered:
						result.Stats.SkippedFiltered++
						continue
					}

					topicIndex.add(article)
					menuCategory = append(menuCategory, MenuItem{
						Type: EntryArticle,
						ID:   topic.ID + "_" + article.ID,
						Text: article.Title,
						Link: article.Slug.URL(),
					})
					result.Articles = append(result.Articles, article)
					result.Stats.Resolved++
				}
			}

			result.Menu[game.ID][category.ID] = menuCategory
		}
	}

	slog.Info("Index built",
		slog.Int("games", len(b.games)),
		slog.Int("articles", result.Stats.Resolved),
		slog.Int("skipped_not_found", result.Stats.SkippedNotFound),
		slog.Int("skipped_filtered", result.Stats.SkippedFiltered))

	return result, nil
}

// Skip reasons for article candidates.
const (
	skipNone = iota
	skipNotFound
	skipFiltered
)

// resolveArticle resolves one candidate. A skipped candidate (missing
// source, or the game does not support every feature the article
// requires) is reported via the skip reason, not an error.
func (b *Builder) resolveArticle(game *catalogue.Game, source content.Source, cataloguePath, id string) (*Article, int, error) {
	page, err := source.Resolve(cataloguePath, id)
	if content.IsNotFound(err) {
		slog.Debug("Article not found, skipping",
			logfields.Game(game.ID), logfields.Article(id), logfields.Path(cataloguePath))
		return nil, skipNotFound, nil
	}
	if err != nil {
		return nil, skipNone, fmt.Errorf("resolve article %s/%s: %w", cataloguePath, id, err)
	}

	features, err := page.Features()
	if err != nil {
		return nil, skipNone, fmt.Errorf("article %s/%s: %w", cataloguePath, id, err)
	}
	if !game.SupportsAll(features) {
		slog.Debug("Article excluded by feature filter",
			logfields.Game(game.ID), logfields.Article(id),
			slog.Any("required", features))
		return nil, skipFiltered, nil
	}

	title := page.Title()
	if title == "" {
		title = id
	}

	return &Article{
		ID:      id,
		Content: page.Content,
		Title:   title,
		Slug:    page.Slug,
		File:    page.Slug.SourcePath(),
		Meta:    page.Meta,
	}, skipNone, nil
}

// Slugs of the articles in walk order; used by tests and diagnostics.
func (r *Result) Slugs() []slug.Slug {
	out := make([]slug.Slug, 0, len(r.Articles))
	for _, a := range r.Articles {
		out = append(out, a.Slug)
	}
	return out
}
