// Package index builds the derived article tree and navigation menus
// from the catalogue.
//
// The Index mirrors the catalogue exactly (game, category, topic) plus
// every resolved article; the Menu is the flattened per-category
// navigation list assembled in lock-step with it. Both are built once
// per run, handed read-only to the site writer, and rebuilt wholesale
// on the next run.
package index

import (
	"github.com/Badpoolinator/strata-wiki/internal/catalogue"
	"github.com/Badpoolinator/strata-wiki/internal/slug"
)

// Article is one fully resolved piece of content.
type Article struct {
	ID      string         `json:"id"`
	Content string         `json:"content"`
	Title   string         `json:"title"`
	Slug    slug.Slug      `json:"slug"`
	File    string         `json:"file"`
	Meta    map[string]any `json:"meta"`
}

// TopicIndex holds a topic's resolved articles keyed by id. The
// unexported order preserves enumeration order for deterministic
// iteration; the JSON artifact keys articles by id as the client
// expects.
type TopicIndex struct {
	ID       string              `json:"id"`
	Meta     catalogue.Topic     `json:"meta"`
	Articles map[string]*Article `json:"articles"`

	order []string
}

// OrderedArticles returns the topic's articles in enumeration order.
func (t *TopicIndex) OrderedArticles() []*Article {
	out := make([]*Article, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.Articles[id])
	}
	return out
}

func (t *TopicIndex) add(a *Article) {
	t.Articles[a.ID] = a
	t.order = append(t.order, a.ID)
}

// CategoryIndex groups a category's topics keyed by id.
type CategoryIndex struct {
	ID     string                 `json:"id"`
	Meta   catalogue.Category     `json:"meta"`
	Topics map[string]*TopicIndex `json:"topics"`
}

// GameIndex is one game's complete resolved tree.
type GameIndex struct {
	ID         string                    `json:"id"`
	Meta       *catalogue.Game           `json:"meta"`
	Categories map[string]*CategoryIndex `json:"categories"`
}

// Index is the full derived tree, keyed by game id.
type Index map[string]*GameIndex

// Menu entry kinds.
const (
	EntryTopic   = "topic"
	EntryArticle = "article"
)

// MenuItem is one sidebar navigation entry. Within a category the
// topic entry always precedes that topic's article entries.
type MenuItem struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	Text string `json:"text"`
	Link string `json:"link"`
}

// Menu maps game id, then category id, to the ordered sidebar entries.
type Menu map[string]map[string][]MenuItem

// Stats counts what happened to article candidates during a build.
type Stats struct {
	Resolved        int
	SkippedNotFound int
	SkippedFiltered int
}

// Result is the output of one index build.
type Result struct {
	Index    Index
	Menu     Menu
	Articles []*Article // every included article, in walk order
	Stats    Stats
}
