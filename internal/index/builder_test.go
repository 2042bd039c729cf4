package index

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Badpoolinator/strata-wiki/internal/catalogue"
	"github.com/Badpoolinator/strata-wiki/internal/content"
	"github.com/Badpoolinator/strata-wiki/internal/render"
)

func writeArticle(t *testing.T, root, rel, data string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o750))
	require.NoError(t, os.WriteFile(full, []byte(data), 0o600))
}

func markdownSources(root string) map[catalogue.SourceKind]content.Source {
	return map[catalogue.SourceKind]content.Source{
		catalogue.SourceMarkdown: content.NewMarkdownSource(root, render.New(nil)),
	}
}

func singleTopicGame(features []string) *catalogue.Game {
	return &catalogue.Game{
		ID:       "g",
		Name:     "Game",
		Features: features,
		Categories: []catalogue.Category{
			{ID: "c", Label: "Category", Topics: []catalogue.Topic{
				{ID: "t", Name: "Topic"},
			}},
		},
	}
}

func TestBuild_SingleArticle_IndexAndMenu(t *testing.T) {
	root := t.TempDir()
	writeArticle(t, root, "g/c/t/a.md", "# A page\n")

	builder := NewBuilder([]*catalogue.Game{singleTopicGame(nil)}, markdownSources(root))
	result, err := builder.Build()
	require.NoError(t, err)

	article := result.Index["g"].Categories["c"].Topics["t"].Articles["a"]
	require.NotNil(t, article)
	// No frontmatter title: the raw id is the fallback.
	require.Equal(t, "a", article.Title)
	require.Equal(t, "g/c/t/a", article.Slug.URL())
	require.Equal(t, "pages/g/c/t/a.md", article.File)

	require.Equal(t, []MenuItem{
		{Type: "topic", ID: "t", Text: "Topic", Link: "g/c/t"},
		{Type: "article", ID: "t_a", Text: "a", Link: "g/c/t/a"},
	}, result.Menu["g"]["c"])

	require.Equal(t, 1, result.Stats.Resolved)
}

func TestBuild_FeatureFilter_IncludedIffGameSupportsAll(t *testing.T) {
	root := t.TempDir()
	writeArticle(t, root, "foo/c/t/both.md", "---\nfeatures: [A]\n---\nx\n")
	writeArticle(t, root, "foo/c/t/missing.md", "---\nfeatures: [A, C]\n---\nx\n")
	writeArticle(t, root, "foo/c/t/none.md", "x\n")

	game := singleTopicGame([]string{"A", "B"})
	game.ID = "foo"

	builder := NewBuilder([]*catalogue.Game{game}, markdownSources(root))
	result, err := builder.Build()
	require.NoError(t, err)

	articles := result.Index["foo"].Categories["c"].Topics["t"].Articles
	require.Contains(t, articles, "both")
	require.Contains(t, articles, "none")
	require.NotContains(t, articles, "missing")
	require.Equal(t, 1, result.Stats.SkippedFiltered)

	// The filtered article is absent from the menu as well.
	for _, entry := range result.Menu["foo"]["c"] {
		require.NotEqual(t, "t_missing", entry.ID)
	}
}

func TestBuild_FeatureFiltered_ExcludedFromMenuButTopicRemains(t *testing.T) {
	root := t.TempDir()
	writeArticle(t, root, "g/c/t/a.md", "---\nfeatures: [X]\n---\nx\n")

	builder := NewBuilder([]*catalogue.Game{singleTopicGame(nil)}, markdownSources(root))
	result, err := builder.Build()
	require.NoError(t, err)

	require.Empty(t, result.Index["g"].Categories["c"].Topics["t"].Articles)
	require.Equal(t, []MenuItem{
		{Type: "topic", ID: "t", Text: "Topic", Link: "g/c/t"},
	}, result.Menu["g"]["c"])
}

func TestBuild_TopicEntryPrecedesItsArticles(t *testing.T) {
	root := t.TempDir()
	writeArticle(t, root, "g/c/t1/a.md", "x\n")
	writeArticle(t, root, "g/c/t1/b.md", "x\n")
	writeArticle(t, root, "g/c/t2/c.md", "x\n")

	game := &catalogue.Game{
		ID: "g", Name: "Game",
		Categories: []catalogue.Category{
			{ID: "c", Label: "C", Topics: []catalogue.Topic{
				{ID: "t1", Name: "T1"},
				{ID: "t2", Name: "T2"},
			}},
		},
	}

	builder := NewBuilder([]*catalogue.Game{game}, markdownSources(root))
	result, err := builder.Build()
	require.NoError(t, err)

	ids := make([]string, 0)
	for _, entry := range result.Menu["g"]["c"] {
		ids = append(ids, entry.ID)
	}
	require.Equal(t, []string{"t1", "t1_a", "t1_b", "t2", "t2_c"}, ids)
}

// phantomSource lists candidates its Resolve cannot find.
type phantomSource struct {
	inner   content.Source
	phantom string
}

func (p *phantomSource) Resolve(path, name string) (*render.Page, error) {
	if name == p.phantom {
		return nil, &content.NotFoundError{Path: path, Name: name}
	}
	return p.inner.Resolve(path, name)
}

func (p *phantomSource) List(path string) ([]content.Item, error) {
	items, err := p.inner.List(path)
	if err != nil {
		return nil, err
	}
	return append(items, content.Item{ID: p.phantom, Meta: map[string]any{}}), nil
}

func TestBuild_NotFoundCandidate_SkippedWithoutAborting(t *testing.T) {
	root := t.TempDir()
	writeArticle(t, root, "g/c/t/real.md", "x\n")

	sources := map[catalogue.SourceKind]content.Source{
		catalogue.SourceMarkdown: &phantomSource{
			inner:   content.NewMarkdownSource(root, render.New(nil)),
			phantom: "ghost",
		},
	}

	builder := NewBuilder([]*catalogue.Game{singleTopicGame(nil)}, sources)
	result, err := builder.Build()
	require.NoError(t, err)

	require.Contains(t, result.Index["g"].Categories["c"].Topics["t"].Articles, "real")
	require.NotContains(t, result.Index["g"].Categories["c"].Topics["t"].Articles, "ghost")
	require.Equal(t, 1, result.Stats.SkippedNotFound)

	for _, entry := range result.Menu["g"]["c"] {
		require.NotEqual(t, "t_ghost", entry.ID)
	}
}

func TestBuild_MissingTopicDirectory_Aborts(t *testing.T) {
	builder := NewBuilder([]*catalogue.Game{singleTopicGame(nil)}, markdownSources(t.TempDir()))

	_, err := builder.Build()
	require.Error(t, err)
	require.Contains(t, err.Error(), "g/c/t")
}

func TestBuild_MissingAdapterKind_Aborts(t *testing.T) {
	game := singleTopicGame(nil)
	game.Categories[0].Topics[0].Type = catalogue.SourceTypedoc

	builder := NewBuilder([]*catalogue.Game{game}, markdownSources(t.TempDir()))
	_, err := builder.Build()
	require.Error(t, err)
	require.Contains(t, err.Error(), "typedoc")
}

func TestBuild_MalformedFeaturesMetadata_Aborts(t *testing.T) {
	root := t.TempDir()
	writeArticle(t, root, "g/c/t/a.md", "---\nfeatures: nope\n---\nx\n")

	builder := NewBuilder([]*catalogue.Game{singleTopicGame(nil)}, markdownSources(root))
	_, err := builder.Build()
	require.Error(t, err)
	require.False(t, errors.Is(err, os.ErrNotExist))
}

func TestBuild_Deterministic_RepeatedRunsIdentical(t *testing.T) {
	root := t.TempDir()
	writeArticle(t, root, "g/c/t/a.md", "---\ntitle: Alpha\n---\nx\n")
	writeArticle(t, root, "g/c/t/b.md", "x\n")

	builder := NewBuilder([]*catalogue.Game{singleTopicGame(nil)}, markdownSources(root))

	first, err := builder.Build()
	require.NoError(t, err)
	second, err := builder.Build()
	require.NoError(t, err)

	require.Equal(t, first.Menu, second.Menu)
	require.Equal(t, first.Stats, second.Stats)
	require.Equal(t, first.Slugs(), second.Slugs())
}
