package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.False(t, had)
	require.Empty(t, fm)
	require.Equal(t, input, body)
}

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\ntitle: Intro\n---\n# Title\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("title: Intro\n"), fm)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_EmptyFrontmatterBlock_SplitsAsHadWithEmptyFrontmatter(t *testing.T) {
	input := []byte("---\n---\n# Title\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Empty(t, fm)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	_, _, had, err := Split([]byte("---\ntitle: x\n# Title\n"))
	require.ErrorIs(t, err, ErrMissingClosingDelimiter)
	require.False(t, had)
}

func TestSplit_CRLF_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\r\ntitle: Intro\r\n---\r\n# Title\r\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("title: Intro\r\n"), fm)
	require.Equal(t, []byte("# Title\r\n"), body)
}

func TestParse_DecodesMetadataMap(t *testing.T) {
	meta, body, err := Parse([]byte("---\ntitle: Surf Guide\nfeatures:\n  - MOMENTUM\n---\nbody\n"))
	require.NoError(t, err)
	require.Equal(t, "Surf Guide", Title(meta))
	require.Equal(t, []byte("body\n"), body)

	features, err := Features(meta)
	require.NoError(t, err)
	require.Equal(t, []string{"MOMENTUM"}, features)
}

func TestParse_NoFrontmatter_EmptyMap(t *testing.T) {
	meta, body, err := Parse([]byte("just text\n"))
	require.NoError(t, err)
	require.NotNil(t, meta)
	require.Empty(t, meta)
	require.Equal(t, []byte("just text\n"), body)
}

func TestFeatures_MissingOrEmpty_Nil(t *testing.T) {
	features, err := Features(map[string]any{})
	require.NoError(t, err)
	require.Nil(t, features)

	features, err = Features(map[string]any{"features": nil})
	require.NoError(t, err)
	require.Nil(t, features)
}

func TestFeatures_NonStringElement_Errors(t *testing.T) {
	_, err := Features(map[string]any{"features": []any{"A", 3}})
	require.Error(t, err)

	_, err = Features(map[string]any{"features": "A"})
	require.Error(t, err)
}

func TestTitle_NonString_Empty(t *testing.T) {
	require.Equal(t, "", Title(map[string]any{"title": 7}))
	require.Equal(t, "", Title(map[string]any{}))
}
