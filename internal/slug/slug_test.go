package slug

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_ValidPath_SplitsSegments(t *testing.T) {
	s, err := Parse("p2ce/reference/entities/logic_relay")
	require.NoError(t, err)
	require.Equal(t, []string{"p2ce", "reference", "entities", "logic_relay"}, s.Segments())
	require.Equal(t, "p2ce", s.Game())
	require.Equal(t, "reference", s.Category())
	require.Equal(t, "logic_relay", s.Base())
}

func TestParse_EmptyInput_ReturnsInvalidSlug(t *testing.T) {
	for _, input := range []string{"", "/", "//"} {
		_, err := Parse(input)
		require.Error(t, err, "input %q", input)
		var ise *InvalidSlugError
		require.ErrorAs(t, err, &ise)
	}
}

func TestParse_TraversalSegments_ReturnsInvalidSlug(t *testing.T) {
	for _, input := range []string{"..", "game/../etc", "game/./x", "a//b"} {
		_, err := Parse(input)
		require.Error(t, err, "input %q", input)
		var ise *InvalidSlugError
		require.ErrorAs(t, err, &ise)
	}
}

func TestSourcePath_AddsRootAndExtension(t *testing.T) {
	s, err := Parse("momentum/guides/movement/surf")
	require.NoError(t, err)
	require.Equal(t, "pages/momentum/guides/movement/surf.md", s.SourcePath())
}

func TestURL_JoinsSegmentsWithoutExtension(t *testing.T) {
	s, err := Parse("p2ce/reference/entities/logic_relay")
	require.NoError(t, err)
	require.Equal(t, "p2ce/reference/entities/logic_relay", s.URL())
	require.Equal(t, "p2ce/reference/entities", s.Dir())
}

func TestURL_RoundTrip_RecoversEqualSlug(t *testing.T) {
	inputs := []string{
		"p2ce",
		"p2ce/reference",
		"momentum/guides/movement/surf",
		"game/category/topic/article",
	}
	for _, input := range inputs {
		s, err := Parse(input)
		require.NoError(t, err)

		again, err := Parse(s.URL())
		require.NoError(t, err)
		require.True(t, s.Equal(again), "round trip for %q", input)
	}
}

func TestParse_LeadingTrailingSlashes_Normalized(t *testing.T) {
	a, err := Parse("/p2ce/guides/")
	require.NoError(t, err)
	b, err := Parse("p2ce/guides")
	require.NoError(t, err)
	require.True(t, a.Equal(b))
}

func TestEqual_DifferentSegments_NotEqual(t *testing.T) {
	a, err := Parse("p2ce/guides")
	require.NoError(t, err)
	b, err := Parse("p2ce/reference")
	require.NoError(t, err)
	c, err := Parse("p2ce/guides/extra")
	require.NoError(t, err)

	require.False(t, a.Equal(b))
	require.False(t, a.Equal(c))
}

func TestMarshalJSON_EmitsURLString(t *testing.T) {
	s, err := Parse("p2ce/guides/intro")
	require.NoError(t, err)
	out, err := s.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `"p2ce/guides/intro"`, string(out))
}
