package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Badpoolinator/strata-wiki/internal/render"
)

const typedocFixture = `{
	"name": "p2ce-script",
	"namespaces": [
		{
			"name": "game",
			"comment": {"description": "Root game scripting namespace.", "blockTags": [], "modifierTags": []},
			"source": {"path": "shared", "url": "https://example.org/src/game.ts"},
			"namespaces": [
				{
					"name": "ents",
					"comment": {"description": "Entity helpers.", "blockTags": [], "modifierTags": []},
					"source": {"path": "p2ce", "url": ""},
					"namespaces": [],
					"functions": [
						{
							"name": "createEntity",
							"signatures": [
								{
									"name": "createEntity",
									"comment": {
										"description": "Spawns an entity by classname.",
										"blockTags": [
											{"name": "example", "text": "const e = game.ents.createEntity(\"prop_physics\");"},
											{"name": "see", "text": "game.ents.removeEntity"}
										],
										"modifierTags": []
									},
									"parameters": [
										{
											"name": "classname",
											"comment": {"description": "Entity classname.", "blockTags": [], "modifierTags": []},
											"optional": false,
											"rest": false,
											"type": {"kind": "intrinsic", "type": "string"}
										},
										{
											"name": "options",
											"comment": {"description": "", "blockTags": [], "modifierTags": []},
											"optional": true,
											"rest": false,
											"type": {"kind": "reference", "name": "p2ce-script.SpawnOptions"}
										}
									],
									"returnType": {"kind": "reference", "name": "p2ce-script.Entity"}
								}
							]
						},
						{
							"name": "killAll",
							"signatures": [
								{
									"name": "killAll",
									"comment": {
										"description": "",
										"blockTags": [{"name": "deprecated", "text": "Use removeEntity instead."}],
										"modifierTags": []
									},
									"parameters": [],
									"returnType": {"kind": "intrinsic", "type": "void"}
								}
							]
						}
					],
					"variables": [
						{
							"name": "MAX_ENTITIES",
							"comment": {"description": "Engine entity limit.", "blockTags": [], "modifierTags": []},
							"type": {"kind": "intrinsic", "type": "number"}
						}
					]
				}
			],
			"functions": [],
			"variables": []
		}
	]
}`

func writeTypedocDump(t *testing.T, docsRoot, cataloguePath, dump string) {
	t.Helper()
	dir := filepath.Join(docsRoot, filepath.FromSlash(cataloguePath))
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, TypedocFileName), []byte(dump), 0o600))
}

func TestTypedocSource_Resolve_SynthesizesNamespacePage(t *testing.T) {
	docs := t.TempDir()
	writeTypedocDump(t, docs, "p2ce/reference/scripting", typedocFixture)

	src := NewTypedocSource(docs, render.New(nil))
	page, err := src.Resolve("p2ce/reference/scripting", "game.ents")
	require.NoError(t, err)

	require.Equal(t, "game.ents", page.Title())
	require.Contains(t, page.Content, "Entity helpers.")
	// Signature code block with project prefix stripped.
	require.Contains(t, page.Content, "game.ents.createEntity(classname: string, options?: SpawnOptions): Entity")
	// Parameter table row for the intrinsic parameter.
	require.Contains(t, page.Content, "<td><code>classname</code></td>")
	require.Contains(t, page.Content, "Entity classname.")
	// Optional reference-typed parameter is marked and backticked.
	require.Contains(t, page.Content, "<code>SpawnOptions</code> (optional)")
	// Deprecation notice for killAll.
	require.Contains(t, page.Content, "DEPRECATED: Use removeEntity instead.")
	// Variables table.
	require.Contains(t, page.Content, "MAX_ENTITIES")
	require.Contains(t, page.Content, "Engine entity limit.")

	features, err := page.Features()
	require.NoError(t, err)
	require.Equal(t, []string{"P2CE"}, features)
}

func TestTypedocSource_Resolve_SharedNamespace_NoFeatures(t *testing.T) {
	docs := t.TempDir()
	writeTypedocDump(t, docs, "p2ce/reference/scripting", typedocFixture)

	src := NewTypedocSource(docs, render.New(nil))
	page, err := src.Resolve("p2ce/reference/scripting", "game")
	require.NoError(t, err)

	features, err := page.Features()
	require.NoError(t, err)
	require.Nil(t, features)
	require.Contains(t, page.Content, "View Source")
}

func TestTypedocSource_Resolve_UnknownNamespace_NotFound(t *testing.T) {
	docs := t.TempDir()
	writeTypedocDump(t, docs, "p2ce/reference/scripting", typedocFixture)

	src := NewTypedocSource(docs, render.New(nil))
	_, err := src.Resolve("p2ce/reference/scripting", "game.missing")
	require.True(t, IsNotFound(err))
}

func TestTypedocSource_Resolve_TypePages_NotFound(t *testing.T) {
	docs := t.TempDir()
	writeTypedocDump(t, docs, "p2ce/reference/scripting", typedocFixture)

	src := NewTypedocSource(docs, render.New(nil))
	_, err := src.Resolve("p2ce/reference/scripting", "types/Entity")
	require.True(t, IsNotFound(err))
}

func TestTypedocSource_List_ParentsBeforeChildren_WithFeatures(t *testing.T) {
	docs := t.TempDir()
	writeTypedocDump(t, docs, "p2ce/reference/scripting", typedocFixture)

	src := NewTypedocSource(docs, render.New(nil))
	items, err := src.List("p2ce/reference/scripting")
	require.NoError(t, err)
	require.Len(t, items, 2)

	require.Equal(t, "game", items[0].ID)
	require.Equal(t, "game.ents", items[1].ID)
	require.Nil(t, items[0].Meta["features"])
	require.Equal(t, []any{"P2CE"}, items[1].Meta["features"])
}

func TestTypedocSource_DumpParsedOncePerProcess(t *testing.T) {
	docs := t.TempDir()
	writeTypedocDump(t, docs, "p2ce/reference/scripting", typedocFixture)

	src := NewTypedocSource(docs, render.New(nil))
	_, err := src.Resolve("p2ce/reference/scripting", "game")
	require.NoError(t, err)

	// Rewrite the dump with different content; the memoized project
	// must keep serving the original parse (no staleness check).
	writeTypedocDump(t, docs, "p2ce/reference/scripting", `{"name":"other","namespaces":[]}`)

	page, err := src.Resolve("p2ce/reference/scripting", "game")
	require.NoError(t, err)
	require.Contains(t, page.Content, "Root game scripting namespace.")
}

func TestTypedocSource_MalformedDump_IsFatal(t *testing.T) {
	docs := t.TempDir()
	writeTypedocDump(t, docs, "p2ce/reference/scripting", `{not json`)

	src := NewTypedocSource(docs, render.New(nil))
	_, err := src.Resolve("p2ce/reference/scripting", "game")
	require.Error(t, err)
	require.False(t, IsNotFound(err))
}
