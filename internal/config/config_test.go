package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	require.Equal(t, "pages", cfg.Content.Pages)
	require.Equal(t, "docs", cfg.Content.Docs)
	require.Equal(t, "assets", cfg.Content.Assets)
	require.Equal(t, "static", cfg.Content.Static)
	require.Equal(t, "templates", cfg.Content.Templates)
	require.Equal(t, "public", cfg.Output.Directory)
	require.Equal(t, ":8080", cfg.Preview.Addr)
	require.Equal(t, ".stratawiki/history.db", cfg.History.Path)
}

func TestLoad_OverridesFromFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
content:
  pages: wiki/pages
  docs: wiki/docs
output:
  directory: out
preview:
  addr: ":9999"
  metrics: true
`))
	require.NoError(t, err)

	require.Equal(t, "wiki/pages", cfg.Content.Pages)
	require.Equal(t, "wiki/docs", cfg.Content.Docs)
	require.Equal(t, "out", cfg.Output.Directory)
	require.Equal(t, ":9999", cfg.Preview.Addr)
	require.True(t, cfg.Preview.Metrics)
}

func TestLoad_MissingFile_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoad_MalformedYAML_Errors(t *testing.T) {
	_, err := Load(writeConfig(t, "content: ["))
	require.Error(t, err)
}

func TestLoad_RepoWithoutURL_Errors(t *testing.T) {
	_, err := Load(writeConfig(t, "content:\n  repo:\n    branch: main\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "content.repo")
}

func TestLoad_UnusableOutputDirectory_Errors(t *testing.T) {
	_, err := Load(writeConfig(t, "output:\n  directory: /\n"))
	require.Error(t, err)
}

func TestDefault_RoundTripsThroughMarshal(t *testing.T) {
	raw, err := Default().Marshal()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}
