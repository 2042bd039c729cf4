// Package commands defines the stratawiki CLI.
package commands

import (
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/Badpoolinator/strata-wiki/internal/config"
)

// timePrecision rounds durations in user-facing output.
const timePrecision = time.Millisecond

// Global carries state shared across subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition and global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"config.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Build the site into the output directory"`
	Init    InitCmd    `cmd:"" help:"Initialize a new configuration file"`
	Fetch   FetchCmd   `cmd:"" help:"Clone or update the content repository"`
	Preview PreviewCmd `cmd:"" help:"Serve the built site locally"`
	Check   CheckCmd   `cmd:"" help:"Verify internal links in the built site"`
	History HistoryCmd `cmd:"" help:"Show recent build reports"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

func loadConfig(root *CLI) (*config.Config, error) {
	return config.Load(root.Config)
}
