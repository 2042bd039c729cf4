package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/Badpoolinator/strata-wiki/internal/gitcontent"
)

// FetchCmd implements the 'fetch' command.
type FetchCmd struct{}

func (f *FetchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	client, err := gitcontent.NewClient(cfg.Content.Repo)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return client.Sync(ctx)
}
