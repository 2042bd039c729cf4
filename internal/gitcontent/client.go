// Package gitcontent keeps a local checkout of the wiki content
// repository in sync with its remote.
package gitcontent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/Badpoolinator/strata-wiki/internal/config"
	"github.com/Badpoolinator/strata-wiki/internal/logfields"
)

// Client clones or updates the configured content repository.
type Client struct {
	repo config.ContentRepo
}

// NewClient creates a client for the configured content repository.
// The configuration must carry a repository URL.
func NewClient(repo *config.ContentRepo) (*Client, error) {
	if repo == nil || repo.URL == "" {
		return nil, errors.New("no content repository configured")
	}
	return &Client{repo: *repo}, nil
}

// Dir returns the local checkout directory.
func (c *Client) Dir() string { return c.repo.Dir }

// Sync makes the local checkout match the remote branch: a fresh clone
// when the directory holds no repository, a fast-forward pull
// otherwise.
func (c *Client) Sync(ctx context.Context) error {
	if _, err := os.Stat(filepath.Join(c.repo.Dir, ".git")); err != nil {
		return c.clone(ctx)
	}
	return c.pull(ctx)
}

func (c *Client) clone(ctx context.Context) error {
	slog.Info("Cloning content repository",
		logfields.URL(c.repo.URL), logfields.Path(c.repo.Dir))

	opts := &git.CloneOptions{URL: c.repo.URL}
	if c.repo.Branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(c.repo.Branch)
		opts.SingleBranch = true
	}

	repository, err := git.PlainCloneContext(ctx, c.repo.Dir, false, opts)
	if err != nil {
		return fmt.Errorf("clone %s: %w", c.repo.URL, err)
	}
	logHead(repository, "Content repository cloned")
	return nil
}

func (c *Client) pull(ctx context.Context) error {
	repository, err := git.PlainOpen(c.repo.Dir)
	if err != nil {
		return fmt.Errorf("open %s: %w", c.repo.Dir, err)
	}
	wt, err := repository.Worktree()
	if err != nil {
		return fmt.Errorf("worktree: %w", err)
	}

	opts := &git.PullOptions{RemoteName: "origin", Force: true}
	if c.repo.Branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(c.repo.Branch)
		opts.SingleBranch = true
	}

	err = wt.PullContext(ctx, opts)
	switch {
	case errors.Is(err, git.NoErrAlreadyUpToDate):
		slog.Info("Content repository already up to date", logfields.Path(c.repo.Dir))
		return nil
	case err != nil:
		return fmt.Errorf("pull %s: %w", c.repo.URL, err)
	}
	logHead(repository, "Content repository updated")
	return nil
}

func logHead(repository *git.Repository, msg string) {
	if ref, err := repository.Head(); err == nil {
		slog.Info(msg, slog.String("commit", ref.Hash().String()[:8]))
		return
	}
	slog.Info(msg)
}
