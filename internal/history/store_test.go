package history

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Badpoolinator/strata-wiki/internal/site"
)

func report(buildID, outcome string, pages int) *site.Report {
	return &site.Report{
		BuildID:   buildID,
		StartedAt: time.Now(),
		Duration:  42 * time.Millisecond,
		Pages:     pages,
		Outcome:   outcome,
	}
}

func TestAppendAndRecent(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Append(ctx, report("b1", site.OutcomeSuccess, 10)))
	require.NoError(t, store.Append(ctx, report("b2", site.OutcomeFailed, 0)))
	require.NoError(t, store.Append(ctx, report("b3", site.OutcomeSuccess, 12)))

	entries, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// Newest first.
	require.Equal(t, "b3", entries[0].Report.BuildID)
	require.Equal(t, "b2", entries[1].Report.BuildID)
	require.Equal(t, 12, entries[0].Report.Pages)
}

func TestGetByBuildID(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Append(ctx, report("b1", site.OutcomeSuccess, 5)))

	entry, err := store.Get(ctx, "b1")
	require.NoError(t, err)
	require.Equal(t, site.OutcomeSuccess, entry.Report.Outcome)
	require.Equal(t, 5, entry.Report.Pages)

	_, err = store.Get(ctx, "missing")
	require.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestOpenCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")
	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Append(context.Background(), report("b1", site.OutcomeSuccess, 1)))
	entries, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
