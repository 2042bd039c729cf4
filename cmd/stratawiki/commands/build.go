package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Badpoolinator/strata-wiki/internal/history"
	"github.com/Badpoolinator/strata-wiki/internal/linkcheck"
	"github.com/Badpoolinator/strata-wiki/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Check bool `help:"Run the internal link check after a successful build"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	exporter, err := site.NewExporter(cfg, nil)
	if err != nil {
		return err
	}

	report, exportErr := exporter.Export()
	if report != nil {
		recordHistory(cfg.History.Path, report)
	}
	if exportErr != nil {
		return exportErr
	}

	fmt.Printf("Build %s finished: %d pages in %s (%d not found, %d filtered)\n",
		report.BuildID, report.Pages, report.Duration.Round(timePrecision),
		report.SkippedNotFound, report.SkippedFiltered)

	if b.Check {
		broken, err := linkcheck.NewChecker(cfg.Output.Directory).Run()
		if err != nil {
			return err
		}
		for _, link := range broken {
			fmt.Println(link)
		}
		if len(broken) > 0 {
			return fmt.Errorf("%d broken internal links", len(broken))
		}
	}
	return nil
}

// recordHistory appends the report to the build history. A history
// failure never fails the build itself.
func recordHistory(path string, report *site.Report) {
	store, err := history.Open(path)
	if err != nil {
		slog.Warn("Build history unavailable", slog.String("error", err.Error()))
		return
	}
	defer store.Close()
	if err := store.Append(context.Background(), report); err != nil {
		slog.Warn("Failed to record build report", slog.String("error", err.Error()))
	}
}
