package commands

import (
	"context"
	"fmt"

	"github.com/Badpoolinator/strata-wiki/internal/history"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit int `help:"Number of builds to show" default:"10"`
}

func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(context.Background(), h.Limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No recorded builds")
		return nil
	}

	for _, entry := range entries {
		report := entry.Report
		fmt.Printf("%s  %-7s  %4d pages  %8s  %s\n",
			entry.RecordedAt.Format("2006-01-02 15:04:05"),
			report.Outcome, report.Pages,
			report.Duration.Round(timePrecision), report.BuildID)
		if report.Error != "" {
			fmt.Printf("    error: %s\n", report.Error)
		}
	}
	return nil
}
