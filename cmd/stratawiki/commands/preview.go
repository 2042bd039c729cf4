package commands

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/Badpoolinator/strata-wiki/internal/metrics"
	"github.com/Badpoolinator/strata-wiki/internal/preview"
	"github.com/Badpoolinator/strata-wiki/internal/site"
)

// PreviewCmd implements the 'preview' command.
type PreviewCmd struct {
	Addr  string `help:"Listen address, overriding the configuration"`
	Build bool   `help:"Build the site before serving"`
}

func (p *PreviewCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if p.Addr != "" {
		cfg.Preview.Addr = p.Addr
	}

	var recorder metrics.Recorder
	var metricsHandler http.Handler
	if cfg.Preview.Metrics {
		prom := metrics.NewPrometheusRecorder()
		recorder = prom
		metricsHandler = prom.Handler()
	}

	if p.Build {
		exporter, err := site.NewExporter(cfg, recorder)
		if err != nil {
			return err
		}
		if _, err := exporter.Export(); err != nil {
			return err
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return preview.New(cfg, metricsHandler).Start(ctx)
}
