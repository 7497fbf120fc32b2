package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Alias1177/PriceGuard/internal/alert"
	"github.com/Alias1177/PriceGuard/internal/api/twelvedata"
	"github.com/Alias1177/PriceGuard/internal/config"
	"github.com/Alias1177/PriceGuard/internal/detect"
	"github.com/Alias1177/PriceGuard/internal/model"
	"github.com/Alias1177/PriceGuard/internal/pipeline"
	"github.com/Alias1177/PriceGuard/internal/report"
	"github.com/Alias1177/PriceGuard/internal/simulate"
	"github.com/Alias1177/PriceGuard/internal/source"
)

func run(ctx context.Context, cfg *config.Config, jsonOutput bool, out io.Writer) error {
	series, err := acquire(ctx, cfg)
	if err != nil {
		return err
	}
	log.Info().Int("records", series.Len()).Str("source", cfg.DataSource).Msg("Loaded price series")

	sinks := alert.MultiSink{}
	if !jsonOutput {
		sinks = append(sinks, alert.WriterSink{W: out})
	}
	if cfg.TelegramEnabled() {
		tg, err := alert.NewTelegramSink(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Warn().Err(err).Msg("Telegram alerts disabled")
		} else {
			sinks = append(sinks, tg)
		}
	}

	p, err := pipeline.New(cfg.Threshold, sinks, alert.Every(cfg.AlertDelay))
	if err != nil {
		return err
	}

	if !jsonOutput {
		initial, err := detect.Detect(series, cfg.Threshold)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "Detected Errors:")
		if err := report.WriteDetections(out, initial); err != nil {
			return err
		}
		fmt.Fprintln(out, "\nReal-Time Alerts:")
	}
	res, err := p.Run(ctx, series)
	if err != nil {
		return err
	}

	if jsonOutput {
		return report.WriteJSON(out, res)
	}

	for _, d := range res.Correction.Unfilled {
		fmt.Fprintf(out, "Unfilled: %s has no trade price and no previous close\n", d.Format(model.DateLayout))
	}
	fmt.Fprintln(out)
	return report.WriteText(out, res.Summary)
}

// acquire loads the series from the configured source.
func acquire(ctx context.Context, cfg *config.Config) (model.Series, error) {
	switch cfg.DataSource {
	case config.SourceCSV:
		f, err := os.Open(cfg.CSVPath)
		if err != nil {
			return model.Series{}, fmt.Errorf("opening %s: %w", cfg.CSVPath, err)
		}
		defer f.Close()
		return source.LoadCSV(f)

	default:
		client := twelvedata.NewClient(twelvedata.ClientOptions{
			APIKey:         cfg.TwelveAPIKey,
			BaseURL:        cfg.TwelveURL,
			RequestTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
			RequestsPerSec: cfg.RequestsPerSec,
			MaxRetries:     cfg.MaxRetries,
		})
		candles, err := client.GetDailyCloses(ctx, cfg.Symbol, cfg.StartDate, cfg.EndDate)
		if err != nil {
			return model.Series{}, fmt.Errorf("fetch candles failed: %w", err)
		}
		series, err := source.FromCandles(candles)
		if err != nil {
			return model.Series{}, err
		}

		opts := cfg.Simulation
		if !cfg.InjectErrors {
			opts.Spikes, opts.Missing = 0, 0
		}
		return simulate.Tape(series, opts)
	}
}
