package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Alias1177/PriceGuard/internal/config"
	"github.com/Alias1177/PriceGuard/internal/model"
)

// runFlags overrides environment configuration from the command line.
type runFlags struct {
	symbol     string
	start      string
	end        string
	source     string
	csvPath    string
	threshold  float64
	delay      time.Duration
	noInject   bool
	logLevel   string
	jsonOutput bool
}

func (f *runFlags) register(cmd *cobra.Command, cfg *config.Config) {
	fs := cmd.Flags()
	fs.StringVar(&f.symbol, "symbol", cfg.Symbol, "ticker symbol to fetch")
	fs.StringVar(&f.start, "start", cfg.StartDate.Format(model.DateLayout), "first date (YYYY-MM-DD)")
	fs.StringVar(&f.end, "end", cfg.EndDate.Format(model.DateLayout), "last date (YYYY-MM-DD)")
	fs.StringVar(&f.source, "source", cfg.DataSource, "data source: twelvedata or csv")
	fs.StringVar(&f.csvPath, "csv", cfg.CSVPath, "CSV file with date,reference,observed rows")
	fs.Float64Var(&f.threshold, "threshold", cfg.Threshold, "relative deviation tolerance")
	fs.DurationVar(&f.delay, "alert-delay", cfg.AlertDelay, "pause between inspected records (0 disables)")
	fs.BoolVar(&f.noInject, "no-inject", !cfg.InjectErrors, "do not inject synthetic errors into fetched data")
	fs.StringVar(&f.logLevel, "log-level", cfg.LogLevel, "log level")
	fs.BoolVar(&f.jsonOutput, "json", false, "print the result as JSON")
}

// apply copies explicitly set flags onto cfg.
func (f *runFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	fs := cmd.Flags()
	if fs.Changed("symbol") {
		cfg.Symbol = f.symbol
	}
	if fs.Changed("start") {
		t, err := model.ParseDate(f.start)
		if err != nil {
			return fmt.Errorf("--start: %w", err)
		}
		cfg.StartDate = t
	}
	if fs.Changed("end") {
		t, err := model.ParseDate(f.end)
		if err != nil {
			return fmt.Errorf("--end: %w", err)
		}
		cfg.EndDate = t
	}
	if fs.Changed("source") {
		cfg.DataSource = f.source
	}
	if fs.Changed("csv") {
		cfg.CSVPath = f.csvPath
		if !fs.Changed("source") {
			cfg.DataSource = config.SourceCSV
		}
	}
	if fs.Changed("threshold") {
		cfg.Threshold = f.threshold
	}
	if fs.Changed("alert-delay") {
		cfg.AlertDelay = f.delay
	}
	if fs.Changed("no-inject") {
		cfg.InjectErrors = !f.noInject
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	return nil
}
