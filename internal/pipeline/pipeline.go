// Package pipeline runs detection, alerting, correction and reporting over one series.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/PriceGuard/internal/alert"
	"github.com/Alias1177/PriceGuard/internal/correct"
	"github.com/Alias1177/PriceGuard/internal/detect"
	"github.com/Alias1177/PriceGuard/internal/model"
	"github.com/Alias1177/PriceGuard/internal/report"
)

// Result carries every stage's output.
type Result struct {
	RunID      string             `json:"run_id"`
	Threshold  float64            `json:"threshold"`
	Initial    detect.Detection   `json:"-"`
	Alerts     []model.Alert      `json:"alerts"`
	Correction correct.Correction `json:"-"`
	Remaining  detect.Detection   `json:"-"`
	Summary    model.Summary      `json:"summary"`
}

// Pipeline wires the stages for a fixed threshold.
type Pipeline struct {
	threshold float64
	emitter   *alert.Emitter
	corrector *correct.Corrector
}

// New builds a pipeline. sink may be nil when alerts only need to be collected.
func New(threshold float64, sink alert.Sink, pacer alert.Pacer) (*Pipeline, error) {
	if pacer == nil {
		pacer = alert.NoDelay()
	}
	emitter, err := alert.NewEmitter(threshold, sink, alert.WithPacer(pacer))
	if err != nil {
		return nil, err
	}
	corrector, err := correct.New(threshold)
	if err != nil {
		return nil, err
	}
	return &Pipeline{threshold: threshold, emitter: emitter, corrector: corrector}, nil
}

// Run executes detect → alert → correct → detect → summarize.
// Data anomalies never fail the run; only cancellation or invalid input does.
func (p *Pipeline) Run(ctx context.Context, s model.Series) (Result, error) {
	runID := uuid.NewString()
	logger := log.With().Str("component", "pipeline").Str("run_id", runID).Logger()

	res := Result{RunID: runID, Threshold: p.threshold}

	initial, err := detect.Detect(s, p.threshold)
	if err != nil {
		return Result{}, fmt.Errorf("initial detection: %w", err)
	}
	res.Initial = initial
	logger.Info().
		Int("records", s.Len()).
		Int("errors", initial.Count()).
		Int("missing", initial.MissingCount()).
		Int("deviations", initial.DeviationCount()).
		Msg("Initial detection")

	alerts, err := p.emitter.Emit(ctx, s)
	if err != nil {
		return Result{}, fmt.Errorf("emitting alerts: %w", err)
	}
	res.Alerts = alerts

	correction, err := p.corrector.Correct(s)
	if err != nil {
		return Result{}, fmt.Errorf("correcting series: %w", err)
	}
	res.Correction = correction

	remaining, err := detect.Detect(correction.Series, p.threshold)
	if err != nil {
		return Result{}, fmt.Errorf("post-correction detection: %w", err)
	}
	res.Remaining = remaining

	summary, err := report.Summarize(initial.Count(), remaining.Count())
	if err != nil {
		return Result{}, err
	}
	res.Summary = summary

	logger.Info().
		Int("initial", summary.InitialErrorCount).
		Int("remaining", summary.CorrectedErrorCount).
		Float64("improvement_pct", summary.ImprovementPercent).
		Msg("Pipeline complete")
	return res, nil
}
