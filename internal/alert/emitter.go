// Package alert streams one notification per anomalous record, in record order.
package alert

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/PriceGuard/internal/detect"
	"github.com/Alias1177/PriceGuard/internal/model"
)

// Emitter walks a series and hands every anomalous record to its sink.
type Emitter struct {
	threshold float64
	sink      Sink
	pacer     Pacer
	logger    zerolog.Logger
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithPacer sets the per-record pacing. The default is NoDelay.
func WithPacer(p Pacer) Option {
	return func(e *Emitter) {
		e.pacer = p
	}
}

// NewEmitter creates an emitter that alerts on records anomalous at threshold.
func NewEmitter(threshold float64, sink Sink, opts ...Option) (*Emitter, error) {
	if err := detect.ValidateThreshold(threshold); err != nil {
		return nil, err
	}
	e := &Emitter{
		threshold: threshold,
		sink:      sink,
		pacer:     NoDelay(),
		logger:    log.With().Str("component", "alert_emitter").Logger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Emit sends alerts for s and returns them in chronological order.
// Sink failures are logged and do not stop the walk; only ctx cancellation does.
func (e *Emitter) Emit(ctx context.Context, s model.Series) ([]model.Alert, error) {
	alerts := []model.Alert{}
	failed := 0

	for i := 0; i < s.Len(); i++ {
		if err := e.pacer.Wait(ctx); err != nil {
			return alerts, err
		}

		rec := s.At(i)
		if !rec.Anomalous(e.threshold) {
			continue
		}

		a := model.NewAlert(rec)
		alerts = append(alerts, a)
		if e.sink == nil {
			continue
		}
		if err := e.sink.Send(ctx, a); err != nil {
			failed++
			e.logger.Error().Err(err).Str("date", rec.Day()).Msg("Failed to deliver alert")
		}
	}

	e.logger.Info().Int("alerts", len(alerts)).Int("failed", failed).Msg("Alert stream complete")
	return alerts, nil
}
