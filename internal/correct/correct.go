// Package correct repairs missing and flagged trade prices.
//
// Missing prices take the previous day's reference price. Prices flagged against the
// pre-correction snapshot are reset to their own reference price. Both rules read the
// snapshot only, so a filled price is never re-flagged in the same pass.
package correct

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/PriceGuard/internal/detect"
	"github.com/Alias1177/PriceGuard/internal/model"
)

// Correction is the corrected series together with what changed.
type Correction struct {
	Series model.Series
	// Filled lists dates whose missing price took the predecessor's reference.
	Filled []time.Time
	// Reset lists dates whose flagged price was reset to its own reference.
	Reset []time.Time
	// Unfilled lists dates left missing because they have no predecessor.
	Unfilled []time.Time
}

// Corrector applies the fill and reset rules.
type Corrector struct {
	threshold float64
	logger    zerolog.Logger
}

// New creates a corrector for the given threshold.
func New(threshold float64) (*Corrector, error) {
	if err := detect.ValidateThreshold(threshold); err != nil {
		return nil, err
	}
	return &Corrector{
		threshold: threshold,
		logger:    log.With().Str("component", "corrector").Logger(),
	}, nil
}

// Correct returns a corrected copy of s. s itself is not modified.
func (c *Corrector) Correct(s model.Series) (Correction, error) {
	prices := make([]model.ObservedPrice, s.Len())
	result := Correction{}

	for i := 0; i < s.Len(); i++ {
		rec := s.At(i)
		prices[i] = rec.ObservedPrice

		switch {
		case rec.ObservedPrice.IsMissing() && i == 0:
			result.Unfilled = append(result.Unfilled, rec.Date)
			c.logger.Warn().Str("date", rec.Day()).Msg("First record has no observed price and no predecessor, leaving missing")
		case rec.ObservedPrice.IsMissing():
			prev := s.At(i - 1)
			prices[i] = model.Observed(prev.ReferencePrice)
			result.Filled = append(result.Filled, rec.Date)
			c.logger.Debug().Str("date", rec.Day()).Float64("price", prev.ReferencePrice).Msg("Filled missing price from previous close")
		case rec.Flagged(c.threshold):
			prices[i] = model.Observed(rec.ReferencePrice)
			result.Reset = append(result.Reset, rec.Date)
			c.logger.Debug().Str("date", rec.Day()).Str("observed", rec.ObservedPrice.String()).Float64("price", rec.ReferencePrice).Msg("Reset flagged price to close")
		}
	}

	corrected, err := s.WithObserved(prices)
	if err != nil {
		return Correction{}, err
	}
	result.Series = corrected

	c.logger.Info().
		Int("filled", len(result.Filled)).
		Int("reset", len(result.Reset)).
		Int("unfilled", len(result.Unfilled)).
		Msg("Correction pass complete")
	return result, nil
}

// Correct is a convenience wrapper around New(threshold).Correct(s).
func Correct(s model.Series, threshold float64) (Correction, error) {
	c, err := New(threshold)
	if err != nil {
		return Correction{}, err
	}
	return c.Correct(s)
}
