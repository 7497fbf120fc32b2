// Package report computes and renders the before/after data quality summary.
package report

import (
	"errors"
	"fmt"

	"github.com/Alias1177/PriceGuard/internal/model"
)

var ErrNegativeCount = errors.New("error counts must be non-negative")

// Summarize computes the improvement between the initial and corrected error counts.
// With no initial errors there is nothing to improve: the result is 100% with NoBaseline set.
func Summarize(initial, corrected int) (model.Summary, error) {
	if initial < 0 || corrected < 0 {
		return model.Summary{}, fmt.Errorf("%w: initial=%d corrected=%d", ErrNegativeCount, initial, corrected)
	}

	s := model.Summary{
		InitialErrorCount:   initial,
		CorrectedErrorCount: corrected,
	}
	if initial == 0 {
		s.ImprovementPercent = 100
		s.NoBaseline = true
		return s, nil
	}
	s.ImprovementPercent = float64(initial-corrected) / float64(initial) * 100
	return s, nil
}
