// Package detect flags price records whose observed trade price is missing or
// deviates from the reference price by more than a relative threshold.
package detect

import (
	"errors"
	"fmt"
	"math"

	"github.com/Alias1177/PriceGuard/internal/model"
)

// DefaultThreshold is the relative tolerance used when none is configured (3%).
const DefaultThreshold = 0.03

var ErrInvalidThreshold = errors.New("threshold must be a finite non-negative number")

// Detection is the ordered subsequence of anomalous records.
type Detection struct {
	Threshold float64
	Records   []model.PriceRecord
}

// Count returns the number of detected records.
func (d Detection) Count() int {
	return len(d.Records)
}

// MissingCount counts records with no observed price.
func (d Detection) MissingCount() int {
	n := 0
	for _, r := range d.Records {
		if r.ObservedPrice.IsMissing() {
			n++
		}
	}
	return n
}

// DeviationCount counts records flagged for exceeding the tolerance.
func (d Detection) DeviationCount() int {
	return d.Count() - d.MissingCount()
}

// ValidateThreshold rejects negative, NaN and infinite thresholds.
func ValidateThreshold(threshold float64) error {
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) || threshold < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidThreshold, threshold)
	}
	return nil
}

// Detect returns every record of s that is missing or flagged at threshold.
// It does not modify s.
func Detect(s model.Series, threshold float64) (Detection, error) {
	if err := ValidateThreshold(threshold); err != nil {
		return Detection{}, err
	}

	d := Detection{Threshold: threshold, Records: []model.PriceRecord{}}
	for i := 0; i < s.Len(); i++ {
		if r := s.At(i); r.Anomalous(threshold) {
			d.Records = append(d.Records, r)
		}
	}
	return d, nil
}
