package model

import (
	"math"
	"time"
)

// PriceRecord is one trading day: the reference close and the observed trade price.
type PriceRecord struct {
	Date           time.Time     `json:"date"`
	ReferencePrice float64       `json:"reference_price"`
	ObservedPrice  ObservedPrice `json:"observed_price"`
}

// Difference returns |observed - reference|. ok is false when the observed price is missing.
func (r PriceRecord) Difference() (diff float64, ok bool) {
	v, ok := r.ObservedPrice.Value()
	if !ok {
		return 0, false
	}
	return math.Abs(v - r.ReferencePrice), true
}

// Flagged reports whether the observed price deviates from the reference by more
// than threshold*reference. A missing price is never flagged.
func (r PriceRecord) Flagged(threshold float64) bool {
	diff, ok := r.Difference()
	if !ok {
		return false
	}
	return diff > threshold*r.ReferencePrice
}

// Anomalous is the detection predicate: missing or flagged.
func (r PriceRecord) Anomalous(threshold float64) bool {
	return r.ObservedPrice.IsMissing() || r.Flagged(threshold)
}

// Day formats the record date as YYYY-MM-DD.
func (r PriceRecord) Day() string {
	return r.Date.Format(DateLayout)
}
