package model

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	DateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

var (
	ErrInvalidRecord   = errors.New("invalid price record")
	ErrUnorderedSeries = errors.New("series dates must be strictly ascending")
)

// Series is an ordered run of daily price records. Its length is fixed at construction.
type Series struct {
	records []PriceRecord
}

// NewSeries validates and copies records. Dates are truncated to UTC calendar days.
func NewSeries(records []PriceRecord) (Series, error) {
	out := make([]PriceRecord, len(records))
	for i, r := range records {
		if math.IsNaN(r.ReferencePrice) || math.IsInf(r.ReferencePrice, 0) || r.ReferencePrice <= 0 {
			return Series{}, fmt.Errorf("%w: record %d reference price %v", ErrInvalidRecord, i, r.ReferencePrice)
		}
		if !r.ObservedPrice.finite() {
			return Series{}, fmt.Errorf("%w: record %d observed price is not finite", ErrInvalidRecord, i)
		}
		if r.Date.IsZero() {
			return Series{}, fmt.Errorf("%w: record %d has no date", ErrInvalidRecord, i)
		}
		r.Date = Day(r.Date)
		if i > 0 && !r.Date.After(out[i-1].Date) {
			return Series{}, fmt.Errorf("%w: %s follows %s", ErrUnorderedSeries, r.Day(), out[i-1].Day())
		}
		out[i] = r
	}
	return Series{records: out}, nil
}

// Len returns the number of records.
func (s Series) Len() int {
	return len(s.records)
}

// At returns the record at position i.
func (s Series) At(i int) PriceRecord {
	return s.records[i]
}

// Records returns a copy of the underlying records.
func (s Series) Records() []PriceRecord {
	out := make([]PriceRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Dates returns the record dates in order.
func (s Series) Dates() []time.Time {
	out := make([]time.Time, len(s.records))
	for i, r := range s.records {
		out[i] = r.Date
	}
	return out
}

// WithObserved returns a new series with the observed prices replaced.
// prices must have the same length as the series.
func (s Series) WithObserved(prices []ObservedPrice) (Series, error) {
	if len(prices) != len(s.records) {
		return Series{}, fmt.Errorf("%w: %d prices for %d records", ErrInvalidRecord, len(prices), len(s.records))
	}
	out := make([]PriceRecord, len(s.records))
	for i, r := range s.records {
		if !prices[i].finite() {
			return Series{}, fmt.Errorf("%w: record %d observed price is not finite", ErrInvalidRecord, i)
		}
		r.ObservedPrice = prices[i]
		out[i] = r
	}
	return Series{records: out}, nil
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate accepts YYYY-MM-DD and the TwelveData "YYYY-MM-DD hh:mm:ss" form.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return Day(t), nil
}
