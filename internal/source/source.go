// Package source builds price series from external data.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/Alias1177/PriceGuard/internal/model"
)

// FromCandles uses each candle's close as the reference price and as the observed price.
// Candles must be sorted oldest first.
func FromCandles(candles []model.Candle) (model.Series, error) {
	records := make([]model.PriceRecord, 0, len(candles))
	for _, c := range candles {
		date, err := model.ParseDate(c.Datetime)
		if err != nil {
			return model.Series{}, err
		}
		records = append(records, model.PriceRecord{
			Date:           date,
			ReferencePrice: c.Close,
			ObservedPrice:  model.Observed(c.Close),
		})
	}
	return model.NewSeries(records)
}

// LoadCSV reads date,reference,observed rows. A first row whose date column does
// not parse is treated as a header and skipped. An empty, "NaN" or "missing" observed column is missing.
func LoadCSV(r io.Reader) (model.Series, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 3
	reader.TrimLeadingSpace = true

	var records []model.PriceRecord
	for line := 1; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return model.Series{}, fmt.Errorf("reading csv: %w", err)
		}

		date, err := model.ParseDate(strings.TrimSpace(row[0]))
		if err != nil {
			if line == 1 {
				continue
			}
			return model.Series{}, fmt.Errorf("line %d: %w", line, err)
		}

		ref, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return model.Series{}, fmt.Errorf("line %d: reference price %q: %w", line, row[1], model.ErrInvalidRecord)
		}

		observed, err := parseObserved(row[2])
		if err != nil {
			return model.Series{}, fmt.Errorf("line %d: %w", line, err)
		}

		records = append(records, model.PriceRecord{Date: date, ReferencePrice: ref, ObservedPrice: observed})
	}
	return model.NewSeries(records)
}

func parseObserved(raw string) (model.ObservedPrice, error) {
	raw = strings.TrimSpace(raw)
	switch strings.ToLower(raw) {
	case "", "nan", "missing", "null":
		return model.Missing(), nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(v, 0) {
		return model.ObservedPrice{}, fmt.Errorf("observed price %q: %w", raw, model.ErrInvalidRecord)
	}
	return model.Observed(v), nil
}
