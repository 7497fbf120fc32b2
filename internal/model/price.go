package model

import (
	"encoding/json"
	"math"
	"strconv"
)

// ObservedPrice is a trade price that may be absent.
// The zero value is missing, so a legitimate 0.0 price must be built with Observed.
type ObservedPrice struct {
	value float64
	valid bool
}

// Observed wraps a present trade price.
func Observed(v float64) ObservedPrice {
	return ObservedPrice{value: v, valid: true}
}

// Missing returns an absent trade price.
func Missing() ObservedPrice {
	return ObservedPrice{}
}

// Value returns the price and whether it is present.
func (p ObservedPrice) Value() (float64, bool) {
	return p.value, p.valid
}

// IsMissing reports whether the price is absent.
func (p ObservedPrice) IsMissing() bool {
	return !p.valid
}

// String renders the price with two decimals, or "missing".
func (p ObservedPrice) String() string {
	if !p.valid {
		return "missing"
	}
	return strconv.FormatFloat(p.value, 'f', 2, 64)
}

// MarshalJSON encodes a missing price as null.
func (p ObservedPrice) MarshalJSON() ([]byte, error) {
	if !p.valid {
		return []byte("null"), nil
	}
	return json.Marshal(p.value)
}

// UnmarshalJSON decodes null as missing.
func (p *ObservedPrice) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = Missing()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Observed(v)
	return nil
}

func (p ObservedPrice) finite() bool {
	return !p.valid || (!math.IsNaN(p.value) && !math.IsInf(p.value, 0))
}
