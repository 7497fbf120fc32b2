// Package simulate produces a demo trade tape with injected errors.
// It is deterministic for a given seed and is not used by the correction pipeline.
package simulate

import (
	"math/rand"

	"github.com/Alias1177/PriceGuard/internal/model"
)

// Options controls the simulated tape.
type Options struct {
	Seed int64
	// Noise is the standard deviation of the relative trade/close spread.
	Noise float64
	// Spikes is how many random draws (with replacement) get a price shock.
	Spikes int
	// SpikeSigma is the standard deviation of the relative shock.
	SpikeSigma float64
	// Missing is how many distinct records lose their trade price.
	Missing int
}

// DefaultOptions mirrors a year of daily data with ten shocks and five gaps.
func DefaultOptions() Options {
	return Options{Seed: 42, Noise: 0.01, Spikes: 10, SpikeSigma: 0.05, Missing: 5}
}

// Tape replaces observed prices with close*(1+N(0,Noise)), then injects shocks and gaps.
func Tape(s model.Series, opts Options) (model.Series, error) {
	n := s.Len()
	rng := rand.New(rand.NewSource(opts.Seed))
	prices := make([]model.ObservedPrice, n)

	values := make([]float64, n)
	for i := 0; i < n; i++ {
		values[i] = s.At(i).ReferencePrice * (1 + rng.NormFloat64()*opts.Noise)
	}

	if n > 0 {
		for k := 0; k < opts.Spikes; k++ {
			idx := rng.Intn(n)
			values[idx] *= 1 + rng.NormFloat64()*opts.SpikeSigma
		}
	}

	for i, v := range values {
		prices[i] = model.Observed(v)
	}

	missing := opts.Missing
	if missing > n {
		missing = n
	}
	for _, idx := range rng.Perm(n)[:missing] {
		prices[idx] = model.Missing()
	}

	return s.WithObserved(prices)
}
