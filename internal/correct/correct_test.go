package correct

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/PriceGuard/internal/detect"
	"github.com/Alias1177/PriceGuard/internal/model"
)

func day(n int) time.Time {
	return time.Date(2023, time.March, 1+n, 0, 0, 0, 0, time.UTC)
}

func rec(n int, ref float64, obs model.ObservedPrice) model.PriceRecord {
	return model.PriceRecord{Date: day(n), ReferencePrice: ref, ObservedPrice: obs}
}

func mustSeries(t *testing.T, rows ...model.PriceRecord) model.Series {
	t.Helper()
	s, err := model.NewSeries(rows)
	require.NoError(t, err)
	return s
}

func observed(t *testing.T, r model.PriceRecord) float64 {
	t.Helper()
	v, ok := r.ObservedPrice.Value()
	require.True(t, ok, "expected observed price on %s", r.Day())
	return v
}

func TestCorrectScenario(t *testing.T) {
	s := mustSeries(t,
		rec(0, 100, model.Observed(100)),
		rec(1, 100, model.Observed(200)),
		rec(2, 100, model.Missing()),
	)

	c, err := Correct(s, detect.DefaultThreshold)
	require.NoError(t, err)

	assert.Equal(t, 100.0, observed(t, c.Series.At(0)))
	assert.Equal(t, 100.0, observed(t, c.Series.At(1)))
	assert.Equal(t, 100.0, observed(t, c.Series.At(2)))
	assert.Equal(t, []time.Time{day(1)}, c.Reset)
	assert.Equal(t, []time.Time{day(2)}, c.Filled)
	assert.Empty(t, c.Unfilled)

	after, err := detect.Detect(c.Series, detect.DefaultThreshold)
	require.NoError(t, err)
	assert.Equal(t, 0, after.Count())
}

func TestFillUsesPredecessorReference(t *testing.T) {
	s := mustSeries(t,
		rec(0, 90, model.Observed(91)),
		rec(1, 110, model.Missing()),
	)

	c, err := Correct(s, detect.DefaultThreshold)
	require.NoError(t, err)

	// Filled from the predecessor, not re-flagged against its own reference in the same pass.
	assert.Equal(t, 90.0, observed(t, c.Series.At(1)))
	assert.Empty(t, c.Reset)
	assert.True(t, c.Series.At(1).Flagged(detect.DefaultThreshold))
}

func TestFirstRecordMissingStaysMissing(t *testing.T) {
	s := mustSeries(t,
		rec(0, 100, model.Missing()),
		rec(1, 100, model.Observed(100)),
	)

	c, err := Correct(s, detect.DefaultThreshold)
	require.NoError(t, err)

	assert.True(t, c.Series.At(0).ObservedPrice.IsMissing())
	assert.Equal(t, []time.Time{day(0)}, c.Unfilled)

	after, err := detect.Detect(c.Series, detect.DefaultThreshold)
	require.NoError(t, err)
	assert.Equal(t, 1, after.Count())
}

func TestCorrectDoesNotMutateInput(t *testing.T) {
	s := mustSeries(t,
		rec(0, 100, model.Observed(50)),
		rec(1, 100, model.Missing()),
	)
	before := s.Records()

	_, err := Correct(s, detect.DefaultThreshold)
	require.NoError(t, err)
	assert.Equal(t, before, s.Records())
}

func TestCorrectLeavesCleanRecords(t *testing.T) {
	s := mustSeries(t,
		rec(0, 100, model.Observed(101)),
		rec(1, 100, model.Observed(0)),
	)

	c, err := Correct(s, detect.DefaultThreshold)
	require.NoError(t, err)

	assert.Equal(t, 101.0, observed(t, c.Series.At(0)))
	// A zero price is a real observation, so it is reset rather than filled.
	assert.Equal(t, 100.0, observed(t, c.Series.At(1)))
	assert.Equal(t, []time.Time{day(1)}, c.Reset)
	assert.Empty(t, c.Filled)
}

func TestCorrectionNeverIncreasesErrors(t *testing.T) {
	fixtures := [][]model.PriceRecord{
		{rec(0, 100, model.Missing()), rec(1, 120, model.Missing()), rec(2, 80, model.Observed(10))},
		{rec(0, 10, model.Observed(10)), rec(1, 20, model.Missing()), rec(2, 20, model.Observed(20.5))},
		{rec(0, 5, model.Observed(6)), rec(1, 5, model.Observed(4)), rec(2, 5, model.Observed(5))},
		{},
	}

	for _, rows := range fixtures {
		s := mustSeries(t, rows...)
		for _, th := range []float64{0, 0.01, detect.DefaultThreshold, 0.2} {
			before, err := detect.Detect(s, th)
			require.NoError(t, err)
			c, err := Correct(s, th)
			require.NoError(t, err)
			after, err := detect.Detect(c.Series, th)
			require.NoError(t, err)

			assert.LessOrEqual(t, after.Count(), before.Count())
			assert.Equal(t, s.Len(), c.Series.Len())
		}
	}
}

func TestNewRejectsNegativeThreshold(t *testing.T) {
	_, err := New(-1)
	assert.ErrorIs(t, err, detect.ErrInvalidThreshold)
}
