package transform

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 {
	return &v
}

func TestNewLogit(t *testing.T) {
	testData := map[string]struct {
		opt      *LogitOptions
		expected *LogitOptions
		err      error
	}{
		"nil options uses default": {
			expected: NewDefaultLogitOptions(),
		},
		"lower without upper": {
			opt: &LogitOptions{LowerBound: f64(0)},
			err: ErrInvalidBounds,
		},
		"lower not less than upper": {
			opt: &LogitOptions{LowerBound: f64(10), UpperBound: f64(10)},
			err: ErrInvalidBounds,
		},
		"negative margin": {
			opt: &LogitOptions{BoundMargin: -0.1},
			err: ErrInvalidMargin,
		},
		"zero margin defaults": {
			opt:      &LogitOptions{},
			expected: &LogitOptions{BoundMargin: DefaultBoundMargin},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			l, err := NewLogit(td.opt)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.expected, l.opt)
		})
	}
}

func TestLogitFit(t *testing.T) {
	testData := map[string]struct {
		opt   *LogitOptions
		y     []float64
		lower float64
		upper float64
		err   error
	}{
		"no data": {
			opt: &LogitOptions{LowerBound: f64(0), UpperBound: f64(10)},
			err: ErrNoData,
		},
		"explicit bounds": {
			opt:   &LogitOptions{LowerBound: f64(0), UpperBound: f64(10)},
			y:     []float64{1, 5, 9},
			lower: 0,
			upper: 10,
		},
		"observation at upper bound": {
			opt: &LogitOptions{LowerBound: f64(0), UpperBound: f64(10)},
			y:   []float64{1, 5, 10},
			err: ErrOutOfDomain,
		},
		"observation below lower bound": {
			opt: &LogitOptions{LowerBound: f64(0), UpperBound: f64(10)},
			y:   []float64{-1, 5, 9},
			err: ErrOutOfDomain,
		},
		"inferred bounds with margin": {
			y:     []float64{1, 5, 9},
			lower: 0.6,
			upper: 9.4,
		},
		"constant series cannot infer": {
			y:   []float64{5, 5, 5},
			err: ErrConstantSeries,
		},
		"NaN observation": {
			y:   []float64{1, math.NaN(), 9},
			err: ErrOutOfDomain,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			l, err := NewLogit(td.opt)
			require.Nil(t, err)

			err = l.Fit(td.y)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			lo, hi := l.Bounds()
			assert.InDelta(t, td.lower, lo, 1e-12)
			assert.InDelta(t, td.upper, hi, 1e-12)
		})
	}
}

func TestLogitFitTwice(t *testing.T) {
	l, err := NewLogit(nil)
	require.Nil(t, err)
	require.Nil(t, l.Fit([]float64{1, 5, 9}))
	assert.ErrorIs(t, l.Fit([]float64{2, 3, 4}), ErrAlreadyFit)
}

func TestLogitApply(t *testing.T) {
	testData := map[string]struct {
		y        []float64
		expected []float64
		err      error
	}{
		"explicit bounds": {
			y:        []float64{1, 5, 9},
			expected: []float64{math.Log(1.0 / 9.0), 0, math.Log(9.0)},
		},
		"value at upper bound": {
			y:   []float64{1, 5, 10},
			err: ErrOutOfDomain,
		},
		"value at lower bound": {
			y:   []float64{0, 5, 9},
			err: ErrOutOfDomain,
		},
		"NaN value": {
			y:   []float64{math.NaN()},
			err: ErrOutOfDomain,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			l, err := NewLogit(&LogitOptions{LowerBound: f64(0), UpperBound: f64(10)})
			require.Nil(t, err)
			require.Nil(t, l.Fit([]float64{1, 5, 9}))

			res, err := l.Apply(td.y)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.InDeltaSlice(t, td.expected, res, 1e-12)
		})
	}
}

func TestLogitNotFitted(t *testing.T) {
	l, err := NewLogit(nil)
	require.Nil(t, err)

	_, err = l.Apply([]float64{1})
	assert.ErrorIs(t, err, ErrNotFitted)

	_, err = l.Invert([]float64{1})
	assert.ErrorIs(t, err, ErrNotFitted)

	_, err = l.Model()
	assert.ErrorIs(t, err, ErrNotFitted)
}

func TestLogitRoundTrip(t *testing.T) {
	testData := map[string]struct {
		opt *LogitOptions
		y   []float64
	}{
		"explicit bounds": {
			opt: &LogitOptions{LowerBound: f64(0), UpperBound: f64(10)},
			y:   []float64{1, 5, 9},
		},
		"inferred bounds": {
			y: []float64{0.12, 0.5, 0.87},
		},
		"near boundary": {
			opt: &LogitOptions{LowerBound: f64(0), UpperBound: f64(1)},
			y:   []float64{1e-4, 0.5, 0.9999},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			l, err := NewLogit(td.opt)
			require.Nil(t, err)
			require.Nil(t, l.Fit(td.y))

			work, err := l.Apply(td.y)
			require.Nil(t, err)
			back, err := l.Invert(work)
			require.Nil(t, err)

			for i := range td.y {
				assert.InDelta(t, td.y[i], back[i], 1e-9*math.Max(1.0, math.Abs(td.y[i])))
			}
		})
	}
}

func TestLogitInvertStaysInside(t *testing.T) {
	l, err := NewLogit(&LogitOptions{LowerBound: f64(0), UpperBound: f64(10)})
	require.Nil(t, err)
	require.Nil(t, l.Fit([]float64{1, 5, 9}))

	back, err := l.Invert([]float64{-50, -5, 0, 5, 50})
	require.Nil(t, err)
	for _, v := range back {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 10.0)
	}
	assert.InDelta(t, 5.0, back[2], 1e-12)
}

func TestLogitMonotonic(t *testing.T) {
	l, err := NewLogit(nil)
	require.Nil(t, err)
	require.Nil(t, l.Fit([]float64{0.1, 0.9}))

	y := []float64{0.1, 0.2, 0.5, 0.7, 0.9}
	work, err := l.Apply(y)
	require.Nil(t, err)
	for i := 1; i < len(work); i++ {
		assert.Less(t, work[i-1], work[i])
		assert.False(t, math.IsInf(work[i], 0))
		assert.False(t, math.IsNaN(work[i]))
	}

	back, err := l.Invert(work)
	require.Nil(t, err)
	for i := 1; i < len(back); i++ {
		assert.Less(t, back[i-1], back[i])
	}
}
