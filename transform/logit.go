package transform

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultBoundMargin is the fraction of the observed range added on each side
// when inferring logit bounds, keeping training observations away from the
// open interval's edges.
const DefaultBoundMargin = 0.05

// LogitOptions represents input options for fitting a Logit transform
type LogitOptions struct {
	// LowerBound and UpperBound define the open domain interval when both are
	// set. When left nil the bounds are inferred at fit time from the observed
	// minimum and maximum expanded by BoundMargin.
	LowerBound *float64 `json:"lower_bound,omitempty"`
	UpperBound *float64 `json:"upper_bound,omitempty"`

	// BoundMargin is the fraction of the observed range added below the
	// minimum and above the maximum when inferring bounds. Defaults to
	// DefaultBoundMargin.
	BoundMargin float64 `json:"bound_margin"`
}

// NewDefaultLogitOptions returns a default set of Logit transform options
// which infers bounds from the training data
func NewDefaultLogitOptions() *LogitOptions {
	return &LogitOptions{
		BoundMargin: DefaultBoundMargin,
	}
}

// Validate runs basic validation on Logit transform options
func (o *LogitOptions) Validate() (*LogitOptions, error) {
	if o == nil {
		o = NewDefaultLogitOptions()
	}
	if (o.LowerBound == nil) != (o.UpperBound == nil) {
		return nil, fmt.Errorf("bounds must be supplied together, %w", ErrInvalidBounds)
	}
	if o.LowerBound != nil && *o.LowerBound >= *o.UpperBound {
		return nil, fmt.Errorf(
			"lower bound %f is not less than upper bound %f, %w",
			*o.LowerBound, *o.UpperBound, ErrInvalidBounds,
		)
	}
	if o.BoundMargin == 0 {
		o.BoundMargin = DefaultBoundMargin
	}
	if o.BoundMargin < 0 {
		return nil, fmt.Errorf("margin %f, %w", o.BoundMargin, ErrInvalidMargin)
	}
	return o, nil
}

// Logit maps data in an open interval (lo, hi) to the unbounded working scale
// with y -> log((y-lo)/(hi-y)). The inverse is the logistic sigmoid rescaled
// into the interval, so inverted values can never exit (lo, hi).
type Logit struct {
	opt *LogitOptions

	lower  float64
	upper  float64
	fitted bool
}

// NewLogit initializes an unfit Logit transform. If opt is nil a default is
// used which infers bounds from the training data.
func NewLogit(opt *LogitOptions) (*Logit, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &Logit{opt: opt}, nil
}

// Fit resolves the domain interval. Explicit bounds are used directly failing
// with ErrOutOfDomain when any observation lies at or outside them. Inferred
// bounds expand the observed minimum and maximum by BoundMargin of the range.
func (l *Logit) Fit(y []float64) error {
	if l.fitted {
		return ErrAlreadyFit
	}
	if len(y) == 0 {
		return ErrNoData
	}
	for i, v := range y {
		if math.IsNaN(v) {
			return fmt.Errorf("NaN observation at %d, %w", i, ErrOutOfDomain)
		}
	}

	minVal := floats.Min(y)
	maxVal := floats.Max(y)

	var lower, upper float64
	if l.opt.LowerBound != nil {
		lower = *l.opt.LowerBound
		upper = *l.opt.UpperBound
		if minVal <= lower || maxVal >= upper {
			return fmt.Errorf(
				"observations [%f, %f] not strictly inside (%f, %f), %w",
				minVal, maxVal, lower, upper, ErrOutOfDomain,
			)
		}
	} else {
		span := maxVal - minVal
		if span == 0 {
			return fmt.Errorf("series is constant at %f, %w", minVal, ErrConstantSeries)
		}
		lower = minVal - l.opt.BoundMargin*span
		upper = maxVal + l.opt.BoundMargin*span
	}

	l.lower = lower
	l.upper = upper
	l.fitted = true
	return nil
}

// Apply returns log((y-lo)/(hi-y)) elementwise failing with ErrOutOfDomain
// when any value is at or outside the fitted bounds
func (l *Logit) Apply(y []float64) ([]float64, error) {
	if !l.fitted {
		return nil, ErrNotFitted
	}

	res := make([]float64, len(y))
	for i, v := range y {
		if math.IsNaN(v) || v <= l.lower || v >= l.upper {
			return nil, fmt.Errorf(
				"value %f at %d not strictly inside (%f, %f), %w",
				v, i, l.lower, l.upper, ErrOutOfDomain,
			)
		}
		res[i] = math.Log((v - l.lower) / (l.upper - v))
	}
	return res, nil
}

// Invert returns lo + (hi-lo)/(1+exp(-x)) elementwise. Total over the reals
// and always lands inside (lo, hi).
func (l *Logit) Invert(x []float64) ([]float64, error) {
	if !l.fitted {
		return nil, ErrNotFitted
	}

	res := make([]float64, len(x))
	for i, v := range x {
		res[i] = l.lower + (l.upper-l.lower)/(1.0+math.Exp(-v))
	}
	return res, nil
}

func (l *Logit) Type() Type {
	return TypeLogit
}

// Bounds returns the resolved domain interval after fitting
func (l *Logit) Bounds() (float64, float64) {
	return l.lower, l.upper
}

// Model returns the serializeable representation of the fitted Logit transform
func (l *Logit) Model() (Model, error) {
	if !l.fitted {
		return Model{}, ErrNotFitted
	}
	return Model{
		Type: TypeLogit,
		Logit: &LogitModel{
			Options: l.opt,
			Lower:   l.lower,
			Upper:   l.upper,
		},
	}, nil
}
