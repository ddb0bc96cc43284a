// Package transform provides invertible monotonic mappings between a bounded
// real data domain and an unbounded working scale. Series are converted to the
// working scale before training an additive forecast model and converted back
// after prediction, so the model's unconstrained-range assumptions hold while
// the final forecast respects the original domain.
package transform

import (
	"errors"
	"fmt"
)

var (
	ErrNotFitted          = errors.New("transform has not been fit")
	ErrAlreadyFit         = errors.New("transform has already been fit")
	ErrNoData             = errors.New("no observations to fit")
	ErrOutOfDomain        = errors.New("value outside of transform domain")
	ErrInvalidBounds      = errors.New("lower bound must be less than upper bound")
	ErrNegativeOffset     = errors.New("offset must be non-negative")
	ErrNonPositiveEpsilon = errors.New("offset epsilon must be positive")
	ErrInvalidMargin      = errors.New("bound margin must be non-negative")
	ErrConstantSeries     = errors.New("cannot infer bounds from a constant series")
	ErrUnknownType        = errors.New("unknown transform type")
)

type Type string

const (
	TypeLog   Type = "log"
	TypeLogit Type = "logit"
)

// Transform converts a series between the real domain and the working scale.
// A Transform starts unfit and becomes fit exactly once through Fit. Apply and
// Invert return ErrNotFitted until then. Once fit the parameters are immutable
// and the instance is safe for concurrent use. Apply is strictly increasing so
// order relations and interval bounds survive the round trip.
type Transform interface {
	// Fit resolves the transform parameters from the training observations.
	Fit(y []float64) error

	// Apply maps a series from the real domain to the working scale returning
	// a new slice. Returns ErrOutOfDomain if any value falls outside the
	// fitted domain.
	Apply(y []float64) ([]float64, error)

	// Invert maps a series from the working scale back to the real domain
	// returning a new slice. Total over the reals.
	Invert(x []float64) ([]float64, error)

	// Type returns the transform variant.
	Type() Type

	// Model returns the serializeable representation of the fitted transform.
	Model() (Model, error)
}

// Options selects a transform variant along with its variant specific options.
type Options struct {
	Type  Type          `json:"type"`
	Log   *LogOptions   `json:"log,omitempty"`
	Logit *LogitOptions `json:"logit,omitempty"`
}

// NewDefaultOptions returns the default transform selection which is a log
// transform with auto-offsetting enabled.
func NewDefaultOptions() *Options {
	return &Options{
		Type: TypeLog,
		Log:  NewDefaultLogOptions(),
	}
}

// New creates an unfit Transform for the given options. If opt is nil a
// default is used.
func New(opt *Options) (Transform, error) {
	if opt == nil {
		opt = NewDefaultOptions()
	}
	switch opt.Type {
	case TypeLog:
		return NewLog(opt.Log)
	case TypeLogit:
		return NewLogit(opt.Logit)
	}
	return nil, fmt.Errorf("%q, %w", opt.Type, ErrUnknownType)
}
