package transform

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultOffsetEpsilon is the margin added above the smallest observation when
// auto-offsetting so that the shifted minimum stays strictly positive.
const DefaultOffsetEpsilon = 1e-3

// LogOptions represents input options for fitting a Log transform
type LogOptions struct {
	// Offset is an explicit non-negative constant c added to observations
	// before taking the logarithm
	Offset float64 `json:"offset"`

	// AutoOffset permits raising the offset during fit when the shifted
	// minimum observation is non-positive. With this disabled such data fails
	// fit with ErrOutOfDomain.
	AutoOffset bool `json:"auto_offset"`

	// OffsetEpsilon is the margin used when auto-offsetting, resolving the
	// offset to -min(y)+epsilon. Defaults to DefaultOffsetEpsilon.
	OffsetEpsilon float64 `json:"offset_epsilon"`
}

// NewDefaultLogOptions returns a default set of Log transform options
func NewDefaultLogOptions() *LogOptions {
	return &LogOptions{
		AutoOffset:    true,
		OffsetEpsilon: DefaultOffsetEpsilon,
	}
}

// Validate runs basic validation on Log transform options
func (o *LogOptions) Validate() (*LogOptions, error) {
	if o == nil {
		o = NewDefaultLogOptions()
	}
	if o.Offset < 0 {
		return nil, fmt.Errorf("offset %f, %w", o.Offset, ErrNegativeOffset)
	}
	if o.OffsetEpsilon == 0 {
		o.OffsetEpsilon = DefaultOffsetEpsilon
	}
	if o.OffsetEpsilon <= 0 {
		return nil, fmt.Errorf("epsilon %f, %w", o.OffsetEpsilon, ErrNonPositiveEpsilon)
	}
	return o, nil
}

// Log maps strictly positive shifted data to the unbounded working scale with
// y -> log(y + c). The offset c is resolved at fit time from the smallest
// observation and is fixed afterwards.
type Log struct {
	opt *LogOptions

	offset float64
	fitted bool
}

// NewLog initializes an unfit Log transform. If opt is nil a default is used.
func NewLog(opt *LogOptions) (*Log, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &Log{opt: opt}, nil
}

// Fit resolves the log offset from the training observations. The configured
// offset is kept when it already makes every observation strictly positive.
// Otherwise with AutoOffset the offset is raised to -min(y)+epsilon, and
// without it the fit fails with ErrOutOfDomain.
func (l *Log) Fit(y []float64) error {
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

	offset := l.opt.Offset
	if minVal := floats.Min(y); minVal+offset <= 0 {
		if !l.opt.AutoOffset {
			return fmt.Errorf(
				"minimum observation %f with offset %f is not positive, %w",
				minVal, offset, ErrOutOfDomain,
			)
		}
		offset = -minVal + l.opt.OffsetEpsilon
	}

	l.offset = offset
	l.fitted = true
	return nil
}

// Apply returns log(y + c) elementwise. Values are revalidated against the
// fitted offset since apply may be called on data other than the training set.
func (l *Log) Apply(y []float64) ([]float64, error) {
	if !l.fitted {
		return nil, ErrNotFitted
	}

	res := make([]float64, len(y))
	for i, v := range y {
		shifted := v + l.offset
		if math.IsNaN(shifted) || shifted <= 0 {
			return nil, fmt.Errorf(
				"value %f at %d with offset %f is not positive, %w",
				v, i, l.offset, ErrOutOfDomain,
			)
		}
		res[i] = math.Log(shifted)
	}
	return res, nil
}

// Invert returns exp(x) - c elementwise. The exponential is total so there is
// no domain restriction, though very large working values overflow to +Inf.
func (l *Log) Invert(x []float64) ([]float64, error) {
	if !l.fitted {
		return nil, ErrNotFitted
	}

	res := make([]float64, len(x))
	for i, v := range x {
		res[i] = math.Exp(v) - l.offset
	}
	return res, nil
}

func (l *Log) Type() Type {
	return TypeLog
}

// Offset returns the resolved offset after fitting
func (l *Log) Offset() float64 {
	return l.offset
}

// Model returns the serializeable representation of the fitted Log transform
func (l *Log) Model() (Model, error) {
	if !l.fitted {
		return Model{}, ErrNotFitted
	}
	return Model{
		Type: TypeLog,
		Log: &LogModel{
			Options: l.opt,
			Offset:  l.offset,
		},
	}, nil
}
