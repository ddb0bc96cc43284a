// Package prophetutils wraps an additive forecasting model with invertible
// data transforms so that strictly positive or bounded series can be modeled
// on an unconstrained working scale and forecast back in their original units.
package prophetutils

import (
	"errors"
	"fmt"
	"time"

	"github.com/Hey-Savvie/prophet-utils/timedataset"
	"github.com/Hey-Savvie/prophet-utils/transform"
)

var (
	ErrNoForecaster        = errors.New("no forecasting model provided")
	ErrForecastLenMismatch = errors.New("forecast columns have different lengths than time")
	ErrIntervalOrder       = errors.New("forecast interval is not ordered around the point estimate")
	ErrEmptyTimeDataset    = errors.New("no timedataset or uninitialized")
	ErrCannotInferInterval = errors.New("cannot infer interval from training data time")
)

// Forecaster is the boundary to the external forecasting model. It consumes a
// series already on the working scale and produces point and interval
// forecasts on that same scale. The pipeline never inspects the model beyond
// this interface. Lower and upper may be returned nil when the model does not
// produce uncertainty intervals.
type Forecaster interface {
	Fit(t []time.Time, y []float64) error
	Predict(t []time.Time) (point, lower, upper []float64, err error)
}

// Pipeline orchestrates transforming a series before model training and
// inverting forecasts after prediction. Fit resolves the transform parameters
// from the training data, converts the series to the working scale, and hands
// it to the forecasting model. Predict inverts each forecast column back to
// the original units.
type Pipeline struct {
	opt *Options

	model Forecaster
	trans transform.Transform

	fitTrainingData *timedataset.TimeDataset
	fitResults      *Results
}

// New creates a new instance of a Pipeline around the provided forecasting
// model using the given options. If no options are provided a default is used.
func New(model Forecaster, opt *Options) (*Pipeline, error) {
	if model == nil {
		return nil, ErrNoForecaster
	}
	if opt == nil {
		opt = NewDefaultOptions()
	}

	trans, err := transform.New(opt.Transform)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize transform, %w", err)
	}
	return &Pipeline{
		opt:   opt,
		model: model,
		trans: trans,
	}, nil
}

// NewFromModel creates a new instance of a Pipeline from a previously
// serialized pipeline model and an already trained forecasting model. The
// transform is restored fitted so the pipeline can predict immediately.
func NewFromModel(model Forecaster, m Model) (*Pipeline, error) {
	if model == nil {
		return nil, ErrNoForecaster
	}
	opt := m.Options
	if opt == nil {
		opt = NewDefaultOptions()
	}

	trans, err := transform.NewFromModel(m.Transform)
	if err != nil {
		return nil, fmt.Errorf("unable to load transform from model, %w", err)
	}
	return &Pipeline{
		opt:   opt,
		model: model,
		trans: trans,
	}, nil
}

// Fit resolves the transform from the input training data, converts the
// series to the working scale, and trains the forecasting model on the
// converted series. NaN observations are dropped before fitting the transform
// since the transforms treat NaN as out of domain.
func (p *Pipeline) Fit(t []time.Time, y []float64) error {
	td, err := timedataset.NewUnivariateDataset(t, y)
	if err != nil {
		return fmt.Errorf("unable to create training dataset, %w", err)
	}
	p.fitTrainingData = td.Copy()

	cleaned := td.DropNan()
	if len(cleaned.Y) == 0 {
		return timedataset.ErrAllNan
	}

	if err := p.trans.Fit(cleaned.Y); err != nil {
		return fmt.Errorf("unable to fit transform, %w", err)
	}
	work, err := p.trans.Apply(cleaned.Y)
	if err != nil {
		return fmt.Errorf("unable to apply transform to training data, %w", err)
	}

	if err := p.model.Fit(cleaned.T, work); err != nil {
		return fmt.Errorf("unable to fit forecasting model, %w", err)
	}

	p.fitResults, err = p.Predict(td.T)
	if err != nil {
		return fmt.Errorf("unable to get predicted values from training set, %w", err)
	}
	return nil
}

// Predict generates a forecast for the requested times in the original units.
// The transform inverse is applied independently and identically to the point
// estimate and to each interval bound, and the interval ordering
// lower <= point <= upper is verified after inversion.
func (p *Pipeline) Predict(t []time.Time) (*Results, error) {
	point, lower, upper, err := p.model.Predict(t)
	if err != nil {
		return nil, fmt.Errorf("unable to predict with forecasting model, %w", err)
	}
	if len(point) != len(t) ||
		(lower != nil && len(lower) != len(t)) ||
		(upper != nil && len(upper) != len(t)) {
		return nil, ErrForecastLenMismatch
	}

	r := &Results{T: t}
	if r.Forecast, err = p.trans.Invert(point); err != nil {
		return nil, fmt.Errorf("unable to invert forecast, %w", err)
	}
	if lower != nil {
		if r.Lower, err = p.trans.Invert(lower); err != nil {
			return nil, fmt.Errorf("unable to invert lower bound, %w", err)
		}
	}
	if upper != nil {
		if r.Upper, err = p.trans.Invert(upper); err != nil {
			return nil, fmt.Errorf("unable to invert upper bound, %w", err)
		}
	}

	if err := r.validateOrder(); err != nil {
		return nil, err
	}
	return r, nil
}

// Transform returns the pipeline's transform. Fitted after a successful call
// to Fit.
func (p *Pipeline) Transform() transform.Transform {
	return p.trans
}

// TrainingData returns the training data used to fit the current pipeline
func (p *Pipeline) TrainingData() *timedataset.TimeDataset {
	return p.fitTrainingData
}

// FitResults returns the original-scale results of predicting over the
// training times
func (p *Pipeline) FitResults() *Results {
	return p.fitResults
}

// Model generates a serializeable representation of the pipeline options and
// fitted transform parameters. This can be used with NewFromModel to
// reconstruct a pipeline around an already trained forecasting model.
func (p *Pipeline) Model() (Model, error) {
	tm, err := p.trans.Model()
	if err != nil {
		return Model{}, fmt.Errorf("unable to fetch transform model, %w", err)
	}
	return Model{
		Options:   p.opt,
		Transform: tm,
	}, nil
}
