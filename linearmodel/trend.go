package linearmodel

import (
	"errors"
	"fmt"
	"time"

	"github.com/Hey-Savvie/prophet-utils/timedataset"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var ErrUntrainedTrend = errors.New("trend model has not been trained yet")

const secondsPerDay = 86400.0

// TrendOptions represents input options for fitting a Trend model
type TrendOptions struct {
	// ResidualZscore scales the training residual standard deviation into the
	// lower and upper interval half width
	ResidualZscore float64 `json:"residual_zscore"`
}

// NewDefaultTrendOptions returns a default set of Trend model options
func NewDefaultTrendOptions() *TrendOptions {
	return &TrendOptions{
		ResidualZscore: 2.0,
	}
}

// Trend fits a straight line through the series with OLS and derives a
// constant uncertainty band from the training residual standard deviation.
type Trend struct {
	opt *TrendOptions

	model     *OLSRegression
	refTime   time.Time
	bandWidth float64
	trained   bool
}

// NewTrend initializes a Trend model ready for fitting. If opt is nil a
// default is used.
func NewTrend(opt *TrendOptions) *Trend {
	if opt == nil {
		opt = NewDefaultTrendOptions()
	}
	return &Trend{
		opt:   opt,
		model: NewOLSRegression(),
	}
}

func (tr *Trend) designMatrix(t []time.Time) mat.Matrix {
	feat := make([]float64, len(t))
	for i, tPnt := range t {
		feat[i] = tPnt.Sub(tr.refTime).Seconds() / secondsPerDay
	}
	return mat.NewDense(len(t), 1, feat)
}

// Fit trains the trend line on the input series
func (tr *Trend) Fit(t []time.Time, y []float64) error {
	td, err := timedataset.NewUnivariateDataset(t, y)
	if err != nil {
		return fmt.Errorf("unable to create training dataset, %w", err)
	}
	td = td.DropNan()
	if len(td.T) < 2 {
		return timedataset.ErrNoTrainingData
	}

	tr.refTime = td.T[0]
	x := tr.designMatrix(td.T)
	yMx := mat.NewDense(len(td.Y), 1, td.Y)
	if err := tr.model.Fit(x, yMx); err != nil {
		return fmt.Errorf("unable to fit trend, %w", err)
	}

	predicted, err := tr.model.Predict(x)
	if err != nil {
		return fmt.Errorf("unable to compute training residual, %w", err)
	}
	residual := make([]float64, len(predicted))
	for i := range predicted {
		residual[i] = td.Y[i] - predicted[i]
	}
	_, stddev := stat.MeanStdDev(residual, nil)
	tr.bandWidth = tr.opt.ResidualZscore * stddev

	tr.trained = true
	return nil
}

// Predict produces the point forecast along with lower and upper interval
// bounds for the requested times
func (tr *Trend) Predict(t []time.Time) ([]float64, []float64, []float64, error) {
	if !tr.trained {
		return nil, nil, nil, ErrUntrainedTrend
	}

	point, err := tr.model.Predict(tr.designMatrix(t))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("unable to predict trend, %w", err)
	}

	lower := make([]float64, len(point))
	upper := make([]float64, len(point))
	for i, v := range point {
		lower[i] = v - tr.bandWidth
		upper[i] = v + tr.bandWidth
	}
	return point, lower, upper, nil
}
