package prophetutils

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/Hey-Savvie/prophet-utils/timedataset"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// LineTSeries generates an echart multi-line chart for some arbitrary time/value combination. The input
// y is a slice of series that must have the same length as the input time slice.
func LineTSeries(title string, seriesName []string, t []time.Time, y [][]float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	lineData := make([][]opts.LineData, len(y))
	for i := 0; i < len(y); i++ {
		lineData[i] = make([]opts.LineData, 0, len(y[i]))
		for j := 0; j < len(y[i]); j++ {
			if math.IsNaN(y[i][j]) {
				lineData[i] = append(lineData[i], opts.LineData{Value: nil})
				continue
			}
			lineData[i] = append(lineData[i], opts.LineData{Value: y[i][j]})
		}
	}

	line = line.SetXAxis(t)
	for i, series := range seriesName {
		line = line.AddSeries(series, lineData[i])
	}

	return line
}

// LineForecaster generates an echart line chart for a given fit result plotting the training data
// along with the original-scale fit and forecast with upper and lower interval bounds.
func LineForecaster(trainingData *timedataset.TimeDataset, fitRes, forecastRes *Results) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: "Pipeline Fit",
			},
		),
	)

	t := make([]time.Time, 0, len(fitRes.T)+len(forecastRes.T))
	t = append(t, fitRes.T...)
	t = append(t, forecastRes.T...)

	pad := func(vals []float64, leading int, total int) []opts.LineData {
		data := make([]opts.LineData, 0, total)
		for i := 0; i < leading; i++ {
			data = append(data, opts.LineData{Value: nil})
		}
		for _, v := range vals {
			if math.IsNaN(v) {
				data = append(data, opts.LineData{Value: nil})
				continue
			}
			data = append(data, opts.LineData{Value: v})
		}
		for len(data) < total {
			data = append(data, opts.LineData{Value: nil})
		}
		return data
	}

	n := len(t)
	line.SetXAxis(t).
		AddSeries("Actual", pad(trainingData.Y, 0, n)).
		AddSeries("Fit", pad(fitRes.Forecast, 0, n)).
		AddSeries("Forecast", pad(forecastRes.Forecast, len(fitRes.T), n)).
		AddSeries("Upper", pad(forecastRes.Upper, len(fitRes.T), n)).
		AddSeries("Lower", pad(forecastRes.Lower, len(fitRes.T), n))
	return line
}

// PlotOpts sets the horizon to forecast out. By default will use 10% of the training size with
// the interval inferred from the most common delta between training time points. A zero
// HorizonInterval falls back to the inferred interval.
type PlotOpts struct {
	HorizonCnt      int
	HorizonInterval time.Duration
}

func (p *Pipeline) plotHorizon(opt *PlotOpts) (timedataset.TimeSlice, error) {
	td := p.TrainingData()
	if td == nil || len(td.T) == 0 {
		return nil, ErrEmptyTimeDataset
	}
	tSlice := timedataset.TimeSlice(td.T)

	horizonInterval, err := tSlice.EstimateFreq()
	if err != nil {
		return nil, ErrCannotInferInterval
	}
	horizonCnt := len(td.T) / 10
	if opt != nil {
		horizonCnt = opt.HorizonCnt
		if opt.HorizonInterval > 0 {
			horizonInterval = opt.HorizonInterval
		}
	}
	if horizonCnt < 1 {
		horizonCnt = 1
	}
	return tSlice.Horizon(horizonCnt, horizonInterval), nil
}

// PlotFit uses the Apache Echarts library to generate an html file showing the original-scale
// fit and forecast of the pipeline along with the working-scale series the model trains on
func (p *Pipeline) PlotFit(path string, opt *PlotOpts) error {
	horizon, err := p.plotHorizon(opt)
	if err != nil {
		return err
	}

	forecastRes, err := p.Predict(horizon)
	if err != nil {
		return fmt.Errorf("unable to predict with horizon, %w", err)
	}

	td := p.TrainingData()
	cleaned := td.DropNan()
	work, err := p.trans.Apply(cleaned.Y)
	if err != nil {
		return fmt.Errorf("unable to apply transform to training data, %w", err)
	}

	page := components.NewPage()
	page.AddCharts(
		LineForecaster(td, p.FitResults(), forecastRes),
		LineTSeries(
			"Working Scale",
			[]string{"Transformed"},
			cleaned.T,
			[][]float64{work},
		),
	)
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return page.Render(io.MultiWriter(file))
}
