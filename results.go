package prophetutils

import "time"

// Results represents an original-scale forecast with a point estimate and
// optional lower and upper interval bounds per time point
type Results struct {
	T        []time.Time `json:"time"`
	Forecast []float64   `json:"forecast"`
	Upper    []float64   `json:"upper"`
	Lower    []float64   `json:"lower"`
}

// validateOrder checks that every present interval bound still brackets the
// point estimate. The transforms are strictly increasing so this holds
// whenever the working-scale forecast was ordered.
func (r *Results) validateOrder() error {
	for i, v := range r.Forecast {
		if r.Lower != nil && r.Lower[i] > v {
			return ErrIntervalOrder
		}
		if r.Upper != nil && r.Upper[i] < v {
			return ErrIntervalOrder
		}
	}
	return nil
}
