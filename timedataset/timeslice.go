package timedataset

import (
	"errors"
	"math"
	"time"
)

var ErrCannotInferFreq = errors.New("cannot infer frequency from time slice")

// TimeSlice wraps an ordered slice of time points with helpers to reason
// about its span and frequency and to extend it into a forecast horizon.
type TimeSlice []time.Time

func (t TimeSlice) StartTime() time.Time {
	var startTime time.Time
	if len(t) < 1 {
		return startTime
	}
	return t[0]
}

func (t TimeSlice) EndTime() time.Time {
	var lastTime time.Time
	if len(t) < 1 {
		return lastTime
	}

	lastTime = t[len(t)-1]
	return lastTime
}

// EstimateFreq returns the most common delta between consecutive time points
// preferring the smallest delta on ties
func (t TimeSlice) EstimateFreq() (time.Duration, error) {
	if len(t) < 2 {
		return 0, ErrCannotInferFreq
	}

	frequencies := make(map[time.Duration]int)
	for i := 1; i < len(t); i++ {
		delta := t[i].Sub(t[i-1])
		frequencies[delta] += 1
	}

	var maxCnt int
	maxDelta := time.Duration(math.MaxInt64)

	for delta, cnt := range frequencies {
		if cnt > maxCnt || (cnt == maxCnt && delta < maxDelta) {
			maxCnt = cnt
			maxDelta = delta
		}
	}
	return maxDelta, nil
}

// Horizon returns the n time points following the end of the slice at the
// given interval
func (t TimeSlice) Horizon(n int, interval time.Duration) TimeSlice {
	horizon := make(TimeSlice, 0, n)
	last := t.EndTime()
	for i := 0; i < n; i++ {
		horizon = append(horizon, last.Add(time.Duration(i+1)*interval))
	}
	return horizon
}
