package timedataset

import (
	"math"
	"math/rand"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
	"gonum.org/v1/gonum/floats"
)

// GenerateT creates a time slice of n points at the given interval ending just
// before the time returned by nowFunc.
func GenerateT(n int, interval time.Duration, nowFunc func() time.Time) []time.Time {
	t := make([]time.Time, 0, n)
	ct := time.Unix(nowFunc().Unix()/60*60, 0).Add(-time.Duration(n) * interval).UTC()
	for i := 0; i < n; i++ {
		t = append(t, ct.Add(interval*time.Duration(i)))
	}
	return t
}

// NewUSBusinessCalendar returns a business calendar observing US federal
// holidays for use with GenerateBusinessT.
func NewUSBusinessCalendar() *cal.BusinessCalendar {
	c := cal.NewBusinessCalendar()
	c.AddHoliday(us.Holidays...)
	return c
}

// GenerateBusinessT creates a daily time slice of n business days ending just
// before the time returned by nowFunc, skipping weekends and any holiday on
// the provided calendar. Series observed only on trading or business days
// produce horizons this way so the forecast lands on days that exist in the
// data. If c is nil a US business calendar is used.
func GenerateBusinessT(n int, nowFunc func() time.Time, c *cal.BusinessCalendar) []time.Time {
	if c == nil {
		c = NewUSBusinessCalendar()
	}

	t := make([]time.Time, n)
	ct := time.Unix(nowFunc().Unix()/86400*86400, 0).UTC()
	for i := n - 1; i >= 0; i-- {
		ct = ct.AddDate(0, 0, -1)
		for !c.IsWorkday(ct) {
			ct = ct.AddDate(0, 0, -1)
		}
		t[i] = ct
	}
	return t
}

// Series represents a slice of observation values with chainable helpers to
// compose simulated data.
type Series []float64

func (s Series) Add(src Series) Series {
	floats.Add(s, src)
	return s
}

// Scale multiplies every value by c
func (s Series) Scale(c float64) Series {
	floats.Scale(c, s)
	return s
}

// Exp exponentiates every value producing a strictly positive series suitable
// for exercising the log transform
func (s Series) Exp() Series {
	for i := range s {
		s[i] = math.Exp(s[i])
	}
	return s
}

// Logistic squashes every value into (lo, hi) producing a bounded series
// suitable for exercising the logit transform
func (s Series) Logistic(lo, hi float64) Series {
	for i := range s {
		s[i] = lo + (hi-lo)/(1.0+math.Exp(-s[i]))
	}
	return s
}

// SetNaN sets values within the start end time range to NaN to simulate gaps
func (s Series) SetNaN(start, end time.Time, t []time.Time) Series {
	n := len(s)
	for i := 0; i < n; i++ {
		if (t[i].After(start) || t[i].Equal(start)) && t[i].Before(end) {
			s[i] = math.NaN()
		}
	}
	return s
}

// GenerateConstY creates a constant series of n values
func GenerateConstY(n int, val float64) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, val)
	}
	return Series(y)
}

// GenerateWaveY creates a sinusoid along the input time slice
func GenerateWaveY(t []time.Time, amp, periodSec, order, timeOffset float64) Series {
	n := len(t)
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		val := amp * math.Sin(2.0*math.Pi*order/periodSec*(float64(t[i].Unix())+timeOffset))
		y = append(y, val)
	}
	return Series(y)
}

// GenerateNoise creates gaussian noise with a sinusoidally varying scale
func GenerateNoise(t []time.Time, noiseScale, amp, periodSec, order, timeOffset float64) Series {
	n := len(t)
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		scale := (noiseScale + amp*math.Sin(2.0*math.Pi*order/periodSec*(float64(t[i].Unix())+timeOffset)))
		y = append(y, rand.NormFloat64()*scale)
	}
	return Series(y)
}

// GenerateTrendY creates a linear ramp from start to end across the time slice
func GenerateTrendY(t []time.Time, start, end float64) Series {
	n := len(t)
	y := make([]float64, n)
	if n == 0 {
		return Series(y)
	}
	span := float64(t[n-1].Unix() - t[0].Unix())
	for i := 0; i < n; i++ {
		frac := 0.0
		if span > 0 {
			frac = float64(t[i].Unix()-t[0].Unix()) / span
		}
		y[i] = start + (end-start)*frac
	}
	return Series(y)
}
