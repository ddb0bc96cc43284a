package transform

import "fmt"

// Model is the serializeable format of a fitted transform composing of the
// variant type, its input options, and the resolved parameters. Callers that
// want to reuse a transform across forecasting runs can persist this and
// rebuild the transform with NewFromModel.
type Model struct {
	Type  Type        `json:"type"`
	Log   *LogModel   `json:"log,omitempty"`
	Logit *LogitModel `json:"logit,omitempty"`
}

// LogModel carries the resolved parameters of a fitted Log transform
type LogModel struct {
	Options *LogOptions `json:"options"`
	Offset  float64     `json:"offset"`
}

// LogitModel carries the resolved parameters of a fitted Logit transform
type LogitModel struct {
	Options *LogitOptions `json:"options"`
	Lower   float64       `json:"lower"`
	Upper   float64       `json:"upper"`
}

// NewFromModel reconstructs a fitted transform from a serialized Model. The
// result is immediately usable for apply and invert without fitting again.
func NewFromModel(m Model) (Transform, error) {
	switch m.Type {
	case TypeLog:
		if m.Log == nil {
			return nil, fmt.Errorf("model has no log parameters, %w", ErrNotFitted)
		}
		l, err := NewLog(m.Log.Options)
		if err != nil {
			return nil, err
		}
		l.offset = m.Log.Offset
		l.fitted = true
		return l, nil
	case TypeLogit:
		if m.Logit == nil {
			return nil, fmt.Errorf("model has no logit parameters, %w", ErrNotFitted)
		}
		l, err := NewLogit(m.Logit.Options)
		if err != nil {
			return nil, err
		}
		if m.Logit.Lower >= m.Logit.Upper {
			return nil, fmt.Errorf(
				"model lower bound %f is not less than upper bound %f, %w",
				m.Logit.Lower, m.Logit.Upper, ErrInvalidBounds,
			)
		}
		l.lower = m.Logit.Lower
		l.upper = m.Logit.Upper
		l.fitted = true
		return l, nil
	}
	return nil, fmt.Errorf("%q, %w", m.Type, ErrUnknownType)
}
