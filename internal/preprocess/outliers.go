package preprocess

import (
	"context"
	"fmt"
	"math"

	"github.com/thesiskit/thesiskit/internal/model"
	"github.com/thesiskit/thesiskit/internal/stats"
)

// Outlier detection methods.
const (
	// DetectIQR fences values outside Q1 - 1.5*IQR .. Q3 + 1.5*IQR.
	DetectIQR = "iqr"

	// DetectZScore fences values more than three standard deviations
	// from the mean.
	DetectZScore = "zscore"
)

// Outlier treatments.
const (
	// TreatNone only records the detected bounds.
	TreatNone = "none"

	// TreatCap clamps values to the 1st/99th percentiles (winsorizing).
	// The detection method only decides what counts as an outlier in the
	// summary; the cap limits are always percentile-based.
	TreatCap = "cap"

	// TreatRemove drops rows containing outliers.
	TreatRemove = "remove"

	// TreatLog applies a log1p transform to compress the tail.
	// Columns with negative values are skipped.
	TreatLog = "log"
)

// zscoreFence is the z-score beyond which a value counts as an outlier.
const zscoreFence = 3.0

// iqrMultiplier is the Tukey fence multiplier.
const iqrMultiplier = 1.5

// OutlierStep detects and optionally treats outliers in numeric columns.
type OutlierStep struct {
	// Method is DetectIQR or DetectZScore.
	Method string

	// Treatment is one of the Treat* constants.
	Treatment string

	// Columns restricts the step to specific numeric columns.
	// Empty means all numeric columns.
	Columns []string
}

// Name returns the step name.
func (s *OutlierStep) Name() string { return "outliers" }

// Do detects outliers per numeric column and applies the treatment.
func (s *OutlierStep) Do(_ context.Context, state *State) error {
	switch s.Method {
	case DetectIQR, DetectZScore:
	default:
		return fmt.Errorf("%w: %s", ErrUnknownStrategy, s.Method)
	}
	switch s.Treatment {
	case TreatNone, TreatCap, TreatRemove, TreatLog:
	default:
		return fmt.Errorf("%w: %s", ErrUnknownStrategy, s.Treatment)
	}

	d := state.Data
	numeric := d.NumericColumns()
	if len(numeric) == 0 {
		return ErrNoNumericColumns
	}

	columns, err := resolveColumns(d, s.Columns, numeric)
	if err != nil {
		return err
	}

	removeRows := make(map[int]struct{})

	for _, name := range columns {
		observed, err := d.NumericValues(name)
		if err != nil {
			return err
		}
		if len(observed) < 4 {
			continue
		}

		bounds := s.bounds(observed)

		values, nan := columnFloats(d, name)
		count := 0
		for i, v := range values {
			if nan[i] || math.IsNaN(v) {
				continue
			}
			if v < bounds.Lower || v > bounds.Upper {
				count++
				if s.Treatment == TreatRemove {
					removeRows[i] = struct{}{}
				}
			}
		}

		bounds.Count = count
		bounds.Percent = 100 * float64(count) / float64(len(observed))
		state.Summary.RecordOutliers(name, bounds)

		switch s.Treatment {
		case TreatCap:
			lower := stats.Quantile(observed, 0.01)
			upper := stats.Quantile(observed, 0.99)
			capped := make([]float64, len(values))
			for i, v := range values {
				switch {
				case nan[i] || math.IsNaN(v):
					capped[i] = math.NaN()
				case v < lower:
					capped[i] = lower
				case v > upper:
					capped[i] = upper
				default:
					capped[i] = v
				}
			}
			replaceFloatColumn(d, name, capped)
		case TreatLog:
			s.logTransform(state, name)
		}
	}

	if s.Treatment == TreatRemove && len(removeRows) > 0 {
		before := d.Rows()
		keep := make([]int, 0, before-len(removeRows))
		for i := 0; i < before; i++ {
			if _, drop := removeRows[i]; !drop {
				keep = append(keep, i)
			}
		}
		keepRows(d, keep)
		state.Summary.DroppedRows += before - len(keep)
	}

	return nil
}

// bounds computes the outlier fence for the configured method.
func (s *OutlierStep) bounds(observed []float64) model.OutlierBounds {
	if s.Method == DetectZScore {
		mean := stats.Mean(observed)
		std := stats.StdDev(observed)
		return model.OutlierBounds{
			Method: DetectZScore,
			Lower:  mean - zscoreFence*std,
			Upper:  mean + zscoreFence*std,
		}
	}

	q1 := stats.Quantile(observed, 0.25)
	q3 := stats.Quantile(observed, 0.75)
	iqr := q3 - q1
	return model.OutlierBounds{
		Method: DetectIQR,
		Lower:  q1 - iqrMultiplier*iqr,
		Upper:  q3 + iqrMultiplier*iqr,
	}
}

// logTransform applies log1p to a column when all values are non-negative.
func (s *OutlierStep) logTransform(state *State, name string) {
	d := state.Data
	values, nan := columnFloats(d, name)

	for i, v := range values {
		if !nan[i] && !math.IsNaN(v) && v < 0 {
			// log1p of a negative tail is undefined; skip the column.
			return
		}
	}

	transformed := make([]float64, len(values))
	for i, v := range values {
		if nan[i] || math.IsNaN(v) {
			transformed[i] = math.NaN()
		} else {
			transformed[i] = math.Log1p(v)
		}
	}

	replaceFloatColumn(d, name, transformed)
	state.Summary.RecordScaling(name, "log1p")
}
