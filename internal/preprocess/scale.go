package preprocess

import (
	"context"
	"fmt"
	"math"

	"github.com/thesiskit/thesiskit/internal/stats"
)

// Scaling methods.
const (
	// ScaleStandard centers to zero mean and unit variance.
	ScaleStandard = "standard"

	// ScaleMinMax rescales to the 0..1 range.
	ScaleMinMax = "minmax"
)

// ScaleStep rescales numeric columns.
type ScaleStep struct {
	// Method is ScaleStandard or ScaleMinMax.
	Method string

	// Columns restricts the step to specific numeric columns.
	// Empty means all numeric columns.
	Columns []string
}

// Name returns the step name.
func (s *ScaleStep) Name() string { return "scale" }

// Do rescales the configured numeric columns. Constant columns are
// skipped because both methods would divide by zero.
func (s *ScaleStep) Do(_ context.Context, state *State) error {
	switch s.Method {
	case ScaleStandard, ScaleMinMax:
	default:
		return fmt.Errorf("%w: %s", ErrUnknownStrategy, s.Method)
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

	for _, name := range columns {
		observed, err := d.NumericValues(name)
		if err != nil {
			return err
		}
		if len(observed) == 0 {
			continue
		}

		var shift, scale float64
		if s.Method == ScaleStandard {
			// Population denominator, the convention feature scalers use.
			shift = stats.Mean(observed)
			scale = stats.PopStdDev(observed)
		} else {
			min, max := observed[0], observed[0]
			for _, v := range observed {
				if v < min {
					min = v
				}
				if v > max {
					max = v
				}
			}
			shift = min
			scale = max - min
		}
		if scale == 0 {
			continue
		}

		values, nan := columnFloats(d, name)
		scaled := make([]float64, len(values))
		for i, v := range values {
			if nan[i] || math.IsNaN(v) {
				scaled[i] = math.NaN()
			} else {
				scaled[i] = (v - shift) / scale
			}
		}

		replaceFloatColumn(d, name, scaled)
		state.Summary.RecordScaling(name, s.Method)
	}

	return nil
}
