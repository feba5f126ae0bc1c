package preprocess

import (
	"context"
	"math"

	"github.com/go-gota/gota/series"
)

// maxInteractionFeatures bounds how many pairwise products are created
// when no explicit pairs are configured. All-pairs expansion of a wide
// dataset would add hundreds of columns nobody asked for.
const maxInteractionFeatures = 10

// InteractionsStep creates pairwise product features from numeric columns.
type InteractionsStep struct {
	// Pairs lists explicit column pairs to multiply. Empty means all
	// pairs of numeric columns, up to maxInteractionFeatures.
	Pairs [][2]string
}

// Name returns the step name.
func (s *InteractionsStep) Name() string { return "interactions" }

// Do creates the interaction columns. The new column for columns a and b
// is named "a_x_b". Rows missing either factor are missing in the product.
func (s *InteractionsStep) Do(_ context.Context, state *State) error {
	d := state.Data

	pairs := s.Pairs
	if len(pairs) == 0 {
		numeric := d.NumericColumns()
		for i := 0; i < len(numeric) && len(pairs) < maxInteractionFeatures; i++ {
			for j := i + 1; j < len(numeric) && len(pairs) < maxInteractionFeatures; j++ {
				pairs = append(pairs, [2]string{numeric[i], numeric[j]})
			}
		}
	}

	for _, pair := range pairs {
		a, b := pair[0], pair[1]
		if !d.HasColumn(a) || !d.HasColumn(b) {
			return ErrColumnNotFound
		}

		va, nanA := columnFloats(d, a)
		vb, nanB := columnFloats(d, b)

		product := make([]float64, len(va))
		for i := range va {
			if nanA[i] || nanB[i] || math.IsNaN(va[i]) || math.IsNaN(vb[i]) {
				product[i] = math.NaN()
				continue
			}
			product[i] = va[i] * vb[i]
		}

		name := a + "_x_" + b
		df := d.Frame().Mutate(series.New(product, series.Float, name))
		d.SetFrame(df)
		state.Summary.CreatedFeatures = append(state.Summary.CreatedFeatures, name)
	}

	return nil
}
