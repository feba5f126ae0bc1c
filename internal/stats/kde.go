package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// kdePadding extends the evaluation range beyond the data range by this
// fraction of the data span so density curves taper to near zero at the
// plot edges instead of being clipped.
const kdePadding = 0.1

// KDE computes a Gaussian kernel density estimate evaluated at a regular
// grid of points spanning the data range. It returns the grid and the
// estimated densities.
//
// The bandwidth follows Scott's rule, h = sigma * n^(-1/5), the same
// default scipy's gaussian_kde uses for one-dimensional data.
func KDE(values []float64, points int) (xs, ys []float64) {
	n := len(values)
	if n == 0 || points <= 0 {
		return nil, nil
	}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	sigma := stat.StdDev(values, nil)
	if n < 2 || sigma == 0 {
		// Degenerate sample: fall back to a narrow kernel around the
		// single observed value so the curve still renders.
		sigma = math.Max(math.Abs(values[0])*0.01, 1e-3)
	}
	h := sigma * math.Pow(float64(n), -0.2)

	pad := (max - min) * kdePadding
	if pad == 0 {
		pad = 3 * h
	}
	lo, hi := min-pad, max+pad

	xs = make([]float64, points)
	ys = make([]float64, points)
	step := (hi - lo) / float64(points-1)
	if points == 1 {
		step = 0
	}

	norm := 1.0 / (float64(n) * h * math.Sqrt(2*math.Pi))
	for i := range xs {
		x := lo + float64(i)*step
		xs[i] = x

		density := 0.0
		for _, v := range values {
			z := (x - v) / h
			density += math.Exp(-0.5 * z * z)
		}
		ys[i] = density * norm
	}

	return xs, ys
}

// Histogram bins values into count equal-width bins over the data range.
// It returns the bin centers and counts. The final bin is closed on the
// right so the maximum value is counted.
func Histogram(values []float64, bins int) (centers []float64, counts []int) {
	n := len(values)
	if n == 0 || bins <= 0 {
		return nil, nil
	}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	centers = make([]float64, bins)
	counts = make([]int, bins)

	width := (max - min) / float64(bins)
	if width == 0 {
		// All values identical: everything lands in one bin.
		centers[0] = min
		counts[0] = n
		for i := 1; i < bins; i++ {
			centers[i] = min
		}
		return centers, counts
	}

	for i := range centers {
		centers[i] = min + (float64(i)+0.5)*width
	}
	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}

	return centers, counts
}
