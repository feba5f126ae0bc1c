package plot

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"
)

// pngMagic is the PNG file signature.
var pngMagic = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}

// renderToPNG renders a figure and verifies the output is a PNG.
func renderToPNG(t *testing.T, f Figure) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Fatal("output is not a PNG")
	}
	return buf.Bytes()
}

// TestDistributionFigure tests the histogram and KDE figure.
func TestDistributionFigure(t *testing.T) {
	t.Parallel()

	t.Run("renders PNG", func(t *testing.T) {
		t.Parallel()

		fig := &DistributionFigure{
			Column: "income",
			Values: []float64{1, 2, 2, 3, 3, 3, 4, 4, 5, 10},
			Bins:   5,
			Width:  400,
			Height: 300,
		}
		renderToPNG(t, fig)
	})

	t.Run("file name derives from column", func(t *testing.T) {
		t.Parallel()

		fig := &DistributionFigure{Column: "net income ($)"}
		if fig.Filename() != "distribution_net_income____.png" {
			t.Errorf("unexpected file name %q", fig.Filename())
		}
	})

	t.Run("empty values fail", func(t *testing.T) {
		t.Parallel()

		fig := &DistributionFigure{Column: "x", Bins: 10, Width: 400, Height: 300}
		if err := fig.Render(io.Discard); !errors.Is(err, ErrNoData) {
			t.Errorf("expected ErrNoData, got %v", err)
		}
	})
}

// TestScatterFigure tests the scatter figure.
func TestScatterFigure(t *testing.T) {
	t.Parallel()

	t.Run("single group", func(t *testing.T) {
		t.Parallel()

		fig := &ScatterFigure{
			XColumn: "age",
			YColumn: "income",
			Groups: []ScatterGroup{
				{Label: "all", X: []float64{1, 2, 3, 4}, Y: []float64{2, 4, 6, 8}},
			},
			Width:  400,
			Height: 300,
		}
		renderToPNG(t, fig)
	})

	t.Run("grouped by category", func(t *testing.T) {
		t.Parallel()

		fig := &ScatterFigure{
			XColumn: "age",
			YColumn: "income",
			Groups: []ScatterGroup{
				{Label: "A", X: []float64{1, 2, 3}, Y: []float64{2, 4, 6}},
				{Label: "B", X: []float64{1, 2, 3}, Y: []float64{3, 5, 7}},
			},
			Width:  400,
			Height: 300,
		}
		renderToPNG(t, fig)
	})

	t.Run("no points fail", func(t *testing.T) {
		t.Parallel()

		fig := &ScatterFigure{XColumn: "x", YColumn: "y", Width: 400, Height: 300}
		if err := fig.Render(io.Discard); !errors.Is(err, ErrNoData) {
			t.Errorf("expected ErrNoData, got %v", err)
		}
	})
}

// TestTimeSeriesFigure tests the time series figure.
func TestTimeSeriesFigure(t *testing.T) {
	t.Parallel()

	t.Run("renders PNG", func(t *testing.T) {
		t.Parallel()

		start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
		times := make([]time.Time, 10)
		values := make([]float64, 10)
		for i := range times {
			times[i] = start.AddDate(0, 0, i)
			values[i] = float64(i * i)
		}

		fig := &TimeSeriesFigure{
			TimeColumn:  "date",
			ValueColumn: "sales",
			Times:       times,
			Values:      values,
			Width:       400,
			Height:      300,
		}
		renderToPNG(t, fig)
	})

	t.Run("single point fails", func(t *testing.T) {
		t.Parallel()

		fig := &TimeSeriesFigure{
			TimeColumn:  "date",
			ValueColumn: "sales",
			Times:       []time.Time{time.Now()},
			Values:      []float64{1},
			Width:       400,
			Height:      300,
		}
		if err := fig.Render(io.Discard); !errors.Is(err, ErrNoData) {
			t.Errorf("expected ErrNoData, got %v", err)
		}
	})
}

// TestMissingFigure tests the missing values bar chart.
func TestMissingFigure(t *testing.T) {
	t.Parallel()

	t.Run("renders PNG", func(t *testing.T) {
		t.Parallel()

		fig := &MissingFigure{
			Counts: map[string]int{"age": 5, "income": 12, "complete": 0},
			Width:  400,
			Height: 300,
		}
		renderToPNG(t, fig)
	})

	t.Run("all complete fails", func(t *testing.T) {
		t.Parallel()

		fig := &MissingFigure{Counts: map[string]int{"a": 0}, Width: 400, Height: 300}
		if err := fig.Render(io.Discard); !errors.Is(err, ErrNoData) {
			t.Errorf("expected ErrNoData, got %v", err)
		}
	})
}

// TestSummaryFigure tests the research summary panel.
func TestSummaryFigure(t *testing.T) {
	t.Parallel()

	t.Run("renders PNG", func(t *testing.T) {
		t.Parallel()

		fig := &SummaryFigure{
			Source:       "survey.csv",
			Rows:         120,
			Cols:         7,
			KindCounts:   map[string]int{"numeric": 4, "categorical": 2, "datetime": 1},
			MissingCells: 9,
			Columns: []SummaryColumn{
				{Name: "age", Count: 115, Missing: 5, Mean: 34.2, StdDev: 8.1, Min: 18, Max: 67},
				{Name: "income", Count: 116, Missing: 4, Mean: 48000, StdDev: 12000, Min: 21000, Max: 95000},
			},
			Width:  600,
			Height: 400,
		}
		renderToPNG(t, fig)
	})

	t.Run("renders without numeric columns", func(t *testing.T) {
		t.Parallel()

		fig := &SummaryFigure{
			Source: "notes.csv",
			Rows:   10,
			Cols:   2,
			Width:  400,
			Height: 300,
		}
		renderToPNG(t, fig)
	})

	t.Run("empty dataset fails", func(t *testing.T) {
		t.Parallel()

		fig := &SummaryFigure{Width: 400, Height: 300}
		if err := fig.Render(io.Discard); !errors.Is(err, ErrNoData) {
			t.Errorf("expected ErrNoData, got %v", err)
		}
	})

	t.Run("has fixed file name", func(t *testing.T) {
		t.Parallel()

		fig := &SummaryFigure{}
		if fig.Filename() != "research_summary.png" {
			t.Errorf("unexpected file name %q", fig.Filename())
		}
	})
}

// TestHeatmapFigure tests the correlation heatmap raster.
func TestHeatmapFigure(t *testing.T) {
	t.Parallel()

	t.Run("renders PNG", func(t *testing.T) {
		t.Parallel()

		fig := &HeatmapFigure{
			Columns: []string{"a", "b", "c"},
			Matrix: [][]float64{
				{1, 0.5, -0.3},
				{0.5, 1, 0.1},
				{-0.3, 0.1, 1},
			},
			Width:  400,
			Height: 400,
		}
		renderToPNG(t, fig)
	})

	t.Run("empty matrix fails", func(t *testing.T) {
		t.Parallel()

		fig := &HeatmapFigure{Width: 400, Height: 400}
		if err := fig.Render(io.Discard); !errors.Is(err, ErrNoData) {
			t.Errorf("expected ErrNoData, got %v", err)
		}
	})
}

// TestHeatmapColor tests the diverging color scale.
func TestHeatmapColor(t *testing.T) {
	t.Parallel()

	zero := heatmapColor(0)
	if zero.R != 255 || zero.G != 255 || zero.B != 255 {
		t.Errorf("expected white at 0, got %+v", zero)
	}

	pos := heatmapColor(1)
	if pos.R != 255 || pos.G >= 255 || pos.B >= 255 {
		t.Errorf("expected red at 1, got %+v", pos)
	}

	neg := heatmapColor(-1)
	if neg.B != 255 || neg.R >= 255 {
		t.Errorf("expected blue at -1, got %+v", neg)
	}
}

// TestBoxFigure tests the grouped box plot raster.
func TestBoxFigure(t *testing.T) {
	t.Parallel()

	t.Run("renders PNG", func(t *testing.T) {
		t.Parallel()

		fig := &BoxFigure{
			ValueColumn: "income",
			GroupColumn: "group",
			Groups: []BoxGroup{
				{Label: "A", Values: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}},
				{Label: "B", Values: []float64{4, 5, 6, 7, 8, 9, 10, 20}},
			},
			Width:  400,
			Height: 300,
		}
		renderToPNG(t, fig)
	})

	t.Run("file name includes group", func(t *testing.T) {
		t.Parallel()

		grouped := &BoxFigure{ValueColumn: "income", GroupColumn: "city"}
		if grouped.Filename() != "box_income_by_city.png" {
			t.Errorf("unexpected file name %q", grouped.Filename())
		}
		single := &BoxFigure{ValueColumn: "income"}
		if single.Filename() != "box_income.png" {
			t.Errorf("unexpected file name %q", single.Filename())
		}
	})

	t.Run("no groups fail", func(t *testing.T) {
		t.Parallel()

		fig := &BoxFigure{ValueColumn: "x", Width: 400, Height: 300}
		if err := fig.Render(io.Discard); !errors.Is(err, ErrNoData) {
			t.Errorf("expected ErrNoData, got %v", err)
		}
	})
}

// TestComputeBox tests the five-number summary geometry.
func TestComputeBox(t *testing.T) {
	t.Parallel()

	b := computeBox([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 100})

	if b.median != 5.5 {
		t.Errorf("expected median 5.5, got %v", b.median)
	}
	// 100 is outside the upper fence, so the whisker stops at 9
	if b.whiskerHi != 9 {
		t.Errorf("expected upper whisker 9, got %v", b.whiskerHi)
	}
	if b.whiskerLo != 1 {
		t.Errorf("expected lower whisker 1, got %v", b.whiskerLo)
	}
}
