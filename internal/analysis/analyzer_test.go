package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"

	"github.com/thesiskit/thesiskit/internal/dataset"
)

// testData builds a dataset from records with a header row.
func testData(t *testing.T, records [][]string) *dataset.Dataset {
	t.Helper()
	df := dataframe.LoadRecords(records, dataframe.HasHeader(true))
	if df.Err != nil {
		t.Fatalf("failed to build test frame: %v", df.Err)
	}
	return dataset.FromFrame(df)
}

// almostEqual reports whether two floats agree to the given tolerance.
func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// twoGroupRecords holds paired observations for two groups.
// Group a: 1..5, group b: 2..6.
func twoGroupRecords() [][]string {
	return [][]string{
		{"value", "group"},
		{"1", "a"}, {"2", "a"}, {"3", "a"}, {"4", "a"}, {"5", "a"},
		{"2", "b"}, {"3", "b"}, {"4", "b"}, {"5", "b"}, {"6", "b"},
	}
}

// TestAnalyzerCorrelation tests the correlation matrix over complete rows.
func TestAnalyzerCorrelation(t *testing.T) {
	t.Parallel()

	t.Run("perfectly correlated columns", func(t *testing.T) {
		t.Parallel()

		a := New(testData(t, [][]string{
			{"x", "y"},
			{"1", "2"}, {"2", "4"}, {"3", "6"}, {"4", "8"},
		}))

		result, err := a.Correlation()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.CompleteRows != 4 {
			t.Errorf("expected 4 complete rows, got %d", result.CompleteRows)
		}
		if !almostEqual(result.At(0, 1), 1, 1e-12) {
			t.Errorf("expected correlation 1, got %v", result.At(0, 1))
		}
	})

	t.Run("skips rows with missing values", func(t *testing.T) {
		t.Parallel()

		a := New(testData(t, [][]string{
			{"x", "y"},
			{"1", "2"}, {"2", "NaN"}, {"3", "6"}, {"4", "8"},
		}))

		result, err := a.Correlation()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.CompleteRows != 3 {
			t.Errorf("expected 3 complete rows, got %d", result.CompleteRows)
		}
	})

	t.Run("one numeric column fails", func(t *testing.T) {
		t.Parallel()

		a := New(testData(t, [][]string{
			{"x", "label"},
			{"1", "u"}, {"2", "v"},
		}))

		if _, err := a.Correlation(); !errors.Is(err, ErrNoNumericColumns) {
			t.Errorf("expected ErrNoNumericColumns, got %v", err)
		}
	})
}

// TestAnalyzerTTest tests the two-sample t-test path.
func TestAnalyzerTTest(t *testing.T) {
	t.Parallel()

	t.Run("known result", func(t *testing.T) {
		t.Parallel()

		a := New(testData(t, twoGroupRecords()))

		result, err := a.TTest("value", "group", false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Group1 != "a" || result.Group2 != "b" {
			t.Errorf("unexpected group order: %q, %q", result.Group1, result.Group2)
		}
		if result.N1 != 5 || result.N2 != 5 {
			t.Errorf("unexpected sample sizes: %d, %d", result.N1, result.N2)
		}
		if !almostEqual(result.TStatistic, -1, 1e-12) {
			t.Errorf("expected t = -1, got %v", result.TStatistic)
		}
		if !almostEqual(result.PValue, 0.3466, 1e-3) {
			t.Errorf("expected p near 0.3466, got %v", result.PValue)
		}
		if result.Significant {
			t.Error("p above 0.05 flagged as significant")
		}
	})

	t.Run("three groups fail", func(t *testing.T) {
		t.Parallel()

		a := New(testData(t, [][]string{
			{"value", "group"},
			{"1", "a"}, {"2", "b"}, {"3", "c"},
		}))

		if _, err := a.TTest("value", "group", false); !errors.Is(err, ErrGroupCount) {
			t.Errorf("expected ErrGroupCount, got %v", err)
		}
	})
}

// TestAnalyzerANOVA tests the one-way ANOVA path.
func TestAnalyzerANOVA(t *testing.T) {
	t.Parallel()

	a := New(testData(t, [][]string{
		{"value", "group"},
		{"1", "a"}, {"2", "a"}, {"3", "a"},
		{"2", "b"}, {"3", "b"}, {"4", "b"},
		{"3", "c"}, {"4", "c"}, {"5", "c"},
	}))

	result, err := a.ANOVA("value", "group")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Groups) != 3 {
		t.Errorf("expected 3 groups, got %v", result.Groups)
	}
	if !almostEqual(result.FStatistic, 3, 1e-12) {
		t.Errorf("expected F = 3, got %v", result.FStatistic)
	}
	if !almostEqual(result.PValue, 0.125, 1e-3) {
		t.Errorf("expected p near 0.125, got %v", result.PValue)
	}
}

// TestAnalyzerRegression tests the OLS path.
func TestAnalyzerRegression(t *testing.T) {
	t.Parallel()

	a := New(testData(t, [][]string{
		{"x", "y"},
		{"1", "2"}, {"2", "4"}, {"3", "5"}, {"4", "4"}, {"5", "5"},
	}))

	result, err := a.Regression("y", []string{"x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.N != 5 {
		t.Errorf("expected 5 observations, got %d", result.N)
	}
	if len(result.Coefficients) != 2 {
		t.Fatalf("expected intercept and one slope, got %d", len(result.Coefficients))
	}
	if result.Coefficients[0].Name != "const" {
		t.Errorf("expected intercept first, got %q", result.Coefficients[0].Name)
	}
	if !almostEqual(result.Coefficients[0].Estimate, 2.2, 1e-9) {
		t.Errorf("expected intercept 2.2, got %v", result.Coefficients[0].Estimate)
	}
	if !almostEqual(result.Coefficients[1].Estimate, 0.6, 1e-9) {
		t.Errorf("expected slope 0.6, got %v", result.Coefficients[1].Estimate)
	}
	if !almostEqual(result.RSquared, 0.6, 1e-9) {
		t.Errorf("expected R-squared 0.6, got %v", result.RSquared)
	}
}

// TestAnalyzerRun tests the orchestrated analysis run.
func TestAnalyzerRun(t *testing.T) {
	t.Parallel()

	t.Run("two levels pick the t-test", func(t *testing.T) {
		t.Parallel()

		a := New(testData(t, twoGroupRecords()))

		report := a.Run(Request{
			TestColumn:  "value",
			GroupColumn: "group",
		})
		if report.TTest == nil {
			t.Fatal("expected a t-test result")
		}
		if report.ANOVA != nil {
			t.Error("ANOVA ran for a two-level group column")
		}
	})

	t.Run("three levels pick ANOVA", func(t *testing.T) {
		t.Parallel()

		a := New(testData(t, [][]string{
			{"value", "group"},
			{"1", "a"}, {"2", "a"},
			{"2", "b"}, {"3", "b"},
			{"3", "c"}, {"4", "c"},
		}))

		report := a.Run(Request{
			TestColumn:  "value",
			GroupColumn: "group",
		})
		if report.ANOVA == nil {
			t.Fatal("expected an ANOVA result")
		}
		if report.TTest != nil {
			t.Error("t-test ran for a three-level group column")
		}
	})

	t.Run("failures are recorded, not fatal", func(t *testing.T) {
		t.Parallel()

		a := New(testData(t, twoGroupRecords()))

		report := a.Run(Request{
			Correlation: true,
			Dependent:   "value",
			Independent: []string{"no_such_column"},
		})
		if report.ErrorMessage == "" {
			t.Error("expected the regression failure to be recorded")
		}
		if report.Exploratory == nil {
			t.Error("exploratory result missing after partial failure")
		}
	})

	t.Run("records performed analyses in order", func(t *testing.T) {
		t.Parallel()

		a := New(testData(t, [][]string{
			{"x", "y"},
			{"1", "2"}, {"2", "4"}, {"3", "5"}, {"4", "4"}, {"5", "5"},
		}))

		report := a.Run(Request{
			Correlation: true,
			Dependent:   "y",
			Independent: []string{"x"},
		})

		want := []string{"exploratory", "correlation", "regression"}
		if len(report.PerformedAnalyses) != len(want) {
			t.Fatalf("expected %v, got %v", want, report.PerformedAnalyses)
		}
		for i, name := range want {
			if report.PerformedAnalyses[i] != name {
				t.Errorf("expected %q at position %d, got %q", name, i, report.PerformedAnalyses[i])
			}
		}
	})
}
