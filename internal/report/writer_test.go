package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/thesiskit/thesiskit/internal/model"
)

// testReport creates a report with every analysis populated.
func testReport() *model.AnalysisReport {
	report := model.NewAnalysisReport("data/survey.csv")
	report.DateAnalyzed = time.Date(2025, time.January, 15, 14, 23, 1, 0, time.UTC)
	report.Rows = 100
	report.Cols = 4
	report.Columns = []string{"age", "income", "group", "date"}

	report.Exploratory = &model.ExploratoryResult{
		Rows: 100,
		Cols: 4,
		ColumnKinds: map[string]string{
			"age": "numeric", "income": "numeric",
			"group": "categorical", "date": "datetime",
		},
		MissingCounts: map[string]int{"income": 5},
		Numeric: map[string]model.ColumnStats{
			"age": {
				Count: 100, Mean: 35.2, StdDev: 9.8,
				Min: 18, Q25: 28, Median: 35, Q75: 42, Max: 79,
			},
			"income": {
				Count: 95, Mean: 42000.5, StdDev: 18000.1,
				Min: 8000, Q25: 29000, Median: 39000, Q75: 52000, Max: 120000,
			},
		},
		Categorical: map[string]model.CategoricalStats{
			"group": {UniqueCount: 3, MostCommon: "A", MostCommonCount: 40},
		},
	}

	report.Correlation = &model.CorrelationResult{
		Columns:      []string{"age", "income"},
		Matrix:       [][]float64{{1, 0.42}, {0.42, 1}},
		CompleteRows: 95,
	}

	report.TTest = &model.TTestResult{
		GroupColumn: "group", TestColumn: "income",
		Group1: "A", Group2: "B",
		N1: 40, N2: 35,
		TStatistic: 2.31, PValue: 0.0237, Significant: true,
	}

	report.ANOVA = &model.ANOVAResult{
		GroupColumn: "group", TestColumn: "income",
		Groups:     []string{"A", "B", "C"},
		FStatistic: 1.12, PValue: 0.33, Significant: false,
	}

	report.Regression = &model.RegressionResult{
		Dependent:   "income",
		Independent: []string{"age"},
		N:           95,
		RSquared:    0.18, AdjRSquared: 0.17,
		FStatistic: 20.4, FPValue: 0.00002,
		Coefficients: []model.Coefficient{
			{Name: "const", Estimate: 15000, StdError: 6000, TValue: 2.5, PValue: 0.014},
			{Name: "age", Estimate: 770, StdError: 170, TValue: 4.52, PValue: 0.00002},
		},
	}

	report.Figures = []string{"figures/correlation_heatmap.png", "figures/distribution_income.png"}
	report.PerformedAnalyses = []string{"exploratory", "correlation", "t_test", "anova", "regression"}

	return report
}

// TestSimpleWriter tests the human-readable text writer.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes all sections", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		n, err := w.Write(testReport())
		if err != nil {
			t.Fatalf("write failed: %v", err)
		}
		if n != buf.Len() {
			t.Errorf("reported %d bytes, wrote %d", n, buf.Len())
		}

		out := buf.String()
		for _, want := range []string{
			"DATA ANALYSIS REPORT",
			"data/survey.csv",
			"DESCRIPTIVE STATISTICS",
			"CORRELATION MATRIX",
			"INDEPENDENT T-TEST",
			"ONE-WAY ANOVA",
			"OLS REGRESSION",
			"FIGURES",
			"figures/correlation_heatmap.png",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q", want)
			}
		}
	})

	t.Run("marks significance", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(testReport()); err != nil {
			t.Fatalf("write failed: %v", err)
		}

		out := buf.String()
		if !strings.Contains(out, "SIGNIFICANT at alpha = 0.05") {
			t.Error("t-test significance not reported")
		}
		if !strings.Contains(out, "not significant at alpha = 0.05") {
			t.Error("ANOVA non-significance not reported")
		}
	})

	t.Run("omits absent sections by default", func(t *testing.T) {
		t.Parallel()

		report := model.NewAnalysisReport("data/survey.csv")

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(report); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		if strings.Contains(buf.String(), "OLS REGRESSION") {
			t.Error("empty section shown without showEmpty")
		}
	})

	t.Run("shows absent sections with showEmpty", func(t *testing.T) {
		t.Parallel()

		report := model.NewAnalysisReport("data/survey.csv")

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithShowEmpty(true)).Write(report); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, "OLS REGRESSION") {
			t.Error("empty section missing with showEmpty")
		}
		if !strings.Contains(out, "Not performed") {
			t.Error("placeholder missing with showEmpty")
		}
	})

	t.Run("verbose adds quartiles", func(t *testing.T) {
		t.Parallel()

		var quiet, verbose bytes.Buffer
		if _, err := NewSimpleWriter(&quiet).Write(testReport()); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		if _, err := NewSimpleWriter(&verbose, WithVerbose(true)).Write(testReport()); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		if strings.Contains(quiet.String(), "25%:") {
			t.Error("quartiles shown without verbose")
		}
		if !strings.Contains(verbose.String(), "25%:") {
			t.Error("quartiles missing with verbose")
		}
	})

	t.Run("reports errors in status", func(t *testing.T) {
		t.Parallel()

		report := testReport()
		report.ErrorMessage = "column not found"

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(report); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		if !strings.Contains(buf.String(), "ERROR - column not found") {
			t.Error("error status not reported")
		}
	})
}

// TestJSONWriter tests the JSON writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("compact round-trip", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		n, err := w.Write(testReport())
		if err != nil {
			t.Fatalf("write failed: %v", err)
		}
		if n != buf.Len() {
			t.Errorf("reported %d bytes, wrote %d", n, buf.Len())
		}

		var decoded model.AnalysisReport
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if decoded.DataPath != "data/survey.csv" {
			t.Errorf("unexpected data path %q", decoded.DataPath)
		}
		if decoded.TTest == nil || !decoded.TTest.Significant {
			t.Error("t-test result lost in round-trip")
		}
	})

	t.Run("pretty print indents", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(testReport()); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  \"data_path\"") {
			t.Error("output is not indented")
		}
	})

	t.Run("full writer wraps with version", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewFullJSONWriter(&buf, "v1.2.3")
		if _, err := w.Write(testReport()); err != nil {
			t.Fatalf("write failed: %v", err)
		}

		var wrapped JSONReport
		if err := json.Unmarshal(buf.Bytes(), &wrapped); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if wrapped.Version != "v1.2.3" {
			t.Errorf("unexpected version %q", wrapped.Version)
		}
		if wrapped.Report == nil || wrapped.Report.Rows != 100 {
			t.Error("wrapped report lost")
		}
	})
}

// TestMarkdownWriter tests the Markdown writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes all sections", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(testReport()); err != nil {
			t.Fatalf("write failed: %v", err)
		}

		out := buf.String()
		for _, want := range []string{
			"# Data Analysis Report",
			"## Descriptive Statistics",
			"## Categorical Columns",
			"## Missing Values",
			"## Correlation Matrix",
			"## Independent T-Test",
			"## One-Way ANOVA",
			"## OLS Regression",
			"## Figures",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q", want)
			}
		}
	})

	t.Run("alerts on significance", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(testReport()); err != nil {
			t.Fatalf("write failed: %v", err)
		}

		out := buf.String()
		if !strings.Contains(out, "[!IMPORTANT]") {
			t.Error("significant result not flagged with an alert")
		}
		if !strings.Contains(out, "[!NOTE]") {
			t.Error("non-significant result not noted")
		}
	})

	t.Run("skips absent analyses", func(t *testing.T) {
		t.Parallel()

		report := model.NewAnalysisReport("data/survey.csv")

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(report); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		if strings.Contains(buf.String(), "## OLS Regression") {
			t.Error("absent analysis rendered")
		}
	})
}

// failWriter always returns an error after writing a few bytes.
type failWriter struct{}

func (failWriter) Write(_ *model.AnalysisReport) (int, error) {
	return 3, errors.New("disk full")
}

// TestMultiWriter tests fan-out to multiple writers.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all writers", func(t *testing.T) {
		t.Parallel()

		var a, b bytes.Buffer
		mw := NewMultiWriter(NewSimpleWriter(&a), NewJSONWriter(&b))

		n, err := mw.Write(testReport())
		if err != nil {
			t.Fatalf("write failed: %v", err)
		}
		if n != a.Len()+b.Len() {
			t.Errorf("reported %d bytes, wrote %d", n, a.Len()+b.Len())
		}
		if a.Len() == 0 || b.Len() == 0 {
			t.Error("one of the writers received no output")
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		var after bytes.Buffer
		mw := NewMultiWriter(failWriter{}, NewSimpleWriter(&after))

		n, err := mw.Write(testReport())
		if err == nil {
			t.Fatal("expected an error")
		}
		if n != 3 {
			t.Errorf("expected 3 bytes before the failure, got %d", n)
		}
		if after.Len() != 0 {
			t.Error("writer after the failure still ran")
		}
	})
}

// TestWriteFramework tests the framework Markdown generation.
func TestWriteFramework(t *testing.T) {
	t.Parallel()

	t.Run("renders all sections", func(t *testing.T) {
		t.Parallel()

		record := model.NewFrameworkRecord(model.Framework{
			ResearchArea:     "Sociology",
			TentativeTitle:   "Income and Education",
			ProblemStatement: "The relationship is unclear.",
			Objectives:       []string{"Measure the correlation", "", "Model the effect"},
			KeyQuestions:     []string{"Does education predict income?"},
			Methodology:      "Quantitative survey analysis",
			Timeframe:        "6 months",
			Resources:        "Survey panel access",
		}, time.Date(2025, time.January, 15, 14, 23, 1, 0, time.UTC))

		out, err := FrameworkMarkdown(record)
		if err != nil {
			t.Fatalf("render failed: %v", err)
		}

		for _, want := range []string{
			"# Thesis Writing Framework",
			"**Field/Area**: Sociology",
			"**Tentative Title**: Income and Education",
			"## Problem Statement",
			"1. Measure the correlation",
			"2. Model the effect",
			"1. Does education predict income?",
			"**Timeframe**: 6 months",
			"thesiskit analyze",
			"*Created: 2025-01-15 14:23:01*",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q", want)
			}
		}
	})

	t.Run("fills placeholders for empty fields", func(t *testing.T) {
		t.Parallel()

		record := model.NewFrameworkRecord(model.Framework{}, time.Now())

		out, err := FrameworkMarkdown(record)
		if err != nil {
			t.Fatalf("render failed: %v", err)
		}
		if strings.Count(out, "Not specified") < 5 {
			t.Errorf("expected placeholders for empty fields:\n%s", out)
		}
	})
}

// TestWriteFigureIndex tests the HTML figure index.
func TestWriteFigureIndex(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := WriteFigureIndex(&buf, "Figures <2025>", []string{
		"figures/correlation_heatmap.png",
		"figures/box_income.png",
	})
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "<title>Figures &lt;2025&gt;</title>") {
		t.Error("title not escaped")
	}
	if !strings.Contains(out, `<img src="correlation_heatmap.png"`) {
		t.Error("image reference missing or not base name")
	}
	if !strings.Contains(out, "box_income.png") {
		t.Error("second figure missing")
	}
}
