package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thesiskit/thesiskit/internal/model"
	"github.com/thesiskit/thesiskit/internal/preprocess"
)

// TestNewPreprocessCmd tests the preprocess command creation.
func TestNewPreprocessCmd(t *testing.T) {
	t.Parallel()

	cmd := NewPreprocessCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "preprocess <data-file>" {
			t.Errorf("expected use 'preprocess <data-file>', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has step flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"impute", "outliers", "treatment", "encode", "scale", "interactions", "columns"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected %s flag", name)
			}
		}
	})

	t.Run("treatment defaults to cap", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("treatment")
		if flag == nil {
			t.Fatal("expected treatment flag")
		}
		if flag.DefValue != preprocess.TreatCap {
			t.Errorf("expected default %q, got %q", preprocess.TreatCap, flag.DefValue)
		}
	})

	t.Run("has output flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("output")
		if flag == nil {
			t.Fatal("expected output flag")
		}
		if flag.Shorthand != "o" {
			t.Errorf("expected shorthand 'o', got %q", flag.Shorthand)
		}
	})
}

// TestProcessedPath tests default output path derivation.
func TestProcessedPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"survey.csv", "survey_processed.csv"},
		{"data/survey.tsv", "data/survey_processed.tsv"},
		{"survey", "survey_processed.csv"},
		{"results.xlsx", "results_processed.xlsx"},
	}
	for _, tt := range tests {
		if got := processedPath(tt.input); got != tt.want {
			t.Errorf("processedPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// TestBuildPipelineSteps tests step assembly from options.
func TestBuildPipelineSteps(t *testing.T) {
	t.Parallel()

	t.Run("no flags means no steps", func(t *testing.T) {
		t.Parallel()
		steps := buildPipelineSteps(&preprocessOptions{})
		if len(steps) != 0 {
			t.Errorf("expected no steps, got %d", len(steps))
		}
	})

	t.Run("all flags in fixed order", func(t *testing.T) {
		t.Parallel()
		steps := buildPipelineSteps(&preprocessOptions{
			impute:       preprocess.ImputeMedian,
			outliers:     preprocess.DetectIQR,
			treatment:    preprocess.TreatCap,
			encode:       preprocess.EncodeLabel,
			scale:        preprocess.ScaleStandard,
			interactions: true,
		})

		want := []string{"impute", "outliers", "encode", "scale", "interactions"}
		if len(steps) != len(want) {
			t.Fatalf("expected %d steps, got %d", len(want), len(steps))
		}
		for i, step := range steps {
			if step.Name() != want[i] {
				t.Errorf("step %d: expected %q, got %q", i, want[i], step.Name())
			}
		}
	})
}

// TestRunPreprocessCmd tests end-to-end preprocess runs.
func TestRunPreprocessCmd(t *testing.T) {
	t.Run("writes processed file and summary", func(t *testing.T) {
		content := `age,income,group
23,30000,a
31,,b
28,38000,a
45,61000,b
,52000,a
29,40000,b
`
		tmpDir := t.TempDir()
		dataPath := filepath.Join(tmpDir, "survey.csv")
		if err := os.WriteFile(dataPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test data: %v", err)
		}

		outputPath := filepath.Join(tmpDir, "clean.csv")
		summaryPath := filepath.Join(tmpDir, "summary.json")

		rootCmd := NewRootCmd()
		rootCmd.SetArgs([]string{
			"preprocess",
			"--impute", "median",
			"--outliers", "iqr",
			"-o", outputPath,
			"--summary", summaryPath,
			dataPath,
		})

		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		processed, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("processed file not written: %v", err)
		}
		lines := strings.Split(strings.TrimSpace(string(processed)), "\n")
		if len(lines) != 7 {
			t.Errorf("expected header plus 6 rows, got %d lines", len(lines))
		}

		summaryContent, err := os.ReadFile(summaryPath)
		if err != nil {
			t.Fatalf("summary file not written: %v", err)
		}

		var summary model.PreprocessSummary
		if err := json.Unmarshal(summaryContent, &summary); err != nil {
			t.Fatalf("summary is not valid JSON: %v", err)
		}
		if summary.OriginalRows != 6 {
			t.Errorf("expected 6 original rows, got %d", summary.OriginalRows)
		}
		if len(summary.ImputedColumns) == 0 {
			t.Error("expected imputed columns in summary")
		}
		if len(summary.AppliedSteps) != 2 {
			t.Errorf("expected 2 applied steps, got %v", summary.AppliedSteps)
		}
	})

	t.Run("derives default output path", func(t *testing.T) {
		content := "a,b\n1,2\n3,4\n5,6\n"
		tmpDir := t.TempDir()
		dataPath := filepath.Join(tmpDir, "survey.csv")
		if err := os.WriteFile(dataPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test data: %v", err)
		}

		rootCmd := NewRootCmd()
		rootCmd.SetArgs([]string{"preprocess", "--scale", "minmax", dataPath})

		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := filepath.Join(tmpDir, "survey_processed.csv")
		if _, err := os.Stat(expected); os.IsNotExist(err) {
			t.Error("expected processed file next to the input")
		}
	})

	t.Run("fails when no steps requested", func(t *testing.T) {
		content := "a,b\n1,2\n"
		tmpDir := t.TempDir()
		dataPath := filepath.Join(tmpDir, "survey.csv")
		if err := os.WriteFile(dataPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test data: %v", err)
		}

		rootCmd := NewRootCmd()
		rootCmd.SetArgs([]string{"preprocess", dataPath})

		err := rootCmd.Execute()
		if err == nil {
			t.Fatal("expected error when no steps requested")
		}
		if !strings.Contains(err.Error(), "no preprocessing steps") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("fails for missing data file", func(t *testing.T) {
		rootCmd := NewRootCmd()
		rootCmd.SetArgs([]string{"preprocess", "--impute", "auto", filepath.Join(t.TempDir(), "nope.csv")})

		if err := rootCmd.Execute(); err == nil {
			t.Error("expected error for missing data file")
		}
	})
}
