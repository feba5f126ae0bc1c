package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/thesiskit/thesiskit/internal/model"
)

// TestNewCompareCmd tests the compare command creation.
func TestNewCompareCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCompareCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "compare <file-a> <file-b>" {
			t.Errorf("expected use 'compare <file-a> <file-b>', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has json flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("json")
		if flag == nil {
			t.Fatal("expected json flag")
		}
		if flag.Shorthand != "j" {
			t.Errorf("expected shorthand 'j', got %q", flag.Shorthand)
		}
	})
}

// TestRunCompareCmd tests end-to-end compare runs.
func TestRunCompareCmd(t *testing.T) {
	t.Run("compares two files", func(t *testing.T) {
		tmpDir := t.TempDir()

		pathA := filepath.Join(tmpDir, "a.csv")
		if err := os.WriteFile(pathA, []byte("age,score\n20,3.0\n30,4.0\n40,5.0\n"), 0600); err != nil {
			t.Fatalf("failed to write test data: %v", err)
		}
		pathB := filepath.Join(tmpDir, "b.csv")
		if err := os.WriteFile(pathB, []byte("age,grade\n25,b\n35,a\n"), 0600); err != nil {
			t.Fatalf("failed to write test data: %v", err)
		}

		rootCmd := NewRootCmd()
		rootCmd.SetArgs([]string{"compare", pathA, pathB})

		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("fails for missing file", func(t *testing.T) {
		tmpDir := t.TempDir()
		pathA := filepath.Join(tmpDir, "a.csv")
		if err := os.WriteFile(pathA, []byte("x\n1\n"), 0600); err != nil {
			t.Fatalf("failed to write test data: %v", err)
		}

		rootCmd := NewRootCmd()
		rootCmd.SetArgs([]string{"compare", pathA, filepath.Join(tmpDir, "missing.csv")})

		if err := rootCmd.Execute(); err == nil {
			t.Error("expected error for missing file")
		}
	})
}

// TestSplitColumnComparisons tests partitioning of per-column results.
func TestSplitColumnComparisons(t *testing.T) {
	t.Parallel()

	meanA, meanB, diff := 1.0, 2.0, 1.0
	uniqueA, uniqueB, common := 3, 4, 2

	columns := map[string]model.ColumnComparison{
		"income": {MeanA: &meanA, MeanB: &meanB, MeanDifference: &diff},
		"age":    {MeanA: &meanA, MeanB: &meanB, MeanDifference: &diff},
		"grade":  {UniqueA: &uniqueA, UniqueB: &uniqueB, CommonValues: &common},
		"empty":  {},
	}

	numeric, categorical := splitColumnComparisons(columns)

	if len(numeric) != 2 || numeric[0] != "age" || numeric[1] != "income" {
		t.Errorf("unexpected numeric columns %v", numeric)
	}
	if len(categorical) != 1 || categorical[0] != "grade" {
		t.Errorf("unexpected categorical columns %v", categorical)
	}
}
