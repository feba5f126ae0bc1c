package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/thesiskit/thesiskit/internal/model"
)

// TestWorkflowIntegration exercises the full command workflow against a
// generated sample dataset: init writes the config and sample data,
// analyze produces a report and figures, preprocess cleans the data, and
// compare contrasts the original with the cleaned version.
func TestWorkflowIntegration(t *testing.T) {
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, ".thesiskit")
	samplePath := filepath.Join(tmpDir, "sample.csv")
	figuresDir := filepath.Join(tmpDir, "figures")
	reportPath := filepath.Join(tmpDir, "report.json")
	resultsPath := filepath.Join(tmpDir, "results.json")
	processedPath := filepath.Join(tmpDir, "processed.csv")

	run := func(args ...string) error {
		rootCmd := NewRootCmd()
		rootCmd.SetArgs(args)
		return rootCmd.Execute()
	}

	// Step 1: initialize config and sample data
	if err := run("init", "-o", configPath, "--sample-data", samplePath, "--rows", "60"); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if _, err := os.Stat(samplePath); err != nil {
		t.Fatalf("sample data not written: %v", err)
	}

	// Step 2: analyze the sample
	if err := run("analyze", "-j",
		"-o", reportPath,
		"--results", resultsPath,
		"--figures-dir", figuresDir,
		"--group", "category", "--var", "satisfaction",
		samplePath,
	); err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	content, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("analysis report not written: %v", err)
	}
	var report model.AnalysisReport
	if err := json.Unmarshal(content, &report); err != nil {
		t.Fatalf("analysis report is not valid JSON: %v", err)
	}
	if report.Rows != 60 {
		t.Errorf("expected 60 rows, got %d", report.Rows)
	}
	if report.Exploratory == nil || report.Correlation == nil {
		t.Error("expected exploratory and correlation results")
	}
	if len(report.Figures) == 0 {
		t.Error("expected rendered figures")
	}

	// Step 3: preprocess the sample
	if err := run("preprocess",
		"--impute", "median",
		"--outliers", "iqr",
		"--scale", "standard",
		"-o", processedPath,
		samplePath,
	); err != nil {
		t.Fatalf("preprocess failed: %v", err)
	}
	if _, err := os.Stat(processedPath); err != nil {
		t.Fatalf("processed data not written: %v", err)
	}

	// Step 4: compare original and processed data
	if err := run("compare", samplePath, processedPath); err != nil {
		t.Fatalf("compare failed: %v", err)
	}
}
