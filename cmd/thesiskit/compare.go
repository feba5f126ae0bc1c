package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thesiskit/thesiskit/internal/dataset"
	"github.com/thesiskit/thesiskit/internal/model"
)

// NewCompareCmd creates the compare command.
// This command compares the structure and contents of two datasets.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <file-a> <file-b>",
		Short: "Compare the structure of two datasets",
		Long: `Compare loads two tabular datasets and reports their differences:
- Shapes (row and column counts)
- Columns present in only one of the files
- Mean differences for shared numeric columns
- Cardinality and value overlap for shared categorical columns

This is useful for checking a cleaned dataset against the original, or
two waves of the same survey against each other.

Examples:
  # Compare an original file with its processed version
  thesiskit compare survey.csv survey_processed.csv

  # Output comparison in JSON format
  thesiskit compare --json wave1.csv wave2.csv`,
		Args: cobra.ExactArgs(2),
		RunE: runCompareCmd,
	}

	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .thesiskit in current or home directory)")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildBaseConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Targets = args

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	setupLogger(cfg.Verbose)

	a, err := loadDataset(cfg, args[0])
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}
	b, err := loadDataset(cfg, args[1])
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[1], err)
	}

	comparison := dataset.Compare(a, b)

	if jsonOutput {
		return outputComparisonJSON(comparison)
	}
	return outputComparisonText(comparison, args[0], args[1])
}

// outputComparisonJSON outputs the comparison result in JSON format.
func outputComparisonJSON(result *model.Comparison) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// outputComparisonText outputs the comparison result in human-readable
// text format.
func outputComparisonText(result *model.Comparison, nameA, nameB string) error {
	fmt.Printf("Dataset Comparison: %s vs %s\n", nameA, nameB)
	fmt.Println(strings.Repeat("=", 60))

	fmt.Println("\nShapes:")
	fmt.Printf("  %-30s  %d rows x %d columns\n", nameA, result.ShapeA[0], result.ShapeA[1])
	fmt.Printf("  %-30s  %d rows x %d columns\n", nameB, result.ShapeB[0], result.ShapeB[1])

	fmt.Printf("\nCommon columns: %d\n", len(result.CommonColumns))

	if len(result.OnlyA) > 0 {
		fmt.Printf("\nOnly in %s (%d):\n", nameA, len(result.OnlyA))
		for _, name := range result.OnlyA {
			fmt.Printf("  [-] %s\n", name)
		}
	}
	if len(result.OnlyB) > 0 {
		fmt.Printf("\nOnly in %s (%d):\n", nameB, len(result.OnlyB))
		for _, name := range result.OnlyB {
			fmt.Printf("  [+] %s\n", name)
		}
	}

	numeric, categorical := splitColumnComparisons(result.Columns)

	if len(numeric) > 0 {
		fmt.Println("\nNumeric columns:")
		fmt.Printf("  %-20s  %12s  %12s  %12s\n", "Column", "Mean A", "Mean B", "Difference")
		fmt.Println("  " + strings.Repeat("-", 62))
		for _, name := range numeric {
			c := result.Columns[name]
			fmt.Printf("  %-20s  %12.4f  %12.4f  %12.4f\n",
				name, *c.MeanA, *c.MeanB, *c.MeanDifference)
		}
	}

	if len(categorical) > 0 {
		fmt.Println("\nCategorical columns:")
		fmt.Printf("  %-20s  %10s  %10s  %10s\n", "Column", "Unique A", "Unique B", "Shared")
		fmt.Println("  " + strings.Repeat("-", 56))
		for _, name := range categorical {
			c := result.Columns[name]
			fmt.Printf("  %-20s  %10d  %10d  %10d\n",
				name, *c.UniqueA, *c.UniqueB, *c.CommonValues)
		}
	}

	return nil
}

// splitColumnComparisons partitions the per-column comparisons into
// numeric and categorical name lists, each sorted.
func splitColumnComparisons(columns map[string]model.ColumnComparison) (numeric, categorical []string) {
	for name, c := range columns {
		if c.MeanA != nil && c.MeanB != nil && c.MeanDifference != nil {
			numeric = append(numeric, name)
			continue
		}
		if c.UniqueA != nil && c.UniqueB != nil && c.CommonValues != nil {
			categorical = append(categorical, name)
		}
	}
	sort.Strings(numeric)
	sort.Strings(categorical)
	return numeric, categorical
}
