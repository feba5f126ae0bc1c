package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thesiskit/thesiskit/internal/config"
	"github.com/thesiskit/thesiskit/internal/dataset"
)

//go:embed templates/thesiskit.yaml
var configTemplate embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new thesiskit configuration file",
		Long: `Initialize creates a new .thesiskit configuration file in the current directory.

The generated file includes:
- Commented examples for per-dataset load profiles
- Web interface settings (host, port, sample dataset)
- Output directory settings for results, figures, and frameworks

It can also generate a reproducible sample dataset for trying the
analyze, preprocess, and plot commands without real data.

Examples:
  # Create .thesiskit in current directory
  thesiskit init

  # Create config file at a specific path
  thesiskit init -o myconfig.yaml

  # Force overwrite existing file
  thesiskit init -f

  # Also generate a 500 row sample dataset
  thesiskit init --sample-data sample.csv --rows 500`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")
	cmd.Flags().String("sample-data", "",
		"Also write a generated sample dataset to this path")
	cmd.Flags().Int("rows", config.DefaultSampleRows,
		"Row count for the generated sample dataset")
	cmd.Flags().Int64("seed", config.DefaultSampleSeed,
		"Random seed for the generated sample dataset")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	// Check if file already exists
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	// Read template from embedded filesystem
	content, err := configTemplate.ReadFile("templates/thesiskit.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	// Create parent directories if needed
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Write configuration file
	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	fmt.Printf("Created configuration file: %s\n", outputPath)

	if err := writeSampleData(cmd); err != nil {
		return err
	}

	fmt.Println("\nEdit this file to configure settings such as:")
	fmt.Println("  - Per-dataset delimiters, NA markers, and column types")
	fmt.Println("  - Web interface host and port")
	fmt.Println("  - Output directories for results, figures, and frameworks")

	return nil
}

// writeSampleData generates the sample dataset when --sample-data is set.
func writeSampleData(cmd *cobra.Command) error {
	samplePath, err := cmd.Flags().GetString("sample-data")
	if err != nil {
		return err
	}
	if samplePath == "" {
		return nil
	}

	rows, err := cmd.Flags().GetInt("rows")
	if err != nil {
		return err
	}
	if rows <= 0 {
		return fmt.Errorf("sample row count must be positive, got %d", rows)
	}

	seed, err := cmd.Flags().GetInt64("seed")
	if err != nil {
		return err
	}

	sample := dataset.GenerateSample(rows, seed)
	if err := sample.Save(samplePath); err != nil {
		return fmt.Errorf("failed to write sample dataset: %w", err)
	}

	fmt.Printf("Created sample dataset:     %s (%d rows)\n", samplePath, rows)
	return nil
}
