// Package main provides the entry point for the thesiskit CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thesiskit/thesiskit/internal/config"
	"github.com/thesiskit/thesiskit/internal/dataset"
	applog "github.com/thesiskit/thesiskit/internal/log"
)

// NewRootCmd creates the root command for thesiskit.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "thesiskit",
		Short: "Statistical analysis toolkit for thesis research",
		Long: `thesiskit is a statistical analysis toolkit for thesis research.
It loads tabular datasets (CSV, TSV, JSON, Excel), computes descriptive and
inferential statistics, renders publication figures as PNG files, and serves
a local web interface for thesis planning.

Analysis results can be reported as plain text, JSON, or Markdown, and are
saved to a JSON results file for later reference.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewPreprocessCmd())
	cmd.AddCommand(NewPlotCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a structured logger based on verbosity setting.
// Attribute values are truncated so logged row dumps stay readable.
func setupLogger(verbose bool) *slog.Logger {
	logger := applog.NewLogger(os.Stderr, verbose)
	slog.SetDefault(logger)
	return logger
}

// buildBaseConfig creates a Config from shared flags and the optional
// configuration file.
func buildBaseConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		// Not every command declares the flag.
		cfg.ConfigFilePath = ""
	}

	// If the user explicitly specified a config file path, error when it
	// cannot be found. Otherwise an absent file just means defaults.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	switch {
	case configPath != "":
		cfg.Profiles, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	case explicitConfigPath:
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	default:
		cfg.Profiles = &config.File{
			Datasets: make(map[string]config.Profile),
		}
	}

	applyFileConfig(cfg)
	return cfg, nil
}

// applyFileConfig copies config file settings into the Config.
// CLI flags applied afterwards still win.
func applyFileConfig(cfg *config.Config) {
	if cfg.Profiles == nil {
		return
	}
	if host := cfg.Profiles.Server.Host; host != "" {
		cfg.ServerHost = host
	}
	if port := cfg.Profiles.Server.Port; port > 0 {
		cfg.ServerPort = port
	}
	if sample := cfg.Profiles.Server.SampleData; sample != "" {
		cfg.SampleDataPath = sample
	}
	if dir := cfg.Profiles.Output.Figures; dir != "" {
		cfg.FiguresDir = dir
	}
	if dir := cfg.Profiles.Output.Frameworks; dir != "" {
		cfg.FrameworksDir = dir
	}
	if dir := cfg.Profiles.Output.Results; dir != "" {
		cfg.OutputDir = dir
	}
}

// loadDataset loads a data file using its configured profile.
func loadDataset(cfg *config.Config, path string) (*dataset.Dataset, error) {
	profile := cfg.Profile(path)
	return dataset.Load(path, dataset.LoadOptions{
		Delimiter: profile.DelimiterRune(),
		NoHeader:  profile.NoHeader,
		NAValues:  profile.NAValues,
		Types:     profile.Types,
	})
}
