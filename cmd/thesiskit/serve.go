package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thesiskit/thesiskit/internal/config"
	"github.com/thesiskit/thesiskit/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the local thesis-planning web interface",
		Long: `Serve starts a local web interface for thesis planning.

The interface provides a form for building a thesis writing framework
(research area, problem statement, objectives, methodology). Saved
frameworks are rendered as Markdown files in the frameworks directory
and listed in the interface. It also exposes small JSON endpoints that
analyze and preprocess a sample dataset for demonstration.

The server binds to loopback by default and has no authentication; it
is meant for a single researcher on their own machine.

Examples:
  # Serve on the default address (http://127.0.0.1:5000)
  thesiskit serve

  # Serve on a different port
  thesiskit serve --port 8080

  # Analyze a real dataset instead of the generated sample
  thesiskit serve --sample-data survey.csv`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().String("host", config.DefaultServerHost,
		"Host address to bind to")
	cmd.Flags().IntP("port", "p", config.DefaultServerPort,
		"Port to listen on")
	cmd.Flags().String("sample-data", "",
		"Dataset served by the sample analysis endpoints (default: generated sample)")
	cmd.Flags().String("frameworks-dir", config.DefaultFrameworksDir,
		"Directory framework Markdown files are written to")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .thesiskit in current or home directory)")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildServeConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)

	ctx, cancel := signalContext(logger)
	defer cancel()

	fmt.Printf("Serving on http://%s:%d (Ctrl+C to stop)\n", cfg.ServerHost, cfg.ServerPort)

	return server.New(cfg, logger).Serve(ctx)
}

// buildServeConfig creates the Config from serve flags.
// Flags set to non-default values override the config file.
func buildServeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := buildBaseConfig(cmd)
	if err != nil {
		return nil, err
	}

	host, err := cmd.Flags().GetString("host")
	if err != nil {
		return nil, err
	}
	if host != config.DefaultServerHost || cfg.ServerHost == "" {
		cfg.ServerHost = host
	}

	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return nil, err
	}
	if port != config.DefaultServerPort || cfg.ServerPort == 0 {
		cfg.ServerPort = port
	}

	sampleData, err := cmd.Flags().GetString("sample-data")
	if err != nil {
		return nil, err
	}
	if sampleData != "" {
		cfg.SampleDataPath = sampleData
	}

	frameworksDir, err := cmd.Flags().GetString("frameworks-dir")
	if err != nil {
		return nil, err
	}
	if frameworksDir != config.DefaultFrameworksDir || cfg.FrameworksDir == "" {
		cfg.FrameworksDir = frameworksDir
	}

	return cfg, nil
}
