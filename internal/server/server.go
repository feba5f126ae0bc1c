package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/thesiskit/thesiskit/internal/config"
	"github.com/thesiskit/thesiskit/internal/dataset"
)

const (
	// shutdownTimeout bounds graceful shutdown after the context is
	// cancelled.
	shutdownTimeout = 5 * time.Second

	// readHeaderTimeout guards against slow-header clients.
	readHeaderTimeout = 10 * time.Second
)

// Generated sample dimensions used when no sample data file is
// configured. The seed keeps the demo dataset stable across restarts.
const (
	generatedSampleRows = 100
	generatedSampleSeed = 42
)

// Server is the web interface server.
type Server struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *FrameworkStore

	// sampleMu guards lazy loading of the sample datasets.
	sampleMu sync.Mutex

	// analysisData is the pristine sample used by analyze-sample-data.
	analysisData *dataset.Dataset

	// prepData is the working copy mutated by preprocess-data calls.
	// Successive calls apply steps cumulatively, matching the form's
	// step-by-step workflow.
	prepData *dataset.Dataset
}

// New creates a web interface server.
func New(cfg *config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:    cfg,
		logger: logger,
		store:  NewFrameworkStore(cfg.FrameworksDir),
	}
}

// Serve starts the server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.ServerHost, s.cfg.ServerPort)
	s.logger.Info("starting web interface", "addr", "http://"+addr)

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s.routes(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: readHeaderTimeout,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		s.logger.Debug("shutting down web interface")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// routes builds the router with all endpoints.
func (s *Server) routes() *chi.Mux {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
	)

	r.Get("/", s.handleIndex)
	r.Get("/js/*", s.handleStatic)

	r.Post("/api/save-framework", s.handleSaveFramework)
	r.Get("/api/frameworks", s.handleListFrameworks)
	r.Get("/api/framework/{id}", s.handleGetFramework)
	r.Get("/api/analyze-sample-data", s.handleAnalyzeSampleData)
	r.Post("/api/preprocess-data", s.handlePreprocessData)
	r.Get("/api/health", s.handleHealth)

	return r
}

// sampleDatasets lazily loads the analysis and preprocessing datasets.
// When no sample data file is configured, a reproducible generated
// sample is used so the form has something to work with.
func (s *Server) sampleDatasets() (*dataset.Dataset, *dataset.Dataset, error) {
	s.sampleMu.Lock()
	defer s.sampleMu.Unlock()

	if s.analysisData != nil {
		return s.analysisData, s.prepData, nil
	}

	if s.cfg.SampleDataPath == "" {
		s.analysisData = dataset.GenerateSample(generatedSampleRows, generatedSampleSeed)
		s.prepData = dataset.GenerateSample(generatedSampleRows, generatedSampleSeed)
		return s.analysisData, s.prepData, nil
	}

	profile := s.cfg.Profile(s.cfg.SampleDataPath)
	opts := dataset.LoadOptions{
		Delimiter: profile.DelimiterRune(),
		NoHeader:  profile.NoHeader,
		NAValues:  profile.NAValues,
		Types:     profile.Types,
	}

	loaded, err := dataset.Load(s.cfg.SampleDataPath, opts)
	if err != nil {
		return nil, nil, err
	}
	working, err := dataset.Load(s.cfg.SampleDataPath, opts)
	if err != nil {
		return nil, nil, err
	}

	s.analysisData = loaded
	s.prepData = working
	return s.analysisData, s.prepData, nil
}
