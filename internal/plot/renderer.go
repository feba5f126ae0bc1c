package plot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ErrNoFigures is returned when a render batch contains nothing to draw.
var ErrNoFigures = errors.New("no figures to render")

// Figure is one renderable PNG figure.
type Figure interface {
	// Filename returns the output file name, including the .png extension.
	Filename() string

	// Render draws the figure as PNG bytes.
	Render(w io.Writer) error
}

// Renderer writes figures into an output directory, several at a time.
type Renderer struct {
	// dir is the output directory, created on first render.
	dir string

	// concurrency bounds parallel rendering.
	concurrency int

	// logger is used for structured logging during rendering.
	logger *slog.Logger
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithConcurrency bounds how many figures render in parallel.
func WithConcurrency(n int) RendererOption {
	return func(r *Renderer) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithLogger sets a custom logger for the renderer.
func WithLogger(logger *slog.Logger) RendererOption {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// NewRenderer creates a renderer writing into dir.
func NewRenderer(dir string, opts ...RendererOption) *Renderer {
	r := &Renderer{
		dir:         dir,
		concurrency: 4,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Dir returns the output directory.
func (r *Renderer) Dir() string { return r.dir }

// RenderAll renders every figure, bounded by the configured concurrency.
// It returns the paths of successfully written files in sorted order.
// Rendering continues past individual failures; the first error is
// returned after all figures have been attempted.
//
// Design decision: figure rendering is CPU-bound and independent per
// figure, so a bounded errgroup gives a speedup on multicore machines
// without flooding memory with in-flight rasters.
func (r *Renderer) RenderAll(ctx context.Context, figures []Figure) ([]string, error) {
	if len(figures) == 0 {
		return nil, ErrNoFigures
	}

	if err := os.MkdirAll(r.dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create figures directory: %w", err)
	}

	var mu sync.Mutex
	paths := make([]string, 0, len(figures))
	var firstErr error

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for _, fig := range figures {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			path := filepath.Join(r.dir, fig.Filename())
			r.logger.Debug("rendering figure", "path", path)

			if err := r.renderOne(fig, path); err != nil {
				r.logger.Error("figure failed", "path", path, "error", err)
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				// Keep rendering the remaining figures.
				return nil
			}

			mu.Lock()
			paths = append(paths, path)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, firstErr
}

// renderOne writes a single figure to disk.
func (r *Renderer) renderOne(fig Figure, path string) error {
	f, err := os.Create(path) //nolint:gosec // Paths are built from the configured dir
	if err != nil {
		return fmt.Errorf("failed to create figure file: %w", err)
	}

	if err := fig.Render(f); err != nil {
		f.Close()       //nolint:errcheck,gosec // Render error takes precedence
		os.Remove(path) //nolint:errcheck,gosec // Best effort cleanup of partial file
		return fmt.Errorf("failed to render %s: %w", fig.Filename(), err)
	}
	return f.Close()
}
