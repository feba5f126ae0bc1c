package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/thesiskit/thesiskit/internal/analysis"
	"github.com/thesiskit/thesiskit/internal/model"
	"github.com/thesiskit/thesiskit/internal/preprocess"
)

// writeJSON writes a JSON response with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to encode response", "error", err)
	}
}

// writeFailure writes the uniform failure envelope.
// The error text goes straight into the response; the API is local and
// single-user, so surfacing the real reason beats hiding it.
func (s *Server) writeFailure(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]any{
		"success": false,
		"error":   err.Error(),
	})
}

// handleIndex serves the embedded form page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	content, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "index not found", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(content)
}

// handleStatic serves embedded JavaScript files.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	http.StripPrefix("/js/", http.FileServer(http.FS(jsFS()))).ServeHTTP(w, r)
}

// handleSaveFramework stores a submitted framework and writes its
// Markdown file.
func (s *Server) handleSaveFramework(w http.ResponseWriter, r *http.Request) {
	var framework model.Framework
	if err := json.NewDecoder(r.Body).Decode(&framework); err != nil {
		s.writeFailure(w, http.StatusInternalServerError, err)
		return
	}

	record, err := s.store.Save(framework, time.Now())
	if err != nil {
		s.writeFailure(w, http.StatusInternalServerError, err)
		return
	}

	s.logger.Info("framework saved", "id", record.ID, "title", record.Title)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"framework_id": record.ID,
		"message":      "Framework saved successfully",
	})
}

// handleListFrameworks lists all saved frameworks.
func (s *Server) handleListFrameworks(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.store.List())
}

// handleGetFramework returns one framework by ID.
func (s *Server) handleGetFramework(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	record, ok := s.store.Get(id)
	if !ok {
		s.writeJSON(w, http.StatusNotFound, map[string]string{
			"error": "Framework not found",
		})
		return
	}
	s.writeJSON(w, http.StatusOK, record)
}

// handleAnalyzeSampleData analyzes the configured sample dataset.
func (s *Server) handleAnalyzeSampleData(w http.ResponseWriter, _ *http.Request) {
	data, _, err := s.sampleDatasets()
	if err != nil {
		s.writeFailure(w, http.StatusInternalServerError, err)
		return
	}

	analyzer := analysis.New(data, analysis.WithLogger(s.logger))
	exploratory := analyzer.Exploratory()

	result := map[string]any{
		"summary_stats":  exploratory.Numeric,
		"missing_values": exploratory.MissingCounts,
		"data_shape":     [2]int{data.Rows(), data.Cols()},
		"columns":        data.Names(),
	}

	// Correlations are best-effort: a sample with fewer than two
	// numeric columns still gets the rest of the analysis.
	if correlation, err := analyzer.Correlation(); err == nil {
		result["correlations"] = correlation
	} else {
		s.logger.Warn("sample correlation skipped", "error", err)
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"analysis": result,
	})
}

// preprocessRequest is the preprocess-data request body.
type preprocessRequest struct {
	Config preprocessConfig `json:"config"`
}

// preprocessConfig selects preprocessing steps and their methods.
// Field names match the web form's JSON payload.
type preprocessConfig struct {
	HandleMissing     bool   `json:"handle_missing"`
	MissingMethod     string `json:"missing_method"`
	HandleOutliers    bool   `json:"handle_outliers"`
	OutlierMethod     string `json:"outlier_method"`
	EncodeCategorical bool   `json:"encode_categorical"`
	EncodingMethod    string `json:"encoding_method"`
	ScaleFeatures     bool   `json:"scale_features"`
	ScalingMethod     string `json:"scaling_method"`
}

// handlePreprocessData applies preprocessing steps to the working copy
// of the sample dataset. Calls are cumulative: each request transforms
// the result of the previous one, matching the form's step-by-step
// workflow.
func (s *Server) handlePreprocessData(w http.ResponseWriter, r *http.Request) {
	var req preprocessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeFailure(w, http.StatusInternalServerError, err)
		return
	}

	_, working, err := s.sampleDatasets()
	if err != nil {
		s.writeFailure(w, http.StatusInternalServerError, err)
		return
	}

	cfg := req.Config
	pipeline := preprocess.New(preprocess.WithLogger(s.logger))
	results := make(map[string]bool)

	if cfg.HandleMissing {
		pipeline.AddStep(&preprocess.ImputeStep{Strategy: orMethod(cfg.MissingMethod, preprocess.ImputeAuto)})
		results["missing_values_handled"] = true
	}
	if cfg.HandleOutliers {
		pipeline.AddStep(&preprocess.OutlierStep{
			Method:    orMethod(cfg.OutlierMethod, preprocess.DetectIQR),
			Treatment: preprocess.TreatCap,
		})
		results["outliers_handled"] = true
	}
	if cfg.EncodeCategorical {
		pipeline.AddStep(&preprocess.EncodeStep{Method: orMethod(cfg.EncodingMethod, preprocess.EncodeLabel)})
		results["categorical_encoded"] = true
	}
	if cfg.ScaleFeatures {
		pipeline.AddStep(&preprocess.ScaleStep{Method: orMethod(cfg.ScalingMethod, preprocess.ScaleStandard)})
		results["features_scaled"] = true
	}

	state := preprocess.NewState(working)
	if err := pipeline.Execute(r.Context(), state); err != nil {
		s.writeFailure(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"results":    results,
		"data_shape": [2]int{working.Rows(), working.Cols()},
		"summary":    state.Summary,
	})
}

// handleHealth reports server liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.sampleMu.Lock()
	available := s.analysisData != nil
	s.sampleMu.Unlock()

	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":                   "healthy",
		"timestamp":                time.Now().Format(time.RFC3339),
		"analysis_tools_available": available,
	})
}

// orMethod returns the method, or the fallback when empty.
func orMethod(method, fallback string) string {
	if method == "" {
		return fallback
	}
	return method
}
