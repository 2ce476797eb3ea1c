package server

import (
	"encoding/json"
	"io"
	"math"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/stackchart/pkg/config"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/pipeline"
)

// Response headers.
const (
	CacheHeader    = "X-Cache"
	WarningsHeader = "X-Config-Warnings"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatJSON: "application/json",
}

type errorResponse struct {
	Error   errors.Code `json:"error"`
	Message string      `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	def, warnings, err := decodeDefinition(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	setWarnings(w, warnings)
	s.render(w, r, def)
}

func (s *Server) handleRenderChart(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	def, err := rec.Definition()
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "decode stored chart %s", rec.ID))
		return
	}
	s.render(w, r, def)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, def *config.Definition) {
	opts, err := renderOptions(r, def)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := opts.Formats[0]
	if result.CacheInfo.RenderHit {
		w.Header().Set(CacheHeader, "HIT")
	} else {
		w.Header().Set(CacheHeader, "MISS")
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	w.Write(result.Artifacts[format])
}

func (s *Server) handleListCharts(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"charts": recs})
}

func (s *Server) handleCreateChart(w http.ResponseWriter, r *http.Request) {
	def, warnings, err := decodeDefinition(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rec, err := s.store.Create(r.Context(), def)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	setWarnings(w, warnings)
	w.Header().Set("Location", "/v1/charts/"+rec.ID)
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleGetChart(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleUpdateChart(w http.ResponseWriter, r *http.Request) {
	def, warnings, err := decodeDefinition(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rec, err := s.store.Update(r.Context(), chi.URLParam(r, "id"), def)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	setWarnings(w, warnings)
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteChart(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeDefinition reads a JSON or TOML definition from the request body.
func decodeDefinition(w http.ResponseWriter, r *http.Request) (*config.Definition, []string, error) {
	format := config.FormatJSON
	if mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil && strings.HasSuffix(mt, "toml") {
		format = config.FormatTOML
	}
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodySize))
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body")
	}
	return config.Parse(raw, format)
}

func renderOptions(r *http.Request, def *config.Definition) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Definition: def,
		Hover:      q.Get("hover"),
		Style:      q.Get("style"),
		Formats:    []string{pipeline.FormatSVG},
	}
	if f := q.Get("format"); f != "" {
		opts.Formats = []string{f}
	}
	if x := q.Get("x"); x != "" {
		v, err := strconv.ParseFloat(x, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return opts, errors.New(errors.ErrCodeInvalidInput, "x must be a number, got %q", x)
		}
		opts.PointerX = &v
	}
	if q.Get("refresh") == "true" {
		opts.Refresh = true
	}
	return opts, nil
}

func setWarnings(w http.ResponseWriter, warnings []string) {
	if len(warnings) > 0 {
		w.Header().Set(WarningsHeader, strings.Join(warnings, "; "))
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errors.ErrCodeNotFound):
		return http.StatusNotFound
	case errors.IsClientError(err):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err, "request_id", RequestIDFromContext(r.Context()))
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{Error: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
