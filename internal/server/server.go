// Package server serves the dashboard over HTTP.
//
// The dataset is loaded once and shared read-only by every request. Each
// request computes its own Report from its query parameters, so requests
// never see each other's filter state.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/matsen/cordx/internal/aggregate"
	"github.com/matsen/cordx/internal/dataset"
	"github.com/matsen/cordx/internal/viz"
	"github.com/matsen/cordx/internal/wordcloud"
	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"
)

// Settings configure report defaults and request limits.
type Settings struct {
	YearMin        int // Default range when the request has no from/to
	YearMax        int
	TopN           int
	PreviewRows    int
	IncludeUnknown bool
	Cloud          wordcloud.Options
	Generator      wordcloud.Generator // nil means the builtin generator

	RateLimit float64 // Requests per second; 0 disables limiting
	RateBurst int
}

// Server handles dashboard requests.
type Server struct {
	data     *dataset.Cache
	settings Settings
	limiter  *rate.Limiter
	logger   *slog.Logger
	mux      *http.ServeMux
}

// New creates a server reading from data.
func New(data *dataset.Cache, settings Settings, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if settings.TopN == 0 {
		settings.TopN = aggregate.DefaultTopN
	}
	s := &Server{
		data:     data,
		settings: settings,
		logger:   logger,
		mux:      http.NewServeMux(),
	}
	if settings.RateLimit > 0 {
		burst := max(settings.RateBurst, 1)
		s.limiter = rate.NewLimiter(rate.Limit(settings.RateLimit), burst)
	}

	s.mux.HandleFunc("GET /{$}", s.handleDashboard)
	s.mux.HandleFunc("GET /api/report", s.handleReport)
	s.mux.HandleFunc("GET /wordcloud.svg", s.handleWordCloud)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	return s
}

// ServeHTTP implements http.Handler with rate limiting and request logging.
// Every response carries a ULID in X-Request-Id matching the log line.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := ulid.Make().String()
	w.Header().Set("X-Request-Id", id)
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

	if s.limiter != nil && !s.limiter.Allow() {
		writeError(rec, http.StatusTooManyRequests, "rate limit exceeded")
	} else {
		s.mux.ServeHTTP(rec, r)
	}

	s.logger.Info("request",
		"id", id,
		"method", r.Method,
		"path", r.URL.Path,
		"query", r.URL.RawQuery,
		"status", rec.status,
		"duration", time.Since(start),
	)
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// query holds the parsed filter parameters of a request.
type query struct {
	yearMin, yearMax int
	topN             int
}

// parseQuery reads from, to and top, falling back to settings.
func (s *Server) parseQuery(r *http.Request) (query, error) {
	q := query{
		yearMin: s.settings.YearMin,
		yearMax: s.settings.YearMax,
		topN:    s.settings.TopN,
	}
	for name, dst := range map[string]*int{"from": &q.yearMin, "to": &q.yearMax, "top": &q.topN} {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return q, fmt.Errorf("invalid %s %q: must be an integer", name, raw)
		}
		*dst = v
	}
	if q.topN < 0 {
		return q, fmt.Errorf("invalid top %d: must be >= 0", q.topN)
	}
	return q, nil
}

// request is a computed report with the inputs that produced it.
type request struct {
	query
	report *aggregate.Report
	data   *dataset.Dataset
}

// report loads the dataset and aggregates it for r.
// On failure it writes the error response and returns nil.
func (s *Server) report(w http.ResponseWriter, r *http.Request, skipCloud bool) *request {
	q, err := s.parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil
	}

	ds, err := s.data.Get()
	if err != nil {
		s.logger.Error("loading dataset", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil
	}

	if q.topN == 0 {
		q.topN = -1 // Explicit top=0 means no top lists
	}
	rep, err := aggregate.Aggregate(ds, q.yearMin, q.yearMax, aggregate.Options{
		TopN:           q.topN,
		PreviewRows:    s.settings.PreviewRows,
		IncludeUnknown: s.settings.IncludeUnknown,
		Generator:      s.settings.Generator,
		CloudOptions:   s.settings.Cloud,
		SkipCloud:      skipCloud,
	})
	if err != nil {
		if errors.Is(err, aggregate.ErrEmptyDataset) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return nil
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil
	}
	return &request{query: q, report: rep, data: ds}
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	req := s.report(w, r, false)
	if req == nil {
		return
	}

	opts := viz.DefaultOptions()
	opts.FormAction = "/"
	opts.TopN = req.topN
	if lo, hi, ok := req.data.YearBounds(); ok {
		opts.YearLow, opts.YearHigh = lo, hi
	}

	html, err := viz.GenerateHTML(req.report, opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, html)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	skip := r.URL.Query().Get("cloud") == "false"
	req := s.report(w, r, skip)
	if req == nil {
		return
	}
	writeJSON(w, http.StatusOK, req.report)
}

func (s *Server) handleWordCloud(w http.ResponseWriter, r *http.Request) {
	req := s.report(w, r, false)
	if req == nil {
		return
	}
	rep := req.report
	if rep.WordCloud.Cloud == nil {
		// Nothing to display is not an error
		w.Header().Set("X-Wordcloud-Reason", rep.WordCloud.Reason)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	svg, err := rep.WordCloud.Cloud.SVG()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	fmt.Fprint(w, svg)
}

// HealthResponse is the body of /healthz.
type HealthResponse struct {
	Status string `json:"status"`
	Loaded bool   `json:"loaded"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Loaded: s.data.Loaded()})
}

// ErrorResponse is a JSON error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
