// Package api serves graph coloring over HTTP.
//
// # Endpoints
//
//	POST /v1/color   color a graph, optionally rendering artifacts
//	GET  /healthz    liveness and build info
//	GET  /metrics    Prometheus metrics
//
// A color request carries either an adjacency list or a JSON graph:
//
//	{"adjacency": [[1, 2], [0], [0]], "params": {"num_ants": 20}, "seed": 42}
//	{"graph": {"vertices": 3, "edges": [[0, 1], [0, 2]]}, "formats": ["svg"]}
//
// Params not given keep their defaults. Errors are returned as
// {"error": {"code": "...", "message": "..."}} with a 4xx status for bad
// input and 5xx otherwise.
package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/antcolor/pkg/buildinfo"
	"github.com/matzehuels/antcolor/pkg/colony"
	"github.com/matzehuels/antcolor/pkg/errors"
	"github.com/matzehuels/antcolor/pkg/graph"
	pkgio "github.com/matzehuels/antcolor/pkg/io"
	"github.com/matzehuels/antcolor/pkg/metrics"
	"github.com/matzehuels/antcolor/pkg/observability"
	"github.com/matzehuels/antcolor/pkg/pipeline"
)

const (
	maxBodyBytes   = 32 << 20
	defaultTimeout = 2 * time.Minute
)

// Server is the HTTP front end of a pipeline runner.
type Server struct {
	runner      *pipeline.Runner
	logger      *log.Logger
	maxVertices int
	timeout     time.Duration
	router      chi.Router
}

// Option configures a [Server].
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

// WithMaxVertices caps the size of accepted graphs.
func WithMaxVertices(n int) Option { return func(s *Server) { s.maxVertices = n } }

// WithTimeout bounds the time spent on one color request.
func WithTimeout(d time.Duration) Option { return func(s *Server) { s.timeout = d } }

// NewServer builds the router around runner.
func NewServer(runner *pipeline.Runner, opts ...Option) *Server {
	s := &Server{
		runner:      runner,
		logger:      runner.Logger,
		maxVertices: errors.MaxVertices,
		timeout:     defaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", metrics.Handler())
	r.Route("/v1", func(r chi.Router) {
		r.Post("/color", s.handleColor)
	})
	s.router = r
	return s
}

// ServeHTTP implements [http.Handler].
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.router.ServeHTTP(w, r) }

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// observe logs every request and reports it to the HTTP hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		observability.HTTP().OnRequest(r.Context(), r.Method, route, status, d)
		s.logger.Debug("request",
			"id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", d)
	})
}

// =============================================================================
// Handlers
// =============================================================================

// ColorRequest is the body of POST /v1/color.
type ColorRequest struct {
	Adjacency  [][]int          `json:"adjacency,omitempty"`
	Graph      *pkgio.GraphJSON `json:"graph,omitempty"`
	Symmetrize bool             `json:"symmetrize,omitempty"`

	Params colony.Params `json:"params"`
	Seed   *uint64       `json:"seed,omitempty"`

	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`
}

// ColorResponse is the body of a successful POST /v1/color. Text artifacts
// (svg, dot, json) are returned verbatim; png and pdf are base64.
type ColorResponse struct {
	pkgio.Document
	Cached    bool              `json:"cached"`
	Artifacts map[string]string `json:"artifacts,omitempty"`
}

func (s *Server) handleColor(w http.ResponseWriter, r *http.Request) {
	req := ColorRequest{Params: colony.DefaultParams()}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	g, err := s.buildGraph(req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	opts := pipeline.Options{
		Params:   req.Params,
		Seed:     req.Seed,
		Formats:  req.Formats,
		Detailed: req.Detailed,
		Logger:   s.logger,
	}
	res, err := s.runner.Execute(ctx, g, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := ColorResponse{Document: res.Document, Cached: res.CacheInfo.ResultHit}
	if len(res.Artifacts) > 0 {
		resp.Artifacts = make(map[string]string, len(res.Artifacts))
		for format, data := range res.Artifacts {
			resp.Artifacts[format] = encodeArtifact(format, data)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) buildGraph(req ColorRequest) (*graph.Graph, error) {
	var (
		g   *graph.Graph
		err error
	)
	switch {
	case req.Graph != nil && req.Adjacency != nil:
		return nil, errors.New(errors.ErrCodeInvalidInput, "give either adjacency or graph, not both")
	case req.Graph != nil:
		if req.Graph.Vertices > s.maxVertices {
			return nil, errors.New(errors.ErrCodeInvalidInput, "graph has %d vertices, limit is %d", req.Graph.Vertices, s.maxVertices)
		}
		g, err = req.Graph.ToGraph()
	default:
		if len(req.Adjacency) > s.maxVertices {
			return nil, errors.New(errors.ErrCodeInvalidInput, "graph has %d vertices, limit is %d", len(req.Adjacency), s.maxVertices)
		}
		var gopts []graph.Option
		if req.Symmetrize {
			gopts = append(gopts, graph.WithSymmetrize())
		}
		g, err = graph.FromAdjacencyList(req.Adjacency, gopts...)
	}
	if err != nil {
		return nil, pipeline.Classify(err, "invalid graph")
	}
	return g, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string         `json:"status"`
		Build  buildinfo.Info `json:"build"`
	}{"ok", buildinfo.Get()})
}

// =============================================================================
// Responses
// =============================================================================

type errorBody struct {
	Error struct {
		Code    errors.Code `json:"code"`
		Message string      `json:"message"`
	} `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	var body errorBody
	body.Error.Code = errors.GetCode(err)
	if body.Error.Code == "" {
		body.Error.Code = errors.ErrCodeInternal
	}
	body.Error.Message = errors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, body)
}

func statusOf(err error) int {
	switch {
	case errors.IsClientError(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound), errors.Is(err, errors.ErrCodeFileNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeCanceled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func encodeArtifact(format string, data []byte) string {
	switch format {
	case pipeline.FormatPNG, pipeline.FormatPDF:
		return base64.StdEncoding.EncodeToString(data)
	}
	return string(data)
}
