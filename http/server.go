package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/webqa"
	"github.com/google/uuid"
)

// DefaultRequestTimeout bounds the processing of a single prediction request.
const DefaultRequestTimeout = 120 * time.Second

// ShutdownTimeout is the time given for outstanding requests to finish
// before the server shuts down.
const ShutdownTimeout = 5 * time.Second

// maxRequestBytes bounds an inbound request body.
const maxRequestBytes = 1 << 20

// RequestIDHeader carries the id assigned to each request.
const RequestIDHeader = "X-Request-ID"

// Server serves the prediction API over HTTP.
type Server struct {
	ln     net.Listener
	server *http.Server

	// Bind address to open.
	Addr string

	// Path prefix for API routes, e.g. "/api".
	Prefix string

	// Reported by the health endpoint.
	Name    string
	Version string

	RequestTimeout time.Duration

	QueryService webqa.QueryService

	// Served at /metrics when set.
	MetricsHandler http.Handler

	Logger *slog.Logger
}

// NewServer returns a new Server with default settings.
func NewServer() *Server {
	return &Server{
		Prefix:         "/api",
		Name:           "webqa",
		Version:        "0.0.1",
		RequestTimeout: DefaultRequestTimeout,
		Logger:         slog.New(slog.DiscardHandler),
	}
}

// Open starts listening on Addr and serves requests in the background.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 15 * time.Second,
	}
	go func() {
		if err := s.server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error("server stopped", "err", err)
		}
	}()
	s.Logger.Info("server listening", "addr", s.ln.Addr().String(), "prefix", s.prefix())
	return nil
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the local base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// Handler returns the routed handler wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+s.prefix()+"/request", s.handleRequest)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	if s.MetricsHandler != nil {
		mux.Handle("GET /metrics", s.MetricsHandler)
	}
	return s.logRequests(mux)
}

// prefix returns Prefix with a single leading slash and no trailing slash.
func (s *Server) prefix() string {
	p := strings.Trim(s.Prefix, "/")
	if p == "" {
		return ""
	}
	return "/" + p
}

// requestBody mirrors webqa.PredictionRequest with a pointer id so that a
// missing id can be told apart from zero.
type requestBody struct {
	ID    *int   `json:"id"`
	Query string `json:"query"`
}

func (s *Server) handleRequest(w http.ResponseWriter, r *http.Request) {
	var body requestBody
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := dec.Decode(&body); err != nil {
		s.Error(w, r, webqa.Errorf(webqa.EINVALID, "invalid JSON body: %v", err))
		return
	}
	if body.ID == nil {
		s.Error(w, r, webqa.Errorf(webqa.EINVALID, "id required"))
		return
	}

	req := &webqa.PredictionRequest{ID: *body.ID, Query: body.Query}

	ctx := r.Context()
	if s.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.RequestTimeout)
		defer cancel()
	}

	resp, err := s.QueryService.Process(ctx, req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			writeJSON(w, http.StatusGatewayTimeout, errorResponse{Error: "request timed out"})
			s.Logger.Error("request timed out", "id", req.ID, "err", err)
			return
		}
		s.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

type healthResponse struct {
	Status  string `json:"status"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Name: s.Name, Version: s.Version})
}

type errorResponse struct {
	Error string `json:"error"`
}

// unavailableMessage replaces EUNAVAILABLE details, which may name upstream
// hosts, in client responses.
const unavailableMessage = "Upstream service unavailable."

// Error writes err as a JSON error response with the status matching its
// application error code. Errors mapped to 5xx are logged and their detail
// is hidden from the client.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	code, message := webqa.ErrorCode(err), webqa.ErrorMessage(err)
	if code == webqa.EUNAVAILABLE {
		message = unavailableMessage
	}
	status := ErrorStatusCode(code)
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", w.Header().Get(RequestIDHeader),
			"err", err,
		)
	}
	writeJSON(w, status, errorResponse{Error: message})
}

var codes = map[string]int{
	webqa.EINVALID:     http.StatusBadRequest,
	webqa.ENOTFOUND:    http.StatusNotFound,
	webqa.EUNAVAILABLE: http.StatusBadGateway,
	webqa.EINTERNAL:    http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusRecorder captures the status written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// logRequests assigns a request id and logs every request once it completes.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		begin := time.Now()
		next.ServeHTTP(rec, r)

		s.Logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(begin),
			"request_id", id,
		)
	})
}
