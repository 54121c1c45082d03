// Package devtools serves an HTTP inspector for a running engine.
//
// Routes:
//
//	GET  /metrics      Prometheus metrics
//	GET  /tree         host tree as HTML
//	GET  /components   registered instances as JSON
//	POST /dispatch     synthesize a host event
//	GET  /ws           pass reports as a WebSocket stream
//
// Handlers read engine state through Engine.Do, so the engine must be
// running.
package devtools

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/weave/pkg/component"
	"github.com/vango-dev/weave/pkg/engine"
	"github.com/vango-dev/weave/pkg/host"
)

// Server is the inspector.
type Server struct {
	engine   *engine.Engine
	gatherer prometheus.Gatherer
	stream   *PassStream
	logger   *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithGatherer sets the registry served on /metrics. Without one the route
// is not mounted.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithStream sets the stream served on /ws. Without one the route is not
// mounted.
func WithStream(stream *PassStream) Option {
	return func(s *Server) {
		s.stream = stream
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates an inspector for e.
func New(e *engine.Engine, opts ...Option) *Server {
	s := &Server{engine: e, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the inspector's routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	if s.stream != nil {
		r.Get("/ws", s.stream.HandleWebSocket)
	}
	r.Get("/tree", s.handleTree)
	r.Get("/components", s.handleComponents)
	r.Post("/dispatch", s.handleDispatch)
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("devtools request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	var html string
	err := s.engine.Do(r.Context(), func() error {
		html = host.OuterHTML(s.engine.Mount())
		return nil
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, html)
}

// ComponentInfo describes one registered instance.
type ComponentInfo struct {
	Path    string            `json:"path"`
	Type    string            `json:"type"`
	Renders int               `json:"renders"`
	Values  map[string]string `json:"values"`
}

func (s *Server) handleComponents(w http.ResponseWriter, r *http.Request) {
	var infos []ComponentInfo
	err := s.engine.Do(r.Context(), func() error {
		for _, in := range s.engine.Components() {
			values := make(map[string]string)
			for k, v := range in.Snapshot() {
				values[k] = describe(v)
			}
			infos = append(infos, ComponentInfo{
				Path:    in.Path().String(),
				Type:    in.Name(),
				Renders: in.Renders(),
				Values:  values,
			})
		}
		return nil
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, infos)
}

// describe formats a state value for display. Functions are shown by type
// only.
func describe(v any) string {
	switch v.(type) {
	case component.Receiver, func(any) error:
		return "<receiver>"
	}
	return fmt.Sprintf("%v", v)
}

// DispatchRequest is the body of POST /dispatch. Path lists child indices
// from the mount node.
type DispatchRequest struct {
	Path  []int  `json:"path"`
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
}

var errNoNode = errors.New("no node at path")

func (s *Server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	var req DispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if req.Type == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing event type"})
		return
	}

	err := s.engine.Do(r.Context(), func() error {
		node := host.NodeAt(s.engine.Mount(), req.Path)
		if node == nil {
			return errNoNode
		}
		d, ok := node.(host.Dispatcher)
		if !ok {
			return fmt.Errorf("node %s cannot dispatch events", node.NodeName())
		}
		d.DispatchEvent(host.Event{Type: req.Type, Value: req.Value})
		return nil
	})
	switch {
	case errors.Is(err, errNoNode):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case err != nil:
		s.fail(w, err)
	default:
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, engine.ErrStopped) {
		status = http.StatusServiceUnavailable
	}
	s.logger.Warn("devtools request failed", "error", err)
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
