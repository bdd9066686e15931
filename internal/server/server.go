// Package server exposes the optimizer over HTTP. Requests are JSON; the
// stream endpoint upgrades to a websocket and reports each saturation
// iteration as it completes.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/conduit-lang/eggmath/internal/logging"
	"github.com/conduit-lang/eggmath/internal/optimizer"
	"github.com/conduit-lang/eggmath/internal/rewrite"
	"github.com/conduit-lang/eggmath/internal/term"
)

const (
	// MaxRequestBytes bounds request bodies and websocket messages
	MaxRequestBytes = 64 << 10

	shutdownTimeout = 10 * time.Second
)

// OptimizeRequest is the body of POST /v1/optimize and the first message
// of the stream endpoint
type OptimizeRequest struct {
	Expr   string   `json:"expr"`
	Groups []string `json:"groups,omitempty"`
}

// VocabularyEntry describes one canonical atom
type VocabularyEntry struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// GroupInfo describes one rule group
type GroupInfo struct {
	Name      string     `json:"name"`
	Soundness string     `json:"soundness"`
	Selected  bool       `json:"selected"`
	Rules     []RuleInfo `json:"rules"`
}

// RuleInfo describes one rewrite
type RuleInfo struct {
	Name string `json:"name"`
	LHS  string `json:"lhs"`
	RHS  string `json:"rhs"`
}

// Option configures a Server
type Option func(*Server)

// WithAuth requires a bearer token on every /v1 route
func WithAuth(a *Authenticator) Option {
	return func(s *Server) { s.auth = a }
}

// WithRateLimit throttles the optimize endpoints per client
func WithRateLimit(l Limiter) Option {
	return func(s *Server) { s.limiter = l }
}

// Server serves one optimizer
type Server struct {
	opt      *optimizer.Optimizer
	logger   *zap.Logger
	auth     *Authenticator
	limiter  Limiter
	router   chi.Router
	upgrader websocket.Upgrader
}

// New builds the router. A nil logger discards logs.
func New(opt *optimizer.Optimizer, logger *zap.Logger, opts ...Option) *Server {
	s := &Server{
		opt:    opt,
		logger: logging.Or(logger),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(chimw.RealIP)
	r.Use(Logging(s.logger))
	r.Use(Recovery(s.logger))

	r.Get("/health", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		if s.auth != nil {
			r.Use(s.auth.Middleware)
		}
		r.Get("/vocabulary", s.handleVocabulary)
		r.Get("/rules", s.handleRules)
		r.Get("/rules/{group}", s.handleRuleGroup)
		r.Group(func(r chi.Router) {
			if s.limiter != nil {
				r.Use(RateLimit(s.limiter, s.logger))
			}
			r.Post("/optimize", s.handleOptimize)
			r.Get("/optimize/stream", s.handleStream)
		})
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		renderError(w, http.StatusNotFound, "not_found", "No route for "+r.Method+" "+r.URL.Path, nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		renderError(w, http.StatusMethodNotAllowed, "method_not_allowed", r.Method+" is not allowed on "+r.URL.Path, nil)
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"groups": s.opt.Selected().Len(),
	})
}

func (s *Server) handleVocabulary(w http.ResponseWriter, r *http.Request) {
	vocab := s.opt.Vocabulary()
	entries := make([]VocabularyEntry, 0, vocab.Len())
	for _, name := range vocab.Names() {
		op, _ := vocab.Lookup(name)
		entries = append(entries, VocabularyEntry{Name: name, Kind: kindLabel(op)})
	}
	renderJSON(w, http.StatusOK, entries)
}

func kindLabel(op term.Op) string {
	if op.Kind == term.NamedConstant {
		return "constant"
	}
	return "operator"
}

func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	selected := make(map[string]bool)
	for _, name := range s.opt.Selected().Names() {
		selected[name] = true
	}

	groups := s.opt.Corpus().Groups()
	out := make([]GroupInfo, 0, len(groups))
	for _, g := range groups {
		info := GroupInfo{
			Name:      g.Name,
			Soundness: string(g.Soundness),
			Selected:  selected[g.Name],
			Rules:     make([]RuleInfo, 0, len(g.Rewrites)),
		}
		for _, rw := range g.Rewrites {
			info.Rules = append(info.Rules, RuleInfo{Name: rw.Name, LHS: rw.LHS.String(), RHS: rw.RHS.String()})
		}
		out = append(out, info)
	}
	renderJSON(w, http.StatusOK, out)
}

func (s *Server) handleRuleGroup(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "group")
	if _, err := s.opt.Corpus().Select(name); err != nil {
		status, body := describe(err)
		if status == http.StatusBadRequest {
			status = http.StatusNotFound
		}
		renderJSON(w, status, body)
		return
	}

	g, _ := s.opt.Corpus().Group(name)
	info := GroupInfo{
		Name:      g.Name,
		Soundness: string(g.Soundness),
		Rules:     make([]RuleInfo, 0, len(g.Rewrites)),
	}
	_, info.Selected = s.opt.Selected().Group(name)
	for _, rw := range g.Rewrites {
		info.Rules = append(info.Rules, RuleInfo{Name: rw.Name, LHS: rw.LHS.String(), RHS: rw.RHS.String()})
	}
	renderJSON(w, http.StatusOK, info)
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req OptimizeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			renderError(w, http.StatusRequestEntityTooLarge, "request_too_large", err.Error(), nil)
			return
		}
		renderError(w, http.StatusBadRequest, "invalid_json", err.Error(), nil)
		return
	}

	opt, err := s.opt.Derive(req.Groups...)
	if err != nil {
		renderOptimizerError(w, err)
		return
	}

	res, err := opt.Optimize(r.Context(), req.Expr)
	if err != nil {
		renderOptimizerError(w, err)
		return
	}
	if res.StopReason == rewrite.Canceled {
		// the write is lost when the client is gone; during shutdown it is not
		s.logger.Info("optimization canceled",
			zap.String("request_id", GetRequestID(r.Context())))
		renderError(w, http.StatusServiceUnavailable, "canceled", "optimization was canceled before it finished", nil)
		return
	}
	renderJSON(w, http.StatusOK, res)
}
