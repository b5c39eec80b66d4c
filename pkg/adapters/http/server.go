package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/automata/internal/compiler"
	"github.com/aretw0/automata/internal/dto"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/internal/presentation/report"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/runner"
)

// maxBodySize bounds request bodies; machine sources are small text files.
const maxBodySize = 1 << 20

// Engine is the engine surface served over HTTP.
type Engine interface {
	ports.Simulator
	Parse(data []byte, filename string) (*domain.Table, error)
}

// Server serves the machine API.
type Server struct {
	Engine  Engine
	Streams *StreamManager
	Version string

	logger   *slog.Logger
	gatherer prometheus.Gatherer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithStreams shares a StreamManager whose Hooks feed the engine.
func WithStreams(streams *StreamManager) Option {
	return func(s *Server) { s.Streams = streams }
}

// WithMetrics exposes gatherer on GET /metrics.
func WithMetrics(gatherer prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = gatherer }
}

// WithVersion sets the version reported by GET /info.
func WithVersion(version string) Option {
	return func(s *Server) { s.Version = version }
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{
		Engine:  engine,
		Version: "dev",
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Streams == nil {
		s.Streams = NewStreamManager()
	}
	s.Streams.logger = s.logger

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/events", s.SubscribeEvents)
	r.Route("/machines", func(r chi.Router) {
		r.Get("/", s.ListMachines)
		r.Get("/{name}", s.GetMachine)
		r.Get("/{name}/graph", s.GetGraph)
		r.Post("/{name}/run", s.RunMachine)
	})
	r.Post("/simulate", s.Simulate)
	r.Post("/validate", s.Validate)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, http.StatusOK, map[string]string{
		"app":     "automata-http",
		"version": strings.TrimSpace(s.Version),
	})
}

// ListMachines handles the GET /machines request.
func (s *Server) ListMachines(w http.ResponseWriter, r *http.Request) {
	names, err := s.Engine.ListMachines(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	s.respond(w, r, http.StatusOK, names)
}

// GetMachine handles the GET /machines/{name} request.
func (s *Server) GetMachine(w http.ResponseWriter, r *http.Request) {
	table, err := s.Engine.LoadMachine(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	resp := MachineResponse{Machine: dto.FromDescription(table.Description()), Valid: true}
	resp.Kind = string(table.Kind())
	if err := s.Engine.Validate(r.Context(), table); err != nil {
		resp.Valid = false
		resp.Error = err.Error()
	}
	s.respond(w, r, http.StatusOK, resp)
}

// GetGraph handles the GET /machines/{name}/graph request. An optional
// ?input= query (space-separated symbols) overlays the path of that run.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	table, err := s.Engine.LoadMachine(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var overlay *graph.GraphOverlay
	if q := r.URL.Query(); q.Has("input") {
		res, err := s.Engine.Run(r.Context(), table, runner.Tokenize(q.Get("input")))
		if err != nil {
			s.fail(w, r, err)
			return
		}
		overlay = graph.OverlayFromResult(res)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, graph.GenerateMermaid(table, overlay))
}

// RunMachine handles the POST /machines/{name}/run request.
func (s *Server) RunMachine(w http.ResponseWriter, r *http.Request) {
	var body RunRequest
	if err := s.decode(r, &body); err != nil {
		s.badRequest(w, r, err)
		return
	}

	table, err := s.Engine.LoadMachine(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.run(w, r, table, body.Input)
}

// Simulate handles the POST /simulate request: an ad-hoc machine and its input.
func (s *Server) Simulate(w http.ResponseWriter, r *http.Request) {
	var body SimulateRequest
	if err := s.decode(r, &body); err != nil {
		s.badRequest(w, r, err)
		return
	}

	table, err := s.Engine.Parse([]byte(body.Source), body.Filename)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}
	s.run(w, r, table, body.Input)
}

// Validate handles the POST /validate request.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	var body ValidateRequest
	if err := s.decode(r, &body); err != nil {
		s.badRequest(w, r, err)
		return
	}

	table, err := s.Engine.Parse([]byte(body.Source), body.Filename)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	resp := ValidateResponse{Valid: true, Kind: string(table.Kind())}
	if err := s.Engine.Validate(r.Context(), table); err != nil {
		resp.Valid = false
		resp.Error = err.Error()
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			resp.Check = verr.Check
		}
	}
	s.respond(w, r, http.StatusOK, resp)
}

// SubscribeEvents handles the GET /events request (SSE). ?machine= narrows the
// stream to one machine.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	machine := r.URL.Query().Get("machine")
	ch, cancel := s.Streams.Subscribe(machine)
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE client disconnected", "machine", machine)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func (s *Server) run(w http.ResponseWriter, r *http.Request, table *domain.Table, input []string) {
	for i, sym := range input {
		clean, err := runner.SanitizeInput(sym)
		if err != nil {
			s.badRequest(w, r, err)
			return
		}
		input[i] = clean
	}

	res, err := s.Engine.Run(r.Context(), table, input)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	format := negotiate(r)
	if f := r.URL.Query().Get("format"); f != "" {
		parsed, err := report.ParseFormat(f)
		if err != nil {
			s.badRequest(w, r, err)
			return
		}
		format = parsed
	}

	w.Header().Set("Content-Type", format.ContentType())
	if err := report.Write(w, format, res); err != nil {
		s.logger.Error("run response encode failed", "err", err)
	}
}

// decode reads a JSON or CBOR body depending on Content-Type.
func (s *Server) decode(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return errors.New("empty request body")
	}
	if mediaType(r.Header.Get("Content-Type")) == "application/cbor" {
		return cbor.Unmarshal(body, v)
	}
	return json.Unmarshal(body, v)
}

// respond writes v as CBOR when the client accepts it, JSON otherwise.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	format := negotiate(r)
	if format != report.FormatCBOR {
		format = report.FormatJSON
	}

	var (
		data []byte
		err  error
	)
	if format == report.FormatCBOR {
		data, err = report.MarshalCBOR(v)
	} else {
		data, err = report.MarshalJSON(v)
	}
	if err != nil {
		s.logger.Error("response encode failed", "err", err)
		http.Error(w, "encode error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(status)
	w.Write(data)
}

func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Warn("invalid request", "path", r.URL.Path, "err", err)
	s.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}

// fail maps engine errors onto status codes.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	resp := ErrorResponse{Error: err.Error()}
	status := http.StatusInternalServerError

	var (
		verr *domain.ValidationError
		ierr *domain.InputError
	)
	switch {
	case errors.Is(err, domain.ErrMachineNotFound):
		status = http.StatusNotFound
	case errors.As(err, &verr):
		status = http.StatusUnprocessableEntity
		resp.Check = verr.Check
	case errors.As(err, &ierr):
		status = http.StatusUnprocessableEntity
		resp.Check = domain.CheckInput
	case errors.Is(err, compiler.ErrSyntax):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnknownKind):
		status = http.StatusUnprocessableEntity
		resp.Check = domain.CheckKind
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	s.respond(w, r, status, resp)
}

// negotiate picks a report format from the Accept header.
func negotiate(r *http.Request) report.Format {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		switch mediaType(part) {
		case "application/cbor":
			return report.FormatCBOR
		case "application/json":
			return report.FormatJSON
		case "application/yaml", "application/x-yaml", "text/yaml":
			return report.FormatYAML
		case "text/markdown":
			return report.FormatMarkdown
		case "text/html":
			return report.FormatHTML
		case "text/plain":
			return report.FormatText
		}
	}
	return report.FormatJSON
}

func mediaType(v string) string {
	mt, _, err := mime.ParseMediaType(strings.TrimSpace(v))
	if err != nil {
		return ""
	}
	return mt
}
