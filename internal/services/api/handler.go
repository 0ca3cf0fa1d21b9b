// Package api serves persona generation over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "github.com/louisbranch/zhpersona/internal/platform/errors"
	"github.com/louisbranch/zhpersona/internal/platform/timeouts"
	"github.com/louisbranch/zhpersona/internal/services/persona"
	"github.com/louisbranch/zhpersona/internal/services/persona/dataset"
)

// maxBodyBytes bounds POST bodies.
const maxBodyBytes = 64 << 10

// SeedHeader carries the seed that reproduces the returned persona.
const SeedHeader = "X-Persona-Seed"

// Generator produces persona records.
type Generator interface {
	Persona(ctx context.Context, opts persona.Options) (persona.Result, error)
}

// StatusReporter reports which datasets loaded.
type StatusReporter interface {
	Status() dataset.Status
}

// Handler wires persona endpoints to the generator.
type Handler struct {
	generator Generator
	status    StatusReporter
	gatherer  prometheus.Gatherer
}

// NewHandler constructs a handler. A nil gatherer serves the default registry.
func NewHandler(gen Generator, status StatusReporter, gatherer prometheus.Gatherer) *Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &Handler{generator: gen, status: status, gatherer: gatherer}
}

// Register mounts the endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/v1/persona", h.HandleGetPersona)
	r.Post("/v1/persona", h.HandlePostPersona)
	r.Get("/healthz", h.HandleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
}

// Router returns a chi router with the endpoints and standard middleware.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	h.Register(r)
	return r
}

// HandleGetPersona handles GET /v1/persona with options in the query string.
func (h *Handler) HandleGetPersona(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	h.generate(w, r, req)
}

// HandlePostPersona handles POST /v1/persona with options in a JSON body.
// An empty body uses the defaults.
func (h *Handler) HandlePostPersona(w http.ResponseWriter, r *http.Request) {
	var req PersonaRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, apperrors.Wrap(apperrors.CodeInvalidArgument, "invalid request body", err))
		return
	}
	h.generate(w, r, req)
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request, req PersonaRequest) {
	opts, err := req.Options()
	if err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Request)
	defer cancel()

	res, err := h.generator.Persona(ctx, opts)
	if err != nil {
		log.Printf("generate persona: request_id=%s err=%v", middleware.GetReqID(r.Context()), err)
		writeError(w, err)
		return
	}
	w.Header().Set(SeedHeader, strconv.FormatInt(res.Seed, 10))
	writeJSON(w, http.StatusOK, res)
}

// HandleHealth reports dataset status. Missing geography is unhealthy; other
// tables only degrade output.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	status := dataset.Status{}
	if h.status != nil {
		status = h.status.Status()
	}
	code := http.StatusOK
	if !status.Geography {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, status)
}

type errorBody struct {
	Code     apperrors.Code    `json:"code"`
	Message  string            `json:"message"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func writeError(w http.ResponseWriter, err error) {
	body := errorBody{Code: apperrors.CodeUnknown, Message: "internal error"}
	var domainErr *apperrors.Error
	if errors.As(err, &domainErr) {
		body = errorBody{Code: domainErr.Code, Message: domainErr.Error(), Metadata: domainErr.Metadata}
	}
	writeJSON(w, body.Code.HTTPStatus(), body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}
