// Package api exposes the build pipeline over HTTP.
//
// The surface is small: submit a build request, list templates and node
// types, fetch a stored build. Authentication, rate limiting, and anything
// else an internet-facing deployment needs sits in front of this server,
// not inside it.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/terrasmith/terrasmith/pkg/buildinfo"
	"github.com/terrasmith/terrasmith/pkg/errors"
	"github.com/terrasmith/terrasmith/pkg/pipeline"
	"github.com/terrasmith/terrasmith/pkg/store"
)

// Server wires the pipeline runner into an HTTP handler.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// NewServer creates an API server around a runner.
func NewServer(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger}
}

// Router builds the chi router with all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/build", s.handleBuild)
		r.Get("/builds", s.handleListBuilds)
		r.Get("/builds/{id}", s.handleGetBuild)
		r.Get("/builds/{id}/document", s.handleGetDocument)
		r.Get("/templates", s.handleTemplates)
		r.Get("/types", s.handleTypes)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// statusForCode maps pipeline error codes onto HTTP statuses.
func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidMode,
		errors.ErrCodeInvalidBlueprint, errors.ErrCodeInvalidOverrides:
		return http.StatusBadRequest
	case errors.ErrCodeUnknownNodeType, errors.ErrCodeUnknownProperty,
		errors.ErrCodeUnknownNodeReference, errors.ErrCodeDuplicateNodeID,
		errors.ErrCodeUnknownPort, errors.ErrCodeBuildFailed,
		errors.ErrCodeInvalidDocument, errors.ErrCodeExternalFailed:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeTemplateNotFound,
		errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeStoreUnavailable, errors.ErrCodeCacheUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorBody is the JSON error envelope.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	var body errorBody
	body.Error.Code = string(code)
	body.Error.Message = errors.UserMessage(err)
	writeJSON(w, statusForCode(code), body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) store() store.Store {
	return s.runner.Store
}
