package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jaskrrish/qirt-go/internal/models/qirt"
	qirtcore "github.com/jaskrrish/qirt-go/internal/qirt"
	"github.com/jaskrrish/qirt-go/internal/qirt/notation"
	"github.com/jaskrrish/qirt-go/internal/qirt/quantum"
)

// QIRTHandler manages state-related HTTP requests
type QIRTHandler struct {
	stateManager *qirtcore.StateManager
	logger       *log.Logger
}

// NewQIRTHandler creates a new handler serving the states held by sm
func NewQIRTHandler(sm *qirtcore.StateManager, logger *log.Logger) *QIRTHandler {
	return &QIRTHandler{
		stateManager: sm,
		logger:       logger,
	}
}

// Routes returns the API routes, relative to their mount point
func (h *QIRTHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/health", h.HealthCheckHandler)
	r.Get("/notation", h.NotationHandler)

	r.Route("/states", func(r chi.Router) {
		r.Post("/", h.CreateStateHandler)
		r.Get("/{id}", h.GetStateHandler)
		r.Delete("/{id}", h.DeleteStateHandler)
		r.Post("/{id}/measure", h.MeasureHandler)
		r.Post("/{id}/sample", h.SampleHandler)
	})

	return r
}

// CreateStateHandler handles POST /api/v1/qirt/states
func (h *QIRTHandler) CreateStateHandler(w http.ResponseWriter, r *http.Request) {
	var req qirt.StateCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, err := h.stateManager.CreateState(&req)
	if err != nil {
		respondWithError(w, statusFor(err), err.Error())
		return
	}

	resp, err := h.stateManager.DescribeState(record.StateID, "")
	if err != nil {
		respondWithError(w, statusFor(err), err.Error())
		return
	}

	h.logger.Info("state created", "id", record.StateID, "qubits", record.NumQubits)
	w.Header().Set("ETag", etag(record))
	respondWithJSON(w, http.StatusCreated, resp)
}

// GetStateHandler handles GET /api/v1/qirt/states/{id}?basis=
// Returns the state's terms in the requested basis (all-Z by default)
func (h *QIRTHandler) GetStateHandler(w http.ResponseWriter, r *http.Request) {
	stateID, ok := parseStateID(w, r)
	if !ok {
		return
	}

	basis := r.URL.Query().Get("basis")
	resp, err := h.stateManager.DescribeState(stateID, basis)
	if err != nil {
		respondWithError(w, statusFor(err), err.Error())
		return
	}

	tag := etag(resp.State)
	if basis == "" && r.Header.Get("If-None-Match") == tag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", tag)
	respondWithJSON(w, http.StatusOK, resp)
}

// MeasureHandler handles POST /api/v1/qirt/states/{id}/measure
func (h *QIRTHandler) MeasureHandler(w http.ResponseWriter, r *http.Request) {
	stateID, ok := parseStateID(w, r)
	if !ok {
		return
	}

	var req qirt.MeasureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.stateManager.Measure(stateID, &req)
	if err != nil {
		respondWithError(w, statusFor(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

// SampleHandler handles POST /api/v1/qirt/states/{id}/sample
func (h *QIRTHandler) SampleHandler(w http.ResponseWriter, r *http.Request) {
	stateID, ok := parseStateID(w, r)
	if !ok {
		return
	}

	var req qirt.SampleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.stateManager.Sample(stateID, &req)
	if err != nil {
		respondWithError(w, statusFor(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

// DeleteStateHandler handles DELETE /api/v1/qirt/states/{id}
func (h *QIRTHandler) DeleteStateHandler(w http.ResponseWriter, r *http.Request) {
	stateID, ok := parseStateID(w, r)
	if !ok {
		return
	}

	if err := h.stateManager.DeleteState(stateID); err != nil {
		respondWithError(w, statusFor(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "State deleted successfully",
	})
}

// NotationHandler handles GET /api/v1/qirt/notation
// Returns the symbol table currently used to read and render kets
func (h *QIRTHandler) NotationHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.stateManager.Simulator().Table().Symbols())
}

// HealthCheckHandler handles GET /api/v1/qirt/health
func (h *QIRTHandler) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	sim := h.stateManager.Simulator()
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "healthy",
		"service":    "Quantum Information Representation Toolkit",
		"version":    Version,
		"simulator":  sim.Name(),
		"max_qubits": sim.MaxQubits(),
		"states":     h.stateManager.Count(),
	})
}

func parseStateID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	stateID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, qirt.ErrInvalidStateID.Error())
		return uuid.Nil, false
	}
	return stateID, true
}

func etag(record *qirt.StateRecord) string {
	return `"` + record.Fingerprint + `"`
}

// statusFor maps manager and engine errors to HTTP status codes
func statusFor(err error) int {
	var apiErr *qirt.APIError
	switch {
	case errors.Is(err, qirt.ErrStateNotFound):
		return http.StatusNotFound
	case errors.Is(err, qirt.ErrStateExpired):
		return http.StatusGone
	case errors.Is(err, quantum.ErrCapacityExceeded):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &apiErr),
		errors.Is(err, quantum.ErrDimensionMismatch),
		errors.Is(err, quantum.ErrInvalidDimension),
		errors.Is(err, quantum.ErrZeroState),
		errors.Is(err, quantum.ErrInvalidQubitIndex),
		errors.Is(err, quantum.ErrInvalidShots),
		errors.Is(err, quantum.ErrInvalidBasis),
		errors.Is(err, quantum.ErrInvalidBits),
		errors.Is(err, notation.ErrUnknownSymbol):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
