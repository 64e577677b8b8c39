package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dan9191/risk-engine/internal/middleware"
	"github.com/Dan9191/risk-engine/internal/models"
	"github.com/Dan9191/risk-engine/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Service is the business logic the handlers expose
type Service interface {
	ListUsers(ctx context.Context) ([]models.UserSummary, error)
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	ReportDistress(ctx context.Context, id, code string) (*models.DistressOutcome, error)
	RescoreAll(ctx context.Context) (service.RescoreReport, error)
}

type Handler struct {
	svc Service
	log *logrus.Logger
}

func NewHandler(svc Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// DiscoveryRequest is the body of a distress report
type DiscoveryRequest struct {
	UserID string `json:"user_id"`
	Reason string `json:"reason"`
}

// Register mounts the routes on r. Mutating routes are wrapped with auth.
func (h *Handler) Register(r *mux.Router, auth mux.MiddlewareFunc) {
	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/users", h.ListUsers).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}", h.GetUser).Methods(http.MethodGet)

	protected := api.NewRoute().Subrouter()
	protected.Use(auth)
	protected.HandleFunc("/discovery", h.ReportDistress).Methods(http.MethodPost)
	protected.HandleFunc("/rescore", h.Rescore).Methods(http.MethodPost)
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListUsers handles the user list view
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, users)
}

// GetUser handles the detailed profile of one user
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.GetProfile(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, profile)
}

// ReportDistress handles a distress report for one user
func (h *Handler) ReportDistress(w http.ResponseWriter, r *http.Request) {
	var req DiscoveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	h.log.WithFields(logrus.Fields{
		"operator": middleware.Subject(r.Context()),
		"user_id":  req.UserID,
		"reason":   req.Reason,
	}).Info("Distress report received")

	outcome, err := h.svc.ReportDistress(r.Context(), req.UserID, req.Reason)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, outcome)
}

// Rescore handles an on-demand rescoring run
func (h *Handler) Rescore(w http.ResponseWriter, r *http.Request) {
	h.log.WithField("operator", middleware.Subject(r.Context())).Info("Rescore requested")

	report, err := h.svc.RescoreAll(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrUnknownIndividual):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		h.log.Errorf("Request failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
