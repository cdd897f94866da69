package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/Vamshir3156/taskify-API/internal/repository"
	"github.com/Vamshir3156/taskify-API/internal/service"
)

type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Health reports process liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// NotFound responds to unknown routes
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusNotFound, map[string]string{"msg": "Route not found"})
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, msg string) {
	h.respondJSON(w, status, map[string]string{"msg": msg})
}

// respondServiceError maps the expected error kinds to their statuses and
// bodies. Anything unexpected is logged and degraded to a generic 500.
func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrTaskNotFound):
		h.respondError(w, http.StatusNotFound, "Task not found")
	case errors.Is(err, service.ErrNotTaskOwner):
		// 401 rather than the conventional 403, kept for compatibility
		// with existing clients.
		h.respondError(w, http.StatusUnauthorized, "Not authorized")
	case errors.Is(err, repository.ErrDuplicateEmail):
		h.respondError(w, http.StatusBadRequest, "User already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		h.respondError(w, http.StatusBadRequest, "Invalid credentials")
	default:
		h.log.Errorf("Unhandled error: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Server error")
	}
}
