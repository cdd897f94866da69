package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/Vamshir3156/taskify-API/internal/middleware"
	"github.com/Vamshir3156/taskify-API/internal/models"
	"github.com/Vamshir3156/taskify-API/internal/service"
)

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// updateTaskRequest is the allow-list of updatable fields. Anything else in
// the body is ignored; pointer fields distinguish omitted from empty.
type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// ListTasks returns the acting user's tasks, newest first
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	tasks, err := h.svc.ListTasks(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, tasks)
}

// CreateTask creates a task owned by the acting user
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		h.respondError(w, http.StatusBadRequest, "Title is required")
		return
	}

	status := models.StatusPending
	if req.Status != "" {
		status = models.TaskStatus(req.Status)
		if !status.Valid() {
			h.respondError(w, http.StatusBadRequest, "Invalid status")
			return
		}
	}

	task, err := h.svc.CreateTask(r.Context(), userID, title, req.Description, status)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, task)
}

// GetTask returns a single task owned by the acting user
func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	taskID := models.TaskID(mux.Vars(r)["id"])
	task, err := h.svc.GetTask(r.Context(), userID, taskID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, task)
}

// UpdateTask applies a partial update and returns the post-update task
func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	upd := service.TaskUpdate{Description: req.Description}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			h.respondError(w, http.StatusBadRequest, "Title is required")
			return
		}
		upd.Title = &title
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		if !status.Valid() {
			h.respondError(w, http.StatusBadRequest, "Invalid status")
			return
		}
		upd.Status = &status
	}

	taskID := models.TaskID(mux.Vars(r)["id"])
	task, err := h.svc.UpdateTask(r.Context(), userID, taskID, upd)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, task)
}

// DeleteTask removes a task owned by the acting user
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	taskID := models.TaskID(mux.Vars(r)["id"])
	if err := h.svc.DeleteTask(r.Context(), userID, taskID); err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"msg": "Task removed"})
}
