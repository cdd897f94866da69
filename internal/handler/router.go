package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/Vamshir3156/taskify-API/internal/config"
	"github.com/Vamshir3156/taskify-API/internal/middleware"
)

// NewRouter wires all routes. Registration and login are public; everything
// else sits behind the identity middleware.
func NewRouter(h *Handler, cfg *config.Config, log *logrus.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Recover(log))

	// Public routes
	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/auth/register", h.Register).Methods("POST")
	r.HandleFunc("/auth/login", h.Login).Methods("POST")

	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/auth/me", h.Me).Methods("GET")
	authRouter.HandleFunc("/tasks", h.ListTasks).Methods("GET")
	authRouter.HandleFunc("/tasks", h.CreateTask).Methods("POST")
	authRouter.HandleFunc("/tasks/{id}", h.GetTask).Methods("GET")
	authRouter.HandleFunc("/tasks/{id}", h.UpdateTask).Methods("PUT")
	authRouter.HandleFunc("/tasks/{id}", h.DeleteTask).Methods("DELETE")

	r.NotFoundHandler = http.HandlerFunc(h.NotFound)
	return r
}
