package main

import (
	"net/http"
	"os"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/chepyr/go-todo-web/internal/handlers"
)

func newRouter(h *handlers.Handler) http.Handler {
	r := mux.NewRouter()

	// --- Public pages ---
	r.HandleFunc("/", h.Index).Methods(http.MethodGet)
	r.HandleFunc("/register/", h.Register).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/login/", h.Login).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/logout/", h.Logout).Methods(http.MethodGet)

	// --- Task pages (session required) ---
	r.HandleFunc("/dashboard/", h.RequireAuth(h.Dashboard)).Methods(http.MethodGet)
	r.HandleFunc("/task/create/", h.RequireAuth(h.TaskCreate)).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/task/{id}/edit/", h.RequireAuth(h.TaskEdit)).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/task/{id}/delete/", h.RequireAuth(h.TaskDelete)).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/task/{id}/toggle", h.RequireAuth(h.TaskToggle)).Methods(http.MethodGet)

	return gorillahandlers.LoggingHandler(os.Stdout,
		gorillahandlers.RecoveryHandler()(r))
}
