package handlers

import (
	"html/template"
	"log"
	"net/http"

	"github.com/chepyr/go-todo-web/internal/db"
)

type Handler struct {
	UserRepo  db.UserRepositoryInterface
	TaskRepo  db.TaskRepositoryInterface
	templates *template.Template
}

func NewHandler(userRepo db.UserRepositoryInterface, taskRepo db.TaskRepositoryInterface) *Handler {
	return &Handler{
		UserRepo:  userRepo,
		TaskRepo:  taskRepo,
		templates: newTemplates(),
	}
}

func (h *Handler) render(w http.ResponseWriter, status int, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.templates.ExecuteTemplate(w, page, data); err != nil {
		log.Printf("Error rendering %s: %v", page, err)
	}
}
