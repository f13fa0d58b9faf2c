package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/chepyr/go-todo-web/internal/models"
)

type taskFormData struct {
	Heading     string
	Action      string
	Error       string
	Title       string
	Description string
}

type dashboardData struct {
	Tasks []*models.Task
}

type deleteConfirmData struct {
	Task *models.Task
}

// GET /dashboard/ - the requester's tasks, newest first
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		http.Redirect(w, r, "/login/", http.StatusFound)
		return
	}

	tasks, err := h.TaskRepo.ListByOwner(r.Context(), userID.String())
	if err != nil {
		log.Printf("Error listing tasks for user %s: %v", userID, err)
		http.Error(w, "Failed to list tasks", http.StatusInternalServerError)
		return
	}
	h.render(w, http.StatusOK, "dashboard", dashboardData{Tasks: tasks})
}

/*
handles routes:
- GET /task/create/ - empty task form
- POST /task/create/ - persist a new task owned by the requester
*/
func (h *Handler) TaskCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		http.Redirect(w, r, "/login/", http.StatusFound)
		return
	}

	form := taskFormData{Heading: "New task", Action: "/task/create/"}
	if r.Method == http.MethodGet {
		h.render(w, http.StatusOK, "task_form", form)
		return
	}

	title, description, errMsg := parseTaskForm(r)
	if errMsg != "" {
		form.Error, form.Title, form.Description = errMsg, title, description
		h.render(w, http.StatusOK, "task_form", form)
		return
	}

	now := time.Now().UTC()
	task := &models.Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.TaskRepo.Create(r.Context(), task); err != nil {
		log.Printf("Error creating task for user %s: %v", userID, err)
		http.Error(w, "Failed to create task", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/dashboard/", http.StatusFound)
}

/*
handles routes:
- GET /task/{id}/edit/ - form pre-filled with the task
- POST /task/{id}/edit/ - persist title/description changes
*/
func (h *Handler) TaskEdit(w http.ResponseWriter, r *http.Request) {
	userID, task, ok := h.ownedTask(w, r)
	if !ok {
		return
	}

	form := taskFormData{
		Heading:     "Edit task",
		Action:      "/task/" + task.ID.String() + "/edit/",
		Title:       task.Title,
		Description: task.Description,
	}
	if r.Method == http.MethodGet {
		h.render(w, http.StatusOK, "task_form", form)
		return
	}

	title, description, errMsg := parseTaskForm(r)
	if errMsg != "" {
		form.Error, form.Title, form.Description = errMsg, title, description
		h.render(w, http.StatusOK, "task_form", form)
		return
	}

	task.Title = title
	task.Description = description
	task.UpdatedAt = time.Now().UTC()
	if err := h.TaskRepo.Update(r.Context(), task); err != nil {
		log.Printf("Error updating task %s for user %s: %v", task.ID, userID, err)
		http.Error(w, "Failed to update task", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/dashboard/", http.StatusFound)
}

/*
handles routes:
- GET /task/{id}/delete/ - confirmation page
- POST /task/{id}/delete/ - hard delete
*/
func (h *Handler) TaskDelete(w http.ResponseWriter, r *http.Request) {
	userID, task, ok := h.ownedTask(w, r)
	if !ok {
		return
	}

	if r.Method == http.MethodGet {
		h.render(w, http.StatusOK, "task_delete", deleteConfirmData{Task: task})
		return
	}

	if err := h.TaskRepo.Delete(r.Context(), task.ID.String(), userID.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(w, r)
			return
		}
		log.Printf("Error deleting task %s for user %s: %v", task.ID, userID, err)
		http.Error(w, "Failed to delete task", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/dashboard/", http.StatusFound)
}

// GET /task/{id}/toggle - flip the completed flag and go back to the dashboard
func (h *Handler) TaskToggle(w http.ResponseWriter, r *http.Request) {
	userID, task, ok := h.ownedTask(w, r)
	if !ok {
		return
	}

	task.Completed = !task.Completed
	task.UpdatedAt = time.Now().UTC()
	if err := h.TaskRepo.Update(r.Context(), task); err != nil {
		log.Printf("Error toggling task %s for user %s: %v", task.ID, userID, err)
		http.Error(w, "Failed to update task", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/dashboard/", http.StatusFound)
}

/*
ownedTask resolves the {id} route variable to a task owned by the requester.
A malformed id, a missing task and a task owned by someone else all answer
404 so the response never reveals whether the id exists.
*/
func (h *Handler) ownedTask(w http.ResponseWriter, r *http.Request) (uuid.UUID, *models.Task, bool) {
	userID, ok := currentUserID(r)
	if !ok {
		http.Redirect(w, r, "/login/", http.StatusFound)
		return uuid.Nil, nil, false
	}

	taskID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.NotFound(w, r)
		return uuid.Nil, nil, false
	}

	task, err := h.TaskRepo.GetByIDAndOwner(r.Context(), taskID.String(), userID.String())
	if err != nil || task == nil {
		http.NotFound(w, r)
		return uuid.Nil, nil, false
	}
	return userID, task, true
}

func parseTaskForm(r *http.Request) (title, description, errMsg string) {
	if err := r.ParseForm(); err != nil {
		return "", "", "Bad form data"
	}
	title = strings.TrimSpace(r.PostFormValue("title"))
	description = strings.TrimSpace(r.PostFormValue("description"))

	if title == "" {
		return title, description, "Title cannot be empty"
	}
	if utf8.RuneCountInString(title) > models.TitleMaxLength {
		return title, description, "Title too long (max 200 chars)"
	}
	return title, description, ""
}
