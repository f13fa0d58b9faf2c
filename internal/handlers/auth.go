package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/chepyr/go-todo-web/internal/db"
	"github.com/chepyr/go-todo-web/internal/models"
)

type authFormData struct {
	Error    string
	Username string
}

// GET /
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "landing", nil)
}

/*
handles routes:
- GET /register/ - registration form
- POST /register/ - create the user and log them in
*/
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.render(w, http.StatusOK, "register", authFormData{})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad form data", http.StatusBadRequest)
		return
	}
	username := strings.TrimSpace(r.PostFormValue("username"))
	password1 := r.PostFormValue("password1")
	password2 := r.PostFormValue("password2")

	if username == "" || password1 == "" {
		h.render(w, http.StatusOK, "register",
			authFormData{Error: "Username and password are required", Username: username})
		return
	}
	if password1 != password2 {
		h.render(w, http.StatusOK, "register",
			authFormData{Error: "Passwords do not match", Username: username})
		return
	}

	if _, err := h.UserRepo.GetByUsername(r.Context(), username); err == nil {
		h.render(w, http.StatusOK, "register",
			authFormData{Error: "A user with that name already exists", Username: username})
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		log.Printf("Error checking username %s: %v", username, err)
		http.Error(w, "Cannot check username", http.StatusInternalServerError)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password1), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		http.Error(w, "Cannot hash password", http.StatusInternalServerError)
		return
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := h.UserRepo.Create(r.Context(), user); err != nil {
		// lost the race against a concurrent registration with the same name
		if errors.Is(err, db.ErrUsernameTaken) {
			h.render(w, http.StatusOK, "register",
				authFormData{Error: "A user with that name already exists", Username: username})
			return
		}
		log.Printf("Error creating user %s: %v", username, err)
		http.Error(w, "Cannot save user", http.StatusInternalServerError)
		return
	}

	log.Printf("User registered: %s", user.Username)
	h.startSession(w, r, user.ID)
}

/*
handles routes:
- GET /login/ - login form
- POST /login/ - establish a session
*/
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.render(w, http.StatusOK, "login", authFormData{})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad form data", http.StatusBadRequest)
		return
	}
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")

	user, err := h.UserRepo.GetByUsername(r.Context(), username)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Printf("Error retrieving user %s: %v", username, err)
		}
		h.render(w, http.StatusOK, "login",
			authFormData{Error: "Invalid username or password", Username: username})
		return
	}
	if err := bcrypt.CompareHashAndPassword(
		[]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Printf("Invalid password for user: %s", username)
		h.render(w, http.StatusOK, "login",
			authFormData{Error: "Invalid username or password", Username: username})
		return
	}

	log.Printf("User logged in: %s", username)
	h.startSession(w, r, user.ID)
}

// GET /logout/
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, expiredSessionCookie())
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	token, err := generateSessionToken(userID.String())
	if err != nil {
		log.Printf("Error generating session token: %v", err)
		http.Error(w, "Cannot create session", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, newSessionCookie(token))
	http.Redirect(w, r, "/dashboard/", http.StatusFound)
}
