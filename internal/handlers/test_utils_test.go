package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"

	"github.com/chepyr/go-todo-web/internal/db"
	"github.com/chepyr/go-todo-web/internal/models"
)

const testSecretLen = 32

// setupApp wires the handler against an in-memory sqlite DB and a router
// mirroring the real route table.
func setupApp(t *testing.T) (*Handler, *mux.Router, *sql.DB) {
	t.Helper()

	_ = os.Setenv("JWT_SECRET", strings.Repeat("a", testSecretLen))

	dbx, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// a second pool connection would get its own empty in-memory database
	dbx.SetMaxOpenConns(1)
	if err := db.EnsureSchema(context.Background(), dbx); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	t.Cleanup(func() { dbx.Close() })

	h := NewHandler(db.NewUserRepository(dbx), db.NewTaskRepository(dbx))

	r := mux.NewRouter()
	r.HandleFunc("/", h.Index).Methods(http.MethodGet)
	r.HandleFunc("/register/", h.Register).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/login/", h.Login).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/logout/", h.Logout).Methods(http.MethodGet)
	r.HandleFunc("/dashboard/", h.RequireAuth(h.Dashboard)).Methods(http.MethodGet)
	r.HandleFunc("/task/create/", h.RequireAuth(h.TaskCreate)).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/task/{id}/edit/", h.RequireAuth(h.TaskEdit)).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/task/{id}/delete/", h.RequireAuth(h.TaskDelete)).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/task/{id}/toggle", h.RequireAuth(h.TaskToggle)).Methods(http.MethodGet)

	return h, r, dbx
}

// createTestUser inserts a user directly and returns it together with a
// valid session cookie, skipping the register endpoint.
func createTestUser(t *testing.T, h *Handler, username, password string) (*models.User, *http.Cookie) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := h.UserRepo.Create(context.Background(), user); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user, sessionCookieFor(t, user.ID)
}

func sessionCookieFor(t *testing.T, userID uuid.UUID) *http.Cookie {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
		"iat": time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		t.Fatalf("sign session token: %v", err)
	}
	return newSessionCookie(signed)
}

func doGet(t *testing.T, r *mux.Router, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func doPostForm(t *testing.T, r *mux.Router, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func sessionCookieFromResponse(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName && c.Value != "" {
			return c
		}
	}
	t.Fatalf("no session cookie in response, headers: %v", rec.Header())
	return nil
}

func requireRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d body=%s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Location"); got != location {
		t.Fatalf("expected redirect to %s, got %s", location, got)
	}
}
