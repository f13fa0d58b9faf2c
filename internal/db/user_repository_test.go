package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/chepyr/go-todo-web/internal/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbx, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// a second pool connection would get its own empty in-memory database
	dbx.SetMaxOpenConns(1)

	if err := EnsureSchema(context.Background(), dbx); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	t.Cleanup(func() { dbx.Close() })
	return dbx
}

func newTestUser(username string) *models.User {
	now := time.Now().UTC()
	return &models.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: "not-a-real-hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUserRepository_CreateAndGetByUsername(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()

	user := newTestUser("alice")
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	got, err := repo.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("get by username: %v", err)
	}
	if got.ID != user.ID || got.Username != "alice" || got.PasswordHash != user.PasswordHash {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestUserRepository_GetByUsername_NotFound(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))

	_, err := repo.GetByUsername(context.Background(), "nobody")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestUserRepository_GetByUsername_CaseSensitive(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, newTestUser("Alice")); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := repo.GetByUsername(ctx, "alice"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows for different casing, got %v", err)
	}
}

func TestUserRepository_Create_DuplicateUsername(t *testing.T) {
	dbx := openTestDB(t)
	repo := NewUserRepository(dbx)
	ctx := context.Background()

	if err := repo.Create(ctx, newTestUser("alice")); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if err := repo.Create(ctx, newTestUser("alice")); err == nil {
		t.Fatal("expected error for duplicate username")
	}

	var count int
	if err := dbx.QueryRow(
		`SELECT COUNT(*) FROM users WHERE username = $1`, "alice").Scan(&count); err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one alice, got %d", count)
	}
}
