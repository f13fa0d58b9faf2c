package models

import (
	"time"

	"github.com/google/uuid"
)

// TitleMaxLength is the upper bound on task titles in characters, enforced on
// create and edit.
const TitleMaxLength = 200

type Task struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
