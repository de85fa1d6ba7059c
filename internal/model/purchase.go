package model

import (
	"time"

	"github.com/google/uuid"
)

// Purchase records that a user bought a course. The (user_id, course_id)
// pair is unique — at most one purchase per user per course. Rows are
// never mutated after creation.
type Purchase struct {
	ID        uuid.UUID `json:"id"`
	UserID    int       `json:"user_id"`
	CourseID  uuid.UUID `json:"course_id"`
	CreatedAt time.Time `json:"created_at"`
}
