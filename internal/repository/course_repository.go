package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coursehive/coursehive-backend/internal/model"
)

// CourseRepository handles course data access.
type CourseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

// Create inserts a new course owned by creatorID.
func (r *CourseRepository) Create(ctx context.Context, course *model.Course) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO courses (title, description, price, image_url, creator_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		course.Title, course.Description, course.Price, course.ImageURL, course.CreatorID,
	).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
}

// GetByID retrieves a course by its UUID.
func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	course := &model.Course{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, description, price, image_url, creator_id, created_at, updated_at
		 FROM courses WHERE id = $1`, id,
	).Scan(&course.ID, &course.Title, &course.Description, &course.Price,
		&course.ImageURL, &course.CreatorID, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return course, nil
}

// List retrieves all courses, newest first.
func (r *CourseRepository) List(ctx context.Context) ([]model.Course, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, description, price, image_url, creator_id, created_at, updated_at
		 FROM courses ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCourses(rows)
}

// ListByCreator retrieves all courses owned by the given admin.
func (r *CourseRepository) ListByCreator(ctx context.Context, creatorID int) ([]model.Course, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, description, price, image_url, creator_id, created_at, updated_at
		 FROM courses WHERE creator_id = $1 ORDER BY created_at DESC`, creatorID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCourses(rows)
}

// ListByIDs retrieves the courses whose IDs appear in ids.
func (r *CourseRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Course, error) {
	if len(ids) == 0 {
		return []model.Course{}, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, description, price, image_url, creator_id, created_at, updated_at
		 FROM courses WHERE id = ANY($1) ORDER BY created_at DESC`, ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCourses(rows)
}

// UpdateOwned updates a course scoped to its creator in a single statement.
// The id+creator_id predicate deliberately does not distinguish "exists but
// not yours" from "does not exist": both come back as pgx.ErrNoRows.
func (r *CourseRepository) UpdateOwned(ctx context.Context, course *model.Course) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE courses
		 SET title = $1, description = $2, price = $3, image_url = $4, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $5 AND creator_id = $6
		 RETURNING created_at, updated_at`,
		course.Title, course.Description, course.Price, course.ImageURL,
		course.ID, course.CreatorID,
	).Scan(&course.CreatedAt, &course.UpdatedAt)
	return err
}

// DeleteOwned deletes a course scoped to its creator in a single statement.
// Returns pgx.ErrNoRows when no row matches both id and owner, and
// ErrHasDependents when the course still has purchase records.
func (r *CourseRepository) DeleteOwned(ctx context.Context, id uuid.UUID, creatorID int) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM courses WHERE id = $1 AND creator_id = $2`, id, creatorID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrHasDependents
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanCourses(rows pgx.Rows) ([]model.Course, error) {
	var courses []model.Course
	for rows.Next() {
		var course model.Course
		if err := rows.Scan(&course.ID, &course.Title, &course.Description, &course.Price,
			&course.ImageURL, &course.CreatorID, &course.CreatedAt, &course.UpdatedAt); err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}
