package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coursehive/coursehive-backend/internal/model"
)

// PurchaseRepository handles purchase data access.
type PurchaseRepository struct {
	pool *pgxpool.Pool
}

// NewPurchaseRepository creates a new PurchaseRepository.
func NewPurchaseRepository(pool *pgxpool.Pool) *PurchaseRepository {
	return &PurchaseRepository{pool: pool}
}

// Create inserts a purchase record. Returns ErrDuplicatePurchase if the
// (user_id, course_id) pair already exists — concurrent duplicate requests
// that race past the service pre-check end up here.
func (r *PurchaseRepository) Create(ctx context.Context, p *model.Purchase) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO purchases (user_id, course_id)
		 VALUES ($1, $2)
		 RETURNING id, created_at`,
		p.UserID, p.CourseID,
	).Scan(&p.ID, &p.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicatePurchase
		}
		return err
	}
	return nil
}

// GetByUserAndCourse retrieves the purchase for a (user, course) pair.
func (r *PurchaseRepository) GetByUserAndCourse(ctx context.Context, userID int, courseID uuid.UUID) (*model.Purchase, error) {
	p := &model.Purchase{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, course_id, created_at
		 FROM purchases WHERE user_id = $1 AND course_id = $2`,
		userID, courseID,
	).Scan(&p.ID, &p.UserID, &p.CourseID, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListByUser retrieves all purchases made by a user, newest first.
func (r *PurchaseRepository) ListByUser(ctx context.Context, userID int) ([]model.Purchase, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, course_id, created_at
		 FROM purchases WHERE user_id = $1 ORDER BY created_at DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchases []model.Purchase
	for rows.Next() {
		var p model.Purchase
		if err := rows.Scan(&p.ID, &p.UserID, &p.CourseID, &p.CreatedAt); err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}
