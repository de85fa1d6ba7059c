package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/coursehive/coursehive-backend/internal/model"
	"github.com/coursehive/coursehive-backend/internal/repository"
)

// PurchaseStore is the persistence contract the purchase service depends on.
type PurchaseStore interface {
	Create(ctx context.Context, p *model.Purchase) error
	GetByUserAndCourse(ctx context.Context, userID int, courseID uuid.UUID) (*model.Purchase, error)
	ListByUser(ctx context.Context, userID int) ([]model.Purchase, error)
}

// CourseGetter is the slice of course persistence the purchase service needs.
type CourseGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Course, error)
}

// PurchaseService enforces the at-most-one-purchase-per-user-per-course
// invariant. The pre-check below exists for a friendly error path; the
// store's unique (user_id, course_id) index is what actually guarantees the
// invariant when concurrent requests race past the check.
type PurchaseService struct {
	purchases PurchaseStore
	courses   CourseGetter
}

// NewPurchaseService creates a new PurchaseService.
func NewPurchaseService(purchases PurchaseStore, courses CourseGetter) *PurchaseService {
	return &PurchaseService{purchases: purchases, courses: courses}
}

// Purchase records that userID bought courseID. Fails with ErrNotFound for
// an unknown course and ErrAlreadyPurchased for a duplicate pair, whether
// the duplicate is caught by the pre-check or by the unique index.
func (s *PurchaseService) Purchase(ctx context.Context, userID int, courseID uuid.UUID) (*model.Purchase, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	_, err := s.purchases.GetByUserAndCourse(ctx, userID, courseID)
	if err == nil {
		return nil, ErrAlreadyPurchased
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	purchase := &model.Purchase{UserID: userID, CourseID: courseID}
	if err := s.purchases.Create(ctx, purchase); err != nil {
		if errors.Is(err, repository.ErrDuplicatePurchase) {
			return nil, ErrAlreadyPurchased
		}
		return nil, err
	}
	return purchase, nil
}

// ListWithCourses returns a user's purchases together with the purchased
// courses' data, mirroring what the dashboard renders.
func (s *PurchaseService) ListWithCourses(ctx context.Context, userID int) ([]model.Purchase, []model.Course, error) {
	purchases, err := s.purchases.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if purchases == nil {
		purchases = []model.Purchase{}
	}

	courseIDs := make([]uuid.UUID, 0, len(purchases))
	for _, p := range purchases {
		courseIDs = append(courseIDs, p.CourseID)
	}

	courses, err := s.courses.ListByIDs(ctx, courseIDs)
	if err != nil {
		return nil, nil, err
	}
	if courses == nil {
		courses = []model.Course{}
	}
	return purchases, courses, nil
}
