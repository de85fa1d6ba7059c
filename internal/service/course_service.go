package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/coursehive/coursehive-backend/internal/config"
	"github.com/coursehive/coursehive-backend/internal/model"
	"github.com/coursehive/coursehive-backend/internal/repository"
)

// CourseStore is the persistence contract the course service depends on.
type CourseStore interface {
	Create(ctx context.Context, course *model.Course) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error)
	List(ctx context.Context) ([]model.Course, error)
	ListByCreator(ctx context.Context, creatorID int) ([]model.Course, error)
	UpdateOwned(ctx context.Context, course *model.Course) error
	DeleteOwned(ctx context.Context, id uuid.UUID, creatorID int) error
}

// CourseService handles course listings. Public catalog reads go through a
// Redis read-through cache; every admin mutation invalidates it. The cache
// is an optimization only — a nil Redis client degrades to direct DB reads.
type CourseService struct {
	store CourseStore
	rdb   *redis.Client
	cfg   *config.Config
	log   zerolog.Logger
}

// NewCourseService creates a new CourseService.
func NewCourseService(store CourseStore, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *CourseService {
	return &CourseService{
		store: store,
		rdb:   rdb,
		cfg:   cfg,
		log:   log.With().Str("component", "course_service").Logger(),
	}
}

// Catalog returns all courses for the public preview listing, served from
// Redis when warm. Cache failures are logged and fall through to Postgres.
func (s *CourseService) Catalog(ctx context.Context) ([]model.Course, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, config.CacheKey.CatalogKey()).Result()
		if err == nil {
			var courses []model.Course
			if jsonErr := json.Unmarshal([]byte(cached), &courses); jsonErr == nil {
				return courses, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Msg("Catalog cache read failed")
		}
	}

	courses, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []model.Course{}
	}

	s.cacheSet(ctx, config.CacheKey.CatalogKey(), courses)
	return courses, nil
}

// GetPublic returns a single course for the public detail page, served from
// Redis when warm.
func (s *CourseService) GetPublic(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	key := config.CacheKey.CourseKey(id.String())
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, key).Result()
		if err == nil {
			course := &model.Course{}
			if jsonErr := json.Unmarshal([]byte(cached), course); jsonErr == nil {
				return course, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Msg("Course cache read failed")
		}
	}

	course, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.cacheSet(ctx, key, course)
	return course, nil
}

// Create inserts a new course owned by creatorID and invalidates the catalog.
func (s *CourseService) Create(ctx context.Context, creatorID int, req *model.CourseRequest) (*model.Course, error) {
	course := &model.Course{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		CreatorID:   creatorID,
	}
	if err := s.store.Create(ctx, course); err != nil {
		return nil, err
	}

	s.invalidate(ctx, course.ID)
	return course, nil
}

// Update modifies a course, scoped to its creator in the same statement that
// performs the write. A miss — whether the course does not exist or belongs
// to another admin — is ErrNotFound; the two cases are deliberately
// indistinguishable so other admins' course IDs never leak.
func (s *CourseService) Update(ctx context.Context, creatorID int, id uuid.UUID, req *model.CourseRequest) (*model.Course, error) {
	course := &model.Course{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		CreatorID:   creatorID,
	}
	if err := s.store.UpdateOwned(ctx, course); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.invalidate(ctx, id)
	return course, nil
}

// Delete removes a course, scoped to its creator. Courses that already have
// purchases cannot be deleted (RESTRICT foreign key).
func (s *CourseService) Delete(ctx context.Context, creatorID int, id uuid.UUID) error {
	if err := s.store.DeleteOwned(ctx, id, creatorID); err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return ErrNotFound
		case errors.Is(err, repository.ErrHasDependents):
			return ErrCourseHasPurchases
		}
		return err
	}

	s.invalidate(ctx, id)
	return nil
}

// ListByCreator retrieves the courses owned by an admin.
func (s *CourseService) ListByCreator(ctx context.Context, creatorID int) ([]model.Course, error) {
	courses, err := s.store.ListByCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []model.Course{}
	}
	return courses, nil
}

// PrewarmCatalog loads the catalog into Redis before the server accepts
// traffic, so the first burst of public reads never stampedes Postgres.
func (s *CourseService) PrewarmCatalog(ctx context.Context) error {
	courses, err := s.store.List(ctx)
	if err != nil {
		return err
	}
	if courses == nil {
		courses = []model.Course{}
	}
	s.cacheSet(ctx, config.CacheKey.CatalogKey(), courses)
	s.log.Info().Int("courses", len(courses)).Msg("Catalog cache prewarmed")
	return nil
}

func (s *CourseService) cacheSet(ctx context.Context, key string, v interface{}) {
	if s.rdb == nil {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, payload, s.cfg.CatalogTTL).Err(); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}

func (s *CourseService) invalidate(ctx context.Context, id uuid.UUID) {
	if s.rdb == nil {
		return
	}
	keys := []string{config.CacheKey.CatalogKey(), config.CacheKey.CourseKey(id.String())}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Cache invalidation failed")
	}
}
