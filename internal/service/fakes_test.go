package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/coursehive/coursehive-backend/internal/model"
	"github.com/coursehive/coursehive-backend/internal/repository"
)

// In-memory stores mimicking the Postgres repositories' contracts: not-found
// is pgx.ErrNoRows, constraint violations are the repository sentinel errors,
// and all methods are safe for concurrent use like a connection pool is.

type memUserStore struct {
	mu     sync.Mutex
	nextID int
	users  map[int]model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[int]model.User)}
}

func (m *memUserStore) Create(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	m.nextID++
	u.ID = m.nextID
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	m.users[u.ID] = *u
	return nil
}

func (m *memUserStore) GetByID(_ context.Context, id int) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &u, nil
}

func (m *memUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memUserStore) List(_ context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

type memAdminStore struct {
	mu     sync.Mutex
	nextID int
	admins map[int]model.Admin
}

func newMemAdminStore() *memAdminStore {
	return &memAdminStore{admins: make(map[int]model.Admin)}
}

func (m *memAdminStore) Create(_ context.Context, a *model.Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.admins {
		if existing.Email == a.Email {
			return repository.ErrDuplicateEmail
		}
	}
	m.nextID++
	a.ID = m.nextID
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	m.admins[a.ID] = *a
	return nil
}

func (m *memAdminStore) GetByID(_ context.Context, id int) (*model.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.admins[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &a, nil
}

func (m *memAdminStore) GetByEmail(_ context.Context, email string) (*model.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.admins {
		if a.Email == email {
			a := a
			return &a, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type memCourseStore struct {
	mu      sync.Mutex
	courses map[uuid.UUID]model.Course
	// IDs of courses that have purchase records; deletes are blocked the
	// way the RESTRICT foreign key blocks them.
	referenced map[uuid.UUID]bool
}

func newMemCourseStore() *memCourseStore {
	return &memCourseStore{
		courses:    make(map[uuid.UUID]model.Course),
		referenced: make(map[uuid.UUID]bool),
	}
}

func (m *memCourseStore) Create(_ context.Context, course *model.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	course.ID = uuid.New()
	course.CreatedAt = time.Now()
	course.UpdatedAt = course.CreatedAt
	m.courses[course.ID] = *course
	return nil
}

func (m *memCourseStore) GetByID(_ context.Context, id uuid.UUID) (*model.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	course, ok := m.courses[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &course, nil
}

func (m *memCourseStore) List(_ context.Context) ([]model.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Course, 0, len(m.courses))
	for _, course := range m.courses {
		out = append(out, course)
	}
	return out, nil
}

func (m *memCourseStore) ListByCreator(_ context.Context, creatorID int) ([]model.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Course
	for _, course := range m.courses {
		if course.CreatorID == creatorID {
			out = append(out, course)
		}
	}
	return out, nil
}

func (m *memCourseStore) ListByIDs(_ context.Context, ids []uuid.UUID) ([]model.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Course
	for _, id := range ids {
		if course, ok := m.courses[id]; ok {
			out = append(out, course)
		}
	}
	return out, nil
}

func (m *memCourseStore) UpdateOwned(_ context.Context, course *model.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.courses[course.ID]
	if !ok || existing.CreatorID != course.CreatorID {
		return pgx.ErrNoRows
	}
	course.CreatedAt = existing.CreatedAt
	course.UpdatedAt = time.Now()
	m.courses[course.ID] = *course
	return nil
}

func (m *memCourseStore) DeleteOwned(_ context.Context, id uuid.UUID, creatorID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.courses[id]
	if !ok || existing.CreatorID != creatorID {
		return pgx.ErrNoRows
	}
	if m.referenced[id] {
		return repository.ErrHasDependents
	}
	delete(m.courses, id)
	return nil
}

type purchaseKey struct {
	userID   int
	courseID uuid.UUID
}

type memPurchaseStore struct {
	mu        sync.Mutex
	purchases map[purchaseKey]model.Purchase
}

func newMemPurchaseStore() *memPurchaseStore {
	return &memPurchaseStore{purchases: make(map[purchaseKey]model.Purchase)}
}

func (m *memPurchaseStore) Create(_ context.Context, p *model.Purchase) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := purchaseKey{p.UserID, p.CourseID}
	if _, exists := m.purchases[key]; exists {
		return repository.ErrDuplicatePurchase
	}
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	m.purchases[key] = *p
	return nil
}

func (m *memPurchaseStore) GetByUserAndCourse(_ context.Context, userID int, courseID uuid.UUID) (*model.Purchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.purchases[purchaseKey{userID, courseID}]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &p, nil
}

func (m *memPurchaseStore) ListByUser(_ context.Context, userID int) ([]model.Purchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Purchase
	for _, p := range m.purchases {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPurchaseStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.purchases)
}
