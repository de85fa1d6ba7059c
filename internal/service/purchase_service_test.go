package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursehive/coursehive-backend/internal/model"
)

func newPurchaseFixture(t *testing.T) (*PurchaseService, *memPurchaseStore, *model.Course) {
	t.Helper()

	courses := newMemCourseStore()
	course := &model.Course{Title: "Go from Zero", Description: "d", Price: 49, ImageURL: "https://img.example/go.png", CreatorID: 1}
	require.NoError(t, courses.Create(context.Background(), course))

	purchases := newMemPurchaseStore()
	return NewPurchaseService(purchases, courses), purchases, course
}

func TestPurchase_Succeeds(t *testing.T) {
	t.Parallel()
	svc, store, course := newPurchaseFixture(t)

	p, err := svc.Purchase(context.Background(), 10, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, p.UserID)
	assert.Equal(t, course.ID, p.CourseID)
	assert.Equal(t, 1, store.count())
}

func TestPurchase_RepeatFailsWithAlreadyPurchased(t *testing.T) {
	t.Parallel()
	svc, store, course := newPurchaseFixture(t)

	_, err := svc.Purchase(context.Background(), 10, course.ID)
	require.NoError(t, err)

	_, err = svc.Purchase(context.Background(), 10, course.ID)
	assert.ErrorIs(t, err, ErrAlreadyPurchased)
	assert.Equal(t, 1, store.count())
}

func TestPurchase_UnknownCourse(t *testing.T) {
	t.Parallel()
	svc, store, _ := newPurchaseFixture(t)

	_, err := svc.Purchase(context.Background(), 10, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, store.count())
}

func TestPurchase_DifferentUsersMayBuySameCourse(t *testing.T) {
	t.Parallel()
	svc, store, course := newPurchaseFixture(t)

	_, err := svc.Purchase(context.Background(), 10, course.ID)
	require.NoError(t, err)
	_, err = svc.Purchase(context.Background(), 11, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, store.count())
}

// N concurrent purchases of the same (user, course) pair: exactly one
// succeeds, the rest fail with ErrAlreadyPurchased, and exactly one record
// exists afterward. The unique index in the store is what guarantees this,
// not the pre-check.
func TestPurchase_ConcurrentDuplicates(t *testing.T) {
	t.Parallel()
	svc, store, course := newPurchaseFixture(t)

	const n = 32
	var wg sync.WaitGroup
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Purchase(context.Background(), 10, course.ID)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, ErrAlreadyPurchased)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, store.count())
}

func TestListWithCourses(t *testing.T) {
	t.Parallel()

	courses := newMemCourseStore()
	c1 := &model.Course{Title: "A", Description: "d", Price: 10, ImageURL: "https://img.example/a.png", CreatorID: 1}
	c2 := &model.Course{Title: "B", Description: "d", Price: 20, ImageURL: "https://img.example/b.png", CreatorID: 1}
	require.NoError(t, courses.Create(context.Background(), c1))
	require.NoError(t, courses.Create(context.Background(), c2))

	svc := NewPurchaseService(newMemPurchaseStore(), courses)

	_, err := svc.Purchase(context.Background(), 10, c1.ID)
	require.NoError(t, err)
	_, err = svc.Purchase(context.Background(), 10, c2.ID)
	require.NoError(t, err)

	purchases, purchased, err := svc.ListWithCourses(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, purchases, 2)
	assert.Len(t, purchased, 2)

	// A user with no purchases gets empty slices, not nils.
	purchases, purchased, err = svc.ListWithCourses(context.Background(), 99)
	require.NoError(t, err)
	assert.NotNil(t, purchases)
	assert.Empty(t, purchases)
	assert.NotNil(t, purchased)
	assert.Empty(t, purchased)
}
