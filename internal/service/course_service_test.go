package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursehive/coursehive-backend/internal/model"
)

// Built with a nil Redis client: the cache is an optimization and the
// service must behave identically without it.
func newCourseFixture(t *testing.T) (*CourseService, *memCourseStore) {
	t.Helper()
	store := newMemCourseStore()
	return NewCourseService(store, nil, testConfig(), zerolog.Nop()), store
}

func courseReq() *model.CourseRequest {
	return &model.CourseRequest{
		Title:       "Intro to Gardening",
		Description: "Soil, seeds, patience.",
		Price:       25,
		ImageURL:    "https://img.example/gardening.png",
	}
}

func TestCourseCreateAndCatalog(t *testing.T) {
	t.Parallel()
	svc, _ := newCourseFixture(t)

	course, err := svc.Create(context.Background(), 1, courseReq())
	require.NoError(t, err)
	assert.Equal(t, 1, course.CreatorID)
	assert.NotEqual(t, uuid.Nil, course.ID)

	catalog, err := svc.Catalog(context.Background())
	require.NoError(t, err)
	assert.Len(t, catalog, 1)

	got, err := svc.GetPublic(context.Background(), course.ID)
	require.NoError(t, err)
	assert.Equal(t, course.Title, got.Title)
}

func TestCourseUpdate_OwnedOnly(t *testing.T) {
	t.Parallel()
	svc, _ := newCourseFixture(t)

	course, err := svc.Create(context.Background(), 1, courseReq())
	require.NoError(t, err)

	req := courseReq()
	req.Title = "Advanced Gardening"

	// Another admin's update reads as not-found, same as a missing course.
	_, err = svc.Update(context.Background(), 2, course.ID, req)
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := svc.Update(context.Background(), 1, course.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Advanced Gardening", updated.Title)
}

func TestCourseDelete_OwnedOnly(t *testing.T) {
	t.Parallel()
	svc, store := newCourseFixture(t)

	course, err := svc.Create(context.Background(), 1, courseReq())
	require.NoError(t, err)

	err = svc.Delete(context.Background(), 2, course.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// The record is untouched by the failed delete.
	_, err = svc.GetPublic(context.Background(), course.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), 1, course.ID))
	assert.Empty(t, store.courses)

	err = svc.Delete(context.Background(), 1, course.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCourseDelete_BlockedByPurchases(t *testing.T) {
	t.Parallel()
	svc, store := newCourseFixture(t)

	course, err := svc.Create(context.Background(), 1, courseReq())
	require.NoError(t, err)
	store.referenced[course.ID] = true

	err = svc.Delete(context.Background(), 1, course.ID)
	assert.ErrorIs(t, err, ErrCourseHasPurchases)
}

func TestCourseListByCreator(t *testing.T) {
	t.Parallel()
	svc, _ := newCourseFixture(t)

	_, err := svc.Create(context.Background(), 1, courseReq())
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), 2, courseReq())
	require.NoError(t, err)

	mine, err := svc.ListByCreator(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	none, err := svc.ListByCreator(context.Background(), 3)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
