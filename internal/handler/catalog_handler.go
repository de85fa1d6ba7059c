package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/coursehive/coursehive-backend/internal/response"
	"github.com/coursehive/coursehive-backend/internal/service"
)

// CatalogHandler serves the public, unauthenticated course catalog.
type CatalogHandler struct {
	courseService *service.CourseService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(courseService *service.CourseService) *CatalogHandler {
	return &CatalogHandler{courseService: courseService}
}

// Preview godoc
// GET /api/v1/course/preview
// Lists every course for browsing, no auth required.
func (h *CatalogHandler) Preview(c *gin.Context) {
	courses, err := h.courseService.Catalog(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"courses": courses})
}

// GetCourse godoc
// GET /api/v1/course/:courseId
// Returns a single course's public detail.
func (h *CatalogHandler) GetCourse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	course, err := h.courseService.GetPublic(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"course": course})
}
