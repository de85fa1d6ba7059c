package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/coursehive/coursehive-backend/internal/middleware"
	"github.com/coursehive/coursehive-backend/internal/response"
	"github.com/coursehive/coursehive-backend/internal/service"
)

// PurchaseHandler handles learner purchases.
type PurchaseHandler struct {
	purchaseService *service.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler.
func NewPurchaseHandler(purchaseService *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// PurchaseCourse godoc
// POST /api/v1/user/courses/:courseId/purchase
// Records a purchase for the authenticated user. At most one purchase per
// user per course; repeats fail with ALREADY_PURCHASED.
func (h *PurchaseHandler) PurchaseCourse(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	purchase, err := h.purchaseService.Purchase(c.Request.Context(), middleware.GetAccountID(c), courseID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyPurchased):
			response.Fail(c, http.StatusBadRequest, response.ErrAlreadyPurchased)
		case errors.Is(err, service.ErrNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":  "Course purchased successfully",
		"purchase": purchase,
	})
}

// ListPurchases godoc
// GET /api/v1/user/purchases
// Returns the authenticated user's purchases plus the purchased courses.
func (h *PurchaseHandler) ListPurchases(c *gin.Context) {
	purchases, courses, err := h.purchaseService.ListWithCourses(c.Request.Context(), middleware.GetAccountID(c))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"purchases":   purchases,
		"coursesData": courses,
	})
}
