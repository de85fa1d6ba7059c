package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursehive/coursehive-backend/internal/middleware"
	"github.com/coursehive/coursehive-backend/internal/model"
	"github.com/coursehive/coursehive-backend/internal/response"
	"github.com/coursehive/coursehive-backend/internal/service"
	"github.com/coursehive/coursehive-backend/internal/validator"
)

// AuthHandler handles signup, signin and token verification for both roles.
type AuthHandler struct {
	userService  *service.UserService
	adminService *service.AdminService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userService *service.UserService, adminService *service.AdminService) *AuthHandler {
	return &AuthHandler{userService: userService, adminService: adminService}
}

// UserSignup godoc
// POST /api/v1/user/signup
// Creates a learner account and returns a user-domain JWT.
func (h *AuthHandler) UserSignup(c *gin.Context) {
	var req model.SignupRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	token, user, err := h.userService.Signup(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateAccount) {
			response.Fail(c, http.StatusBadRequest, response.ErrDuplicateAccount)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"token": token, "user": user})
}

// UserSignin godoc
// POST /api/v1/user/signin
// Verifies learner credentials and returns a user-domain JWT.
func (h *AuthHandler) UserSignin(c *gin.Context) {
	var req model.SigninRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	token, user, err := h.userService.Signin(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccountNotFound):
			response.Fail(c, http.StatusUnauthorized, response.ErrAccountNotFound)
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"token": token, "user": user})
}

// UserProfile godoc
// GET /api/v1/user/me
// Returns the profile of the currently authenticated user.
func (h *AuthHandler) UserProfile(c *gin.Context) {
	accountID := middleware.GetAccountID(c)
	if accountID == 0 {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), accountID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// AdminSignup godoc
// POST /api/v1/admin/signup
// Creates an instructor account and returns an admin-domain JWT.
func (h *AuthHandler) AdminSignup(c *gin.Context) {
	var req model.SignupRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	token, admin, err := h.adminService.Signup(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateAccount) {
			response.Fail(c, http.StatusBadRequest, response.ErrDuplicateAccount)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"token": token, "admin": admin})
}

// AdminSignin godoc
// POST /api/v1/admin/signin
// Verifies instructor credentials and returns an admin-domain JWT.
func (h *AuthHandler) AdminSignin(c *gin.Context) {
	var req model.SigninRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	token, admin, err := h.adminService.Signin(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccountNotFound):
			response.Fail(c, http.StatusUnauthorized, response.ErrAccountNotFound)
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"token": token, "admin": admin})
}

// AdminProfile godoc
// GET /api/v1/admin/me
// Returns the profile of the currently authenticated admin.
func (h *AuthHandler) AdminProfile(c *gin.Context) {
	accountID := middleware.GetAccountID(c)
	if accountID == 0 {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	admin, err := h.adminService.GetByID(c.Request.Context(), accountID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"admin": admin})
}

// VerifyAdminToken godoc
// GET /api/v1/admin/verify
// Reached only behind RequireAdminJWT; confirms the token is valid.
func (h *AuthHandler) VerifyAdminToken(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"valid": true})
}
